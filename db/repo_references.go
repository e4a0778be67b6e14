package db

import (
	"Gin_postgres_redis_inventory_tracker/models"
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrReferenceInUse is surfaced when deleting a committee/type/unit that an
// item still points at (Postgres foreign_key_violation).
var ErrReferenceInUse = errors.New("reference is used by an active item")

// Option is a dropdown entry.
type Option struct {
	Value uint   `json:"value"`
	Label string `json:"label"`
}

type References struct {
	Committees []Option `json:"committees"`
	Types      []Option `json:"types"`
	Units      []Option `json:"units"`
}

// ListReferences returns the committee/type/unit dropdown options in one call.
func (r *Repo) ListReferences(ctx context.Context) (*References, error) {
	var refs References
	if err := r.DB.WithContext(ctx).Model(&models.Committee{}).
		Select("id AS value, name AS label").Scan(&refs.Committees).Error; err != nil {
		return nil, err
	}
	if err := r.DB.WithContext(ctx).Model(&models.ItemType{}).
		Select("id AS value, name AS label").Scan(&refs.Types).Error; err != nil {
		return nil, err
	}
	if err := r.DB.WithContext(ctx).Model(&models.Unit{}).
		Select("id AS value, name AS label").Scan(&refs.Units).Error; err != nil {
		return nil, err
	}
	return &refs, nil
}

// ListTypeNames returns the distinct type names for the inventory filter.
func (r *Repo) ListTypeNames(ctx context.Context) ([]string, error) {
	var names []string
	err := r.DB.WithContext(ctx).Model(&models.ItemType{}).
		Order("name ASC").
		Pluck("name", &names).Error
	return names, err
}

func (r *Repo) CreateCommittee(ctx context.Context, name string) error {
	return r.DB.WithContext(ctx).Create(&models.Committee{Name: name}).Error
}

func (r *Repo) DeleteCommittee(ctx context.Context, id uint) error {
	return r.deleteReference(r.DB.WithContext(ctx).Delete(&models.Committee{}, "id = ?", id))
}

func (r *Repo) CreateUnit(ctx context.Context, name string) error {
	return r.DB.WithContext(ctx).Create(&models.Unit{Name: name}).Error
}

func (r *Repo) DeleteUnit(ctx context.Context, id uint) error {
	return r.deleteReference(r.DB.WithContext(ctx).Delete(&models.Unit{}, "id = ?", id))
}

func (r *Repo) CreateType(ctx context.Context, name, classification string) error {
	if classification == "" {
		classification = models.ClassificationAsset
	}
	return r.DB.WithContext(ctx).Create(&models.ItemType{Name: name, Classification: classification}).Error
}

func (r *Repo) DeleteType(ctx context.Context, id uint) error {
	return r.deleteReference(r.DB.WithContext(ctx).Delete(&models.ItemType{}, "id = ?", id))
}

func (r *Repo) deleteReference(res *gorm.DB) error {
	if res.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(res.Error, &pgErr) && pgErr.Code == "23503" {
			return ErrReferenceInUse
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
