package db

import (
	"Gin_postgres_redis_inventory_tracker/models"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (r *Repo) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.DB.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *Repo) FindUserByID(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := r.DB.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *Repo) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := r.DB.WithContext(ctx).Order("id ASC").Find(&users).Error
	return users, err
}

// TouchUserLogin stamps last_login with the database clock, avoiding skew
// between app instances.
func (r *Repo) TouchUserLogin(ctx context.Context, userID uint) error {
	return r.DB.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Update("last_login_at", gorm.Expr("NOW()")).Error
}

// CreateUser inserts an Inactive account with a hashed temporary password.
// The caller has already verified the creator is a Superadmin.
func (r *Repo) CreateUser(ctx context.Context, fullName, email, passwordHash string, roleID int) (*models.User, error) {
	u := &models.User{
		FullName: fullName,
		Email:    email,
		Password: passwordHash,
		RoleID:   roleID,
		Status:   models.StatusInactive,
	}
	if err := r.DB.WithContext(ctx).Create(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

// activationGuard permits first-login completion only from Inactive. The
// endpoint is unauthenticated, so an Active account must never have its
// password replaced through it; a Removed account reads as missing.
func activationGuard(status string) error {
	switch status {
	case models.StatusInactive:
		return nil
	case models.StatusActive:
		return ErrAlreadyActivated
	default:
		return ErrNotFound
	}
}

// ActivateFirstLogin sets the new password hash, flips the account to Active
// and stamps last_login, all atomically. The row is locked so the Inactive
// check and the update cannot be split by a concurrent call. The activation
// broadcast shares the transaction.
func (r *Repo) ActivateFirstLogin(ctx context.Context, userID uint, passwordHash string) (*models.User, error) {
	var u models.User
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&u, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := activationGuard(u.Status); err != nil {
			return err
		}
		if err := tx.Model(&models.User{}).
			Where("id = ?", userID).
			Updates(map[string]any{
				"password":      passwordHash,
				"status":        models.StatusActive,
				"last_login_at": gorm.Expr("NOW()"),
			}).Error; err != nil {
			return err
		}
		if err := tx.First(&u, "id = ?", userID).Error; err != nil {
			return err
		}
		notify(tx, fmt.Sprintf("User Activated: %s has set their password and joined.", u.FullName), nil, nil)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// needsRemoval reports whether a soft delete must write. An already-Removed
// account is left untouched so repeated deletes stay idempotent and never
// produce duplicate notifications.
func needsRemoval(status string) bool {
	return status != models.StatusRemoved
}

// SoftDeleteUser marks the account Removed.
func (r *Repo) SoftDeleteUser(ctx context.Context, userID uint) (alreadyRemoved bool, err error) {
	err = r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var target models.User
		if err := tx.First(&target, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if !needsRemoval(target.Status) {
			alreadyRemoved = true
			return nil
		}
		if err := tx.Model(&models.User{}).
			Where("id = ?", userID).
			Update("status", models.StatusRemoved).Error; err != nil {
			return err
		}
		notify(tx, fmt.Sprintf("System Alert: User %q was marked as Removed.", target.FullName), nil, nil)
		return nil
	})
	return alreadyRemoved, err
}
