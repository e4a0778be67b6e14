package db

import (
	"Gin_postgres_redis_inventory_tracker/models"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InventoryRow is an item joined with its reference names plus the derived
// quantity columns.
type InventoryRow struct {
	ID             uint    `json:"id"`
	Code           string  `json:"code"`
	Name           string  `json:"name"`
	Committee      *string `json:"committee"`
	CommitteeID    *uint   `json:"committeeID"`
	Type           *string `json:"type"`
	Classification *string `json:"classification"`
	TypeID         *uint   `json:"typeID"`
	TotalQty       int     `json:"totalQty"`
	Unit           *string `json:"unit"`
	UnitID         *uint   `json:"unitID"`
	Location       string  `json:"location"`
	Threshold      *int    `json:"threshold"`
	BorrowedQty    int     `json:"borrowedQty"`
	AvailableQty   int     `json:"availableQty"`
}

// ListInventory returns every item with committee/type/unit names and the
// reserved quantity summed over open, non-rejected borrowings.
func (r *Repo) ListInventory(ctx context.Context) ([]InventoryRow, error) {
	var rows []InventoryRow
	err := r.DB.WithContext(ctx).
		Table(models.ItemTable+" i").
		Select(`
			i.id, i.code, i.name, c.name AS committee, i.committee_id,
			t.name AS type, t.classification, i.type_id, i.quantity AS total_qty,
			u.name AS unit, i.unit_id, i.location, i.threshold,
			COALESCE(SUM(CASE
				WHEN b.date_returned IS NULL AND b.approval_status <> 'Rejected'
				THEN b.quantity ELSE 0
			END), 0) AS borrowed_qty
		`).
		Joins("LEFT JOIN "+models.CommitteeTable+" c ON i.committee_id = c.id").
		Joins("LEFT JOIN "+models.TypeTable+" t ON i.type_id = t.id").
		Joins("LEFT JOIN "+models.UnitTable+" u ON i.unit_id = u.id").
		Joins("LEFT JOIN "+models.BorrowingTable+" b ON i.id = b.item_id").
		Group("i.id, c.name, t.name, t.classification, u.name").
		Order("i.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].AvailableQty = models.AvailableQty(rows[i].TotalQty, rows[i].BorrowedQty)
	}
	return rows, nil
}

type AddItemInput struct {
	Name        string
	CommitteeID *uint
	TypeID      *uint
	UnitID      *uint
	Quantity    int
	Location    string
	ActorID     uint
}

type AddItemResult struct {
	ItemID    uint
	Code      string
	Restocked bool
	NewTotal  int
}

// AddOrRestockItem either increments the stock of an existing item whose name
// matches case-insensitively, or inserts a new item under the next sequential
// ITM code. Duplicate check, code generation, write, audit entry and
// notification all share one transaction so concurrent calls cannot collide
// on a code or leave a partial write behind.
func (r *Repo) AddOrRestockItem(ctx context.Context, in AddItemInput) (*AddItemResult, error) {
	name := strings.TrimSpace(in.Name)
	var res AddItemResult

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Item
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("LOWER(name) = LOWER(?)", name).
			First(&existing).Error

		switch {
		case err == nil:
			newTotal := existing.Quantity + in.Quantity
			if err := tx.Model(&models.Item{}).
				Where("id = ?", existing.ID).
				Update("quantity", newTotal).Error; err != nil {
				return err
			}
			details := fmt.Sprintf("Stock Added: %d to existing %q (%s). New Total: %d",
				in.Quantity, name, existing.Code, newTotal)
			if err := logActivity(tx, models.ActionModify, details, in.ActorID); err != nil {
				return err
			}
			notify(tx, fmt.Sprintf("Stock Added: %d units added to %q.", in.Quantity, name), &existing.ID, nil)
			res = AddItemResult{ItemID: existing.ID, Code: existing.Code, Restocked: true, NewTotal: newTotal}
			return nil

		case errors.Is(err, gorm.ErrRecordNotFound):
			var lastCodes []string
			if err := tx.Model(&models.Item{}).
				Where("code LIKE ?", itemCodePrefix+"%").
				Order("id DESC").
				Limit(1).
				Pluck("code", &lastCodes).Error; err != nil {
				return err
			}
			var lastCode string
			if len(lastCodes) > 0 {
				lastCode = lastCodes[0]
			}
			code := nextItemCode(lastCode)
			threshold := models.DefaultThreshold
			it := models.Item{
				Code:        code,
				Name:        name,
				CommitteeID: in.CommitteeID,
				TypeID:      in.TypeID,
				UnitID:      in.UnitID,
				Quantity:    in.Quantity,
				Location:    in.Location,
				Threshold:   &threshold,
			}
			if err := tx.Create(&it).Error; err != nil {
				return err
			}
			details := fmt.Sprintf("Added new item: %s (%s)", name, code)
			if err := logActivity(tx, models.ActionAdd, details, in.ActorID); err != nil {
				return err
			}
			notify(tx, fmt.Sprintf("New Item: %s (%d units) was added.", name, in.Quantity), &it.ID, nil)
			res = AddItemResult{ItemID: it.ID, Code: code, NewTotal: in.Quantity}
			return nil

		default:
			return err
		}
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

type UpdateItemInput struct {
	Name        string
	CommitteeID *uint
	TypeID      *uint
	UnitID      *uint
	Quantity    int
	Location    string
	ActorID     uint
}

// UpdateItem overwrites the editable fields in place.
func (r *Repo) UpdateItem(ctx context.Context, itemID uint, in UpdateItemInput) error {
	name := strings.TrimSpace(in.Name)
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Item{}).
			Where("id = ?", itemID).
			Updates(map[string]any{
				"name":         name,
				"committee_id": in.CommitteeID,
				"type_id":      in.TypeID,
				"quantity":     in.Quantity,
				"unit_id":      in.UnitID,
				"location":     in.Location,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		if err := logActivity(tx, models.ActionModify, "Updated item: "+name, in.ActorID); err != nil {
			return err
		}
		notify(tx, fmt.Sprintf("Inventory Update: details for %q were modified.", name), &itemID, nil)
		return nil
	})
}

// itemDeletable blocks deletion while any borrowing of the item is open.
func itemDeletable(openBorrows int64) error {
	if openBorrows > 0 {
		return ErrItemBorrowed
	}
	return nil
}

// DeleteItem removes an item together with its notifications. The
// active-borrow check shares the transaction with the delete so a borrow
// created in between cannot orphan a record.
func (r *Repo) DeleteItem(ctx context.Context, itemID, actorID uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var it models.Item
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&it, "id = ?", itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var open int64
		if err := tx.Model(&models.BorrowingRecord{}).
			Where("item_id = ? AND date_returned IS NULL", itemID).
			Count(&open).Error; err != nil {
			return err
		}
		if err := itemDeletable(open); err != nil {
			return err
		}

		if err := tx.Where("item_id = ?", itemID).Delete(&models.Notification{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Item{}, "id = ?", itemID).Error; err != nil {
			return err
		}
		if err := logActivity(tx, models.ActionRemove, "Removed item: "+it.Name, actorID); err != nil {
			return err
		}
		notify(tx, fmt.Sprintf("Inventory Alert: Item %q was removed.", it.Name), nil, nil)
		return nil
	})
}

// UpdateThreshold sets the low-stock threshold for a consumable item.
func (r *Repo) UpdateThreshold(ctx context.Context, itemID uint, threshold int) error {
	res := r.DB.WithContext(ctx).Model(&models.Item{}).
		Where("id = ?", itemID).
		Update("threshold", threshold)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

type LowStockRow struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	TypeName  *string `json:"typeName"`
	Threshold *int    `json:"threshold"`
}

// ListLowStock returns consumables at or below their threshold (missing
// thresholds count as zero).
func (r *Repo) ListLowStock(ctx context.Context) ([]LowStockRow, error) {
	var rows []LowStockRow
	err := r.DB.WithContext(ctx).
		Table(models.ItemTable+" i").
		Select("i.name, i.quantity, t.name AS type_name, i.threshold").
		Joins("JOIN "+models.TypeTable+" t ON i.type_id = t.id").
		Where("t.classification = ? AND i.quantity <= COALESCE(i.threshold, 0)", models.ClassificationConsumable).
		Scan(&rows).Error
	return rows, err
}

type ThresholdRow struct {
	ID        uint    `json:"id"`
	Name      string  `json:"name"`
	Category  *string `json:"category"`
	Threshold *int    `json:"threshold"`
}

// ListConsumableItems lists the items eligible for threshold management.
func (r *Repo) ListConsumableItems(ctx context.Context) ([]ThresholdRow, error) {
	var rows []ThresholdRow
	err := r.DB.WithContext(ctx).
		Table(models.ItemTable+" i").
		Select("i.id, i.name, t.name AS category, i.threshold").
		Joins("LEFT JOIN "+models.TypeTable+" t ON i.type_id = t.id").
		Where("t.classification = ?", models.ClassificationConsumable).
		Order("i.name ASC").
		Scan(&rows).Error
	return rows, err
}

const itemCodePrefix = "ITM-"

// nextItemCode derives the next sequential code from the highest assigned one.
// Codes are never reused after a deletion; an empty or malformed last code
// restarts the sequence.
func nextItemCode(lastCode string) string {
	next := 1
	if suffix, ok := strings.CutPrefix(lastCode, itemCodePrefix); ok {
		if n, err := strconv.Atoi(suffix); err == nil {
			next = n + 1
		}
	}
	return fmt.Sprintf("%s%04d", itemCodePrefix, next)
}
