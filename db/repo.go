package db

import (
	"Gin_postgres_redis_inventory_tracker/models"
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"
)

type Repo struct{ DB *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{DB: db} }

var (
	ErrNotFound         = errors.New("record not found")
	ErrItemBorrowed     = errors.New("item is currently being borrowed")
	ErrNotPending       = errors.New("request is not pending")
	ErrAlreadyActivated = errors.New("account is already activated")
)

// InsufficientStockError carries the actual available count so the caller can
// report it verbatim.
type InsufficientStockError struct{ Available int }

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("Only %d units available.", e.Available)
}

// logActivity appends an audit entry inside the caller's transaction. A
// failure here rolls back the surrounding business write: the trail must never
// silently miss an event a client believes succeeded.
func logActivity(tx *gorm.DB, actionType, details string, actorID uint) error {
	entry := models.ActivityLog{
		ActionType: actionType,
		Details:    details,
		ActionDate: time.Now(),
		UserID:     &actorID,
	}
	return tx.Create(&entry).Error
}

// notify inserts a notification best-effort. Notifications are advisory, so
// failures are logged and swallowed instead of failing the parent operation.
// Pass nil targetUserID for a broadcast to Admin/Superadmin viewers.
func notify(tx *gorm.DB, message string, itemID, targetUserID *uint) {
	n := models.Notification{
		ItemID:  itemID,
		Message: message,
		UserID:  targetUserID,
	}
	if err := tx.Create(&n).Error; err != nil {
		log.Printf("[WARN] notification insert failed: %v", err)
	}
}

// Notify is the out-of-transaction variant of notify.
func (r *Repo) Notify(ctx context.Context, message string, itemID, targetUserID *uint) {
	notify(r.DB.WithContext(ctx), message, itemID, targetUserID)
}
