package db

import (
	"Gin_postgres_redis_inventory_tracker/models"
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BorrowingRow is a borrowing record joined with its item and committee.
type BorrowingRow struct {
	ID             uint       `json:"id"`
	ItemCode       string     `json:"code"`
	ItemName       string     `json:"name"`
	BorrowerName   string     `json:"borrower"`
	Committee      *string    `json:"committee"`
	Quantity       int        `json:"qty"`
	DateBorrowed   time.Time  `json:"dateBorrowed"`
	ExpectedReturn time.Time  `json:"dateExpected"`
	DateReturned   *time.Time `json:"dateReturned"`
	ApprovalStatus string     `json:"approvalStatus"`
}

// ListBorrowings returns all transactions, pending ones first, newest first
// within each group. Display status is derived by the caller, never stored.
func (r *Repo) ListBorrowings(ctx context.Context) ([]BorrowingRow, error) {
	var rows []BorrowingRow
	err := r.DB.WithContext(ctx).
		Table(models.BorrowingTable+" b").
		Select(`
			b.id, i.code AS item_code, i.name AS item_name, b.borrower_name,
			c.name AS committee, b.quantity, b.date_borrowed, b.expected_return,
			b.date_returned, b.approval_status
		`).
		Joins("JOIN "+models.ItemTable+" i ON b.item_id = i.id").
		Joins("LEFT JOIN "+models.CommitteeTable+" c ON b.committee_id = c.id").
		Order("CASE WHEN b.approval_status = 'Pending' THEN 0 ELSE 1 END, b.date_borrowed DESC").
		Scan(&rows).Error
	return rows, err
}

type CreateBorrowingInput struct {
	ItemID         uint
	BorrowerName   string
	CommitteeID    *uint
	Quantity       int
	DateBorrowed   time.Time
	ExpectedReturn time.Time
	RequesterID    uint
	RequesterRole  int
}

type CreateBorrowingResult struct {
	Pending bool
}

// checkStock rejects a request exceeding what is left after open, non-rejected
// reservations. The reported available count is clamped at zero.
func checkStock(totalQty, reservedQty, requested int) error {
	available := models.AvailableQty(totalQty, reservedQty)
	if requested > available {
		return &InsufficientStockError{Available: available}
	}
	return nil
}

// CreateBorrowing inserts a borrow transaction. A User-role requester starts
// Pending; staff borrow immediately as Approved. The availability check locks
// the item row and shares the insert's transaction, so two concurrent requests
// cannot both pass when only one fits.
func (r *Repo) CreateBorrowing(ctx context.Context, in CreateBorrowingInput) (*CreateBorrowingResult, error) {
	pending := in.RequesterRole == models.RoleUser

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var it models.Item
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&it, "id = ?", in.ItemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var unavailable int64
		if err := tx.Model(&models.BorrowingRecord{}).
			Where("item_id = ? AND date_returned IS NULL AND approval_status <> ?", in.ItemID, models.ApprovalRejected).
			Select("COALESCE(SUM(quantity), 0)").
			Scan(&unavailable).Error; err != nil {
			return err
		}
		if err := checkStock(it.Quantity, int(unavailable), in.Quantity); err != nil {
			return err
		}

		status := models.ApprovalApproved
		action := models.ActionBorrow
		if pending {
			status = models.ApprovalPending
			action = models.ActionRequest
		}

		rec := models.BorrowingRecord{
			ItemID:         in.ItemID,
			BorrowerName:   in.BorrowerName,
			CommitteeID:    in.CommitteeID,
			Quantity:       in.Quantity,
			DateBorrowed:   in.DateBorrowed,
			ExpectedReturn: in.ExpectedReturn,
			ApprovalStatus: status,
			UserID:         in.RequesterID,
		}
		if err := tx.Create(&rec).Error; err != nil {
			return err
		}

		var details string
		if pending {
			details = fmt.Sprintf("%s requested %dx %s", in.BorrowerName, in.Quantity, it.Name)
		} else {
			details = fmt.Sprintf("%s borrowed %dx %s", in.BorrowerName, in.Quantity, it.Name)
		}
		if err := logActivity(tx, action, details, in.RequesterID); err != nil {
			return err
		}

		if pending {
			notify(tx, fmt.Sprintf("Request: %s needs %dx %s. Review needed.", in.BorrowerName, in.Quantity, it.Name), &in.ItemID, nil)
		} else {
			notify(tx, fmt.Sprintf("Borrowing: %s took %dx %s.", in.BorrowerName, in.Quantity, it.Name), &in.ItemID, nil)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &CreateBorrowingResult{Pending: pending}, nil
}

// ApproveBorrowing moves a Pending request to Approved. Records in any other
// state are rejected with ErrNotPending: the guarded UPDATE touches zero rows.
// The requester gets a targeted notification.
func (r *Repo) ApproveBorrowing(ctx context.Context, borrowingID, actorID uint) error {
	return r.decideBorrowing(ctx, borrowingID, actorID, true)
}

// RejectBorrowing moves a Pending request to Rejected, permanently releasing
// its reserved quantity.
func (r *Repo) RejectBorrowing(ctx context.Context, borrowingID, actorID uint) error {
	return r.decideBorrowing(ctx, borrowingID, actorID, false)
}

// approvalTransition is the decision state machine: Pending is the only state
// a decision may leave from.
func approvalTransition(current string, approve bool) (newStatus, action string, err error) {
	if current != models.ApprovalPending {
		return "", "", ErrNotPending
	}
	if approve {
		return models.ApprovalApproved, models.ActionApprove, nil
	}
	return models.ApprovalRejected, models.ActionReject, nil
}

func (r *Repo) decideBorrowing(ctx context.Context, borrowingID, actorID uint, approve bool) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec models.BorrowingRecord
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&rec, "id = ?", borrowingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		var it models.Item
		if err := tx.First(&it, "id = ?", rec.ItemID).Error; err != nil {
			return err
		}

		newStatus, action, err := approvalTransition(rec.ApprovalStatus, approve)
		if err != nil {
			return err
		}
		res := tx.Model(&models.BorrowingRecord{}).
			Where("id = ? AND approval_status = ?", borrowingID, models.ApprovalPending).
			Update("approval_status", newStatus)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotPending
		}

		var details, message string
		if approve {
			details = fmt.Sprintf("Approved request for %dx %s", rec.Quantity, it.Name)
			message = fmt.Sprintf("Your request for %dx %s has been APPROVED. You may pick it up.", rec.Quantity, it.Name)
		} else {
			details = fmt.Sprintf("Rejected request for %dx %s", rec.Quantity, it.Name)
			message = fmt.Sprintf("Your request for %dx %s was REJECTED.", rec.Quantity, it.Name)
		}
		if err := logActivity(tx, action, details, actorID); err != nil {
			return err
		}
		requester := rec.UserID
		notify(tx, message, nil, &requester)
		return nil
	})
}

// ReturnBorrowing stamps date_returned with the database's current date.
// Returning an already-returned record is a no-op success, mirroring repeated
// clicks on the same row.
func (r *Repo) ReturnBorrowing(ctx context.Context, borrowingID, actorID uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec models.BorrowingRecord
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&rec, "id = ?", borrowingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if rec.DateReturned != nil {
			return nil
		}
		var it models.Item
		if err := tx.First(&it, "id = ?", rec.ItemID).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.BorrowingRecord{}).
			Where("id = ?", borrowingID).
			Update("date_returned", gorm.Expr("CURRENT_DATE")).Error; err != nil {
			return err
		}
		details := fmt.Sprintf("%s returned %dx %s", rec.BorrowerName, rec.Quantity, it.Name)
		if err := logActivity(tx, models.ActionReturn, details, actorID); err != nil {
			return err
		}
		notify(tx, fmt.Sprintf("Return Alert: %s returned %dx %s.", rec.BorrowerName, rec.Quantity, it.Name), &rec.ItemID, nil)
		return nil
	})
}

// CountOpenBorrowings is the dashboard's "currently borrowed" figure.
func (r *Repo) CountOpenBorrowings(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.BorrowingRecord{}).
		Where("date_returned IS NULL").
		Count(&n).Error
	return n, err
}

// CountItems counts distinct products, not stock units.
func (r *Repo) CountItems(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Item{}).Count(&n).Error
	return n, err
}
