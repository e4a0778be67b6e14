package models

import "time"

const BorrowingTable = "borrowing"

// Stored approval state. The display status is never stored (see DeriveStatus).
const (
	ApprovalPending  = "Pending"
	ApprovalApproved = "Approved"
	ApprovalRejected = "Rejected"
)

// Display statuses derived at read time.
const (
	BorrowStatusPending  = "Pending"
	BorrowStatusRejected = "Rejected"
	BorrowStatusReturned = "Returned"
	BorrowStatusOverdue  = "Overdue"
	BorrowStatusBorrowed = "Borrowed"
)

type BorrowingRecord struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	ItemID         uint       `gorm:"index;not null" json:"itemID"`
	BorrowerName   string     `gorm:"size:255;not null" json:"borrower"`
	CommitteeID    *uint      `json:"committeeID"`
	Quantity       int        `gorm:"not null" json:"qty"`
	DateBorrowed   time.Time  `gorm:"index;not null" json:"dateBorrowed"`
	ExpectedReturn time.Time  `json:"dateExpected"`
	DateReturned   *time.Time `gorm:"index" json:"dateReturned,omitempty"`
	ApprovalStatus string     `gorm:"size:20;not null;default:'Pending'" json:"approvalStatus"`
	UserID         uint       `gorm:"index;not null" json:"userID"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

func (BorrowingRecord) TableName() string { return BorrowingTable }

// DeriveStatus computes the display status from persisted fields and the
// current time. Expected-return comparison is by calendar date: a record due
// today is not yet overdue.
func DeriveStatus(approvalStatus string, dateReturned *time.Time, expectedReturn, now time.Time) string {
	switch approvalStatus {
	case ApprovalPending:
		return BorrowStatusPending
	case ApprovalRejected:
		return BorrowStatusRejected
	}
	if dateReturned != nil {
		return BorrowStatusReturned
	}
	if truncateToDate(expectedReturn).Before(truncateToDate(now)) {
		return BorrowStatusOverdue
	}
	return BorrowStatusBorrowed
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
