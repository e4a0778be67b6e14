package models

import "time"

const (
	ActivityLogTable  = "activity_log"
	NotificationTable = "notifications"
)

// Audit action types.
const (
	ActionAdd     = "ADD"
	ActionModify  = "MODIFY"
	ActionRemove  = "REMOVE"
	ActionBorrow  = "BORROW"
	ActionRequest = "REQUEST"
	ActionApprove = "APPROVE"
	ActionReject  = "REJECT"
	ActionReturn  = "RETURN"
)

// ActivityLog is append-only. Rows are kept even after the referenced item is
// deleted, so there is deliberately no foreign key to items.
type ActivityLog struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ActionType string    `gorm:"size:20;not null;index" json:"type"`
	Details    string    `gorm:"type:text" json:"details"`
	ActionDate time.Time `gorm:"index;not null" json:"date"`
	UserID     *uint     `gorm:"index" json:"userID,omitempty"`
}

func (ActivityLog) TableName() string { return ActivityLogTable }

// Notification with UserID nil is a broadcast visible to Admin/Superadmin
// viewers; a non-nil UserID targets exactly that user.
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ItemID    *uint     `gorm:"index" json:"itemID,omitempty"`
	Message   string    `gorm:"size:500;not null" json:"message"`
	IsRead    bool      `gorm:"not null;default:false" json:"isRead"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UserID    *uint     `gorm:"index" json:"userID,omitempty"`
}

func (Notification) TableName() string { return NotificationTable }
