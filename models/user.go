package models

import "time"

const UserTable = "users"

// Role IDs, fixed by the seed data.
const (
	RoleSuperadmin = 1
	RoleAdmin      = 2
	RoleUser       = 3
)

// Account lifecycle. Inactive until the first successful login with a new
// password; Removed is a soft delete, rows are never hard-deleted.
const (
	StatusInactive = "Inactive"
	StatusActive   = "Active"
	StatusRemoved  = "Removed"
)

type User struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	FullName    string     `gorm:"size:255;not null" json:"name"`
	Email       string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password    string     `gorm:"size:255;not null" json:"-"`
	RoleID      int        `gorm:"not null;default:3" json:"roleID"`
	Status      string     `gorm:"size:20;not null;default:'Inactive'" json:"status"`
	LastLoginAt *time.Time `gorm:"index" json:"lastLogin,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (User) TableName() string { return UserTable }

func RoleName(roleID int) string {
	switch roleID {
	case RoleSuperadmin:
		return "Superadmin"
	case RoleAdmin:
		return "Admin"
	default:
		return "User"
	}
}

func RoleIDFromName(name string) int {
	switch name {
	case "Superadmin", "superadmin":
		return RoleSuperadmin
	case "Admin", "admin":
		return RoleAdmin
	default:
		return RoleUser
	}
}

// IsStaff reports whether the role may manage inventory and borrowing.
func IsStaff(roleID int) bool {
	return roleID == RoleSuperadmin || roleID == RoleAdmin
}
