package models

import "time"

const (
	ItemTable      = "items"
	CommitteeTable = "committees"
	TypeTable      = "types"
	UnitTable      = "units"
)

// Type classifications. Consumables are subject to low-stock thresholds.
const (
	ClassificationAsset      = "Asset"
	ClassificationConsumable = "Consumable"
)

// DefaultThreshold is applied to newly created items.
const DefaultThreshold = 5

type Committee struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:255;uniqueIndex;not null" json:"name"`
}

func (Committee) TableName() string { return CommitteeTable }

type ItemType struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	Name           string `gorm:"size:255;uniqueIndex;not null" json:"name"`
	Classification string `gorm:"size:20;not null;default:'Asset'" json:"classification"`
}

func (ItemType) TableName() string { return TypeTable }

type Unit struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:255;uniqueIndex;not null" json:"name"`
}

func (Unit) TableName() string { return UnitTable }

type Item struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Code        string    `gorm:"size:20;uniqueIndex;not null" json:"code"`
	Name        string    `gorm:"size:200;not null" json:"name"`
	CommitteeID *uint     `gorm:"index" json:"committeeID"`
	TypeID      *uint     `gorm:"index" json:"typeID"`
	UnitID      *uint     `json:"unitID"`
	Quantity    int       `gorm:"not null;default:0;check:quantity >= 0" json:"totalQty"`
	Location    string    `gorm:"size:255" json:"location"`
	Threshold   *int      `json:"threshold"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Committee *Committee `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
	Type      *ItemType  `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
	Unit      *Unit      `gorm:"constraint:OnDelete:RESTRICT" json:"-"`
}

func (Item) TableName() string { return ItemTable }

// AvailableQty is the quantity not currently reserved by an open borrowing.
// Clamped at zero so a drifted ledger never reports negative availability.
func AvailableQty(totalQty, borrowedQty int) int {
	if avail := totalQty - borrowedQty; avail > 0 {
		return avail
	}
	return 0
}
