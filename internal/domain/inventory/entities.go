package inventory

import (
	"errors"
	"time"
)

type Status string

const (
	StatusAvailable Status = "AVAILABLE"
	StatusReserved  Status = "RESERVED"
	StatusSold      Status = "SOLD"
)

// PlaceholderHash marks a lot that has no ledger block yet.
const PlaceholderHash = "PENDING"

var (
	ErrNotFound     = errors.New("inventory: lot not found")
	ErrNotAvailable = errors.New("inventory: lot is not available")
)

// Lot is an inventory batch. LastBlockHash is a non-owning back-reference into
// the ledger: the hash of the most recent block that concerns this lot.
type Lot struct {
	ID            uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Date          time.Time `gorm:"column:date;type:date;not null" json:"date"`
	Item          string    `gorm:"column:item;size:128;not null" json:"item"`
	Category      string    `gorm:"column:category;size:64;not null" json:"category"`
	Type          string    `gorm:"column:type;size:64;not null" json:"type"`
	Qty           int       `gorm:"column:qty;not null" json:"qty"`
	Owner         string    `gorm:"column:owner;size:64;not null" json:"owner"`
	Status        Status    `gorm:"column:status;size:16;not null;default:'AVAILABLE';index:idx_inventory_status" json:"status"`
	LastBlockHash string    `gorm:"column:last_block_hash;size:64;not null;index:idx_inventory_last_block_hash" json:"last_block_hash"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

func (Lot) TableName() string { return "inventory" }
