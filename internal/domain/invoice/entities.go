package invoice

import (
	"errors"
	"time"
)

type Status string

const (
	StatusPendingApproval Status = "PENDING_APPROVAL"
	StatusApproved        Status = "APPROVED"
	StatusRejected        Status = "REJECTED"
)

// PlaceholderHash marks an invoice that has no approval block yet.
const PlaceholderHash = "PENDING"

var (
	ErrNotFound   = errors.New("invoice: invoice not found")
	ErrNotPending = errors.New("invoice: invoice is not pending approval")
)

// Invoice references exactly one inventory lot, which it reserves while
// pending. APPROVED and REJECTED are terminal and reached exactly once.
type Invoice struct {
	ID            uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Date          time.Time `gorm:"column:date;type:date;not null" json:"date"`
	Client        string    `gorm:"column:client;size:128;not null" json:"client"`
	Total         float64   `gorm:"column:total;type:decimal(18,2);not null" json:"total"`
	Owner         string    `gorm:"column:owner;size:64;not null" json:"owner"`
	LotID         uint64    `gorm:"column:lot_id;not null;index:idx_invoices_lot_id" json:"lot_id"`
	Status        Status    `gorm:"column:status;size:20;not null;default:'PENDING_APPROVAL';index:idx_invoices_status" json:"status"`
	LastBlockHash string    `gorm:"column:last_block_hash;size:64;not null;index:idx_invoices_last_block_hash" json:"last_block_hash"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

func (Invoice) TableName() string { return "invoices" }
