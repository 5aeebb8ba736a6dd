package ledger

import (
	"errors"
	"time"
)

// Actions recorded in the ledger. The two *_CREATE actions are written by the
// eager deployment mode (block at creation time); INVOICE_APPROVED is written
// by the deferred mode when an invoice is approved.
const (
	ActionInventoryCreate = "INVENTORY_CREATE"
	ActionInvoiceCreate   = "INVOICE_CREATE"
	ActionInvoiceApproved = "INVOICE_APPROVED"
)

// Transaction id prefixes, one per action family.
const (
	TxPrefixInventory = "INV"
	TxPrefixInvoice   = "BILL"
	TxPrefixApproval  = "APRV"
)

var ErrNotFound = errors.New("ledger: block not found")

// Block is one immutable record in the append-only audit ledger. ID doubles as
// the sequence number; PrevHash links the block to its predecessor.
type Block struct {
	ID          uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"sequence"`
	Timestamp   time.Time `gorm:"column:ts;type:datetime(6);not null" json:"timestamp"`
	Actor       string    `gorm:"column:actor;size:64;not null" json:"actor"`
	Action      string    `gorm:"column:action;size:32;not null" json:"action"`
	TxID        string    `gorm:"column:tx_id;size:32;not null;uniqueIndex:ux_ledger_tx_id" json:"tx_id"`
	PrevHash    string    `gorm:"column:prev_hash;size:64;not null" json:"prev_hash"`
	PayloadJSON string    `gorm:"column:payload_json;type:text;not null" json:"payload_json"`
	Hash        string    `gorm:"column:hash;size:64;not null;index:idx_ledger_hash" json:"hash"`
}

func (Block) TableName() string { return "ledger" }
