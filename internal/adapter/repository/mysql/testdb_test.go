package mysql

import (
	"testing"
	"time"

	inventoryDomain "nexus-backend/internal/domain/inventory"
	invoiceDomain "nexus-backend/internal/domain/invoice"
	ledgerDomain "nexus-backend/internal/domain/ledger"
	userDomain "nexus-backend/internal/domain/user"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// openTestDB creates an in-memory sqlite DB and migrates every table. The
// domain models avoid MySQL-only column types, so they migrate cleanly here.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&ledgerDomain.Block{},
		&inventoryDomain.Lot{},
		&invoiceDomain.Invoice{},
		&userDomain.User{},
	); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func makeLot(item string) *inventoryDomain.Lot {
	return &inventoryDomain.Lot{
		Date:          time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		Item:          item,
		Category:      "electronics",
		Type:          "retail",
		Qty:           50,
		Owner:         "warehouse",
		Status:        inventoryDomain.StatusAvailable,
		LastBlockHash: inventoryDomain.PlaceholderHash,
	}
}

func makeInvoice(lotID uint64, client string) *invoiceDomain.Invoice {
	return &invoiceDomain.Invoice{
		Date:          time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC),
		Client:        client,
		Total:         100.0,
		Owner:         "office",
		LotID:         lotID,
		Status:        invoiceDomain.StatusPendingApproval,
		LastBlockHash: invoiceDomain.PlaceholderHash,
	}
}
