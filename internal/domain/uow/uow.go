package uow

import (
	"context"

	"nexus-backend/internal/domain/inventory"
	"nexus-backend/internal/domain/invoice"
	"nexus-backend/internal/domain/ledger"
)

// Repos bundles the transaction-bound repositories handed to a unit of work.
type Repos struct {
	Ledger   ledger.Repository
	Lots     inventory.Repository
	Invoices invoice.Repository
}

// UnitOfWork runs fn inside one database transaction. A ledger append and its
// business-state mutation always share a single WithinTx call, so the two
// commit or roll back together.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(r Repos) error) error
}
