package invoice

import "context"

type Repository interface {
	Create(ctx context.Context, inv *Invoice) error
	Save(ctx context.Context, inv *Invoice) error
	GetByID(ctx context.Context, id uint64) (*Invoice, error)
	// GetByIDForUpdate locks the invoice row for the remainder of the transaction.
	GetByIDForUpdate(ctx context.Context, id uint64) (*Invoice, error)
	// GetByLastBlockHash finds the invoice a ledger block refers to (backfill).
	GetByLastBlockHash(ctx context.Context, hash string) (*Invoice, error)
	List(ctx context.Context) ([]Invoice, error)
}
