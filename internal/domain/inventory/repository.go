package inventory

import "context"

type Repository interface {
	Create(ctx context.Context, l *Lot) error
	Save(ctx context.Context, l *Lot) error
	GetByID(ctx context.Context, id uint64) (*Lot, error)
	// GetByIDForUpdate locks the lot row for the remainder of the transaction.
	GetByIDForUpdate(ctx context.Context, id uint64) (*Lot, error)
	// GetByLastBlockHash finds the lot a ledger block refers to (backfill).
	GetByLastBlockHash(ctx context.Context, hash string) (*Lot, error)
	List(ctx context.Context) ([]Lot, error)
}
