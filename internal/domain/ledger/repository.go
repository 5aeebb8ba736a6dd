package ledger

import "context"

type Repository interface {
	// Append persists a fully computed block at the tail of the chain.
	Append(ctx context.Context, b *Block) error

	// LastHashForUpdate returns the hash of the newest block, locking that row
	// for the remainder of the transaction so concurrent appenders serialize.
	// Returns chain.GenesisHash when the ledger is empty.
	LastHashForUpdate(ctx context.Context) (string, error)

	// List returns all blocks in sequence order.
	List(ctx context.Context) ([]Block, error)

	// UpdatePayload rewrites the stored payload of one block (backfill only).
	UpdatePayload(ctx context.Context, id uint64, payloadJSON string) error
}
