package ledgermock

import (
	"context"

	domain "nexus-backend/internal/domain/ledger"
	"nexus-backend/pkg/chain"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository. Unfilled
// Append/LastHash fields fall back to an in-memory chain, which lets tests
// exercise the append engine without a database.
type Repo struct {
	AppendFn            func(ctx context.Context, b *domain.Block) error
	LastHashForUpdateFn func(ctx context.Context) (string, error)
	ListFn              func(ctx context.Context) ([]domain.Block, error)
	UpdatePayloadFn     func(ctx context.Context, id uint64, payloadJSON string) error

	// Blocks is the in-memory chain used by the fallbacks.
	Blocks []domain.Block
}

func (m *Repo) Append(ctx context.Context, b *domain.Block) error {
	if m.AppendFn != nil {
		return m.AppendFn(ctx, b)
	}
	b.ID = uint64(len(m.Blocks) + 1)
	m.Blocks = append(m.Blocks, *b)
	return nil
}

func (m *Repo) LastHashForUpdate(ctx context.Context) (string, error) {
	if m.LastHashForUpdateFn != nil {
		return m.LastHashForUpdateFn(ctx)
	}
	if len(m.Blocks) == 0 {
		return chain.GenesisHash, nil
	}
	return m.Blocks[len(m.Blocks)-1].Hash, nil
}

func (m *Repo) List(ctx context.Context) ([]domain.Block, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	out := make([]domain.Block, len(m.Blocks))
	copy(out, m.Blocks)
	return out, nil
}

func (m *Repo) UpdatePayload(ctx context.Context, id uint64, payloadJSON string) error {
	if m.UpdatePayloadFn != nil {
		return m.UpdatePayloadFn(ctx, id, payloadJSON)
	}
	for i := range m.Blocks {
		if m.Blocks[i].ID == id {
			m.Blocks[i].PayloadJSON = payloadJSON
			return nil
		}
	}
	return domain.ErrNotFound
}
