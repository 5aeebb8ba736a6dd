package ledger

import (
	"context"
	"sync"
	"time"

	ledgerDomain "nexus-backend/internal/domain/ledger"
	"nexus-backend/internal/domain/uow"
	"nexus-backend/pkg/chain"
)

// Appender computes and persists ledger blocks. It must be called inside the
// same transaction as the business mutation the block records, so the two
// commit or roll back together. The mutex serializes "read last hash, write
// block" across in-process callers; the row lock taken by LastHashForUpdate
// covers callers on other connections.
type Appender struct {
	mu  sync.Mutex
	now func() time.Time
}

func NewAppender() *Appender {
	return &Appender{now: time.Now}
}

// Append writes the next block and returns its hash. Hashing is deterministic
// and always succeeds; errors here are storage or payload-encoding failures.
func (a *Appender) Append(ctx context.Context, r uow.Repos, actor, action, txID string, payload map[string]any) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	payloadJSON, err := chain.CanonicalPayload(payload)
	if err != nil {
		return "", err
	}
	prev, err := r.Ledger.LastHashForUpdate(ctx)
	if err != nil {
		return "", err
	}

	ts := chain.TruncateTimestamp(a.now())
	b := &ledgerDomain.Block{
		Timestamp:   ts,
		Actor:       actor,
		Action:      action,
		TxID:        txID,
		PrevHash:    prev,
		PayloadJSON: payloadJSON,
		Hash:        chain.ComputeBlockHash(prev, ts, actor, action, txID, payloadJSON),
	}
	if err := r.Ledger.Append(ctx, b); err != nil {
		return "", err
	}
	return b.Hash, nil
}
