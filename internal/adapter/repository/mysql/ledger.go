package mysql

import (
	"context"
	"errors"

	ledgerDomain "nexus-backend/internal/domain/ledger"
	"nexus-backend/pkg/chain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LedgerRepository struct{ db *gorm.DB }

func NewLedgerRepository(db *gorm.DB) *LedgerRepository { return &LedgerRepository{db: db} }

func (r *LedgerRepository) Append(ctx context.Context, b *ledgerDomain.Block) error {
	return r.db.WithContext(ctx).Create(b).Error
}

// LastHashForUpdate locks the newest ledger row so "read last hash, write new
// block" is atomic across all callers sharing the database. On sqlite the lock
// clause is a no-op; the appender mutex covers that case.
func (r *LedgerRepository) LastHashForUpdate(ctx context.Context) (string, error) {
	var b ledgerDomain.Block
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Order("id DESC").
		First(&b)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return chain.GenesisHash, nil
		}
		return "", res.Error
	}
	return chain.NormalizeHash(b.Hash), nil
}

func (r *LedgerRepository) List(ctx context.Context) ([]ledgerDomain.Block, error) {
	var out []ledgerDomain.Block
	res := r.db.WithContext(ctx).Order("id ASC").Find(&out)
	return out, res.Error
}

func (r *LedgerRepository) UpdatePayload(ctx context.Context, id uint64, payloadJSON string) error {
	res := r.db.WithContext(ctx).
		Model(&ledgerDomain.Block{}).
		Where("id = ?", id).
		Update("payload_json", payloadJSON)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ledgerDomain.ErrNotFound
	}
	return nil
}
