package lotmock

import (
	"context"

	domain "nexus-backend/internal/domain/inventory"

	"gorm.io/gorm"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Only fill in the methods a test needs.
type Repo struct {
	CreateFn             func(ctx context.Context, l *domain.Lot) error
	SaveFn               func(ctx context.Context, l *domain.Lot) error
	GetByIDFn            func(ctx context.Context, id uint64) (*domain.Lot, error)
	GetByIDForUpdateFn   func(ctx context.Context, id uint64) (*domain.Lot, error)
	GetByLastBlockHashFn func(ctx context.Context, hash string) (*domain.Lot, error)
	ListFn               func(ctx context.Context) ([]domain.Lot, error)
}

func (m *Repo) Create(ctx context.Context, l *domain.Lot) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, l *domain.Lot) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Lot, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, id uint64) (*domain.Lot, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) GetByLastBlockHash(ctx context.Context, hash string) (*domain.Lot, error) {
	if m.GetByLastBlockHashFn != nil {
		return m.GetByLastBlockHashFn(ctx, hash)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *Repo) List(ctx context.Context) ([]domain.Lot, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, nil
}
