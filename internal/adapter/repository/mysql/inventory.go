package mysql

import (
	"context"

	inventoryDomain "nexus-backend/internal/domain/inventory"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type InventoryRepository struct{ db *gorm.DB }

func NewInventoryRepository(db *gorm.DB) *InventoryRepository { return &InventoryRepository{db: db} }

func (r *InventoryRepository) Create(ctx context.Context, l *inventoryDomain.Lot) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *InventoryRepository) Save(ctx context.Context, l *inventoryDomain.Lot) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *InventoryRepository) GetByID(ctx context.Context, id uint64) (*inventoryDomain.Lot, error) {
	var out inventoryDomain.Lot
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *InventoryRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*inventoryDomain.Lot, error) {
	var out inventoryDomain.Lot
	res := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&out)
	return &out, res.Error
}

func (r *InventoryRepository) GetByLastBlockHash(ctx context.Context, hash string) (*inventoryDomain.Lot, error) {
	var out inventoryDomain.Lot
	res := r.db.WithContext(ctx).Where("last_block_hash = ?", hash).First(&out)
	return &out, res.Error
}

func (r *InventoryRepository) List(ctx context.Context) ([]inventoryDomain.Lot, error) {
	var out []inventoryDomain.Lot
	res := r.db.WithContext(ctx).Order("id ASC").Find(&out)
	return out, res.Error
}
