package inventory

import (
	"context"
	"errors"
	"time"

	inventoryDomain "nexus-backend/internal/domain/inventory"
	ledgerDomain "nexus-backend/internal/domain/ledger"
	"nexus-backend/internal/domain/uow"
	ledgerUC "nexus-backend/internal/usecase/ledger"
	"nexus-backend/pkg/chain"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

var ErrInvalidInput = errors.New("inventory: invalid input")

type Usecase struct {
	repo     inventoryDomain.Repository
	uow      uow.UnitOfWork
	appender *ledgerUC.Appender
	// eagerLedger selects the deployment mode that writes an
	// INVENTORY_CREATE block at creation time. In the default deferred mode
	// a lot reaches the ledger only through invoice approval.
	eagerLedger bool
	log         zerolog.Logger
}

func NewUsecase(repo inventoryDomain.Repository, tx uow.UnitOfWork, ap *ledgerUC.Appender, eagerLedger bool, log zerolog.Logger) *Usecase {
	return &Usecase{repo: repo, uow: tx, appender: ap, eagerLedger: eagerLedger, log: log}
}

type CreateLotInput struct {
	Date     time.Time
	Item     string
	Category string
	Type     string
	Qty      int
	Actor    string
}

type LotDTO struct {
	ID            uint64    `json:"id"`
	Date          string    `json:"date"`
	Item          string    `json:"item"`
	Category      string    `json:"category"`
	Type          string    `json:"type"`
	Qty           int       `json:"qty"`
	Owner         string    `json:"owner"`
	Status        string    `json:"status"`
	LastBlockHash string    `json:"last_block_hash"`
	TxID          string    `json:"tx_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func (u *Usecase) Create(ctx context.Context, in CreateLotInput) (*LotDTO, error) {
	if in.Item == "" || in.Qty <= 0 || in.Actor == "" {
		return nil, ErrInvalidInput
	}

	l := &inventoryDomain.Lot{
		Date:          in.Date.UTC(),
		Item:          in.Item,
		Category:      in.Category,
		Type:          in.Type,
		Qty:           in.Qty,
		Owner:         in.Actor,
		Status:        inventoryDomain.StatusAvailable,
		LastBlockHash: inventoryDomain.PlaceholderHash,
	}
	var txID string

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if err := r.Lots.Create(ctx, l); err != nil {
			return err
		}
		if !u.eagerLedger {
			return nil
		}
		txID = chain.MakeTxID(ledgerDomain.TxPrefixInventory, l.ID)
		hash, err := u.appender.Append(ctx, r, in.Actor, ledgerDomain.ActionInventoryCreate, txID, ledgerUC.LotPayload(l))
		if err != nil {
			return err
		}
		l.LastBlockHash = hash
		return r.Lots.Save(ctx, l)
	})
	if err != nil {
		return nil, err
	}

	u.log.Info().Uint64("lot_id", l.ID).Str("actor", in.Actor).Bool("eager_ledger", u.eagerLedger).Msg("lot created")
	dto := toDTO(l)
	dto.TxID = txID
	return &dto, nil
}

func (u *Usecase) Get(ctx context.Context, id uint64) (*LotDTO, error) {
	l, err := u.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, inventoryDomain.ErrNotFound
		}
		return nil, err
	}
	dto := toDTO(l)
	return &dto, nil
}

func (u *Usecase) List(ctx context.Context) ([]LotDTO, error) {
	lots, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]LotDTO, 0, len(lots))
	for i := range lots {
		out = append(out, toDTO(&lots[i]))
	}
	return out, nil
}

func toDTO(l *inventoryDomain.Lot) LotDTO {
	return LotDTO{
		ID:            l.ID,
		Date:          l.Date.Format("2006-01-02"),
		Item:          l.Item,
		Category:      l.Category,
		Type:          l.Type,
		Qty:           l.Qty,
		Owner:         l.Owner,
		Status:        string(l.Status),
		LastBlockHash: l.LastBlockHash,
		CreatedAt:     l.CreatedAt,
	}
}
