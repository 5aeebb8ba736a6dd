package invoice

import (
	"context"
	"errors"
	"time"

	inventoryDomain "nexus-backend/internal/domain/inventory"
	invoiceDomain "nexus-backend/internal/domain/invoice"
	ledgerDomain "nexus-backend/internal/domain/ledger"
	"nexus-backend/internal/domain/uow"
	ledgerUC "nexus-backend/internal/usecase/ledger"
	"nexus-backend/pkg/chain"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

var ErrInvalidInput = errors.New("invoice: invalid input")

type Usecase struct {
	repo     invoiceDomain.Repository
	uow      uow.UnitOfWork
	appender *ledgerUC.Appender
	// eagerLedger writes an INVOICE_CREATE block when the invoice is opened;
	// the deferred default writes only the approval block.
	eagerLedger bool
	log         zerolog.Logger
}

func NewUsecase(repo invoiceDomain.Repository, tx uow.UnitOfWork, ap *ledgerUC.Appender, eagerLedger bool, log zerolog.Logger) *Usecase {
	return &Usecase{repo: repo, uow: tx, appender: ap, eagerLedger: eagerLedger, log: log}
}

type OpenInvoiceInput struct {
	LotID  uint64
	Date   time.Time
	Client string
	Total  float64
	Actor  string
}

type InvoiceDTO struct {
	ID            uint64    `json:"id"`
	Date          string    `json:"date"`
	Client        string    `json:"client"`
	Total         float64   `json:"total"`
	Owner         string    `json:"owner"`
	LotID         uint64    `json:"lot_id"`
	Status        string    `json:"status"`
	LastBlockHash string    `json:"last_block_hash"`
	TxID          string    `json:"tx_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type DecisionDTO struct {
	InvoiceID uint64 `json:"invoice_id"`
	Status    string `json:"status"`
	BlockHash string `json:"block_hash,omitempty"`
}

// Open creates a PENDING_APPROVAL invoice against an AVAILABLE lot and
// reserves the lot. Reserving is reversible, so the deferred mode writes no
// ledger block here.
func (u *Usecase) Open(ctx context.Context, in OpenInvoiceInput) (*InvoiceDTO, error) {
	if in.Client == "" || in.Total <= 0 || in.Actor == "" {
		return nil, ErrInvalidInput
	}

	inv := &invoiceDomain.Invoice{
		Date:          in.Date.UTC(),
		Client:        in.Client,
		Total:         in.Total,
		Owner:         in.Actor,
		LotID:         in.LotID,
		Status:        invoiceDomain.StatusPendingApproval,
		LastBlockHash: invoiceDomain.PlaceholderHash,
	}
	var txID string

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		l, err := r.Lots.GetByIDForUpdate(ctx, in.LotID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return inventoryDomain.ErrNotFound
			}
			return err
		}
		if l.Status != inventoryDomain.StatusAvailable {
			return inventoryDomain.ErrNotAvailable
		}

		if err := r.Invoices.Create(ctx, inv); err != nil {
			return err
		}
		l.Status = inventoryDomain.StatusReserved
		if err := r.Lots.Save(ctx, l); err != nil {
			return err
		}

		if !u.eagerLedger {
			return nil
		}
		txID = chain.MakeTxID(ledgerDomain.TxPrefixInvoice, inv.ID)
		hash, err := u.appender.Append(ctx, r, in.Actor, ledgerDomain.ActionInvoiceCreate, txID, ledgerUC.InvoicePayload(inv))
		if err != nil {
			return err
		}
		inv.LastBlockHash = hash
		return r.Invoices.Save(ctx, inv)
	})
	if err != nil {
		return nil, err
	}

	u.log.Info().Uint64("invoice_id", inv.ID).Uint64("lot_id", in.LotID).Str("actor", in.Actor).Msg("invoice opened, lot reserved")
	dto := toDTO(inv)
	dto.TxID = txID
	return &dto, nil
}

// Approve moves a pending invoice to APPROVED and its lot to SOLD, and writes
// the INVOICE_APPROVED block in the same transaction. Both records receive the
// new block's hash.
func (u *Usecase) Approve(ctx context.Context, invoiceID uint64, actor string) (*DecisionDTO, error) {
	var dto *DecisionDTO

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		inv, err := r.Invoices.GetByIDForUpdate(ctx, invoiceID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return invoiceDomain.ErrNotFound
			}
			return err
		}
		if inv.Status != invoiceDomain.StatusPendingApproval {
			return invoiceDomain.ErrNotPending
		}

		l, err := r.Lots.GetByIDForUpdate(ctx, inv.LotID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return inventoryDomain.ErrNotFound
			}
			return err
		}
		if l.Status != inventoryDomain.StatusReserved && l.Status != inventoryDomain.StatusAvailable {
			return inventoryDomain.ErrNotAvailable
		}

		txID := chain.MakeTxID(ledgerDomain.TxPrefixApproval, inv.ID)
		hash, err := u.appender.Append(ctx, r, actor, ledgerDomain.ActionInvoiceApproved, txID, ledgerUC.ApprovalPayload(inv, l, actor))
		if err != nil {
			return err
		}

		inv.Status = invoiceDomain.StatusApproved
		inv.LastBlockHash = hash
		if err := r.Invoices.Save(ctx, inv); err != nil {
			return err
		}
		l.Status = inventoryDomain.StatusSold
		l.LastBlockHash = hash
		if err := r.Lots.Save(ctx, l); err != nil {
			return err
		}

		dto = &DecisionDTO{InvoiceID: inv.ID, Status: string(inv.Status), BlockHash: hash}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.log.Info().Uint64("invoice_id", dto.InvoiceID).Str("actor", actor).Str("block_hash", dto.BlockHash).Msg("invoice approved")
	return dto, nil
}

// Reject moves a pending invoice to REJECTED and releases its lot back to
// AVAILABLE. The transition is non-financial and writes no ledger block.
func (u *Usecase) Reject(ctx context.Context, invoiceID uint64, actor string) (*DecisionDTO, error) {
	var dto *DecisionDTO

	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		inv, err := r.Invoices.GetByIDForUpdate(ctx, invoiceID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return invoiceDomain.ErrNotFound
			}
			return err
		}
		if inv.Status != invoiceDomain.StatusPendingApproval {
			return invoiceDomain.ErrNotPending
		}

		l, err := r.Lots.GetByIDForUpdate(ctx, inv.LotID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return inventoryDomain.ErrNotFound
			}
			return err
		}

		inv.Status = invoiceDomain.StatusRejected
		if err := r.Invoices.Save(ctx, inv); err != nil {
			return err
		}
		l.Status = inventoryDomain.StatusAvailable
		if err := r.Lots.Save(ctx, l); err != nil {
			return err
		}

		dto = &DecisionDTO{InvoiceID: inv.ID, Status: string(inv.Status)}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.log.Info().Uint64("invoice_id", dto.InvoiceID).Str("actor", actor).Msg("invoice rejected, lot released")
	return dto, nil
}

func (u *Usecase) Get(ctx context.Context, id uint64) (*InvoiceDTO, error) {
	inv, err := u.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invoiceDomain.ErrNotFound
		}
		return nil, err
	}
	dto := toDTO(inv)
	return &dto, nil
}

func (u *Usecase) List(ctx context.Context) ([]InvoiceDTO, error) {
	invoices, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]InvoiceDTO, 0, len(invoices))
	for i := range invoices {
		out = append(out, toDTO(&invoices[i]))
	}
	return out, nil
}

func toDTO(inv *invoiceDomain.Invoice) InvoiceDTO {
	return InvoiceDTO{
		ID:            inv.ID,
		Date:          inv.Date.Format("2006-01-02"),
		Client:        inv.Client,
		Total:         inv.Total,
		Owner:         inv.Owner,
		LotID:         inv.LotID,
		Status:        string(inv.Status),
		LastBlockHash: inv.LastBlockHash,
		CreatedAt:     inv.CreatedAt,
	}
}
