package invoice

import (
	"context"
	"errors"
	"testing"
	"time"

	inventoryDomain "nexus-backend/internal/domain/inventory"
	invoiceDomain "nexus-backend/internal/domain/invoice"
	ledgerDomain "nexus-backend/internal/domain/ledger"
	"nexus-backend/internal/domain/uow"
	ledgerUC "nexus-backend/internal/usecase/ledger"
	"nexus-backend/internal/testutil/invoicemock"
	"nexus-backend/internal/testutil/ledgermock"
	"nexus-backend/internal/testutil/lotmock"
	"nexus-backend/internal/testutil/uowmock"
	"nexus-backend/pkg/chain"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type fixture struct {
	lots     *lotmock.Repo
	invoices *invoicemock.Repo
	ledger   *ledgermock.Repo
	uc       *Usecase
}

func newFixture(eager bool, lots *lotmock.Repo, invoices *invoicemock.Repo) *fixture {
	f := &fixture{lots: lots, invoices: invoices, ledger: &ledgermock.Repo{}}
	tx := uowmock.Passthrough(uow.Repos{Ledger: f.ledger, Lots: lots, Invoices: invoices})
	f.uc = NewUsecase(invoices, tx, ledgerUC.NewAppender(), eager, zerolog.Nop())
	return f
}

func pendingInvoice(id, lotID uint64) *invoiceDomain.Invoice {
	return &invoiceDomain.Invoice{
		ID:            id,
		Date:          time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC),
		Client:        "ACME",
		Total:         100.0,
		Owner:         "office",
		LotID:         lotID,
		Status:        invoiceDomain.StatusPendingApproval,
		LastBlockHash: invoiceDomain.PlaceholderHash,
	}
}

func reservedLot(id uint64) *inventoryDomain.Lot {
	return &inventoryDomain.Lot{
		ID:            id,
		Date:          time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		Item:          "X",
		Category:      "electronics",
		Type:          "retail",
		Qty:           50,
		Owner:         "warehouse",
		Status:        inventoryDomain.StatusReserved,
		LastBlockHash: inventoryDomain.PlaceholderHash,
	}
}

func TestUsecase_Approve(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path pending -> approved, lot sold, block written", func(t *testing.T) {
		var savedInv *invoiceDomain.Invoice
		var savedLot *inventoryDomain.Lot

		lots := &lotmock.Repo{
			GetByIDForUpdateFn: func(ctx context.Context, id uint64) (*inventoryDomain.Lot, error) {
				return reservedLot(id), nil
			},
			SaveFn: func(ctx context.Context, l *inventoryDomain.Lot) error { savedLot = l; return nil },
		}
		invoices := &invoicemock.Repo{
			GetByIDForUpdateFn: func(ctx context.Context, id uint64) (*invoiceDomain.Invoice, error) {
				return pendingInvoice(id, 777), nil
			},
			SaveFn: func(ctx context.Context, inv *invoiceDomain.Invoice) error { savedInv = inv; return nil },
		}
		f := newFixture(false, lots, invoices)

		dto, err := f.uc.Approve(ctx, 42, "admin")
		if err != nil {
			t.Fatalf("Approve: %v", err)
		}
		if dto.Status != string(invoiceDomain.StatusApproved) {
			t.Fatalf("dto status = %s", dto.Status)
		}
		if !chain.IsSHA256Hex(dto.BlockHash) {
			t.Fatalf("block hash not a digest: %q", dto.BlockHash)
		}
		if len(f.ledger.Blocks) != 1 {
			t.Fatalf("blocks written = %d, want 1", len(f.ledger.Blocks))
		}
		b := f.ledger.Blocks[0]
		if b.Action != ledgerDomain.ActionInvoiceApproved || b.TxID != "APRV_000042" {
			t.Fatalf("unexpected block: %+v", b)
		}
		if b.PrevHash != chain.GenesisHash {
			t.Fatalf("first block prev hash = %q", b.PrevHash)
		}
		if savedInv.Status != invoiceDomain.StatusApproved || savedInv.LastBlockHash != b.Hash {
			t.Fatalf("invoice not updated: %+v", savedInv)
		}
		if savedLot.Status != inventoryDomain.StatusSold || savedLot.LastBlockHash != b.Hash {
			t.Fatalf("lot not updated: %+v", savedLot)
		}
	})

	t.Run("double submission fails Conflict with no ledger write", func(t *testing.T) {
		lots := &lotmock.Repo{}
		invoices := &invoicemock.Repo{
			GetByIDForUpdateFn: func(ctx context.Context, id uint64) (*invoiceDomain.Invoice, error) {
				inv := pendingInvoice(id, 777)
				inv.Status = invoiceDomain.StatusApproved
				return inv, nil
			},
		}
		f := newFixture(false, lots, invoices)

		if _, err := f.uc.Approve(ctx, 42, "admin"); !errors.Is(err, invoiceDomain.ErrNotPending) {
			t.Fatalf("err = %v, want ErrNotPending", err)
		}
		if len(f.ledger.Blocks) != 0 {
			t.Fatalf("ledger written on rejected approval: %d blocks", len(f.ledger.Blocks))
		}
	})

	t.Run("invoice missing fails NotFound", func(t *testing.T) {
		f := newFixture(false, &lotmock.Repo{}, &invoicemock.Repo{})
		if _, err := f.uc.Approve(ctx, 9, "admin"); !errors.Is(err, invoiceDomain.ErrNotFound) {
			t.Fatalf("err = %v, want invoice ErrNotFound", err)
		}
	})

	t.Run("lot already sold fails Conflict", func(t *testing.T) {
		lots := &lotmock.Repo{
			GetByIDForUpdateFn: func(ctx context.Context, id uint64) (*inventoryDomain.Lot, error) {
				l := reservedLot(id)
				l.Status = inventoryDomain.StatusSold
				return l, nil
			},
		}
		invoices := &invoicemock.Repo{
			GetByIDForUpdateFn: func(ctx context.Context, id uint64) (*invoiceDomain.Invoice, error) {
				return pendingInvoice(id, 777), nil
			},
		}
		f := newFixture(false, lots, invoices)

		if _, err := f.uc.Approve(ctx, 42, "admin"); !errors.Is(err, inventoryDomain.ErrNotAvailable) {
			t.Fatalf("err = %v, want ErrNotAvailable", err)
		}
		if len(f.ledger.Blocks) != 0 {
			t.Fatal("ledger written despite conflicting lot state")
		}
	})
}

func TestUsecase_Open(t *testing.T) {
	ctx := context.Background()
	in := OpenInvoiceInput{
		LotID:  7,
		Date:   time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC),
		Client: "ACME",
		Total:  100.0,
		Actor:  "office",
	}

	t.Run("reserves an available lot without a ledger write", func(t *testing.T) {
		var savedLot *inventoryDomain.Lot
		lots := &lotmock.Repo{
			GetByIDForUpdateFn: func(ctx context.Context, id uint64) (*inventoryDomain.Lot, error) {
				l := reservedLot(id)
				l.Status = inventoryDomain.StatusAvailable
				return l, nil
			},
			SaveFn: func(ctx context.Context, l *inventoryDomain.Lot) error { savedLot = l; return nil },
		}
		invoices := &invoicemock.Repo{
			CreateFn: func(ctx context.Context, inv *invoiceDomain.Invoice) error { inv.ID = 31; return nil },
		}
		f := newFixture(false, lots, invoices)

		dto, err := f.uc.Open(ctx, in)
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		if dto.Status != string(invoiceDomain.StatusPendingApproval) || dto.LastBlockHash != invoiceDomain.PlaceholderHash {
			t.Fatalf("unexpected dto: %+v", dto)
		}
		if savedLot.Status != inventoryDomain.StatusReserved {
			t.Fatalf("lot status = %s, want RESERVED", savedLot.Status)
		}
		if len(f.ledger.Blocks) != 0 {
			t.Fatal("deferred mode must not write a block on open")
		}
	})

	t.Run("reserved lot fails Conflict and creates nothing", func(t *testing.T) {
		created := false
		lots := &lotmock.Repo{
			GetByIDForUpdateFn: func(ctx context.Context, id uint64) (*inventoryDomain.Lot, error) {
				return reservedLot(id), nil
			},
		}
		invoices := &invoicemock.Repo{
			CreateFn: func(ctx context.Context, inv *invoiceDomain.Invoice) error { created = true; return nil },
		}
		f := newFixture(false, lots, invoices)

		if _, err := f.uc.Open(ctx, in); !errors.Is(err, inventoryDomain.ErrNotAvailable) {
			t.Fatalf("err = %v, want ErrNotAvailable", err)
		}
		if created {
			t.Fatal("invoice created despite conflict")
		}
	})

	t.Run("missing lot fails NotFound", func(t *testing.T) {
		f := newFixture(false, &lotmock.Repo{}, &invoicemock.Repo{})
		if _, err := f.uc.Open(ctx, in); !errors.Is(err, inventoryDomain.ErrNotFound) {
			t.Fatalf("err = %v, want ErrNotFound", err)
		}
	})

	t.Run("eager mode writes an INVOICE_CREATE block at open", func(t *testing.T) {
		lots := &lotmock.Repo{
			GetByIDForUpdateFn: func(ctx context.Context, id uint64) (*inventoryDomain.Lot, error) {
				l := reservedLot(id)
				l.Status = inventoryDomain.StatusAvailable
				return l, nil
			},
		}
		var lastSaved *invoiceDomain.Invoice
		invoices := &invoicemock.Repo{
			CreateFn: func(ctx context.Context, inv *invoiceDomain.Invoice) error { inv.ID = 5; return nil },
			SaveFn:   func(ctx context.Context, inv *invoiceDomain.Invoice) error { lastSaved = inv; return nil },
		}
		f := newFixture(true, lots, invoices)

		dto, err := f.uc.Open(ctx, in)
		if err != nil {
			t.Fatalf("Open eager: %v", err)
		}
		if len(f.ledger.Blocks) != 1 {
			t.Fatalf("blocks = %d, want 1", len(f.ledger.Blocks))
		}
		b := f.ledger.Blocks[0]
		if b.Action != ledgerDomain.ActionInvoiceCreate || b.TxID != "BILL_000005" {
			t.Fatalf("unexpected block: %+v", b)
		}
		if dto.TxID != "BILL_000005" || lastSaved.LastBlockHash != b.Hash {
			t.Fatalf("eager hash not propagated: dto=%+v saved=%+v", dto, lastSaved)
		}
	})

	t.Run("invalid input", func(t *testing.T) {
		f := newFixture(false, &lotmock.Repo{}, &invoicemock.Repo{})
		bad := in
		bad.Client = ""
		if _, err := f.uc.Open(ctx, bad); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("err = %v, want ErrInvalidInput", err)
		}
	})
}

func TestUsecase_Reject(t *testing.T) {
	ctx := context.Background()

	t.Run("releases the lot and writes no block", func(t *testing.T) {
		var savedInv *invoiceDomain.Invoice
		var savedLot *inventoryDomain.Lot
		lots := &lotmock.Repo{
			GetByIDForUpdateFn: func(ctx context.Context, id uint64) (*inventoryDomain.Lot, error) {
				return reservedLot(id), nil
			},
			SaveFn: func(ctx context.Context, l *inventoryDomain.Lot) error { savedLot = l; return nil },
		}
		invoices := &invoicemock.Repo{
			GetByIDForUpdateFn: func(ctx context.Context, id uint64) (*invoiceDomain.Invoice, error) {
				return pendingInvoice(id, 777), nil
			},
			SaveFn: func(ctx context.Context, inv *invoiceDomain.Invoice) error { savedInv = inv; return nil },
		}
		f := newFixture(false, lots, invoices)

		dto, err := f.uc.Reject(ctx, 42, "admin")
		if err != nil {
			t.Fatalf("Reject: %v", err)
		}
		if dto.Status != string(invoiceDomain.StatusRejected) || dto.BlockHash != "" {
			t.Fatalf("unexpected dto: %+v", dto)
		}
		if savedInv.Status != invoiceDomain.StatusRejected {
			t.Fatalf("invoice status = %s", savedInv.Status)
		}
		if savedLot.Status != inventoryDomain.StatusAvailable {
			t.Fatalf("lot status = %s, want AVAILABLE", savedLot.Status)
		}
		if len(f.ledger.Blocks) != 0 {
			t.Fatal("reject must not write a ledger block")
		}
	})

	t.Run("non-pending invoice fails Conflict", func(t *testing.T) {
		invoices := &invoicemock.Repo{
			GetByIDForUpdateFn: func(ctx context.Context, id uint64) (*invoiceDomain.Invoice, error) {
				inv := pendingInvoice(id, 777)
				inv.Status = invoiceDomain.StatusRejected
				return inv, nil
			},
		}
		f := newFixture(false, &lotmock.Repo{}, invoices)

		if _, err := f.uc.Reject(ctx, 42, "admin"); !errors.Is(err, invoiceDomain.ErrNotPending) {
			t.Fatalf("err = %v, want ErrNotPending", err)
		}
	})
}

func TestUsecase_Get_NotFound(t *testing.T) {
	invoices := &invoicemock.Repo{
		GetByIDFn: func(ctx context.Context, id uint64) (*invoiceDomain.Invoice, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	f := newFixture(false, &lotmock.Repo{}, invoices)
	if _, err := f.uc.Get(context.Background(), 1); !errors.Is(err, invoiceDomain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
