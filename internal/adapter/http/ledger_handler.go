package http

import (
	"net/http"
	"time"

	ledgerDomain "nexus-backend/internal/domain/ledger"
	"nexus-backend/internal/usecase/ledger"
	"nexus-backend/pkg/chain"

	"github.com/labstack/echo/v4"
)

type LedgerHandler struct{ uc *ledger.Usecase }

func NewLedgerHandler(uc *ledger.Usecase) *LedgerHandler {
	return &LedgerHandler{uc: uc}
}

// blockDTO renders timestamps the way they were hashed, so a reader can
// recompute a block from the listing alone.
type blockDTO struct {
	ID        uint64 `json:"id"`
	Timestamp string `json:"timestamp"`
	Actor     string `json:"actor"`
	Action    string `json:"action"`
	TxID      string `json:"tx_id"`
	PrevHash  string `json:"prev_hash"`
	Payload   string `json:"payload"`
	Hash      string `json:"hash"`
}

func toBlockDTO(b ledgerDomain.Block) blockDTO {
	return blockDTO{
		ID:        b.ID,
		Timestamp: chain.FormatTimestamp(b.Timestamp.UTC()),
		Actor:     b.Actor,
		Action:    b.Action,
		TxID:      b.TxID,
		PrevHash:  b.PrevHash,
		Payload:   b.PayloadJSON,
		Hash:      b.Hash,
	}
}

func (h *LedgerHandler) ListBlocks(c echo.Context) error {
	blocks, err := h.uc.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not list ledger"})
	}
	out := make([]blockDTO, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, toBlockDTO(b))
	}
	return c.JSON(http.StatusOK, out)
}

func (h *LedgerHandler) VerifyChain(c echo.Context) error {
	res, err := h.uc.Verify(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "verification failed to run"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"ok":         res.OK,
		"message":    res.Message,
		"checked_at": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *LedgerHandler) BackfillPayloads(c echo.Context) error {
	report, err := h.uc.Backfill(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "backfill failed to run"})
	}
	return c.JSON(http.StatusOK, report)
}
