package http

import (
	"errors"
	"net/http"

	"nexus-backend/internal/adapter/middleware"
	inventoryDomain "nexus-backend/internal/domain/inventory"
	invoiceDomain "nexus-backend/internal/domain/invoice"
	"nexus-backend/internal/usecase/invoice"

	"github.com/labstack/echo/v4"
)

type InvoiceHandler struct{ uc *invoice.Usecase }

func NewInvoiceHandler(uc *invoice.Usecase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc}
}

type openInvoiceReq struct {
	LotID  uint64  `json:"lot_id" validate:"required,gte=1"`
	Date   string  `json:"date"   validate:"required,datetime=2006-01-02"`
	Client string  `json:"client" validate:"required"`
	Total  float64 `json:"total"  validate:"required,dec2,gte=0"`
}

func (h *InvoiceHandler) OpenInvoice(c echo.Context) error {
	var req openInvoiceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	sess := middleware.CurrentSession(c)

	dto, err := h.uc.Open(c.Request().Context(), invoice.OpenInvoiceInput{
		LotID:  req.LotID,
		Date:   mustDate(req.Date),
		Client: req.Client,
		Total:  req.Total,
		Actor:  sess.Username,
	})
	if err != nil {
		return h.mapDomainErr(c, err, "could not open invoice")
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *InvoiceHandler) ApproveInvoice(c echo.Context) error {
	id, ok := pathID(c, "invoice_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid invoice_id path param"})
	}
	sess := middleware.CurrentSession(c)

	dto, err := h.uc.Approve(c.Request().Context(), id, sess.Username)
	if err != nil {
		return h.mapDomainErr(c, err, "could not approve invoice")
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *InvoiceHandler) RejectInvoice(c echo.Context) error {
	id, ok := pathID(c, "invoice_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid invoice_id path param"})
	}
	sess := middleware.CurrentSession(c)

	dto, err := h.uc.Reject(c.Request().Context(), id, sess.Username)
	if err != nil {
		return h.mapDomainErr(c, err, "could not reject invoice")
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *InvoiceHandler) GetInvoice(c echo.Context) error {
	id, ok := pathID(c, "invoice_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid invoice_id path param"})
	}
	dto, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return h.mapDomainErr(c, err, "could not load invoice")
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *InvoiceHandler) ListInvoices(c echo.Context) error {
	dtos, err := h.uc.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not list invoices"})
	}
	return c.JSON(http.StatusOK, dtos)
}

// Map domain errors → HTTP codes.
func (h *InvoiceHandler) mapDomainErr(c echo.Context, err error, fallback string) error {
	switch {
	case errors.Is(err, invoiceDomain.ErrNotFound), errors.Is(err, inventoryDomain.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	case errors.Is(err, invoiceDomain.ErrNotPending), errors.Is(err, inventoryDomain.ErrNotAvailable):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, invoice.ErrInvalidInput):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: fallback})
	}
}
