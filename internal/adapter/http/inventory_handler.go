package http

import (
	"errors"
	"net/http"

	"nexus-backend/internal/adapter/middleware"
	inventoryDomain "nexus-backend/internal/domain/inventory"
	"nexus-backend/internal/usecase/inventory"

	"github.com/labstack/echo/v4"
)

type InventoryHandler struct{ uc *inventory.Usecase }

func NewInventoryHandler(uc *inventory.Usecase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

type createLotReq struct {
	Date     string  `json:"date"     validate:"required,datetime=2006-01-02"`
	Item     string  `json:"item"     validate:"required"`
	Category string  `json:"category" validate:"required"`
	Type     string  `json:"type"     validate:"required"`
	Qty      float64 `json:"qty"      validate:"required,intlike,gte=1"`
}

func (h *InventoryHandler) CreateLot(c echo.Context) error {
	var req createLotReq
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

	dto, err := h.uc.Create(c.Request().Context(), inventory.CreateLotInput{
		Date:     mustDate(req.Date),
		Item:     req.Item,
		Category: req.Category,
		Type:     req.Type,
		Qty:      int(req.Qty),
		Actor:    sess.Username,
	})
	if err != nil {
		if errors.Is(err, inventory.ErrInvalidInput) {
			return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not create lot"})
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *InventoryHandler) GetLot(c echo.Context) error {
	id, ok := pathID(c, "lot_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid lot_id path param"})
	}
	dto, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, inventoryDomain.ErrNotFound) {
			return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
		}
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not load lot"})
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *InventoryHandler) ListLots(c echo.Context) error {
	dtos, err := h.uc.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "could not list lots"})
	}
	return c.JSON(http.StatusOK, dtos)
}
