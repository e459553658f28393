package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/almacen-stock/internal/application/dto"
	"github.com/tu-usuario/almacen-stock/internal/application/report"
	"github.com/tu-usuario/almacen-stock/internal/application/stock"
	"github.com/tu-usuario/almacen-stock/internal/domain"
	"github.com/tu-usuario/almacen-stock/internal/domain/entity"
)

// StockHandler maneja movimientos de stock, la actividad reciente y el informe.
type StockHandler struct {
	movements *stock.UseCase
	view      *stock.LedgerView
	report    *report.UseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(movements *stock.UseCase, view *stock.LedgerView, reportUC *report.UseCase) *StockHandler {
	return &StockHandler{movements: movements, view: view, report: reportUC}
}

// RecordMovement godoc
// @Summary      Registrar movimiento de stock
// @Description  Aplica una entrada ("in") o salida ("out") sobre el contador del
//
//	artículo y registra la entrada de auditoría en el ledger. El stock
//	nunca queda negativo; una salida mayor al stock disponible retorna 409.
//
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MovementRequest  true  "item_id, mode (in|out), quantity (default 1)"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/movements [post]
func (h *StockHandler) RecordMovement(c *fiber.Ctx) error {
	userID := GetUserID(c)
	username := GetUsername(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.MovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ItemID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "item_id es requerido"})
	}
	result, err := h.movements.RecordMovement(c.Context(), stock.MovementInput{
		ItemID:   in.ItemID,
		Mode:     in.Mode,
		Quantity: in.Quantity,
		User:     stock.ActingUser{ID: userID, Username: username},
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "mode debe ser 'in' o 'out'"})
		}
		if errors.Is(err, domain.ErrItemNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "artículo no encontrado"})
		}
		if errors.Is(err, domain.ErrInsufficientStock) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
		}
		if errors.Is(err, domain.ErrLedgerAppendFailed) {
			// El contador ya se aplicó pero la auditoría no se pudo escribir.
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "LEDGER_APPEND_FAILED", Message: "movimiento aplicado sin entrada de auditoría"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MovementResponse{
		AmountAfter: result.AmountAfter,
		Entry:       toLedgerEntryDTO(result.Entry),
	})
}

// Resolve godoc
// @Summary      Buscar artículo para el formulario de movimiento
// @Description  Snapshot del artículo (nombre y stock actual) antes de confirmar.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del artículo"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/items/{id} [get]
func (h *StockHandler) Resolve(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	item, err := h.movements.Resolve(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrItemNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "artículo no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.ItemResponse{
		ID:           item.ID,
		EAN:          item.EAN,
		Name:         item.Name,
		Shelf:        item.Shelf,
		Box:          item.Box,
		Amount:       item.Amount,
		MinAmount:    item.MinAmount,
		BelowMinimum: item.BelowMinimum(),
		CreatedAt:    item.CreatedAt,
		UpdatedAt:    item.UpdatedAt,
	})
}

// RecentActivity godoc
// @Summary      Actividad reciente del ledger
// @Description  Entradas más recientes primero, acotadas al límite de la vista.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LedgerEntryDTO
// @Router       /api/stock/log [get]
func (h *StockHandler) RecentActivity(c *fiber.Ctx) error {
	entries := h.view.Recent()
	out := make([]dto.LedgerEntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, toLedgerEntryDTO(e))
	}
	return c.JSON(out)
}

// StockReport godoc
// @Summary      Informe de stock en PDF
// @Description  Catálogo completo con bajos mínimos resaltados + actividad reciente.
// @Tags         stock
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {string}  string
// @Router       /api/stock/report [get]
func (h *StockHandler) StockReport(c *fiber.Ctx) error {
	data, err := h.report.GenerateStockReport(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	filename := "informe-stock-" + time.Now().Format("2006-01-02") + ".pdf"
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}

func toLedgerEntryDTO(e *entity.LedgerEntry) dto.LedgerEntryDTO {
	return dto.LedgerEntryDTO{
		ID:        e.ID,
		ItemID:    e.ItemID,
		ItemName:  e.ItemName,
		Change:    e.Change,
		UserID:    e.UserID,
		Username:  e.Username,
		NewCount:  e.NewCount,
		Mode:      e.Mode,
		CreatedAt: e.CreatedAt,
	}
}
