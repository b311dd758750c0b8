package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/gcharles/autoshop-inventory/internal/application/dto"
	"github.com/gcharles/autoshop-inventory/internal/application/inventory"
	"github.com/gcharles/autoshop-inventory/internal/domain"
	"github.com/gcharles/autoshop-inventory/internal/domain/repository"
	"github.com/gcharles/autoshop-inventory/pkg/logger"
)

// InventoryHandler maneja las mutaciones de stock y el lookup por SKU (protegido).
type InventoryHandler struct {
	uc    *inventory.UseCase
	items repository.ItemRepository
	log   *logger.Logger
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.UseCase, items repository.ItemRepository, log *logger.Logger) *InventoryHandler {
	return &InventoryHandler{uc: uc, items: items, log: log}
}

// Receive godoc
// @Summary      Recibir stock (crear o incrementar)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReceiveStockRequest  true  "item_sku, part_name, quantity, reorder_point, unit_cost, location_id, vendor_name"
// @Success      200   {object}  dto.MutationResult
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/receive [post]
func (h *InventoryHandler) Receive(c *fiber.Ctx) error {
	var in dto.ReceiveStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.ReceiveStock(c.Context(), in)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(out)
}

// Issue godoc
// @Summary      Despachar stock (decrementar con validación)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.IssueStockRequest  true  "sku, quantity"
// @Success      200   {object}  dto.MutationResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/issue [post]
func (h *InventoryHandler) Issue(c *fiber.Ctx) error {
	var in dto.IssueStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.IssueStock(c.Context(), in.SKU, in.Quantity)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(out)
}

// Lookup godoc
// @Summary      Consultar un SKU
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        sku  path  string  true  "SKU del item"
// @Success      200  {object}  dto.StockLookupResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{sku} [get]
func (h *InventoryHandler) Lookup(c *fiber.Ctx) error {
	out, err := h.uc.LookupStock(c.Context(), h.items, c.Params("sku"))
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(out)
}

// mapError traduce errores de dominio a códigos HTTP. Errores de
// infraestructura se loguean completos y al cliente solo llega un mensaje
// genérico, nunca el detalle interno.
func (h *InventoryHandler) mapError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "Item not found."})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "Insufficient stock to complete this issue."})
	default:
		h.log.Error().Err(err).Str("path", c.Path()).Str("user_id", GetUserID(c)).
			Msg("operación de inventario fallida")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "An unexpected error occurred. Please try again later."})
	}
}
