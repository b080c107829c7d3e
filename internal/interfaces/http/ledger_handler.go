package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ganaderia-api/internal/application/dto"
	"github.com/jhoicas/Ganaderia-api/internal/application/ledger"
)

// LedgerHandler maneja las series por animal: pesajes, eventos sanitarios y
// coste histórico.
type LedgerHandler struct {
	uc *ledger.LedgerUseCase
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(uc *ledger.LedgerUseCase) *LedgerHandler {
	return &LedgerHandler{uc: uc}
}

// RecordWeight POST /api/cattle/:id/weights
func (h *LedgerHandler) RecordWeight(c *fiber.Ctx) error {
	var in dto.RecordWeightRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	date, err := parseDate(in.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date debe ser YYYY-MM-DD"})
	}
	entry, err := h.uc.RecordWeight(c.UserContext(), c.Params("id"), date, in.Weight, in.Notes)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

// ListWeights GET /api/cattle/:id/weights?limit=50&offset=0
func (h *LedgerHandler) ListWeights(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	list, err := h.uc.ListWeights(c.UserContext(), c.Params("id"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// RecordHealthEvent POST /api/cattle/:id/health-events
func (h *LedgerHandler) RecordHealthEvent(c *fiber.Ctx) error {
	var in dto.RecordHealthEventRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	date, err := parseDate(in.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date debe ser YYYY-MM-DD"})
	}
	event, err := h.uc.RecordHealthEvent(c.UserContext(), c.Params("id"), date, in.EventType, in.Description, in.Veterinarian, in.Notes)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(event)
}

// ListHealthEvents GET /api/cattle/:id/health-events?limit=50&offset=0
func (h *LedgerHandler) ListHealthEvents(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	list, err := h.uc.ListHealthEvents(c.UserContext(), c.Params("id"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// ListCosts GET /api/cattle/:id/costs?limit=50&offset=0
func (h *LedgerHandler) ListCosts(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	list, err := h.uc.ListCosts(c.UserContext(), c.Params("id"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}
