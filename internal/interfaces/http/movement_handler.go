package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ganaderia-api/internal/application/dto"
	"github.com/jhoicas/Ganaderia-api/internal/application/movement"
)

// MovementHandler maneja las peticiones HTTP del motor de movimientos masivos.
type MovementHandler struct {
	uc *movement.MovementUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(uc *movement.MovementUseCase) *MovementHandler {
	return &MovementHandler{uc: uc}
}

// Create POST /api/movements
func (h *MovementHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	date, err := parseDate(in.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date debe ser YYYY-MM-DD"})
	}
	details := make(map[string]decimal.Decimal, len(in.WeightDetails))
	for _, d := range in.WeightDetails {
		details[d.CattleID] = d.Weight
	}
	m, err := h.uc.Create(c.UserContext(), movement.CreateInput{
		CompanyID:          GetCompanyID(c),
		Date:               date,
		Type:               in.Type,
		CattleIDs:          in.CattleIDs,
		Notes:              in.Notes,
		WeightDetails:      details,
		HealthEventType:    in.HealthEventType,
		HealthDescription:  in.HealthDescription,
		HealthVeterinarian: in.HealthVeterinarian,
		RetirementReason:   in.RetirementReason,
		RetirementNotes:    in.RetirementNotes,
		NewCategoryID:      in.NewCategoryID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(m)
}

// GetByID GET /api/movements/:id
func (h *MovementHandler) GetByID(c *fiber.Ctx) error {
	m, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(m)
}

// Apply POST /api/movements/:id/apply
func (h *MovementHandler) Apply(c *fiber.Ctx) error {
	if err := h.uc.Apply(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListHistory GET /api/movements/:id/history
func (h *MovementHandler) ListHistory(c *fiber.Ctx) error {
	list, err := h.uc.ListHistory(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// ListHistoryByCattle GET /api/cattle/:id/movements?limit=50&offset=0
func (h *MovementHandler) ListHistoryByCattle(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	list, err := h.uc.ListHistoryByCattle(c.UserContext(), c.Params("id"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// List GET /api/movements?limit=50&offset=0
func (h *MovementHandler) List(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	list, err := h.uc.List(c.UserContext(), GetCompanyID(c), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}
