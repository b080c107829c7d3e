package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ganaderia-api/internal/application/allocation"
	"github.com/jhoicas/Ganaderia-api/internal/application/dto"
)

// AllocationHandler maneja las peticiones HTTP del motor de asignación de
// costes.
type AllocationHandler struct {
	uc *allocation.AllocationUseCase
}

// NewAllocationHandler construye el handler.
func NewAllocationHandler(uc *allocation.AllocationUseCase) *AllocationHandler {
	return &AllocationHandler{uc: uc}
}

// Create POST /api/allocations
func (h *AllocationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAllocationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	date, err := parseDate(in.Date)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "date debe ser YYYY-MM-DD"})
	}
	a, err := h.uc.Create(c.UserContext(), allocation.CreateInput{
		CompanyID: GetCompanyID(c),
		Date:      date,
		Method:    in.Method,
		CattleIDs: in.CattleIDs,
		Currency:  in.Currency,
		Note:      in.Note,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(a)
}

// GetByID GET /api/allocations/:id
func (h *AllocationHandler) GetByID(c *fiber.Ctx) error {
	a, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(a)
}

// List GET /api/allocations?limit=50&offset=0
func (h *AllocationHandler) List(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	list, err := h.uc.List(c.UserContext(), GetCompanyID(c), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// ListLines GET /api/allocations/:id/lines
func (h *AllocationHandler) ListLines(c *fiber.Ctx) error {
	lines, moveLines, err := h.uc.ListLines(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	byID := make(map[string]int, len(moveLines))
	for i, ml := range moveLines {
		byID[ml.ID] = i
	}
	out := make([]dto.AllocationLineResponse, 0, len(lines))
	for _, l := range lines {
		resp := dto.AllocationLineResponse{
			MoveLineID: l.MoveLineID,
			Selected:   l.Selected,
		}
		if i, ok := byID[l.MoveLineID]; ok {
			ml := moveLines[i]
			resp.InvoiceName = ml.InvoiceName
			resp.PartnerName = ml.PartnerName
			resp.Date = ml.Date
			resp.Description = ml.Description
			resp.Subtotal = ml.Subtotal
			resp.Currency = ml.Currency
			resp.CategoryID = ml.CategoryID
			resp.MoveType = ml.MoveType
			resp.PostingState = ml.PostingState
		}
		out = append(out, resp)
	}
	return c.JSON(out)
}

// RefreshLines POST /api/allocations/:id/lines/refresh
func (h *AllocationHandler) RefreshLines(c *fiber.Ctx) error {
	if err := h.uc.RefreshLines(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SelectLines PUT /api/allocations/:id/lines
func (h *AllocationHandler) SelectLines(c *fiber.Ctx) error {
	var in dto.SelectAllocationLinesRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.SelectLines(c.UserContext(), c.Params("id"), in.MoveLineIDs); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Allocate POST /api/allocations/:id/allocate
func (h *AllocationHandler) Allocate(c *fiber.Ctx) error {
	if err := h.uc.Allocate(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
