package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ganaderia-api/internal/application/cattle"
	"github.com/jhoicas/Ganaderia-api/internal/application/dto"
	"github.com/jhoicas/Ganaderia-api/internal/domain/entity"
)

// CattleHandler maneja las peticiones HTTP del registro de ganado.
type CattleHandler struct {
	uc *cattle.RegistryUseCase
}

// NewCattleHandler construye el handler.
func NewCattleHandler(uc *cattle.RegistryUseCase) *CattleHandler {
	return &CattleHandler{uc: uc}
}

// Register POST /api/cattle
func (h *CattleHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterCattleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	inclusionDate, err := parseDate(in.InclusionDate)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "inclusion_date debe ser YYYY-MM-DD"})
	}
	animal, err := h.uc.Register(c.UserContext(), cattle.RegisterInput{
		CompanyID:     GetCompanyID(c),
		Name:          in.Name,
		SequenceCode:  in.SequenceCode,
		EarTag:        in.EarTag,
		CategoryID:    in.CategoryID,
		BreedID:       in.BreedID,
		InclusionDate: inclusionDate,
		LocationID:    in.LocationID,
		ResponsibleID: in.ResponsibleID,
		Currency:      in.Currency,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(animal)
}

// GetProfile GET /api/cattle/:id
func (h *CattleHandler) GetProfile(c *fiber.Ctx) error {
	p, err := h.uc.GetProfile(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profileResponse(p))
}

// SetState PATCH /api/cattle/:id/state
func (h *CattleHandler) SetState(c *fiber.Ctx) error {
	var in dto.SetCattleStateRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.SetState(c.UserContext(), c.Params("id"), in.State, in.RetirementReason, in.RetirementNotes); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// List GET /api/cattle?state=inventory&limit=50&offset=0
func (h *CattleHandler) List(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	list, err := h.uc.List(c.UserContext(), GetCompanyID(c), c.Query("state"), limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// profileResponse arma la respuesta de la ficha con las métricas derivadas.
func profileResponse(p *entity.CattleProfile) dto.CattleProfileResponse {
	return dto.CattleProfileResponse{
		ID:               p.ID,
		Name:             p.Name,
		SequenceCode:     p.SequenceCode,
		EarTag:           p.EarTag,
		CategoryID:       p.CategoryID,
		BreedID:          p.BreedID,
		InclusionDate:    p.InclusionDate,
		State:            p.State,
		RetirementReason: p.RetirementReason,
		LocationID:       p.LocationID,
		CurrentWeight:    p.CurrentWeight,
		TotalCost:        p.TotalCost,
		AgeDays:          p.AgeDays,
		AgeYears:         decimal.NewFromInt(int64(p.AgeDays)).Div(decimal.NewFromInt(365)).Round(2),
		CostPerKg:        p.CostPerKg,
		Currency:         p.Currency,
	}
}

// parseDate parsea YYYY-MM-DD. Cadena vacía es válida (fecha cero).
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", s)
}
