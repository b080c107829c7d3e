package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ganaderia-api/internal/application/catalog"
	"github.com/jhoicas/Ganaderia-api/internal/application/dto"
)

// CatalogHandler maneja las peticiones HTTP de los catálogos del hato
// (categorías, razas y ubicaciones).
type CatalogHandler struct {
	uc *catalog.CatalogUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *catalog.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// CreateCategory POST /api/categories
func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var in dto.CatalogItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.uc.CreateCategory(c.UserContext(), GetCompanyID(c), in.Name)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// ListCategories GET /api/categories
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	list, err := h.uc.ListCategories(c.UserContext(), GetCompanyID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// CreateBreed POST /api/breeds
func (h *CatalogHandler) CreateBreed(c *fiber.Ctx) error {
	var in dto.CatalogItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.uc.CreateBreed(c.UserContext(), GetCompanyID(c), in.Name)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// ListBreeds GET /api/breeds
func (h *CatalogHandler) ListBreeds(c *fiber.Ctx) error {
	list, err := h.uc.ListBreeds(c.UserContext(), GetCompanyID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// CreateLocation POST /api/locations
func (h *CatalogHandler) CreateLocation(c *fiber.Ctx) error {
	var in dto.CatalogItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	item, err := h.uc.CreateLocation(c.UserContext(), GetCompanyID(c), in.Name)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// ListLocations GET /api/locations
func (h *CatalogHandler) ListLocations(c *fiber.Ctx) error {
	list, err := h.uc.ListLocations(c.UserContext(), GetCompanyID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}
