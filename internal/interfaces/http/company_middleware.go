package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ganaderia-api/internal/application/dto"
)

// Locals key para CompanyID en Fiber.
const LocalCompanyID = "company_id"

// CompanyMiddleware extrae la empresa del header X-Company-ID a c.Locals.
// Todo registro de la API está particionado por empresa.
func CompanyMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID := c.Get("X-Company-ID")
		if companyID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_COMPANY", Message: "header X-Company-ID requerido"})
		}
		c.Locals(LocalCompanyID, companyID)
		return c.Next()
	}
}

// GetCompanyID devuelve el CompanyID del contexto (después del middleware).
func GetCompanyID(c *fiber.Ctx) string {
	v := c.Locals(LocalCompanyID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
