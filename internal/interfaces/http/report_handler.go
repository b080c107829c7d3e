package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ganaderia-api/internal/application/report"
)

// ReportHandler maneja la descarga de la ficha de ganado en PDF.
type ReportHandler struct {
	uc *report.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// CattleReport GET /api/cattle/:id/report
func (h *ReportHandler) CattleReport(c *fiber.Ctx) error {
	pdfBytes, err := h.uc.CattleReport(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="ficha-ganado.pdf"`)
	return c.Send(pdfBytes)
}
