package repository

import (
	"context"

	"github.com/jhoicas/Ganaderia-api/internal/domain/entity"
)

// InvoiceLineRepository puerto de solo lectura sobre las líneas de factura de
// proveedor contabilizadas. Las facturas se producen aguas arriba; este módulo
// nunca las crea ni las modifica.
type InvoiceLineRepository interface {
	GetByIDs(ctx context.Context, ids []string) ([]*entity.InvoiceLine, error)
	// ListAvailable devuelve las líneas de facturas de proveedor contabilizadas
	// de la empresa, excluyendo los ids indicados (ya asignadas o reservadas).
	ListAvailable(ctx context.Context, companyID string, excludeIDs []string) ([]*entity.InvoiceLine, error)
}
