package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Ganaderia-api/internal/domain/entity"
	"github.com/jhoicas/Ganaderia-api/internal/domain/repository"
)

var _ repository.InvoiceLineRepository = (*InvoiceLineRepo)(nil)

// InvoiceLineRepo vista de solo lectura sobre las líneas de factura de
// proveedor contabilizadas. Este módulo nunca escribe en estas tablas.
type InvoiceLineRepo struct {
	q Querier
}

// NewInvoiceLineRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceLineRepository(q Querier) *InvoiceLineRepo {
	return &InvoiceLineRepo{q: q}
}

const invoiceLineColumns = `
	id, company_id, invoice_name, partner_name, date, description, subtotal, currency, category_id,
	move_type, posting_state`

// GetByIDs obtiene las líneas indicadas, en orden de factura y línea.
func (r *InvoiceLineRepo) GetByIDs(ctx context.Context, ids []string) ([]*entity.InvoiceLine, error) {
	query := `SELECT ` + invoiceLineColumns + `
		FROM invoice_lines WHERE id = ANY($1)
		ORDER BY invoice_name, id`
	return r.queryLines(ctx, query, ids)
}

// ListAvailable líneas de facturas de proveedor contabilizadas de la empresa,
// excluyendo los ids indicados (ya asignadas o reservadas por otros
// borradores). Facturas en borrador o de cliente nunca entran al pool.
func (r *InvoiceLineRepo) ListAvailable(ctx context.Context, companyID string, excludeIDs []string) ([]*entity.InvoiceLine, error) {
	query := `SELECT ` + invoiceLineColumns + `
		FROM invoice_lines
		WHERE company_id = $1 AND NOT (id = ANY($2))
			AND move_type = $3 AND posting_state = $4
		ORDER BY date DESC, invoice_name, id`
	return r.queryLines(ctx, query, companyID, excludeIDs, entity.MoveTypeSupplier, entity.PostingStatePosted)
}

func (r *InvoiceLineRepo) queryLines(ctx context.Context, query string, args ...any) ([]*entity.InvoiceLine, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list invoice lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.InvoiceLine
	for rows.Next() {
		var l entity.InvoiceLine
		var description, category *string
		err := rows.Scan(&l.ID, &l.CompanyID, &l.InvoiceName, &l.PartnerName, &l.Date,
			&description, &l.Subtotal, &l.Currency, &category, &l.MoveType, &l.PostingState)
		if err != nil {
			return nil, fmt.Errorf("scan invoice line: %w", err)
		}
		l.Description = deref(description)
		l.CategoryID = deref(category)
		list = append(list, &l)
	}
	return list, rows.Err()
}
