package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateAllocationRequest body para POST /api/allocations.
type CreateAllocationRequest struct {
	Date      string   `json:"date"`   // YYYY-MM-DD
	Method    string   `json:"method"` // equal, weight, age
	CattleIDs []string `json:"cattle_ids"`
	Currency  string   `json:"currency,omitempty"`
	Note      string   `json:"note,omitempty"`
}

// SelectAllocationLinesRequest body para PUT /api/allocations/:id/lines.
type SelectAllocationLinesRequest struct {
	MoveLineIDs []string `json:"move_line_ids"`
}

// AllocationLineResponse línea candidata con los datos de su línea de factura.
type AllocationLineResponse struct {
	MoveLineID   string          `json:"move_line_id"`
	Selected     bool            `json:"selected"`
	InvoiceName  string          `json:"invoice_name"`
	PartnerName  string          `json:"partner_name,omitempty"`
	Date         time.Time       `json:"date"`
	Description  string          `json:"description,omitempty"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Currency     string          `json:"currency"`
	CategoryID   string          `json:"category_id,omitempty"`
	MoveType     string          `json:"move_type"`
	PostingState string          `json:"posting_state"`
}

// CatalogItemRequest body para crear categorías, razas y ubicaciones.
type CatalogItemRequest struct {
	Name string `json:"name"`
}
