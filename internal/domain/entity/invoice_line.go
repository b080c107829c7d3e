package entity

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Tipo y estado de la factura madre de una línea.
const (
	MoveTypeSupplier   = "in_invoice"
	PostingStatePosted = "posted"
)

// InvoiceLine es la vista de solo lectura de una línea de factura de proveedor
// ya contabilizada. Las facturas se crean y publican aguas arriba; el núcleo
// ganadero solo las consume para asignar sus importes al hato.
type InvoiceLine struct {
	ID           string
	CompanyID    string
	InvoiceName  string // número de la factura (documento origen)
	PartnerName  string // proveedor
	Date         time.Time
	Description  string
	Subtotal     decimal.Decimal
	Currency     string
	CategoryID   string // etiqueta ganadera opcional; vacía = aplica a todo el hato
	MoveType     string // tipo de la factura madre
	PostingState string // estado contable de la factura madre
}

// Allocatable indica si la línea puede recibir asignación de costes: solo
// líneas de factura de proveedor ya contabilizada.
func (l *InvoiceLine) Allocatable() bool {
	return l.MoveType == MoveTypeSupplier && l.PostingState == PostingStatePosted
}

// DisplayName nombre legible de la línea para mensajes de error y listados.
func (l *InvoiceLine) DisplayName() string {
	if l.Description == "" {
		return l.InvoiceName
	}
	return fmt.Sprintf("%s - %s", l.InvoiceName, l.Description)
}
