package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de asignación de costes.
const (
	AllocationMethodEqual  = "equal"  // igual para todos
	AllocationMethodWeight = "weight" // proporcional al peso actual
	AllocationMethodAge    = "age"    // proporcional a la edad en días
)

// ValidAllocationMethod valida el método de asignación.
func ValidAllocationMethod(m string) bool {
	switch m {
	case AllocationMethodEqual, AllocationMethodWeight, AllocationMethodAge:
		return true
	}
	return false
}

// CostHistoryEntry es el registro de auditoría de la parte de una línea de
// factura asignada a un animal en un proceso de asignación. Inmutable: el
// repositorio no expone update ni delete; una corrección es siempre una fila
// compensatoria nueva.
type CostHistoryEntry struct {
	ID              string
	CattleID        string
	MoveLineID      string // línea de factura de proveedor contabilizada
	AllocationID    string // asignación que creó la fila (vacío si es manual)
	AllocationDate  time.Time
	SourceDocument  string // número de la factura origen
	AllocatedAmount decimal.Decimal
	Currency        string // heredada de la línea de factura
	Method          string // equal, weight, age
	Note            string
	CreatedAt       time.Time
}
