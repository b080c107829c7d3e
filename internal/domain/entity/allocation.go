package entity

import "time"

// Estados de la asignación de costes. "done" es terminal.
const (
	AllocationStateDraft = "draft"
	AllocationStateDone  = "done"
)

// CostAllocation distribuye los importes de un conjunto de líneas de factura
// entre un conjunto de animales con un método de ponderación. En borrador
// mantiene su lista de líneas candidatas; las marcadas como seleccionadas
// quedan reservadas frente a otros borradores concurrentes.
type CostAllocation struct {
	ID        string
	CompanyID string
	Name      string // referencia secuencial (ASG-00001)
	Date      time.Time
	Method    string // equal, weight, age
	Currency  string
	Note      string
	State     string   // draft, done
	CattleIDs []string // ganado a costear
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AllocationLine es una línea de factura candidata dentro de un borrador de
// asignación. Selected reserva la línea frente a otros borradores.
type AllocationLine struct {
	ID           string
	AllocationID string
	MoveLineID   string
	Selected     bool
	CreatedAt    time.Time
}
