package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento masivo del hato.
const (
	MovementTypeWeight           = "weight"           // registro masivo de peso
	MovementTypeHealth           = "health"           // registro masivo de sanidad
	MovementTypeRetirement       = "retirement"       // baja masiva
	MovementTypeReclassification = "reclassification" // cambio de categoría
)

// Estados del movimiento. Una vez aplicado es terminal.
const (
	MovementStateDraft   = "draft"
	MovementStateApplied = "applied"
)

// ValidMovementType valida el tipo de movimiento.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypeWeight, MovementTypeHealth, MovementTypeRetirement, MovementTypeReclassification:
		return true
	}
	return false
}

// Movement agrupa una operación masiva sobre un conjunto de animales en una
// sola unidad auditable. Para type=weight el conjunto objetivo sale de las
// líneas de detalle por animal; para el resto, de CattleIDs filtrado a
// animales en inventario.
type Movement struct {
	ID        string
	CompanyID string
	Name      string // referencia secuencial (MOV-00001)
	Date      time.Time
	Type      string
	CattleIDs []string // objetivo explícito para health/retirement/reclassification
	Notes     string
	State     string // draft, applied

	// Carga específica por tipo.
	HealthEventType    string
	HealthDescription  string
	HealthVeterinarian string
	RetirementReason   string
	RetirementNotes    string
	NewCategoryID      string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// MovementWeightDetail es la línea de peso por animal de un movimiento de tipo
// weight. Un animal no puede repetirse dentro del mismo movimiento.
type MovementWeightDetail struct {
	ID         string
	MovementID string
	CattleID   string
	Weight     decimal.Decimal // kg, > 0
}

// MovementHistory es la instantánea inmutable por animal generada al aplicar
// un movimiento: valores "desde" y "hasta" de categoría y estado más la carga
// del tipo. Nunca se modifica tras su creación.
type MovementHistory struct {
	ID             string
	MovementID     string
	CattleID       string
	Date           time.Time
	Type           string
	Notes          string
	FromCategoryID string
	ToCategoryID   string
	FromState      string
	ToState        string

	Weight             decimal.Decimal // solo type=weight
	HealthEventType    string
	HealthDescription  string
	HealthVeterinarian string
	RetirementReason   string
	RetirementNotes    string

	CreatedAt time.Time
}
