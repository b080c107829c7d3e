package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida del animal.
const (
	CattleStateInventory = "inventory" // en inventario
	CattleStateRetired   = "retired"   // dado de baja
	CattleStateSold      = "sold"      // vendido
)

// Motivos de baja (obligatorios cuando el estado no es "inventory").
const (
	RetirementReasonDeath    = "muerte"
	RetirementReasonIllness  = "enfermedad"
	RetirementReasonAccident = "accidente"
	RetirementReasonSale     = "venta"
	RetirementReasonOther    = "otro"
)

// Cattle representa la ficha de un animal del hato.
type Cattle struct {
	ID               string
	CompanyID        string
	Name             string
	SequenceCode     string // código único legible (GAN-00001)
	EarTag           string // arete / identificación física
	CategoryID       string
	BreedID          string
	InclusionDate    time.Time // fecha de nacimiento o de inclusión en el hato
	State            string    // inventory, retired, sold
	RetirementReason string    // obligatorio si State != inventory
	RetirementNotes  string
	LocationID       string
	ResponsibleID    string
	Currency         string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// InInventory indica si el animal sigue activo en el hato.
func (c *Cattle) InInventory() bool {
	return c.State == CattleStateInventory
}

// AgeDays calcula la edad en días respecto a la fecha dada.
func (c *Cattle) AgeDays(today time.Time) int {
	if c.InclusionDate.IsZero() {
		return 0
	}
	days := int(today.Sub(c.InclusionDate).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// ValidRetirement verifica el invariante: motivo de baja presente si y solo si
// el estado es retired o sold.
func ValidRetirement(state, reason string) bool {
	if state == CattleStateRetired || state == CattleStateSold {
		return reason != ""
	}
	return reason == ""
}

// CattleProfile es la ficha del animal con sus métricas derivadas
// (peso actual, coste acumulado, edad, coste/kg). Se recalculan en lectura.
type CattleProfile struct {
	Cattle
	CurrentWeight decimal.Decimal // peso del último registro de la báscula; 0 sin registros
	TotalCost     decimal.Decimal // suma de los costes asignados en cost_history
	AgeDays       int
	CostPerKg     decimal.Decimal
}

// CostPerKg devuelve coste acumulado / peso actual, o 0 si el peso es 0.
func CostPerKg(totalCost, currentWeight decimal.Decimal) decimal.Decimal {
	if currentWeight.IsZero() {
		return decimal.Zero
	}
	return totalCost.Div(currentWeight)
}
