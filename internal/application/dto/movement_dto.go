package dto

import "github.com/shopspring/decimal"

// MovementWeightDetailDTO línea de peso por animal de un movimiento masivo.
type MovementWeightDetailDTO struct {
	CattleID string          `json:"cattle_id"`
	Weight   decimal.Decimal `json:"weight"`
}

// CreateMovementRequest body para POST /api/movements.
type CreateMovementRequest struct {
	Date      string   `json:"date"` // YYYY-MM-DD
	Type      string   `json:"type"` // weight, health, retirement, reclassification
	CattleIDs []string `json:"cattle_ids,omitempty"`
	Notes     string   `json:"notes,omitempty"`

	WeightDetails []MovementWeightDetailDTO `json:"weight_details,omitempty"`

	HealthEventType    string `json:"health_event_type,omitempty"`
	HealthDescription  string `json:"health_description,omitempty"`
	HealthVeterinarian string `json:"health_veterinarian,omitempty"`
	RetirementReason   string `json:"retirement_reason,omitempty"`
	RetirementNotes    string `json:"retirement_notes,omitempty"`
	NewCategoryID      string `json:"new_category_id,omitempty"`
}
