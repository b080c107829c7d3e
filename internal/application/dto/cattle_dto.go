package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterCattleRequest body para POST /api/cattle.
type RegisterCattleRequest struct {
	Name          string `json:"name"`
	SequenceCode  string `json:"sequence_code,omitempty"` // vacío = se genera
	EarTag        string `json:"ear_tag,omitempty"`
	CategoryID    string `json:"category_id"`
	BreedID       string `json:"breed_id"`
	InclusionDate string `json:"inclusion_date"` // YYYY-MM-DD
	LocationID    string `json:"location_id,omitempty"`
	ResponsibleID string `json:"responsible_id,omitempty"`
	Currency      string `json:"currency,omitempty"`
}

// SetCattleStateRequest body para PATCH /api/cattle/:id/state.
type SetCattleStateRequest struct {
	State            string `json:"state"`
	RetirementReason string `json:"retirement_reason,omitempty"`
	RetirementNotes  string `json:"retirement_notes,omitempty"`
}

// CattleProfileResponse ficha del animal con métricas derivadas.
type CattleProfileResponse struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	SequenceCode     string          `json:"sequence_code"`
	EarTag           string          `json:"ear_tag,omitempty"`
	CategoryID       string          `json:"category_id"`
	BreedID          string          `json:"breed_id"`
	InclusionDate    time.Time       `json:"inclusion_date"`
	State            string          `json:"state"`
	RetirementReason string          `json:"retirement_reason,omitempty"`
	LocationID       string          `json:"location_id,omitempty"`
	CurrentWeight    decimal.Decimal `json:"current_weight"`
	TotalCost        decimal.Decimal `json:"total_cost"`
	AgeDays          int             `json:"age_days"`
	AgeYears         decimal.Decimal `json:"age_years"`
	CostPerKg        decimal.Decimal `json:"cost_per_kg"`
	Currency         string          `json:"currency,omitempty"`
}

// RecordWeightRequest body para POST /api/cattle/:id/weights.
type RecordWeightRequest struct {
	Date   string          `json:"date"` // YYYY-MM-DD
	Weight decimal.Decimal `json:"weight"`
	Notes  string          `json:"notes,omitempty"`
}

// RecordHealthEventRequest body para POST /api/cattle/:id/health-events.
type RecordHealthEventRequest struct {
	Date         string `json:"date"` // YYYY-MM-DD
	EventType    string `json:"event_type"`
	Description  string `json:"description"`
	Veterinarian string `json:"veterinarian,omitempty"`
	Notes        string `json:"notes,omitempty"`
}
