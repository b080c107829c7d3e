package entity

import "time"

// Tipos de evento sanitario.
const (
	HealthEventVaccination = "vacuna"
	HealthEventTreatment   = "tratamiento"
	HealthEventCheckup     = "revision"
	HealthEventWelfare     = "bienestar"
)

// ValidHealthEventType valida el tipo de evento sanitario.
func ValidHealthEventType(t string) bool {
	switch t {
	case HealthEventVaccination, HealthEventTreatment, HealthEventCheckup, HealthEventWelfare:
		return true
	}
	return false
}

// HealthEvent es un registro sanitario o de bienestar de un animal (append-only).
type HealthEvent struct {
	ID           string
	CattleID     string
	Date         time.Time
	EventType    string // vacuna, tratamiento, revision, bienestar
	Description  string // obligatoria
	Veterinarian string
	Notes        string
	CreatedAt    time.Time
}
