package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ganaderia-api/internal/domain"
	"github.com/jhoicas/Ganaderia-api/internal/domain/entity"
	"github.com/jhoicas/Ganaderia-api/internal/domain/repository"
)

// LedgerUseCase registra las series append-only por animal: control de pesos y
// eventos sanitarios. No existe contrato de edición ni borrado.
type LedgerUseCase struct {
	cattleRepo repository.CattleRepository
	weightRepo repository.WeightEntryRepository
	healthRepo repository.HealthEventRepository
	costRepo   repository.CostHistoryRepository
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	cattleRepo repository.CattleRepository,
	weightRepo repository.WeightEntryRepository,
	healthRepo repository.HealthEventRepository,
	costRepo repository.CostHistoryRepository,
) *LedgerUseCase {
	return &LedgerUseCase{
		cattleRepo: cattleRepo,
		weightRepo: weightRepo,
		healthRepo: healthRepo,
		costRepo:   costRepo,
	}
}

// RecordWeight añade un pesaje. El peso debe ser mayor que cero.
func (uc *LedgerUseCase) RecordWeight(ctx context.Context, cattleID string, date time.Time, weight decimal.Decimal, notes string) (*entity.WeightEntry, error) {
	if !weight.IsPositive() {
		return nil, domain.NewUserError("el peso debe ser mayor que cero")
	}
	if date.IsZero() {
		date = time.Now()
	}
	c, err := uc.cattleRepo.GetByID(ctx, cattleID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	entry := &entity.WeightEntry{
		ID:        uuid.New().String(),
		CattleID:  cattleID,
		Date:      date,
		Weight:    weight,
		Notes:     notes,
		CreatedAt: time.Now(),
	}
	if err := uc.weightRepo.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// RecordHealthEvent añade un evento sanitario. Tipo y descripción son
// obligatorios.
func (uc *LedgerUseCase) RecordHealthEvent(ctx context.Context, cattleID string, date time.Time, eventType, description, veterinarian, notes string) (*entity.HealthEvent, error) {
	if !entity.ValidHealthEventType(eventType) || description == "" {
		return nil, domain.NewUserError("debe indicar tipo y descripción para el registro sanitario")
	}
	if date.IsZero() {
		date = time.Now()
	}
	c, err := uc.cattleRepo.GetByID(ctx, cattleID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	event := &entity.HealthEvent{
		ID:           uuid.New().String(),
		CattleID:     cattleID,
		Date:         date,
		EventType:    eventType,
		Description:  description,
		Veterinarian: veterinarian,
		Notes:        notes,
		CreatedAt:    time.Now(),
	}
	if err := uc.healthRepo.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// ListWeights historial de pesajes del animal, del más reciente al más antiguo.
func (uc *LedgerUseCase) ListWeights(ctx context.Context, cattleID string, limit, offset int) ([]*entity.WeightEntry, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return uc.weightRepo.ListByCattle(ctx, cattleID, limit, offset)
}

// ListHealthEvents historial sanitario del animal.
func (uc *LedgerUseCase) ListHealthEvents(ctx context.Context, cattleID string, limit, offset int) ([]*entity.HealthEvent, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return uc.healthRepo.ListByCattle(ctx, cattleID, limit, offset)
}

// ListCosts coste histórico del animal (filas de auditoría de asignaciones).
func (uc *LedgerUseCase) ListCosts(ctx context.Context, cattleID string, limit, offset int) ([]*entity.CostHistoryEntry, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return uc.costRepo.ListByCattle(ctx, cattleID, limit, offset)
}
