package movement

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ganaderia-api/internal/domain"
	"github.com/jhoicas/Ganaderia-api/internal/domain/entity"
	"github.com/jhoicas/Ganaderia-api/internal/domain/repository"
)

// MovementUseCase crea y aplica movimientos masivos del hato (peso, sanidad,
// baja, reclasificación) produciendo una instantánea de auditoría por animal.
type MovementUseCase struct {
	txRunner TxRunner
	movRepo  repository.MovementRepository
	seqRepo  repository.SequenceRepository
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(txRunner TxRunner, movRepo repository.MovementRepository, seqRepo repository.SequenceRepository) *MovementUseCase {
	return &MovementUseCase{txRunner: txRunner, movRepo: movRepo, seqRepo: seqRepo}
}

// CreateInput datos para crear un movimiento en borrador.
type CreateInput struct {
	CompanyID string
	Date      time.Time
	Type      string
	CattleIDs []string
	Notes     string

	WeightDetails map[string]decimal.Decimal // cattleID -> peso (type=weight)

	HealthEventType    string
	HealthDescription  string
	HealthVeterinarian string
	RetirementReason   string
	RetirementNotes    string
	NewCategoryID      string
}

// Create persiste un movimiento en borrador con su referencia secuencial.
// La validación completa por tipo ocurre en Apply; aquí solo forma básica.
func (uc *MovementUseCase) Create(ctx context.Context, in CreateInput) (*entity.Movement, error) {
	if !entity.ValidMovementType(in.Type) {
		return nil, domain.ErrInvalidInput
	}
	if in.Date.IsZero() {
		in.Date = time.Now()
	}
	name, err := uc.seqRepo.NextCode(ctx, repository.SequenceMovement)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	m := &entity.Movement{
		ID:                 uuid.New().String(),
		CompanyID:          in.CompanyID,
		Name:               name,
		Date:               in.Date,
		Type:               in.Type,
		CattleIDs:          in.CattleIDs,
		Notes:              in.Notes,
		State:              entity.MovementStateDraft,
		HealthEventType:    in.HealthEventType,
		HealthDescription:  in.HealthDescription,
		HealthVeterinarian: in.HealthVeterinarian,
		RetirementReason:   in.RetirementReason,
		RetirementNotes:    in.RetirementNotes,
		NewCategoryID:      in.NewCategoryID,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	var details []*entity.MovementWeightDetail
	for cattleID, weight := range in.WeightDetails {
		details = append(details, &entity.MovementWeightDetail{
			ID:         uuid.New().String(),
			MovementID: m.ID,
			CattleID:   cattleID,
			Weight:     weight,
		})
	}
	if err := uc.movRepo.Create(ctx, m, details); err != nil {
		return nil, err
	}
	return m, nil
}

// GetByID devuelve el movimiento.
func (uc *MovementUseCase) GetByID(ctx context.Context, id string) (*entity.Movement, error) {
	m, err := uc.movRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	return m, nil
}

// List lista los movimientos de la empresa.
func (uc *MovementUseCase) List(ctx context.Context, companyID string, limit, offset int) ([]*entity.Movement, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return uc.movRepo.List(ctx, companyID, limit, offset)
}

// ListHistory devuelve las instantáneas generadas por un movimiento aplicado.
func (uc *MovementUseCase) ListHistory(ctx context.Context, movementID string) ([]*entity.MovementHistory, error) {
	return uc.movRepo.ListHistoryByMovement(ctx, movementID)
}

// ListHistoryByCattle histórico de movimientos aplicados sobre un animal,
// del más reciente al más antiguo.
func (uc *MovementUseCase) ListHistoryByCattle(ctx context.Context, cattleID string, limit, offset int) ([]*entity.MovementHistory, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return uc.movRepo.ListHistoryByCattle(ctx, cattleID, limit, offset)
}

// Apply aplica el movimiento sobre su conjunto objetivo dentro de una sola
// transacción: resuelve objetivos, valida campos por tipo, ejecuta el efecto
// por animal en orden estable y emite una fila de histórico por animal.
// Un movimiento ya aplicado es terminal: reaplicarlo falla siempre.
func (uc *MovementUseCase) Apply(ctx context.Context, movementID string) error {
	return uc.txRunner.RunMovement(ctx, func(
		movRepo repository.MovementRepository,
		cattleRepo repository.CattleRepository,
		weightRepo repository.WeightEntryRepository,
		healthRepo repository.HealthEventRepository,
	) error {
		m, err := movRepo.GetForUpdate(ctx, movementID)
		if err != nil {
			return err
		}
		if m == nil {
			return domain.ErrNotFound
		}
		if m.State == entity.MovementStateApplied {
			return domain.NewUserError("el movimiento %s ya fue aplicado", m.Name)
		}

		targets, weightsByCattle, err := uc.resolveTargets(ctx, movRepo, cattleRepo, m)
		if err != nil {
			return err
		}
		if len(targets) == 0 {
			return domain.NewUserError("debe seleccionar al menos un animal en inventario")
		}
		if err := validateTypePayload(m); err != nil {
			return err
		}

		for _, c := range targets {
			hist := &entity.MovementHistory{
				ID:             uuid.New().String(),
				MovementID:     m.ID,
				CattleID:       c.ID,
				Date:           m.Date,
				Type:           m.Type,
				Notes:          m.Notes,
				FromCategoryID: c.CategoryID,
				FromState:      c.State,
				CreatedAt:      time.Now(),
			}

			switch m.Type {
			case entity.MovementTypeWeight:
				w := weightsByCattle[c.ID]
				entry := &entity.WeightEntry{
					ID:        uuid.New().String(),
					CattleID:  c.ID,
					Date:      m.Date,
					Weight:    w,
					Notes:     m.Notes,
					CreatedAt: time.Now(),
				}
				if err := weightRepo.Create(ctx, entry); err != nil {
					return err
				}
				hist.Weight = w

			case entity.MovementTypeHealth:
				event := &entity.HealthEvent{
					ID:           uuid.New().String(),
					CattleID:     c.ID,
					Date:         m.Date,
					EventType:    m.HealthEventType,
					Description:  m.HealthDescription,
					Veterinarian: m.HealthVeterinarian,
					Notes:        m.Notes,
					CreatedAt:    time.Now(),
				}
				if err := healthRepo.Create(ctx, event); err != nil {
					return err
				}
				hist.HealthEventType = m.HealthEventType
				hist.HealthDescription = m.HealthDescription
				hist.HealthVeterinarian = m.HealthVeterinarian

			case entity.MovementTypeRetirement:
				notes := m.RetirementNotes
				if notes == "" {
					notes = m.Notes
				}
				if err := cattleRepo.UpdateState(ctx, c.ID, entity.CattleStateRetired, m.RetirementReason, notes); err != nil {
					return err
				}
				c.State = entity.CattleStateRetired
				hist.RetirementReason = m.RetirementReason
				hist.RetirementNotes = notes

			case entity.MovementTypeReclassification:
				// El animal que ya está en la categoría destino se omite sin
				// generar histórico.
				if c.CategoryID == m.NewCategoryID {
					continue
				}
				if err := cattleRepo.UpdateCategory(ctx, c.ID, m.NewCategoryID); err != nil {
					return err
				}
				c.CategoryID = m.NewCategoryID
			}

			hist.ToCategoryID = c.CategoryID
			hist.ToState = c.State
			if err := movRepo.CreateHistory(ctx, hist); err != nil {
				return err
			}
		}

		return movRepo.UpdateState(ctx, m.ID, entity.MovementStateApplied)
	})
}

// resolveTargets determina el conjunto objetivo: las líneas de detalle para
// type=weight (un animal no puede repetirse) y la lista explícita filtrada a
// inventario para el resto. Devuelve perfiles en orden estable por código.
func (uc *MovementUseCase) resolveTargets(
	ctx context.Context,
	movRepo repository.MovementRepository,
	cattleRepo repository.CattleRepository,
	m *entity.Movement,
) ([]*entity.CattleProfile, map[string]decimal.Decimal, error) {
	if m.Type == entity.MovementTypeWeight {
		details, err := movRepo.ListWeightDetails(ctx, m.ID)
		if err != nil {
			return nil, nil, err
		}
		if len(details) == 0 {
			return nil, nil, domain.NewUserError("debe indicar al menos una línea de peso por animal")
		}
		weights := make(map[string]decimal.Decimal, len(details))
		ids := make([]string, 0, len(details))
		for _, d := range details {
			if _, dup := weights[d.CattleID]; dup {
				return nil, nil, domain.NewUserError("el animal %s aparece repetido en las líneas de peso", d.CattleID)
			}
			if !d.Weight.IsPositive() {
				return nil, nil, domain.NewUserError("el peso debe ser mayor que cero en todas las líneas")
			}
			weights[d.CattleID] = d.Weight
			ids = append(ids, d.CattleID)
		}
		profiles, err := cattleRepo.GetProfilesByIDs(ctx, ids)
		if err != nil {
			return nil, nil, err
		}
		if len(profiles) != len(ids) {
			return nil, nil, domain.ErrNotFound
		}
		return profiles, weights, nil
	}

	if len(m.CattleIDs) == 0 {
		return nil, nil, domain.NewUserError("debe seleccionar al menos un animal")
	}
	profiles, err := cattleRepo.GetProfilesByIDs(ctx, m.CattleIDs)
	if err != nil {
		return nil, nil, err
	}
	var targets []*entity.CattleProfile
	for _, p := range profiles {
		if p.InInventory() {
			targets = append(targets, p)
		}
	}
	return targets, nil, nil
}

// validateTypePayload exige los campos obligatorios según el tipo.
func validateTypePayload(m *entity.Movement) error {
	switch m.Type {
	case entity.MovementTypeHealth:
		if !entity.ValidHealthEventType(m.HealthEventType) || m.HealthDescription == "" {
			return domain.NewUserError("debe indicar tipo y descripción para el registro sanitario masivo")
		}
	case entity.MovementTypeRetirement:
		if m.RetirementReason == "" {
			return domain.NewUserError("debe indicar el motivo para la baja masiva")
		}
	case entity.MovementTypeReclassification:
		if m.NewCategoryID == "" {
			return domain.NewUserError("debe indicar la nueva categoría para la reclasificación")
		}
	}
	return nil
}
