package cattle

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Ganaderia-api/internal/domain"
	"github.com/jhoicas/Ganaderia-api/internal/domain/entity"
	"github.com/jhoicas/Ganaderia-api/internal/domain/repository"
)

// RegistryUseCase gestiona el alta de fichas de ganado, sus cambios de estado
// y la lectura de la ficha con métricas derivadas.
type RegistryUseCase struct {
	cattleRepo repository.CattleRepository
	seqRepo    repository.SequenceRepository
}

// NewRegistryUseCase construye el caso de uso.
func NewRegistryUseCase(cattleRepo repository.CattleRepository, seqRepo repository.SequenceRepository) *RegistryUseCase {
	return &RegistryUseCase{cattleRepo: cattleRepo, seqRepo: seqRepo}
}

// RegisterInput datos de alta de un animal.
type RegisterInput struct {
	CompanyID     string
	Name          string
	SequenceCode  string // vacío = se genera de la secuencia
	EarTag        string
	CategoryID    string
	BreedID       string
	InclusionDate time.Time
	LocationID    string
	ResponsibleID string
	Currency      string
}

// Register da de alta un animal en inventario. Si no viene código se genera
// uno de la secuencia; un código repetido choca con el constraint único y se
// devuelve como domain.ErrDuplicate.
func (uc *RegistryUseCase) Register(ctx context.Context, in RegisterInput) (*entity.Cattle, error) {
	if in.Name == "" || in.CategoryID == "" || in.BreedID == "" || in.InclusionDate.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	code := in.SequenceCode
	if code == "" {
		var err error
		code, err = uc.seqRepo.NextCode(ctx, repository.SequenceCattle)
		if err != nil {
			return nil, err
		}
	}
	now := time.Now()
	c := &entity.Cattle{
		ID:            uuid.New().String(),
		CompanyID:     in.CompanyID,
		Name:          in.Name,
		SequenceCode:  code,
		EarTag:        in.EarTag,
		CategoryID:    in.CategoryID,
		BreedID:       in.BreedID,
		InclusionDate: in.InclusionDate,
		State:         entity.CattleStateInventory,
		LocationID:    in.LocationID,
		ResponsibleID: in.ResponsibleID,
		Currency:      in.Currency,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.cattleRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// SetState cambia el estado del ciclo de vida. El motivo de baja es
// obligatorio si y solo si el nuevo estado es retired o sold; no hay grafo de
// transiciones adicional.
func (uc *RegistryUseCase) SetState(ctx context.Context, id, state, reason, notes string) error {
	switch state {
	case entity.CattleStateInventory, entity.CattleStateRetired, entity.CattleStateSold:
	default:
		return domain.ErrInvalidInput
	}
	if state != entity.CattleStateInventory && reason == "" {
		return domain.NewUserError("debe indicar un motivo cuando el ganado está dado de baja o vendido")
	}
	if state == entity.CattleStateInventory {
		// Vuelta a inventario: se limpia el motivo para conservar el invariante.
		reason, notes = "", ""
	}
	c, err := uc.cattleRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	return uc.cattleRepo.UpdateState(ctx, id, state, reason, notes)
}

// GetProfile devuelve la ficha con las métricas derivadas completas
// (peso actual, coste acumulado, edad en días y coste/kg).
func (uc *RegistryUseCase) GetProfile(ctx context.Context, id string) (*entity.CattleProfile, error) {
	p, err := uc.cattleRepo.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	p.AgeDays = p.Cattle.AgeDays(time.Now())
	p.CostPerKg = entity.CostPerKg(p.TotalCost, p.CurrentWeight)
	return p, nil
}

// List lista las fichas de la empresa, con filtro opcional de estado.
func (uc *RegistryUseCase) List(ctx context.Context, companyID, state string, limit, offset int) ([]*entity.Cattle, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return uc.cattleRepo.List(ctx, companyID, state, limit, offset)
}
