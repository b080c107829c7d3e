package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ganaderia-api/internal/application/ledger"
	"github.com/jhoicas/Ganaderia-api/internal/domain"
	"github.com/jhoicas/Ganaderia-api/internal/domain/entity"
)

// ── fakes en memoria ──────────────────────────────────────────────────────────

type fakeCattleRepo struct {
	animals map[string]*entity.Cattle
}

func (r *fakeCattleRepo) Create(_ context.Context, _ *entity.Cattle) error { return nil }
func (r *fakeCattleRepo) GetByID(_ context.Context, id string) (*entity.Cattle, error) {
	return r.animals[id], nil
}
func (r *fakeCattleRepo) GetProfile(_ context.Context, _ string) (*entity.CattleProfile, error) {
	return nil, nil
}
func (r *fakeCattleRepo) GetProfilesByIDs(_ context.Context, _ []string) ([]*entity.CattleProfile, error) {
	return nil, nil
}
func (r *fakeCattleRepo) List(_ context.Context, _, _ string, _, _ int) ([]*entity.Cattle, error) {
	return nil, nil
}
func (r *fakeCattleRepo) UpdateState(_ context.Context, _, _, _, _ string) error { return nil }
func (r *fakeCattleRepo) UpdateCategory(_ context.Context, _, _ string) error    { return nil }

type fakeWeightRepo struct {
	entries []*entity.WeightEntry
}

func (r *fakeWeightRepo) Create(_ context.Context, e *entity.WeightEntry) error {
	r.entries = append(r.entries, e)
	return nil
}
func (r *fakeWeightRepo) ListByCattle(_ context.Context, _ string, _, _ int) ([]*entity.WeightEntry, error) {
	return r.entries, nil
}
func (r *fakeWeightRepo) Latest(_ context.Context, _ string) (*entity.WeightEntry, error) {
	if len(r.entries) == 0 {
		return nil, nil
	}
	return r.entries[len(r.entries)-1], nil
}

type fakeHealthRepo struct {
	events []*entity.HealthEvent
}

func (r *fakeHealthRepo) Create(_ context.Context, e *entity.HealthEvent) error {
	r.events = append(r.events, e)
	return nil
}
func (r *fakeHealthRepo) ListByCattle(_ context.Context, _ string, _, _ int) ([]*entity.HealthEvent, error) {
	return r.events, nil
}

type fakeCostRepo struct{}

func (r *fakeCostRepo) Create(_ context.Context, _ *entity.CostHistoryEntry) error { return nil }
func (r *fakeCostRepo) ListByCattle(_ context.Context, _ string, _, _ int) ([]*entity.CostHistoryEntry, error) {
	return nil, nil
}
func (r *fakeCostRepo) ListByMoveLines(_ context.Context, _ []string) ([]*entity.CostHistoryEntry, error) {
	return nil, nil
}
func (r *fakeCostRepo) AllocatedMoveLineIDs(_ context.Context) ([]string, error) { return nil, nil }

func newUseCase() (*ledger.LedgerUseCase, *fakeWeightRepo, *fakeHealthRepo) {
	cattleRepo := &fakeCattleRepo{animals: map[string]*entity.Cattle{
		"c1": {ID: "c1", State: entity.CattleStateInventory},
	}}
	weightRepo := &fakeWeightRepo{}
	healthRepo := &fakeHealthRepo{}
	return ledger.NewLedgerUseCase(cattleRepo, weightRepo, healthRepo, &fakeCostRepo{}), weightRepo, healthRepo
}

// ── tests ─────────────────────────────────────────────────────────────────────

func TestRecordWeight_RegistraPesaje(t *testing.T) {
	uc, weightRepo, _ := newUseCase()

	entry, err := uc.RecordWeight(context.Background(), "c1", time.Now(), decimal.NewFromInt(350), "báscula corral 2")

	require.NoError(t, err)
	assert.Len(t, weightRepo.entries, 1)
	assert.True(t, entry.Weight.Equal(decimal.NewFromInt(350)))
}

func TestRecordWeight_PesoCeroFalla(t *testing.T) {
	uc, weightRepo, _ := newUseCase()

	_, err := uc.RecordWeight(context.Background(), "c1", time.Now(), decimal.Zero, "")

	require.Error(t, err)
	assert.True(t, domain.IsUserError(err), "el peso cero es una violación de regla de negocio")
	assert.Empty(t, weightRepo.entries)
}

func TestRecordWeight_PesoNegativoFalla(t *testing.T) {
	uc, _, _ := newUseCase()

	_, err := uc.RecordWeight(context.Background(), "c1", time.Now(), decimal.NewFromInt(-5), "")

	require.Error(t, err)
	assert.True(t, domain.IsUserError(err))
}

func TestRecordWeight_AnimalInexistenteFalla(t *testing.T) {
	uc, _, _ := newUseCase()

	_, err := uc.RecordWeight(context.Background(), "nope", time.Now(), decimal.NewFromInt(300), "")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecordHealthEvent_RegistraEvento(t *testing.T) {
	uc, _, healthRepo := newUseCase()

	event, err := uc.RecordHealthEvent(context.Background(), "c1", time.Now(),
		entity.HealthEventTreatment, "Desparasitación interna", "Dra. Rojas", "")

	require.NoError(t, err)
	assert.Len(t, healthRepo.events, 1)
	assert.Equal(t, entity.HealthEventTreatment, event.EventType)
}

func TestRecordHealthEvent_SinDescripcionFalla(t *testing.T) {
	uc, _, healthRepo := newUseCase()

	_, err := uc.RecordHealthEvent(context.Background(), "c1", time.Now(),
		entity.HealthEventVaccination, "", "", "")

	require.Error(t, err)
	assert.True(t, domain.IsUserError(err))
	assert.Empty(t, healthRepo.events)
}

func TestRecordHealthEvent_TipoDesconocidoFalla(t *testing.T) {
	uc, _, _ := newUseCase()

	_, err := uc.RecordHealthEvent(context.Background(), "c1", time.Now(),
		"cirugia", "Cirugía menor", "", "")

	require.Error(t, err)
	assert.True(t, domain.IsUserError(err))
}
