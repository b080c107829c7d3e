package movement_test

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ganaderia-api/internal/application/movement"
	"github.com/jhoicas/Ganaderia-api/internal/domain"
	"github.com/jhoicas/Ganaderia-api/internal/domain/entity"
	"github.com/jhoicas/Ganaderia-api/internal/domain/repository"
)

// ── fakes en memoria ──────────────────────────────────────────────────────────

type fakeMovementRepo struct {
	movements map[string]*entity.Movement
	details   map[string][]*entity.MovementWeightDetail
	history   []*entity.MovementHistory
}

func newFakeMovementRepo() *fakeMovementRepo {
	return &fakeMovementRepo{
		movements: make(map[string]*entity.Movement),
		details:   make(map[string][]*entity.MovementWeightDetail),
	}
}

func (r *fakeMovementRepo) Create(_ context.Context, m *entity.Movement, details []*entity.MovementWeightDetail) error {
	r.movements[m.ID] = m
	r.details[m.ID] = details
	return nil
}

func (r *fakeMovementRepo) GetByID(_ context.Context, id string) (*entity.Movement, error) {
	return r.movements[id], nil
}

func (r *fakeMovementRepo) GetForUpdate(_ context.Context, id string) (*entity.Movement, error) {
	return r.movements[id], nil
}

func (r *fakeMovementRepo) List(_ context.Context, companyID string, _, _ int) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range r.movements {
		if m.CompanyID == companyID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) ListWeightDetails(_ context.Context, movementID string) ([]*entity.MovementWeightDetail, error) {
	return r.details[movementID], nil
}

func (r *fakeMovementRepo) UpdateState(_ context.Context, id, state string) error {
	r.movements[id].State = state
	return nil
}

func (r *fakeMovementRepo) CreateHistory(_ context.Context, h *entity.MovementHistory) error {
	r.history = append(r.history, h)
	return nil
}

func (r *fakeMovementRepo) ListHistoryByMovement(_ context.Context, movementID string) ([]*entity.MovementHistory, error) {
	var out []*entity.MovementHistory
	for _, h := range r.history {
		if h.MovementID == movementID {
			out = append(out, h)
		}
	}
	return out, nil
}

func (r *fakeMovementRepo) ListHistoryByCattle(_ context.Context, cattleID string, _, _ int) ([]*entity.MovementHistory, error) {
	var out []*entity.MovementHistory
	for _, h := range r.history {
		if h.CattleID == cattleID {
			out = append(out, h)
		}
	}
	return out, nil
}

type fakeCattleRepo struct {
	profiles map[string]*entity.CattleProfile
}

func newFakeCattleRepo(profiles ...*entity.CattleProfile) *fakeCattleRepo {
	r := &fakeCattleRepo{profiles: make(map[string]*entity.CattleProfile)}
	for _, p := range profiles {
		r.profiles[p.ID] = p
	}
	return r
}

func (r *fakeCattleRepo) Create(_ context.Context, _ *entity.Cattle) error { return nil }

func (r *fakeCattleRepo) GetByID(_ context.Context, id string) (*entity.Cattle, error) {
	if p, ok := r.profiles[id]; ok {
		return &p.Cattle, nil
	}
	return nil, nil
}

func (r *fakeCattleRepo) GetProfile(_ context.Context, id string) (*entity.CattleProfile, error) {
	return r.profiles[id], nil
}

func (r *fakeCattleRepo) GetProfilesByIDs(_ context.Context, ids []string) ([]*entity.CattleProfile, error) {
	var out []*entity.CattleProfile
	for _, id := range ids {
		if p, ok := r.profiles[id]; ok {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SequenceCode < out[j].SequenceCode })
	return out, nil
}

func (r *fakeCattleRepo) List(_ context.Context, _, _ string, _, _ int) ([]*entity.Cattle, error) {
	return nil, nil
}

func (r *fakeCattleRepo) UpdateState(_ context.Context, id, state, reason, notes string) error {
	p := r.profiles[id]
	p.State = state
	p.RetirementReason = reason
	p.RetirementNotes = notes
	return nil
}

func (r *fakeCattleRepo) UpdateCategory(_ context.Context, id, categoryID string) error {
	r.profiles[id].CategoryID = categoryID
	return nil
}

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
	return nil, nil
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

type fakeSequenceRepo struct {
	counter int
}

func (r *fakeSequenceRepo) NextCode(_ context.Context, _ string) (string, error) {
	r.counter++
	return fmt.Sprintf("MOV-%05d", r.counter), nil
}

// fakeTxRunner ejecuta el callback directamente sobre los fakes, sin
// transacción real.
type fakeTxRunner struct {
	movRepo    *fakeMovementRepo
	cattleRepo *fakeCattleRepo
	weightRepo *fakeWeightRepo
	healthRepo *fakeHealthRepo
}

func (r *fakeTxRunner) RunMovement(_ context.Context, fn func(
	repository.MovementRepository,
	repository.CattleRepository,
	repository.WeightEntryRepository,
	repository.HealthEventRepository,
) error) error {
	return fn(r.movRepo, r.cattleRepo, r.weightRepo, r.healthRepo)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func profileInInventory(id, code, categoryID string) *entity.CattleProfile {
	return &entity.CattleProfile{
		Cattle: entity.Cattle{
			ID:            id,
			CompanyID:     "co1",
			Name:          "Animal " + code,
			SequenceCode:  code,
			CategoryID:    categoryID,
			InclusionDate: time.Now().AddDate(-1, 0, 0),
			State:         entity.CattleStateInventory,
		},
	}
}

type testEnv struct {
	uc         *movement.MovementUseCase
	movRepo    *fakeMovementRepo
	cattleRepo *fakeCattleRepo
	weightRepo *fakeWeightRepo
	healthRepo *fakeHealthRepo
}

func newTestEnv(profiles ...*entity.CattleProfile) *testEnv {
	movRepo := newFakeMovementRepo()
	cattleRepo := newFakeCattleRepo(profiles...)
	weightRepo := &fakeWeightRepo{}
	healthRepo := &fakeHealthRepo{}
	tx := &fakeTxRunner{movRepo: movRepo, cattleRepo: cattleRepo, weightRepo: weightRepo, healthRepo: healthRepo}
	return &testEnv{
		uc:         movement.NewMovementUseCase(tx, movRepo, &fakeSequenceRepo{}),
		movRepo:    movRepo,
		cattleRepo: cattleRepo,
		weightRepo: weightRepo,
		healthRepo: healthRepo,
	}
}

// ── tests ─────────────────────────────────────────────────────────────────────

func TestCreate_GeneraReferenciaSecuencial(t *testing.T) {
	env := newTestEnv()

	m, err := env.uc.Create(context.Background(), movement.CreateInput{
		CompanyID: "co1",
		Type:      entity.MovementTypeHealth,
		CattleIDs: []string{"c1"},
	})

	require.NoError(t, err)
	assert.Equal(t, "MOV-00001", m.Name, "la referencia debe salir de la secuencia")
	assert.Equal(t, entity.MovementStateDraft, m.State, "un movimiento nuevo siempre nace en borrador")
}

func TestCreate_TipoInvalidoFalla(t *testing.T) {
	env := newTestEnv()

	_, err := env.uc.Create(context.Background(), movement.CreateInput{
		CompanyID: "co1",
		Type:      "transfer",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApply_PesoCreaRegistrosEHistorico(t *testing.T) {
	env := newTestEnv(
		profileInInventory("c1", "GAN-00001", "cat-terneros"),
		profileInInventory("c2", "GAN-00002", "cat-terneros"),
	)

	m, err := env.uc.Create(context.Background(), movement.CreateInput{
		CompanyID: "co1",
		Type:      entity.MovementTypeWeight,
		WeightDetails: map[string]decimal.Decimal{
			"c1": decimal.NewFromInt(320),
			"c2": decimal.NewFromInt(410),
		},
	})
	require.NoError(t, err)

	require.NoError(t, env.uc.Apply(context.Background(), m.ID))

	assert.Len(t, env.weightRepo.entries, 2, "un registro de báscula por línea de detalle")
	hist, _ := env.movRepo.ListHistoryByMovement(context.Background(), m.ID)
	require.Len(t, hist, 2, "una instantánea por animal")
	for _, h := range hist {
		assert.False(t, h.Weight.IsZero(), "la instantánea de peso debe llevar el peso registrado")
		assert.Equal(t, entity.CattleStateInventory, h.FromState)
		assert.Equal(t, entity.CattleStateInventory, h.ToState)
	}
	assert.Equal(t, entity.MovementStateApplied, env.movRepo.movements[m.ID].State)
}

func TestApply_MovimientoYaAplicadoFalla(t *testing.T) {
	env := newTestEnv(profileInInventory("c1", "GAN-00001", "cat"))

	m, err := env.uc.Create(context.Background(), movement.CreateInput{
		CompanyID:     "co1",
		Type:          entity.MovementTypeWeight,
		WeightDetails: map[string]decimal.Decimal{"c1": decimal.NewFromInt(300)},
	})
	require.NoError(t, err)
	require.NoError(t, env.uc.Apply(context.Background(), m.ID))

	err = env.uc.Apply(context.Background(), m.ID)

	require.Error(t, err)
	assert.True(t, domain.IsUserError(err), "reaplicar debe ser un error de negocio, no técnico")
	assert.Contains(t, err.Error(), m.Name, "el mensaje debe nombrar el movimiento")
	assert.Len(t, env.weightRepo.entries, 1, "la segunda aplicación no debe escribir nada")
}

func TestApply_AnimalRepetidoEnLineasFalla(t *testing.T) {
	env := newTestEnv(profileInInventory("c1", "GAN-00001", "cat"))

	// Se siembran los detalles directamente para simular un borrador con el
	// mismo animal en dos líneas.
	m := &entity.Movement{
		ID: "m1", CompanyID: "co1", Name: "MOV-00001",
		Date: time.Now(), Type: entity.MovementTypeWeight,
		State: entity.MovementStateDraft,
	}
	env.movRepo.movements[m.ID] = m
	env.movRepo.details[m.ID] = []*entity.MovementWeightDetail{
		{ID: "d1", MovementID: m.ID, CattleID: "c1", Weight: decimal.NewFromInt(300)},
		{ID: "d2", MovementID: m.ID, CattleID: "c1", Weight: decimal.NewFromInt(310)},
	}

	err := env.uc.Apply(context.Background(), m.ID)

	require.Error(t, err)
	assert.True(t, domain.IsUserError(err))
	assert.Contains(t, err.Error(), "c1", "el mensaje debe nombrar el animal repetido")
	assert.Empty(t, env.weightRepo.entries, "no debe escribirse ningún pesaje")
	assert.Empty(t, env.movRepo.history, "no debe escribirse histórico")
	assert.Equal(t, entity.MovementStateDraft, m.State, "el movimiento sigue en borrador")
}

func TestApply_PesoNoPositivoFalla(t *testing.T) {
	env := newTestEnv(profileInInventory("c1", "GAN-00001", "cat"))

	m := &entity.Movement{
		ID: "m1", CompanyID: "co1", Name: "MOV-00001",
		Date: time.Now(), Type: entity.MovementTypeWeight,
		State: entity.MovementStateDraft,
	}
	env.movRepo.movements[m.ID] = m
	env.movRepo.details[m.ID] = []*entity.MovementWeightDetail{
		{ID: "d1", MovementID: m.ID, CattleID: "c1", Weight: decimal.Zero},
	}

	err := env.uc.Apply(context.Background(), m.ID)

	require.Error(t, err)
	assert.True(t, domain.IsUserError(err))
	assert.Empty(t, env.weightRepo.entries)
}

func TestApply_BajaMasivaRequiereMotivo(t *testing.T) {
	env := newTestEnv(profileInInventory("c1", "GAN-00001", "cat"))

	m, err := env.uc.Create(context.Background(), movement.CreateInput{
		CompanyID: "co1",
		Type:      entity.MovementTypeRetirement,
		CattleIDs: []string{"c1"},
	})
	require.NoError(t, err)

	err = env.uc.Apply(context.Background(), m.ID)

	require.Error(t, err)
	assert.True(t, domain.IsUserError(err))
	assert.Equal(t, entity.CattleStateInventory, env.cattleRepo.profiles["c1"].State,
		"sin motivo no debe darse de baja ningún animal")
}

func TestApply_BajaMasivaRetiraYRegistraMotivo(t *testing.T) {
	env := newTestEnv(
		profileInInventory("c1", "GAN-00001", "cat"),
		profileInInventory("c2", "GAN-00002", "cat"),
	)

	m, err := env.uc.Create(context.Background(), movement.CreateInput{
		CompanyID:        "co1",
		Type:             entity.MovementTypeRetirement,
		CattleIDs:        []string{"c1", "c2"},
		RetirementReason: entity.RetirementReasonIllness,
	})
	require.NoError(t, err)

	require.NoError(t, env.uc.Apply(context.Background(), m.ID))

	for _, id := range []string{"c1", "c2"} {
		p := env.cattleRepo.profiles[id]
		assert.Equal(t, entity.CattleStateRetired, p.State)
		assert.Equal(t, entity.RetirementReasonIllness, p.RetirementReason)
	}
	hist, _ := env.movRepo.ListHistoryByMovement(context.Background(), m.ID)
	require.Len(t, hist, 2)
	for _, h := range hist {
		assert.Equal(t, entity.CattleStateInventory, h.FromState)
		assert.Equal(t, entity.CattleStateRetired, h.ToState)
	}
}

func TestApply_BajaIgnoraAnimalesFueraDeInventario(t *testing.T) {
	vendido := profileInInventory("c2", "GAN-00002", "cat")
	vendido.State = entity.CattleStateSold
	vendido.RetirementReason = entity.RetirementReasonSale
	env := newTestEnv(profileInInventory("c1", "GAN-00001", "cat"), vendido)

	m, err := env.uc.Create(context.Background(), movement.CreateInput{
		CompanyID:        "co1",
		Type:             entity.MovementTypeRetirement,
		CattleIDs:        []string{"c1", "c2"},
		RetirementReason: entity.RetirementReasonDeath,
	})
	require.NoError(t, err)

	require.NoError(t, env.uc.Apply(context.Background(), m.ID))

	assert.Equal(t, entity.CattleStateSold, env.cattleRepo.profiles["c2"].State,
		"un animal ya vendido no se toca")
	hist, _ := env.movRepo.ListHistoryByMovement(context.Background(), m.ID)
	assert.Len(t, hist, 1, "solo el animal en inventario genera instantánea")
}

func TestApply_SinAnimalesEnInventarioFalla(t *testing.T) {
	vendido := profileInInventory("c1", "GAN-00001", "cat")
	vendido.State = entity.CattleStateSold
	env := newTestEnv(vendido)

	m, err := env.uc.Create(context.Background(), movement.CreateInput{
		CompanyID:        "co1",
		Type:             entity.MovementTypeRetirement,
		CattleIDs:        []string{"c1"},
		RetirementReason: entity.RetirementReasonDeath,
	})
	require.NoError(t, err)

	err = env.uc.Apply(context.Background(), m.ID)

	require.Error(t, err)
	assert.True(t, domain.IsUserError(err))
	assert.Equal(t, entity.MovementStateDraft, env.movRepo.movements[m.ID].State)
}

func TestApply_ReclasificacionOmiteMismaCategoria(t *testing.T) {
	env := newTestEnv(
		profileInInventory("c1", "GAN-00001", "cat-terneros"),
		profileInInventory("c2", "GAN-00002", "cat-novillos"), // ya está en destino
	)

	m, err := env.uc.Create(context.Background(), movement.CreateInput{
		CompanyID:     "co1",
		Type:          entity.MovementTypeReclassification,
		CattleIDs:     []string{"c1", "c2"},
		NewCategoryID: "cat-novillos",
	})
	require.NoError(t, err)

	require.NoError(t, env.uc.Apply(context.Background(), m.ID))

	assert.Equal(t, "cat-novillos", env.cattleRepo.profiles["c1"].CategoryID)
	hist, _ := env.movRepo.ListHistoryByMovement(context.Background(), m.ID)
	require.Len(t, hist, 1, "el animal que ya estaba en la categoría destino no genera histórico")
	assert.Equal(t, "c1", hist[0].CattleID)
	assert.Equal(t, "cat-terneros", hist[0].FromCategoryID)
	assert.Equal(t, "cat-novillos", hist[0].ToCategoryID)
	assert.Equal(t, entity.MovementStateApplied, env.movRepo.movements[m.ID].State,
		"el movimiento queda aplicado aunque omita animales")
}

func TestApply_SanidadMasivaCreaEventos(t *testing.T) {
	env := newTestEnv(
		profileInInventory("c1", "GAN-00001", "cat"),
		profileInInventory("c2", "GAN-00002", "cat"),
	)

	m, err := env.uc.Create(context.Background(), movement.CreateInput{
		CompanyID:         "co1",
		Type:              entity.MovementTypeHealth,
		CattleIDs:         []string{"c1", "c2"},
		HealthEventType:   entity.HealthEventVaccination,
		HealthDescription: "Vacunación aftosa ciclo I",
	})
	require.NoError(t, err)

	require.NoError(t, env.uc.Apply(context.Background(), m.ID))

	require.Len(t, env.healthRepo.events, 2)
	for _, e := range env.healthRepo.events {
		assert.Equal(t, entity.HealthEventVaccination, e.EventType)
		assert.Equal(t, "Vacunación aftosa ciclo I", e.Description)
	}
}
