//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ganaderia-api/internal/domain/entity"
	"github.com/jhoicas/Ganaderia-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Ganaderia-api/pkg/config"
)

// Estas pruebas corren contra una base real (tag integration):
//
//	TEST_DATABASE_URL=postgres://... go test -tags integration ./internal/infrastructure/postgres/
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	pool, err := postgres.NewPool(context.Background(), config.DBConfig{DatabaseURL: dsn})
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func seedCattle(t *testing.T, pool *pgxpool.Pool) *entity.Cattle {
	t.Helper()
	ctx := context.Background()
	companyID := "test-" + uuid.New().String()
	catalogRepo := postgres.NewCatalogRepository(pool)

	cat := &entity.Category{ID: uuid.New().String(), CompanyID: companyID, Name: "Levante", Active: true, CreatedAt: time.Now()}
	require.NoError(t, catalogRepo.CreateCategory(ctx, cat))
	breed := &entity.Breed{ID: uuid.New().String(), CompanyID: companyID, Name: "Brahman", Active: true, CreatedAt: time.Now()}
	require.NoError(t, catalogRepo.CreateBreed(ctx, breed))

	now := time.Now()
	c := &entity.Cattle{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		Name:          "Paloma",
		SequenceCode:  "TST-" + uuid.New().String()[:8],
		CategoryID:    cat.ID,
		BreedID:       breed.ID,
		InclusionDate: now.AddDate(0, -6, 0),
		State:         entity.CattleStateInventory,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	require.NoError(t, postgres.NewCattleRepository(pool).Create(ctx, c))

	t.Cleanup(func() {
		pool.Exec(ctx, `DELETE FROM cost_history WHERE cattle_id = $1`, c.ID)
		pool.Exec(ctx, `DELETE FROM weight_entries WHERE cattle_id = $1`, c.ID)
		pool.Exec(ctx, `DELETE FROM cattle WHERE id = $1`, c.ID)
		pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, cat.ID)
		pool.Exec(ctx, `DELETE FROM breeds WHERE id = $1`, breed.ID)
	})
	return c
}

func weightAt(cattleID string, date, createdAt time.Time, kg int64) *entity.WeightEntry {
	return &entity.WeightEntry{
		ID:        uuid.New().String(),
		CattleID:  cattleID,
		Date:      date,
		Weight:    decimal.NewFromInt(kg),
		CreatedAt: createdAt,
	}
}

func TestGetProfile_PesoActualEsLaUltimaPesadaConDesempate(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	c := seedCattle(t, pool)
	weightRepo := postgres.NewWeightEntryRepository(pool)

	day := time.Now().Truncate(24 * time.Hour)
	base := time.Now().Add(-time.Hour)
	// Pesada antigua, y dos pesadas el mismo día: gana la insertada después.
	require.NoError(t, weightRepo.Create(ctx, weightAt(c.ID, day.AddDate(0, 0, -10), base, 380)))
	require.NoError(t, weightRepo.Create(ctx, weightAt(c.ID, day, base.Add(time.Minute), 400)))
	require.NoError(t, weightRepo.Create(ctx, weightAt(c.ID, day, base.Add(2*time.Minute), 410)))

	p, err := postgres.NewCattleRepository(pool).GetProfile(ctx, c.ID)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.True(t, p.CurrentWeight.Equal(decimal.NewFromInt(410)),
		"con fecha empatada gana la pesada insertada más tarde, obtuvo %s", p.CurrentWeight)
}

func TestGetProfile_SumaCosteAcumulado(t *testing.T) {
	pool := testPool(t)
	ctx := context.Background()
	c := seedCattle(t, pool)
	costRepo := postgres.NewCostHistoryRepository(pool)

	for i, amount := range []int64{300, 150} {
		entry := &entity.CostHistoryEntry{
			ID:              uuid.New().String(),
			CattleID:        c.ID,
			MoveLineID:      fmt.Sprintf("test-line-%s-%d", c.ID[:8], i),
			AllocationDate:  time.Now(),
			AllocatedAmount: decimal.NewFromInt(amount),
			Currency:        "COP",
			Method:          entity.AllocationMethodEqual,
			CreatedAt:       time.Now(),
		}
		require.NoError(t, costRepo.Create(ctx, entry))
	}

	p, err := postgres.NewCattleRepository(pool).GetProfile(ctx, c.ID)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.True(t, p.TotalCost.Equal(decimal.NewFromInt(450)), "obtuvo %s", p.TotalCost)
}

func TestGetProfile_SinRegistrosDevuelveCeros(t *testing.T) {
	pool := testPool(t)
	c := seedCattle(t, pool)

	p, err := postgres.NewCattleRepository(pool).GetProfile(context.Background(), c.ID)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.True(t, p.CurrentWeight.IsZero(), "sin pesadas el peso actual es cero")
	assert.True(t, p.TotalCost.IsZero(), "sin costes el acumulado es cero")
}
