package report

import (
	"context"
	"time"

	"github.com/jhoicas/Ganaderia-api/internal/domain"
	"github.com/jhoicas/Ganaderia-api/internal/domain/entity"
	"github.com/jhoicas/Ganaderia-api/internal/domain/repository"
)

// CattleReportGenerator puerto de salida para la generación de la ficha de
// ganado en PDF (implementado en infrastructure/pdf).
type CattleReportGenerator interface {
	GenerateCattleReport(
		ctx context.Context,
		profile *entity.CattleProfile,
		weights []*entity.WeightEntry,
		costs []*entity.CostHistoryEntry,
	) ([]byte, error)
}

// ReportUseCase arma la ficha de ganado imprimible: perfil con métricas
// derivadas más los historiales de peso y coste.
type ReportUseCase struct {
	cattleRepo repository.CattleRepository
	weightRepo repository.WeightEntryRepository
	costRepo   repository.CostHistoryRepository
	generator  CattleReportGenerator
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(
	cattleRepo repository.CattleRepository,
	weightRepo repository.WeightEntryRepository,
	costRepo repository.CostHistoryRepository,
	generator CattleReportGenerator,
) *ReportUseCase {
	return &ReportUseCase{
		cattleRepo: cattleRepo,
		weightRepo: weightRepo,
		costRepo:   costRepo,
		generator:  generator,
	}
}

// reportHistoryLimit tope de filas de historial incluidas en la ficha.
const reportHistoryLimit = 100

// CattleReport genera el PDF de la ficha del animal y devuelve sus bytes.
func (uc *ReportUseCase) CattleReport(ctx context.Context, cattleID string) ([]byte, error) {
	p, err := uc.cattleRepo.GetProfile(ctx, cattleID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	p.AgeDays = p.Cattle.AgeDays(time.Now())
	p.CostPerKg = entity.CostPerKg(p.TotalCost, p.CurrentWeight)

	weights, err := uc.weightRepo.ListByCattle(ctx, cattleID, reportHistoryLimit, 0)
	if err != nil {
		return nil, err
	}
	costs, err := uc.costRepo.ListByCattle(ctx, cattleID, reportHistoryLimit, 0)
	if err != nil {
		return nil, err
	}
	return uc.generator.GenerateCattleReport(ctx, p, weights, costs)
}
