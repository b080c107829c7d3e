package allocation

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ganaderia-api/internal/domain"
	domalloc "github.com/jhoicas/Ganaderia-api/internal/domain/allocation"
	"github.com/jhoicas/Ganaderia-api/internal/domain/entity"
	"github.com/jhoicas/Ganaderia-api/internal/domain/repository"
)

// AllocationUseCase gestiona las asignaciones de coste: mantiene el pool de
// líneas de factura candidatas de cada borrador (con reserva frente a otros
// borradores) y ejecuta el reparto que genera el coste histórico.
type AllocationUseCase struct {
	txRunner  TxRunner
	allocRepo repository.AllocationRepository
	lineRepo  repository.InvoiceLineRepository
	costRepo  repository.CostHistoryRepository
	seqRepo   repository.SequenceRepository
}

// NewAllocationUseCase construye el caso de uso.
func NewAllocationUseCase(
	txRunner TxRunner,
	allocRepo repository.AllocationRepository,
	lineRepo repository.InvoiceLineRepository,
	costRepo repository.CostHistoryRepository,
	seqRepo repository.SequenceRepository,
) *AllocationUseCase {
	return &AllocationUseCase{
		txRunner:  txRunner,
		allocRepo: allocRepo,
		lineRepo:  lineRepo,
		costRepo:  costRepo,
		seqRepo:   seqRepo,
	}
}

// CreateInput datos para crear una asignación en borrador.
type CreateInput struct {
	CompanyID string
	Date      time.Time
	Method    string
	CattleIDs []string
	Currency  string
	Note      string
}

// Create crea el borrador con su referencia secuencial y sincroniza su lista
// de líneas candidatas.
func (uc *AllocationUseCase) Create(ctx context.Context, in CreateInput) (*entity.CostAllocation, error) {
	if !entity.ValidAllocationMethod(in.Method) {
		return nil, domain.ErrInvalidInput
	}
	if in.Date.IsZero() {
		in.Date = time.Now()
	}
	name, err := uc.seqRepo.NextCode(ctx, repository.SequenceAllocation)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	a := &entity.CostAllocation{
		ID:        uuid.New().String(),
		CompanyID: in.CompanyID,
		Name:      name,
		Date:      in.Date,
		Method:    in.Method,
		Currency:  in.Currency,
		Note:      in.Note,
		State:     entity.AllocationStateDraft,
		CattleIDs: in.CattleIDs,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.allocRepo.Create(ctx, a); err != nil {
		return nil, err
	}
	if err := uc.syncAvailableLines(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// GetByID devuelve la asignación.
func (uc *AllocationUseCase) GetByID(ctx context.Context, id string) (*entity.CostAllocation, error) {
	a, err := uc.allocRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	return a, nil
}

// List lista las asignaciones de la empresa.
func (uc *AllocationUseCase) List(ctx context.Context, companyID string, limit, offset int) ([]*entity.CostAllocation, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return uc.allocRepo.List(ctx, companyID, limit, offset)
}

// RefreshLines resincroniza el pool de candidatas de un borrador. En una
// asignación ya procesada no hace nada.
func (uc *AllocationUseCase) RefreshLines(ctx context.Context, id string) error {
	a, err := uc.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if a.State == entity.AllocationStateDone {
		return nil
	}
	return uc.syncAvailableLines(ctx, a)
}

// syncAvailableLines reconstruye las candidatas del borrador: líneas de
// facturas de proveedor contabilizadas de la empresa, excluyendo las ya
// asignadas (coste histórico) y las reservadas por otros borradores.
// Conserva los flags de selección existentes.
func (uc *AllocationUseCase) syncAvailableLines(ctx context.Context, a *entity.CostAllocation) error {
	existing, err := uc.allocRepo.ListLines(ctx, a.ID)
	if err != nil {
		return err
	}
	selectedByLine := make(map[string]bool, len(existing))
	for _, l := range existing {
		selectedByLine[l.MoveLineID] = l.Selected
	}

	allocated, err := uc.costRepo.AllocatedMoveLineIDs(ctx)
	if err != nil {
		return err
	}
	reserved, err := uc.allocRepo.ReservedMoveLineIDs(ctx, a.ID)
	if err != nil {
		return err
	}
	exclude := append(allocated, reserved...)

	available, err := uc.lineRepo.ListAvailable(ctx, a.CompanyID, exclude)
	if err != nil {
		return err
	}
	lines := make([]*entity.AllocationLine, 0, len(available))
	for _, ml := range available {
		lines = append(lines, &entity.AllocationLine{
			ID:           uuid.New().String(),
			AllocationID: a.ID,
			MoveLineID:   ml.ID,
			Selected:     selectedByLine[ml.ID],
			CreatedAt:    time.Now(),
		})
	}
	return uc.allocRepo.ReplaceLines(ctx, a.ID, lines)
}

// SelectLines marca como seleccionadas (reservadas) exactamente las líneas
// indicadas del borrador, tras resincronizar el pool.
func (uc *AllocationUseCase) SelectLines(ctx context.Context, id string, moveLineIDs []string) error {
	a, err := uc.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if a.State == entity.AllocationStateDone {
		return domain.NewUserError("la asignación %s ya fue procesada", a.Name)
	}
	if err := uc.syncAvailableLines(ctx, a); err != nil {
		return err
	}
	return uc.allocRepo.SetSelected(ctx, a.ID, moveLineIDs)
}

// ListLines devuelve las candidatas del borrador con su línea de factura.
func (uc *AllocationUseCase) ListLines(ctx context.Context, id string) ([]*entity.AllocationLine, []*entity.InvoiceLine, error) {
	lines, err := uc.allocRepo.ListLines(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.MoveLineID)
	}
	moveLines, err := uc.lineRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	return lines, moveLines, nil
}

// Allocate ejecuta el reparto de la asignación en una sola transacción:
// valida precondiciones, calcula los factores de ponderación, parte el
// importe de cada línea entre su subconjunto elegible (renormalizando por
// línea) y crea una fila de coste histórico por (línea, animal). Al final la
// asignación pasa a done, estado terminal.
//
// Un choque con otra asignación concurrente sobre la misma línea aflora como
// domain.ErrConflict al confirmar (constraint único de cost_history); el
// caller debe recargar y reintentar.
func (uc *AllocationUseCase) Allocate(ctx context.Context, id string) error {
	return uc.txRunner.RunAllocation(ctx, func(
		allocRepo repository.AllocationRepository,
		lineRepo repository.InvoiceLineRepository,
		costRepo repository.CostHistoryRepository,
		cattleRepo repository.CattleRepository,
	) error {
		a, err := allocRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if a == nil {
			return domain.ErrNotFound
		}
		if len(a.CattleIDs) == 0 {
			return domain.NewUserError("debe seleccionar ganado para asignar costes")
		}

		candidates, err := allocRepo.ListLines(ctx, a.ID)
		if err != nil {
			return err
		}
		var selectedIDs []string
		for _, l := range candidates {
			if l.Selected {
				selectedIDs = append(selectedIDs, l.MoveLineID)
			}
		}
		if len(selectedIDs) == 0 {
			return domain.NewUserError("debe seleccionar al menos una línea de factura")
		}
		if a.State == entity.AllocationStateDone {
			return domain.NewUserError("la asignación %s ya fue procesada", a.Name)
		}

		lines, err := lineRepo.GetByIDs(ctx, selectedIDs)
		if err != nil {
			return err
		}
		linesByID := make(map[string]*entity.InvoiceLine, len(lines))
		var notPosted []string
		for _, ml := range lines {
			linesByID[ml.ID] = ml
			if !ml.Allocatable() {
				notPosted = append(notPosted, ml.DisplayName())
			}
		}
		// Una factura puede volver a borrador aguas arriba después de la
		// sincronización; aquí se corta antes de escribir costes.
		if len(notPosted) > 0 {
			sort.Strings(notPosted)
			return domain.NewUserError("las siguientes líneas no pertenecen a facturas de proveedor contabilizadas: %s", strings.Join(notPosted, ", "))
		}

		// Chequeo de doble asignación: ninguna línea seleccionada puede tener
		// ya filas de coste de otro proceso.
		existing, err := costRepo.ListByMoveLines(ctx, selectedIDs)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			taken := make(map[string]bool)
			var names []string
			for _, e := range existing {
				if taken[e.MoveLineID] {
					continue
				}
				taken[e.MoveLineID] = true
				if ml := linesByID[e.MoveLineID]; ml != nil {
					names = append(names, ml.DisplayName())
				} else {
					names = append(names, e.MoveLineID)
				}
			}
			sort.Strings(names)
			return domain.NewUserError("las siguientes líneas ya fueron asignadas en otro proceso: %s", strings.Join(names, ", "))
		}

		total := decimal.Zero
		for _, ml := range lines {
			total = total.Add(ml.Subtotal)
		}
		if !total.IsPositive() {
			return domain.NewUserError("el total a asignar debe ser mayor que cero")
		}

		profiles, err := cattleRepo.GetProfilesByIDs(ctx, a.CattleIDs)
		if err != nil {
			return err
		}
		today := time.Now()
		herd := make([]domalloc.CattleFactor, 0, len(profiles))
		for _, p := range profiles {
			herd = append(herd, domalloc.CattleFactor{
				CattleID:      p.ID,
				CategoryID:    p.CategoryID,
				CurrentWeight: p.CurrentWeight,
				AgeDays:       p.Cattle.AgeDays(today),
			})
		}
		factors := domalloc.Factors(a.Method, herd)
		if !domalloc.FactorSum(factors).IsPositive() {
			return domain.NewUserError("no se pudo calcular una base válida para el método de asignación")
		}

		for _, ml := range lines {
			eligible := domalloc.Eligible(herd, ml.CategoryID)
			// Una línea etiquetada sin animales de esa categoría se omite sin
			// repartir su importe en otro sitio.
			if len(eligible) == 0 {
				continue
			}
			shares := domalloc.Split(ml.Subtotal, eligible, factors)
			if shares == nil {
				return domain.NewUserError("la línea %s no tiene base de reparto válida con el método %s", ml.DisplayName(), a.Method)
			}
			for _, c := range eligible {
				entry := &entity.CostHistoryEntry{
					ID:              uuid.New().String(),
					CattleID:        c.CattleID,
					MoveLineID:      ml.ID,
					AllocationID:    a.ID,
					AllocationDate:  a.Date,
					SourceDocument:  ml.InvoiceName,
					AllocatedAmount: shares[c.CattleID],
					Currency:        ml.Currency,
					Method:          a.Method,
					Note:            "Asignación " + a.Name,
					CreatedAt:       time.Now(),
				}
				if err := costRepo.Create(ctx, entry); err != nil {
					return err
				}
			}
		}

		return allocRepo.UpdateState(ctx, a.ID, entity.AllocationStateDone)
	})
}
