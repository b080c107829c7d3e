package repository

import (
	"context"

	"github.com/jhoicas/Ganaderia-api/internal/domain/entity"
)

// AllocationRepository puerto de las asignaciones de coste y sus líneas
// candidatas.
type AllocationRepository interface {
	Create(ctx context.Context, a *entity.CostAllocation) error
	GetByID(ctx context.Context, id string) (*entity.CostAllocation, error)
	// GetForUpdate bloquea la fila de la asignación (SELECT FOR UPDATE) para
	// serializar Allocate frente a llamadas concurrentes sobre el mismo id.
	GetForUpdate(ctx context.Context, id string) (*entity.CostAllocation, error)
	List(ctx context.Context, companyID string, limit, offset int) ([]*entity.CostAllocation, error)

	// ReplaceLines reconstruye la lista de candidatas de un borrador
	// conservando los flags de selección que el caller ya resolvió.
	ReplaceLines(ctx context.Context, allocationID string, lines []*entity.AllocationLine) error
	ListLines(ctx context.Context, allocationID string) ([]*entity.AllocationLine, error)
	// SetSelected marca como seleccionadas exactamente las líneas indicadas y
	// desmarca el resto.
	SetSelected(ctx context.Context, allocationID string, moveLineIDs []string) error
	// ReservedMoveLineIDs devuelve las líneas de factura reservadas (selected)
	// por otros borradores distintos de excludeAllocationID.
	ReservedMoveLineIDs(ctx context.Context, excludeAllocationID string) ([]string, error)

	UpdateState(ctx context.Context, id, state string) error
}
