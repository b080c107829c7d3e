package allocation

import (
	"context"

	"github.com/jhoicas/Ganaderia-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. El reparto de una asignación (chequeo de
// doble asignación + creación de filas de coste + transición a done) debe
// confirmar de forma atómica; el constraint único de cost_history cierra la
// carrera entre asignaciones concurrentes sobre la misma línea.
type TxRunner interface {
	RunAllocation(ctx context.Context, fn func(
		allocRepo repository.AllocationRepository,
		lineRepo repository.InvoiceLineRepository,
		costRepo repository.CostHistoryRepository,
		cattleRepo repository.CattleRepository,
	) error) error
}
