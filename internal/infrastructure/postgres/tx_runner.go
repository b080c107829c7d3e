package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Ganaderia-api/internal/application/allocation"
	"github.com/jhoicas/Ganaderia-api/internal/application/movement"
	"github.com/jhoicas/Ganaderia-api/internal/domain/repository"
)

// Ensure TxRunner implements movement.TxRunner and allocation.TxRunner.
var _ movement.TxRunner = (*TxRunner)(nil)
var _ allocation.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunMovement inicia una transacción con los repos del motor de movimientos,
// ejecuta fn y hace Commit o Rollback. La aplicación del movimiento es
// todo-o-nada.
func (r *TxRunner) RunMovement(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	cattleRepo repository.CattleRepository,
	weightRepo repository.WeightEntryRepository,
	healthRepo repository.HealthEventRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	movRepo := NewMovementRepository(tx)
	cattleRepo := NewCattleRepository(tx)
	weightRepo := NewWeightEntryRepository(tx)
	healthRepo := NewHealthEventRepository(tx)

	if err := fn(movRepo, cattleRepo, weightRepo, healthRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunAllocation inicia una transacción con los repos del motor de asignación
// de costes. El constraint único de cost_history convierte el choque entre
// asignaciones concurrentes en un error al confirmar (domain.ErrConflict).
func (r *TxRunner) RunAllocation(ctx context.Context, fn func(
	allocRepo repository.AllocationRepository,
	lineRepo repository.InvoiceLineRepository,
	costRepo repository.CostHistoryRepository,
	cattleRepo repository.CattleRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	allocRepo := NewAllocationRepository(tx)
	lineRepo := NewInvoiceLineRepository(tx)
	costRepo := NewCostHistoryRepository(tx)
	cattleRepo := NewCattleRepository(tx)

	if err := fn(allocRepo, lineRepo, costRepo, cattleRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		if isUniqueViolation(err) {
			return domainConflict(err)
		}
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
