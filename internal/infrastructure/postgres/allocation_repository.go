package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Ganaderia-api/internal/domain/entity"
	"github.com/jhoicas/Ganaderia-api/internal/domain/repository"
)

var _ repository.AllocationRepository = (*AllocationRepo)(nil)

// AllocationRepo implementación de las asignaciones de coste sobre PostgreSQL.
type AllocationRepo struct {
	q Querier
}

// NewAllocationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAllocationRepository(q Querier) *AllocationRepo {
	return &AllocationRepo{q: q}
}

const allocationColumns = `
	id, company_id, name, date, method, currency, note, state, cattle_ids, created_at, updated_at`

// Create persiste el borrador de asignación.
func (r *AllocationRepo) Create(ctx context.Context, a *entity.CostAllocation) error {
	query := `
		INSERT INTO cost_allocations (id, company_id, name, date, method, currency, note, state, cattle_ids, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.CompanyID, a.Name, a.Date, a.Method, a.Currency, nullIfEmpty(a.Note),
		a.State, a.CattleIDs, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create allocation: %w", err)
	}
	return nil
}

// GetByID obtiene la asignación por id, o nil si no existe.
func (r *AllocationRepo) GetByID(ctx context.Context, id string) (*entity.CostAllocation, error) {
	query := `SELECT ` + allocationColumns + ` FROM cost_allocations WHERE id = $1`
	a, err := scanAllocation(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get allocation: %w", err)
	}
	return a, nil
}

// GetForUpdate obtiene la asignación bloqueando su fila (SELECT FOR UPDATE).
func (r *AllocationRepo) GetForUpdate(ctx context.Context, id string) (*entity.CostAllocation, error) {
	query := `SELECT ` + allocationColumns + ` FROM cost_allocations WHERE id = $1 FOR UPDATE`
	a, err := scanAllocation(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get allocation for update: %w", err)
	}
	return a, nil
}

// List lista asignaciones de la empresa, de la más reciente a la más antigua.
func (r *AllocationRepo) List(ctx context.Context, companyID string, limit, offset int) ([]*entity.CostAllocation, error) {
	query := `SELECT ` + allocationColumns + `
		FROM cost_allocations WHERE company_id = $1
		ORDER BY date DESC, created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list allocations: %w", err)
	}
	defer rows.Close()
	var list []*entity.CostAllocation
	for rows.Next() {
		a, err := scanAllocation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan allocation: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}

// ReplaceLines reconstruye las candidatas del borrador. El caller ya resolvió
// qué flags de selección se conservan.
func (r *AllocationRepo) ReplaceLines(ctx context.Context, allocationID string, lines []*entity.AllocationLine) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM allocation_lines WHERE allocation_id = $1`, allocationID); err != nil {
		return fmt.Errorf("replace allocation lines: %w", err)
	}
	for _, l := range lines {
		query := `
			INSERT INTO allocation_lines (id, allocation_id, move_line_id, selected, created_at)
			VALUES ($1, $2, $3, $4, $5)`
		if _, err := r.q.Exec(ctx, query, l.ID, l.AllocationID, l.MoveLineID, l.Selected, l.CreatedAt); err != nil {
			return fmt.Errorf("insert allocation line: %w", err)
		}
	}
	return nil
}

// ListLines candidatas del borrador, en orden de inserción.
func (r *AllocationRepo) ListLines(ctx context.Context, allocationID string) ([]*entity.AllocationLine, error) {
	query := `
		SELECT id, allocation_id, move_line_id, selected, created_at
		FROM allocation_lines WHERE allocation_id = $1
		ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, query, allocationID)
	if err != nil {
		return nil, fmt.Errorf("list allocation lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.AllocationLine
	for rows.Next() {
		var l entity.AllocationLine
		if err := rows.Scan(&l.ID, &l.AllocationID, &l.MoveLineID, &l.Selected, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan allocation line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// SetSelected marca exactamente las líneas indicadas y desmarca el resto.
func (r *AllocationRepo) SetSelected(ctx context.Context, allocationID string, moveLineIDs []string) error {
	query := `
		UPDATE allocation_lines
		SET selected = (move_line_id = ANY($2))
		WHERE allocation_id = $1`
	if _, err := r.q.Exec(ctx, query, allocationID, moveLineIDs); err != nil {
		return fmt.Errorf("set selected lines: %w", err)
	}
	return nil
}

// ReservedMoveLineIDs líneas de factura seleccionadas por otros borradores.
func (r *AllocationRepo) ReservedMoveLineIDs(ctx context.Context, excludeAllocationID string) ([]string, error) {
	query := `
		SELECT DISTINCT l.move_line_id
		FROM allocation_lines l
		JOIN cost_allocations a ON a.id = l.allocation_id
		WHERE l.selected AND a.state = $1 AND a.id <> $2`
	rows, err := r.q.Query(ctx, query, entity.AllocationStateDraft, excludeAllocationID)
	if err != nil {
		return nil, fmt.Errorf("list reserved move lines: %w", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan reserved move line: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// UpdateState transiciona el estado de la asignación.
func (r *AllocationRepo) UpdateState(ctx context.Context, id, state string) error {
	query := `UPDATE cost_allocations SET state = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, state)
	if err != nil {
		return fmt.Errorf("update allocation state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanAllocation(row pgxScanner) (*entity.CostAllocation, error) {
	var a entity.CostAllocation
	var note *string
	err := row.Scan(
		&a.ID, &a.CompanyID, &a.Name, &a.Date, &a.Method, &a.Currency, &note,
		&a.State, &a.CattleIDs, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	a.Note = deref(note)
	return &a, nil
}
