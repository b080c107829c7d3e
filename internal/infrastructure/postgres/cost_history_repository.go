package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Ganaderia-api/internal/domain/entity"
	"github.com/jhoicas/Ganaderia-api/internal/domain/repository"
)

var _ repository.CostHistoryRepository = (*CostHistoryRepo)(nil)

// CostHistoryRepo implementación del coste histórico sobre PostgreSQL.
// Las filas son inmutables: el repositorio no expone update ni delete. El
// constraint único (move_line_id, cattle_id) cierra la carrera entre
// asignaciones concurrentes sobre la misma línea en el momento del commit.
type CostHistoryRepo struct {
	q Querier
}

// NewCostHistoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCostHistoryRepository(q Querier) *CostHistoryRepo {
	return &CostHistoryRepo{q: q}
}

// Create persiste una fila de coste. Una violación de unicidad (misma línea
// ya repartida a ese animal por otra asignación) llega como domain.ErrConflict.
func (r *CostHistoryRepo) Create(ctx context.Context, entry *entity.CostHistoryEntry) error {
	query := `
		INSERT INTO cost_history (id, cattle_id, move_line_id, allocation_id, allocation_date,
			source_document, allocated_amount, currency, method, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		entry.ID, entry.CattleID, entry.MoveLineID, nullIfEmpty(entry.AllocationID), entry.AllocationDate,
		nullIfEmpty(entry.SourceDocument), entry.AllocatedAmount, entry.Currency, entry.Method,
		nullIfEmpty(entry.Note), entry.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domainConflict(err)
		}
		return fmt.Errorf("create cost history: %w", err)
	}
	return nil
}

// ListByCattle coste histórico del animal, del más reciente al más antiguo.
func (r *CostHistoryRepo) ListByCattle(ctx context.Context, cattleID string, limit, offset int) ([]*entity.CostHistoryEntry, error) {
	query := `
		SELECT id, cattle_id, move_line_id, allocation_id, allocation_date,
		       source_document, allocated_amount, currency, method, note, created_at
		FROM cost_history WHERE cattle_id = $1
		ORDER BY allocation_date DESC, id DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, cattleID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list cost history: %w", err)
	}
	defer rows.Close()
	var list []*entity.CostHistoryEntry
	for rows.Next() {
		e, err := scanCostHistory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cost history: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// ListByMoveLines filas existentes para un conjunto de líneas de factura
// (chequeo de doble asignación).
func (r *CostHistoryRepo) ListByMoveLines(ctx context.Context, moveLineIDs []string) ([]*entity.CostHistoryEntry, error) {
	if len(moveLineIDs) == 0 {
		return nil, nil
	}
	query := `
		SELECT id, cattle_id, move_line_id, allocation_id, allocation_date,
		       source_document, allocated_amount, currency, method, note, created_at
		FROM cost_history WHERE move_line_id = ANY($1)
		ORDER BY move_line_id, id`
	rows, err := r.q.Query(ctx, query, moveLineIDs)
	if err != nil {
		return nil, fmt.Errorf("list cost history by move lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.CostHistoryEntry
	for rows.Next() {
		e, err := scanCostHistory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cost history: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// AllocatedMoveLineIDs ids de todas las líneas de factura ya referenciadas por
// alguna fila de coste.
func (r *CostHistoryRepo) AllocatedMoveLineIDs(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT move_line_id FROM cost_history`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("allocated move line ids: %w", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan move line id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func scanCostHistory(row pgxScanner) (*entity.CostHistoryEntry, error) {
	var e entity.CostHistoryEntry
	var allocationID, sourceDoc, note *string
	err := row.Scan(
		&e.ID, &e.CattleID, &e.MoveLineID, &allocationID, &e.AllocationDate,
		&sourceDoc, &e.AllocatedAmount, &e.Currency, &e.Method, &note, &e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.AllocationID = deref(allocationID)
	e.SourceDocument = deref(sourceDoc)
	e.Note = deref(note)
	return &e, nil
}
