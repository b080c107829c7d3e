package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Ganaderia-api/internal/domain/entity"
	"github.com/jhoicas/Ganaderia-api/internal/domain/repository"
)

var _ repository.WeightEntryRepository = (*WeightEntryRepo)(nil)

// WeightEntryRepo implementación del control de pesos sobre PostgreSQL.
// Serie append-only: solo insert y lecturas.
type WeightEntryRepo struct {
	q Querier
}

// NewWeightEntryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWeightEntryRepository(q Querier) *WeightEntryRepo {
	return &WeightEntryRepo{q: q}
}

// Create persiste un pesaje. El CHECK (weight > 0) de la tabla respalda la
// validación de la capa de aplicación.
func (r *WeightEntryRepo) Create(ctx context.Context, entry *entity.WeightEntry) error {
	query := `
		INSERT INTO weight_entries (id, cattle_id, date, weight, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		entry.ID, entry.CattleID, entry.Date, entry.Weight, nullIfEmpty(entry.Notes), entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create weight entry: %w", err)
	}
	return nil
}

// ListByCattle historial de pesajes, del más reciente al más antiguo.
func (r *WeightEntryRepo) ListByCattle(ctx context.Context, cattleID string, limit, offset int) ([]*entity.WeightEntry, error) {
	query := `
		SELECT id, cattle_id, date, weight, notes, created_at
		FROM weight_entries WHERE cattle_id = $1
		ORDER BY date DESC, created_at DESC, id DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, cattleID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list weight entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.WeightEntry
	for rows.Next() {
		e, err := scanWeightEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan weight entry: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// Latest devuelve el pesaje más reciente por fecha (desempate por inserción),
// o nil si no hay registros. Es la fuente del peso actual del animal.
func (r *WeightEntryRepo) Latest(ctx context.Context, cattleID string) (*entity.WeightEntry, error) {
	query := `
		SELECT id, cattle_id, date, weight, notes, created_at
		FROM weight_entries WHERE cattle_id = $1
		ORDER BY date DESC, created_at DESC, id DESC
		LIMIT 1`
	e, err := scanWeightEntry(r.q.QueryRow(ctx, query, cattleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("latest weight entry: %w", err)
	}
	return e, nil
}

func scanWeightEntry(row pgxScanner) (*entity.WeightEntry, error) {
	var e entity.WeightEntry
	var notes *string
	err := row.Scan(&e.ID, &e.CattleID, &e.Date, &e.Weight, &notes, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	e.Notes = deref(notes)
	return &e, nil
}
