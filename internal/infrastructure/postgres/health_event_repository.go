package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Ganaderia-api/internal/domain/entity"
	"github.com/jhoicas/Ganaderia-api/internal/domain/repository"
)

var _ repository.HealthEventRepository = (*HealthEventRepo)(nil)

// HealthEventRepo implementación del registro sanitario sobre PostgreSQL.
// Append-only.
type HealthEventRepo struct {
	q Querier
}

// NewHealthEventRepository construye el adaptador. Pasar pool o tx (Querier).
func NewHealthEventRepository(q Querier) *HealthEventRepo {
	return &HealthEventRepo{q: q}
}

// Create persiste un evento sanitario.
func (r *HealthEventRepo) Create(ctx context.Context, event *entity.HealthEvent) error {
	query := `
		INSERT INTO health_events (id, cattle_id, date, event_type, description, veterinarian, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		event.ID, event.CattleID, event.Date, event.EventType, event.Description,
		nullIfEmpty(event.Veterinarian), nullIfEmpty(event.Notes), event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create health event: %w", err)
	}
	return nil
}

// ListByCattle historial sanitario, del más reciente al más antiguo.
func (r *HealthEventRepo) ListByCattle(ctx context.Context, cattleID string, limit, offset int) ([]*entity.HealthEvent, error) {
	query := `
		SELECT id, cattle_id, date, event_type, description, veterinarian, notes, created_at
		FROM health_events WHERE cattle_id = $1
		ORDER BY date DESC, id DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, cattleID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list health events: %w", err)
	}
	defer rows.Close()
	var list []*entity.HealthEvent
	for rows.Next() {
		var e entity.HealthEvent
		var vet, notes *string
		if err := rows.Scan(&e.ID, &e.CattleID, &e.Date, &e.EventType, &e.Description, &vet, &notes, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan health event: %w", err)
		}
		e.Veterinarian = deref(vet)
		e.Notes = deref(notes)
		list = append(list, &e)
	}
	return list, rows.Err()
}
