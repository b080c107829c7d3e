package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Ganaderia-api/internal/domain/entity"
	"github.com/jhoicas/Ganaderia-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación de los movimientos masivos sobre PostgreSQL.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = `
	id, company_id, name, date, type, cattle_ids, notes, state,
	health_event_type, health_description, health_veterinarian,
	retirement_reason, retirement_notes, new_category_id, created_at, updated_at`

// Create persiste el movimiento y sus líneas de detalle de peso. Un animal
// repetido en los detalles viola el constraint único (movement_id, cattle_id)
// y llega como domain.ErrConflict.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement, details []*entity.MovementWeightDetail) error {
	query := `
		INSERT INTO movements (id, company_id, name, date, type, cattle_ids, notes, state,
			health_event_type, health_description, health_veterinarian,
			retirement_reason, retirement_notes, new_category_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.CompanyID, m.Name, m.Date, m.Type, m.CattleIDs, nullIfEmpty(m.Notes), m.State,
		nullIfEmpty(m.HealthEventType), nullIfEmpty(m.HealthDescription), nullIfEmpty(m.HealthVeterinarian),
		nullIfEmpty(m.RetirementReason), nullIfEmpty(m.RetirementNotes), nullIfEmpty(m.NewCategoryID),
		m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	for _, d := range details {
		detailQuery := `
			INSERT INTO movement_weight_details (id, movement_id, cattle_id, weight)
			VALUES ($1, $2, $3, $4)`
		if _, err := r.q.Exec(ctx, detailQuery, d.ID, d.MovementID, d.CattleID, d.Weight); err != nil {
			if isUniqueViolation(err) {
				return domainConflict(err)
			}
			return fmt.Errorf("create movement detail: %w", err)
		}
	}
	return nil
}

// GetByID obtiene el movimiento por id, o nil si no existe.
func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE id = $1`
	m, err := scanMovement(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return m, nil
}

// GetForUpdate obtiene el movimiento bloqueando su fila (SELECT FOR UPDATE).
func (r *MovementRepo) GetForUpdate(ctx context.Context, id string) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE id = $1 FOR UPDATE`
	m, err := scanMovement(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement for update: %w", err)
	}
	return m, nil
}

// List lista movimientos de la empresa, del más reciente al más antiguo.
func (r *MovementRepo) List(ctx context.Context, companyID string, limit, offset int) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + `
		FROM movements WHERE company_id = $1
		ORDER BY date DESC, created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// ListWeightDetails líneas de detalle de peso del movimiento.
func (r *MovementRepo) ListWeightDetails(ctx context.Context, movementID string) ([]*entity.MovementWeightDetail, error) {
	query := `
		SELECT id, movement_id, cattle_id, weight
		FROM movement_weight_details WHERE movement_id = $1
		ORDER BY id`
	rows, err := r.q.Query(ctx, query, movementID)
	if err != nil {
		return nil, fmt.Errorf("list movement details: %w", err)
	}
	defer rows.Close()
	var list []*entity.MovementWeightDetail
	for rows.Next() {
		var d entity.MovementWeightDetail
		if err := rows.Scan(&d.ID, &d.MovementID, &d.CattleID, &d.Weight); err != nil {
			return nil, fmt.Errorf("scan movement detail: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

// UpdateState transiciona el estado del movimiento.
func (r *MovementRepo) UpdateState(ctx context.Context, id, state string) error {
	query := `UPDATE movements SET state = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, state)
	if err != nil {
		return fmt.Errorf("update movement state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// CreateHistory persiste una instantánea de auditoría. No hay update ni
// delete del histórico.
func (r *MovementRepo) CreateHistory(ctx context.Context, h *entity.MovementHistory) error {
	query := `
		INSERT INTO movement_history (id, movement_id, cattle_id, date, type, notes,
			from_category_id, to_category_id, from_state, to_state,
			weight, health_event_type, health_description, health_veterinarian,
			retirement_reason, retirement_notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(ctx, query,
		h.ID, h.MovementID, h.CattleID, h.Date, h.Type, nullIfEmpty(h.Notes),
		nullIfEmpty(h.FromCategoryID), nullIfEmpty(h.ToCategoryID), h.FromState, h.ToState,
		h.Weight, nullIfEmpty(h.HealthEventType), nullIfEmpty(h.HealthDescription),
		nullIfEmpty(h.HealthVeterinarian), nullIfEmpty(h.RetirementReason), nullIfEmpty(h.RetirementNotes),
		h.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create movement history: %w", err)
	}
	return nil
}

// ListHistoryByMovement instantáneas generadas por un movimiento.
func (r *MovementRepo) ListHistoryByMovement(ctx context.Context, movementID string) ([]*entity.MovementHistory, error) {
	query := movementHistoryQuery + ` WHERE movement_id = $1 ORDER BY created_at, id`
	return r.queryHistory(ctx, query, movementID)
}

// ListHistoryByCattle histórico de movimientos de un animal.
func (r *MovementRepo) ListHistoryByCattle(ctx context.Context, cattleID string, limit, offset int) ([]*entity.MovementHistory, error) {
	query := movementHistoryQuery + ` WHERE cattle_id = $1 ORDER BY date DESC, id DESC LIMIT $2 OFFSET $3`
	return r.queryHistory(ctx, query, cattleID, limit, offset)
}

const movementHistoryQuery = `
	SELECT id, movement_id, cattle_id, date, type, notes,
	       from_category_id, to_category_id, from_state, to_state,
	       weight, health_event_type, health_description, health_veterinarian,
	       retirement_reason, retirement_notes, created_at
	FROM movement_history`

func (r *MovementRepo) queryHistory(ctx context.Context, query string, args ...any) ([]*entity.MovementHistory, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movement history: %w", err)
	}
	defer rows.Close()
	var list []*entity.MovementHistory
	for rows.Next() {
		h, err := scanMovementHistory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement history: %w", err)
		}
		list = append(list, h)
	}
	return list, rows.Err()
}

// ── helpers ───────────────────────────────────────────────────────────────────

func scanMovement(row pgxScanner) (*entity.Movement, error) {
	var m entity.Movement
	var notes, healthType, healthDesc, healthVet, retReason, retNotes, newCategory *string
	err := row.Scan(
		&m.ID, &m.CompanyID, &m.Name, &m.Date, &m.Type, &m.CattleIDs, &notes, &m.State,
		&healthType, &healthDesc, &healthVet,
		&retReason, &retNotes, &newCategory, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	m.Notes = deref(notes)
	m.HealthEventType = deref(healthType)
	m.HealthDescription = deref(healthDesc)
	m.HealthVeterinarian = deref(healthVet)
	m.RetirementReason = deref(retReason)
	m.RetirementNotes = deref(retNotes)
	m.NewCategoryID = deref(newCategory)
	return &m, nil
}

func scanMovementHistory(row pgxScanner) (*entity.MovementHistory, error) {
	var h entity.MovementHistory
	var notes, fromCat, toCat, healthType, healthDesc, healthVet, retReason, retNotes *string
	err := row.Scan(
		&h.ID, &h.MovementID, &h.CattleID, &h.Date, &h.Type, &notes,
		&fromCat, &toCat, &h.FromState, &h.ToState,
		&h.Weight, &healthType, &healthDesc, &healthVet,
		&retReason, &retNotes, &h.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	h.Notes = deref(notes)
	h.FromCategoryID = deref(fromCat)
	h.ToCategoryID = deref(toCat)
	h.HealthEventType = deref(healthType)
	h.HealthDescription = deref(healthDesc)
	h.HealthVeterinarian = deref(healthVet)
	h.RetirementReason = deref(retReason)
	h.RetirementNotes = deref(retNotes)
	return &h, nil
}
