package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Ganaderia-api/internal/domain"
	"github.com/jhoicas/Ganaderia-api/internal/domain/entity"
	"github.com/jhoicas/Ganaderia-api/internal/domain/repository"
)

var _ repository.CattleRepository = (*CattleRepo)(nil)

// CattleRepo implementación de CattleRepository sobre PostgreSQL (usable con
// pool o tx).
type CattleRepo struct {
	q Querier
}

// NewCattleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCattleRepository(q Querier) *CattleRepo {
	return &CattleRepo{q: q}
}

const cattleColumns = `
	id, company_id, name, sequence_code, ear_tag, category_id, breed_id,
	inclusion_date, state, retirement_reason, retirement_notes,
	location_id, responsible_id, currency, created_at, updated_at`

// Create persiste la ficha. Un sequence_code repetido viola el constraint
// único y se devuelve como domain.ErrDuplicate.
func (r *CattleRepo) Create(ctx context.Context, c *entity.Cattle) error {
	query := `
		INSERT INTO cattle (id, company_id, name, sequence_code, ear_tag, category_id, breed_id,
			inclusion_date, state, retirement_reason, retirement_notes,
			location_id, responsible_id, currency, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.CompanyID, c.Name, c.SequenceCode, nullIfEmpty(c.EarTag), c.CategoryID, c.BreedID,
		c.InclusionDate, c.State, nullIfEmpty(c.RetirementReason), nullIfEmpty(c.RetirementNotes),
		nullIfEmpty(c.LocationID), nullIfEmpty(c.ResponsibleID), nullIfEmpty(c.Currency),
		c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: el código del ganado debe ser único", domain.ErrDuplicate)
		}
		return fmt.Errorf("create cattle: %w", err)
	}
	return nil
}

// GetByID obtiene la ficha por id, o nil si no existe.
func (r *CattleRepo) GetByID(ctx context.Context, id string) (*entity.Cattle, error) {
	query := `SELECT ` + cattleColumns + ` FROM cattle WHERE id = $1`
	c, err := scanCattle(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cattle: %w", err)
	}
	return c, nil
}

const cattleProfileQuery = `
	SELECT ` + cattleColumns + `,
		COALESCE((SELECT w.weight FROM weight_entries w
			WHERE w.cattle_id = cattle.id
			ORDER BY w.date DESC, w.created_at DESC, w.id DESC
			LIMIT 1), 0) AS current_weight,
		COALESCE((SELECT SUM(h.allocated_amount) FROM cost_history h
			WHERE h.cattle_id = cattle.id), 0) AS total_cost
	FROM cattle`

// GetProfile devuelve la ficha con peso actual y coste acumulado derivados en
// la propia consulta (recalculo en lectura).
func (r *CattleRepo) GetProfile(ctx context.Context, id string) (*entity.CattleProfile, error) {
	query := cattleProfileQuery + ` WHERE cattle.id = $1`
	p, err := scanCattleProfile(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cattle profile: %w", err)
	}
	return p, nil
}

// GetProfilesByIDs resuelve los perfiles del conjunto en orden estable por
// código secuencial.
func (r *CattleRepo) GetProfilesByIDs(ctx context.Context, ids []string) ([]*entity.CattleProfile, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := cattleProfileQuery + ` WHERE cattle.id = ANY($1) ORDER BY cattle.sequence_code`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("get cattle profiles: %w", err)
	}
	defer rows.Close()
	var list []*entity.CattleProfile
	for rows.Next() {
		p, err := scanCattleProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cattle profile: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// List lista fichas de la empresa con filtro opcional de estado.
func (r *CattleRepo) List(ctx context.Context, companyID, state string, limit, offset int) ([]*entity.Cattle, error) {
	query := `SELECT ` + cattleColumns + ` FROM cattle WHERE company_id = $1`
	args := []any{companyID}
	pos := 2
	if state != "" {
		query += fmt.Sprintf(" AND state = $%d", pos)
		args = append(args, state)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY sequence_code LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list cattle: %w", err)
	}
	defer rows.Close()
	var list []*entity.Cattle
	for rows.Next() {
		c, err := scanCattle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cattle: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// UpdateState cambia estado y motivo/notas de baja.
func (r *CattleRepo) UpdateState(ctx context.Context, id, state, reason, notes string) error {
	query := `
		UPDATE cattle
		SET state = $2, retirement_reason = $3, retirement_notes = $4, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, state, nullIfEmpty(reason), nullIfEmpty(notes))
	if err != nil {
		return fmt.Errorf("update cattle state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// UpdateCategory reclasifica el animal.
func (r *CattleRepo) UpdateCategory(ctx context.Context, id, categoryID string) error {
	query := `UPDATE cattle SET category_id = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, categoryID)
	if err != nil {
		return fmt.Errorf("update cattle category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

func scanCattle(row pgxScanner) (*entity.Cattle, error) {
	var c entity.Cattle
	var earTag, reason, notes, locationID, responsibleID, currency *string
	err := row.Scan(
		&c.ID, &c.CompanyID, &c.Name, &c.SequenceCode, &earTag, &c.CategoryID, &c.BreedID,
		&c.InclusionDate, &c.State, &reason, &notes,
		&locationID, &responsibleID, &currency, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.EarTag = deref(earTag)
	c.RetirementReason = deref(reason)
	c.RetirementNotes = deref(notes)
	c.LocationID = deref(locationID)
	c.ResponsibleID = deref(responsibleID)
	c.Currency = deref(currency)
	return &c, nil
}

func scanCattleProfile(row pgxScanner) (*entity.CattleProfile, error) {
	var p entity.CattleProfile
	var earTag, reason, notes, locationID, responsibleID, currency *string
	err := row.Scan(
		&p.ID, &p.CompanyID, &p.Name, &p.SequenceCode, &earTag, &p.CategoryID, &p.BreedID,
		&p.InclusionDate, &p.State, &reason, &notes,
		&locationID, &responsibleID, &currency, &p.CreatedAt, &p.UpdatedAt,
		&p.CurrentWeight, &p.TotalCost,
	)
	if err != nil {
		return nil, err
	}
	p.EarTag = deref(earTag)
	p.RetirementReason = deref(reason)
	p.RetirementNotes = deref(notes)
	p.LocationID = deref(locationID)
	p.ResponsibleID = deref(responsibleID)
	p.Currency = deref(currency)
	return &p, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
