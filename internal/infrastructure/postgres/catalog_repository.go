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

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

// CatalogRepo implementación de CatalogRepository sobre PostgreSQL. Las tres
// tablas de catálogo comparten forma (id, company_id, name único, active).
type CatalogRepo struct {
	q Querier
}

// NewCatalogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCatalogRepository(q Querier) *CatalogRepo {
	return &CatalogRepo{q: q}
}

// CreateCategory crea una categoría; nombre único por empresa.
func (r *CatalogRepo) CreateCategory(ctx context.Context, c *entity.Category) error {
	query := `
		INSERT INTO categories (id, company_id, name, active, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, c.ID, c.CompanyID, c.Name, c.Active, c.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: la categoría ya existe", domain.ErrDuplicate)
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetCategory obtiene una categoría por id, o nil si no existe.
func (r *CatalogRepo) GetCategory(ctx context.Context, id string) (*entity.Category, error) {
	query := `SELECT id, company_id, name, active, created_at FROM categories WHERE id = $1`
	var c entity.Category
	err := r.q.QueryRow(ctx, query, id).Scan(&c.ID, &c.CompanyID, &c.Name, &c.Active, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

// ListCategories lista las categorías activas de la empresa.
func (r *CatalogRepo) ListCategories(ctx context.Context, companyID string) ([]*entity.Category, error) {
	query := `
		SELECT id, company_id, name, active, created_at FROM categories
		WHERE company_id = $1 AND active = true
		ORDER BY name`
	rows, err := r.q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.CompanyID, &c.Name, &c.Active, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// CreateBreed crea una raza; nombre único por empresa.
func (r *CatalogRepo) CreateBreed(ctx context.Context, b *entity.Breed) error {
	query := `
		INSERT INTO breeds (id, company_id, name, active, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, b.ID, b.CompanyID, b.Name, b.Active, b.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: la raza ya existe", domain.ErrDuplicate)
		}
		return fmt.Errorf("insert breed: %w", err)
	}
	return nil
}

// GetBreed obtiene una raza por id, o nil si no existe.
func (r *CatalogRepo) GetBreed(ctx context.Context, id string) (*entity.Breed, error) {
	query := `SELECT id, company_id, name, active, created_at FROM breeds WHERE id = $1`
	var b entity.Breed
	err := r.q.QueryRow(ctx, query, id).Scan(&b.ID, &b.CompanyID, &b.Name, &b.Active, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get breed: %w", err)
	}
	return &b, nil
}

// ListBreeds lista las razas activas de la empresa.
func (r *CatalogRepo) ListBreeds(ctx context.Context, companyID string) ([]*entity.Breed, error) {
	query := `
		SELECT id, company_id, name, active, created_at FROM breeds
		WHERE company_id = $1 AND active = true
		ORDER BY name`
	rows, err := r.q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list breeds: %w", err)
	}
	defer rows.Close()
	var list []*entity.Breed
	for rows.Next() {
		var b entity.Breed
		if err := rows.Scan(&b.ID, &b.CompanyID, &b.Name, &b.Active, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan breed: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

// CreateLocation crea una ubicación; nombre único por empresa.
func (r *CatalogRepo) CreateLocation(ctx context.Context, l *entity.Location) error {
	query := `
		INSERT INTO locations (id, company_id, name, active, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, l.ID, l.CompanyID, l.Name, l.Active, l.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: la ubicación o lote ya existe", domain.ErrDuplicate)
		}
		return fmt.Errorf("insert location: %w", err)
	}
	return nil
}

// GetLocation obtiene una ubicación por id, o nil si no existe.
func (r *CatalogRepo) GetLocation(ctx context.Context, id string) (*entity.Location, error) {
	query := `SELECT id, company_id, name, active, created_at FROM locations WHERE id = $1`
	var l entity.Location
	err := r.q.QueryRow(ctx, query, id).Scan(&l.ID, &l.CompanyID, &l.Name, &l.Active, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	return &l, nil
}

// ListLocations lista las ubicaciones activas de la empresa.
func (r *CatalogRepo) ListLocations(ctx context.Context, companyID string) ([]*entity.Location, error) {
	query := `
		SELECT id, company_id, name, active, created_at FROM locations
		WHERE company_id = $1 AND active = true
		ORDER BY name`
	rows, err := r.q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Location
	for rows.Next() {
		var l entity.Location
		if err := rows.Scan(&l.ID, &l.CompanyID, &l.Name, &l.Active, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
