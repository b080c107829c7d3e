package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Ganaderia-api/internal/domain"
	"github.com/jhoicas/Ganaderia-api/internal/domain/entity"
	"github.com/jhoicas/Ganaderia-api/internal/domain/repository"
)

// CatalogUseCase gestiona los catálogos de referencia (categoría, raza,
// ubicación). Nombres únicos por empresa; el duplicado lo detecta el
// constraint de BD y llega como domain.ErrDuplicate.
type CatalogUseCase struct {
	repo repository.CatalogRepository
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(repo repository.CatalogRepository) *CatalogUseCase {
	return &CatalogUseCase{repo: repo}
}

// CreateCategory crea una categoría ganadera.
func (uc *CatalogUseCase) CreateCategory(ctx context.Context, companyID, name string) (*entity.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	c := &entity.Category{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      name,
		Active:    true,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// ListCategories lista las categorías de la empresa.
func (uc *CatalogUseCase) ListCategories(ctx context.Context, companyID string) ([]*entity.Category, error) {
	return uc.repo.ListCategories(ctx, companyID)
}

// CreateBreed crea una raza.
func (uc *CatalogUseCase) CreateBreed(ctx context.Context, companyID, name string) (*entity.Breed, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	b := &entity.Breed{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      name,
		Active:    true,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.CreateBreed(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// ListBreeds lista las razas de la empresa.
func (uc *CatalogUseCase) ListBreeds(ctx context.Context, companyID string) ([]*entity.Breed, error) {
	return uc.repo.ListBreeds(ctx, companyID)
}

// CreateLocation crea una ubicación o lote.
func (uc *CatalogUseCase) CreateLocation(ctx context.Context, companyID, name string) (*entity.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	l := &entity.Location{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      name,
		Active:    true,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.CreateLocation(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// ListLocations lista las ubicaciones de la empresa.
func (uc *CatalogUseCase) ListLocations(ctx context.Context, companyID string) ([]*entity.Location, error) {
	return uc.repo.ListLocations(ctx, companyID)
}
