package repository

import (
	"context"

	"github.com/jhoicas/Ganaderia-api/internal/domain/entity"
)

// CatalogRepository define el puerto de persistencia de los catálogos de
// referencia (categoría, raza, ubicación). Nombres únicos por empresa.
type CatalogRepository interface {
	CreateCategory(ctx context.Context, c *entity.Category) error
	GetCategory(ctx context.Context, id string) (*entity.Category, error)
	ListCategories(ctx context.Context, companyID string) ([]*entity.Category, error)

	CreateBreed(ctx context.Context, b *entity.Breed) error
	GetBreed(ctx context.Context, id string) (*entity.Breed, error)
	ListBreeds(ctx context.Context, companyID string) ([]*entity.Breed, error)

	CreateLocation(ctx context.Context, l *entity.Location) error
	GetLocation(ctx context.Context, id string) (*entity.Location, error)
	ListLocations(ctx context.Context, companyID string) ([]*entity.Location, error)
}
