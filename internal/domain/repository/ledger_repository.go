package repository

import (
	"context"

	"github.com/jhoicas/Ganaderia-api/internal/domain/entity"
)

// WeightEntryRepository puerto del control de pesos. La serie es append-only:
// sin update ni delete.
type WeightEntryRepository interface {
	Create(ctx context.Context, entry *entity.WeightEntry) error
	ListByCattle(ctx context.Context, cattleID string, limit, offset int) ([]*entity.WeightEntry, error)
	// Latest devuelve el registro más reciente por fecha (desempate por id de
	// inserción) o nil si el animal no tiene pesajes.
	Latest(ctx context.Context, cattleID string) (*entity.WeightEntry, error)
}

// HealthEventRepository puerto del registro sanitario. Append-only.
type HealthEventRepository interface {
	Create(ctx context.Context, event *entity.HealthEvent) error
	ListByCattle(ctx context.Context, cattleID string, limit, offset int) ([]*entity.HealthEvent, error)
}
