package repository

import (
	"context"

	"github.com/jhoicas/Ganaderia-api/internal/domain/entity"
)

// MovementRepository puerto de los movimientos masivos y su histórico.
type MovementRepository interface {
	// Create persiste el movimiento en borrador junto a sus líneas de detalle
	// de peso (type=weight). Un animal repetido en los detalles viola el
	// constraint único (movement_id, cattle_id).
	Create(ctx context.Context, m *entity.Movement, details []*entity.MovementWeightDetail) error
	GetByID(ctx context.Context, id string) (*entity.Movement, error)
	// GetForUpdate carga el movimiento bloqueando su fila (SELECT FOR UPDATE)
	// para serializar aplicaciones concurrentes del mismo movimiento.
	GetForUpdate(ctx context.Context, id string) (*entity.Movement, error)
	List(ctx context.Context, companyID string, limit, offset int) ([]*entity.Movement, error)
	ListWeightDetails(ctx context.Context, movementID string) ([]*entity.MovementWeightDetail, error)
	UpdateState(ctx context.Context, id, state string) error

	// CreateHistory persiste una instantánea de auditoría. Inmutable: no hay
	// update ni delete del histórico.
	CreateHistory(ctx context.Context, h *entity.MovementHistory) error
	ListHistoryByMovement(ctx context.Context, movementID string) ([]*entity.MovementHistory, error)
	ListHistoryByCattle(ctx context.Context, cattleID string, limit, offset int) ([]*entity.MovementHistory, error)
}
