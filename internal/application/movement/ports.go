package movement

import (
	"context"

	"github.com/jhoicas/Ganaderia-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la aplicación de un movimiento
// sea todo-o-nada: cualquier fallo por animal revierte el lote completo.
type TxRunner interface {
	RunMovement(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		cattleRepo repository.CattleRepository,
		weightRepo repository.WeightEntryRepository,
		healthRepo repository.HealthEventRepository,
	) error) error
}
