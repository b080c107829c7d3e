package repository

import (
	"context"

	"github.com/jhoicas/Ganaderia-api/internal/domain/entity"
)

// CattleRepository define el puerto de persistencia para las fichas de ganado (DIP).
type CattleRepository interface {
	Create(ctx context.Context, cattle *entity.Cattle) error
	GetByID(ctx context.Context, id string) (*entity.Cattle, error)
	// GetProfile devuelve la ficha con métricas derivadas (peso actual, coste
	// acumulado). La edad y el coste/kg los completa el caso de uso.
	GetProfile(ctx context.Context, id string) (*entity.CattleProfile, error)
	// GetProfilesByIDs resuelve en bloque los perfiles del conjunto objetivo de
	// un movimiento o asignación, ordenados por código secuencial.
	GetProfilesByIDs(ctx context.Context, ids []string) ([]*entity.CattleProfile, error)
	List(ctx context.Context, companyID, state string, limit, offset int) ([]*entity.Cattle, error)
	// UpdateState cambia estado y motivo/notas de baja. El invariante
	// motivo-si-baja lo valida el caso de uso antes de llamar.
	UpdateState(ctx context.Context, id, state, reason, notes string) error
	UpdateCategory(ctx context.Context, id, categoryID string) error
}
