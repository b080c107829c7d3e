package repository

import (
	"context"

	"github.com/jhoicas/Ganaderia-api/internal/domain/entity"
)

// CostHistoryRepository puerto del coste histórico. Las filas son el registro
// de auditoría de la asignación: solo create y lecturas, nunca update/delete.
type CostHistoryRepository interface {
	Create(ctx context.Context, entry *entity.CostHistoryEntry) error
	ListByCattle(ctx context.Context, cattleID string, limit, offset int) ([]*entity.CostHistoryEntry, error)
	// ListByMoveLines devuelve las filas existentes para un conjunto de líneas
	// de factura. Es la consulta del chequeo de doble asignación.
	ListByMoveLines(ctx context.Context, moveLineIDs []string) ([]*entity.CostHistoryEntry, error)
	// AllocatedMoveLineIDs devuelve los ids de todas las líneas de factura ya
	// referenciadas por alguna fila de coste (excluidas del pool de candidatas).
	AllocatedMoveLineIDs(ctx context.Context) ([]string, error)
}
