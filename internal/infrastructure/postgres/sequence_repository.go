package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Ganaderia-api/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo genera códigos legibles (GAN-00001, MOV-00001, ASG-00001)
// con un contador por tipo en la tabla sequences.
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

var sequencePrefixes = map[string]string{
	repository.SequenceCattle:     "GAN",
	repository.SequenceMovement:   "MOV",
	repository.SequenceAllocation: "ASG",
}

// NextCode incrementa atómicamente el contador del tipo y devuelve el código
// formateado. El UPSERT serializa las llamadas concurrentes sobre la fila.
func (r *SequenceRepo) NextCode(ctx context.Context, kind string) (string, error) {
	prefix, ok := sequencePrefixes[kind]
	if !ok {
		return "", fmt.Errorf("unknown sequence kind %q", kind)
	}
	query := `
		INSERT INTO sequences (kind, counter) VALUES ($1, 1)
		ON CONFLICT (kind) DO UPDATE SET counter = sequences.counter + 1
		RETURNING counter`
	var counter int64
	if err := r.q.QueryRow(ctx, query, kind).Scan(&counter); err != nil {
		return "", fmt.Errorf("next sequence code: %w", err)
	}
	return fmt.Sprintf("%s-%05d", prefix, counter), nil
}
