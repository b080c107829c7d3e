package repository

import "context"

// Tipos de secuencia con código legible.
const (
	SequenceCattle     = "cattle"     // GAN-00001
	SequenceMovement   = "movement"   // MOV-00001
	SequenceAllocation = "allocation" // ASG-00001
)

// SequenceRepository genera códigos legibles únicos por tipo de entidad.
type SequenceRepository interface {
	NextCode(ctx context.Context, kind string) (string, error)
}
