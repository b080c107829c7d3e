package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// WeightEntry es un registro de báscula de un animal. La serie es append-only:
// el peso actual del animal es el registro más reciente por fecha (desempate
// por id de inserción más alto).
type WeightEntry struct {
	ID        string
	CattleID  string
	Date      time.Time
	Weight    decimal.Decimal // kg, siempre > 0
	Notes     string
	CreatedAt time.Time
}
