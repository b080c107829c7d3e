package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Ganaderia-api/internal/domain"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// domainConflict envuelve una violación de unicidad como conflicto de dominio
// reintentable por el caller tras recargar estado.
func domainConflict(err error) error {
	return fmt.Errorf("%w: %v", domain.ErrConflict, err)
}
