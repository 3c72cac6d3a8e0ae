package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Unique constraint names from the schema. Services use these to translate a
// UniqueViolationError into the matching domain error.
const (
	ConstraintIDUFCI             = "ilots_lots_id_ufci_key"
	ConstraintIlotLotLotissement = "ilots_lots_ilot_lot_lotissement_id_key"
	ConstraintNumPieceIdentite   = "attributaires_num_piece_identite_key"
)

// UniqueViolationError reports a violated unique constraint.
type UniqueViolationError struct {
	Constraint string
}

func (e *UniqueViolationError) Error() string {
	return fmt.Sprintf("unique constraint %q violated", e.Constraint)
}

// asUniqueViolation returns a UniqueViolationError when err is a Postgres
// unique violation (SQLSTATE 23505), nil otherwise.
func asUniqueViolation(err error) *UniqueViolationError {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return &UniqueViolationError{Constraint: pgErr.ConstraintName}
	}
	return nil
}
