package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ohc225/gestion-terrain-immobilier/internal/repository"
)

// Service-level errors. Handlers match these with errors.Is to pick the
// response status.
var (
	ErrLotissementNotFound   = errors.New("lotissement not found")
	ErrIlotLotNotFound       = errors.New("ilot/lot not found")
	ErrAttributaireNotFound  = errors.New("attributaire not found")
	ErrCapacityExceeded      = errors.New("maximum number of attributaires reached for this ilot/lot")
	ErrIDUFCITaken           = errors.New("idUFCI is already in use")
	ErrIlotLotDuplicate      = errors.New("this ilot/lot already exists in this lotissement")
	ErrNumPieceIdentiteTaken = errors.New("this identity document number is already in use")
)

// FieldError is one field-level validation failure.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError aggregates field-level failures so a single response can
// report all of them.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// fieldErrors collects validation failures during input checking.
type fieldErrors struct {
	fields []FieldError
}

func (v *fieldErrors) add(field, message string) {
	v.fields = append(v.fields, FieldError{Field: field, Message: message})
}

func (v *fieldErrors) requireNonEmpty(field, value string) {
	if strings.TrimSpace(value) == "" {
		v.add(field, "ce champ est requis")
	}
}

func (v *fieldErrors) requireOneOf(field, value string, allowed []string) {
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	v.add(field, "valeur invalide (attendu: "+strings.Join(allowed, ", ")+")")
}

// err returns the aggregated ValidationError, or nil when every check passed.
func (v *fieldErrors) err() error {
	if len(v.fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: v.fields}
}

// mapUniqueViolation translates a repository unique-constraint failure into
// the matching domain error. Returns nil when err is not a unique violation.
func mapUniqueViolation(err error) error {
	var uv *repository.UniqueViolationError
	if !errors.As(err, &uv) {
		return nil
	}
	switch uv.Constraint {
	case repository.ConstraintIDUFCI:
		return ErrIDUFCITaken
	case repository.ConstraintIlotLotLotissement:
		return ErrIlotLotDuplicate
	case repository.ConstraintNumPieceIdentite:
		return ErrNumPieceIdentiteTaken
	default:
		return uv
	}
}
