package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	apierrors "github.com/ohc225/gestion-terrain-immobilier/internal/errors"
	"github.com/ohc225/gestion-terrain-immobilier/internal/services"
)

// MessageResponse is the confirmation payload for deletions.
type MessageResponse struct {
	Message string `json:"message"`
}

// DataResponse is the payload for successful creations and updates.
type DataResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// parseIDParam reads the named path parameter as an integer id. On failure it
// writes a 400 response and returns false.
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		apierrors.BadRequest(c, "Identifiant invalide", nil)
		return 0, false
	}
	return id, true
}

// bindingError writes the response for a failed request binding.
func bindingError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		apierrors.ValidationError(c, validationErrors)
		return
	}
	apierrors.BadRequest(c, "Corps de requête invalide", nil)
}

// handleServiceError maps a service-layer error to the matching HTTP response.
// fallback is the generic message used for unanticipated failures.
func handleServiceError(c *gin.Context, err error, fallback string) {
	var validationErr *services.ValidationError
	if errors.As(err, &validationErr) {
		fields := make([]apierrors.FieldError, 0, len(validationErr.Fields))
		for _, f := range validationErr.Fields {
			fields = append(fields, apierrors.FieldError{Field: f.Field, Message: f.Message})
		}
		apierrors.DomainValidation(c, "Erreur de validation", fields)
		return
	}

	switch {
	case errors.Is(err, services.ErrLotissementNotFound):
		apierrors.NotFound(c, "Lotissement non trouvé")
	case errors.Is(err, services.ErrIlotLotNotFound):
		apierrors.NotFound(c, "Ilot/Lot non trouvé")
	case errors.Is(err, services.ErrAttributaireNotFound):
		apierrors.NotFound(c, "Attributaire non trouvé")
	case errors.Is(err, services.ErrCapacityExceeded):
		apierrors.CapacityExceeded(c, "Le nombre maximum d'attributaires pour cet ilot/lot est atteint")
	case errors.Is(err, services.ErrIDUFCITaken):
		apierrors.UniqueConstraint(c, "Cet IDUFCI est déjà utilisé")
	case errors.Is(err, services.ErrIlotLotDuplicate):
		apierrors.UniqueConstraint(c, "Cet ilot/lot existe déjà dans ce lotissement")
	case errors.Is(err, services.ErrNumPieceIdentiteTaken):
		apierrors.UniqueConstraint(c, "Ce numéro de pièce d'identité est déjà utilisé")
	default:
		apierrors.InternalServerError(c, fallback, err)
	}
}
