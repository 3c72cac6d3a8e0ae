package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ohc225/gestion-terrain-immobilier/internal/models"
	"github.com/ohc225/gestion-terrain-immobilier/internal/repository"
	"github.com/ohc225/gestion-terrain-immobilier/internal/services"
)

// LotissementHandler handles lotissement-related HTTP requests.
type LotissementHandler struct {
	service services.LotissementService
}

// NewLotissementHandler creates a new LotissementHandler instance.
func NewLotissementHandler(service services.LotissementService) *LotissementHandler {
	return &LotissementHandler{service: service}
}

// CreateLotissementRequest is the JSON body for POST /api/lotissements.
type CreateLotissementRequest struct {
	NomLotissement                    string    `json:"nomLotissement" binding:"required"`
	Localite                          string    `json:"localite" binding:"required"`
	TypeLotissement                   string    `json:"typeLotissement" binding:"required"`
	CirconscriptionFonciere           string    `json:"circonscriptionFonciere" binding:"required"`
	SuperficieEnHectare               float64   `json:"superficieEnHectare" binding:"gte=0"`
	NombreIlotsTotal                  int       `json:"nombreIlotsTotal" binding:"gte=0"`
	NombreLotsTotal                   int       `json:"nombreLotsTotal" binding:"gte=0"`
	Village                           string    `json:"village" binding:"required"`
	NomChefVillage                    string    `json:"nomChefVillage" binding:"required"`
	NomPresidentComiteGestionFonciere string    `json:"nomPresidentComiteGestionFonciere" binding:"required"`
	NumArreteNominationChefVillage    string    `json:"numArreteNominationChefVillage" binding:"required"`
	NumArreteApprobationLotissement   string    `json:"numArreteApprobationLotissement" binding:"required"`
	DateApprobationLotissement        time.Time `json:"dateApprobationLotissement" binding:"required"`
}

// UpdateLotissementRequest is the JSON body for PUT /api/lotissements/:id.
// Absent fields are left untouched.
type UpdateLotissementRequest struct {
	NomLotissement                    *string    `json:"nomLotissement"`
	Localite                          *string    `json:"localite"`
	TypeLotissement                   *string    `json:"typeLotissement"`
	CirconscriptionFonciere           *string    `json:"circonscriptionFonciere"`
	SuperficieEnHectare               *float64   `json:"superficieEnHectare"`
	NombreIlotsTotal                  *int       `json:"nombreIlotsTotal"`
	NombreLotsTotal                   *int       `json:"nombreLotsTotal"`
	Village                           *string    `json:"village"`
	NomChefVillage                    *string    `json:"nomChefVillage"`
	NomPresidentComiteGestionFonciere *string    `json:"nomPresidentComiteGestionFonciere"`
	NumArreteNominationChefVillage    *string    `json:"numArreteNominationChefVillage"`
	NumArreteApprobationLotissement   *string    `json:"numArreteApprobationLotissement"`
	DateApprobationLotissement        *time.Time `json:"dateApprobationLotissement"`
}

// List handles GET /api/lotissements.
func (h *LotissementHandler) List(c *gin.Context) {
	lotissements, err := h.service.List(c.Request.Context())
	if err != nil {
		handleServiceError(c, err, "Erreur lors de la récupération des lotissements")
		return
	}
	c.JSON(http.StatusOK, lotissements)
}

// Search handles GET /api/lotissements/search?query=<text>.
func (h *LotissementHandler) Search(c *gin.Context) {
	lotissements, err := h.service.Search(c.Request.Context(), c.Query("query"))
	if err != nil {
		handleServiceError(c, err, "Erreur lors de la recherche des lotissements")
		return
	}
	c.JSON(http.StatusOK, lotissements)
}

// GetByID handles GET /api/lotissements/:id.
func (h *LotissementHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	lotissement, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err, "Erreur lors de la récupération du lotissement")
		return
	}
	c.JSON(http.StatusOK, lotissement)
}

// Create handles POST /api/lotissements.
func (h *LotissementHandler) Create(c *gin.Context) {
	var req CreateLotissementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	created, err := h.service.Create(c.Request.Context(), &models.Lotissement{
		NomLotissement:                    req.NomLotissement,
		Localite:                          req.Localite,
		TypeLotissement:                   req.TypeLotissement,
		CirconscriptionFonciere:           req.CirconscriptionFonciere,
		SuperficieEnHectare:               req.SuperficieEnHectare,
		NombreIlotsTotal:                  req.NombreIlotsTotal,
		NombreLotsTotal:                   req.NombreLotsTotal,
		Village:                           req.Village,
		NomChefVillage:                    req.NomChefVillage,
		NomPresidentComiteGestionFonciere: req.NomPresidentComiteGestionFonciere,
		NumArreteNominationChefVillage:    req.NumArreteNominationChefVillage,
		NumArreteApprobationLotissement:   req.NumArreteApprobationLotissement,
		DateApprobationLotissement:        req.DateApprobationLotissement,
	})
	if err != nil {
		handleServiceError(c, err, "Erreur lors de la création du lotissement")
		return
	}

	c.JSON(http.StatusCreated, DataResponse{
		Message: "Lotissement créé avec succès",
		Data:    created,
	})
}

// Update handles PUT /api/lotissements/:id.
func (h *LotissementHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateLotissementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, repository.LotissementUpdate{
		NomLotissement:                    req.NomLotissement,
		Localite:                          req.Localite,
		TypeLotissement:                   req.TypeLotissement,
		CirconscriptionFonciere:           req.CirconscriptionFonciere,
		SuperficieEnHectare:               req.SuperficieEnHectare,
		NombreIlotsTotal:                  req.NombreIlotsTotal,
		NombreLotsTotal:                   req.NombreLotsTotal,
		Village:                           req.Village,
		NomChefVillage:                    req.NomChefVillage,
		NomPresidentComiteGestionFonciere: req.NomPresidentComiteGestionFonciere,
		NumArreteNominationChefVillage:    req.NumArreteNominationChefVillage,
		NumArreteApprobationLotissement:   req.NumArreteApprobationLotissement,
		DateApprobationLotissement:        req.DateApprobationLotissement,
	})
	if err != nil {
		handleServiceError(c, err, "Erreur lors de la mise à jour du lotissement")
		return
	}

	c.JSON(http.StatusOK, DataResponse{
		Message: "Lotissement mis à jour avec succès",
		Data:    updated,
	})
}

// Delete handles DELETE /api/lotissements/:id. Child ilots/lots are left in
// place.
func (h *LotissementHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		handleServiceError(c, err, "Erreur lors de la suppression du lotissement")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Lotissement supprimé avec succès"})
}
