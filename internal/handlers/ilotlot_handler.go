package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ohc225/gestion-terrain-immobilier/internal/models"
	"github.com/ohc225/gestion-terrain-immobilier/internal/repository"
	"github.com/ohc225/gestion-terrain-immobilier/internal/services"
)

// IlotLotHandler handles ilot/lot-related HTTP requests.
type IlotLotHandler struct {
	service services.IlotLotService
}

// NewIlotLotHandler creates a new IlotLotHandler instance.
func NewIlotLotHandler(service services.IlotLotService) *IlotLotHandler {
	return &IlotLotHandler{service: service}
}

// CreateIlotLotRequest is the JSON body for POST /api/ilots-lots. Any supplied
// nombreTotalAttributaires is ignored: the counter starts at zero.
type CreateIlotLotRequest struct {
	Ilot                  string     `json:"ilot" binding:"required"`
	Lot                   string     `json:"lot" binding:"required"`
	IDUFCI                string     `json:"idUFCI" binding:"required"`
	SuperficieEnM2        float64    `json:"superficieEnM2" binding:"gte=0"`
	Usage                 string     `json:"usage" binding:"required"`
	NumTitreFoncier       *string    `json:"numTitreFoncier"`
	DateTitreFoncier      *time.Time `json:"dateTitreFoncier"`
	NumParcelleCadastrale *string    `json:"numParcelleCadastrale"`
	NumSection            *string    `json:"numSection"`
	LotissementID         int64      `json:"lotissementId" binding:"required"`
}

// UpdateIlotLotRequest is the JSON body for PUT /api/ilots-lots/:id. Absent
// fields are left untouched. Supplying nombreTotalAttributaires raises (or
// lowers) the parcel's admission ceiling.
type UpdateIlotLotRequest struct {
	Ilot                     *string    `json:"ilot"`
	Lot                      *string    `json:"lot"`
	IDUFCI                   *string    `json:"idUFCI"`
	SuperficieEnM2           *float64   `json:"superficieEnM2"`
	Usage                    *string    `json:"usage"`
	NombreTotalAttributaires *int       `json:"nombreTotalAttributaires"`
	NumTitreFoncier          *string    `json:"numTitreFoncier"`
	DateTitreFoncier         *time.Time `json:"dateTitreFoncier"`
	NumParcelleCadastrale    *string    `json:"numParcelleCadastrale"`
	NumSection               *string    `json:"numSection"`
	LotissementID            *int64     `json:"lotissementId"`
}

// List handles GET /api/ilots-lots.
func (h *IlotLotHandler) List(c *gin.Context) {
	ilotsLots, err := h.service.List(c.Request.Context())
	if err != nil {
		handleServiceError(c, err, "Erreur lors de la récupération des ilots et lots")
		return
	}
	c.JSON(http.StatusOK, ilotsLots)
}

// Search handles GET /api/ilots-lots/search?query=<text>.
func (h *IlotLotHandler) Search(c *gin.Context) {
	ilotsLots, err := h.service.Search(c.Request.Context(), c.Query("query"))
	if err != nil {
		handleServiceError(c, err, "Erreur lors de la recherche des ilots et lots")
		return
	}
	c.JSON(http.StatusOK, ilotsLots)
}

// GetByID handles GET /api/ilots-lots/:id.
func (h *IlotLotHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ilotLot, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err, "Erreur lors de la récupération de l'ilot/lot")
		return
	}
	c.JSON(http.StatusOK, ilotLot)
}

// ListByLotissement handles GET /api/ilots-lots/lotissement/:lotissementId,
// ordered by island then lot label.
func (h *IlotLotHandler) ListByLotissement(c *gin.Context) {
	lotissementID, ok := parseIDParam(c, "lotissementId")
	if !ok {
		return
	}

	ilotsLots, err := h.service.ListByLotissement(c.Request.Context(), lotissementID)
	if err != nil {
		handleServiceError(c, err, "Erreur lors de la récupération des ilots et lots")
		return
	}
	c.JSON(http.StatusOK, ilotsLots)
}

// Create handles POST /api/ilots-lots.
func (h *IlotLotHandler) Create(c *gin.Context) {
	var req CreateIlotLotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	created, err := h.service.Create(c.Request.Context(), &models.IlotLot{
		Ilot:                  req.Ilot,
		Lot:                   req.Lot,
		IDUFCI:                req.IDUFCI,
		SuperficieEnM2:        req.SuperficieEnM2,
		Usage:                 req.Usage,
		NumTitreFoncier:       req.NumTitreFoncier,
		DateTitreFoncier:      req.DateTitreFoncier,
		NumParcelleCadastrale: req.NumParcelleCadastrale,
		NumSection:            req.NumSection,
		LotissementID:         req.LotissementID,
	})
	if err != nil {
		handleServiceError(c, err, "Erreur lors de la création de l'ilot/lot")
		return
	}

	c.JSON(http.StatusCreated, DataResponse{
		Message: "Ilot/Lot créé avec succès",
		Data:    created,
	})
}

// Update handles PUT /api/ilots-lots/:id.
func (h *IlotLotHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateIlotLotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, repository.IlotLotUpdate{
		Ilot:                     req.Ilot,
		Lot:                      req.Lot,
		IDUFCI:                   req.IDUFCI,
		SuperficieEnM2:           req.SuperficieEnM2,
		Usage:                    req.Usage,
		NombreTotalAttributaires: req.NombreTotalAttributaires,
		NumTitreFoncier:          req.NumTitreFoncier,
		DateTitreFoncier:         req.DateTitreFoncier,
		NumParcelleCadastrale:    req.NumParcelleCadastrale,
		NumSection:               req.NumSection,
		LotissementID:            req.LotissementID,
	})
	if err != nil {
		handleServiceError(c, err, "Erreur lors de la mise à jour de l'ilot/lot")
		return
	}

	c.JSON(http.StatusOK, DataResponse{
		Message: "Ilot/Lot mis à jour avec succès",
		Data:    updated,
	})
}

// Delete handles DELETE /api/ilots-lots/:id. Attached attributaires are left
// in place.
func (h *IlotLotHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		handleServiceError(c, err, "Erreur lors de la suppression de l'ilot/lot")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Ilot/Lot supprimé avec succès"})
}
