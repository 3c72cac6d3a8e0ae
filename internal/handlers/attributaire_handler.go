package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ohc225/gestion-terrain-immobilier/internal/models"
	"github.com/ohc225/gestion-terrain-immobilier/internal/repository"
	"github.com/ohc225/gestion-terrain-immobilier/internal/services"
)

// AttributaireHandler handles attributaire-related HTTP requests.
type AttributaireHandler struct {
	service services.AttributaireService
}

// NewAttributaireHandler creates a new AttributaireHandler instance.
func NewAttributaireHandler(service services.AttributaireService) *AttributaireHandler {
	return &AttributaireHandler{service: service}
}

// CreateAttributaireRequest is the JSON body for POST /api/attributaires.
// typePersonne decides which of the person-specific fields are meaningful;
// identity, contact and residence fields are common to both variants.
type CreateAttributaireRequest struct {
	TypePersonne                string     `json:"typePersonne" binding:"required,oneof=Physique Morale"`
	Genre                       *string    `json:"genre" binding:"omitempty,oneof=Masculin Féminin Autre"`
	Civilite                    *string    `json:"civilite" binding:"omitempty,oneof=M. Mme Mlle Dr Pr"`
	Denomination                *string    `json:"denomination"`
	NumRegistreCommerce         *string    `json:"numRegistreCommerce"`
	Nom                         string     `json:"nom" binding:"required"`
	Prenom                      *string    `json:"prenom"`
	DateNaissance               *time.Time `json:"dateNaissance"`
	LieuNaissance               *string    `json:"lieuNaissance"`
	TypePieceIdentite           string     `json:"typePieceIdentite" binding:"required,oneof=CNI Passeport Permis Autre"`
	NumPieceIdentite            string     `json:"numPieceIdentite" binding:"required"`
	DateDelivrancePieceIdentite time.Time  `json:"dateDelivrancePieceIdentite" binding:"required"`
	TelephoneMobile             string     `json:"telephoneMobile" binding:"required"`
	Email                       *string    `json:"email" binding:"omitempty,email"`
	Adresse                     string     `json:"adresse" binding:"required"`
	PaysResidence               *string    `json:"paysResidence"`
	Nationalite                 string     `json:"nationalite" binding:"required"`
	IlotsLotsID                 int64      `json:"ilotsLotsId" binding:"required"`
}

// UpdateAttributaireRequest is the JSON body for PUT /api/attributaires/:id.
// Absent fields are left untouched; the parent parcel cannot be changed.
type UpdateAttributaireRequest struct {
	TypePersonne                *string    `json:"typePersonne" binding:"omitempty,oneof=Physique Morale"`
	Genre                       *string    `json:"genre" binding:"omitempty,oneof=Masculin Féminin Autre"`
	Civilite                    *string    `json:"civilite" binding:"omitempty,oneof=M. Mme Mlle Dr Pr"`
	Denomination                *string    `json:"denomination"`
	NumRegistreCommerce         *string    `json:"numRegistreCommerce"`
	Nom                         *string    `json:"nom"`
	Prenom                      *string    `json:"prenom"`
	DateNaissance               *time.Time `json:"dateNaissance"`
	LieuNaissance               *string    `json:"lieuNaissance"`
	TypePieceIdentite           *string    `json:"typePieceIdentite" binding:"omitempty,oneof=CNI Passeport Permis Autre"`
	NumPieceIdentite            *string    `json:"numPieceIdentite"`
	DateDelivrancePieceIdentite *time.Time `json:"dateDelivrancePieceIdentite"`
	TelephoneMobile             *string    `json:"telephoneMobile"`
	Email                       *string    `json:"email" binding:"omitempty,email"`
	Adresse                     *string    `json:"adresse"`
	PaysResidence               *string    `json:"paysResidence"`
	Nationalite                 *string    `json:"nationalite"`
}

// List handles GET /api/attributaires.
func (h *AttributaireHandler) List(c *gin.Context) {
	attributaires, err := h.service.List(c.Request.Context())
	if err != nil {
		handleServiceError(c, err, "Erreur lors de la récupération des attributaires")
		return
	}
	c.JSON(http.StatusOK, attributaires)
}

// Search handles GET /api/attributaires/search?query=<text>.
func (h *AttributaireHandler) Search(c *gin.Context) {
	attributaires, err := h.service.Search(c.Request.Context(), c.Query("query"))
	if err != nil {
		handleServiceError(c, err, "Erreur lors de la recherche des attributaires")
		return
	}
	c.JSON(http.StatusOK, attributaires)
}

// GetByID handles GET /api/attributaires/:id.
func (h *AttributaireHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	attributaire, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err, "Erreur lors de la récupération de l'attributaire")
		return
	}
	c.JSON(http.StatusOK, attributaire)
}

// ListByIlotLot handles GET /api/attributaires/ilot-lot/:ilotsLotsId, ordered
// by last then first name.
func (h *AttributaireHandler) ListByIlotLot(c *gin.Context) {
	ilotsLotsID, ok := parseIDParam(c, "ilotsLotsId")
	if !ok {
		return
	}

	attributaires, err := h.service.ListByIlotLot(c.Request.Context(), ilotsLotsID)
	if err != nil {
		handleServiceError(c, err, "Erreur lors de la récupération des attributaires")
		return
	}
	c.JSON(http.StatusOK, attributaires)
}

// Create handles POST /api/attributaires. The admission check against the
// parent parcel's ceiling happens in the service layer.
func (h *AttributaireHandler) Create(c *gin.Context) {
	var req CreateAttributaireRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	attributaire := &models.Attributaire{
		TypePersonne:                models.TypePersonne(req.TypePersonne),
		Genre:                       req.Genre,
		Civilite:                    req.Civilite,
		Denomination:                req.Denomination,
		NumRegistreCommerce:         req.NumRegistreCommerce,
		Nom:                         req.Nom,
		Prenom:                      req.Prenom,
		DateNaissance:               req.DateNaissance,
		LieuNaissance:               req.LieuNaissance,
		TypePieceIdentite:           req.TypePieceIdentite,
		NumPieceIdentite:            req.NumPieceIdentite,
		DateDelivrancePieceIdentite: req.DateDelivrancePieceIdentite,
		TelephoneMobile:             req.TelephoneMobile,
		Email:                       req.Email,
		Adresse:                     req.Adresse,
		Nationalite:                 req.Nationalite,
		IlotsLotsID:                 req.IlotsLotsID,
	}
	if req.PaysResidence != nil {
		attributaire.PaysResidence = *req.PaysResidence
	}

	created, err := h.service.Create(c.Request.Context(), attributaire)
	if err != nil {
		handleServiceError(c, err, "Erreur lors de la création de l'attributaire")
		return
	}

	c.JSON(http.StatusCreated, DataResponse{
		Message: "Attributaire créé avec succès",
		Data:    created,
	})
}

// Update handles PUT /api/attributaires/:id. The parent parcel's counter is
// never touched by an update.
func (h *AttributaireHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateAttributaireRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	upd := repository.AttributaireUpdate{
		Genre:                       req.Genre,
		Civilite:                    req.Civilite,
		Denomination:                req.Denomination,
		NumRegistreCommerce:         req.NumRegistreCommerce,
		Nom:                         req.Nom,
		Prenom:                      req.Prenom,
		DateNaissance:               req.DateNaissance,
		LieuNaissance:               req.LieuNaissance,
		TypePieceIdentite:           req.TypePieceIdentite,
		NumPieceIdentite:            req.NumPieceIdentite,
		DateDelivrancePieceIdentite: req.DateDelivrancePieceIdentite,
		TelephoneMobile:             req.TelephoneMobile,
		Email:                       req.Email,
		Adresse:                     req.Adresse,
		PaysResidence:               req.PaysResidence,
		Nationalite:                 req.Nationalite,
	}
	if req.TypePersonne != nil {
		tp := models.TypePersonne(*req.TypePersonne)
		upd.TypePersonne = &tp
	}

	updated, err := h.service.Update(c.Request.Context(), id, upd)
	if err != nil {
		handleServiceError(c, err, "Erreur lors de la mise à jour de l'attributaire")
		return
	}

	c.JSON(http.StatusOK, DataResponse{
		Message: "Attributaire mis à jour avec succès",
		Data:    updated,
	})
}

// Delete handles DELETE /api/attributaires/:id. The parent parcel's counter
// is recomputed after the deletion.
func (h *AttributaireHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		handleServiceError(c, err, "Erreur lors de la suppression de l'attributaire")
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Attributaire supprimé avec succès"})
}
