package models

import (
	"time"
)

// TypePersonne discriminates physical persons from legal entities.
type TypePersonne string

const (
	TypePersonnePhysique TypePersonne = "Physique"
	TypePersonneMorale   TypePersonne = "Morale"
)

// Valid reports whether the discriminant is one of the known values.
func (t TypePersonne) Valid() bool {
	return t == TypePersonnePhysique || t == TypePersonneMorale
}

// Allowed values for the optional enumerated fields.
var (
	Genres                 = []string{"Masculin", "Féminin", "Autre"}
	Civilites              = []string{"M.", "Mme", "Mlle", "Dr", "Pr"}
	TypesPieceIdentite     = []string{"CNI", "Passeport", "Permis", "Autre"}
	PaysResidenceParDefaut = "Côte d'Ivoire"
)

// Attributaire is the person or legal entity allocated a parcel. The
// TypePersonne discriminant governs which of the person-specific fields are
// meaningful; identity-document, contact and residence fields are common to
// both variants.
type Attributaire struct {
	ID                          int64        `json:"id"`
	TypePersonne                TypePersonne `json:"typePersonne"`
	Genre                       *string      `json:"genre,omitempty"`
	Civilite                    *string      `json:"civilite,omitempty"`
	Denomination                *string      `json:"denomination,omitempty"`
	NumRegistreCommerce         *string      `json:"numRegistreCommerce,omitempty"`
	Nom                         string       `json:"nom"`
	Prenom                      *string      `json:"prenom,omitempty"`
	DateNaissance               *time.Time   `json:"dateNaissance,omitempty"`
	LieuNaissance               *string      `json:"lieuNaissance,omitempty"`
	TypePieceIdentite           string       `json:"typePieceIdentite"`
	NumPieceIdentite            string       `json:"numPieceIdentite"`
	DateDelivrancePieceIdentite time.Time    `json:"dateDelivrancePieceIdentite"`
	TelephoneMobile             string       `json:"telephoneMobile"`
	Email                       *string      `json:"email,omitempty"`
	Adresse                     string       `json:"adresse"`
	PaysResidence               string       `json:"paysResidence"`
	Nationalite                 string       `json:"nationalite"`
	IlotsLotsID                 int64        `json:"ilotsLotsId"`
	IlotsLots                   *IlotLot     `json:"ilotsLots,omitempty"`
	CreatedAt                   time.Time    `json:"createdAt"`
	UpdatedAt                   time.Time    `json:"updatedAt"`
}

// PersonnePhysique is the physical-person view of an attributaire.
type PersonnePhysique struct {
	Civilite      string
	Genre         string
	Nom           string
	Prenom        string
	DateNaissance *time.Time
	LieuNaissance string
}

// PersonneMorale is the legal-entity view of an attributaire.
type PersonneMorale struct {
	Denomination        string
	NumRegistreCommerce string
}

// Physique returns the physical-person variant, or false when the attributaire
// is a legal entity.
func (a *Attributaire) Physique() (PersonnePhysique, bool) {
	if a.TypePersonne != TypePersonnePhysique {
		return PersonnePhysique{}, false
	}
	p := PersonnePhysique{
		Nom:           a.Nom,
		DateNaissance: a.DateNaissance,
	}
	if a.Civilite != nil {
		p.Civilite = *a.Civilite
	}
	if a.Genre != nil {
		p.Genre = *a.Genre
	}
	if a.Prenom != nil {
		p.Prenom = *a.Prenom
	}
	if a.LieuNaissance != nil {
		p.LieuNaissance = *a.LieuNaissance
	}
	return p, true
}

// Morale returns the legal-entity variant, or false when the attributaire is a
// physical person.
func (a *Attributaire) Morale() (PersonneMorale, bool) {
	if a.TypePersonne != TypePersonneMorale {
		return PersonneMorale{}, false
	}
	m := PersonneMorale{}
	if a.Denomination != nil {
		m.Denomination = *a.Denomination
	}
	if a.NumRegistreCommerce != nil {
		m.NumRegistreCommerce = *a.NumRegistreCommerce
	}
	return m, true
}
