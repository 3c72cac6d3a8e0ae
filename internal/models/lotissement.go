package models

import (
	"time"
)

// Lotissement represents a registered land subdivision. All descriptive fields
// are mandatory; area and count fields must be non-negative.
type Lotissement struct {
	ID                                int64     `json:"id"`
	NomLotissement                    string    `json:"nomLotissement"`
	Localite                          string    `json:"localite"`
	TypeLotissement                   string    `json:"typeLotissement"`
	CirconscriptionFonciere           string    `json:"circonscriptionFonciere"`
	SuperficieEnHectare               float64   `json:"superficieEnHectare"`
	NombreIlotsTotal                  int       `json:"nombreIlotsTotal"`
	NombreLotsTotal                   int       `json:"nombreLotsTotal"`
	Village                           string    `json:"village"`
	NomChefVillage                    string    `json:"nomChefVillage"`
	NomPresidentComiteGestionFonciere string    `json:"nomPresidentComiteGestionFonciere"`
	NumArreteNominationChefVillage    string    `json:"numArreteNominationChefVillage"`
	NumArreteApprobationLotissement   string    `json:"numArreteApprobationLotissement"`
	DateApprobationLotissement        time.Time `json:"dateApprobationLotissement"`
	CreatedAt                         time.Time `json:"createdAt"`
	UpdatedAt                         time.Time `json:"updatedAt"`
}

// LotissementSummary is the parent summary embedded in ilot/lot reads.
type LotissementSummary struct {
	NomLotissement string `json:"nomLotissement"`
	Localite       string `json:"localite"`
}
