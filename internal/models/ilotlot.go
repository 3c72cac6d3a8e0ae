package models

import (
	"time"
)

// IlotLot represents one subdivided parcel (island + lot) within a lotissement.
//
// NombreTotalAttributaires doubles as the admission ceiling read at
// create-attributaire time and the live occupancy count rewritten after every
// successful attributaire create or delete. The field is forced to zero when a
// parcel is created and only a direct update raises it.
type IlotLot struct {
	ID                       int64               `json:"id"`
	Ilot                     string              `json:"ilot"`
	Lot                      string              `json:"lot"`
	IDUFCI                   string              `json:"idUFCI"`
	SuperficieEnM2           float64             `json:"superficieEnM2"`
	Usage                    string              `json:"usage"`
	NombreTotalAttributaires int                 `json:"nombreTotalAttributaires"`
	NumTitreFoncier          *string             `json:"numTitreFoncier,omitempty"`
	DateTitreFoncier         *time.Time          `json:"dateTitreFoncier,omitempty"`
	NumParcelleCadastrale    *string             `json:"numParcelleCadastrale,omitempty"`
	NumSection               *string             `json:"numSection,omitempty"`
	LotissementID            int64               `json:"lotissementId"`
	Lotissement              *LotissementSummary `json:"lotissement,omitempty"`
	CreatedAt                time.Time           `json:"createdAt"`
	UpdatedAt                time.Time           `json:"updatedAt"`
}
