package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/ohc225/gestion-terrain-immobilier/internal/database"
	"github.com/ohc225/gestion-terrain-immobilier/internal/models"
)

// IlotLotUpdate carries the fields of a partial ilot/lot update. Nil fields
// are left untouched. NombreTotalAttributaires is how the admission ceiling
// gets raised.
type IlotLotUpdate struct {
	Ilot                     *string
	Lot                      *string
	IDUFCI                   *string
	SuperficieEnM2           *float64
	Usage                    *string
	NombreTotalAttributaires *int
	NumTitreFoncier          *string
	DateTitreFoncier         *time.Time
	NumParcelleCadastrale    *string
	NumSection               *string
	LotissementID            *int64
}

// IlotLotRepository defines the data access operations for ilots/lots.
// Reads eagerly fetch the parent lotissement summary. Read methods return
// nil, nil when the record does not exist.
type IlotLotRepository interface {
	Create(ctx context.Context, il *models.IlotLot) (*models.IlotLot, error)
	GetByID(ctx context.Context, id int64) (*models.IlotLot, error)
	List(ctx context.Context) ([]models.IlotLot, error)
	ListByLotissement(ctx context.Context, lotissementID int64) ([]models.IlotLot, error)
	Search(ctx context.Context, query string) ([]models.IlotLot, error)
	Update(ctx context.Context, id int64, upd IlotLotUpdate) (*models.IlotLot, error)
	Delete(ctx context.Context, id int64) (bool, error)

	// SetNombreTotalAttributaires overwrites the occupancy counter. It accepts
	// a Querier so the admission and removal flows can run it inside their
	// transaction; a missing parcel is not an error.
	SetNombreTotalAttributaires(ctx context.Context, q database.Querier, id int64, n int) error
}

type ilotLotRepository struct {
	db *database.Database
}

// NewIlotLotRepository creates a new instance of IlotLotRepository.
func NewIlotLotRepository(db *database.Database) IlotLotRepository {
	return &ilotLotRepository{db: db}
}

const ilotLotColumns = `
	il.id,
	il.ilot,
	il.lot,
	il.id_ufci,
	il.superficie_en_m2,
	il."usage",
	il.nombre_total_attributaires,
	il.num_titre_foncier,
	il.date_titre_foncier,
	il.num_parcelle_cadastrale,
	il.num_section,
	il.lotissement_id,
	il.created_at,
	il.updated_at,
	l.nom_lotissement,
	l.localite`

const ilotLotFrom = `
	FROM ilots_lots il
	LEFT JOIN lotissements l ON l.id = il.lotissement_id`

func scanIlotLot(row pgx.Row) (*models.IlotLot, error) {
	var il models.IlotLot
	var nomLotissement, localite *string

	err := row.Scan(
		&il.ID,
		&il.Ilot,
		&il.Lot,
		&il.IDUFCI,
		&il.SuperficieEnM2,
		&il.Usage,
		&il.NombreTotalAttributaires,
		&il.NumTitreFoncier,
		&il.DateTitreFoncier,
		&il.NumParcelleCadastrale,
		&il.NumSection,
		&il.LotissementID,
		&il.CreatedAt,
		&il.UpdatedAt,
		&nomLotissement,
		&localite,
	)
	if err != nil {
		return nil, err
	}

	// The parent summary is absent for orphaned parcels.
	if nomLotissement != nil && localite != nil {
		il.Lotissement = &models.LotissementSummary{
			NomLotissement: *nomLotissement,
			Localite:       *localite,
		}
	}

	return &il, nil
}

func collectIlotsLots(rows pgx.Rows) ([]models.IlotLot, error) {
	results := []models.IlotLot{}
	for rows.Next() {
		il, err := scanIlotLot(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ilot/lot row: %w", err)
		}
		results = append(results, *il)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ilot/lot rows: %w", err)
	}
	return results, nil
}

// Create inserts a new parcel. The occupancy counter always starts at the
// schema default of zero, whatever the caller supplied.
func (r *ilotLotRepository) Create(ctx context.Context, il *models.IlotLot) (*models.IlotLot, error) {
	query := `
		WITH inserted AS (
			INSERT INTO ilots_lots (
				ilot,
				lot,
				id_ufci,
				superficie_en_m2,
				"usage",
				num_titre_foncier,
				date_titre_foncier,
				num_parcelle_cadastrale,
				num_section,
				lotissement_id
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING *
		)
		SELECT` + ilotLotColumns + `
		FROM inserted il
		LEFT JOIN lotissements l ON l.id = il.lotissement_id`

	created, err := scanIlotLot(r.db.Pool.QueryRow(ctx, query,
		il.Ilot,
		il.Lot,
		il.IDUFCI,
		il.SuperficieEnM2,
		il.Usage,
		il.NumTitreFoncier,
		il.DateTitreFoncier,
		il.NumParcelleCadastrale,
		il.NumSection,
		il.LotissementID,
	))
	if err != nil {
		if uv := asUniqueViolation(err); uv != nil {
			return nil, uv
		}
		return nil, fmt.Errorf("failed to insert ilot/lot: %w", err)
	}

	return created, nil
}

func (r *ilotLotRepository) GetByID(ctx context.Context, id int64) (*models.IlotLot, error) {
	query := `SELECT` + ilotLotColumns + ilotLotFrom + ` WHERE il.id = $1`

	il, err := scanIlotLot(r.db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query ilot/lot %d: %w", id, err)
	}

	return il, nil
}

func (r *ilotLotRepository) List(ctx context.Context) ([]models.IlotLot, error) {
	query := `SELECT` + ilotLotColumns + ilotLotFrom + ` ORDER BY il.created_at DESC`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list ilots/lots: %w", err)
	}
	defer rows.Close()

	return collectIlotsLots(rows)
}

func (r *ilotLotRepository) ListByLotissement(ctx context.Context, lotissementID int64) ([]models.IlotLot, error) {
	query := `SELECT` + ilotLotColumns + ilotLotFrom + `
		WHERE il.lotissement_id = $1
		ORDER BY il.ilot ASC, il.lot ASC`

	rows, err := r.db.Pool.Query(ctx, query, lotissementID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ilots/lots for lotissement %d: %w", lotissementID, err)
	}
	defer rows.Close()

	return collectIlotsLots(rows)
}

func (r *ilotLotRepository) Search(ctx context.Context, search string) ([]models.IlotLot, error) {
	query := `SELECT` + ilotLotColumns + ilotLotFrom + `
		WHERE il.ilot ILIKE '%' || $1 || '%'
		   OR il.lot ILIKE '%' || $1 || '%'
		   OR il.id_ufci ILIKE '%' || $1 || '%'`

	rows, err := r.db.Pool.Query(ctx, query, search)
	if err != nil {
		return nil, fmt.Errorf("failed to search ilots/lots: %w", err)
	}
	defer rows.Close()

	return collectIlotsLots(rows)
}

func (r *ilotLotRepository) Update(ctx context.Context, id int64, upd IlotLotUpdate) (*models.IlotLot, error) {
	b := &updateBuilder{}
	if upd.Ilot != nil {
		b.set("ilot", *upd.Ilot)
	}
	if upd.Lot != nil {
		b.set("lot", *upd.Lot)
	}
	if upd.IDUFCI != nil {
		b.set("id_ufci", *upd.IDUFCI)
	}
	if upd.SuperficieEnM2 != nil {
		b.set("superficie_en_m2", *upd.SuperficieEnM2)
	}
	if upd.Usage != nil {
		b.set(`"usage"`, *upd.Usage)
	}
	if upd.NombreTotalAttributaires != nil {
		b.set("nombre_total_attributaires", *upd.NombreTotalAttributaires)
	}
	if upd.NumTitreFoncier != nil {
		b.set("num_titre_foncier", *upd.NumTitreFoncier)
	}
	if upd.DateTitreFoncier != nil {
		b.set("date_titre_foncier", *upd.DateTitreFoncier)
	}
	if upd.NumParcelleCadastrale != nil {
		b.set("num_parcelle_cadastrale", *upd.NumParcelleCadastrale)
	}
	if upd.NumSection != nil {
		b.set("num_section", *upd.NumSection)
	}
	if upd.LotissementID != nil {
		b.set("lotissement_id", *upd.LotissementID)
	}
	if b.empty() {
		return r.GetByID(ctx, id)
	}

	setClause, next := b.clause()
	query := fmt.Sprintf(`
		WITH updated AS (
			UPDATE ilots_lots SET %s WHERE id = $%d
			RETURNING *
		)
		SELECT`+ilotLotColumns+`
		FROM updated il
		LEFT JOIN lotissements l ON l.id = il.lotissement_id`,
		setClause, next,
	)
	args := append(b.args, id)

	updated, err := scanIlotLot(r.db.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		if uv := asUniqueViolation(err); uv != nil {
			return nil, uv
		}
		return nil, fmt.Errorf("failed to update ilot/lot %d: %w", id, err)
	}

	return updated, nil
}

func (r *ilotLotRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM ilots_lots WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete ilot/lot %d: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *ilotLotRepository) SetNombreTotalAttributaires(ctx context.Context, q database.Querier, id int64, n int) error {
	if q == nil {
		q = r.db.Pool
	}

	query := `UPDATE ilots_lots SET nombre_total_attributaires = $1, updated_at = now() WHERE id = $2`
	if _, err := q.Exec(ctx, query, n, id); err != nil {
		return fmt.Errorf("failed to set attributaire count for ilot/lot %d: %w", id, err)
	}
	return nil
}
