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

// LotissementUpdate carries the fields of a partial lotissement update.
// Nil fields are left untouched.
type LotissementUpdate struct {
	NomLotissement                    *string
	Localite                          *string
	TypeLotissement                   *string
	CirconscriptionFonciere           *string
	SuperficieEnHectare               *float64
	NombreIlotsTotal                  *int
	NombreLotsTotal                   *int
	Village                           *string
	NomChefVillage                    *string
	NomPresidentComiteGestionFonciere *string
	NumArreteNominationChefVillage    *string
	NumArreteApprobationLotissement   *string
	DateApprobationLotissement        *time.Time
}

// LotissementRepository defines the data access operations for lotissements.
// Read methods return nil, nil when the record does not exist; errors are
// reserved for actual database failures.
type LotissementRepository interface {
	Create(ctx context.Context, l *models.Lotissement) (*models.Lotissement, error)
	GetByID(ctx context.Context, id int64) (*models.Lotissement, error)
	List(ctx context.Context) ([]models.Lotissement, error)
	Search(ctx context.Context, query string) ([]models.Lotissement, error)
	Update(ctx context.Context, id int64, upd LotissementUpdate) (*models.Lotissement, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type lotissementRepository struct {
	db *database.Database
}

// NewLotissementRepository creates a new instance of LotissementRepository.
func NewLotissementRepository(db *database.Database) LotissementRepository {
	return &lotissementRepository{db: db}
}

const lotissementColumns = `
	id,
	nom_lotissement,
	localite,
	type_lotissement,
	circonscription_fonciere,
	superficie_en_hectare,
	nombre_ilots_total,
	nombre_lots_total,
	village,
	nom_chef_village,
	nom_president_comite_gestion_fonciere,
	num_arrete_nomination_chef_village,
	num_arrete_approbation_lotissement,
	date_approbation_lotissement,
	created_at,
	updated_at`

func scanLotissement(row pgx.Row) (*models.Lotissement, error) {
	var l models.Lotissement
	err := row.Scan(
		&l.ID,
		&l.NomLotissement,
		&l.Localite,
		&l.TypeLotissement,
		&l.CirconscriptionFonciere,
		&l.SuperficieEnHectare,
		&l.NombreIlotsTotal,
		&l.NombreLotsTotal,
		&l.Village,
		&l.NomChefVillage,
		&l.NomPresidentComiteGestionFonciere,
		&l.NumArreteNominationChefVillage,
		&l.NumArreteApprobationLotissement,
		&l.DateApprobationLotissement,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *lotissementRepository) Create(ctx context.Context, l *models.Lotissement) (*models.Lotissement, error) {
	query := `
		INSERT INTO lotissements (
			nom_lotissement,
			localite,
			type_lotissement,
			circonscription_fonciere,
			superficie_en_hectare,
			nombre_ilots_total,
			nombre_lots_total,
			village,
			nom_chef_village,
			nom_president_comite_gestion_fonciere,
			num_arrete_nomination_chef_village,
			num_arrete_approbation_lotissement,
			date_approbation_lotissement
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING` + lotissementColumns

	created, err := scanLotissement(r.db.Pool.QueryRow(ctx, query,
		l.NomLotissement,
		l.Localite,
		l.TypeLotissement,
		l.CirconscriptionFonciere,
		l.SuperficieEnHectare,
		l.NombreIlotsTotal,
		l.NombreLotsTotal,
		l.Village,
		l.NomChefVillage,
		l.NomPresidentComiteGestionFonciere,
		l.NumArreteNominationChefVillage,
		l.NumArreteApprobationLotissement,
		l.DateApprobationLotissement,
	))
	if err != nil {
		if uv := asUniqueViolation(err); uv != nil {
			return nil, uv
		}
		return nil, fmt.Errorf("failed to insert lotissement: %w", err)
	}

	return created, nil
}

func (r *lotissementRepository) GetByID(ctx context.Context, id int64) (*models.Lotissement, error) {
	query := `SELECT` + lotissementColumns + ` FROM lotissements WHERE id = $1`

	l, err := scanLotissement(r.db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query lotissement %d: %w", id, err)
	}

	return l, nil
}

func (r *lotissementRepository) List(ctx context.Context) ([]models.Lotissement, error) {
	query := `SELECT` + lotissementColumns + ` FROM lotissements ORDER BY created_at DESC`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list lotissements: %w", err)
	}
	defer rows.Close()

	return collectLotissements(rows)
}

func (r *lotissementRepository) Search(ctx context.Context, search string) ([]models.Lotissement, error) {
	query := `SELECT` + lotissementColumns + `
		FROM lotissements
		WHERE nom_lotissement ILIKE '%' || $1 || '%'
		   OR localite ILIKE '%' || $1 || '%'
		   OR village ILIKE '%' || $1 || '%'`

	rows, err := r.db.Pool.Query(ctx, query, search)
	if err != nil {
		return nil, fmt.Errorf("failed to search lotissements: %w", err)
	}
	defer rows.Close()

	return collectLotissements(rows)
}

func collectLotissements(rows pgx.Rows) ([]models.Lotissement, error) {
	results := []models.Lotissement{}
	for rows.Next() {
		l, err := scanLotissement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lotissement row: %w", err)
		}
		results = append(results, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lotissement rows: %w", err)
	}
	return results, nil
}

func (r *lotissementRepository) Update(ctx context.Context, id int64, upd LotissementUpdate) (*models.Lotissement, error) {
	b := &updateBuilder{}
	if upd.NomLotissement != nil {
		b.set("nom_lotissement", *upd.NomLotissement)
	}
	if upd.Localite != nil {
		b.set("localite", *upd.Localite)
	}
	if upd.TypeLotissement != nil {
		b.set("type_lotissement", *upd.TypeLotissement)
	}
	if upd.CirconscriptionFonciere != nil {
		b.set("circonscription_fonciere", *upd.CirconscriptionFonciere)
	}
	if upd.SuperficieEnHectare != nil {
		b.set("superficie_en_hectare", *upd.SuperficieEnHectare)
	}
	if upd.NombreIlotsTotal != nil {
		b.set("nombre_ilots_total", *upd.NombreIlotsTotal)
	}
	if upd.NombreLotsTotal != nil {
		b.set("nombre_lots_total", *upd.NombreLotsTotal)
	}
	if upd.Village != nil {
		b.set("village", *upd.Village)
	}
	if upd.NomChefVillage != nil {
		b.set("nom_chef_village", *upd.NomChefVillage)
	}
	if upd.NomPresidentComiteGestionFonciere != nil {
		b.set("nom_president_comite_gestion_fonciere", *upd.NomPresidentComiteGestionFonciere)
	}
	if upd.NumArreteNominationChefVillage != nil {
		b.set("num_arrete_nomination_chef_village", *upd.NumArreteNominationChefVillage)
	}
	if upd.NumArreteApprobationLotissement != nil {
		b.set("num_arrete_approbation_lotissement", *upd.NumArreteApprobationLotissement)
	}
	if upd.DateApprobationLotissement != nil {
		b.set("date_approbation_lotissement", *upd.DateApprobationLotissement)
	}
	if b.empty() {
		return r.GetByID(ctx, id)
	}

	setClause, next := b.clause()
	query := fmt.Sprintf(
		`UPDATE lotissements SET %s WHERE id = $%d RETURNING`+lotissementColumns,
		setClause, next,
	)
	args := append(b.args, id)

	updated, err := scanLotissement(r.db.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		if uv := asUniqueViolation(err); uv != nil {
			return nil, uv
		}
		return nil, fmt.Errorf("failed to update lotissement %d: %w", id, err)
	}

	return updated, nil
}

func (r *lotissementRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM lotissements WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete lotissement %d: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}
