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

// AttributaireUpdate carries the fields of a partial attributaire update.
// Nil fields are left untouched.
type AttributaireUpdate struct {
	TypePersonne                *models.TypePersonne
	Genre                       *string
	Civilite                    *string
	Denomination                *string
	NumRegistreCommerce         *string
	Nom                         *string
	Prenom                      *string
	DateNaissance               *time.Time
	LieuNaissance               *string
	TypePieceIdentite           *string
	NumPieceIdentite            *string
	DateDelivrancePieceIdentite *time.Time
	TelephoneMobile             *string
	Email                       *string
	Adresse                     *string
	PaysResidence               *string
	Nationalite                 *string
}

// AttributaireRepository defines the data access operations for attributaires.
// Reads eagerly fetch the parent ilot/lot and its lotissement summary. Read
// methods return nil, nil when the record does not exist.
//
// Create, Delete and CountByIlotLot accept a Querier so the service layer can
// run the admission and removal sequences inside a single transaction; passing
// nil uses the pool.
type AttributaireRepository interface {
	Create(ctx context.Context, q database.Querier, a *models.Attributaire) (*models.Attributaire, error)
	GetByID(ctx context.Context, id int64) (*models.Attributaire, error)
	List(ctx context.Context) ([]models.Attributaire, error)
	ListByIlotLot(ctx context.Context, ilotsLotsID int64) ([]models.Attributaire, error)
	Search(ctx context.Context, query string) ([]models.Attributaire, error)
	Update(ctx context.Context, id int64, upd AttributaireUpdate) (*models.Attributaire, error)
	Delete(ctx context.Context, q database.Querier, id int64) (bool, error)
	CountByIlotLot(ctx context.Context, q database.Querier, ilotsLotsID int64) (int, error)
}

type attributaireRepository struct {
	db *database.Database
}

// NewAttributaireRepository creates a new instance of AttributaireRepository.
func NewAttributaireRepository(db *database.Database) AttributaireRepository {
	return &attributaireRepository{db: db}
}

func (r *attributaireRepository) querier(q database.Querier) database.Querier {
	if q == nil {
		return r.db.Pool
	}
	return q
}

const attributaireColumns = `
	a.id,
	a.type_personne,
	a.genre,
	a.civilite,
	a.denomination,
	a.num_registre_commerce,
	a.nom,
	a.prenom,
	a.date_naissance,
	a.lieu_naissance,
	a.type_piece_identite,
	a.num_piece_identite,
	a.date_delivrance_piece_identite,
	a.telephone_mobile,
	a.email,
	a.adresse,
	a.pays_residence,
	a.nationalite,
	a.ilots_lots_id,
	a.created_at,
	a.updated_at,
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

const attributaireFrom = `
	FROM attributaires a
	LEFT JOIN ilots_lots il ON il.id = a.ilots_lots_id
	LEFT JOIN lotissements l ON l.id = il.lotissement_id`

func scanAttributaire(row pgx.Row) (*models.Attributaire, error) {
	var a models.Attributaire

	// Parent columns are nullable: the parcel may have been deleted out from
	// under its attributaires.
	var (
		ilID             *int64
		ilIlot           *string
		ilLot            *string
		ilIDUFCI         *string
		ilSuperficie     *float64
		ilUsage          *string
		ilNombre         *int
		ilNumTitre       *string
		ilDateTitre      *time.Time
		ilNumParcelle    *string
		ilNumSection     *string
		ilLotissementID  *int64
		ilCreatedAt      *time.Time
		ilUpdatedAt      *time.Time
		lNomLotissement  *string
		lLocalite        *string
	)

	err := row.Scan(
		&a.ID,
		&a.TypePersonne,
		&a.Genre,
		&a.Civilite,
		&a.Denomination,
		&a.NumRegistreCommerce,
		&a.Nom,
		&a.Prenom,
		&a.DateNaissance,
		&a.LieuNaissance,
		&a.TypePieceIdentite,
		&a.NumPieceIdentite,
		&a.DateDelivrancePieceIdentite,
		&a.TelephoneMobile,
		&a.Email,
		&a.Adresse,
		&a.PaysResidence,
		&a.Nationalite,
		&a.IlotsLotsID,
		&a.CreatedAt,
		&a.UpdatedAt,
		&ilID,
		&ilIlot,
		&ilLot,
		&ilIDUFCI,
		&ilSuperficie,
		&ilUsage,
		&ilNombre,
		&ilNumTitre,
		&ilDateTitre,
		&ilNumParcelle,
		&ilNumSection,
		&ilLotissementID,
		&ilCreatedAt,
		&ilUpdatedAt,
		&lNomLotissement,
		&lLocalite,
	)
	if err != nil {
		return nil, err
	}

	if ilID != nil {
		il := &models.IlotLot{
			ID:                       *ilID,
			Ilot:                     *ilIlot,
			Lot:                      *ilLot,
			IDUFCI:                   *ilIDUFCI,
			SuperficieEnM2:           *ilSuperficie,
			Usage:                    *ilUsage,
			NombreTotalAttributaires: *ilNombre,
			NumTitreFoncier:          ilNumTitre,
			DateTitreFoncier:         ilDateTitre,
			NumParcelleCadastrale:    ilNumParcelle,
			NumSection:               ilNumSection,
			LotissementID:            *ilLotissementID,
			CreatedAt:                *ilCreatedAt,
			UpdatedAt:                *ilUpdatedAt,
		}
		if lNomLotissement != nil && lLocalite != nil {
			il.Lotissement = &models.LotissementSummary{
				NomLotissement: *lNomLotissement,
				Localite:       *lLocalite,
			}
		}
		a.IlotsLots = il
	}

	return &a, nil
}

func collectAttributaires(rows pgx.Rows) ([]models.Attributaire, error) {
	results := []models.Attributaire{}
	for rows.Next() {
		a, err := scanAttributaire(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attributaire row: %w", err)
		}
		results = append(results, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating attributaire rows: %w", err)
	}
	return results, nil
}

func (r *attributaireRepository) Create(ctx context.Context, q database.Querier, a *models.Attributaire) (*models.Attributaire, error) {
	query := `
		WITH inserted AS (
			INSERT INTO attributaires (
				type_personne,
				genre,
				civilite,
				denomination,
				num_registre_commerce,
				nom,
				prenom,
				date_naissance,
				lieu_naissance,
				type_piece_identite,
				num_piece_identite,
				date_delivrance_piece_identite,
				telephone_mobile,
				email,
				adresse,
				pays_residence,
				nationalite,
				ilots_lots_id
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
			RETURNING *
		)
		SELECT` + attributaireColumns + `
		FROM inserted a
		LEFT JOIN ilots_lots il ON il.id = a.ilots_lots_id
		LEFT JOIN lotissements l ON l.id = il.lotissement_id`

	created, err := scanAttributaire(r.querier(q).QueryRow(ctx, query,
		a.TypePersonne,
		a.Genre,
		a.Civilite,
		a.Denomination,
		a.NumRegistreCommerce,
		a.Nom,
		a.Prenom,
		a.DateNaissance,
		a.LieuNaissance,
		a.TypePieceIdentite,
		a.NumPieceIdentite,
		a.DateDelivrancePieceIdentite,
		a.TelephoneMobile,
		a.Email,
		a.Adresse,
		a.PaysResidence,
		a.Nationalite,
		a.IlotsLotsID,
	))
	if err != nil {
		if uv := asUniqueViolation(err); uv != nil {
			return nil, uv
		}
		return nil, fmt.Errorf("failed to insert attributaire: %w", err)
	}

	return created, nil
}

func (r *attributaireRepository) GetByID(ctx context.Context, id int64) (*models.Attributaire, error) {
	query := `SELECT` + attributaireColumns + attributaireFrom + ` WHERE a.id = $1`

	a, err := scanAttributaire(r.db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query attributaire %d: %w", id, err)
	}

	return a, nil
}

func (r *attributaireRepository) List(ctx context.Context) ([]models.Attributaire, error) {
	query := `SELECT` + attributaireColumns + attributaireFrom + ` ORDER BY a.created_at DESC`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list attributaires: %w", err)
	}
	defer rows.Close()

	return collectAttributaires(rows)
}

func (r *attributaireRepository) ListByIlotLot(ctx context.Context, ilotsLotsID int64) ([]models.Attributaire, error) {
	query := `SELECT` + attributaireColumns + attributaireFrom + `
		WHERE a.ilots_lots_id = $1
		ORDER BY a.nom ASC, a.prenom ASC`

	rows, err := r.db.Pool.Query(ctx, query, ilotsLotsID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attributaires for ilot/lot %d: %w", ilotsLotsID, err)
	}
	defer rows.Close()

	return collectAttributaires(rows)
}

func (r *attributaireRepository) Search(ctx context.Context, search string) ([]models.Attributaire, error) {
	query := `SELECT` + attributaireColumns + attributaireFrom + `
		WHERE a.nom ILIKE '%' || $1 || '%'
		   OR a.prenom ILIKE '%' || $1 || '%'
		   OR a.num_piece_identite ILIKE '%' || $1 || '%'
		   OR a.telephone_mobile ILIKE '%' || $1 || '%'`

	rows, err := r.db.Pool.Query(ctx, query, search)
	if err != nil {
		return nil, fmt.Errorf("failed to search attributaires: %w", err)
	}
	defer rows.Close()

	return collectAttributaires(rows)
}

func (r *attributaireRepository) Update(ctx context.Context, id int64, upd AttributaireUpdate) (*models.Attributaire, error) {
	b := &updateBuilder{}
	if upd.TypePersonne != nil {
		b.set("type_personne", *upd.TypePersonne)
	}
	if upd.Genre != nil {
		b.set("genre", *upd.Genre)
	}
	if upd.Civilite != nil {
		b.set("civilite", *upd.Civilite)
	}
	if upd.Denomination != nil {
		b.set("denomination", *upd.Denomination)
	}
	if upd.NumRegistreCommerce != nil {
		b.set("num_registre_commerce", *upd.NumRegistreCommerce)
	}
	if upd.Nom != nil {
		b.set("nom", *upd.Nom)
	}
	if upd.Prenom != nil {
		b.set("prenom", *upd.Prenom)
	}
	if upd.DateNaissance != nil {
		b.set("date_naissance", *upd.DateNaissance)
	}
	if upd.LieuNaissance != nil {
		b.set("lieu_naissance", *upd.LieuNaissance)
	}
	if upd.TypePieceIdentite != nil {
		b.set("type_piece_identite", *upd.TypePieceIdentite)
	}
	if upd.NumPieceIdentite != nil {
		b.set("num_piece_identite", *upd.NumPieceIdentite)
	}
	if upd.DateDelivrancePieceIdentite != nil {
		b.set("date_delivrance_piece_identite", *upd.DateDelivrancePieceIdentite)
	}
	if upd.TelephoneMobile != nil {
		b.set("telephone_mobile", *upd.TelephoneMobile)
	}
	if upd.Email != nil {
		b.set("email", *upd.Email)
	}
	if upd.Adresse != nil {
		b.set("adresse", *upd.Adresse)
	}
	if upd.PaysResidence != nil {
		b.set("pays_residence", *upd.PaysResidence)
	}
	if upd.Nationalite != nil {
		b.set("nationalite", *upd.Nationalite)
	}
	if b.empty() {
		return r.GetByID(ctx, id)
	}

	setClause, next := b.clause()
	query := fmt.Sprintf(`
		WITH updated AS (
			UPDATE attributaires SET %s WHERE id = $%d
			RETURNING *
		)
		SELECT`+attributaireColumns+`
		FROM updated a
		LEFT JOIN ilots_lots il ON il.id = a.ilots_lots_id
		LEFT JOIN lotissements l ON l.id = il.lotissement_id`,
		setClause, next,
	)
	args := append(b.args, id)

	updated, err := scanAttributaire(r.db.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		if uv := asUniqueViolation(err); uv != nil {
			return nil, uv
		}
		return nil, fmt.Errorf("failed to update attributaire %d: %w", id, err)
	}

	return updated, nil
}

func (r *attributaireRepository) Delete(ctx context.Context, q database.Querier, id int64) (bool, error) {
	tag, err := r.querier(q).Exec(ctx, `DELETE FROM attributaires WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete attributaire %d: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *attributaireRepository) CountByIlotLot(ctx context.Context, q database.Querier, ilotsLotsID int64) (int, error) {
	var count int
	err := r.querier(q).QueryRow(ctx,
		`SELECT COUNT(*) FROM attributaires WHERE ilots_lots_id = $1`, ilotsLotsID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count attributaires for ilot/lot %d: %w", ilotsLotsID, err)
	}
	return count, nil
}
