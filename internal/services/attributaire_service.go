package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"regexp"

	"github.com/jackc/pgx/v5"
	"github.com/ohc225/gestion-terrain-immobilier/internal/logger"
	"github.com/ohc225/gestion-terrain-immobilier/internal/models"
	"github.com/ohc225/gestion-terrain-immobilier/internal/repository"
)

// telephonePattern is the required mobile phone format: +225 XX XX XX XXXX.
var telephonePattern = regexp.MustCompile(`^\+225 \d{2} \d{2} \d{2} \d{4}$`)

// TxRunner runs a function inside a database transaction. Implemented by
// database.Database; faked in tests.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error
}

// AttributaireService defines the business logic operations for attributaires.
//
// Create is the admission sequence: the parent parcel must exist, and its
// NombreTotalAttributaires value is read as the admission ceiling. The live
// attributaire count is compared against that ceiling, and on success the
// counter is overwritten with the recomputed occupancy. Delete recomputes the
// counter the same way. Both sequences are serialized per parcel and run
// inside a single transaction.
type AttributaireService interface {
	Create(ctx context.Context, a *models.Attributaire) (*models.Attributaire, error)
	GetByID(ctx context.Context, id int64) (*models.Attributaire, error)
	List(ctx context.Context) ([]models.Attributaire, error)
	ListByIlotLot(ctx context.Context, ilotsLotsID int64) ([]models.Attributaire, error)
	Search(ctx context.Context, query string) ([]models.Attributaire, error)
	Update(ctx context.Context, id int64, upd repository.AttributaireUpdate) (*models.Attributaire, error)
	Delete(ctx context.Context, id int64) error
}

type attributaireService struct {
	repo      repository.AttributaireRepository
	ilotsLots repository.IlotLotRepository
	tx        TxRunner
	locks     *keyedMutex
	log       *logger.Logger
}

// NewAttributaireService creates a new instance of AttributaireService.
func NewAttributaireService(
	repo repository.AttributaireRepository,
	ilotsLots repository.IlotLotRepository,
	tx TxRunner,
	log *logger.Logger,
) AttributaireService {
	return &attributaireService{
		repo:      repo,
		ilotsLots: ilotsLots,
		tx:        tx,
		locks:     newKeyedMutex(),
		log:       log,
	}
}

func validEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}

func validateAttributaire(a *models.Attributaire) error {
	v := &fieldErrors{}
	if !a.TypePersonne.Valid() {
		v.add("typePersonne", "valeur invalide (attendu: Physique, Morale)")
	}
	v.requireNonEmpty("nom", a.Nom)
	v.requireNonEmpty("adresse", a.Adresse)
	v.requireNonEmpty("nationalite", a.Nationalite)
	v.requireNonEmpty("numPieceIdentite", a.NumPieceIdentite)
	v.requireOneOf("typePieceIdentite", a.TypePieceIdentite, models.TypesPieceIdentite)
	if a.DateDelivrancePieceIdentite.IsZero() {
		v.add("dateDelivrancePieceIdentite", "ce champ est requis")
	}
	if !telephonePattern.MatchString(a.TelephoneMobile) {
		v.add("telephoneMobile", "format de téléphone invalide (+225 XX XX XX XXXX)")
	}
	if a.Email != nil && !validEmail(*a.Email) {
		v.add("email", "format d'email invalide")
	}
	if a.Genre != nil {
		v.requireOneOf("genre", *a.Genre, models.Genres)
	}
	if a.Civilite != nil {
		v.requireOneOf("civilite", *a.Civilite, models.Civilites)
	}
	return v.err()
}

func validateAttributaireUpdate(upd repository.AttributaireUpdate) error {
	v := &fieldErrors{}
	if upd.TypePersonne != nil && !upd.TypePersonne.Valid() {
		v.add("typePersonne", "valeur invalide (attendu: Physique, Morale)")
	}
	if upd.Nom != nil {
		v.requireNonEmpty("nom", *upd.Nom)
	}
	if upd.Adresse != nil {
		v.requireNonEmpty("adresse", *upd.Adresse)
	}
	if upd.Nationalite != nil {
		v.requireNonEmpty("nationalite", *upd.Nationalite)
	}
	if upd.NumPieceIdentite != nil {
		v.requireNonEmpty("numPieceIdentite", *upd.NumPieceIdentite)
	}
	if upd.TypePieceIdentite != nil {
		v.requireOneOf("typePieceIdentite", *upd.TypePieceIdentite, models.TypesPieceIdentite)
	}
	if upd.TelephoneMobile != nil && !telephonePattern.MatchString(*upd.TelephoneMobile) {
		v.add("telephoneMobile", "format de téléphone invalide (+225 XX XX XX XXXX)")
	}
	if upd.Email != nil && !validEmail(*upd.Email) {
		v.add("email", "format d'email invalide")
	}
	if upd.Genre != nil {
		v.requireOneOf("genre", *upd.Genre, models.Genres)
	}
	if upd.Civilite != nil {
		v.requireOneOf("civilite", *upd.Civilite, models.Civilites)
	}
	return v.err()
}

// Create runs the admission sequence for a new attributaire. The per-parcel
// lock plus the transaction close the read-count-then-write-counter race:
// two concurrent admissions against the same parcel cannot both pass the
// ceiling check.
func (s *attributaireService) Create(ctx context.Context, a *models.Attributaire) (*models.Attributaire, error) {
	if err := validateAttributaire(a); err != nil {
		return nil, err
	}

	if a.PaysResidence == "" {
		a.PaysResidence = models.PaysResidenceParDefaut
	}

	unlock := s.locks.Lock(a.IlotsLotsID)
	defer unlock()

	ilotLot, err := s.ilotsLots.GetByID(ctx, a.IlotsLotsID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve ilot/lot: %w", err)
	}
	if ilotLot == nil {
		s.log.Warn("Attributaire creation against missing ilot/lot", map[string]interface{}{
			"ilots_lots_id": a.IlotsLotsID,
		})
		return nil, ErrIlotLotNotFound
	}

	// The stored counter is read as the admission ceiling here and rewritten
	// as the occupancy below. Raising the ceiling back up is a direct ilot/lot
	// update.
	capacity := ilotLot.NombreTotalAttributaires

	var created *models.Attributaire
	err = s.tx.WithTx(ctx, func(tx pgx.Tx) error {
		currentCount, err := s.repo.CountByIlotLot(ctx, tx, a.IlotsLotsID)
		if err != nil {
			return err
		}
		if currentCount >= capacity {
			s.log.Warn("Attributaire admission refused: capacity reached", map[string]interface{}{
				"ilots_lots_id": a.IlotsLotsID,
				"capacity":      capacity,
				"current":       currentCount,
			})
			return ErrCapacityExceeded
		}

		created, err = s.repo.Create(ctx, tx, a)
		if err != nil {
			return err
		}

		return s.ilotsLots.SetNombreTotalAttributaires(ctx, tx, a.IlotsLotsID, currentCount+1)
	})
	if err != nil {
		if errors.Is(err, ErrCapacityExceeded) {
			return nil, ErrCapacityExceeded
		}
		if mapped := mapUniqueViolation(err); mapped != nil {
			return nil, mapped
		}
		s.log.Error("Failed to create attributaire", err, map[string]interface{}{
			"ilots_lots_id": a.IlotsLotsID,
		})
		return nil, fmt.Errorf("failed to create attributaire: %w", err)
	}

	s.log.Info("Attributaire created", map[string]interface{}{
		"attributaire_id": created.ID,
		"ilots_lots_id":   created.IlotsLotsID,
	})

	return created, nil
}

func (s *attributaireService) GetByID(ctx context.Context, id int64) (*models.Attributaire, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query attributaire: %w", err)
	}
	if a == nil {
		return nil, ErrAttributaireNotFound
	}
	return a, nil
}

func (s *attributaireService) List(ctx context.Context) ([]models.Attributaire, error) {
	attributaires, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list attributaires: %w", err)
	}
	return attributaires, nil
}

func (s *attributaireService) ListByIlotLot(ctx context.Context, ilotsLotsID int64) ([]models.Attributaire, error) {
	attributaires, err := s.repo.ListByIlotLot(ctx, ilotsLotsID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attributaires: %w", err)
	}
	return attributaires, nil
}

func (s *attributaireService) Search(ctx context.Context, query string) ([]models.Attributaire, error) {
	attributaires, err := s.repo.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search attributaires: %w", err)
	}

	s.log.Debug("Attributaire search completed", map[string]interface{}{
		"query": query,
		"count": len(attributaires),
	})

	return attributaires, nil
}

// Update applies a partial edit. The parent parcel's counter is never touched
// here.
func (s *attributaireService) Update(ctx context.Context, id int64, upd repository.AttributaireUpdate) (*models.Attributaire, error) {
	if err := validateAttributaireUpdate(upd); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, upd)
	if err != nil {
		if mapped := mapUniqueViolation(err); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("failed to update attributaire: %w", err)
	}
	if updated == nil {
		return nil, ErrAttributaireNotFound
	}

	s.log.Info("Attributaire updated", map[string]interface{}{
		"attributaire_id": updated.ID,
	})

	return updated, nil
}

// Delete removes the attributaire and overwrites the parent parcel's counter
// with the recomputed occupancy. A parent deleted in the meantime is ignored.
func (s *attributaireService) Delete(ctx context.Context, id int64) error {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to query attributaire: %w", err)
	}
	if a == nil {
		return ErrAttributaireNotFound
	}

	unlock := s.locks.Lock(a.IlotsLotsID)
	defer unlock()

	err = s.tx.WithTx(ctx, func(tx pgx.Tx) error {
		deleted, err := s.repo.Delete(ctx, tx, id)
		if err != nil {
			return err
		}
		if !deleted {
			return ErrAttributaireNotFound
		}

		newCount, err := s.repo.CountByIlotLot(ctx, tx, a.IlotsLotsID)
		if err != nil {
			return err
		}

		return s.ilotsLots.SetNombreTotalAttributaires(ctx, tx, a.IlotsLotsID, newCount)
	})
	if err != nil {
		if errors.Is(err, ErrAttributaireNotFound) {
			return ErrAttributaireNotFound
		}
		s.log.Error("Failed to delete attributaire", err, map[string]interface{}{
			"attributaire_id": id,
		})
		return fmt.Errorf("failed to delete attributaire: %w", err)
	}

	s.log.Info("Attributaire deleted", map[string]interface{}{
		"attributaire_id": id,
		"ilots_lots_id":   a.IlotsLotsID,
	})

	return nil
}
