package services

import (
	"context"
	"fmt"

	"github.com/ohc225/gestion-terrain-immobilier/internal/logger"
	"github.com/ohc225/gestion-terrain-immobilier/internal/models"
	"github.com/ohc225/gestion-terrain-immobilier/internal/repository"
)

// LotissementService defines the business logic operations for lotissements.
// Creation has no cross-entity preconditions; deletion is unconditional and
// leaves any child ilots/lots in place.
type LotissementService interface {
	Create(ctx context.Context, l *models.Lotissement) (*models.Lotissement, error)
	GetByID(ctx context.Context, id int64) (*models.Lotissement, error)
	List(ctx context.Context) ([]models.Lotissement, error)
	Search(ctx context.Context, query string) ([]models.Lotissement, error)
	Update(ctx context.Context, id int64, upd repository.LotissementUpdate) (*models.Lotissement, error)
	Delete(ctx context.Context, id int64) error
}

type lotissementService struct {
	repo repository.LotissementRepository
	log  *logger.Logger
}

// NewLotissementService creates a new instance of LotissementService.
func NewLotissementService(repo repository.LotissementRepository, log *logger.Logger) LotissementService {
	return &lotissementService{repo: repo, log: log}
}

func validateLotissement(l *models.Lotissement) error {
	v := &fieldErrors{}
	v.requireNonEmpty("nomLotissement", l.NomLotissement)
	v.requireNonEmpty("localite", l.Localite)
	v.requireNonEmpty("typeLotissement", l.TypeLotissement)
	v.requireNonEmpty("circonscriptionFonciere", l.CirconscriptionFonciere)
	v.requireNonEmpty("village", l.Village)
	v.requireNonEmpty("nomChefVillage", l.NomChefVillage)
	v.requireNonEmpty("nomPresidentComiteGestionFonciere", l.NomPresidentComiteGestionFonciere)
	v.requireNonEmpty("numArreteNominationChefVillage", l.NumArreteNominationChefVillage)
	v.requireNonEmpty("numArreteApprobationLotissement", l.NumArreteApprobationLotissement)
	if l.SuperficieEnHectare < 0 {
		v.add("superficieEnHectare", "la superficie doit être positive")
	}
	if l.NombreIlotsTotal < 0 {
		v.add("nombreIlotsTotal", "le nombre d'ilots doit être positif")
	}
	if l.NombreLotsTotal < 0 {
		v.add("nombreLotsTotal", "le nombre de lots doit être positif")
	}
	if l.DateApprobationLotissement.IsZero() {
		v.add("dateApprobationLotissement", "ce champ est requis")
	}
	return v.err()
}

func validateLotissementUpdate(upd repository.LotissementUpdate) error {
	v := &fieldErrors{}
	if upd.NomLotissement != nil {
		v.requireNonEmpty("nomLotissement", *upd.NomLotissement)
	}
	if upd.Localite != nil {
		v.requireNonEmpty("localite", *upd.Localite)
	}
	if upd.TypeLotissement != nil {
		v.requireNonEmpty("typeLotissement", *upd.TypeLotissement)
	}
	if upd.CirconscriptionFonciere != nil {
		v.requireNonEmpty("circonscriptionFonciere", *upd.CirconscriptionFonciere)
	}
	if upd.Village != nil {
		v.requireNonEmpty("village", *upd.Village)
	}
	if upd.NomChefVillage != nil {
		v.requireNonEmpty("nomChefVillage", *upd.NomChefVillage)
	}
	if upd.NomPresidentComiteGestionFonciere != nil {
		v.requireNonEmpty("nomPresidentComiteGestionFonciere", *upd.NomPresidentComiteGestionFonciere)
	}
	if upd.NumArreteNominationChefVillage != nil {
		v.requireNonEmpty("numArreteNominationChefVillage", *upd.NumArreteNominationChefVillage)
	}
	if upd.NumArreteApprobationLotissement != nil {
		v.requireNonEmpty("numArreteApprobationLotissement", *upd.NumArreteApprobationLotissement)
	}
	if upd.SuperficieEnHectare != nil && *upd.SuperficieEnHectare < 0 {
		v.add("superficieEnHectare", "la superficie doit être positive")
	}
	if upd.NombreIlotsTotal != nil && *upd.NombreIlotsTotal < 0 {
		v.add("nombreIlotsTotal", "le nombre d'ilots doit être positif")
	}
	if upd.NombreLotsTotal != nil && *upd.NombreLotsTotal < 0 {
		v.add("nombreLotsTotal", "le nombre de lots doit être positif")
	}
	return v.err()
}

func (s *lotissementService) Create(ctx context.Context, l *models.Lotissement) (*models.Lotissement, error) {
	if err := validateLotissement(l); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, l)
	if err != nil {
		s.log.Error("Failed to create lotissement", err, map[string]interface{}{
			"nom": l.NomLotissement,
		})
		return nil, fmt.Errorf("failed to create lotissement: %w", err)
	}

	s.log.Info("Lotissement created", map[string]interface{}{
		"lotissement_id": created.ID,
		"nom":            created.NomLotissement,
	})

	return created, nil
}

func (s *lotissementService) GetByID(ctx context.Context, id int64) (*models.Lotissement, error) {
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query lotissement: %w", err)
	}
	if l == nil {
		return nil, ErrLotissementNotFound
	}
	return l, nil
}

func (s *lotissementService) List(ctx context.Context) ([]models.Lotissement, error) {
	lotissements, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list lotissements: %w", err)
	}
	return lotissements, nil
}

func (s *lotissementService) Search(ctx context.Context, query string) ([]models.Lotissement, error) {
	lotissements, err := s.repo.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search lotissements: %w", err)
	}

	s.log.Debug("Lotissement search completed", map[string]interface{}{
		"query": query,
		"count": len(lotissements),
	})

	return lotissements, nil
}

func (s *lotissementService) Update(ctx context.Context, id int64, upd repository.LotissementUpdate) (*models.Lotissement, error) {
	if err := validateLotissementUpdate(upd); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, upd)
	if err != nil {
		return nil, fmt.Errorf("failed to update lotissement: %w", err)
	}
	if updated == nil {
		return nil, ErrLotissementNotFound
	}

	s.log.Info("Lotissement updated", map[string]interface{}{
		"lotissement_id": updated.ID,
	})

	return updated, nil
}

// Delete removes the lotissement without checking for child ilots/lots:
// children are orphaned, never cascaded.
func (s *lotissementService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete lotissement: %w", err)
	}
	if !deleted {
		return ErrLotissementNotFound
	}

	s.log.Info("Lotissement deleted", map[string]interface{}{
		"lotissement_id": id,
	})

	return nil
}
