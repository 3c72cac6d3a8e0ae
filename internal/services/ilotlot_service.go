package services

import (
	"context"
	"fmt"

	"github.com/ohc225/gestion-terrain-immobilier/internal/logger"
	"github.com/ohc225/gestion-terrain-immobilier/internal/models"
	"github.com/ohc225/gestion-terrain-immobilier/internal/repository"
)

// IlotLotService defines the business logic operations for ilots/lots.
// Creation requires the parent lotissement to exist. Deletion is unconditional
// and leaves any attached attributaires in place.
type IlotLotService interface {
	Create(ctx context.Context, il *models.IlotLot) (*models.IlotLot, error)
	GetByID(ctx context.Context, id int64) (*models.IlotLot, error)
	List(ctx context.Context) ([]models.IlotLot, error)
	ListByLotissement(ctx context.Context, lotissementID int64) ([]models.IlotLot, error)
	Search(ctx context.Context, query string) ([]models.IlotLot, error)
	Update(ctx context.Context, id int64, upd repository.IlotLotUpdate) (*models.IlotLot, error)
	Delete(ctx context.Context, id int64) error
}

type ilotLotService struct {
	repo         repository.IlotLotRepository
	lotissements repository.LotissementRepository
	log          *logger.Logger
}

// NewIlotLotService creates a new instance of IlotLotService.
func NewIlotLotService(
	repo repository.IlotLotRepository,
	lotissements repository.LotissementRepository,
	log *logger.Logger,
) IlotLotService {
	return &ilotLotService{
		repo:         repo,
		lotissements: lotissements,
		log:          log,
	}
}

func validateIlotLot(il *models.IlotLot) error {
	v := &fieldErrors{}
	v.requireNonEmpty("ilot", il.Ilot)
	v.requireNonEmpty("lot", il.Lot)
	v.requireNonEmpty("idUFCI", il.IDUFCI)
	v.requireNonEmpty("usage", il.Usage)
	if il.SuperficieEnM2 < 0 {
		v.add("superficieEnM2", "la superficie doit être positive")
	}
	return v.err()
}

func validateIlotLotUpdate(upd repository.IlotLotUpdate) error {
	v := &fieldErrors{}
	if upd.Ilot != nil {
		v.requireNonEmpty("ilot", *upd.Ilot)
	}
	if upd.Lot != nil {
		v.requireNonEmpty("lot", *upd.Lot)
	}
	if upd.IDUFCI != nil {
		v.requireNonEmpty("idUFCI", *upd.IDUFCI)
	}
	if upd.Usage != nil {
		v.requireNonEmpty("usage", *upd.Usage)
	}
	if upd.SuperficieEnM2 != nil && *upd.SuperficieEnM2 < 0 {
		v.add("superficieEnM2", "la superficie doit être positive")
	}
	if upd.NombreTotalAttributaires != nil && *upd.NombreTotalAttributaires < 0 {
		v.add("nombreTotalAttributaires", "le nombre d'attributaires doit être positif")
	}
	return v.err()
}

// Create inserts a new parcel after checking that the parent lotissement
// exists. The occupancy counter starts at zero regardless of input.
func (s *ilotLotService) Create(ctx context.Context, il *models.IlotLot) (*models.IlotLot, error) {
	if err := validateIlotLot(il); err != nil {
		return nil, err
	}

	parent, err := s.lotissements.GetByID(ctx, il.LotissementID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve lotissement: %w", err)
	}
	if parent == nil {
		s.log.Warn("Ilot/lot creation against missing lotissement", map[string]interface{}{
			"lotissement_id": il.LotissementID,
		})
		return nil, ErrLotissementNotFound
	}

	created, err := s.repo.Create(ctx, il)
	if err != nil {
		if mapped := mapUniqueViolation(err); mapped != nil {
			return nil, mapped
		}
		s.log.Error("Failed to create ilot/lot", err, map[string]interface{}{
			"lotissement_id": il.LotissementID,
			"ilot":           il.Ilot,
			"lot":            il.Lot,
		})
		return nil, fmt.Errorf("failed to create ilot/lot: %w", err)
	}

	s.log.Info("Ilot/lot created", map[string]interface{}{
		"ilot_lot_id":    created.ID,
		"lotissement_id": created.LotissementID,
		"ilot":           created.Ilot,
		"lot":            created.Lot,
	})

	return created, nil
}

func (s *ilotLotService) GetByID(ctx context.Context, id int64) (*models.IlotLot, error) {
	il, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query ilot/lot: %w", err)
	}
	if il == nil {
		return nil, ErrIlotLotNotFound
	}
	return il, nil
}

func (s *ilotLotService) List(ctx context.Context) ([]models.IlotLot, error) {
	ilotsLots, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list ilots/lots: %w", err)
	}
	return ilotsLots, nil
}

func (s *ilotLotService) ListByLotissement(ctx context.Context, lotissementID int64) ([]models.IlotLot, error) {
	ilotsLots, err := s.repo.ListByLotissement(ctx, lotissementID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ilots/lots: %w", err)
	}
	return ilotsLots, nil
}

func (s *ilotLotService) Search(ctx context.Context, query string) ([]models.IlotLot, error) {
	ilotsLots, err := s.repo.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search ilots/lots: %w", err)
	}

	s.log.Debug("Ilot/lot search completed", map[string]interface{}{
		"query": query,
		"count": len(ilotsLots),
	})

	return ilotsLots, nil
}

// Update applies a partial edit. Raising NombreTotalAttributaires here is how
// a parcel's admission ceiling gets raised.
func (s *ilotLotService) Update(ctx context.Context, id int64, upd repository.IlotLotUpdate) (*models.IlotLot, error) {
	if err := validateIlotLotUpdate(upd); err != nil {
		return nil, err
	}

	if upd.LotissementID != nil {
		parent, err := s.lotissements.GetByID(ctx, *upd.LotissementID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve lotissement: %w", err)
		}
		if parent == nil {
			return nil, ErrLotissementNotFound
		}
	}

	updated, err := s.repo.Update(ctx, id, upd)
	if err != nil {
		if mapped := mapUniqueViolation(err); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("failed to update ilot/lot: %w", err)
	}
	if updated == nil {
		return nil, ErrIlotLotNotFound
	}

	s.log.Info("Ilot/lot updated", map[string]interface{}{
		"ilot_lot_id": updated.ID,
	})

	return updated, nil
}

// Delete removes the parcel without checking for attached attributaires:
// children are orphaned, never cascaded.
func (s *ilotLotService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete ilot/lot: %w", err)
	}
	if !deleted {
		return ErrIlotLotNotFound
	}

	s.log.Info("Ilot/lot deleted", map[string]interface{}{
		"ilot_lot_id": id,
	})

	return nil
}
