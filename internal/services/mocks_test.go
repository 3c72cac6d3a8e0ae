package services

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"

	"github.com/ohc225/gestion-terrain-immobilier/internal/database"
	"github.com/ohc225/gestion-terrain-immobilier/internal/models"
	"github.com/ohc225/gestion-terrain-immobilier/internal/repository"
)

// fakeTxRunner runs the transaction body directly, without a database.
// Repositories receive a nil Querier, which the mocks ignore.
type fakeTxRunner struct{}

func (fakeTxRunner) WithTx(_ context.Context, fn func(tx pgx.Tx) error) error {
	return fn(nil)
}

// MockLotissementRepository is a mock implementation of LotissementRepository for testing
type MockLotissementRepository struct {
	mock.Mock
}

func (m *MockLotissementRepository) Create(ctx context.Context, l *models.Lotissement) (*models.Lotissement, error) {
	args := m.Called(ctx, l)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Lotissement), args.Error(1)
}

func (m *MockLotissementRepository) GetByID(ctx context.Context, id int64) (*models.Lotissement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Lotissement), args.Error(1)
}

func (m *MockLotissementRepository) List(ctx context.Context) ([]models.Lotissement, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Lotissement), args.Error(1)
}

func (m *MockLotissementRepository) Search(ctx context.Context, query string) ([]models.Lotissement, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Lotissement), args.Error(1)
}

func (m *MockLotissementRepository) Update(ctx context.Context, id int64, upd repository.LotissementUpdate) (*models.Lotissement, error) {
	args := m.Called(ctx, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Lotissement), args.Error(1)
}

func (m *MockLotissementRepository) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// MockIlotLotRepository is a mock implementation of IlotLotRepository for testing
type MockIlotLotRepository struct {
	mock.Mock
}

func (m *MockIlotLotRepository) Create(ctx context.Context, il *models.IlotLot) (*models.IlotLot, error) {
	args := m.Called(ctx, il)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.IlotLot), args.Error(1)
}

func (m *MockIlotLotRepository) GetByID(ctx context.Context, id int64) (*models.IlotLot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.IlotLot), args.Error(1)
}

func (m *MockIlotLotRepository) List(ctx context.Context) ([]models.IlotLot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.IlotLot), args.Error(1)
}

func (m *MockIlotLotRepository) ListByLotissement(ctx context.Context, lotissementID int64) ([]models.IlotLot, error) {
	args := m.Called(ctx, lotissementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.IlotLot), args.Error(1)
}

func (m *MockIlotLotRepository) Search(ctx context.Context, query string) ([]models.IlotLot, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.IlotLot), args.Error(1)
}

func (m *MockIlotLotRepository) Update(ctx context.Context, id int64, upd repository.IlotLotUpdate) (*models.IlotLot, error) {
	args := m.Called(ctx, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.IlotLot), args.Error(1)
}

func (m *MockIlotLotRepository) Delete(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockIlotLotRepository) SetNombreTotalAttributaires(ctx context.Context, q database.Querier, id int64, n int) error {
	args := m.Called(ctx, q, id, n)
	return args.Error(0)
}

// MockAttributaireRepository is a mock implementation of AttributaireRepository for testing
type MockAttributaireRepository struct {
	mock.Mock
}

func (m *MockAttributaireRepository) Create(ctx context.Context, q database.Querier, a *models.Attributaire) (*models.Attributaire, error) {
	args := m.Called(ctx, q, a)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Attributaire), args.Error(1)
}

func (m *MockAttributaireRepository) GetByID(ctx context.Context, id int64) (*models.Attributaire, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Attributaire), args.Error(1)
}

func (m *MockAttributaireRepository) List(ctx context.Context) ([]models.Attributaire, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Attributaire), args.Error(1)
}

func (m *MockAttributaireRepository) ListByIlotLot(ctx context.Context, ilotsLotsID int64) ([]models.Attributaire, error) {
	args := m.Called(ctx, ilotsLotsID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Attributaire), args.Error(1)
}

func (m *MockAttributaireRepository) Search(ctx context.Context, query string) ([]models.Attributaire, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Attributaire), args.Error(1)
}

func (m *MockAttributaireRepository) Update(ctx context.Context, id int64, upd repository.AttributaireUpdate) (*models.Attributaire, error) {
	args := m.Called(ctx, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Attributaire), args.Error(1)
}

func (m *MockAttributaireRepository) Delete(ctx context.Context, q database.Querier, id int64) (bool, error) {
	args := m.Called(ctx, q, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockAttributaireRepository) CountByIlotLot(ctx context.Context, q database.Querier, ilotsLotsID int64) (int, error) {
	args := m.Called(ctx, q, ilotsLotsID)
	return args.Int(0), args.Error(1)
}
