package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"

	"github.com/ohc225/gestion-terrain-immobilier/internal/logger"
	"github.com/ohc225/gestion-terrain-immobilier/internal/middleware"
	"github.com/ohc225/gestion-terrain-immobilier/internal/models"
	"github.com/ohc225/gestion-terrain-immobilier/internal/repository"
)

// setupTestRouter creates a test router with the request-id and logging
// middleware installed, mirroring the production chain.
func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger.New("test")))
	return router
}

// MockLotissementService is a mock implementation of services.LotissementService for testing
type MockLotissementService struct {
	mock.Mock
}

func (m *MockLotissementService) Create(ctx context.Context, l *models.Lotissement) (*models.Lotissement, error) {
	args := m.Called(ctx, l)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Lotissement), args.Error(1)
}

func (m *MockLotissementService) GetByID(ctx context.Context, id int64) (*models.Lotissement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Lotissement), args.Error(1)
}

func (m *MockLotissementService) List(ctx context.Context) ([]models.Lotissement, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Lotissement), args.Error(1)
}

func (m *MockLotissementService) Search(ctx context.Context, query string) ([]models.Lotissement, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Lotissement), args.Error(1)
}

func (m *MockLotissementService) Update(ctx context.Context, id int64, upd repository.LotissementUpdate) (*models.Lotissement, error) {
	args := m.Called(ctx, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Lotissement), args.Error(1)
}

func (m *MockLotissementService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockIlotLotService is a mock implementation of services.IlotLotService for testing
type MockIlotLotService struct {
	mock.Mock
}

func (m *MockIlotLotService) Create(ctx context.Context, il *models.IlotLot) (*models.IlotLot, error) {
	args := m.Called(ctx, il)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.IlotLot), args.Error(1)
}

func (m *MockIlotLotService) GetByID(ctx context.Context, id int64) (*models.IlotLot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.IlotLot), args.Error(1)
}

func (m *MockIlotLotService) List(ctx context.Context) ([]models.IlotLot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.IlotLot), args.Error(1)
}

func (m *MockIlotLotService) ListByLotissement(ctx context.Context, lotissementID int64) ([]models.IlotLot, error) {
	args := m.Called(ctx, lotissementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.IlotLot), args.Error(1)
}

func (m *MockIlotLotService) Search(ctx context.Context, query string) ([]models.IlotLot, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.IlotLot), args.Error(1)
}

func (m *MockIlotLotService) Update(ctx context.Context, id int64, upd repository.IlotLotUpdate) (*models.IlotLot, error) {
	args := m.Called(ctx, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.IlotLot), args.Error(1)
}

func (m *MockIlotLotService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockAttributaireService is a mock implementation of services.AttributaireService for testing
type MockAttributaireService struct {
	mock.Mock
}

func (m *MockAttributaireService) Create(ctx context.Context, a *models.Attributaire) (*models.Attributaire, error) {
	args := m.Called(ctx, a)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Attributaire), args.Error(1)
}

func (m *MockAttributaireService) GetByID(ctx context.Context, id int64) (*models.Attributaire, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Attributaire), args.Error(1)
}

func (m *MockAttributaireService) List(ctx context.Context) ([]models.Attributaire, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Attributaire), args.Error(1)
}

func (m *MockAttributaireService) ListByIlotLot(ctx context.Context, ilotsLotsID int64) ([]models.Attributaire, error) {
	args := m.Called(ctx, ilotsLotsID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Attributaire), args.Error(1)
}

func (m *MockAttributaireService) Search(ctx context.Context, query string) ([]models.Attributaire, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Attributaire), args.Error(1)
}

func (m *MockAttributaireService) Update(ctx context.Context, id int64, upd repository.AttributaireUpdate) (*models.Attributaire, error) {
	args := m.Called(ctx, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Attributaire), args.Error(1)
}

func (m *MockAttributaireService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
