package limits

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	errs "github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/errors"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/models"
)

type mockLimitStore struct {
	mock.Mock
}

func (m *mockLimitStore) GetTransferLimitForUpdate(userID uint) (*models.TransferLimit, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TransferLimit), args.Error(1)
}

func (m *mockLimitStore) CreateTransferLimit(l *models.TransferLimit) error {
	return m.Called(l).Error(0)
}

func (m *mockLimitStore) UpdateTransferLimit(l *models.TransferLimit) error {
	return m.Called(l).Error(0)
}

func testGuard(now time.Time) *Guard {
	g := NewGuard()
	g.now = func() time.Time { return now }
	return g
}

func TestCheckAndReserveSeedsMissingLimit(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	store := new(mockLimitStore)
	store.On("GetTransferLimitForUpdate", uint(7)).Return(nil, gorm.ErrRecordNotFound)
	store.On("CreateTransferLimit", mock.AnythingOfType("*models.TransferLimit")).Return(nil)
	store.On("UpdateTransferLimit", mock.AnythingOfType("*models.TransferLimit")).Return(nil)

	user := &models.User{
		ID:                   7,
		DailyTransferLimit:   decimal.NewFromInt(1000),
		MonthlyTransferLimit: decimal.NewFromInt(10000),
	}

	err := testGuard(now).CheckAndReserve(store, user, decimal.NewFromInt(250))
	assert.NoError(t, err)

	created := store.Calls[1].Arguments.Get(0).(*models.TransferLimit)
	assert.True(t, created.DailyLimit.Equal(decimal.NewFromInt(1000)))
	assert.True(t, created.DailyUsed.Equal(decimal.NewFromInt(250)))
	assert.True(t, created.MonthlyUsed.Equal(decimal.NewFromInt(250)))
	store.AssertExpectations(t)
}

func TestCheckAndReserveDailyCap(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	store := new(mockLimitStore)
	store.On("GetTransferLimitForUpdate", uint(7)).Return(&models.TransferLimit{
		UserID:        7,
		DailyLimit:    decimal.NewFromInt(1000),
		MonthlyLimit:  decimal.NewFromInt(10000),
		DailyUsed:     decimal.NewFromInt(900),
		MonthlyUsed:   decimal.NewFromInt(900),
		LastResetDate: now,
	}, nil)

	err := testGuard(now).CheckAndReserve(store, &models.User{ID: 7}, decimal.NewFromInt(200))
	assert.ErrorIs(t, err, errs.ErrLimitExceeded)
	store.AssertNotCalled(t, "UpdateTransferLimit", mock.Anything)
}

func TestCheckAndReserveRollsDailyWindow(t *testing.T) {
	now := time.Date(2025, 3, 11, 9, 0, 0, 0, time.UTC)
	limit := &models.TransferLimit{
		UserID:        7,
		DailyLimit:    decimal.NewFromInt(1000),
		MonthlyLimit:  decimal.NewFromInt(10000),
		DailyUsed:     decimal.NewFromInt(950),
		MonthlyUsed:   decimal.NewFromInt(950),
		LastResetDate: now.AddDate(0, 0, -1),
	}
	store := new(mockLimitStore)
	store.On("GetTransferLimitForUpdate", uint(7)).Return(limit, nil)
	store.On("UpdateTransferLimit", limit).Return(nil)

	err := testGuard(now).CheckAndReserve(store, &models.User{ID: 7}, decimal.NewFromInt(200))
	assert.NoError(t, err)
	assert.True(t, limit.DailyUsed.Equal(decimal.NewFromInt(200)))
	assert.True(t, limit.MonthlyUsed.Equal(decimal.NewFromInt(1150)))
}

func TestCheckAndReserveRollsMonthlyWindow(t *testing.T) {
	now := time.Date(2025, 4, 1, 0, 30, 0, 0, time.UTC)
	limit := &models.TransferLimit{
		UserID:        7,
		DailyLimit:    decimal.NewFromInt(1000),
		MonthlyLimit:  decimal.NewFromInt(10000),
		DailyUsed:     decimal.NewFromInt(400),
		MonthlyUsed:   decimal.NewFromInt(9900),
		LastResetDate: time.Date(2025, 3, 31, 23, 0, 0, 0, time.UTC),
	}
	store := new(mockLimitStore)
	store.On("GetTransferLimitForUpdate", uint(7)).Return(limit, nil)
	store.On("UpdateTransferLimit", limit).Return(nil)

	err := testGuard(now).CheckAndReserve(store, &models.User{ID: 7}, decimal.NewFromInt(500))
	assert.NoError(t, err)
	assert.True(t, limit.DailyUsed.Equal(decimal.NewFromInt(500)))
	assert.True(t, limit.MonthlyUsed.Equal(decimal.NewFromInt(500)))
}
