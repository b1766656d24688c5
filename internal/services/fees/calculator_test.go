package fees

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/models"
)

type mockConfigStore struct {
	mock.Mock
}

func (m *mockConfigStore) GetActiveFeeConfiguration(txType string) (*models.FeeConfiguration, error) {
	args := m.Called(txType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FeeConfiguration), args.Error(1)
}

func TestCalculateNoConfiguration(t *testing.T) {
	store := new(mockConfigStore)
	store.On("GetActiveFeeConfiguration", models.TransactionTypeDeposit).
		Return(nil, gorm.ErrRecordNotFound)

	calc := NewCalculator(store)
	fee, err := calc.Calculate(models.TransactionTypeDeposit, decimal.NewFromInt(100))

	assert.NoError(t, err)
	assert.True(t, fee.IsZero())
	store.AssertExpectations(t)
}

func TestCalculatePercentageFee(t *testing.T) {
	store := new(mockConfigStore)
	store.On("GetActiveFeeConfiguration", models.TransactionTypeTransfer).
		Return(&models.FeeConfiguration{
			TransactionType: models.TransactionTypeTransfer,
			FeeType:         models.FeeTypePercentage,
			Percentage:      decimal.NewFromFloat(1.5),
			IsActive:        true,
		}, nil)

	calc := NewCalculator(store)
	fee, err := calc.Calculate(models.TransactionTypeTransfer, decimal.NewFromInt(200))

	assert.NoError(t, err)
	assert.True(t, fee.Equal(decimal.NewFromInt(3)), "got %s", fee)
}
