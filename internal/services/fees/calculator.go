package fees

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/models"
)

// ConfigStore loads the active fee configuration for a transaction type.
type ConfigStore interface {
	GetActiveFeeConfiguration(transactionType string) (*models.FeeConfiguration, error)
}

// Calculator resolves the fee charged for a given transaction type and amount.
type Calculator struct {
	store ConfigStore
}

func NewCalculator(store ConfigStore) *Calculator {
	return &Calculator{store: store}
}

// Calculate returns the fee for the amount. A transaction type with no
// active configuration is free of charge.
func (c *Calculator) Calculate(transactionType string, amount decimal.Decimal) (decimal.Decimal, error) {
	config, err := c.store.GetActiveFeeConfiguration(transactionType)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}
	return config.CalculateFee(amount), nil
}
