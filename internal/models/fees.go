package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Fee types
const (
	FeeTypeFixed      = "FIXED"
	FeeTypePercentage = "PERCENTAGE"
	FeeTypeHybrid     = "HYBRID"
)

// FeeConfiguration holds the active fee rule for one transaction type.
// At most one active row exists per type; absence of a row means no fee.
type FeeConfiguration struct {
	ID              uint             `gorm:"primarykey" json:"id"`
	TransactionType string           `gorm:"size:30;not null;uniqueIndex" json:"transaction_type"`
	FeeType         string           `gorm:"size:20;not null" json:"fee_type"`
	FixedAmount     decimal.Decimal  `gorm:"type:numeric(10,2);not null;default:0" json:"fixed_amount"`
	Percentage      decimal.Decimal  `gorm:"type:numeric(5,2);not null;default:0" json:"percentage"`
	MinimumFee      decimal.Decimal  `gorm:"type:numeric(10,2);not null;default:0" json:"minimum_fee"`
	MaximumFee      *decimal.Decimal `gorm:"type:numeric(10,2)" json:"maximum_fee,omitempty"`
	IsActive        bool             `gorm:"default:true" json:"is_active"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

var oneHundred = decimal.NewFromInt(100)

// CalculateFee computes the fee for amount under this configuration:
// FIXED uses FixedAmount, PERCENTAGE uses amount*Percentage/100, HYBRID is
// their sum. The raw fee is then clamped to [MinimumFee, MaximumFee].
// An inactive configuration charges nothing.
func (fc *FeeConfiguration) CalculateFee(amount decimal.Decimal) decimal.Decimal {
	if !fc.IsActive {
		return decimal.Zero
	}

	fee := decimal.Zero
	switch fc.FeeType {
	case FeeTypeFixed:
		fee = fc.FixedAmount
	case FeeTypePercentage:
		fee = amount.Mul(fc.Percentage).Div(oneHundred)
	case FeeTypeHybrid:
		fee = fc.FixedAmount.Add(amount.Mul(fc.Percentage).Div(oneHundred))
	}

	if fee.LessThan(fc.MinimumFee) {
		fee = fc.MinimumFee
	}
	if fc.MaximumFee != nil && fee.GreaterThan(*fc.MaximumFee) {
		fee = *fc.MaximumFee
	}
	return fee.Round(2)
}
