package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Savings account statuses
const (
	SavingsStatusActive = "ACTIVE"
	SavingsStatusLocked = "LOCKED"
	SavingsStatusClosed = "CLOSED"
)

// Savings transaction types
const (
	SavingsTxDeposit    = "DEPOSIT"
	SavingsTxWithdrawal = "WITHDRAWAL"
	SavingsTxInterest   = "INTEREST"
	SavingsTxPenalty    = "PENALTY"
)

// SavingsProduct is the configuration a savings account is opened against.
// InterestRate is annual, in percent. LockPeriodDays of zero means flexible.
type SavingsProduct struct {
	ID                     uint             `gorm:"primarykey" json:"id"`
	Name                   string           `gorm:"size:100;not null" json:"name"`
	Description            string           `json:"description"`
	InterestRate           decimal.Decimal  `gorm:"type:numeric(5,2);not null" json:"interest_rate"`
	LockPeriodDays         int              `gorm:"not null;default:0" json:"lock_period_days"`
	EarlyWithdrawalPenalty decimal.Decimal  `gorm:"type:numeric(5,2);not null;default:0" json:"early_withdrawal_penalty"`
	MinimumDeposit         decimal.Decimal  `gorm:"type:numeric(12,2);not null" json:"minimum_deposit"`
	MaximumDeposit         *decimal.Decimal `gorm:"type:numeric(12,2)" json:"maximum_deposit,omitempty"`
	IsActive               bool             `gorm:"default:true" json:"is_active"`
	CreatedAt              time.Time        `json:"created_at"`
	UpdatedAt              time.Time        `json:"updated_at"`
}

// SavingsAccount holds funds moved out of a wallet into a product.
// MaturityDate is set only when the product has a lock period. The penalty
// rule keys off MaturityDate, not the stored status: a LOCKED account whose
// maturity has passed withdraws penalty-free.
type SavingsAccount struct {
	ID                  uint            `gorm:"primarykey" json:"id"`
	UserID              uint            `gorm:"not null;index" json:"user_id"`
	WalletID            uint            `gorm:"not null;index" json:"wallet_id"`
	ProductID           uint            `gorm:"not null;index" json:"product_id"`
	Product             *SavingsProduct `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Balance             decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"balance"`
	TotalInterestEarned decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"total_interest_earned"`
	Status              string          `gorm:"size:20;not null;default:'ACTIVE';index" json:"status"`
	MaturityDate        *time.Time      `json:"maturity_date,omitempty"`
	LastInterestDate    *time.Time      `json:"last_interest_date,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// IsLockedAt reports whether early-withdrawal rules apply at the given time.
func (a *SavingsAccount) IsLockedAt(now time.Time) bool {
	return a.Status == SavingsStatusLocked && a.MaturityDate != nil && now.Before(*a.MaturityDate)
}

// SavingsTransaction is one immutable entry scoped to a savings account's
// own ledger, with the same before/after snapshot discipline as Transaction.
type SavingsTransaction struct {
	ID               uint            `gorm:"primarykey" json:"id"`
	SavingsAccountID uint            `gorm:"not null;index" json:"savings_account_id"`
	Reference        string          `gorm:"size:100;not null;uniqueIndex" json:"reference"`
	Type             string          `gorm:"size:20;not null" json:"type"`
	Amount           decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	BalanceBefore    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"balance_before"`
	BalanceAfter     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"balance_after"`
	Description      string          `json:"description"`
	CreatedAt        time.Time       `gorm:"index" json:"created_at"`
}
