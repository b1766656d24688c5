package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wallet is a currency-scoped fiat balance owned by exactly one user.
// Balance is the ledger-confirmed amount; AvailableBalance is what may be
// spent right now. Invariant: 0 <= AvailableBalance <= Balance.
type Wallet struct {
	ID               uint            `gorm:"primarykey" json:"id"`
	UserID           uint            `gorm:"not null;uniqueIndex:idx_wallets_user_currency" json:"user_id"`
	Currency         string          `gorm:"size:3;not null;default:'USD';uniqueIndex:idx_wallets_user_currency" json:"currency"`
	Balance          decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0" json:"balance"`
	AvailableBalance decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0" json:"available_balance"`
	IsActive         bool            `gorm:"default:true" json:"is_active"`
	IsPrimary        bool            `gorm:"default:false" json:"is_primary"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// CanSpend reports whether the available balance covers the given total.
func (w *Wallet) CanSpend(total decimal.Decimal) bool {
	return w.AvailableBalance.GreaterThanOrEqual(total)
}
