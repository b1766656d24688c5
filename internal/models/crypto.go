package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Crypto transaction types
const (
	CryptoTxBuy  = "BUY"
	CryptoTxSell = "SELL"
)

// CryptoCurrency is a tradable asset. Prices are written by an external feed;
// nothing in this core computes them.
type CryptoCurrency struct {
	ID               uint             `gorm:"primarykey" json:"id"`
	Symbol           string           `gorm:"size:10;not null;uniqueIndex" json:"symbol"`
	Name             string           `gorm:"size:100;not null" json:"name"`
	IconURL          string           `json:"icon_url,omitempty"`
	CurrentPriceUSD  decimal.Decimal  `gorm:"type:numeric(20,8);not null" json:"current_price_usd"`
	MarketCap        *decimal.Decimal `gorm:"type:numeric(20,2)" json:"market_cap,omitempty"`
	Volume24h        *decimal.Decimal `gorm:"type:numeric(20,2)" json:"volume_24h,omitempty"`
	PercentChange24h decimal.Decimal  `gorm:"type:numeric(10,2);not null;default:0" json:"percent_change_24h"`
	IsActive         bool             `gorm:"default:true" json:"is_active"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// CryptoWallet is a per-(user,currency) sub-balance in crypto units with
// weighted-average cost-basis tracking.
type CryptoWallet struct {
	ID               uint            `gorm:"primarykey" json:"id"`
	UserID           uint            `gorm:"not null;uniqueIndex:idx_crypto_wallets_user_currency" json:"user_id"`
	CurrencyID       uint            `gorm:"not null;uniqueIndex:idx_crypto_wallets_user_currency" json:"currency_id"`
	Currency         *CryptoCurrency `gorm:"foreignKey:CurrencyID" json:"currency,omitempty"`
	Balance          decimal.Decimal `gorm:"type:numeric(20,8);not null;default:0" json:"balance"`
	TotalInvestedUSD decimal.Decimal `gorm:"type:numeric(20,2);not null;default:0" json:"total_invested_usd"`
	AverageBuyPrice  decimal.Decimal `gorm:"type:numeric(20,8);not null;default:0" json:"average_buy_price"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// ApplyBuy folds a purchase into the holding: the average buy price becomes
// the quantity-weighted mean of the old position and the new lot, and the
// invested cost grows by the full USD spend.
func (w *CryptoWallet) ApplyBuy(qty, pricePerUnit, usdSpent decimal.Decimal) {
	newQty := w.Balance.Add(qty)
	if newQty.IsPositive() {
		weighted := w.AverageBuyPrice.Mul(w.Balance).Add(pricePerUnit.Mul(qty))
		w.AverageBuyPrice = weighted.Div(newQty).Round(8)
	}
	w.Balance = newQty
	w.TotalInvestedUSD = w.TotalInvestedUSD.Add(usdSpent)
}

// ApplySell removes qty units and shrinks the invested cost proportionally
// (average cost basis realization). AverageBuyPrice is left unchanged.
func (w *CryptoWallet) ApplySell(qty decimal.Decimal) {
	if w.Balance.IsPositive() {
		realized := qty.Div(w.Balance).Mul(w.TotalInvestedUSD)
		w.TotalInvestedUSD = w.TotalInvestedUSD.Sub(realized).Round(2)
	}
	w.Balance = w.Balance.Sub(qty)
	if w.Balance.IsZero() {
		w.TotalInvestedUSD = decimal.Zero
	}
}

// CurrentValueUSD prices the holding at the given unit price.
func (w *CryptoWallet) CurrentValueUSD(price decimal.Decimal) decimal.Decimal {
	return w.Balance.Mul(price).Round(2)
}

// CryptoTransaction is one immutable BUY/SELL record, snapshotting both the
// crypto balance and the linked fiat wallet balance after the trade.
type CryptoTransaction struct {
	ID                 uint            `gorm:"primarykey" json:"id"`
	WalletID           uint            `gorm:"not null;index" json:"wallet_id"`
	FiatWalletID       uint            `gorm:"not null;index" json:"fiat_wallet_id"`
	Reference          string          `gorm:"size:100;not null;uniqueIndex" json:"reference"`
	Type               string          `gorm:"size:20;not null" json:"type"`
	CryptoAmount       decimal.Decimal `gorm:"type:numeric(20,8);not null" json:"crypto_amount"`
	PricePerUnit       decimal.Decimal `gorm:"type:numeric(20,8);not null" json:"price_per_unit"`
	USDAmount          decimal.Decimal `gorm:"type:numeric(20,2);not null" json:"usd_amount"`
	Fee                decimal.Decimal `gorm:"type:numeric(20,2);not null;default:0" json:"fee"`
	TotalUSD           decimal.Decimal `gorm:"type:numeric(20,2);not null" json:"total_usd"`
	Status             string          `gorm:"size:20;not null;default:'COMPLETED'" json:"status"`
	CryptoBalanceAfter decimal.Decimal `gorm:"type:numeric(20,8);not null" json:"crypto_balance_after"`
	FiatBalanceAfter   decimal.Decimal `gorm:"type:numeric(15,2);not null" json:"fiat_balance_after"`
	CreatedAt          time.Time       `gorm:"index" json:"created_at"`
}
