package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferLimit tracks rolling transfer usage for one user. DailyUsed and
// MonthlyUsed only grow within their window; ApplyRollover resets them at the
// day and month boundaries.
type TransferLimit struct {
	ID            uint            `gorm:"primarykey" json:"id"`
	UserID        uint            `gorm:"not null;uniqueIndex" json:"user_id"`
	DailyLimit    decimal.Decimal `gorm:"type:numeric(12,2);not null;default:1000" json:"daily_limit"`
	MonthlyLimit  decimal.Decimal `gorm:"type:numeric(12,2);not null;default:10000" json:"monthly_limit"`
	DailyUsed     decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"daily_used"`
	MonthlyUsed   decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"monthly_used"`
	LastResetDate time.Time       `gorm:"not null" json:"last_reset_date"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ApplyRollover resets the daily counter when the stored reset date falls
// before today, and the monthly counter when a month boundary has been
// crossed since the last reset. Returns true if anything changed.
func (l *TransferLimit) ApplyRollover(now time.Time) bool {
	changed := false

	last := l.LastResetDate
	sameDay := last.Year() == now.Year() && last.YearDay() == now.YearDay()
	if last.Before(now) && !sameDay {
		l.DailyUsed = decimal.Zero
		changed = true
	}
	if last.Year() != now.Year() || last.Month() != now.Month() {
		l.MonthlyUsed = decimal.Zero
		changed = true
	}
	if changed {
		l.LastResetDate = now
	}
	return changed
}

// WouldExceed reports which cap an additional amount would breach.
func (l *TransferLimit) WouldExceed(amount decimal.Decimal) (daily, monthly bool) {
	daily = l.DailyUsed.Add(amount).GreaterThan(l.DailyLimit)
	monthly = l.MonthlyUsed.Add(amount).GreaterThan(l.MonthlyLimit)
	return daily, monthly
}

// Reserve adds amount to both running totals. Callers must have checked
// WouldExceed first, inside the same database transaction as the transfer.
func (l *TransferLimit) Reserve(amount decimal.Decimal) {
	l.DailyUsed = l.DailyUsed.Add(amount)
	l.MonthlyUsed = l.MonthlyUsed.Add(amount)
}
