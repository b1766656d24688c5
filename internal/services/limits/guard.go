package limits

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	errs "github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/errors"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/models"
)

// LimitStore is the slice of the ledger repository the guard needs. The
// transfer flow passes its transaction-bound repository here.
type LimitStore interface {
	GetTransferLimitForUpdate(userID uint) (*models.TransferLimit, error)
	CreateTransferLimit(l *models.TransferLimit) error
	UpdateTransferLimit(l *models.TransferLimit) error
}

// Guard enforces per-user daily and monthly transfer caps. All checks run
// inside the caller's database transaction so the usage counters move with
// the transfer they account for.
type Guard struct {
	now func() time.Time
}

func NewGuard() *Guard {
	return &Guard{now: time.Now}
}

// CheckAndReserve rolls the usage window forward, verifies that amount fits
// under both caps and records it against the counters. The ledger argument
// must be bound to the transfer's open transaction. A user with no limit row
// gets one seeded from the limits on their profile.
func (g *Guard) CheckAndReserve(ledger LimitStore, user *models.User, amount decimal.Decimal) error {
	limit, err := ledger.GetTransferLimitForUpdate(user.ID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		limit = &models.TransferLimit{
			UserID:        user.ID,
			DailyLimit:    user.DailyTransferLimit,
			MonthlyLimit:  user.MonthlyTransferLimit,
			DailyUsed:     decimal.Zero,
			MonthlyUsed:   decimal.Zero,
			LastResetDate: g.now(),
		}
		if err := ledger.CreateTransferLimit(limit); err != nil {
			return err
		}
	}

	limit.ApplyRollover(g.now())

	if daily, monthly := limit.WouldExceed(amount); daily || monthly {
		return errs.ErrLimitExceeded
	}

	limit.Reserve(amount)
	return ledger.UpdateTransferLimit(limit)
}
