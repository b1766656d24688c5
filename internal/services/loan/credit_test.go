package loan

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/models"
)

func TestComputeCreditScore(t *testing.T) {
	tests := []struct {
		name      string
		balance   decimal.Decimal
		paid      int
		defaulted int
		kyc       string
		want      int
	}{
		{"baseline", decimal.Zero, 0, 0, models.KYCLevelNone, 500},
		{"first balance tier", decimal.NewFromInt(1500), 0, 0, models.KYCLevelNone, 600},
		{"both balance tiers", decimal.NewFromInt(6000), 0, 0, models.KYCLevelNone, 700},
		{"tier boundary is exclusive", decimal.NewFromInt(1000), 0, 0, models.KYCLevelNone, 500},
		{"paid history", decimal.Zero, 2, 0, models.KYCLevelNone, 600},
		{"defaults hurt", decimal.Zero, 0, 1, models.KYCLevelNone, 400},
		{"verified kyc", decimal.Zero, 0, 0, models.KYCLevelVerified, 550},
		{"premium kyc", decimal.Zero, 0, 0, models.KYCLevelPremium, 600},
		{"clamped at floor", decimal.Zero, 0, 5, models.KYCLevelNone, MinCreditScore},
		{"clamped at ceiling", decimal.NewFromInt(10000), 10, 0, models.KYCLevelPremium, MaxCreditScore},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeCreditScore(tt.balance, tt.paid, tt.defaulted, tt.kyc)
			assert.Equal(t, tt.want, got)
		})
	}
}
