package loan

import (
	"github.com/shopspring/decimal"

	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/models"
)

// Credit score bounds and the threshold at which applications are approved
// without manual review.
const (
	MinCreditScore       = 300
	MaxCreditScore       = 850
	AutoApproveThreshold = 650
)

var (
	balanceTierOne = decimal.NewFromInt(1000)
	balanceTierTwo = decimal.NewFromInt(5000)
)

// ComputeCreditScore derives a score from the applicant's total wallet
// balance across currencies, repayment history and KYC level. The result is
// clamped to [300, 850].
func ComputeCreditScore(totalBalance decimal.Decimal, paidLoans, defaultedLoans int, kycLevel string) int {
	score := 500

	if totalBalance.GreaterThan(balanceTierOne) {
		score += 100
	}
	if totalBalance.GreaterThan(balanceTierTwo) {
		score += 100
	}

	score += 50 * paidLoans
	score -= 100 * defaultedLoans

	switch kycLevel {
	case models.KYCLevelVerified:
		score += 50
	case models.KYCLevelPremium:
		score += 100
	}

	if score < MinCreditScore {
		return MinCreditScore
	}
	if score > MaxCreditScore {
		return MaxCreditScore
	}
	return score
}
