package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Loan statuses
const (
	LoanStatusPending   = "PENDING"
	LoanStatusApproved  = "APPROVED"
	LoanStatusDisbursed = "DISBURSED"
	LoanStatusActive    = "ACTIVE"
	LoanStatusPaid      = "PAID"
	LoanStatusDefaulted = "DEFAULTED"
	LoanStatusRejected  = "REJECTED"
)

// LoanProduct bounds what can be applied for. InterestRate is annual percent;
// the origination fee is charged once at issuance.
type LoanProduct struct {
	ID                       uint            `gorm:"primarykey" json:"id"`
	Name                     string          `gorm:"size:100;not null" json:"name"`
	Description              string          `json:"description"`
	InterestRate             decimal.Decimal `gorm:"type:numeric(5,2);not null" json:"interest_rate"`
	MinimumAmount            decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"minimum_amount"`
	MaximumAmount            decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"maximum_amount"`
	MinimumTenureDays        int             `gorm:"not null" json:"minimum_tenure_days"`
	MaximumTenureDays        int             `gorm:"not null" json:"maximum_tenure_days"`
	OriginationFeePercentage decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0" json:"origination_fee_percentage"`
	IsActive                 bool            `gorm:"default:true" json:"is_active"`
	CreatedAt                time.Time       `json:"created_at"`
	UpdatedAt                time.Time       `json:"updated_at"`
}

// Loan tracks one application through PENDING -> {APPROVED -> DISBURSED ->
// ACTIVE -> {PAID | DEFAULTED}} | REJECTED. Balance starts at TotalAmount and
// only decreases through repayments.
type Loan struct {
	ID              uint            `gorm:"primarykey" json:"id"`
	UserID          uint            `gorm:"not null;index" json:"user_id"`
	WalletID        uint            `gorm:"not null;index" json:"wallet_id"`
	ProductID       uint            `gorm:"not null;index" json:"product_id"`
	Product         *LoanProduct    `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	PrincipalAmount decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"principal_amount"`
	InterestAmount  decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"interest_amount"`
	OriginationFee  decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"origination_fee"`
	TotalAmount     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_amount"`
	AmountPaid      decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"amount_paid"`
	Balance         decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"balance"`
	TenureDays      int             `gorm:"not null" json:"tenure_days"`
	Status          string          `gorm:"size:20;not null;default:'PENDING';index" json:"status"`
	CreditScore     int             `json:"credit_score"`
	RejectionReason string          `json:"rejection_reason,omitempty"`
	DisbursementDate *time.Time     `json:"disbursement_date,omitempty"`
	DueDate          *time.Time     `json:"due_date,omitempty"`
	PaidDate         *time.Time     `json:"paid_date,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// IsOpen reports whether the loan blocks a new application for the same user.
func (l *Loan) IsOpen() bool {
	switch l.Status {
	case LoanStatusActive, LoanStatusApproved, LoanStatusDisbursed:
		return true
	}
	return false
}

// LoanRepayment is one immutable repayment record scoped to a loan.
type LoanRepayment struct {
	ID           uint            `gorm:"primarykey" json:"id"`
	LoanID       uint            `gorm:"not null;index" json:"loan_id"`
	Reference    string          `gorm:"size:100;not null;uniqueIndex" json:"reference"`
	Amount       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	BalanceAfter decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"balance_after"`
	CreatedAt    time.Time       `json:"created_at"`
}
