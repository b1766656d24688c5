package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction types
const (
	TransactionTypeDeposit           = "DEPOSIT"
	TransactionTypeWithdrawal        = "WITHDRAWAL"
	TransactionTypeTransfer          = "TRANSFER"
	TransactionTypeLoanDisbursement  = "LOAN_DISBURSEMENT"
	TransactionTypeLoanRepayment     = "LOAN_REPAYMENT"
	TransactionTypeSavingsDeposit    = "SAVINGS_DEPOSIT"
	TransactionTypeSavingsWithdrawal = "SAVINGS_WITHDRAWAL"
	TransactionTypeInterestCredit    = "INTEREST_CREDIT"
	TransactionTypeCryptoBuy         = "CRYPTO_BUY"
	TransactionTypeCryptoSell        = "CRYPTO_SELL"
)

// Transaction statuses
const (
	TransactionStatusPending   = "PENDING"
	TransactionStatusCompleted = "COMPLETED"
	TransactionStatusFailed    = "FAILED"
)

// transactionDirections maps each transaction type to the sign applied to the
// owning wallet's balance: +1 credits the wallet by amount, -1 debits it by
// amount plus fee. Keeping this in one table avoids string switches scattered
// across the engines.
var transactionDirections = map[string]int{
	TransactionTypeDeposit:           1,
	TransactionTypeLoanDisbursement:  1,
	TransactionTypeInterestCredit:    1,
	TransactionTypeSavingsWithdrawal: 1,
	TransactionTypeCryptoSell:        1,
	TransactionTypeWithdrawal:        -1,
	TransactionTypeTransfer:          -1,
	TransactionTypeLoanRepayment:     -1,
	TransactionTypeSavingsDeposit:    -1,
	TransactionTypeCryptoBuy:         -1,
}

// TransactionDirection returns +1 for credit types, -1 for debit types and
// false for an unknown type.
func TransactionDirection(txType string) (int, bool) {
	d, ok := transactionDirections[txType]
	return d, ok
}

// Transaction is one immutable ledger entry against a wallet. Only Status may
// change after creation (PENDING -> COMPLETED/FAILED). BalanceBefore and
// BalanceAfter snapshot the wallet balance around the mutation for audit.
type Transaction struct {
	ID              uint            `gorm:"primarykey" json:"id"`
	WalletID        uint            `gorm:"not null;index" json:"wallet_id"`
	Type            string          `gorm:"size:30;not null" json:"type"`
	Amount          decimal.Decimal `gorm:"type:numeric(15,2);not null" json:"amount"`
	Fee             decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0" json:"fee"`
	Currency        string          `gorm:"size:3;not null" json:"currency"`
	Status          string          `gorm:"size:20;not null;default:'PENDING';index" json:"status"`
	BalanceBefore   decimal.Decimal `gorm:"type:numeric(15,2);not null" json:"balance_before"`
	BalanceAfter    decimal.Decimal `gorm:"type:numeric(15,2);not null" json:"balance_after"`
	Reference       string          `gorm:"size:100;not null;uniqueIndex" json:"reference"`
	Description     string          `json:"description"`
	RecipientWallet *uint           `gorm:"index" json:"recipient_wallet_id,omitempty"`
	RecipientEmail  string          `json:"recipient_email,omitempty"`
	Metadata        JSON            `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt       time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// BalanceDelta returns the signed change this transaction applies to its
// wallet balance: +amount for credits, -(amount+fee) for debits.
func (t *Transaction) BalanceDelta() decimal.Decimal {
	dir, ok := TransactionDirection(t.Type)
	if !ok || dir == 0 {
		return decimal.Zero
	}
	if dir > 0 {
		return t.Amount
	}
	return t.Amount.Add(t.Fee).Neg()
}
