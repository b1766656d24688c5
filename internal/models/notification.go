package models

import "time"

// Notification types
const (
	NotificationTransfer        = "TRANSFER"
	NotificationDeposit         = "DEPOSIT"
	NotificationWithdrawal      = "WITHDRAWAL"
	NotificationSavingsDeposit  = "SAVINGS_DEPOSIT"
	NotificationSavingsInterest = "SAVINGS_INTEREST"
	NotificationLoanSubmitted   = "LOAN_SUBMITTED"
	NotificationLoanApproved    = "LOAN_APPROVED"
	NotificationLoanRejected    = "LOAN_REJECTED"
	NotificationLoanRepayment   = "LOAN_REPAYMENT"
	NotificationCryptoTrade     = "CRYPTO_TRADE"
	NotificationSecurityAlert   = "SECURITY_ALERT"
)

// Notification is a fire-and-forget event record. Persisting one must never
// roll back the financial mutation that produced it.
type Notification struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Type      string    `gorm:"size:50;not null" json:"type"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Message   string    `json:"message"`
	IsRead    bool      `gorm:"default:false" json:"is_read"`
	Metadata  JSON      `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
