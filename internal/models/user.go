package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// KYC levels
const (
	KYCLevelNone     = "NONE"
	KYCLevelBasic    = "BASIC"
	KYCLevelVerified = "VERIFIED"
	KYCLevelPremium  = "PREMIUM"
)

type User struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	Email       string `gorm:"uniqueIndex;not null" json:"email"`
	Password    string `gorm:"not null" json:"-"`
	FirstName   string `gorm:"size:100;not null" json:"first_name"`
	LastName    string `gorm:"size:100;not null" json:"last_name"`
	Phone       string `gorm:"size:20" json:"phone"`
	Country     string `gorm:"size:100" json:"country"`
	Role        string `gorm:"size:20;default:'user'" json:"role"`
	KYCLevel    string `gorm:"size:20;default:'NONE'" json:"kyc_level"`
	PINHash     string `gorm:"size:255" json:"-"`
	IsActive    bool   `gorm:"default:true" json:"is_active"`
	LastLoginAt time.Time

	// Per-user caps consumed when seeding the transfer limit row.
	DailyTransferLimit   decimal.Decimal `gorm:"type:numeric(12,2);not null;default:10000" json:"daily_transfer_limit"`
	MonthlyTransferLimit decimal.Decimal `gorm:"type:numeric(12,2);not null;default:100000" json:"monthly_transfer_limit"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FullName joins first and last name for display.
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// CreateUserInput carries registration data from the API layer.
type CreateUserInput struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Phone     string `json:"phone"`
	Country   string `json:"country"`
	PIN       string `json:"pin" validate:"required,len=4"`
}
