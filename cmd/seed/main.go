// Package main seeds the database with an admin account and the reference
// data the engines depend on: fee configurations, savings and loan products,
// and the supported crypto currencies. Rows that already exist are left
// untouched, so the seeder is safe to re-run.
package main

import (
	"log"
	"os"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/config"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/models"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/repositories"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/utils"
)

func main() {
	config.LoadEnv()

	if err := repositories.InitDB(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	db := repositories.DB

	seedAdmin(db)
	seedFeeConfigurations(db)
	seedSavingsProducts(db)
	seedLoanProducts(db)
	seedCryptoCurrencies(db)

	log.Println("Seeding complete")
}

func seedAdmin(db *gorm.DB) {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("ADMIN_EMAIL or ADMIN_PASSWORD not set, skipping admin account")
		return
	}

	var existing models.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		log.Println("Admin account already exists")
		return
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}

	admin := models.User{
		Email:     email,
		Password:  hash,
		FirstName: "Claverica",
		LastName:  "Admin",
		Role:      "admin",
		KYCLevel:  models.KYCLevelPremium,
		IsActive:  true,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatalf("Failed to create admin account: %v", err)
	}
	log.Println("Admin account created")
}

func seedFeeConfigurations(db *gorm.DB) {
	maxTransferFee := decimal.NewFromInt(25)
	configs := []models.FeeConfiguration{
		{
			TransactionType: models.TransactionTypeWithdrawal,
			FeeType:         models.FeeTypeFixed,
			FixedAmount:     decimal.NewFromFloat(1.50),
			IsActive:        true,
		},
		{
			TransactionType: models.TransactionTypeTransfer,
			FeeType:         models.FeeTypePercentage,
			Percentage:      decimal.NewFromFloat(0.5),
			MinimumFee:      decimal.NewFromFloat(0.25),
			MaximumFee:      &maxTransferFee,
			IsActive:        true,
		},
		{
			TransactionType: models.TransactionTypeCryptoBuy,
			FeeType:         models.FeeTypeHybrid,
			FixedAmount:     decimal.NewFromFloat(0.99),
			Percentage:      decimal.NewFromFloat(1.0),
			IsActive:        true,
		},
		{
			TransactionType: models.TransactionTypeCryptoSell,
			FeeType:         models.FeeTypeHybrid,
			FixedAmount:     decimal.NewFromFloat(0.99),
			Percentage:      decimal.NewFromFloat(1.0),
			IsActive:        true,
		},
	}

	for _, cfg := range configs {
		var existing models.FeeConfiguration
		err := db.Where("transaction_type = ?", cfg.TransactionType).First(&existing).Error
		if err == nil {
			continue
		}
		if err := db.Create(&cfg).Error; err != nil {
			log.Fatalf("Failed to seed fee configuration %s: %v", cfg.TransactionType, err)
		}
		log.Printf("Seeded fee configuration: %s", cfg.TransactionType)
	}
}

func seedSavingsProducts(db *gorm.DB) {
	flexMax := decimal.NewFromInt(50000)
	products := []models.SavingsProduct{
		{
			Name:           "Flex Saver",
			Description:    "Withdraw anytime, interest accrues daily.",
			InterestRate:   decimal.NewFromFloat(3.5),
			MinimumDeposit: decimal.NewFromInt(10),
			MaximumDeposit: &flexMax,
			IsActive:       true,
		},
		{
			Name:                   "90-Day Lock",
			Description:            "Funds locked for 90 days at a higher rate.",
			InterestRate:           decimal.NewFromFloat(6.0),
			LockPeriodDays:         90,
			EarlyWithdrawalPenalty: decimal.NewFromFloat(2.0),
			MinimumDeposit:         decimal.NewFromInt(100),
			IsActive:               true,
		},
		{
			Name:                   "1-Year Lock",
			Description:            "Funds locked for a year at our best rate.",
			InterestRate:           decimal.NewFromFloat(9.0),
			LockPeriodDays:         365,
			EarlyWithdrawalPenalty: decimal.NewFromFloat(5.0),
			MinimumDeposit:         decimal.NewFromInt(500),
			IsActive:               true,
		},
	}

	for _, p := range products {
		var existing models.SavingsProduct
		if err := db.Where("name = ?", p.Name).First(&existing).Error; err == nil {
			continue
		}
		if err := db.Create(&p).Error; err != nil {
			log.Fatalf("Failed to seed savings product %s: %v", p.Name, err)
		}
		log.Printf("Seeded savings product: %s", p.Name)
	}
}

func seedLoanProducts(db *gorm.DB) {
	products := []models.LoanProduct{
		{
			Name:                     "Quick Cash",
			Description:              "Small short-term loan.",
			InterestRate:             decimal.NewFromFloat(12.0),
			MinimumAmount:            decimal.NewFromInt(50),
			MaximumAmount:            decimal.NewFromInt(1000),
			MinimumTenureDays:        14,
			MaximumTenureDays:        90,
			OriginationFeePercentage: decimal.NewFromFloat(1.0),
			IsActive:                 true,
		},
		{
			Name:                     "Personal Loan",
			Description:              "Mid-size loan for larger purchases.",
			InterestRate:             decimal.NewFromFloat(8.5),
			MinimumAmount:            decimal.NewFromInt(1000),
			MaximumAmount:            decimal.NewFromInt(25000),
			MinimumTenureDays:        90,
			MaximumTenureDays:        730,
			OriginationFeePercentage: decimal.NewFromFloat(2.0),
			IsActive:                 true,
		},
	}

	for _, p := range products {
		var existing models.LoanProduct
		if err := db.Where("name = ?", p.Name).First(&existing).Error; err == nil {
			continue
		}
		if err := db.Create(&p).Error; err != nil {
			log.Fatalf("Failed to seed loan product %s: %v", p.Name, err)
		}
		log.Printf("Seeded loan product: %s", p.Name)
	}
}

func seedCryptoCurrencies(db *gorm.DB) {
	currencies := []models.CryptoCurrency{
		{Symbol: "BTC", Name: "Bitcoin", CurrentPriceUSD: decimal.NewFromInt(65000), IsActive: true},
		{Symbol: "ETH", Name: "Ethereum", CurrentPriceUSD: decimal.NewFromInt(3200), IsActive: true},
		{Symbol: "SOL", Name: "Solana", CurrentPriceUSD: decimal.NewFromInt(150), IsActive: true},
		{Symbol: "USDC", Name: "USD Coin", CurrentPriceUSD: decimal.NewFromInt(1), IsActive: true},
	}

	for _, c := range currencies {
		var existing models.CryptoCurrency
		if err := db.Where("symbol = ?", c.Symbol).First(&existing).Error; err == nil {
			continue
		}
		if err := db.Create(&c).Error; err != nil {
			log.Fatalf("Failed to seed crypto currency %s: %v", c.Symbol, err)
		}
		log.Printf("Seeded crypto currency: %s", c.Symbol)
	}
}
