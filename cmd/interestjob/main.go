// Package main runs the daily savings interest accrual batch. Intended to be
// scheduled from cron; each account commits in its own transaction, so a
// partial run can simply be re-run.
package main

import (
	"log"

	"github.com/shopspring/decimal"

	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/config"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/repositories"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/services/notification"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/services/savings"
)

func main() {
	config.LoadEnv()

	if err := repositories.InitDB(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	savingsRepo := repositories.NewSavingsRepository(repositories.DB)
	notifier := notification.NewService(repositories.NewNotificationRepository(repositories.DB))
	svc := savings.NewService(savingsRepo, notifier)

	results, err := svc.CalculateInterestForAll()
	if err != nil {
		log.Fatalf("Interest batch failed: %v", err)
	}

	credited := 0
	failed := 0
	total := decimal.Zero
	for _, r := range results {
		if r.Err != nil {
			failed++
			log.Printf("Account %d: accrual failed: %v", r.AccountID, r.Err)
			continue
		}
		if r.Interest.IsPositive() {
			credited++
			total = total.Add(r.Interest)
		}
	}

	log.Printf("Interest batch done: %d accounts processed, %d credited, %d failed, %s total interest",
		len(results), credited, failed, total.StringFixed(2))
}
