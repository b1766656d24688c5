// Package routes wires repositories, services and handlers together and
// registers every HTTP route with its middleware chain.
package routes

import (
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/handlers"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/middleware"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/models"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/repositories"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/services/card"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/services/crypto"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/services/fees"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/services/limits"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/services/loan"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/services/notification"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/services/savings"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/services/user"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/services/wallet"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupRoutes builds the full dependency graph and registers all routes.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// Repositories
	ledgerRepo := repositories.NewLedgerRepository(db)
	txnRepo := repositories.NewTransactionRepository(db)
	userRepo := repositories.NewUserRepository(db)
	savingsRepo := repositories.NewSavingsRepository(db)
	loanRepo := repositories.NewLoanRepository(db)
	cryptoRepo := repositories.NewCryptoRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)

	// Services
	notifier := notification.NewService(notificationRepo)
	feeCalc := fees.NewCalculator(ledgerRepo)
	guard := limits.NewGuard()
	walletService := wallet.NewService(ledgerRepo, userRepo, feeCalc, guard, notifier, repositories.CacheService)
	cardService := card.NewService(walletService)
	userService := user.NewService(userRepo, walletService)
	savingsService := savings.NewService(savingsRepo, notifier)
	loanService := loan.NewService(loanRepo, ledgerRepo, userRepo, notifier)
	cryptoService := crypto.NewService(cryptoRepo, feeCalc, notifier, repositories.CacheService)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	walletHandler := handlers.NewWalletHandler(walletService, cardService, userRepo)
	txnHandler := handlers.NewTransactionHandler(txnRepo, ledgerRepo)
	savingsHandler := handlers.NewSavingsHandler(savingsService, userRepo)
	loanHandler := handlers.NewLoanHandler(loanService, userRepo)
	cryptoHandler := handlers.NewCryptoHandler(cryptoService, userRepo)
	notificationHandler := handlers.NewNotificationHandler(notifier)

	app.Get("/health", handlers.HealthCheck)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Claverica API",
			"version": "1.0.0",
		})
	})

	api := app.Group("/api")

	// Public endpoints
	api.Post("/register", authHandler.Register)
	api.Post("/login", authHandler.Login)
	api.Post("/refresh", authHandler.Refresh)

	protected := api.Use(middleware.Auth)

	// Account
	protected.Get("/profile", authHandler.Profile)
	protected.Post("/change-password", authHandler.ChangePassword)
	protected.Post("/change-pin", authHandler.ChangePIN)

	// Wallets
	wallets := protected.Group("/wallets")
	wallets.Get("/", middleware.RequirePermission(models.PermissionWalletRead), walletHandler.ListWallets)
	wallets.Get("/balance", middleware.RequirePermission(models.PermissionWalletRead), walletHandler.GetBalance)
	wallets.Post("/", middleware.RequirePermission(models.PermissionWalletWrite), walletHandler.CreateWallet)
	wallets.Post("/deposit", middleware.RequirePermission(models.PermissionWalletWrite), walletHandler.Deposit)
	wallets.Post("/topup", middleware.RequirePermission(models.PermissionWalletWrite), walletHandler.TopUpWithCard)
	wallets.Post("/withdraw", middleware.RequirePermission(models.PermissionWalletWrite), walletHandler.Withdraw)
	wallets.Post("/transfer", middleware.RequirePermission(models.PermissionWalletWrite), walletHandler.Transfer)

	// Transactions
	transactions := protected.Group("/transactions", middleware.RequirePermission(models.PermissionTransactionRead))
	transactions.Get("/", txnHandler.List)
	transactions.Get("/:reference", txnHandler.GetByReference)

	// Savings
	savingsGroup := protected.Group("/savings")
	savingsGroup.Get("/products", savingsHandler.ListProducts)
	savingsGroup.Get("/accounts", savingsHandler.ListAccounts)
	savingsGroup.Get("/accounts/:id/transactions", savingsHandler.ListTransactions)
	savingsGroup.Post("/accounts", middleware.RequirePermission(models.PermissionSavingsWrite), savingsHandler.CreateAccount)
	savingsGroup.Post("/accounts/:id/deposit", middleware.RequirePermission(models.PermissionSavingsWrite), savingsHandler.Deposit)
	savingsGroup.Post("/accounts/:id/withdraw", middleware.RequirePermission(models.PermissionSavingsWrite), savingsHandler.Withdraw)
	savingsGroup.Post("/accounts/:id/close", middleware.RequirePermission(models.PermissionSavingsWrite), savingsHandler.Close)

	// Loans
	loans := protected.Group("/loans")
	loans.Get("/products", loanHandler.ListProducts)
	loans.Get("/", loanHandler.ListLoans)
	loans.Get("/credit-score", loanHandler.CreditScore)
	loans.Get("/:id", loanHandler.GetLoan)
	loans.Post("/apply", middleware.RequirePermission(models.PermissionLoanWrite), loanHandler.Apply)
	loans.Post("/:id/repay", middleware.RequirePermission(models.PermissionLoanWrite), loanHandler.Repay)

	// Crypto
	cryptoGroup := protected.Group("/crypto")
	cryptoGroup.Get("/currencies", cryptoHandler.ListCurrencies)
	cryptoGroup.Get("/portfolio", cryptoHandler.GetPortfolio)
	cryptoGroup.Get("/trades", cryptoHandler.ListTrades)
	cryptoGroup.Post("/buy", middleware.RequirePermission(models.PermissionCryptoTrade), cryptoHandler.Buy)
	cryptoGroup.Post("/sell", middleware.RequirePermission(models.PermissionCryptoTrade), cryptoHandler.Sell)

	// Notifications
	protected.Get("/notifications", notificationHandler.List)
	protected.Put("/notifications/:id/read", notificationHandler.MarkRead)

	// Admin
	admin := api.Group("/admin", middleware.Auth, middleware.AdminOnly)
	admin.Post("/loans/:id/approve", loanHandler.Approve)
	admin.Post("/loans/:id/reject", loanHandler.Reject)
	admin.Post("/crypto/prices", cryptoHandler.UpdatePrices)
	admin.Post("/savings/accrue-interest", savingsHandler.AccrueInterest)
}
