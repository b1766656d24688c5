package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/middleware"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/repositories"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/services/card"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/services/wallet"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/utils/response"
)

type WalletHandler struct {
	wallets *wallet.Service
	cards   *card.Service
	users   repositories.UserRepository
}

func NewWalletHandler(wallets *wallet.Service, cards *card.Service, users repositories.UserRepository) *WalletHandler {
	return &WalletHandler{wallets: wallets, cards: cards, users: users}
}

func (h *WalletHandler) ListWallets(c *fiber.Ctx) error {
	claims := middleware.Claims(c)
	if claims == nil {
		return response.Unauthorized(c)
	}
	wallets, err := h.wallets.ListWallets(claims.UserID)
	if err != nil {
		return fail(c, err)
	}
	return response.Success(c, "wallets", wallets)
}

func (h *WalletHandler) GetBalance(c *fiber.Ctx) error {
	claims := middleware.Claims(c)
	if claims == nil {
		return response.Unauthorized(c)
	}
	currency := c.Query("currency", "USD")
	w, err := h.wallets.GetBalance(claims.UserID, currency)
	if err != nil {
		return fail(c, err)
	}
	return response.Success(c, "wallet", w)
}

func (h *WalletHandler) CreateWallet(c *fiber.Ctx) error {
	claims := middleware.Claims(c)
	if claims == nil {
		return response.Unauthorized(c)
	}
	var input struct {
		Currency string `json:"currency"`
	}
	if err := c.BodyParser(&input); err != nil || len(input.Currency) != 3 {
		return response.BadRequest(c, "a 3-letter currency code is required")
	}
	w, err := h.wallets.GetOrCreateWallet(claims.UserID, input.Currency)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "wallet ready", "data": w})
}

func (h *WalletHandler) Deposit(c *fiber.Ctx) error {
	claims := middleware.Claims(c)
	if claims == nil {
		return response.Unauthorized(c)
	}

	var input struct {
		WalletID    uint            `json:"wallet_id"`
		Amount      decimal.Decimal `json:"amount"`
		Description string          `json:"description"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	txn, err := h.wallets.Deposit(claims.UserID, input.WalletID, input.Amount, input.Description)
	if err != nil {
		return fail(c, err)
	}
	return response.Success(c, "deposit completed", txn)
}

func (h *WalletHandler) TopUpWithCard(c *fiber.Ctx) error {
	claims := middleware.Claims(c)
	if claims == nil {
		return response.Unauthorized(c)
	}

	var input struct {
		WalletID uint `json:"wallet_id"`
		card.TopUpInput
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	txn, err := h.cards.TopUp(claims.UserID, input.WalletID, input.TopUpInput)
	if err != nil {
		return fail(c, err)
	}
	return response.Success(c, "top-up completed", txn)
}

func (h *WalletHandler) Withdraw(c *fiber.Ctx) error {
	u, err := currentUser(c, h.users)
	if err != nil {
		return response.Unauthorized(c)
	}

	var input struct {
		WalletID    uint            `json:"wallet_id"`
		Amount      decimal.Decimal `json:"amount"`
		PIN         string          `json:"pin"`
		Description string          `json:"description"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	txn, err := h.wallets.Withdraw(u, input.WalletID, input.Amount, input.PIN, input.Description)
	if err != nil {
		return fail(c, err)
	}
	return response.Success(c, "withdrawal completed", txn)
}

func (h *WalletHandler) Transfer(c *fiber.Ctx) error {
	u, err := currentUser(c, h.users)
	if err != nil {
		return response.Unauthorized(c)
	}

	var input struct {
		WalletID       uint            `json:"wallet_id"`
		RecipientEmail string          `json:"recipient_email"`
		Amount         decimal.Decimal `json:"amount"`
		PIN            string          `json:"pin"`
		Description    string          `json:"description"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	txn, err := h.wallets.Transfer(u, input.WalletID, input.RecipientEmail, input.Amount, input.PIN, input.Description)
	if err != nil {
		return fail(c, err)
	}
	return response.Success(c, "transfer completed", txn)
}
