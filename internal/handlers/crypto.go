package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/middleware"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/repositories"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/services/crypto"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/utils/pagination"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/utils/response"
)

type CryptoHandler struct {
	crypto *crypto.Service
	users  repositories.UserRepository
}

func NewCryptoHandler(cryptoService *crypto.Service, users repositories.UserRepository) *CryptoHandler {
	return &CryptoHandler{crypto: cryptoService, users: users}
}

func (h *CryptoHandler) ListCurrencies(c *fiber.Ctx) error {
	currencies, err := h.crypto.ListCurrencies()
	if err != nil {
		return fail(c, err)
	}
	return response.Success(c, "currencies", currencies)
}

func (h *CryptoHandler) GetPortfolio(c *fiber.Ctx) error {
	claims := middleware.Claims(c)
	if claims == nil {
		return response.Unauthorized(c)
	}
	portfolio, err := h.crypto.GetPortfolio(claims.UserID)
	if err != nil {
		return fail(c, err)
	}
	return response.Success(c, "portfolio", portfolio)
}

func (h *CryptoHandler) ListTrades(c *fiber.Ctx) error {
	claims := middleware.Claims(c)
	if claims == nil {
		return response.Unauthorized(c)
	}
	p := pagination.ParseFromRequest(c)
	trades, err := h.crypto.ListTrades(claims.UserID, p.Limit, p.Offset)
	if err != nil {
		return fail(c, err)
	}
	return response.Success(c, "trades", trades)
}

func (h *CryptoHandler) Buy(c *fiber.Ctx) error {
	u, err := currentUser(c, h.users)
	if err != nil {
		return response.Unauthorized(c)
	}

	var input struct {
		Symbol    string          `json:"symbol"`
		USDAmount decimal.Decimal `json:"usd_amount"`
		PIN       string          `json:"pin"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	trade, err := h.crypto.Buy(u, input.Symbol, input.USDAmount, input.PIN)
	if err != nil {
		return fail(c, err)
	}
	return response.Success(c, "purchase completed", trade)
}

func (h *CryptoHandler) Sell(c *fiber.Ctx) error {
	u, err := currentUser(c, h.users)
	if err != nil {
		return response.Unauthorized(c)
	}

	var input struct {
		Symbol       string          `json:"symbol"`
		CryptoAmount decimal.Decimal `json:"crypto_amount"`
		PIN          string          `json:"pin"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	trade, err := h.crypto.Sell(u, input.Symbol, input.CryptoAmount, input.PIN)
	if err != nil {
		return fail(c, err)
	}
	return response.Success(c, "sale completed", trade)
}

// UpdatePrices ingests a batch of quotes from the price feed. Admin
// operation.
func (h *CryptoHandler) UpdatePrices(c *fiber.Ctx) error {
	var input struct {
		Prices []crypto.PriceUpdate `json:"prices"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	if err := h.crypto.UpdatePrices(input.Prices); err != nil {
		return fail(c, err)
	}
	return response.Success(c, "prices updated", fiber.Map{"count": len(input.Prices)})
}
