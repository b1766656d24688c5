package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/middleware"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/repositories"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/services/savings"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/utils/pagination"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/utils/response"
)

type SavingsHandler struct {
	savings *savings.Service
	users   repositories.UserRepository
}

func NewSavingsHandler(savingsService *savings.Service, users repositories.UserRepository) *SavingsHandler {
	return &SavingsHandler{savings: savingsService, users: users}
}

func (h *SavingsHandler) ListProducts(c *fiber.Ctx) error {
	products, err := h.savings.ListProducts()
	if err != nil {
		return fail(c, err)
	}
	return response.Success(c, "savings products", products)
}

func (h *SavingsHandler) ListAccounts(c *fiber.Ctx) error {
	claims := middleware.Claims(c)
	if claims == nil {
		return response.Unauthorized(c)
	}
	accounts, err := h.savings.ListAccounts(claims.UserID)
	if err != nil {
		return fail(c, err)
	}
	return response.Success(c, "savings accounts", accounts)
}

func (h *SavingsHandler) ListTransactions(c *fiber.Ctx) error {
	claims := middleware.Claims(c)
	if claims == nil {
		return response.Unauthorized(c)
	}
	accountID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "invalid account id")
	}

	p := pagination.ParseFromRequest(c)
	txns, err := h.savings.ListTransactions(claims.UserID, uint(accountID), p.Limit, p.Offset)
	if err != nil {
		return fail(c, err)
	}
	return response.Success(c, "savings transactions", txns)
}

func (h *SavingsHandler) CreateAccount(c *fiber.Ctx) error {
	u, err := currentUser(c, h.users)
	if err != nil {
		return response.Unauthorized(c)
	}

	var input struct {
		WalletID       uint            `json:"wallet_id"`
		ProductID      uint            `json:"product_id"`
		InitialDeposit decimal.Decimal `json:"initial_deposit"`
		PIN            string          `json:"pin"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	account, err := h.savings.CreateAccount(u, input.WalletID, input.ProductID, input.InitialDeposit, input.PIN)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "savings account opened", "data": account})
}

func (h *SavingsHandler) Deposit(c *fiber.Ctx) error {
	u, err := currentUser(c, h.users)
	if err != nil {
		return response.Unauthorized(c)
	}
	accountID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "invalid account id")
	}

	var input struct {
		Amount decimal.Decimal `json:"amount"`
		PIN    string          `json:"pin"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	account, err := h.savings.Deposit(u, uint(accountID), input.Amount, input.PIN)
	if err != nil {
		return fail(c, err)
	}
	return response.Success(c, "savings deposit completed", account)
}

func (h *SavingsHandler) Withdraw(c *fiber.Ctx) error {
	u, err := currentUser(c, h.users)
	if err != nil {
		return response.Unauthorized(c)
	}
	accountID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "invalid account id")
	}

	var input struct {
		Amount decimal.Decimal `json:"amount"`
		PIN    string          `json:"pin"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	account, err := h.savings.Withdraw(u, uint(accountID), input.Amount, input.PIN)
	if err != nil {
		return fail(c, err)
	}
	return response.Success(c, "savings withdrawal completed", account)
}

func (h *SavingsHandler) Close(c *fiber.Ctx) error {
	u, err := currentUser(c, h.users)
	if err != nil {
		return response.Unauthorized(c)
	}
	accountID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "invalid account id")
	}

	var input struct {
		PIN string `json:"pin"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	if err := h.savings.CloseAccount(u, uint(accountID), input.PIN); err != nil {
		return fail(c, err)
	}
	return response.Success(c, "savings account closed", nil)
}

// AccrueInterest runs the interest batch across all funded accounts. Admin
// operation; the interest job CLI hits the same service method.
func (h *SavingsHandler) AccrueInterest(c *fiber.Ctx) error {
	results, err := h.savings.CalculateInterestForAll()
	if err != nil {
		return fail(c, err)
	}

	credited := 0
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		} else if r.Interest.IsPositive() {
			credited++
		}
	}
	return response.Success(c, "interest accrual completed", fiber.Map{
		"accounts_processed": len(results),
		"accounts_credited":  credited,
		"accounts_failed":    failed,
		"results":            results,
	})
}
