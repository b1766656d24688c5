package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/middleware"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/repositories"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/services/loan"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/utils/response"
)

type LoanHandler struct {
	loans *loan.Service
	users repositories.UserRepository
}

func NewLoanHandler(loans *loan.Service, users repositories.UserRepository) *LoanHandler {
	return &LoanHandler{loans: loans, users: users}
}

func (h *LoanHandler) ListProducts(c *fiber.Ctx) error {
	products, err := h.loans.ListProducts()
	if err != nil {
		return fail(c, err)
	}
	return response.Success(c, "loan products", products)
}

func (h *LoanHandler) ListLoans(c *fiber.Ctx) error {
	claims := middleware.Claims(c)
	if claims == nil {
		return response.Unauthorized(c)
	}
	loans, err := h.loans.ListLoans(claims.UserID)
	if err != nil {
		return fail(c, err)
	}
	return response.Success(c, "loans", loans)
}

func (h *LoanHandler) GetLoan(c *fiber.Ctx) error {
	claims := middleware.Claims(c)
	if claims == nil {
		return response.Unauthorized(c)
	}
	loanID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "invalid loan id")
	}

	l, err := h.loans.GetLoan(claims.UserID, uint(loanID))
	if err != nil {
		return fail(c, err)
	}
	return response.Success(c, "loan", l)
}

func (h *LoanHandler) CreditScore(c *fiber.Ctx) error {
	u, err := currentUser(c, h.users)
	if err != nil {
		return response.Unauthorized(c)
	}
	score, err := h.loans.CreditScore(u)
	if err != nil {
		return fail(c, err)
	}
	return response.Success(c, "credit score", fiber.Map{"credit_score": score})
}

func (h *LoanHandler) Apply(c *fiber.Ctx) error {
	u, err := currentUser(c, h.users)
	if err != nil {
		return response.Unauthorized(c)
	}

	var input struct {
		WalletID   uint            `json:"wallet_id"`
		ProductID  uint            `json:"product_id"`
		Principal  decimal.Decimal `json:"principal"`
		TenureDays int             `json:"tenure_days"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	l, err := h.loans.Apply(u, input.WalletID, input.ProductID, input.Principal, input.TenureDays)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "loan application submitted", "data": l})
}

func (h *LoanHandler) Repay(c *fiber.Ctx) error {
	u, err := currentUser(c, h.users)
	if err != nil {
		return response.Unauthorized(c)
	}
	loanID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "invalid loan id")
	}

	var input struct {
		Amount decimal.Decimal `json:"amount"`
		PIN    string          `json:"pin"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	l, err := h.loans.Repay(u, uint(loanID), input.Amount, input.PIN)
	if err != nil {
		return fail(c, err)
	}
	return response.Success(c, "repayment applied", l)
}

// Approve is an admin operation.
func (h *LoanHandler) Approve(c *fiber.Ctx) error {
	loanID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "invalid loan id")
	}

	l, err := h.loans.Approve(uint(loanID))
	if err != nil {
		return fail(c, err)
	}
	return response.Success(c, "loan approved", l)
}

// Reject is an admin operation.
func (h *LoanHandler) Reject(c *fiber.Ctx) error {
	loanID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "invalid loan id")
	}

	var input struct {
		Reason string `json:"reason"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	l, err := h.loans.Reject(uint(loanID), input.Reason)
	if err != nil {
		return fail(c, err)
	}
	return response.Success(c, "loan rejected", l)
}
