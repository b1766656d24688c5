package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	errs "github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/errors"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/middleware"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/repositories"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/utils/pagination"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/utils/response"
)

type TransactionHandler struct {
	txns   repositories.TransactionRepository
	ledger repositories.LedgerRepository
}

func NewTransactionHandler(txns repositories.TransactionRepository, ledger repositories.LedgerRepository) *TransactionHandler {
	return &TransactionHandler{txns: txns, ledger: ledger}
}

func (h *TransactionHandler) List(c *fiber.Ctx) error {
	claims := middleware.Claims(c)
	if claims == nil {
		return response.Unauthorized(c)
	}

	p := pagination.ParseFromRequest(c)
	walletID, _ := strconv.Atoi(c.Query("wallet_id", "0"))
	filter := repositories.TransactionFilter{
		UserID:   claims.UserID,
		WalletID: uint(walletID),
		Type:     c.Query("type"),
		Status:   c.Query("status"),
		Currency: c.Query("currency"),
		Limit:    p.Limit,
		Offset:   p.Offset,
	}

	txns, total, err := h.txns.List(filter)
	if err != nil {
		return fail(c, err)
	}
	p.Total = total
	return c.JSON(pagination.Response(p, txns))
}

func (h *TransactionHandler) GetByReference(c *fiber.Ctx) error {
	claims := middleware.Claims(c)
	if claims == nil {
		return response.Unauthorized(c)
	}

	txn, err := h.txns.GetByReference(c.Params("reference"))
	if err != nil {
		return fail(c, err)
	}

	w, err := h.ledger.GetWallet(txn.WalletID)
	if err != nil {
		return fail(c, err)
	}
	if w.UserID != claims.UserID && claims.Role != "admin" {
		return fail(c, errs.ErrTransactionNotFound)
	}
	return response.Success(c, "transaction", txn)
}
