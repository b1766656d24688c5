package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	errs "github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/errors"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/middleware"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/models"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/repositories"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/utils/response"
)

// currentUser loads the full user record for the authenticated request.
// Claims only carry the user ID; PIN checks need the stored hash.
func currentUser(c *fiber.Ctx, users repositories.UserRepository) (*models.User, error) {
	claims := middleware.Claims(c)
	if claims == nil {
		return nil, fiber.ErrUnauthorized
	}
	return users.GetByID(claims.UserID)
}

// domainStatus maps a business-rule failure to its HTTP status. Anything
// that is not a DomainError is a 500.
func domainStatus(err error) int {
	var de *errs.DomainError
	if !errors.As(err, &de) {
		return fiber.StatusInternalServerError
	}
	switch {
	case errors.Is(err, errs.ErrWalletNotFound),
		errors.Is(err, errs.ErrUserNotFound),
		errors.Is(err, errs.ErrRecipientNotFound),
		errors.Is(err, errs.ErrTransactionNotFound),
		errors.Is(err, errs.ErrSavingsAccountNotFound),
		errors.Is(err, errs.ErrSavingsProductNotFound),
		errors.Is(err, errs.ErrLoanNotFound),
		errors.Is(err, errs.ErrLoanProductNotFound),
		errors.Is(err, errs.ErrCryptoCurrencyNotFound),
		errors.Is(err, errs.ErrCryptoWalletNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, errs.ErrInvalidPin):
		return fiber.StatusUnauthorized
	case errors.Is(err, errs.ErrLoanStateConflict),
		errors.Is(err, errs.ErrActiveLoanExists),
		errors.Is(err, errs.ErrDuplicateReference),
		errors.Is(err, errs.ErrSavingsAccountClosed):
		return fiber.StatusConflict
	default:
		return fiber.StatusBadRequest
	}
}

// fail writes the error using the domain mapping; infrastructure errors are
// masked behind a generic message.
func fail(c *fiber.Ctx, err error) error {
	status := domainStatus(err)
	if status == fiber.StatusInternalServerError {
		return response.ServerError(c, "internal server error")
	}
	de, _ := errs.AsDomain(err)
	return c.Status(status).JSON(fiber.Map{
		"error": de.Message,
		"code":  de.Code,
	})
}
