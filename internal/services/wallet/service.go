package wallet

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/shopspring/decimal"

	errs "github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/errors"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/models"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/repositories"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/repositories/cache"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/services/fees"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/services/limits"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/utils"
)

// Notifier delivers a fire-and-forget notification; failures must never
// affect the transaction that triggered them.
type Notifier interface {
	Notify(userID uint, notificationType, title, message string, metadata models.JSON)
}

// Service is the fiat ledger core: wallet lifecycle plus deposit, withdraw
// and transfer. Every other engine reaches wallet balances through this
// package's Apply primitive.
type Service struct {
	ledger   repositories.LedgerRepository
	users    repositories.UserRepository
	fees     *fees.Calculator
	limits   *limits.Guard
	notifier Notifier
	cache    *cache.CacheService
}

func NewService(
	ledger repositories.LedgerRepository,
	users repositories.UserRepository,
	feeCalc *fees.Calculator,
	guard *limits.Guard,
	notifier Notifier,
	cacheService *cache.CacheService,
) *Service {
	return &Service{
		ledger:   ledger,
		users:    users,
		fees:     feeCalc,
		limits:   guard,
		notifier: notifier,
		cache:    cacheService,
	}
}

// GetOrCreateWallet returns the user's wallet for the currency, creating an
// empty one on first use. USD wallets are created as the primary wallet.
func (s *Service) GetOrCreateWallet(userID uint, currency string) (*models.Wallet, error) {
	currency = strings.ToUpper(currency)
	w, err := s.ledger.GetWalletByUserAndCurrency(userID, currency)
	if err == nil {
		return w, nil
	}
	if !errors.Is(err, errs.ErrWalletNotFound) {
		return nil, err
	}

	w = &models.Wallet{
		UserID:           userID,
		Currency:         currency,
		Balance:          decimal.Zero,
		AvailableBalance: decimal.Zero,
		IsActive:         true,
		IsPrimary:        currency == "USD",
	}
	if err := s.ledger.CreateWallet(w); err != nil {
		return nil, err
	}
	return w, nil
}

// GetBalance returns the user's wallet for the currency, serving from cache
// when possible.
func (s *Service) GetBalance(userID uint, currency string) (*models.Wallet, error) {
	currency = strings.ToUpper(currency)
	if s.cache != nil {
		if w, err := s.cache.GetWallet(context.Background(), userID, currency); err == nil && w != nil {
			return w, nil
		}
	}

	w, err := s.ledger.GetWalletByUserAndCurrency(userID, currency)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.CacheWallet(context.Background(), w); err != nil {
			log.Printf("wallet cache write failed: %v", err)
		}
	}
	return w, nil
}

// ListWallets returns all of the user's active wallets.
func (s *Service) ListWallets(userID uint) ([]models.Wallet, error) {
	return s.ledger.GetWalletsByUser(userID)
}

// Deposit credits the wallet. Deposits carry no fee and require no PIN; the
// funding source (card, bank) is validated upstream.
func (s *Service) Deposit(userID, walletID uint, amount decimal.Decimal, description string) (*models.Transaction, error) {
	var txn *models.Transaction
	err := s.ledger.ExecuteInTransaction(func(ledger repositories.LedgerRepository) error {
		if err := ownWallet(ledger, userID, walletID); err != nil {
			return err
		}
		var err error
		txn, _, err = Apply(ledger, walletID, Mutation{
			Type:        models.TransactionTypeDeposit,
			Amount:      amount,
			Fee:         decimal.Zero,
			Description: description,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.afterMutation(userID, txn)
	s.notifier.Notify(userID, models.NotificationDeposit,
		"Deposit received",
		fmt.Sprintf("Your wallet was credited %s %s.", txn.Amount.StringFixed(2), txn.Currency),
		models.JSON{"reference": txn.Reference})
	return txn, nil
}

// Withdraw debits amount plus the configured withdrawal fee after PIN
// verification.
func (s *Service) Withdraw(user *models.User, walletID uint, amount decimal.Decimal, pin, description string) (*models.Transaction, error) {
	if err := utils.VerifyPIN(user.PINHash, pin); err != nil {
		return nil, err
	}
	fee, err := s.fees.Calculate(models.TransactionTypeWithdrawal, amount)
	if err != nil {
		return nil, err
	}

	var txn *models.Transaction
	err = s.ledger.ExecuteInTransaction(func(ledger repositories.LedgerRepository) error {
		if err := ownWallet(ledger, user.ID, walletID); err != nil {
			return err
		}
		var err error
		txn, _, err = Apply(ledger, walletID, Mutation{
			Type:        models.TransactionTypeWithdrawal,
			Amount:      amount,
			Fee:         fee,
			Description: description,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.afterMutation(user.ID, txn)
	s.notifier.Notify(user.ID, models.NotificationWithdrawal,
		"Withdrawal completed",
		fmt.Sprintf("You withdrew %s %s (fee %s).", txn.Amount.StringFixed(2), txn.Currency, txn.Fee.StringFixed(2)),
		models.JSON{"reference": txn.Reference})
	return txn, nil
}

// Transfer moves amount from the sender's wallet to the wallet of the user
// registered under recipientEmail, charging the transfer fee to the sender
// and reserving the amount against the sender's transfer limits. Both legs
// commit in one database transaction; wallet rows are locked in ascending ID
// order so concurrent opposing transfers cannot deadlock.
func (s *Service) Transfer(user *models.User, walletID uint, recipientEmail string, amount decimal.Decimal, pin, description string) (*models.Transaction, error) {
	if err := utils.VerifyPIN(user.PINHash, pin); err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, errs.ErrInvalidAmount
	}

	recipient, err := s.users.GetByEmail(recipientEmail)
	if err != nil {
		if errors.Is(err, errs.ErrUserNotFound) {
			return nil, errs.ErrRecipientNotFound
		}
		return nil, err
	}
	if recipient.ID == user.ID {
		return nil, errs.ErrInvalidRecipient
	}

	fee, err := s.fees.Calculate(models.TransactionTypeTransfer, amount)
	if err != nil {
		return nil, err
	}

	var senderTxn *models.Transaction
	var senderCurrency string
	err = s.ledger.ExecuteInTransaction(func(ledger repositories.LedgerRepository) error {
		sender, err := ledger.GetWallet(walletID)
		if err != nil {
			return err
		}
		if sender.UserID != user.ID {
			return errs.ErrWalletNotFound
		}
		senderCurrency = sender.Currency

		recipientWallet, err := ledger.GetWalletByUserAndCurrency(recipient.ID, sender.Currency)
		if errors.Is(err, errs.ErrWalletNotFound) {
			recipientWallet = &models.Wallet{
				UserID:           recipient.ID,
				Currency:         sender.Currency,
				Balance:          decimal.Zero,
				AvailableBalance: decimal.Zero,
				IsActive:         true,
				IsPrimary:        sender.Currency == "USD",
			}
			err = ledger.CreateWallet(recipientWallet)
		}
		if err != nil {
			return err
		}

		// Lock order is ascending wallet ID regardless of direction.
		first, second := sender.ID, recipientWallet.ID
		if second < first {
			first, second = second, first
		}
		if _, err := ledger.GetWalletForUpdate(first); err != nil {
			return err
		}
		if _, err := ledger.GetWalletForUpdate(second); err != nil {
			return err
		}

		if err := s.limits.CheckAndReserve(ledger, user, amount); err != nil {
			return err
		}

		senderTxn, _, err = Apply(ledger, sender.ID, Mutation{
			Type:            models.TransactionTypeTransfer,
			Amount:          amount,
			Fee:             fee,
			Description:     description,
			RecipientWallet: &recipientWallet.ID,
			RecipientEmail:  recipient.Email,
		})
		if err != nil {
			return err
		}

		_, _, err = Apply(ledger, recipientWallet.ID, Mutation{
			Type:        models.TransactionTypeDeposit,
			Amount:      amount,
			Fee:         decimal.Zero,
			Description: fmt.Sprintf("Transfer from %s", user.Email),
			Metadata:    models.JSON{"sender_reference": senderTxn.Reference},
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.invalidateWallet(user.ID, senderCurrency)
	s.invalidateWallet(recipient.ID, senderCurrency)
	s.notifier.Notify(user.ID, models.NotificationTransfer,
		"Transfer sent",
		fmt.Sprintf("You sent %s %s to %s.", amount.StringFixed(2), senderCurrency, recipient.Email),
		models.JSON{"reference": senderTxn.Reference})
	// The recipient sees an incoming credit, so their notification is a
	// deposit, not a transfer.
	s.notifier.Notify(recipient.ID, models.NotificationDeposit,
		"Transfer received",
		fmt.Sprintf("You received %s %s from %s.", amount.StringFixed(2), senderCurrency, user.Email),
		models.JSON{"reference": senderTxn.Reference})
	return senderTxn, nil
}

// ownWallet refuses wallet IDs that do not belong to the acting user. A
// foreign wallet reads the same as a missing one.
func ownWallet(ledger repositories.LedgerRepository, userID, walletID uint) error {
	w, err := ledger.GetWallet(walletID)
	if err != nil {
		return err
	}
	if w.UserID != userID {
		return errs.ErrWalletNotFound
	}
	return nil
}

func (s *Service) afterMutation(userID uint, txn *models.Transaction) {
	s.invalidateWallet(userID, txn.Currency)
}

func (s *Service) invalidateWallet(userID uint, currency string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateWallet(context.Background(), userID, currency); err != nil {
		log.Printf("wallet cache invalidation failed: %v", err)
	}
}
