package savings

import (
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"

	errs "github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/errors"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/models"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/repositories"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/services/wallet"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/utils"
)

var (
	oneHundred  = decimal.NewFromInt(100)
	daysPerYear = decimal.NewFromInt(365)
)

// Notifier delivers fire-and-forget savings notifications.
type Notifier interface {
	Notify(userID uint, notificationType, title, message string, metadata models.JSON)
}

// Service moves money between wallets and savings accounts, applies
// early-withdrawal penalties and runs the interest accrual batch.
type Service struct {
	repo     repositories.SavingsRepository
	notifier Notifier
	now      func() time.Time
}

func NewService(repo repositories.SavingsRepository, notifier Notifier) *Service {
	return &Service{repo: repo, notifier: notifier, now: time.Now}
}

// ListProducts returns the open savings products.
func (s *Service) ListProducts() ([]models.SavingsProduct, error) {
	return s.repo.ListActiveProducts()
}

// ListAccounts returns the user's savings accounts.
func (s *Service) ListAccounts(userID uint) ([]models.SavingsAccount, error) {
	return s.repo.ListAccountsByUser(userID)
}

// ListTransactions returns an account's ledger entries after an ownership
// check.
func (s *Service) ListTransactions(userID, accountID uint, limit, offset int) ([]models.SavingsTransaction, error) {
	account, err := s.repo.GetAccount(accountID)
	if err != nil {
		return nil, err
	}
	if account.UserID != userID {
		return nil, errs.ErrSavingsAccountNotFound
	}
	return s.repo.ListTransactions(accountID, limit, offset)
}

// CreateAccount opens a savings account against a product and funds it with
// an initial deposit from the wallet, all in one transaction. Products with
// a lock period produce a LOCKED account with a maturity date.
func (s *Service) CreateAccount(user *models.User, walletID, productID uint, initialDeposit decimal.Decimal, pin string) (*models.SavingsAccount, error) {
	if err := utils.VerifyPIN(user.PINHash, pin); err != nil {
		return nil, err
	}

	var account *models.SavingsAccount
	err := s.repo.ExecuteInTransaction(func(repo repositories.SavingsRepository, ledger repositories.LedgerRepository) error {
		w, err := ledger.GetWallet(walletID)
		if err != nil {
			return err
		}
		if w.UserID != user.ID {
			return errs.ErrWalletNotFound
		}

		product, err := repo.GetProduct(productID)
		if err != nil {
			return err
		}
		if err := checkDepositBounds(product, initialDeposit); err != nil {
			return err
		}

		now := s.now()
		account = &models.SavingsAccount{
			UserID:    user.ID,
			WalletID:  walletID,
			ProductID: product.ID,
			Balance:   decimal.Zero,
			Status:    models.SavingsStatusActive,
		}
		if product.LockPeriodDays > 0 {
			maturity := now.AddDate(0, 0, product.LockPeriodDays)
			account.Status = models.SavingsStatusLocked
			account.MaturityDate = &maturity
		}
		if err := repo.CreateAccount(account); err != nil {
			return err
		}
		account.Product = product

		return s.depositTx(repo, ledger, account, initialDeposit, "Opening deposit")
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(user.ID, models.NotificationSavingsDeposit,
		"Savings account opened",
		fmt.Sprintf("Your savings account was opened with %s.", initialDeposit.StringFixed(2)),
		models.JSON{"savings_account_id": account.ID})
	return account, nil
}

// Deposit moves amount from the wallet into the savings account.
func (s *Service) Deposit(user *models.User, accountID uint, amount decimal.Decimal, pin string) (*models.SavingsAccount, error) {
	if err := utils.VerifyPIN(user.PINHash, pin); err != nil {
		return nil, err
	}

	var account *models.SavingsAccount
	err := s.repo.ExecuteInTransaction(func(repo repositories.SavingsRepository, ledger repositories.LedgerRepository) error {
		var err error
		account, err = s.lockOwnedAccount(repo, user.ID, accountID)
		if err != nil {
			return err
		}
		if err := checkDepositBounds(account.Product, amount); err != nil {
			return err
		}
		if account.Product.MaximumDeposit != nil &&
			account.Balance.Add(amount).GreaterThan(*account.Product.MaximumDeposit) {
			return errs.ErrAboveMaximumDeposit
		}
		return s.depositTx(repo, ledger, account, amount, "Savings deposit")
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(user.ID, models.NotificationSavingsDeposit,
		"Savings deposit",
		fmt.Sprintf("You moved %s into savings.", amount.StringFixed(2)),
		models.JSON{"savings_account_id": account.ID})
	return account, nil
}

// depositTx debits the wallet and credits the savings account inside the
// caller's open transaction. Used by CreateAccount and Deposit after their
// own validation; PIN has already been checked.
func (s *Service) depositTx(repo repositories.SavingsRepository, ledger repositories.LedgerRepository, account *models.SavingsAccount, amount decimal.Decimal, description string) error {
	txn, _, err := wallet.Apply(ledger, account.WalletID, wallet.Mutation{
		Type:            models.TransactionTypeSavingsDeposit,
		Amount:          amount,
		ReferencePrefix: wallet.RefPrefixSavings,
		Description:     description,
		Metadata:        models.JSON{"savings_account_id": account.ID},
	})
	if err != nil {
		return err
	}

	before := account.Balance
	account.Balance = account.Balance.Add(amount)
	if err := repo.UpdateAccount(account); err != nil {
		return err
	}

	return repo.CreateSavingsTransaction(&models.SavingsTransaction{
		SavingsAccountID: account.ID,
		Reference:        txn.Reference,
		Type:             models.SavingsTxDeposit,
		Amount:           amount,
		BalanceBefore:    before,
		BalanceAfter:     account.Balance,
		Description:      description,
	})
}

// Withdraw moves amount out of the savings account back to the wallet. A
// withdrawal before maturity pays the product's early-withdrawal penalty:
// the full amount leaves savings but the wallet is credited amount minus
// penalty, and the penalty is recorded on the savings ledger. A locked
// product with no penalty rate refuses early withdrawal outright.
func (s *Service) Withdraw(user *models.User, accountID uint, amount decimal.Decimal, pin string) (*models.SavingsAccount, error) {
	if err := utils.VerifyPIN(user.PINHash, pin); err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, errs.ErrInvalidAmount
	}

	var account *models.SavingsAccount
	var penalty decimal.Decimal
	err := s.repo.ExecuteInTransaction(func(repo repositories.SavingsRepository, ledger repositories.LedgerRepository) error {
		var err error
		account, err = s.lockOwnedAccount(repo, user.ID, accountID)
		if err != nil {
			return err
		}
		if account.Balance.LessThan(amount) {
			return errs.ErrInsufficientSavingsBalance
		}

		penalty = decimal.Zero
		if account.IsLockedAt(s.now()) {
			rate := decimal.Zero
			if account.Product != nil {
				rate = account.Product.EarlyWithdrawalPenalty
			}
			if rate.IsZero() {
				return errs.ErrWithdrawalLocked
			}
			penalty = amount.Mul(rate).Div(oneHundred).Round(2)
		}

		net := amount.Sub(penalty)
		txn, _, err := wallet.Apply(ledger, account.WalletID, wallet.Mutation{
			Type:            models.TransactionTypeSavingsWithdrawal,
			Amount:          net,
			ReferencePrefix: wallet.RefPrefixSavings,
			Description:     "Savings withdrawal",
			Metadata:        models.JSON{"savings_account_id": account.ID},
		})
		if err != nil {
			return err
		}

		before := account.Balance
		account.Balance = account.Balance.Sub(amount)
		if err := repo.UpdateAccount(account); err != nil {
			return err
		}

		if err := repo.CreateSavingsTransaction(&models.SavingsTransaction{
			SavingsAccountID: account.ID,
			Reference:        txn.Reference,
			Type:             models.SavingsTxWithdrawal,
			Amount:           amount,
			BalanceBefore:    before,
			BalanceAfter:     account.Balance,
			Description:      "Savings withdrawal",
		}); err != nil {
			return err
		}

		if penalty.IsPositive() {
			return repo.CreateSavingsTransaction(&models.SavingsTransaction{
				SavingsAccountID: account.ID,
				Reference:        wallet.NewReference(wallet.RefPrefixSavings),
				Type:             models.SavingsTxPenalty,
				Amount:           penalty,
				BalanceBefore:    account.Balance,
				BalanceAfter:     account.Balance,
				Description:      "Early withdrawal penalty",
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	message := fmt.Sprintf("You withdrew %s from savings.", amount.StringFixed(2))
	if penalty.IsPositive() {
		message = fmt.Sprintf("You withdrew %s from savings (penalty %s).", amount.StringFixed(2), penalty.StringFixed(2))
	}
	s.notifier.Notify(user.ID, models.NotificationSavingsDeposit,
		"Savings withdrawal", message,
		models.JSON{"savings_account_id": account.ID})
	return account, nil
}

// CloseAccount withdraws any remaining balance (early-withdrawal rules
// apply) and marks the account CLOSED.
func (s *Service) CloseAccount(user *models.User, accountID uint, pin string) error {
	if err := utils.VerifyPIN(user.PINHash, pin); err != nil {
		return err
	}

	account, err := s.repo.GetAccount(accountID)
	if err != nil {
		return err
	}
	if account.UserID != user.ID {
		return errs.ErrSavingsAccountNotFound
	}
	if account.Status == models.SavingsStatusClosed {
		return errs.ErrSavingsAccountClosed
	}

	if account.Balance.IsPositive() {
		if _, err := s.Withdraw(user, accountID, account.Balance, pin); err != nil {
			return err
		}
	}

	return s.repo.ExecuteInTransaction(func(repo repositories.SavingsRepository, ledger repositories.LedgerRepository) error {
		locked, err := repo.GetAccountForUpdate(accountID)
		if err != nil {
			return err
		}
		locked.Status = models.SavingsStatusClosed
		return repo.UpdateAccount(locked)
	})
}

// AccrualResult reports the outcome of one account in the interest batch.
type AccrualResult struct {
	AccountID uint            `json:"account_id"`
	UserID    uint            `json:"user_id"`
	Interest  decimal.Decimal `json:"interest"`
	Err       error           `json:"-"`
}

// CalculateInterestForAll accrues simple daily interest on every funded
// account. Each account commits in its own transaction so one failure never
// poisons the batch; failures are logged and reported in the results.
func (s *Service) CalculateInterestForAll() ([]AccrualResult, error) {
	candidates, err := s.repo.ListAccrualCandidates()
	if err != nil {
		return nil, err
	}

	results := make([]AccrualResult, 0, len(candidates))
	for _, candidate := range candidates {
		result := AccrualResult{AccountID: candidate.ID, UserID: candidate.UserID}
		result.Interest, result.Err = s.accrueOne(candidate.ID)
		if result.Err != nil {
			log.Printf("interest accrual failed for account %d: %v", candidate.ID, result.Err)
		} else if result.Interest.IsPositive() {
			s.notifier.Notify(result.UserID, models.NotificationSavingsInterest,
				"Interest earned",
				fmt.Sprintf("Your savings earned %s in interest.", result.Interest.StringFixed(2)),
				models.JSON{"savings_account_id": result.AccountID})
		}
		results = append(results, result)
	}
	return results, nil
}

// accrueOne applies interest to a single account in its own transaction and
// returns the amount credited.
func (s *Service) accrueOne(accountID uint) (decimal.Decimal, error) {
	interest := decimal.Zero
	err := s.repo.ExecuteInTransaction(func(repo repositories.SavingsRepository, ledger repositories.LedgerRepository) error {
		account, err := repo.GetAccountForUpdate(accountID)
		if err != nil {
			return err
		}
		if account.Status == models.SavingsStatusClosed || !account.Balance.IsPositive() {
			return nil
		}
		if account.Product == nil {
			return errs.ErrSavingsProductNotFound
		}

		now := s.now()
		interest = InterestFor(account, now)
		if !interest.IsPositive() {
			return nil
		}

		before := account.Balance
		account.Balance = account.Balance.Add(interest)
		account.TotalInterestEarned = account.TotalInterestEarned.Add(interest)
		account.LastInterestDate = &now
		if err := repo.UpdateAccount(account); err != nil {
			return err
		}

		return repo.CreateSavingsTransaction(&models.SavingsTransaction{
			SavingsAccountID: account.ID,
			Reference:        wallet.NewReference(wallet.RefPrefixSavings),
			Type:             models.SavingsTxInterest,
			Amount:           interest,
			BalanceBefore:    before,
			BalanceAfter:     account.Balance,
			Description:      "Interest accrual",
		})
	})
	return interest, err
}

// InterestFor computes simple interest on the account's balance for the
// whole days elapsed since the last accrual (falling back to the account's
// creation date): balance * annualRate/100 * days/365, rounded to cents.
func InterestFor(account *models.SavingsAccount, now time.Time) decimal.Decimal {
	since := account.CreatedAt
	if account.LastInterestDate != nil {
		since = *account.LastInterestDate
	}
	days := int64(now.Sub(since).Hours() / 24)
	if days <= 0 || account.Product == nil {
		return decimal.Zero
	}
	return account.Balance.
		Mul(account.Product.InterestRate).Div(oneHundred).
		Mul(decimal.NewFromInt(days)).Div(daysPerYear).
		Round(2)
}

// lockOwnedAccount locks the account row and verifies ownership and state.
func (s *Service) lockOwnedAccount(repo repositories.SavingsRepository, userID, accountID uint) (*models.SavingsAccount, error) {
	account, err := repo.GetAccountForUpdate(accountID)
	if err != nil {
		return nil, err
	}
	if account.UserID != userID {
		return nil, errs.ErrSavingsAccountNotFound
	}
	if account.Status == models.SavingsStatusClosed {
		return nil, errs.ErrSavingsAccountClosed
	}
	return account, nil
}

func checkDepositBounds(product *models.SavingsProduct, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return errs.ErrInvalidAmount
	}
	if product == nil {
		return errs.ErrSavingsProductNotFound
	}
	if amount.LessThan(product.MinimumDeposit) {
		return errs.ErrBelowMinimumDeposit
	}
	if product.MaximumDeposit != nil && amount.GreaterThan(*product.MaximumDeposit) {
		return errs.ErrAboveMaximumDeposit
	}
	return nil
}
