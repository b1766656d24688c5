package loan

import (
	"fmt"
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

// Notifier delivers fire-and-forget loan notifications.
type Notifier interface {
	Notify(userID uint, notificationType, title, message string, metadata models.JSON)
}

// Service handles loan applications, scoring, disbursement and repayment.
type Service struct {
	repo     repositories.LoanRepository
	ledger   repositories.LedgerRepository
	users    repositories.UserRepository
	notifier Notifier
	now      func() time.Time
}

func NewService(repo repositories.LoanRepository, ledger repositories.LedgerRepository, users repositories.UserRepository, notifier Notifier) *Service {
	return &Service{repo: repo, ledger: ledger, users: users, notifier: notifier, now: time.Now}
}

// ListProducts returns the open loan products.
func (s *Service) ListProducts() ([]models.LoanProduct, error) {
	return s.repo.ListActiveProducts()
}

// ListLoans returns the user's loans, newest first.
func (s *Service) ListLoans(userID uint) ([]models.Loan, error) {
	return s.repo.ListLoansByUser(userID)
}

// GetLoan returns one of the user's loans.
func (s *Service) GetLoan(userID, loanID uint) (*models.Loan, error) {
	loan, err := s.repo.GetLoan(loanID)
	if err != nil {
		return nil, err
	}
	if loan.UserID != userID {
		return nil, errs.ErrLoanNotFound
	}
	return loan, nil
}

// CreditScore computes the user's current score from live wallet and loan
// data.
func (s *Service) CreditScore(user *models.User) (int, error) {
	wallets, err := s.ledger.GetWalletsByUser(user.ID)
	if err != nil {
		return 0, err
	}
	total := decimal.Zero
	for _, w := range wallets {
		total = total.Add(w.Balance)
	}

	paid, err := s.repo.CountLoansByUserAndStatus(user.ID, []string{models.LoanStatusPaid})
	if err != nil {
		return 0, err
	}
	defaulted, err := s.repo.CountLoansByUserAndStatus(user.ID, []string{models.LoanStatusDefaulted})
	if err != nil {
		return 0, err
	}

	return ComputeCreditScore(total, int(paid), int(defaulted), user.KYCLevel), nil
}

// Apply submits a loan application. The principal and tenure must fit the
// product's bounds and the user may hold at most one open loan. Applications
// scoring at or above the auto-approval threshold are approved and disbursed
// immediately; the rest stay PENDING for manual review.
func (s *Service) Apply(user *models.User, walletID, productID uint, principal decimal.Decimal, tenureDays int) (*models.Loan, error) {
	score, err := s.CreditScore(user)
	if err != nil {
		return nil, err
	}

	var loan *models.Loan
	err = s.repo.ExecuteInTransaction(func(repo repositories.LoanRepository, ledger repositories.LedgerRepository) error {
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
		if principal.LessThan(product.MinimumAmount) || principal.GreaterThan(product.MaximumAmount) ||
			tenureDays < product.MinimumTenureDays || tenureDays > product.MaximumTenureDays {
			return errs.ErrLoanOutOfRange
		}

		open, err := repo.CountLoansByUserAndStatus(user.ID, []string{
			models.LoanStatusPending,
			models.LoanStatusApproved,
			models.LoanStatusDisbursed,
			models.LoanStatusActive,
		})
		if err != nil {
			return err
		}
		if open > 0 {
			return errs.ErrActiveLoanExists
		}

		interest := principal.
			Mul(product.InterestRate).Div(oneHundred).
			Mul(decimal.NewFromInt(int64(tenureDays))).Div(daysPerYear).
			Round(2)
		originationFee := principal.Mul(product.OriginationFeePercentage).Div(oneHundred).Round(2)
		total := principal.Add(interest).Add(originationFee)

		loan = &models.Loan{
			UserID:          user.ID,
			WalletID:        walletID,
			ProductID:       product.ID,
			PrincipalAmount: principal,
			InterestAmount:  interest,
			OriginationFee:  originationFee,
			TotalAmount:     total,
			AmountPaid:      decimal.Zero,
			Balance:         total,
			TenureDays:      tenureDays,
			Status:          models.LoanStatusPending,
			CreditScore:     score,
		}
		if err := repo.CreateLoan(loan); err != nil {
			return err
		}

		if score >= AutoApproveThreshold {
			return s.disburseTx(repo, ledger, loan)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Every application gets a submission notification, auto-approved or not.
	s.notifier.Notify(user.ID, models.NotificationLoanSubmitted,
		"Loan application received",
		fmt.Sprintf("Your loan application for %s was received.", principal.StringFixed(2)),
		models.JSON{"loan_id": loan.ID})
	if loan.Status == models.LoanStatusActive {
		s.notifier.Notify(user.ID, models.NotificationLoanApproved,
			"Loan approved",
			fmt.Sprintf("Your loan of %s was approved and disbursed.", principal.StringFixed(2)),
			models.JSON{"loan_id": loan.ID})
	}
	return loan, nil
}

// Approve moves a PENDING loan to ACTIVE and credits the wallet with the
// principal. Admin operation.
func (s *Service) Approve(loanID uint) (*models.Loan, error) {
	var loan *models.Loan
	err := s.repo.ExecuteInTransaction(func(repo repositories.LoanRepository, ledger repositories.LedgerRepository) error {
		var err error
		loan, err = repo.GetLoanForUpdate(loanID)
		if err != nil {
			return err
		}
		if loan.Status != models.LoanStatusPending {
			return errs.ErrLoanStateConflict
		}
		return s.disburseTx(repo, ledger, loan)
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(loan.UserID, models.NotificationLoanApproved,
		"Loan approved",
		fmt.Sprintf("Your loan of %s was approved and disbursed.", loan.PrincipalAmount.StringFixed(2)),
		models.JSON{"loan_id": loan.ID})
	return loan, nil
}

// Reject declines a PENDING loan. Admin operation.
func (s *Service) Reject(loanID uint, reason string) (*models.Loan, error) {
	var loan *models.Loan
	err := s.repo.ExecuteInTransaction(func(repo repositories.LoanRepository, ledger repositories.LedgerRepository) error {
		var err error
		loan, err = repo.GetLoanForUpdate(loanID)
		if err != nil {
			return err
		}
		if loan.Status != models.LoanStatusPending {
			return errs.ErrLoanStateConflict
		}
		loan.Status = models.LoanStatusRejected
		loan.RejectionReason = reason
		return repo.UpdateLoan(loan)
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(loan.UserID, models.NotificationLoanRejected,
		"Loan application declined", reason,
		models.JSON{"loan_id": loan.ID})
	return loan, nil
}

// disburseTx credits the principal to the wallet and activates the loan,
// inside the caller's open transaction.
func (s *Service) disburseTx(repo repositories.LoanRepository, ledger repositories.LedgerRepository, loan *models.Loan) error {
	if _, _, err := wallet.Apply(ledger, loan.WalletID, wallet.Mutation{
		Type:            models.TransactionTypeLoanDisbursement,
		Amount:          loan.PrincipalAmount,
		ReferencePrefix: wallet.RefPrefixLoan,
		Description:     "Loan disbursement",
		Metadata:        models.JSON{"loan_id": loan.ID},
	}); err != nil {
		return err
	}

	now := s.now()
	due := now.AddDate(0, 0, loan.TenureDays)
	loan.Status = models.LoanStatusActive
	loan.DisbursementDate = &now
	loan.DueDate = &due
	return repo.UpdateLoan(loan)
}

// Repay debits the wallet and reduces the loan balance. A repayment larger
// than the outstanding balance is clamped to it; paying the balance to zero
// settles the loan as PAID.
func (s *Service) Repay(user *models.User, loanID uint, amount decimal.Decimal, pin string) (*models.Loan, error) {
	if err := utils.VerifyPIN(user.PINHash, pin); err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, errs.ErrInvalidAmount
	}

	var loan *models.Loan
	err := s.repo.ExecuteInTransaction(func(repo repositories.LoanRepository, ledger repositories.LedgerRepository) error {
		var err error
		loan, err = repo.GetLoanForUpdate(loanID)
		if err != nil {
			return err
		}
		if loan.UserID != user.ID {
			return errs.ErrLoanNotFound
		}
		if loan.Status != models.LoanStatusActive {
			return errs.ErrLoanStateConflict
		}

		payment := amount
		if payment.GreaterThan(loan.Balance) {
			payment = loan.Balance
		}

		txn, _, err := wallet.Apply(ledger, loan.WalletID, wallet.Mutation{
			Type:            models.TransactionTypeLoanRepayment,
			Amount:          payment,
			ReferencePrefix: wallet.RefPrefixLoan,
			Description:     "Loan repayment",
			Metadata:        models.JSON{"loan_id": loan.ID},
		})
		if err != nil {
			return err
		}

		loan.AmountPaid = loan.AmountPaid.Add(payment)
		loan.Balance = loan.Balance.Sub(payment)
		if !loan.Balance.IsPositive() {
			now := s.now()
			loan.Status = models.LoanStatusPaid
			loan.PaidDate = &now
		}
		if err := repo.UpdateLoan(loan); err != nil {
			return err
		}

		return repo.CreateRepayment(&models.LoanRepayment{
			LoanID:       loan.ID,
			Reference:    txn.Reference,
			Amount:       payment,
			BalanceAfter: loan.Balance,
		})
	})
	if err != nil {
		return nil, err
	}

	title := "Repayment received"
	message := fmt.Sprintf("Your repayment was applied; %s remains outstanding.", loan.Balance.StringFixed(2))
	if loan.Status == models.LoanStatusPaid {
		title = "Loan settled"
		message = "Your loan is fully repaid."
	}
	s.notifier.Notify(user.ID, models.NotificationLoanRepayment, title, message,
		models.JSON{"loan_id": loan.ID})
	return loan, nil
}
