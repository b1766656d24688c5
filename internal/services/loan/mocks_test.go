package loan

import (
	"github.com/stretchr/testify/mock"

	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/models"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/repositories"
)

type mockLoanRepo struct {
	mock.Mock
	ledger *mockLedger
}

func (m *mockLoanRepo) GetProduct(id uint) (*models.LoanProduct, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LoanProduct), args.Error(1)
}

func (m *mockLoanRepo) ListActiveProducts() ([]models.LoanProduct, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LoanProduct), args.Error(1)
}

func (m *mockLoanRepo) GetLoan(id uint) (*models.Loan, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Loan), args.Error(1)
}

func (m *mockLoanRepo) GetLoanForUpdate(id uint) (*models.Loan, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Loan), args.Error(1)
}

func (m *mockLoanRepo) ListLoansByUser(userID uint) ([]models.Loan, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Loan), args.Error(1)
}

func (m *mockLoanRepo) CountLoansByUserAndStatus(userID uint, statuses []string) (int64, error) {
	args := m.Called(userID, statuses)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockLoanRepo) CreateLoan(l *models.Loan) error {
	return m.Called(l).Error(0)
}

func (m *mockLoanRepo) UpdateLoan(l *models.Loan) error {
	return m.Called(l).Error(0)
}

func (m *mockLoanRepo) CreateRepayment(rp *models.LoanRepayment) error {
	return m.Called(rp).Error(0)
}

func (m *mockLoanRepo) ListRepayments(loanID uint) ([]models.LoanRepayment, error) {
	args := m.Called(loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LoanRepayment), args.Error(1)
}

func (m *mockLoanRepo) ExecuteInTransaction(fn func(repositories.LoanRepository, repositories.LedgerRepository) error) error {
	m.Called()
	return fn(m, m.ledger)
}

type mockLedger struct {
	mock.Mock
}

func (m *mockLedger) GetWallet(id uint) (*models.Wallet, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Wallet), args.Error(1)
}

func (m *mockLedger) GetWalletForUpdate(id uint) (*models.Wallet, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Wallet), args.Error(1)
}

func (m *mockLedger) GetWalletByUserAndCurrency(userID uint, currency string) (*models.Wallet, error) {
	args := m.Called(userID, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Wallet), args.Error(1)
}

func (m *mockLedger) GetWalletsByUser(userID uint) ([]models.Wallet, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Wallet), args.Error(1)
}

func (m *mockLedger) CreateWallet(w *models.Wallet) error { return m.Called(w).Error(0) }
func (m *mockLedger) UpdateWallet(w *models.Wallet) error { return m.Called(w).Error(0) }
func (m *mockLedger) CreateTransaction(t *models.Transaction) error {
	return m.Called(t).Error(0)
}

func (m *mockLedger) GetActiveFeeConfiguration(txType string) (*models.FeeConfiguration, error) {
	args := m.Called(txType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FeeConfiguration), args.Error(1)
}

func (m *mockLedger) GetTransferLimitForUpdate(userID uint) (*models.TransferLimit, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TransferLimit), args.Error(1)
}

func (m *mockLedger) CreateTransferLimit(l *models.TransferLimit) error {
	return m.Called(l).Error(0)
}

func (m *mockLedger) UpdateTransferLimit(l *models.TransferLimit) error {
	return m.Called(l).Error(0)
}

func (m *mockLedger) ExecuteInTransaction(fn func(repositories.LedgerRepository) error) error {
	m.Called()
	return fn(m)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Notify(userID uint, notificationType, title, message string, metadata models.JSON) {
	m.Called(userID, notificationType, title, message, metadata)
}
