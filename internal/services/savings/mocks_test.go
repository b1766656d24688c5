package savings

import (
	"github.com/stretchr/testify/mock"

	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/models"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/repositories"
)

type mockSavingsRepo struct {
	mock.Mock
	ledger *mockLedger
}

func (m *mockSavingsRepo) GetProduct(id uint) (*models.SavingsProduct, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SavingsProduct), args.Error(1)
}

func (m *mockSavingsRepo) ListActiveProducts() ([]models.SavingsProduct, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SavingsProduct), args.Error(1)
}

func (m *mockSavingsRepo) GetAccount(id uint) (*models.SavingsAccount, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SavingsAccount), args.Error(1)
}

func (m *mockSavingsRepo) GetAccountForUpdate(id uint) (*models.SavingsAccount, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SavingsAccount), args.Error(1)
}

func (m *mockSavingsRepo) ListAccountsByUser(userID uint) ([]models.SavingsAccount, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SavingsAccount), args.Error(1)
}

func (m *mockSavingsRepo) ListAccrualCandidates() ([]models.SavingsAccount, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SavingsAccount), args.Error(1)
}

func (m *mockSavingsRepo) CreateAccount(a *models.SavingsAccount) error {
	return m.Called(a).Error(0)
}

func (m *mockSavingsRepo) UpdateAccount(a *models.SavingsAccount) error {
	return m.Called(a).Error(0)
}

func (m *mockSavingsRepo) CreateSavingsTransaction(t *models.SavingsTransaction) error {
	return m.Called(t).Error(0)
}

func (m *mockSavingsRepo) ListTransactions(accountID uint, limit, offset int) ([]models.SavingsTransaction, error) {
	args := m.Called(accountID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SavingsTransaction), args.Error(1)
}

func (m *mockSavingsRepo) ExecuteInTransaction(fn func(repositories.SavingsRepository, repositories.LedgerRepository) error) error {
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

func (m *mockLedger) CreateWallet(w *models.Wallet) error  { return m.Called(w).Error(0) }
func (m *mockLedger) UpdateWallet(w *models.Wallet) error  { return m.Called(w).Error(0) }
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
