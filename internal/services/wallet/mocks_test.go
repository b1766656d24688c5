package wallet

import (
	"github.com/stretchr/testify/mock"

	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/models"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/repositories"
)

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

func (m *mockLedger) CreateWallet(w *models.Wallet) error {
	return m.Called(w).Error(0)
}

func (m *mockLedger) UpdateWallet(w *models.Wallet) error {
	return m.Called(w).Error(0)
}

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

type mockUsers struct {
	mock.Mock
}

func (m *mockUsers) GetByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUsers) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUsers) Create(u *models.User) error {
	return m.Called(u).Error(0)
}

func (m *mockUsers) Update(u *models.User) error {
	return m.Called(u).Error(0)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) Notify(userID uint, notificationType, title, message string, metadata models.JSON) {
	m.Called(userID, notificationType, title, message, metadata)
}
