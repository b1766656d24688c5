package crypto

import (
	"github.com/stretchr/testify/mock"

	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/models"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/repositories"
)

type mockCryptoRepo struct {
	mock.Mock
	ledger *mockLedger
}

func (m *mockCryptoRepo) GetCurrency(id uint) (*models.CryptoCurrency, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CryptoCurrency), args.Error(1)
}

func (m *mockCryptoRepo) GetCurrencyBySymbol(symbol string) (*models.CryptoCurrency, error) {
	args := m.Called(symbol)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CryptoCurrency), args.Error(1)
}

func (m *mockCryptoRepo) ListActiveCurrencies() ([]models.CryptoCurrency, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CryptoCurrency), args.Error(1)
}

func (m *mockCryptoRepo) UpdateCurrency(c *models.CryptoCurrency) error {
	return m.Called(c).Error(0)
}

func (m *mockCryptoRepo) GetCryptoWallet(id uint) (*models.CryptoWallet, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CryptoWallet), args.Error(1)
}

func (m *mockCryptoRepo) GetCryptoWalletForUpdate(id uint) (*models.CryptoWallet, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CryptoWallet), args.Error(1)
}

func (m *mockCryptoRepo) GetCryptoWalletByUserAndCurrency(userID, currencyID uint) (*models.CryptoWallet, error) {
	args := m.Called(userID, currencyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CryptoWallet), args.Error(1)
}

func (m *mockCryptoRepo) ListCryptoWalletsByUser(userID uint) ([]models.CryptoWallet, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CryptoWallet), args.Error(1)
}

func (m *mockCryptoRepo) CreateCryptoWallet(w *models.CryptoWallet) error {
	return m.Called(w).Error(0)
}

func (m *mockCryptoRepo) UpdateCryptoWallet(w *models.CryptoWallet) error {
	return m.Called(w).Error(0)
}

func (m *mockCryptoRepo) CreateCryptoTransaction(t *models.CryptoTransaction) error {
	return m.Called(t).Error(0)
}

func (m *mockCryptoRepo) ListCryptoTransactionsByUser(userID uint, limit, offset int) ([]models.CryptoTransaction, error) {
	args := m.Called(userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CryptoTransaction), args.Error(1)
}

func (m *mockCryptoRepo) ExecuteInTransaction(fn func(repositories.CryptoRepository, repositories.LedgerRepository) error) error {
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
