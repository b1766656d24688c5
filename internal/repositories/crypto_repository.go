package repositories

import (
	"errors"
	"fmt"

	errs "github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/errors"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CryptoRepository owns currencies, crypto sub-wallets and the trade log.
// Trades debit or credit the linked fiat wallet, so ExecuteInTransaction
// yields a tx-bound ledger repository.
type CryptoRepository interface {
	GetCurrency(id uint) (*models.CryptoCurrency, error)
	GetCurrencyBySymbol(symbol string) (*models.CryptoCurrency, error)
	ListActiveCurrencies() ([]models.CryptoCurrency, error)
	UpdateCurrency(c *models.CryptoCurrency) error

	GetCryptoWallet(id uint) (*models.CryptoWallet, error)
	GetCryptoWalletForUpdate(id uint) (*models.CryptoWallet, error)
	GetCryptoWalletByUserAndCurrency(userID, currencyID uint) (*models.CryptoWallet, error)
	ListCryptoWalletsByUser(userID uint) ([]models.CryptoWallet, error)
	CreateCryptoWallet(w *models.CryptoWallet) error
	UpdateCryptoWallet(w *models.CryptoWallet) error

	CreateCryptoTransaction(t *models.CryptoTransaction) error
	ListCryptoTransactionsByUser(userID uint, limit, offset int) ([]models.CryptoTransaction, error)

	ExecuteInTransaction(fn func(CryptoRepository, LedgerRepository) error) error
}

type cryptoRepository struct {
	db *gorm.DB
}

func NewCryptoRepository(db *gorm.DB) CryptoRepository {
	return &cryptoRepository{db: db}
}

func (r *cryptoRepository) GetCurrency(id uint) (*models.CryptoCurrency, error) {
	var currency models.CryptoCurrency
	err := r.db.Where("is_active = ?", true).First(&currency, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrCryptoCurrencyNotFound
		}
		return nil, fmt.Errorf("failed to get currency: %w", err)
	}
	return &currency, nil
}

func (r *cryptoRepository) GetCurrencyBySymbol(symbol string) (*models.CryptoCurrency, error) {
	var currency models.CryptoCurrency
	err := r.db.Where("symbol = ? AND is_active = ?", symbol, true).First(&currency).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrCryptoCurrencyNotFound
		}
		return nil, fmt.Errorf("failed to get currency: %w", err)
	}
	return &currency, nil
}

func (r *cryptoRepository) ListActiveCurrencies() ([]models.CryptoCurrency, error) {
	var currencies []models.CryptoCurrency
	err := r.db.Where("is_active = ?", true).Order("symbol").Find(&currencies).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list currencies: %w", err)
	}
	return currencies, nil
}

func (r *cryptoRepository) UpdateCurrency(c *models.CryptoCurrency) error {
	if err := r.db.Save(c).Error; err != nil {
		return fmt.Errorf("failed to update currency: %w", err)
	}
	return nil
}

func (r *cryptoRepository) GetCryptoWallet(id uint) (*models.CryptoWallet, error) {
	var wallet models.CryptoWallet
	err := r.db.Preload("Currency").First(&wallet, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrCryptoWalletNotFound
		}
		return nil, fmt.Errorf("failed to get crypto wallet: %w", err)
	}
	return &wallet, nil
}

func (r *cryptoRepository) GetCryptoWalletForUpdate(id uint) (*models.CryptoWallet, error) {
	var wallet models.CryptoWallet
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&wallet, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrCryptoWalletNotFound
		}
		return nil, fmt.Errorf("failed to lock crypto wallet: %w", err)
	}
	return &wallet, nil
}

func (r *cryptoRepository) GetCryptoWalletByUserAndCurrency(userID, currencyID uint) (*models.CryptoWallet, error) {
	var wallet models.CryptoWallet
	err := r.db.Where("user_id = ? AND currency_id = ?", userID, currencyID).First(&wallet).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrCryptoWalletNotFound
		}
		return nil, fmt.Errorf("failed to get crypto wallet: %w", err)
	}
	return &wallet, nil
}

func (r *cryptoRepository) ListCryptoWalletsByUser(userID uint) ([]models.CryptoWallet, error) {
	var wallets []models.CryptoWallet
	err := r.db.Preload("Currency").
		Where("user_id = ?", userID).Order("balance DESC").Find(&wallets).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list crypto wallets: %w", err)
	}
	return wallets, nil
}

func (r *cryptoRepository) CreateCryptoWallet(w *models.CryptoWallet) error {
	if err := r.db.Create(w).Error; err != nil {
		return fmt.Errorf("failed to create crypto wallet: %w", err)
	}
	return nil
}

func (r *cryptoRepository) UpdateCryptoWallet(w *models.CryptoWallet) error {
	if err := r.db.Save(w).Error; err != nil {
		return fmt.Errorf("failed to update crypto wallet: %w", err)
	}
	return nil
}

func (r *cryptoRepository) CreateCryptoTransaction(t *models.CryptoTransaction) error {
	if err := r.db.Create(t).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.ErrDuplicateReference
		}
		return fmt.Errorf("failed to create crypto transaction: %w", err)
	}
	return nil
}

func (r *cryptoRepository) ListCryptoTransactionsByUser(userID uint, limit, offset int) ([]models.CryptoTransaction, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var txs []models.CryptoTransaction
	err := r.db.Joins("JOIN crypto_wallets ON crypto_wallets.id = crypto_transactions.wallet_id").
		Where("crypto_wallets.user_id = ?", userID).
		Order("crypto_transactions.created_at DESC").
		Limit(limit).Offset(offset).
		Find(&txs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list crypto transactions: %w", err)
	}
	return txs, nil
}

func (r *cryptoRepository) ExecuteInTransaction(fn func(CryptoRepository, LedgerRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&cryptoRepository{db: tx}, &ledgerRepository{db: tx})
	})
}
