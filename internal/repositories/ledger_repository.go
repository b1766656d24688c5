package repositories

import (
	"errors"
	"fmt"

	errs "github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/errors"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LedgerRepository owns wallet balances, the append-only transaction log,
// transfer limits and fee configurations. Balance-affecting callers must go
// through ExecuteInTransaction and use the ForUpdate getters so concurrent
// mutations of the same wallet serialize on the row lock.
type LedgerRepository interface {
	GetWallet(id uint) (*models.Wallet, error)
	GetWalletForUpdate(id uint) (*models.Wallet, error)
	GetWalletByUserAndCurrency(userID uint, currency string) (*models.Wallet, error)
	GetWalletsByUser(userID uint) ([]models.Wallet, error)
	CreateWallet(w *models.Wallet) error
	UpdateWallet(w *models.Wallet) error

	CreateTransaction(t *models.Transaction) error

	GetActiveFeeConfiguration(txType string) (*models.FeeConfiguration, error)

	GetTransferLimitForUpdate(userID uint) (*models.TransferLimit, error)
	CreateTransferLimit(l *models.TransferLimit) error
	UpdateTransferLimit(l *models.TransferLimit) error

	// ExecuteInTransaction runs fn against a repository bound to one database
	// transaction; fn's writes commit together or not at all.
	ExecuteInTransaction(fn func(LedgerRepository) error) error
}

type ledgerRepository struct {
	db *gorm.DB
}

// NewLedgerRepository creates a ledger repository over the given connection
// or open transaction.
func NewLedgerRepository(db *gorm.DB) LedgerRepository {
	return &ledgerRepository{db: db}
}

func (r *ledgerRepository) GetWallet(id uint) (*models.Wallet, error) {
	var wallet models.Wallet
	if err := r.db.First(&wallet, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	return &wallet, nil
}

func (r *ledgerRepository) GetWalletForUpdate(id uint) (*models.Wallet, error) {
	var wallet models.Wallet
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&wallet, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to lock wallet: %w", err)
	}
	return &wallet, nil
}

func (r *ledgerRepository) GetWalletByUserAndCurrency(userID uint, currency string) (*models.Wallet, error) {
	var wallet models.Wallet
	err := r.db.Where("user_id = ? AND currency = ?", userID, currency).First(&wallet).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrWalletNotFound
		}
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	return &wallet, nil
}

func (r *ledgerRepository) GetWalletsByUser(userID uint) ([]models.Wallet, error) {
	var wallets []models.Wallet
	err := r.db.Where("user_id = ? AND is_active = ?", userID, true).Find(&wallets).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list wallets: %w", err)
	}
	return wallets, nil
}

func (r *ledgerRepository) CreateWallet(w *models.Wallet) error {
	if err := r.db.Create(w).Error; err != nil {
		return fmt.Errorf("failed to create wallet: %w", err)
	}
	return nil
}

func (r *ledgerRepository) UpdateWallet(w *models.Wallet) error {
	if err := r.db.Save(w).Error; err != nil {
		return fmt.Errorf("failed to update wallet: %w", err)
	}
	return nil
}

func (r *ledgerRepository) CreateTransaction(t *models.Transaction) error {
	if err := r.db.Create(t).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.ErrDuplicateReference
		}
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

func (r *ledgerRepository) GetActiveFeeConfiguration(txType string) (*models.FeeConfiguration, error) {
	var cfg models.FeeConfiguration
	err := r.db.Where("transaction_type = ? AND is_active = ?", txType, true).First(&cfg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get fee configuration: %w", err)
	}
	return &cfg, nil
}

func (r *ledgerRepository) GetTransferLimitForUpdate(userID uint) (*models.TransferLimit, error) {
	var limit models.TransferLimit
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).First(&limit).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to lock transfer limit: %w", err)
	}
	return &limit, nil
}

func (r *ledgerRepository) CreateTransferLimit(l *models.TransferLimit) error {
	if err := r.db.Create(l).Error; err != nil {
		return fmt.Errorf("failed to create transfer limit: %w", err)
	}
	return nil
}

func (r *ledgerRepository) UpdateTransferLimit(l *models.TransferLimit) error {
	if err := r.db.Save(l).Error; err != nil {
		return fmt.Errorf("failed to update transfer limit: %w", err)
	}
	return nil
}

func (r *ledgerRepository) ExecuteInTransaction(fn func(LedgerRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&ledgerRepository{db: tx})
	})
}
