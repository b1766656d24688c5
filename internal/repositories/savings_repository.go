package repositories

import (
	"errors"
	"fmt"

	errs "github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/errors"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SavingsRepository owns savings products, accounts and their transaction
// log. Savings mutations also move wallet money, so ExecuteInTransaction
// yields a ledger repository bound to the same database transaction.
type SavingsRepository interface {
	GetProduct(id uint) (*models.SavingsProduct, error)
	ListActiveProducts() ([]models.SavingsProduct, error)

	GetAccount(id uint) (*models.SavingsAccount, error)
	GetAccountForUpdate(id uint) (*models.SavingsAccount, error)
	ListAccountsByUser(userID uint) ([]models.SavingsAccount, error)
	ListAccrualCandidates() ([]models.SavingsAccount, error)
	CreateAccount(a *models.SavingsAccount) error
	UpdateAccount(a *models.SavingsAccount) error

	CreateSavingsTransaction(t *models.SavingsTransaction) error
	ListTransactions(accountID uint, limit, offset int) ([]models.SavingsTransaction, error)

	ExecuteInTransaction(fn func(SavingsRepository, LedgerRepository) error) error
}

type savingsRepository struct {
	db *gorm.DB
}

func NewSavingsRepository(db *gorm.DB) SavingsRepository {
	return &savingsRepository{db: db}
}

func (r *savingsRepository) GetProduct(id uint) (*models.SavingsProduct, error) {
	var product models.SavingsProduct
	err := r.db.Where("is_active = ?", true).First(&product, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrSavingsProductNotFound
		}
		return nil, fmt.Errorf("failed to get savings product: %w", err)
	}
	return &product, nil
}

func (r *savingsRepository) ListActiveProducts() ([]models.SavingsProduct, error) {
	var products []models.SavingsProduct
	err := r.db.Where("is_active = ?", true).Order("created_at DESC").Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list savings products: %w", err)
	}
	return products, nil
}

func (r *savingsRepository) GetAccount(id uint) (*models.SavingsAccount, error) {
	var account models.SavingsAccount
	err := r.db.Preload("Product").First(&account, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrSavingsAccountNotFound
		}
		return nil, fmt.Errorf("failed to get savings account: %w", err)
	}
	return &account, nil
}

func (r *savingsRepository) GetAccountForUpdate(id uint) (*models.SavingsAccount, error) {
	var account models.SavingsAccount
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&account, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrSavingsAccountNotFound
		}
		return nil, fmt.Errorf("failed to lock savings account: %w", err)
	}
	// Preload does not combine with FOR UPDATE; fetch the product separately.
	var product models.SavingsProduct
	if err := r.db.First(&product, account.ProductID).Error; err == nil {
		account.Product = &product
	}
	return &account, nil
}

func (r *savingsRepository) ListAccountsByUser(userID uint) ([]models.SavingsAccount, error) {
	var accounts []models.SavingsAccount
	err := r.db.Preload("Product").Where("user_id = ?", userID).
		Order("created_at DESC").Find(&accounts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list savings accounts: %w", err)
	}
	return accounts, nil
}

func (r *savingsRepository) ListAccrualCandidates() ([]models.SavingsAccount, error) {
	var accounts []models.SavingsAccount
	err := r.db.Preload("Product").
		Where("status IN ? AND balance > 0", []string{models.SavingsStatusActive, models.SavingsStatusLocked}).
		Find(&accounts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list accrual candidates: %w", err)
	}
	return accounts, nil
}

func (r *savingsRepository) CreateAccount(a *models.SavingsAccount) error {
	if err := r.db.Create(a).Error; err != nil {
		return fmt.Errorf("failed to create savings account: %w", err)
	}
	return nil
}

func (r *savingsRepository) UpdateAccount(a *models.SavingsAccount) error {
	if err := r.db.Save(a).Error; err != nil {
		return fmt.Errorf("failed to update savings account: %w", err)
	}
	return nil
}

func (r *savingsRepository) CreateSavingsTransaction(t *models.SavingsTransaction) error {
	if err := r.db.Create(t).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.ErrDuplicateReference
		}
		return fmt.Errorf("failed to create savings transaction: %w", err)
	}
	return nil
}

func (r *savingsRepository) ListTransactions(accountID uint, limit, offset int) ([]models.SavingsTransaction, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var txs []models.SavingsTransaction
	err := r.db.Where("savings_account_id = ?", accountID).
		Order("created_at DESC").Limit(limit).Offset(offset).Find(&txs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list savings transactions: %w", err)
	}
	return txs, nil
}

func (r *savingsRepository) ExecuteInTransaction(fn func(SavingsRepository, LedgerRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&savingsRepository{db: tx}, &ledgerRepository{db: tx})
	})
}
