package repositories

import (
	"errors"
	"fmt"

	errs "github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/errors"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/models"

	"gorm.io/gorm"
)

// TransactionFilter narrows transaction queries. Zero values are ignored.
type TransactionFilter struct {
	UserID   uint
	WalletID uint
	Type     string
	Status   string
	Currency string
	Limit    int
	Offset   int
}

// TransactionRepository is the read side of the transaction log.
type TransactionRepository interface {
	GetByID(id uint) (*models.Transaction, error)
	GetByReference(reference string) (*models.Transaction, error)
	List(filter TransactionFilter) ([]models.Transaction, int64, error)
}

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) GetByID(id uint) (*models.Transaction, error) {
	var tx models.Transaction
	if err := r.db.First(&tx, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &tx, nil
}

func (r *transactionRepository) GetByReference(reference string) (*models.Transaction, error) {
	var tx models.Transaction
	if err := r.db.Where("reference = ?", reference).First(&tx).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &tx, nil
}

func (r *transactionRepository) List(filter TransactionFilter) ([]models.Transaction, int64, error) {
	q := r.db.Model(&models.Transaction{})

	if filter.UserID != 0 {
		q = q.Joins("JOIN wallets ON wallets.id = transactions.wallet_id").
			Where("wallets.user_id = ?", filter.UserID)
	}
	if filter.WalletID != 0 {
		q = q.Where("transactions.wallet_id = ?", filter.WalletID)
	}
	if filter.Type != "" {
		q = q.Where("transactions.type = ?", filter.Type)
	}
	if filter.Status != "" {
		q = q.Where("transactions.status = ?", filter.Status)
	}
	if filter.Currency != "" {
		q = q.Where("transactions.currency = ?", filter.Currency)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var txs []models.Transaction
	err := q.Order("transactions.created_at DESC").
		Limit(limit).
		Offset(filter.Offset).
		Find(&txs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txs, total, nil
}
