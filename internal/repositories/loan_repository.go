package repositories

import (
	"errors"
	"fmt"

	errs "github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/errors"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LoanRepository owns loan products, loans and repayment records.
// Disbursement and repayment also move wallet money, so
// ExecuteInTransaction yields a tx-bound ledger repository.
type LoanRepository interface {
	GetProduct(id uint) (*models.LoanProduct, error)
	ListActiveProducts() ([]models.LoanProduct, error)

	GetLoan(id uint) (*models.Loan, error)
	GetLoanForUpdate(id uint) (*models.Loan, error)
	ListLoansByUser(userID uint) ([]models.Loan, error)
	CountLoansByUserAndStatus(userID uint, statuses []string) (int64, error)
	CreateLoan(l *models.Loan) error
	UpdateLoan(l *models.Loan) error

	CreateRepayment(rp *models.LoanRepayment) error
	ListRepayments(loanID uint) ([]models.LoanRepayment, error)

	ExecuteInTransaction(fn func(LoanRepository, LedgerRepository) error) error
}

type loanRepository struct {
	db *gorm.DB
}

func NewLoanRepository(db *gorm.DB) LoanRepository {
	return &loanRepository{db: db}
}

func (r *loanRepository) GetProduct(id uint) (*models.LoanProduct, error) {
	var product models.LoanProduct
	err := r.db.Where("is_active = ?", true).First(&product, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrLoanProductNotFound
		}
		return nil, fmt.Errorf("failed to get loan product: %w", err)
	}
	return &product, nil
}

func (r *loanRepository) ListActiveProducts() ([]models.LoanProduct, error) {
	var products []models.LoanProduct
	err := r.db.Where("is_active = ?", true).Order("created_at DESC").Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list loan products: %w", err)
	}
	return products, nil
}

func (r *loanRepository) GetLoan(id uint) (*models.Loan, error) {
	var loan models.Loan
	err := r.db.Preload("Product").First(&loan, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrLoanNotFound
		}
		return nil, fmt.Errorf("failed to get loan: %w", err)
	}
	return &loan, nil
}

func (r *loanRepository) GetLoanForUpdate(id uint) (*models.Loan, error) {
	var loan models.Loan
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&loan, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrLoanNotFound
		}
		return nil, fmt.Errorf("failed to lock loan: %w", err)
	}
	return &loan, nil
}

func (r *loanRepository) ListLoansByUser(userID uint) ([]models.Loan, error) {
	var loans []models.Loan
	err := r.db.Preload("Product").Where("user_id = ?", userID).
		Order("created_at DESC").Find(&loans).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list loans: %w", err)
	}
	return loans, nil
}

func (r *loanRepository) CountLoansByUserAndStatus(userID uint, statuses []string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Loan{}).
		Where("user_id = ? AND status IN ?", userID, statuses).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count loans: %w", err)
	}
	return count, nil
}

func (r *loanRepository) CreateLoan(l *models.Loan) error {
	if err := r.db.Create(l).Error; err != nil {
		return fmt.Errorf("failed to create loan: %w", err)
	}
	return nil
}

func (r *loanRepository) UpdateLoan(l *models.Loan) error {
	if err := r.db.Save(l).Error; err != nil {
		return fmt.Errorf("failed to update loan: %w", err)
	}
	return nil
}

func (r *loanRepository) CreateRepayment(rp *models.LoanRepayment) error {
	if err := r.db.Create(rp).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.ErrDuplicateReference
		}
		return fmt.Errorf("failed to create loan repayment: %w", err)
	}
	return nil
}

func (r *loanRepository) ListRepayments(loanID uint) ([]models.LoanRepayment, error) {
	var repayments []models.LoanRepayment
	err := r.db.Where("loan_id = ?", loanID).Order("created_at DESC").Find(&repayments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list repayments: %w", err)
	}
	return repayments, nil
}

func (r *loanRepository) ExecuteInTransaction(fn func(LoanRepository, LedgerRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&loanRepository{db: tx}, &ledgerRepository{db: tx})
	})
}
