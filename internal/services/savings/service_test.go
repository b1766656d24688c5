package savings

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	errs "github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/errors"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/models"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/utils"
)

func testUser(t *testing.T, id uint) *models.User {
	t.Helper()
	hash, err := utils.HashPIN("1234")
	assert.NoError(t, err)
	return &models.User{ID: id, Email: "alice@example.com", PINHash: hash}
}

func lockedProduct() *models.SavingsProduct {
	return &models.SavingsProduct{
		ID:                     1,
		Name:                   "Fixed 90",
		InterestRate:           decimal.NewFromFloat(10),
		LockPeriodDays:         90,
		EarlyWithdrawalPenalty: decimal.NewFromFloat(5),
		MinimumDeposit:         decimal.NewFromInt(100),
		IsActive:               true,
	}
}

func TestInterestForSimpleDaily(t *testing.T) {
	now := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
	last := now.AddDate(0, 0, -30)
	account := &models.SavingsAccount{
		Balance:          decimal.NewFromInt(1000),
		Product:          &models.SavingsProduct{InterestRate: decimal.NewFromFloat(7.3)},
		LastInterestDate: &last,
	}

	// 1000 * 7.3% * 30/365 = 6.00
	interest := InterestFor(account, now)
	assert.True(t, interest.Equal(decimal.NewFromInt(6)), "got %s", interest)
}

func TestInterestForSameDayIsZero(t *testing.T) {
	now := time.Date(2025, 3, 31, 12, 0, 0, 0, time.UTC)
	last := now.Add(-2 * time.Hour)
	account := &models.SavingsAccount{
		Balance:          decimal.NewFromInt(1000),
		Product:          &models.SavingsProduct{InterestRate: decimal.NewFromFloat(10)},
		LastInterestDate: &last,
	}
	assert.True(t, InterestFor(account, now).IsZero())
}

func TestWithdrawEarlyChargesPenalty(t *testing.T) {
	now := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	maturity := now.AddDate(0, 0, 60)
	account := &models.SavingsAccount{
		ID:           11,
		UserID:       1,
		WalletID:     4,
		Balance:      decimal.NewFromInt(500),
		Status:       models.SavingsStatusLocked,
		MaturityDate: &maturity,
		Product:      lockedProduct(),
	}
	w := &models.Wallet{
		ID: 4, UserID: 1, Currency: "USD", IsActive: true,
		Balance:          decimal.NewFromInt(50),
		AvailableBalance: decimal.NewFromInt(50),
	}

	ledger := new(mockLedger)
	repo := &mockSavingsRepo{ledger: ledger}
	notifier := new(mockNotifier)
	svc := NewService(repo, notifier)
	svc.now = func() time.Time { return now }

	repo.On("ExecuteInTransaction").Return(nil)
	repo.On("GetAccountForUpdate", uint(11)).Return(account, nil)
	repo.On("UpdateAccount", account).Return(nil)
	repo.On("CreateSavingsTransaction", mock.AnythingOfType("*models.SavingsTransaction")).Return(nil)
	ledger.On("GetWalletForUpdate", uint(4)).Return(w, nil)
	ledger.On("UpdateWallet", w).Return(nil)
	ledger.On("CreateTransaction", mock.AnythingOfType("*models.Transaction")).Return(nil)
	notifier.On("Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return()

	_, err := svc.Withdraw(testUser(t, 1), 11, decimal.NewFromInt(200), "1234")
	assert.NoError(t, err)

	// Penalty 5% of 200 = 10: savings drops by 200, wallet gains 190.
	assert.True(t, account.Balance.Equal(decimal.NewFromInt(300)))
	assert.True(t, w.Balance.Equal(decimal.NewFromInt(240)))

	var types []string
	for _, call := range repo.Calls {
		if call.Method == "CreateSavingsTransaction" {
			types = append(types, call.Arguments.Get(0).(*models.SavingsTransaction).Type)
		}
	}
	assert.Equal(t, []string{models.SavingsTxWithdrawal, models.SavingsTxPenalty}, types)
}

func TestWithdrawLockedNoPenaltyRateRefuses(t *testing.T) {
	now := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	maturity := now.AddDate(0, 0, 60)
	product := lockedProduct()
	product.EarlyWithdrawalPenalty = decimal.Zero
	account := &models.SavingsAccount{
		ID:           11,
		UserID:       1,
		WalletID:     4,
		Balance:      decimal.NewFromInt(500),
		Status:       models.SavingsStatusLocked,
		MaturityDate: &maturity,
		Product:      product,
	}

	ledger := new(mockLedger)
	repo := &mockSavingsRepo{ledger: ledger}
	svc := NewService(repo, new(mockNotifier))
	svc.now = func() time.Time { return now }

	repo.On("ExecuteInTransaction").Return(nil)
	repo.On("GetAccountForUpdate", uint(11)).Return(account, nil)

	_, err := svc.Withdraw(testUser(t, 1), 11, decimal.NewFromInt(100), "1234")
	assert.ErrorIs(t, err, errs.ErrWithdrawalLocked)
}

func TestWithdrawAfterMaturityNoPenalty(t *testing.T) {
	now := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	maturity := now.AddDate(0, 0, -1)
	account := &models.SavingsAccount{
		ID:           11,
		UserID:       1,
		WalletID:     4,
		Balance:      decimal.NewFromInt(500),
		Status:       models.SavingsStatusLocked,
		MaturityDate: &maturity,
		Product:      lockedProduct(),
	}
	w := &models.Wallet{
		ID: 4, UserID: 1, Currency: "USD", IsActive: true,
		Balance:          decimal.Zero,
		AvailableBalance: decimal.Zero,
	}

	ledger := new(mockLedger)
	repo := &mockSavingsRepo{ledger: ledger}
	notifier := new(mockNotifier)
	svc := NewService(repo, notifier)
	svc.now = func() time.Time { return now }

	repo.On("ExecuteInTransaction").Return(nil)
	repo.On("GetAccountForUpdate", uint(11)).Return(account, nil)
	repo.On("UpdateAccount", account).Return(nil)
	repo.On("CreateSavingsTransaction", mock.AnythingOfType("*models.SavingsTransaction")).Return(nil)
	ledger.On("GetWalletForUpdate", uint(4)).Return(w, nil)
	ledger.On("UpdateWallet", w).Return(nil)
	ledger.On("CreateTransaction", mock.AnythingOfType("*models.Transaction")).Return(nil)
	notifier.On("Notify", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return()

	_, err := svc.Withdraw(testUser(t, 1), 11, decimal.NewFromInt(500), "1234")
	assert.NoError(t, err)
	assert.True(t, w.Balance.Equal(decimal.NewFromInt(500)))
	repo.AssertNumberOfCalls(t, "CreateSavingsTransaction", 1)
}

func TestCreateAccountBelowMinimum(t *testing.T) {
	ledger := new(mockLedger)
	repo := &mockSavingsRepo{ledger: ledger}
	svc := NewService(repo, new(mockNotifier))

	repo.On("ExecuteInTransaction").Return(nil)
	ledger.On("GetWallet", uint(4)).Return(&models.Wallet{ID: 4, UserID: 1, Currency: "USD", IsActive: true}, nil)
	repo.On("GetProduct", uint(1)).Return(lockedProduct(), nil)

	_, err := svc.CreateAccount(testUser(t, 1), 4, 1, decimal.NewFromInt(50), "1234")
	assert.ErrorIs(t, err, errs.ErrBelowMinimumDeposit)
	repo.AssertNotCalled(t, "CreateAccount", mock.Anything)
}

func TestCreateAccountForeignWalletRejected(t *testing.T) {
	ledger := new(mockLedger)
	repo := &mockSavingsRepo{ledger: ledger}
	svc := NewService(repo, new(mockNotifier))

	repo.On("ExecuteInTransaction").Return(nil)
	ledger.On("GetWallet", uint(77)).Return(&models.Wallet{
		ID: 77, UserID: 9, Currency: "USD", IsActive: true,
		Balance:          decimal.NewFromInt(500),
		AvailableBalance: decimal.NewFromInt(500),
	}, nil)

	_, err := svc.CreateAccount(testUser(t, 1), 77, 1, decimal.NewFromInt(200), "1234")

	assert.ErrorIs(t, err, errs.ErrWalletNotFound)
	repo.AssertNotCalled(t, "CreateAccount", mock.Anything)
	ledger.AssertNotCalled(t, "UpdateWallet", mock.Anything)
}

func TestDepositInsufficientWalletFunds(t *testing.T) {
	account := &models.SavingsAccount{
		ID:       11,
		UserID:   1,
		WalletID: 4,
		Balance:  decimal.NewFromInt(100),
		Status:   models.SavingsStatusActive,
		Product:  lockedProduct(),
	}
	w := &models.Wallet{
		ID: 4, UserID: 1, Currency: "USD", IsActive: true,
		Balance:          decimal.NewFromInt(20),
		AvailableBalance: decimal.NewFromInt(20),
	}

	ledger := new(mockLedger)
	repo := &mockSavingsRepo{ledger: ledger}
	svc := NewService(repo, new(mockNotifier))

	repo.On("ExecuteInTransaction").Return(nil)
	repo.On("GetAccountForUpdate", uint(11)).Return(account, nil)
	ledger.On("GetWalletForUpdate", uint(4)).Return(w, nil)

	_, err := svc.Deposit(testUser(t, 1), 11, decimal.NewFromInt(200), "1234")
	assert.ErrorIs(t, err, errs.ErrInsufficientBalance)
}
