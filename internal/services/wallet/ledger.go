package wallet

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	errs "github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/errors"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/models"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/repositories"
)

// Reference prefixes identify which engine originated a ledger entry.
const (
	RefPrefixTransaction = "TXN"
	RefPrefixSavings     = "SAV"
	RefPrefixLoan        = "LOAN"
	RefPrefixCrypto      = "CRYPTO"
)

// NewReference builds a globally unique transaction reference of the form
// PREFIX-XXXXXXXXXXXX (12 hex characters).
func NewReference(prefix string) string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("%s-%s", prefix, strings.ToUpper(raw[:12]))
}

// Mutation describes one balance change to apply to a wallet.
type Mutation struct {
	Type            string
	Amount          decimal.Decimal
	Fee             decimal.Decimal
	ReferencePrefix string
	Description     string
	RecipientWallet *uint
	RecipientEmail  string
	Metadata        models.JSON
}

// Apply executes a single wallet mutation inside the caller's open
// transaction: it locks the wallet row, verifies funds for debits, writes the
// updated balance and appends the ledger entry with before/after snapshots.
// This is the only code path that changes a wallet balance; every engine
// funnels through it.
func Apply(ledger repositories.LedgerRepository, walletID uint, m Mutation) (*models.Transaction, *models.Wallet, error) {
	if !m.Amount.IsPositive() {
		return nil, nil, errs.ErrInvalidAmount
	}
	direction, ok := models.TransactionDirection(m.Type)
	if !ok {
		return nil, nil, fmt.Errorf("unknown transaction type %q", m.Type)
	}

	w, err := ledger.GetWalletForUpdate(walletID)
	if err != nil {
		return nil, nil, err
	}
	if !w.IsActive {
		return nil, nil, errs.ErrWalletInactive
	}

	total := m.Amount.Add(m.Fee)
	if direction < 0 && !w.CanSpend(total) {
		return nil, nil, errs.ErrInsufficientBalance
	}

	txn := &models.Transaction{
		WalletID:        w.ID,
		Type:            m.Type,
		Amount:          m.Amount,
		Fee:             m.Fee,
		Currency:        w.Currency,
		Status:          models.TransactionStatusCompleted,
		BalanceBefore:   w.Balance,
		Description:     m.Description,
		RecipientWallet: m.RecipientWallet,
		RecipientEmail:  m.RecipientEmail,
		Metadata:        m.Metadata,
	}

	delta := txn.BalanceDelta()
	w.Balance = w.Balance.Add(delta)
	w.AvailableBalance = w.AvailableBalance.Add(delta)
	txn.BalanceAfter = w.Balance

	if err := ledger.UpdateWallet(w); err != nil {
		return nil, nil, err
	}

	prefix := m.ReferencePrefix
	if prefix == "" {
		prefix = RefPrefixTransaction
	}
	// One retry on a reference collision; the keyspace makes a second
	// collision vanishingly unlikely.
	for attempt := 0; attempt < 2; attempt++ {
		txn.Reference = NewReference(prefix)
		err = ledger.CreateTransaction(txn)
		if err == nil {
			return txn, w, nil
		}
		if !errors.Is(err, errs.ErrDuplicateReference) {
			return nil, nil, err
		}
	}
	return nil, nil, err
}
