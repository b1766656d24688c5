package crypto

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"

	errs "github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/errors"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/models"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/repositories"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/repositories/cache"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/services/fees"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/services/wallet"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/utils"
)

// Trades settle against the user's USD fiat wallet.
const settlementCurrency = "USD"

// Notifier delivers fire-and-forget trade notifications.
type Notifier interface {
	Notify(userID uint, notificationType, title, message string, metadata models.JSON)
}

// Service executes buy and sell trades against externally supplied prices
// and maintains weighted-average cost basis per holding.
type Service struct {
	repo     repositories.CryptoRepository
	fees     *fees.Calculator
	notifier Notifier
	cache    *cache.CacheService
}

func NewService(repo repositories.CryptoRepository, feeCalc *fees.Calculator, notifier Notifier, cacheService *cache.CacheService) *Service {
	return &Service{repo: repo, fees: feeCalc, notifier: notifier, cache: cacheService}
}

// ListCurrencies returns the tradable assets.
func (s *Service) ListCurrencies() ([]models.CryptoCurrency, error) {
	return s.repo.ListActiveCurrencies()
}

// ListTrades returns the user's trade history, newest first.
func (s *Service) ListTrades(userID uint, limit, offset int) ([]models.CryptoTransaction, error) {
	return s.repo.ListCryptoTransactionsByUser(userID, limit, offset)
}

// Buy converts usdAmount of fiat into the asset at its current price. The
// trading fee is taken out of usdAmount, so the fiat wallet is debited
// exactly usdAmount while (usdAmount - fee) buys crypto.
func (s *Service) Buy(user *models.User, symbol string, usdAmount decimal.Decimal, pin string) (*models.CryptoTransaction, error) {
	if err := utils.VerifyPIN(user.PINHash, pin); err != nil {
		return nil, err
	}
	if !usdAmount.IsPositive() {
		return nil, errs.ErrInvalidAmount
	}

	currency, err := s.repo.GetCurrencyBySymbol(symbol)
	if err != nil {
		return nil, err
	}
	price := currency.CurrentPriceUSD
	if !price.IsPositive() {
		return nil, errs.ErrCryptoCurrencyNotFound
	}

	fee, err := s.fees.Calculate(models.TransactionTypeCryptoBuy, usdAmount)
	if err != nil {
		return nil, err
	}
	net := usdAmount.Sub(fee)
	if !net.IsPositive() {
		return nil, errs.ErrInvalidAmount
	}
	qty := net.Div(price).Round(8)

	var trade *models.CryptoTransaction
	err = s.repo.ExecuteInTransaction(func(repo repositories.CryptoRepository, ledger repositories.LedgerRepository) error {
		fiat, err := getOrCreateFiatWallet(ledger, user.ID)
		if err != nil {
			return err
		}

		holding, err := s.getOrCreateHolding(repo, user.ID, currency.ID)
		if err != nil {
			return err
		}

		txn, fiatAfter, err := wallet.Apply(ledger, fiat.ID, wallet.Mutation{
			Type:            models.TransactionTypeCryptoBuy,
			Amount:          net,
			Fee:             fee,
			ReferencePrefix: wallet.RefPrefixCrypto,
			Description:     fmt.Sprintf("Buy %s %s", qty.String(), currency.Symbol),
			Metadata:        models.JSON{"symbol": currency.Symbol},
		})
		if err != nil {
			return err
		}

		holding.ApplyBuy(qty, price, usdAmount)
		if err := repo.UpdateCryptoWallet(holding); err != nil {
			return err
		}

		trade = &models.CryptoTransaction{
			WalletID:           holding.ID,
			FiatWalletID:       fiat.ID,
			Reference:          txn.Reference,
			Type:               models.CryptoTxBuy,
			CryptoAmount:       qty,
			PricePerUnit:       price,
			USDAmount:          net,
			Fee:                fee,
			TotalUSD:           usdAmount,
			Status:             models.TransactionStatusCompleted,
			CryptoBalanceAfter: holding.Balance,
			FiatBalanceAfter:   fiatAfter.Balance,
		}
		return repo.CreateCryptoTransaction(trade)
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(user.ID, models.NotificationCryptoTrade,
		"Crypto purchase",
		fmt.Sprintf("You bought %s %s for %s USD.", trade.CryptoAmount.String(), currency.Symbol, usdAmount.StringFixed(2)),
		models.JSON{"reference": trade.Reference})
	return trade, nil
}

// Sell converts cryptoAmount of the asset back to fiat at its current price.
// The fee comes out of the gross proceeds; the fiat wallet is credited
// (gross - fee).
func (s *Service) Sell(user *models.User, symbol string, cryptoAmount decimal.Decimal, pin string) (*models.CryptoTransaction, error) {
	if err := utils.VerifyPIN(user.PINHash, pin); err != nil {
		return nil, err
	}
	if !cryptoAmount.IsPositive() {
		return nil, errs.ErrInvalidAmount
	}

	currency, err := s.repo.GetCurrencyBySymbol(symbol)
	if err != nil {
		return nil, err
	}
	price := currency.CurrentPriceUSD
	if !price.IsPositive() {
		return nil, errs.ErrCryptoCurrencyNotFound
	}

	gross := cryptoAmount.Mul(price).Round(2)
	fee, err := s.fees.Calculate(models.TransactionTypeCryptoSell, gross)
	if err != nil {
		return nil, err
	}
	net := gross.Sub(fee)
	if !net.IsPositive() {
		return nil, errs.ErrInvalidAmount
	}

	var trade *models.CryptoTransaction
	err = s.repo.ExecuteInTransaction(func(repo repositories.CryptoRepository, ledger repositories.LedgerRepository) error {
		existing, err := repo.GetCryptoWalletByUserAndCurrency(user.ID, currency.ID)
		if err != nil {
			return err
		}
		holding, err := repo.GetCryptoWalletForUpdate(existing.ID)
		if err != nil {
			return err
		}
		if holding.Balance.LessThan(cryptoAmount) {
			return errs.ErrInsufficientCryptoBalance
		}

		fiat, err := ledger.GetWalletByUserAndCurrency(user.ID, settlementCurrency)
		if err != nil {
			return err
		}

		txn, fiatAfter, err := wallet.Apply(ledger, fiat.ID, wallet.Mutation{
			Type:            models.TransactionTypeCryptoSell,
			Amount:          net,
			Fee:             fee,
			ReferencePrefix: wallet.RefPrefixCrypto,
			Description:     fmt.Sprintf("Sell %s %s", cryptoAmount.String(), currency.Symbol),
			Metadata:        models.JSON{"symbol": currency.Symbol},
		})
		if err != nil {
			return err
		}

		holding.ApplySell(cryptoAmount)
		if err := repo.UpdateCryptoWallet(holding); err != nil {
			return err
		}

		trade = &models.CryptoTransaction{
			WalletID:           holding.ID,
			FiatWalletID:       fiat.ID,
			Reference:          txn.Reference,
			Type:               models.CryptoTxSell,
			CryptoAmount:       cryptoAmount,
			PricePerUnit:       price,
			USDAmount:          gross,
			Fee:                fee,
			TotalUSD:           net,
			Status:             models.TransactionStatusCompleted,
			CryptoBalanceAfter: holding.Balance,
			FiatBalanceAfter:   fiatAfter.Balance,
		}
		return repo.CreateCryptoTransaction(trade)
	})
	if err != nil {
		return nil, err
	}

	s.notifier.Notify(user.ID, models.NotificationCryptoTrade,
		"Crypto sale",
		fmt.Sprintf("You sold %s %s for %s USD.", cryptoAmount.String(), currency.Symbol, net.StringFixed(2)),
		models.JSON{"reference": trade.Reference})
	return trade, nil
}

// PriceUpdate is one quote from the external price feed.
type PriceUpdate struct {
	Symbol           string           `json:"symbol"`
	PriceUSD         decimal.Decimal  `json:"price_usd"`
	MarketCap        *decimal.Decimal `json:"market_cap,omitempty"`
	Volume24h        *decimal.Decimal `json:"volume_24h,omitempty"`
	PercentChange24h decimal.Decimal  `json:"percent_change_24h"`
}

// UpdatePrices ingests quotes from the price feed. Unknown symbols are
// skipped with a log line; prices are also pushed to the cache for cheap
// portfolio reads.
func (s *Service) UpdatePrices(updates []PriceUpdate) error {
	for _, update := range updates {
		currency, err := s.repo.GetCurrencyBySymbol(update.Symbol)
		if err != nil {
			if errors.Is(err, errs.ErrCryptoCurrencyNotFound) {
				log.Printf("price feed: skipping unknown symbol %s", update.Symbol)
				continue
			}
			return err
		}
		if !update.PriceUSD.IsPositive() {
			continue
		}

		currency.CurrentPriceUSD = update.PriceUSD
		currency.PercentChange24h = update.PercentChange24h
		if update.MarketCap != nil {
			currency.MarketCap = update.MarketCap
		}
		if update.Volume24h != nil {
			currency.Volume24h = update.Volume24h
		}
		if err := s.repo.UpdateCurrency(currency); err != nil {
			return err
		}

		if s.cache != nil {
			if err := s.cache.CachePrice(context.Background(), currency.Symbol, currency.CurrentPriceUSD); err != nil {
				log.Printf("price cache write failed for %s: %v", currency.Symbol, err)
			}
		}
	}
	return nil
}

// Holding is one portfolio line: the stored position priced at the current
// quote.
type Holding struct {
	Wallet          models.CryptoWallet `json:"wallet"`
	CurrentValueUSD decimal.Decimal     `json:"current_value_usd"`
	ProfitLossUSD   decimal.Decimal     `json:"profit_loss_usd"`
}

// Portfolio summarizes all of a user's holdings at current prices.
type Portfolio struct {
	Holdings      []Holding       `json:"holdings"`
	TotalValueUSD decimal.Decimal `json:"total_value_usd"`
	TotalInvested decimal.Decimal `json:"total_invested_usd"`
	ProfitLossUSD decimal.Decimal `json:"profit_loss_usd"`
	AsOf          time.Time       `json:"as_of"`
}

// GetPortfolio values every holding at the latest stored price.
func (s *Service) GetPortfolio(userID uint) (*Portfolio, error) {
	holdings, err := s.repo.ListCryptoWalletsByUser(userID)
	if err != nil {
		return nil, err
	}

	portfolio := &Portfolio{
		Holdings:      make([]Holding, 0, len(holdings)),
		TotalValueUSD: decimal.Zero,
		TotalInvested: decimal.Zero,
		AsOf:          time.Now(),
	}
	for _, h := range holdings {
		price := decimal.Zero
		if h.Currency != nil {
			price = h.Currency.CurrentPriceUSD
		}
		value := h.CurrentValueUSD(price)
		portfolio.Holdings = append(portfolio.Holdings, Holding{
			Wallet:          h,
			CurrentValueUSD: value,
			ProfitLossUSD:   value.Sub(h.TotalInvestedUSD),
		})
		portfolio.TotalValueUSD = portfolio.TotalValueUSD.Add(value)
		portfolio.TotalInvested = portfolio.TotalInvested.Add(h.TotalInvestedUSD)
	}
	portfolio.ProfitLossUSD = portfolio.TotalValueUSD.Sub(portfolio.TotalInvested)
	return portfolio, nil
}

// getOrCreateFiatWallet resolves the user's USD settlement wallet, creating
// an empty one for accounts that somehow never got their primary wallet.
func getOrCreateFiatWallet(ledger repositories.LedgerRepository, userID uint) (*models.Wallet, error) {
	fiat, err := ledger.GetWalletByUserAndCurrency(userID, settlementCurrency)
	if err == nil {
		return fiat, nil
	}
	if !errors.Is(err, errs.ErrWalletNotFound) {
		return nil, err
	}

	fiat = &models.Wallet{
		UserID:           userID,
		Currency:         settlementCurrency,
		Balance:          decimal.Zero,
		AvailableBalance: decimal.Zero,
		IsActive:         true,
		IsPrimary:        true,
	}
	if err := ledger.CreateWallet(fiat); err != nil {
		return nil, err
	}
	return fiat, nil
}

func (s *Service) getOrCreateHolding(repo repositories.CryptoRepository, userID, currencyID uint) (*models.CryptoWallet, error) {
	existing, err := repo.GetCryptoWalletByUserAndCurrency(userID, currencyID)
	if err == nil {
		return repo.GetCryptoWalletForUpdate(existing.ID)
	}
	if !errors.Is(err, errs.ErrCryptoWalletNotFound) {
		return nil, err
	}

	holding := &models.CryptoWallet{
		UserID:           userID,
		CurrencyID:       currencyID,
		Balance:          decimal.Zero,
		TotalInvestedUSD: decimal.Zero,
		AverageBuyPrice:  decimal.Zero,
	}
	if err := repo.CreateCryptoWallet(holding); err != nil {
		return nil, err
	}
	return holding, nil
}
