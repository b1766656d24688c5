package card

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/token"

	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/models"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/services/wallet"
)

// TopUpInput is a card-funded deposit request.
type TopUpInput struct {
	CardNumber  string          `json:"card_number"`
	ExpiryMonth string          `json:"expiry_month"`
	ExpiryYear  string          `json:"expiry_year"`
	CVV         string          `json:"cvv"`
	Amount      decimal.Decimal `json:"amount"`
}

// CardToken is the tokenized card returned by the payment processor.
type CardToken struct {
	Token    string `json:"token"`
	CardType string `json:"card_type"`
	Expiry   string `json:"expiry"`
}

// Service funds wallets from cards via Stripe tokenization.
type Service struct {
	wallets *wallet.Service
}

func NewService(wallets *wallet.Service) *Service {
	return &Service{wallets: wallets}
}

// TopUp tokenizes the card and credits the user's wallet with the amount.
func (s *Service) TopUp(userID, walletID uint, input TopUpInput) (*models.Transaction, error) {
	cardToken, err := Tokenize(input)
	if err != nil {
		return nil, err
	}

	description := fmt.Sprintf("Card top-up (%s ending %s)", cardToken.CardType, lastFour(input.CardNumber))
	return s.wallets.Deposit(userID, walletID, input.Amount, description)
}

// Tokenize validates the card and exchanges it for a Stripe token. Stripe
// test tokens (tok_*) pass through untouched so the sandbox flow works
// without real card data.
func Tokenize(input TopUpInput) (*CardToken, error) {
	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")

	if strings.HasPrefix(input.CardNumber, "tok_") {
		cardType := "Unknown"
		switch input.CardNumber {
		case "tok_visa":
			cardType = "Visa"
		case "tok_mastercard":
			cardType = "Mastercard"
		case "tok_amex":
			cardType = "American Express"
		case "tok_discover":
			cardType = "Discover"
		}
		return &CardToken{
			Token:    input.CardNumber,
			CardType: cardType,
			Expiry:   fmt.Sprintf("%s/%s", input.ExpiryMonth, input.ExpiryYear),
		}, nil
	}

	if !ValidCardNumber(input.CardNumber) {
		return nil, errors.New("invalid card number: failed validation check")
	}
	month, _ := strconv.Atoi(input.ExpiryMonth)
	year, _ := strconv.Atoi(input.ExpiryYear)
	if !validExpiry(month, year) {
		return nil, errors.New("card is expired")
	}

	params := &stripe.TokenParams{
		Card: &stripe.CardParams{
			Number:   &input.CardNumber,
			ExpMonth: &input.ExpiryMonth,
			ExpYear:  &input.ExpiryYear,
			CVC:      &input.CVV,
		},
	}
	stripeToken, err := token.New(params)
	if err != nil {
		log.Printf("stripe tokenization error: %v", err)
		return nil, fmt.Errorf("stripe tokenization failed: %w", err)
	}

	return &CardToken{
		Token:    stripeToken.ID,
		CardType: string(stripeToken.Card.Brand),
		Expiry:   fmt.Sprintf("%s/%s", input.ExpiryMonth, input.ExpiryYear),
	}, nil
}

// ValidCardNumber runs the Luhn check over the card number.
func ValidCardNumber(cardNumber string) bool {
	if len(cardNumber) < 12 {
		return false
	}

	var sum int
	shouldDouble := false
	for i := len(cardNumber) - 1; i >= 0; i-- {
		if cardNumber[i] < '0' || cardNumber[i] > '9' {
			return false
		}
		digit := int(cardNumber[i] - '0')
		if shouldDouble {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		shouldDouble = !shouldDouble
	}
	return sum%10 == 0
}

func validExpiry(month, year int) bool {
	if month < 1 || month > 12 {
		return false
	}
	currentYear, currentMonth, _ := time.Now().Date()
	if year < currentYear || (year == currentYear && month < int(currentMonth)) {
		return false
	}
	return true
}

func lastFour(cardNumber string) string {
	if strings.HasPrefix(cardNumber, "tok_") || len(cardNumber) < 4 {
		return "****"
	}
	return cardNumber[len(cardNumber)-4:]
}
