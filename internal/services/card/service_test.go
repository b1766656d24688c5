package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidCardNumber(t *testing.T) {
	tests := []struct {
		name   string
		number string
		want   bool
	}{
		{"visa test number", "4242424242424242", true},
		{"mastercard test number", "5555555555554444", true},
		{"luhn failure", "4242424242424241", false},
		{"too short", "42424242424", false},
		{"non numeric", "4242abcd42424242", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidCardNumber(tt.number))
		})
	}
}

func TestTokenizePassesThroughTestTokens(t *testing.T) {
	got, err := Tokenize(TopUpInput{
		CardNumber:  "tok_visa",
		ExpiryMonth: "12",
		ExpiryYear:  "2030",
	})
	assert.NoError(t, err)
	assert.Equal(t, "tok_visa", got.Token)
	assert.Equal(t, "Visa", got.CardType)
	assert.Equal(t, "12/2030", got.Expiry)
}

func TestTokenizeRejectsBadLuhn(t *testing.T) {
	_, err := Tokenize(TopUpInput{
		CardNumber:  "4242424242424241",
		ExpiryMonth: "12",
		ExpiryYear:  "2030",
	})
	assert.Error(t, err)
}
