package errors

var (
	ErrCryptoCurrencyNotFound = &DomainError{
		Code:    "CRYPTO_CURRENCY_NOT_FOUND",
		Message: "cryptocurrency not found",
	}
	ErrCryptoWalletNotFound = &DomainError{
		Code:    "CRYPTO_WALLET_NOT_FOUND",
		Message: "crypto wallet not found",
	}
	ErrInsufficientCryptoBalance = &DomainError{
		Code:    "INSUFFICIENT_CRYPTO_BALANCE",
		Message: "insufficient crypto balance",
	}
)
