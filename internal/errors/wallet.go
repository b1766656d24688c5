package errors

var (
	ErrInvalidAmount = &DomainError{
		Code:    "INVALID_AMOUNT",
		Message: "amount must be greater than zero",
	}
	ErrInvalidPin = &DomainError{
		Code:    "INVALID_PIN",
		Message: "invalid transaction PIN",
	}
	ErrInsufficientBalance = &DomainError{
		Code:    "INSUFFICIENT_BALANCE",
		Message: "insufficient wallet balance",
	}
	ErrWalletNotFound = &DomainError{
		Code:    "WALLET_NOT_FOUND",
		Message: "wallet not found",
	}
	ErrWalletInactive = &DomainError{
		Code:    "WALLET_INACTIVE",
		Message: "wallet is not active",
	}
	ErrRecipientNotFound = &DomainError{
		Code:    "RECIPIENT_NOT_FOUND",
		Message: "recipient not found",
	}
	ErrInvalidRecipient = &DomainError{
		Code:    "INVALID_RECIPIENT",
		Message: "cannot transfer to yourself",
	}
	ErrLimitExceeded = &DomainError{
		Code:    "LIMIT_EXCEEDED",
		Message: "transfer limit exceeded",
	}
	ErrDuplicateReference = &DomainError{
		Code:    "DUPLICATE_REFERENCE",
		Message: "transaction reference already exists",
	}
	ErrUserNotFound = &DomainError{
		Code:    "USER_NOT_FOUND",
		Message: "user not found",
	}
	ErrTransactionNotFound = &DomainError{
		Code:    "TRANSACTION_NOT_FOUND",
		Message: "transaction not found",
	}
)
