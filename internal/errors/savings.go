package errors

var (
	ErrSavingsAccountNotFound = &DomainError{
		Code:    "SAVINGS_ACCOUNT_NOT_FOUND",
		Message: "savings account not found",
	}
	ErrSavingsProductNotFound = &DomainError{
		Code:    "SAVINGS_PRODUCT_NOT_FOUND",
		Message: "savings product not found",
	}
	ErrInsufficientSavingsBalance = &DomainError{
		Code:    "INSUFFICIENT_SAVINGS_BALANCE",
		Message: "insufficient savings balance",
	}
	ErrBelowMinimumDeposit = &DomainError{
		Code:    "BELOW_MINIMUM_DEPOSIT",
		Message: "deposit is below the product minimum",
	}
	ErrAboveMaximumDeposit = &DomainError{
		Code:    "ABOVE_MAXIMUM_DEPOSIT",
		Message: "deposit is above the product maximum",
	}
	ErrWithdrawalLocked = &DomainError{
		Code:    "WITHDRAWAL_LOCKED",
		Message: "cannot withdraw from locked account before maturity",
	}
	ErrSavingsAccountClosed = &DomainError{
		Code:    "SAVINGS_ACCOUNT_CLOSED",
		Message: "savings account is closed",
	}
)
