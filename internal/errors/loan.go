package errors

var (
	ErrLoanNotFound = &DomainError{
		Code:    "LOAN_NOT_FOUND",
		Message: "loan not found",
	}
	ErrLoanProductNotFound = &DomainError{
		Code:    "LOAN_PRODUCT_NOT_FOUND",
		Message: "loan product not found",
	}
	ErrLoanOutOfRange = &DomainError{
		Code:    "LOAN_OUT_OF_RANGE",
		Message: "loan amount or tenure is outside the product bounds",
	}
	ErrActiveLoanExists = &DomainError{
		Code:    "ACTIVE_LOAN_EXISTS",
		Message: "an active loan already exists; repay it before applying again",
	}
	ErrLoanStateConflict = &DomainError{
		Code:    "LOAN_STATE_CONFLICT",
		Message: "loan is not in a state that permits this operation",
	}
)
