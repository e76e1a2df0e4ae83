package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the caller lacks the role required for the operation.
var ErrForbidden = errors.New("operation not permitted")

// ErrInvalidAmount indicates a non-positive amount on a balance mutation.
var ErrInvalidAmount = errors.New("invalid amount")

// ErrInsufficientFunds indicates a withdrawal that would drive the balance negative.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrAccountNotActive indicates a balance mutation against an account that is not ACTIVE.
var ErrAccountNotActive = errors.New("account is locked, please contact a branch for activation")

// ErrInvalidState indicates a status transition not allowed by the account state machine.
var ErrInvalidState = errors.New("operation not valid for current account status")

// ErrInvalidRange indicates a statement query whose start date is after its end date.
var ErrInvalidRange = errors.New("invalid start date and end date")

// ErrSameAccount indicates a transfer whose source and destination are the same account.
var ErrSameAccount = errors.New("cannot transfer to the same account")
