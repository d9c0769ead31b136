package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidAmount indicates a non-positive or unparsable money amount.
var ErrInvalidAmount = errors.New("invalid amount")

// ErrInvalidAccountKind indicates an unrecognized account kind token.
var ErrInvalidAccountKind = errors.New("invalid account kind")

// ErrInsufficientFunds indicates a debit that would take a balance below zero.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrStoreUnavailable indicates that the durable commit could not complete.
// The failed operation left no partial state behind and is safe to retry.
var ErrStoreUnavailable = errors.New("ledger store unavailable")
