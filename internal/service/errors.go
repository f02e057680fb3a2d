package service

import "errors"

var (
	ErrInvalidEmail = errors.New("invalid email address")
	ErrInvalidPhone = errors.New("invalid phone number")

	ErrCodeNotFound    = errors.New("verification code not found")
	ErrCodeExpired     = errors.New("verification code expired")
	ErrCodeMismatch    = errors.New("verification code does not match")
	ErrCodeConsumed    = errors.New("verification code already used")
	ErrTooManyAttempts = errors.New("too many verification attempts")

	ErrRecordNotFound    = errors.New("record not found")
	ErrInvalidTransition = errors.New("review is already finalized")

	// ErrDispatchFailed deliberately hides the transport error; the cause is
	// logged where the dispatch happened.
	ErrDispatchFailed = errors.New("notification dispatch failed")
)
