package apikeys

import (
	"errors"
	"fmt"
)

// ErrorCode represents minter error categories.
type ErrorCode string

const (
	ErrCodeSigning        ErrorCode = "signing_failed"
	ErrCodeInvalidRole    ErrorCode = "invalid_role"
	ErrCodeInsecureSecret ErrorCode = "insecure_secret"
	ErrCodeInvalidConfig  ErrorCode = "invalid_config"
)

var errorMessages = map[ErrorCode]string{
	ErrCodeSigning:        "Signing failed",
	ErrCodeInvalidRole:    "Invalid role",
	ErrCodeInsecureSecret: "Insecure secret",
	ErrCodeInvalidConfig:  "Invalid config",
}

// Error wraps minter errors with a stable code and the role being minted.
type Error struct {
	Code    ErrorCode
	Role    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	base := e.Message
	if base == "" {
		base = string(e.Code)
	}
	if e.Role != "" {
		base = fmt.Sprintf("%s for role %q", base, e.Role)
	}
	if e.Err == nil {
		return base
	}
	return fmt.Sprintf("%s: %v", base, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// IsSigningError reports whether err is a failure of the signing primitive.
func IsSigningError(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeSigning
}

func newError(code ErrorCode, role string, err error) error {
	msg, ok := errorMessages[code]
	if !ok {
		msg = string(code)
	}
	return &Error{Code: code, Role: role, Message: msg, Err: err}
}
