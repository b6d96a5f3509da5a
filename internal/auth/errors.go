package auth

import (
	"errors"
	"fmt"
)

var (
	ErrSignatureInvalid        = errors.New("token signature is invalid")
	ErrInvalidCredentials      = errors.New("invalid credentials")
	ErrInvalidCredentialFormat = errors.New("invalid credential format")
	ErrUserWithoutID           = errors.New("user has no id assigned")
	ErrInvalidRole             = errors.New("invalid role")
)

type MissingClaimError struct {
	Claim string
}

func (e *MissingClaimError) Error() string {
	return fmt.Sprintf("claim %q is missing", e.Claim)
}

type InvalidFormatError struct {
	Claim string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("claim %q has invalid format", e.Claim)
}

// TokenExpiredError reports how many seconds ago the token expired.
type TokenExpiredError struct {
	Seconds uint64
}

func (e *TokenExpiredError) Error() string {
	return fmt.Sprintf("token expired %d seconds ago", e.Seconds)
}
