package service

import (
	"errors"
	"fmt"
)

var (
	ErrValidation        = errors.New("validation failed")
	ErrUserNameTaken     = errors.New("user name already taken")
	ErrUserNotFound      = errors.New("user not found")
	ErrUserNotConfirmed  = errors.New("user is not confirmed")
	ErrNotFound          = errors.New("not found")
	ErrAlreadyExists     = errors.New("already exists")
	ErrSearchUnavailable = errors.New("search is not configured")

	ErrKeyMismatch   = fmt.Errorf("%w: body key does not match path key", ErrValidation)
	ErrValueMissing  = fmt.Errorf("%w: at least one value is required", ErrValidation)
	ErrBaseLangClear = fmt.Errorf("%w: the english value cannot be removed", ErrValidation)
)
