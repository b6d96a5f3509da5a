package query

import (
	"errors"
	"fmt"
)

// ErrValidation is wrapped by every error produced while parsing or
// planning a paged query.
var ErrValidation = errors.New("invalid query")

var (
	ErrInvalidPageRange = fmt.Errorf("%w: invalid page range", ErrValidation)
	ErrInvalidSortOrder = fmt.Errorf("%w: invalid sort order", ErrValidation)
	ErrPageOutOfBounds  = fmt.Errorf("%w: page out of bounds", ErrValidation)
)

type InvalidColumnError struct {
	Column string
}

func (e *InvalidColumnError) Error() string {
	return fmt.Sprintf("invalid sort column %q", e.Column)
}

func (e *InvalidColumnError) Unwrap() error {
	return ErrValidation
}
