package repository

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownType    = errors.New("unknown transaction type")
	ErrInvalidID      = errors.New("invalid id")
	ErrMissingAmount  = errors.New("missing amount data")
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrNegativeAmount = errors.New("negative amount")
)

// RowError is a CSV row that could not be converted into a transaction
type RowError struct {
	Line int
	Row  []string
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("parsing line number %d [%s]: %v", e.Line, strings.Join(e.Row, ", "), e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }
