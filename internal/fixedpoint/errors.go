package fixedpoint

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidFormat     = errors.New("invalid fixed point format")
	ErrInvalidNumber     = errors.New("invalid number format")
	ErrPrecisionExceeded = errors.New("precision exceeded")
	ErrOverflow          = errors.New("fixed point overflow")
)

// PrecisionExceededError reports a fractional part longer than the scheme scale.
type PrecisionExceededError struct {
	Precision int
	Requested int
}

func (e *PrecisionExceededError) Error() string {
	return fmt.Sprintf("exceeded precision while parsing: supported precision %d, parsed precision %d",
		e.Precision, e.Requested)
}

func (e *PrecisionExceededError) Is(target error) bool { return target == ErrPrecisionExceeded }

// InvalidNumberError reports text that is not a number or does not fit the scheme.
// Err is ErrOverflow for out of range input, nil otherwise.
type InvalidNumberError struct {
	Text string
	Err  error
}

func (e *InvalidNumberError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid number format %q: %v", e.Text, e.Err)
	}
	return fmt.Sprintf("invalid number format %q", e.Text)
}

func (e *InvalidNumberError) Is(target error) bool { return target == ErrInvalidNumber }
func (e *InvalidNumberError) Unwrap() error        { return e.Err }
