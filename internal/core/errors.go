package core

import "errors"

var (
	ErrMissingField  = errors.New("missing field")
	ErrInvalidAmount = errors.New("invalid amount")
)

// ValidationError carries what the form dialog shows for a rejected
// submission. It unwraps to ErrMissingField or ErrInvalidAmount.
type ValidationError struct {
	Err     error
	Title   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Title + ": " + e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// MissingFieldError is returned when description, kind or amount is absent.
func MissingFieldError() *ValidationError {
	return &ValidationError{
		Err:     ErrMissingField,
		Title:   "Validation Error",
		Message: "All fields are required!",
	}
}

// InvalidAmountError is returned when the amount text is not a number.
func InvalidAmountError() *ValidationError {
	return &ValidationError{
		Err:     ErrInvalidAmount,
		Title:   "Invalid Input",
		Message: "Amount must be a number!",
	}
}

// AsValidation unwraps err into a *ValidationError. Bare sentinels are
// promoted to their dialog form.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	switch {
	case errors.Is(err, ErrMissingField):
		return MissingFieldError(), true
	case errors.Is(err, ErrInvalidAmount):
		return InvalidAmountError(), true
	}
	return nil, false
}
