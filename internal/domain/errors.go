package domain

import "errors"

// Error taxonomy shared by services and handlers. Repos surface storage
// errors; services translate them into one of these before they reach HTTP.
var (
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrConflict   = errors.New("already exists")
	ErrBadCreds   = errors.New("invalid email or password")
	ErrOwnListing = errors.New("cannot message your own listing")
)

// ValidationError rejects malformed input before any store access.
type ValidationError struct {
	Msg string
}

func (e ValidationError) Error() string { return e.Msg }

func Invalid(msg string) error { return ValidationError{Msg: msg} }

func IsValidation(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}
