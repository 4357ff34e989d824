package validators

import "errors"

var (
	ErrUnsupportedType  = errors.New("unsupported type for validation")
	ErrUnknownValidator = errors.New("unknown password validator")

	ErrInvalidPassword    = errors.New("invalid password")
	ErrPasswordTooSimilar = errors.New("the password is too similar to the user attributes")
	ErrPasswordTooShort   = errors.New("this password is too short")
	ErrPasswordTooCommon  = errors.New("this password is too common")
	ErrPasswordNumeric    = errors.New("this password is entirely numeric")
)
