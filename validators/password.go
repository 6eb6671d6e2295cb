package validators

import "errors"

const (
	MinPasswordLen = 8
	// Plaintext cap, keeps the argon2 input bounded
	MaxPasswordLen = 255
)

var (
	ErrPasswordTooShort = errors.New("password must be at least 8 characters long")
	ErrPasswordTooLong  = errors.New("password is too long")
	ErrPasswordEmpty    = errors.New("no password provided")
)

func PasswordValidator(p string) error {
	if p == "" {
		return ErrPasswordEmpty
	}

	if len(p) < MinPasswordLen {
		return ErrPasswordTooShort
	}

	if len(p) > MaxPasswordLen {
		return ErrPasswordTooLong
	}

	return nil
}
