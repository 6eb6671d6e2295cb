// Package validators contains validators found throughout the application
// that have been abstracted away from the main code
package validators

import (
	"errors"
	"net/mail"
	"strings"
)

// MaxEmailLen is the SMTP mailbox limit from RFC 5321
const MaxEmailLen = 254

var (
	ErrEmailEmpty   = errors.New("no email address provided")
	ErrEmailTooLong = errors.New("email address is too long")
	ErrEmailInvalid = errors.New("invalid email address provided")
)

// EmailValidator accepts a single bare address. Display names and
// address lists are rejected since accounts store the address alone.
func EmailValidator(e string) error {
	if e == "" {
		return ErrEmailEmpty
	}

	if len(e) > MaxEmailLen {
		return ErrEmailTooLong
	}

	addr, err := mail.ParseAddress(e)
	if err != nil || !strings.EqualFold(addr.Address, e) {
		return ErrEmailInvalid
	}

	return nil
}
