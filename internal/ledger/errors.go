// Package ledger implements the user balance/holdings mutations and the
// authentication-adjacent errors they can raise.
package ledger

import "errors"

// AuthError family: raised by registration/authentication collaborators
// and by ledger mutations invoked from inside a fill.
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrInvalidPassword   = errors.New("invalid password")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrWeakPassword      = errors.New("password does not meet minimum requirements")
	ErrNotVerified       = errors.New("account is not verified")
	ErrInsufficientFunds = errors.New("insufficient funds")
)

const MinPasswordLength = 6
