package store

import "errors"

var (
	// ErrInvalidToken covers both a secret that never matched a token
	// and a token already redeemed. The two are indistinguishable on
	// purpose, so callers cannot probe which tokens exist.
	ErrInvalidToken = errors.New("invalid or already used token")

	// ErrUserNotFound is returned when an operation references a user
	// id with no backing row.
	ErrUserNotFound = errors.New("user not found")
)
