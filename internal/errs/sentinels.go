// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Domain validation sentinels. These are returned synchronously to the
// caller and block the local mutation; sync-layer failures never surface
// through them.
var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateTenant indicates the username is already taken
	// (case-insensitive).
	ErrDuplicateTenant = errors.New("username already registered")

	// ErrInvalidCredentials indicates a failed login or password check.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotApproved indicates the account exists but is not approved yet.
	ErrNotApproved = errors.New("account not approved")

	// ErrInsufficientStock indicates a sale would drive inventory below zero.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrForbidden indicates the active tenant may not perform the operation.
	ErrForbidden = errors.New("forbidden")

	// ErrNoSession indicates a missing or expired session token.
	ErrNoSession = errors.New("no active session")
)
