package token

import "errors"

// Token-related errors.
var (
	// ErrSecretMissing indicates the signing secret is absent or empty.
	// This is a startup-time configuration failure, not a per-request error.
	ErrSecretMissing = errors.New("signing secret is missing")

	// ErrTokenExpired indicates the token has expired.
	ErrTokenExpired = errors.New("token has expired")

	// ErrTokenNotYetValid indicates the token is not yet valid (iat in future).
	ErrTokenNotYetValid = errors.New("token is not yet valid")

	// ErrTokenMalformed indicates the token format is invalid.
	ErrTokenMalformed = errors.New("token is malformed")

	// ErrTokenInvalidSig indicates the token signature is invalid.
	ErrTokenInvalidSig = errors.New("token signature is invalid")
)

// IsVerificationError returns true if the error came from verifying a
// presented token, as opposed to a configuration or signing failure.
func IsVerificationError(err error) bool {
	return errors.Is(err, ErrTokenExpired) ||
		errors.Is(err, ErrTokenNotYetValid) ||
		errors.Is(err, ErrTokenMalformed) ||
		errors.Is(err, ErrTokenInvalidSig)
}
