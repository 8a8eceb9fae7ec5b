package errors

import "errors"

// Sentinel errors used by infrastructure packages.
var (
	ErrTokenGeneratorNotInitialized = errors.New("token generator not initialized")
	ErrUnexpectedSigningMethod      = errors.New("unexpected token signing method")
	ErrInvalidToken                 = errors.New("invalid token")
	ErrInvalidTokenClaims           = errors.New("invalid token claims")
	ErrInvalidTokenType             = errors.New("invalid token type")
	ErrUserIDNotFound               = errors.New("user id not found in token")
)

// SkipMessageError tells a consumer to ack a message without processing it
// (duplicate delivery, stale payload). Consumers must not requeue on it.
type SkipMessageError struct {
	Reason string
}

func (e *SkipMessageError) Error() string {
	return "message skipped: " + e.Reason
}

// IsSkipMessage reports whether err is a SkipMessageError.
func IsSkipMessage(err error) bool {
	var skip *SkipMessageError
	return errors.As(err, &skip)
}
