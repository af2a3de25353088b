// Package errors declares the sentinel errors shared across the service.
// Two category sentinels split failures the way the HTTP layer needs them:
// ErrValidation for caller mistakes (400) and ErrUpstream for dependency
// failures (500). Specific sentinels wrap their category so callers can
// match either level with errors.Is.
package errors

import "fmt"

var (
	ErrValidation = fmt.Errorf("validation failed")
	ErrUpstream   = fmt.Errorf("upstream dependency failed")

	ErrMessageEmpty   = fmt.Errorf("%w: text or image required", ErrValidation)
	ErrMessageTooLong = fmt.Errorf("%w: message content too long", ErrValidation)
	ErrNotAnImage     = fmt.Errorf("%w: payload is not an image", ErrValidation)

	ErrUserAlreadyExists  = fmt.Errorf("%w: user already exists", ErrValidation)
	ErrInvalidPassword    = fmt.Errorf("%w: password does not meet requirements", ErrValidation)
	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", ErrValidation)

	ErrUserNotFound    = fmt.Errorf("user not found")
	ErrTokenGeneration = fmt.Errorf("token generation failed")
)
