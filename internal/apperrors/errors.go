package apperrors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Kinds. Every error returned by the services wraps exactly one of these.
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
	ErrInvalid      = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrTransient    = errors.New("store unavailable")
)

// Hiring and bidding
var (
	ErrBidNotFound  = fmt.Errorf("%w: bid not found", ErrNotFound)
	ErrGigNotFound  = fmt.Errorf("%w: gig not found", ErrNotFound)
	ErrNotGigOwner  = fmt.Errorf("%w: only the gig owner may hire", ErrForbidden)
	ErrOwnGig       = fmt.Errorf("%w: cannot bid on your own gig", ErrForbidden)
	ErrAlreadyHired = fmt.Errorf("%w: already hired", ErrConflict)
	ErrGigAssigned  = fmt.Errorf("%w: gig already assigned", ErrConflict)
	ErrSelfBid      = fmt.Errorf("%w: bid belongs to the gig owner", ErrConflict)
	ErrGigNotOpen   = fmt.Errorf("%w: gig is not open for bids", ErrConflict)
)

// Accounts
var (
	ErrUserNotFound   = fmt.Errorf("%w: user not found", ErrNotFound)
	ErrEmailTaken     = fmt.Errorf("%w: user exists", ErrConflict)
	ErrBadCredentials = fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
)

// Invalid wraps a validation message in ErrInvalid.
func Invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalid, msg)
}

// Transient wraps a store failure so callers can tell it is safe to retry.
func Transient(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrTransient, err)
}

// HTTPStatus maps an error kind onto the status code the API returns.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, ErrConflict), errors.Is(err, ErrInvalid):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, ErrTransient):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

// Message is the client-facing text for err: the detail after the kind,
// without the "op:" prefixes added while wrapping. Unknown errors are not
// echoed.
func Message(err error) string {
	for _, kind := range []error{ErrNotFound, ErrForbidden, ErrConflict, ErrInvalid, ErrUnauthorized} {
		if errors.Is(err, kind) {
			return detail(err, kind)
		}
	}
	if errors.Is(err, ErrTransient) {
		return "service temporarily unavailable, please retry"
	}
	return "internal server error"
}

func detail(err, kind error) string {
	text := err.Error()
	marker := kind.Error() + ": "
	if i := strings.Index(text, marker); i >= 0 {
		return text[i+len(marker):]
	}
	return kind.Error()
}
