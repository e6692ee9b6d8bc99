package apperr

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure classes the API distinguishes. Services wrap
// these with context; the HTTP layer maps them to status codes with errors.Is.
var (
	ErrUnauthenticated = errors.New("not authenticated")
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUpstream marks a degraded inference dependency. It is absorbed into
	// placeholder values for generation/classification calls and only surfaced
	// when the primary artifact itself cannot be processed.
	ErrUpstream = errors.New("upstream degraded")
)

func NotFoundf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
}

func InvalidArgumentf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrInvalidArgument)...)
}

func Upstreamf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrUpstream)...)
}
