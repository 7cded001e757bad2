// internal/domain/entity/errors.go
package entity

import "errors"

// Error taxonomy for the sync pipeline. Lower layers wrap these sentinels
// with fmt.Errorf("...: %w", ...); the sync usecase is the only place that
// classifies them into user-facing messages.
var (
	// ErrConfiguration marks a missing or invalid provider credential.
	// Surfaced at fetch time, never at startup.
	ErrConfiguration = errors.New("provider credential is not configured")

	// ErrTransport marks a network or provider failure.
	ErrTransport = errors.New("provider unreachable")

	// ErrParse marks a provider response that could not be decoded into
	// an arrivals array.
	ErrParse = errors.New("provider response is not a valid arrivals array")

	// ErrFormat marks a malformed HH:mm time string. Internal data-quality
	// defect; callers degrade to "delay unknown" instead of failing.
	ErrFormat = errors.New("malformed time of day")
)
