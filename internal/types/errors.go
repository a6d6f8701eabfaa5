package types

import "errors"

// ErrInvalidInput marks precondition violations (zero or negative days or
// members). It is the only error kind surfaced to the caller of the planner.
var ErrInvalidInput = errors.New("invalid input")

// ErrUpstreamUnavailable marks any network or service failure in geocoding,
// spatial queries or weather. It never crosses the planner boundary: every
// consumer collapses it into a fallback value. Keeping it explicit makes the
// failure loggable instead of silently discarded.
var ErrUpstreamUnavailable = errors.New("upstream unavailable")

// ErrNotFound marks a lookup of a stored record that does not exist.
// Handlers map it to a 404.
var ErrNotFound = errors.New("not found")
