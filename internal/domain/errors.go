package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Both configuration errors are caller-misuse conditions, not transient
// failures — they are never retried.

var (
	// ErrNoLimitsConfigured is returned when daily evaluation runs before
	// any app limit has been configured.
	ErrNoLimitsConfigured = errors.New("no daily limits configured")

	// ErrEmptyCatalog is returned when intervention selection runs against
	// an empty intervention catalog.
	ErrEmptyCatalog = errors.New("intervention catalog is empty")

	// ErrNotTargetApp is returned when a limit is set for an app outside
	// the target set.
	ErrNotTargetApp = errors.New("app is not in the target set")

	// ErrNegativeLimit is returned when a daily limit below zero is set.
	ErrNegativeLimit = errors.New("daily limit must be >= 0")

	// ErrNegativeMinutes is returned when a usage sample reports negative
	// minutes.
	ErrNegativeMinutes = errors.New("usage minutes must be >= 0")
)
