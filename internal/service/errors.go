// Package service implements the ingestion pipeline, the vote ledger and
// the catalog read paths on top of the database.
package service

import "errors"

var (
	// ErrNotFound means no pending ingestion, video or comment matched
	ErrNotFound = errors.New("not found")

	// ErrAlreadyVoted is an expected outcome, not a failure: the user
	// already cast this vote today and nothing was changed
	ErrAlreadyVoted = errors.New("already voted today")

	// ErrValidation covers malformed identifiers and selectors
	ErrValidation = errors.New("invalid input")

	// ErrCodeConflict is returned when activation code generation keeps
	// colliding after the internal retries are exhausted
	ErrCodeConflict = errors.New("could not generate a unique activation code")

	// ErrResponseConflict is returned when a CIS callback tries to change
	// an outcome that was already recorded
	ErrResponseConflict = errors.New("conflicting ingestion outcome already recorded")

	// ErrExternalService wraps timeouts, unreachable hosts and non-2xx
	// answers from the CIS. Never retried automatically.
	ErrExternalService = errors.New("content ingestion service error")
)
