package service

import (
	"errors"

	"github.com/emrgen/jobpost/internal/store"
)

var (
	// ErrInvalidArgument is returned when a request fails validation.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = store.ErrNotFound
	// ErrVersionConflict is returned when an update names a stale version.
	ErrVersionConflict = errors.New("job post was updated by someone else, please refresh")
	// ErrJobPostCorrupted is returned when stored blocks cannot be decoded.
	ErrJobPostCorrupted = errors.New("job post blocks are corrupted")
	// ErrChatNotConfigured is returned when no generative model api key is set.
	ErrChatNotConfigured = errors.New("chat is not configured")
)
