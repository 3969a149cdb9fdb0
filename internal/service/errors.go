package service

import (
	"errors"

	"counseling-booking-api/internal/store"
)

var (
	// ErrNotFound matches every NotFoundError.
	ErrNotFound          = store.ErrNotFound
	ErrLimitExceeded     = errors.New("monthly limit for professional counseling sessions reached")
	ErrSlotUnavailable   = errors.New("no available slot at the requested time")
	ErrInvalidTransition = errors.New("invalid appointment status transition")
)

// NotFoundError names the missing entity, e.g. "client" or "counselor".
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string { return e.Entity + " not found" }

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

func notFound(entity, id string, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return &NotFoundError{Entity: entity, ID: id}
	}
	return err
}
