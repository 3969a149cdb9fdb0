// Package store persists users, counselor profiles, availability slots,
// appointments and screenings.
package store

import (
	"context"
	"errors"
	"time"

	"counseling-booking-api/internal/model"
)

var ErrNotFound = errors.New("not found")

// Store is the persistence boundary used by the services.
//
// Atomic runs fn against a view of the store with all other Atomic callers
// excluded, so a read followed by a write inside fn is not interleaved with
// another booking or screening.
type Store interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	GetUser(ctx context.Context, id string) (*model.User, error)
	CreateUser(ctx context.Context, u *model.User) error

	ListCounselors(ctx context.Context) ([]model.CounselorProfile, error)
	GetCounselor(ctx context.Context, id string) (*model.CounselorProfile, error)
	CreateCounselor(ctx context.Context, c *model.CounselorProfile) error

	AddSlots(ctx context.Context, slots []model.AvailabilitySlot) error
	// AvailableSlots returns unbooked slots starting within [start, end],
	// ordered by start time. An empty counselorID matches every counselor.
	AvailableSlots(ctx context.Context, counselorID string, start, end time.Time) ([]model.AvailabilitySlot, error)
	// ReserveSlot books the first unbooked slot of the counselor starting
	// exactly at start and reports whether one was found.
	ReserveSlot(ctx context.Context, counselorID string, start time.Time) (bool, error)

	CreateAppointment(ctx context.Context, a *model.Appointment) error
	GetAppointment(ctx context.Context, id string) (*model.Appointment, error)
	UpdateAppointmentStatus(ctx context.Context, id string, status model.AppointmentStatus) error
	// UserAppointments returns appointments where userID is the client or
	// owns the counselor profile, ordered by start time.
	UserAppointments(ctx context.Context, userID string) ([]model.Appointment, error)
	// CountProfessional counts the client's non-cancelled professional
	// appointments starting within [from, to).
	CountProfessional(ctx context.Context, clientID string, from, to time.Time) (int, error)

	CreateScreening(ctx context.Context, s *model.InitialScreening) error
	ScreeningByUser(ctx context.Context, userID string) (*model.InitialScreening, error)

	Atomic(ctx context.Context, fn func(Store) error) error
}
