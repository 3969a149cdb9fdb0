package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"counseling-booking-api/internal/meet"
	"counseling-booking-api/internal/model"
	"counseling-booking-api/internal/store"
)

const DefaultMonthlyCap = 4

type BookingConfig struct {
	// MonthlyCap limits professional sessions per client per calendar month.
	MonthlyCap int
	// StrictSlots rejects appointments that do not consume a published slot.
	StrictSlots bool
}

// Booking creates appointments and manages their status.
type Booking struct {
	store  store.Store
	links  meet.Allocator
	clock  Clock
	cfg    BookingConfig
	logger *slog.Logger
}

func NewBooking(st store.Store, links meet.Allocator, clock Clock, cfg BookingConfig, logger *slog.Logger) *Booking {
	if clock == nil {
		clock = SystemClock{}
	}
	if cfg.MonthlyCap <= 0 {
		cfg.MonthlyCap = DefaultMonthlyCap
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Booking{store: st, links: links, clock: clock, cfg: cfg, logger: logger}
}

type AppointmentRequest struct {
	ClientID       string
	CounselorID    string
	StartTime      time.Time
	EndTime        time.Time
	IsProfessional bool
}

// CreateAppointment books a confirmed appointment. Reserving a matching slot
// is best effort unless StrictSlots is set.
func (b *Booking) CreateAppointment(ctx context.Context, req AppointmentRequest) (*model.Appointment, error) {
	var apt *model.Appointment
	err := b.store.Atomic(ctx, func(tx store.Store) error {
		if _, err := tx.GetUser(ctx, req.ClientID); err != nil {
			return notFound("client", req.ClientID, err)
		}
		if _, err := tx.GetCounselor(ctx, req.CounselorID); err != nil {
			return notFound("counselor", req.CounselorID, err)
		}

		now := b.clock.Now()
		if req.IsProfessional {
			from, to := monthBounds(now)
			n, err := tx.CountProfessional(ctx, req.ClientID, from, to)
			if err != nil {
				return fmt.Errorf("count professional sessions: %w", err)
			}
			if n >= b.cfg.MonthlyCap {
				b.logger.Info("professional session cap reached",
					slog.String("client_id", req.ClientID),
					slog.Int("count", n),
				)
				return ErrLimitExceeded
			}
		}

		link, err := b.links.Allocate(ctx)
		if err != nil {
			return fmt.Errorf("allocate meeting link: %w", err)
		}

		apt = &model.Appointment{
			ID:             uuid.New().String(),
			ClientID:       req.ClientID,
			CounselorID:    req.CounselorID,
			StartTime:      req.StartTime,
			EndTime:        req.EndTime,
			Status:         model.StatusConfirmed,
			MeetingLink:    &link,
			IsProfessional: req.IsProfessional,
			CreatedAt:      now,
		}

		reserved, err := tx.ReserveSlot(ctx, req.CounselorID, req.StartTime)
		if err != nil {
			return fmt.Errorf("reserve slot: %w", err)
		}
		if !reserved {
			if b.cfg.StrictSlots {
				return ErrSlotUnavailable
			}
			b.logger.Debug("no matching slot, booking ad hoc",
				slog.String("counselor_id", req.CounselorID),
				slog.Time("start_time", req.StartTime),
			)
		}

		if err := tx.CreateAppointment(ctx, apt); err != nil {
			return fmt.Errorf("store appointment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return apt, nil
}

func (b *Booking) GetAppointment(ctx context.Context, id string) (*model.Appointment, error) {
	a, err := b.store.GetAppointment(ctx, id)
	if err != nil {
		return nil, notFound("appointment", id, err)
	}
	return a, nil
}

// UserAppointments lists appointments where the user is the client or the
// counselor.
func (b *Booking) UserAppointments(ctx context.Context, userID string) ([]model.Appointment, error) {
	if _, err := b.store.GetUser(ctx, userID); err != nil {
		return nil, notFound("user", userID, err)
	}
	return b.store.UserAppointments(ctx, userID)
}

// UpdateStatus moves an appointment to a new status. Cancelled and completed
// appointments are final. The booked slot is kept either way.
func (b *Booking) UpdateStatus(ctx context.Context, id string, status model.AppointmentStatus) (*model.Appointment, error) {
	var apt *model.Appointment
	err := b.store.Atomic(ctx, func(tx store.Store) error {
		a, err := tx.GetAppointment(ctx, id)
		if err != nil {
			return notFound("appointment", id, err)
		}
		if a.Status.Terminal() || status == model.StatusPending {
			return fmt.Errorf("%s -> %s: %w", a.Status, status, ErrInvalidTransition)
		}
		if err := tx.UpdateAppointmentStatus(ctx, id, status); err != nil {
			return notFound("appointment", id, err)
		}
		a.Status = status
		apt = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return apt, nil
}

// monthBounds returns [first of month, first of next month) in now's zone.
func monthBounds(now time.Time) (time.Time, time.Time) {
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return from, from.AddDate(0, 1, 0)
}
