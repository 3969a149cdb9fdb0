package service

import (
	"context"
	"fmt"
	"time"

	"counseling-booking-api/internal/model"
	"counseling-booking-api/internal/store"
)

const DefaultWindow = 7 * 24 * time.Hour

// Availability answers open-slot queries and provisions new slots.
type Availability struct {
	store store.Store
	clock Clock
}

func NewAvailability(st store.Store, clock Clock) *Availability {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Availability{store: st, clock: clock}
}

// window fills in now and start+7d for missing bounds.
func (a *Availability) window(start, end *time.Time) (time.Time, time.Time) {
	from := a.clock.Now()
	if start != nil {
		from = *start
	}
	to := from.Add(DefaultWindow)
	if end != nil {
		to = *end
	}
	return from, to
}

// List returns unbooked slots across all counselors.
func (a *Availability) List(ctx context.Context, start, end *time.Time) ([]model.AvailabilitySlot, error) {
	from, to := a.window(start, end)
	return a.store.AvailableSlots(ctx, "", from, to)
}

// ForCounselor returns unbooked slots of one counselor.
func (a *Availability) ForCounselor(ctx context.Context, counselorID string, start, end *time.Time) ([]model.AvailabilitySlot, error) {
	if _, err := a.store.GetCounselor(ctx, counselorID); err != nil {
		return nil, notFound("counselor", counselorID, err)
	}
	from, to := a.window(start, end)
	return a.store.AvailableSlots(ctx, counselorID, from, to)
}

type SlotWindow struct {
	StartTime time.Time
	EndTime   time.Time
}

// Add publishes new unbooked slots for a counselor.
func (a *Availability) Add(ctx context.Context, counselorID string, windows []SlotWindow) ([]model.AvailabilitySlot, error) {
	if _, err := a.store.GetCounselor(ctx, counselorID); err != nil {
		return nil, notFound("counselor", counselorID, err)
	}
	slots := make([]model.AvailabilitySlot, len(windows))
	for i, w := range windows {
		slots[i] = model.AvailabilitySlot{CounselorID: counselorID, StartTime: w.StartTime, EndTime: w.EndTime}
	}
	if err := a.store.AddSlots(ctx, slots); err != nil {
		return nil, fmt.Errorf("add slots: %w", err)
	}
	return slots, nil
}
