package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"counseling-booking-api/internal/model"
	"counseling-booking-api/internal/screening"
	"counseling-booking-api/internal/store"
)

// Screening records the one-time intake triage per user.
type Screening struct {
	store store.Store
	clock Clock
}

func NewScreening(st store.Store, clock Clock) *Screening {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Screening{store: st, clock: clock}
}

// Submit classifies answers and stores the result. A user who was already
// screened gets the stored record back unchanged.
func (s *Screening) Submit(ctx context.Context, userID string, answers []string) (*model.InitialScreening, error) {
	var out *model.InitialScreening
	err := s.store.Atomic(ctx, func(tx store.Store) error {
		if _, err := tx.GetUser(ctx, userID); err != nil {
			return notFound("user", userID, err)
		}

		existing, err := tx.ScreeningByUser(ctx, userID)
		if err == nil {
			out = existing
			return nil
		}
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		result, notes := screening.Classify(answers)
		sc := &model.InitialScreening{
			ID:        uuid.New().String(),
			UserID:    userID,
			Result:    result,
			Notes:     &notes,
			CreatedAt: s.clock.Now(),
		}
		if err := tx.CreateScreening(ctx, sc); err != nil {
			return fmt.Errorf("store screening: %w", err)
		}
		out = sc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Screening) Get(ctx context.Context, userID string) (*model.InitialScreening, error) {
	if _, err := s.store.GetUser(ctx, userID); err != nil {
		return nil, notFound("user", userID, err)
	}
	sc, err := s.store.ScreeningByUser(ctx, userID)
	if err != nil {
		return nil, notFound("screening", userID, err)
	}
	return sc, nil
}
