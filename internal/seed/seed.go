// Package seed fills a store with synthetic demo data.
package seed

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"counseling-booking-api/internal/meet"
	"counseling-booking-api/internal/model"
	"counseling-booking-api/internal/store"
)

const (
	clients          = 5
	counselors       = 5
	professionals    = 3 // the first counselors are professionals
	professionalRate = 50.0
	slotDays         = 7
	slotKeepRatio    = 0.7
	seededBookings   = 3
)

var slotHours = []int{9, 11, 13, 15, 17}

type Options struct {
	Now   time.Time
	Rand  *rand.Rand
	Links meet.Allocator
}

// Summary reports what was written.
type Summary struct {
	ClientIDs    []string
	CounselorIDs []string
	Slots        int
	Appointments int
}

// Load writes demo users, counselor profiles, hourly slots for the coming
// week and a few confirmed appointments.
func Load(ctx context.Context, st store.Store, opts Options) (*Summary, error) {
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(uint64(opts.Now.UnixNano()), 0))
	}
	if opts.Links == nil {
		opts.Links = meet.Stub{}
	}
	sum := &Summary{}

	for i := range clients {
		u := &model.User{
			ID:        uuid.NewString(),
			Name:      fmt.Sprintf("Client %d", i+1),
			Email:     fmt.Sprintf("client%d@example.com", i+1),
			Role:      model.RoleClient,
			CreatedAt: opts.Now,
		}
		if err := st.CreateUser(ctx, u); err != nil {
			return nil, fmt.Errorf("seed client: %w", err)
		}
		sum.ClientIDs = append(sum.ClientIDs, u.ID)
	}

	profiles := make([]*model.CounselorProfile, 0, counselors)
	for i := range counselors {
		u := &model.User{
			ID:        uuid.NewString(),
			Name:      fmt.Sprintf("Counselor %d", i+1),
			Email:     fmt.Sprintf("counselor%d@example.com", i+1),
			Role:      model.RoleCounselor,
			CreatedAt: opts.Now,
		}
		if err := st.CreateUser(ctx, u); err != nil {
			return nil, fmt.Errorf("seed counselor user: %w", err)
		}

		pro := i < professionals
		c := &model.CounselorProfile{
			ID:             uuid.NewString(),
			UserID:         u.ID,
			Bio:            "Experienced counselor specializing in various areas. Here to help!",
			Specialties:    pickSpecialties(opts.Rand, 3),
			IsProfessional: pro,
			AvailableSlots: []time.Time{},
		}
		if pro {
			rate := professionalRate
			c.HourlyRate = &rate
		}
		if err := st.CreateCounselor(ctx, c); err != nil {
			return nil, fmt.Errorf("seed counselor profile: %w", err)
		}
		profiles = append(profiles, c)
		sum.CounselorIDs = append(sum.CounselorIDs, c.ID)

		slots := weekOfSlots(c.ID, opts.Now, opts.Rand)
		if err := st.AddSlots(ctx, slots); err != nil {
			return nil, fmt.Errorf("seed slots: %w", err)
		}
		sum.Slots += len(slots)
	}

	for i := range seededBookings {
		c := profiles[i]
		start := opts.Now.Add(time.Duration(i+1)*24*time.Hour + 10*time.Hour)
		link, err := opts.Links.Allocate(ctx)
		if err != nil {
			return nil, err
		}
		a := &model.Appointment{
			ID:             uuid.NewString(),
			ClientID:       sum.ClientIDs[i],
			CounselorID:    c.ID,
			StartTime:      start,
			EndTime:        start.Add(time.Hour),
			Status:         model.StatusConfirmed,
			MeetingLink:    &link,
			IsProfessional: c.IsProfessional,
			CreatedAt:      opts.Now,
		}
		if err := st.CreateAppointment(ctx, a); err != nil {
			return nil, fmt.Errorf("seed appointment: %w", err)
		}
		sum.Appointments++
	}
	return sum, nil
}

func pickSpecialties(r *rand.Rand, k int) []model.Specialty {
	perm := r.Perm(len(model.Specialties))
	out := make([]model.Specialty, 0, k)
	for _, idx := range perm[:min(k, len(perm))] {
		out = append(out, model.Specialties[idx])
	}
	return out
}

func weekOfSlots(counselorID string, now time.Time, r *rand.Rand) []model.AvailabilitySlot {
	var out []model.AvailabilitySlot
	for day := range slotDays {
		d := now.AddDate(0, 0, day)
		for _, h := range slotHours {
			if r.Float64() >= slotKeepRatio {
				continue
			}
			start := time.Date(d.Year(), d.Month(), d.Day(), h, 0, 0, 0, now.Location())
			out = append(out, model.AvailabilitySlot{
				CounselorID: counselorID,
				StartTime:   start,
				EndTime:     start.Add(time.Hour),
			})
		}
	}
	return out
}
