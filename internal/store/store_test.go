package store_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"counseling-booking-api/internal/model"
	"counseling-booking-api/internal/store"
)

func stores(t *testing.T) map[string]store.Store {
	t.Helper()
	out := map[string]store.Store{"memory": store.NewMemory()}

	_ = godotenv.Load("../../.env")
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return out
	}
	pool, err := pgxpool.New(context.Background(), dbURL)
	if err != nil {
		t.Fatalf("db: %v", err)
	}
	t.Cleanup(pool.Close)
	pg := store.New(pool)
	if err := pg.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	out["postgres"] = pg
	return out
}

// ids are random so the postgres run does not collide with earlier runs
func fixture(t *testing.T, s store.Store) (client model.User, counselor model.CounselorProfile) {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	client = model.User{ID: uuid.NewString(), Name: "Alice", Email: "alice@example.com", Role: model.RoleClient, CreatedAt: now}
	cu := model.User{ID: uuid.NewString(), Name: "Bob", Email: "bob@example.com", Role: model.RoleCounselor, CreatedAt: now}
	for _, u := range []model.User{client, cu} {
		if err := s.CreateUser(ctx, &u); err != nil {
			t.Fatalf("create user: %v", err)
		}
	}
	rate := 50.0
	counselor = model.CounselorProfile{
		ID:             uuid.NewString(),
		UserID:         cu.ID,
		Bio:            "bio",
		Specialties:    []model.Specialty{model.SpecialtyCareer, model.SpecialtyStress},
		HourlyRate:     &rate,
		IsProfessional: true,
		AvailableSlots: []time.Time{},
	}
	if err := s.CreateCounselor(ctx, &counselor); err != nil {
		t.Fatalf("create counselor: %v", err)
	}
	return client, counselor
}

func TestUsersAndCounselors(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			client, counselor := fixture(t, s)

			u, err := s.GetUser(ctx, client.ID)
			if err != nil {
				t.Fatalf("get user: %v", err)
			}
			if u.Name != "Alice" || u.Role != model.RoleClient {
				t.Errorf("user: %+v", u)
			}
			if _, err := s.GetUser(ctx, uuid.NewString()); !errors.Is(err, store.ErrNotFound) {
				t.Errorf("expected ErrNotFound, got %v", err)
			}

			c, err := s.GetCounselor(ctx, counselor.ID)
			if err != nil {
				t.Fatalf("get counselor: %v", err)
			}
			if len(c.Specialties) != 2 || c.Specialties[0] != model.SpecialtyCareer {
				t.Errorf("specialties: %v", c.Specialties)
			}
			if c.HourlyRate == nil || *c.HourlyRate != 50 {
				t.Errorf("rate: %v", c.HourlyRate)
			}
			if _, err := s.GetCounselor(ctx, uuid.NewString()); !errors.Is(err, store.ErrNotFound) {
				t.Errorf("expected ErrNotFound, got %v", err)
			}

			list, err := s.ListCounselors(ctx)
			if err != nil {
				t.Fatal(err)
			}
			found := false
			for _, p := range list {
				found = found || p.ID == counselor.ID
			}
			if !found {
				t.Error("counselor missing from list")
			}
		})
	}
}

func TestSlots(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			_, counselor := fixture(t, s)
			base := time.Date(2031, 3, 4, 9, 0, 0, 0, time.UTC)

			err := s.AddSlots(ctx, []model.AvailabilitySlot{
				{CounselorID: counselor.ID, StartTime: base.Add(2 * time.Hour), EndTime: base.Add(3 * time.Hour)},
				{CounselorID: counselor.ID, StartTime: base, EndTime: base.Add(time.Hour)},
				{CounselorID: counselor.ID, StartTime: base, EndTime: base.Add(time.Hour)},
			})
			if err != nil {
				t.Fatalf("add: %v", err)
			}

			got, err := s.AvailableSlots(ctx, counselor.ID, base, base.Add(2*time.Hour))
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != 3 || !got[0].StartTime.Equal(base) || !got[2].StartTime.Equal(base.Add(2*time.Hour)) {
				t.Fatalf("range query: %+v", got)
			}

			// duplicate slots are consumed one at a time
			for i, want := range []bool{true, true, false} {
				ok, err := s.ReserveSlot(ctx, counselor.ID, base)
				if err != nil {
					t.Fatal(err)
				}
				if ok != want {
					t.Errorf("reserve %d: got %v, want %v", i, ok, want)
				}
			}

			got, _ = s.AvailableSlots(ctx, counselor.ID, base, base.Add(24*time.Hour))
			if len(got) != 1 || got[0].IsBooked {
				t.Errorf("after reservation: %+v", got)
			}
			if ok, _ := s.ReserveSlot(ctx, uuid.NewString(), base.Add(2*time.Hour)); ok {
				t.Error("reserved a slot of another counselor")
			}
		})
	}
}

func TestAppointments(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			client, counselor := fixture(t, s)
			month := time.Date(2031, 5, 1, 0, 0, 0, 0, time.UTC)
			link := "https://meet.google.com/abcdefghij"

			mk := func(start time.Time, professional bool, status model.AppointmentStatus) model.Appointment {
				a := model.Appointment{
					ID: uuid.NewString(), ClientID: client.ID, CounselorID: counselor.ID,
					StartTime: start, EndTime: start.Add(time.Hour), Status: status,
					MeetingLink: &link, IsProfessional: professional, CreatedAt: month,
				}
				if err := s.CreateAppointment(ctx, &a); err != nil {
					t.Fatalf("create: %v", err)
				}
				return a
			}

			mk(month.Add(48*time.Hour), true, model.StatusConfirmed)
			mk(month.Add(24*time.Hour), true, model.StatusConfirmed)
			mk(month.Add(72*time.Hour), false, model.StatusConfirmed)
			cancelled := mk(month.Add(96*time.Hour), true, model.StatusConfirmed)
			mk(month.AddDate(0, 1, 0), true, model.StatusConfirmed)

			if err := s.UpdateAppointmentStatus(ctx, cancelled.ID, model.StatusCancelled); err != nil {
				t.Fatal(err)
			}
			if err := s.UpdateAppointmentStatus(ctx, uuid.NewString(), model.StatusCancelled); !errors.Is(err, store.ErrNotFound) {
				t.Errorf("expected ErrNotFound, got %v", err)
			}

			n, err := s.CountProfessional(ctx, client.ID, month, month.AddDate(0, 1, 0))
			if err != nil {
				t.Fatal(err)
			}
			if n != 2 {
				t.Errorf("count: got %d, want 2", n)
			}

			got, err := s.GetAppointment(ctx, cancelled.ID)
			if err != nil {
				t.Fatal(err)
			}
			if got.Status != model.StatusCancelled || got.MeetingLink == nil || *got.MeetingLink != link {
				t.Errorf("appointment: %+v", got)
			}

			for _, uid := range []string{client.ID, counselor.UserID} {
				list, err := s.UserAppointments(ctx, uid)
				if err != nil {
					t.Fatal(err)
				}
				if len(list) != 5 {
					t.Fatalf("user %s: expected 5, got %d", uid, len(list))
				}
				if !list[0].StartTime.Equal(month.Add(24 * time.Hour)) {
					t.Error("not ordered by start time")
				}
			}
		})
	}
}

func TestScreenings(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			client, _ := fixture(t, s)

			if _, err := s.ScreeningByUser(ctx, client.ID); !errors.Is(err, store.ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}
			notes := "ok"
			sc := model.InitialScreening{ID: uuid.NewString(), UserID: client.ID, Result: model.ScreeningRefer, Notes: &notes, CreatedAt: time.Now().UTC()}
			if err := s.Atomic(ctx, func(tx store.Store) error { return tx.CreateScreening(ctx, &sc) }); err != nil {
				t.Fatal(err)
			}
			got, err := s.ScreeningByUser(ctx, client.ID)
			if err != nil {
				t.Fatal(err)
			}
			if got.ID != sc.ID || got.Result != model.ScreeningRefer {
				t.Errorf("screening: %+v", got)
			}
		})
	}
}

func TestAtomicRollsBackOnError(t *testing.T) {
	for name, s := range stores(t) {
		if name == "memory" {
			// memory writes are not transactional; only exclusion is provided
			continue
		}
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			id := uuid.NewString()
			boom := errors.New("boom")
			err := s.Atomic(ctx, func(tx store.Store) error {
				u := model.User{ID: id, Name: "x", Email: "x@example.com", Role: model.RoleClient, CreatedAt: time.Now()}
				if err := tx.CreateUser(ctx, &u); err != nil {
					return err
				}
				return boom
			})
			if !errors.Is(err, boom) {
				t.Fatalf("expected boom, got %v", err)
			}
			if _, err := s.GetUser(ctx, id); !errors.Is(err, store.ErrNotFound) {
				t.Errorf("write survived rollback: %v", err)
			}
		})
	}
}
