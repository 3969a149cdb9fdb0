package store

import (
	"context"
	"slices"
	"sync"
	"time"

	"counseling-booking-api/internal/model"
)

// Memory is a process-local Store. Records are copied in and out so callers
// never share state with the store.
type Memory struct {
	mu   sync.Mutex
	data *memData
}

type memData struct {
	users        map[string]model.User
	userOrder    []string
	counselors   map[string]model.CounselorProfile
	counselorOrd []string
	slots        []model.AvailabilitySlot
	appointments map[string]model.Appointment
	apptOrder    []string
	screenings   map[string]model.InitialScreening // by user id
}

var _ Store = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{data: &memData{
		users:        make(map[string]model.User),
		counselors:   make(map[string]model.CounselorProfile),
		appointments: make(map[string]model.Appointment),
		screenings:   make(map[string]model.InitialScreening),
	}}
}

// memView runs store operations against memData without taking the lock.
// It is only handed out while Memory.mu is held.
type memView struct{ d *memData }

func (m *Memory) locked(fn func(v memView) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(memView{m.data})
}

func (m *Memory) Atomic(ctx context.Context, fn func(Store) error) error {
	return m.locked(func(v memView) error { return fn(v) })
}

func (m *Memory) ListUsers(ctx context.Context) (out []model.User, err error) {
	err = m.locked(func(v memView) error { out, err = v.ListUsers(ctx); return err })
	return out, err
}

func (m *Memory) GetUser(ctx context.Context, id string) (u *model.User, err error) {
	err = m.locked(func(v memView) error { u, err = v.GetUser(ctx, id); return err })
	return u, err
}

func (m *Memory) CreateUser(ctx context.Context, u *model.User) error {
	return m.locked(func(v memView) error { return v.CreateUser(ctx, u) })
}

func (m *Memory) ListCounselors(ctx context.Context) (out []model.CounselorProfile, err error) {
	err = m.locked(func(v memView) error { out, err = v.ListCounselors(ctx); return err })
	return out, err
}

func (m *Memory) GetCounselor(ctx context.Context, id string) (c *model.CounselorProfile, err error) {
	err = m.locked(func(v memView) error { c, err = v.GetCounselor(ctx, id); return err })
	return c, err
}

func (m *Memory) CreateCounselor(ctx context.Context, c *model.CounselorProfile) error {
	return m.locked(func(v memView) error { return v.CreateCounselor(ctx, c) })
}

func (m *Memory) AddSlots(ctx context.Context, slots []model.AvailabilitySlot) error {
	return m.locked(func(v memView) error { return v.AddSlots(ctx, slots) })
}

func (m *Memory) AvailableSlots(ctx context.Context, counselorID string, start, end time.Time) (out []model.AvailabilitySlot, err error) {
	err = m.locked(func(v memView) error { out, err = v.AvailableSlots(ctx, counselorID, start, end); return err })
	return out, err
}

func (m *Memory) ReserveSlot(ctx context.Context, counselorID string, start time.Time) (ok bool, err error) {
	err = m.locked(func(v memView) error { ok, err = v.ReserveSlot(ctx, counselorID, start); return err })
	return ok, err
}

func (m *Memory) CreateAppointment(ctx context.Context, a *model.Appointment) error {
	return m.locked(func(v memView) error { return v.CreateAppointment(ctx, a) })
}

func (m *Memory) GetAppointment(ctx context.Context, id string) (a *model.Appointment, err error) {
	err = m.locked(func(v memView) error { a, err = v.GetAppointment(ctx, id); return err })
	return a, err
}

func (m *Memory) UpdateAppointmentStatus(ctx context.Context, id string, status model.AppointmentStatus) error {
	return m.locked(func(v memView) error { return v.UpdateAppointmentStatus(ctx, id, status) })
}

func (m *Memory) UserAppointments(ctx context.Context, userID string) (out []model.Appointment, err error) {
	err = m.locked(func(v memView) error { out, err = v.UserAppointments(ctx, userID); return err })
	return out, err
}

func (m *Memory) CountProfessional(ctx context.Context, clientID string, from, to time.Time) (n int, err error) {
	err = m.locked(func(v memView) error { n, err = v.CountProfessional(ctx, clientID, from, to); return err })
	return n, err
}

func (m *Memory) CreateScreening(ctx context.Context, s *model.InitialScreening) error {
	return m.locked(func(v memView) error { return v.CreateScreening(ctx, s) })
}

func (m *Memory) ScreeningByUser(ctx context.Context, userID string) (s *model.InitialScreening, err error) {
	err = m.locked(func(v memView) error { s, err = v.ScreeningByUser(ctx, userID); return err })
	return s, err
}

// ---- unlocked view ----

// nested Atomic calls run inline; the lock is already held
func (v memView) Atomic(ctx context.Context, fn func(Store) error) error { return fn(v) }

func (v memView) ListUsers(ctx context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(v.d.userOrder))
	for _, id := range v.d.userOrder {
		out = append(out, v.d.users[id])
	}
	return out, nil
}

func (v memView) GetUser(ctx context.Context, id string) (*model.User, error) {
	u, ok := v.d.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (v memView) CreateUser(ctx context.Context, u *model.User) error {
	if _, ok := v.d.users[u.ID]; !ok {
		v.d.userOrder = append(v.d.userOrder, u.ID)
	}
	v.d.users[u.ID] = *u
	return nil
}

func (v memView) ListCounselors(ctx context.Context) ([]model.CounselorProfile, error) {
	out := make([]model.CounselorProfile, 0, len(v.d.counselorOrd))
	for _, id := range v.d.counselorOrd {
		out = append(out, cloneCounselor(v.d.counselors[id]))
	}
	return out, nil
}

func (v memView) GetCounselor(ctx context.Context, id string) (*model.CounselorProfile, error) {
	c, ok := v.d.counselors[id]
	if !ok {
		return nil, ErrNotFound
	}
	c = cloneCounselor(c)
	return &c, nil
}

func (v memView) CreateCounselor(ctx context.Context, c *model.CounselorProfile) error {
	if _, ok := v.d.counselors[c.ID]; !ok {
		v.d.counselorOrd = append(v.d.counselorOrd, c.ID)
	}
	v.d.counselors[c.ID] = cloneCounselor(*c)
	return nil
}

func (v memView) AddSlots(ctx context.Context, slots []model.AvailabilitySlot) error {
	v.d.slots = append(v.d.slots, slots...)
	return nil
}

func (v memView) AvailableSlots(ctx context.Context, counselorID string, start, end time.Time) ([]model.AvailabilitySlot, error) {
	out := []model.AvailabilitySlot{}
	for _, s := range v.d.slots {
		if s.IsBooked || s.StartTime.Before(start) || s.StartTime.After(end) {
			continue
		}
		if counselorID != "" && s.CounselorID != counselorID {
			continue
		}
		out = append(out, s)
	}
	slices.SortStableFunc(out, func(a, b model.AvailabilitySlot) int {
		return a.StartTime.Compare(b.StartTime)
	})
	return out, nil
}

func (v memView) ReserveSlot(ctx context.Context, counselorID string, start time.Time) (bool, error) {
	for i := range v.d.slots {
		s := &v.d.slots[i]
		if s.CounselorID == counselorID && s.StartTime.Equal(start) && !s.IsBooked {
			s.IsBooked = true
			return true, nil
		}
	}
	return false, nil
}

func (v memView) CreateAppointment(ctx context.Context, a *model.Appointment) error {
	if _, ok := v.d.appointments[a.ID]; !ok {
		v.d.apptOrder = append(v.d.apptOrder, a.ID)
	}
	v.d.appointments[a.ID] = *a
	return nil
}

func (v memView) GetAppointment(ctx context.Context, id string) (*model.Appointment, error) {
	a, ok := v.d.appointments[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &a, nil
}

func (v memView) UpdateAppointmentStatus(ctx context.Context, id string, status model.AppointmentStatus) error {
	a, ok := v.d.appointments[id]
	if !ok {
		return ErrNotFound
	}
	a.Status = status
	v.d.appointments[id] = a
	return nil
}

func (v memView) UserAppointments(ctx context.Context, userID string) ([]model.Appointment, error) {
	out := []model.Appointment{}
	for _, id := range v.d.apptOrder {
		a := v.d.appointments[id]
		if a.ClientID == userID {
			out = append(out, a)
			continue
		}
		if c, ok := v.d.counselors[a.CounselorID]; ok && c.UserID == userID {
			out = append(out, a)
		}
	}
	slices.SortStableFunc(out, func(a, b model.Appointment) int {
		return a.StartTime.Compare(b.StartTime)
	})
	return out, nil
}

func (v memView) CountProfessional(ctx context.Context, clientID string, from, to time.Time) (int, error) {
	n := 0
	for _, a := range v.d.appointments {
		if a.ClientID != clientID || !a.IsProfessional || a.Status == model.StatusCancelled {
			continue
		}
		if !a.StartTime.Before(from) && a.StartTime.Before(to) {
			n++
		}
	}
	return n, nil
}

func (v memView) CreateScreening(ctx context.Context, s *model.InitialScreening) error {
	v.d.screenings[s.UserID] = *s
	return nil
}

func (v memView) ScreeningByUser(ctx context.Context, userID string) (*model.InitialScreening, error) {
	s, ok := v.d.screenings[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return &s, nil
}

func cloneCounselor(c model.CounselorProfile) model.CounselorProfile {
	c.Specialties = slices.Clone(c.Specialties)
	c.AvailableSlots = slices.Clone(c.AvailableSlots)
	if c.HourlyRate != nil {
		r := *c.HourlyRate
		c.HourlyRate = &r
	}
	return c
}
