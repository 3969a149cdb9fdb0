package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"counseling-booking-api/internal/model"
	"counseling-booking-api/internal/store"
)

// Directory manages users and counselor profiles.
type Directory struct {
	store store.Store
	clock Clock
}

func NewDirectory(st store.Store, clock Clock) *Directory {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Directory{store: st, clock: clock}
}

func (d *Directory) ListUsers(ctx context.Context) ([]model.User, error) {
	return d.store.ListUsers(ctx)
}

func (d *Directory) GetUser(ctx context.Context, id string) (*model.User, error) {
	u, err := d.store.GetUser(ctx, id)
	if err != nil {
		return nil, notFound("user", id, err)
	}
	return u, nil
}

// CreateUser registers a user. Email is stored as given.
func (d *Directory) CreateUser(ctx context.Context, name, email string, role model.Role) (*model.User, error) {
	u := &model.User{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		Role:      role,
		CreatedAt: d.clock.Now(),
	}
	if err := d.store.CreateUser(ctx, u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

func (d *Directory) ListCounselors(ctx context.Context) ([]model.CounselorProfile, error) {
	return d.store.ListCounselors(ctx)
}

func (d *Directory) GetCounselor(ctx context.Context, id string) (*model.CounselorProfile, error) {
	c, err := d.store.GetCounselor(ctx, id)
	if err != nil {
		return nil, notFound("counselor", id, err)
	}
	return c, nil
}

type CounselorInput struct {
	UserID         string
	Bio            string
	Specialties    []model.Specialty
	HourlyRate     *float64
	IsProfessional bool
}

// CreateCounselor attaches a counselor profile to an existing user.
func (d *Directory) CreateCounselor(ctx context.Context, in CounselorInput) (*model.CounselorProfile, error) {
	if _, err := d.GetUser(ctx, in.UserID); err != nil {
		return nil, err
	}
	c := &model.CounselorProfile{
		ID:             uuid.New().String(),
		UserID:         in.UserID,
		Bio:            in.Bio,
		Specialties:    in.Specialties,
		HourlyRate:     in.HourlyRate,
		IsProfessional: in.IsProfessional,
	}
	if c.Specialties == nil {
		c.Specialties = []model.Specialty{}
	}
	if err := d.store.CreateCounselor(ctx, c); err != nil {
		return nil, fmt.Errorf("create counselor: %w", err)
	}
	return c, nil
}
