package model

import (
	"fmt"
	"time"
)

type Role string

const (
	RoleClient    Role = "client"
	RoleCounselor Role = "counselor"
)

func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleClient, RoleCounselor:
		return r, nil
	}
	return "", fmt.Errorf("invalid role %q", s)
}

type Specialty string

const (
	SpecialtyGeneral       Specialty = "general"
	SpecialtyDepression    Specialty = "depression"
	SpecialtyAnxiety       Specialty = "anxiety"
	SpecialtyRelationships Specialty = "relationships"
	SpecialtyCareer        Specialty = "career"
	SpecialtyStress        Specialty = "stress"
)

// Specialties lists every specialty in declaration order.
var Specialties = []Specialty{
	SpecialtyGeneral,
	SpecialtyDepression,
	SpecialtyAnxiety,
	SpecialtyRelationships,
	SpecialtyCareer,
	SpecialtyStress,
}

func ParseSpecialty(s string) (Specialty, error) {
	for _, sp := range Specialties {
		if string(sp) == s {
			return sp, nil
		}
	}
	return "", fmt.Errorf("invalid specialty %q", s)
}

type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusCompleted AppointmentStatus = "completed"
)

func ParseAppointmentStatus(s string) (AppointmentStatus, error) {
	switch st := AppointmentStatus(s); st {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return st, nil
	}
	return "", fmt.Errorf("invalid appointment status %q", s)
}

// Terminal reports whether no further transition is allowed.
func (s AppointmentStatus) Terminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

type ScreeningResult string

const (
	ScreeningPass  ScreeningResult = "pass"
	ScreeningRefer ScreeningResult = "refer"
	ScreeningBlock ScreeningResult = "block"
)

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type CounselorProfile struct {
	ID             string      `json:"id"`
	UserID         string      `json:"user_id"`
	Bio            string      `json:"bio"`
	Specialties    []Specialty `json:"specialties"`
	HourlyRate     *float64    `json:"hourly_rate"`
	IsProfessional bool        `json:"is_professional"`
	// informational only; slot state lives in the availability store
	AvailableSlots []time.Time `json:"available_slots"`
}

type AvailabilitySlot struct {
	CounselorID string    `json:"counselor_id"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	IsBooked    bool      `json:"is_booked"`
}

type Appointment struct {
	ID             string            `json:"id"`
	ClientID       string            `json:"client_id"`
	CounselorID    string            `json:"counselor_id"`
	StartTime      time.Time         `json:"start_time"`
	EndTime        time.Time         `json:"end_time"`
	Status         AppointmentStatus `json:"status"`
	MeetingLink    *string           `json:"meeting_link"`
	IsProfessional bool              `json:"is_professional"`
	CreatedAt      time.Time         `json:"created_at"`
}

type InitialScreening struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Result    ScreeningResult `json:"result"`
	Notes     *string         `json:"notes"`
	CreatedAt time.Time       `json:"created_at"`
}
