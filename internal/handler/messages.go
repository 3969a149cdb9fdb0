package handler

import (
	"time"

	"counseling-booking-api/internal/model"
)

// Request and response messages. Field names double as the JSON wire format
// for both the gRPC codec and the REST surface.

type ListUsersRequest struct{}

type ListUsersResponse struct {
	Users []model.User `json:"users"`
}

type GetUserRequest struct {
	ID string `json:"id"`
}

type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type UserResponse struct {
	User *model.User `json:"user"`
}

type ListCounselorsRequest struct{}

type ListCounselorsResponse struct {
	Counselors []model.CounselorProfile `json:"counselors"`
}

type GetCounselorRequest struct {
	ID string `json:"id"`
}

type CreateCounselorRequest struct {
	UserID         string   `json:"user_id"`
	Bio            string   `json:"bio"`
	Specialties    []string `json:"specialties"`
	HourlyRate     *float64 `json:"hourly_rate,omitempty"`
	IsProfessional bool     `json:"is_professional"`
}

type CounselorResponse struct {
	Counselor *model.CounselorProfile `json:"counselor"`
}

type GetCounselorAvailabilityRequest struct {
	CounselorID string     `json:"counselor_id"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
}

type ListAvailabilityRequest struct {
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}

type SlotWindow struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

type AddAvailabilityRequest struct {
	CounselorID string       `json:"counselor_id"`
	Slots       []SlotWindow `json:"slots"`
}

type SlotsResponse struct {
	Slots []model.AvailabilitySlot `json:"slots"`
}

type CreateAppointmentRequest struct {
	ClientID       string    `json:"client_id"`
	CounselorID    string    `json:"counselor_id"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
	IsProfessional bool      `json:"is_professional"`
}

type GetAppointmentRequest struct {
	ID string `json:"id"`
}

type UpdateAppointmentStatusRequest struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type AppointmentResponse struct {
	Appointment *model.Appointment `json:"appointment"`
}

type GetUserAppointmentsRequest struct {
	UserID string `json:"user_id"`
}

type AppointmentsResponse struct {
	Appointments []model.Appointment `json:"appointments"`
}

type SubmitScreeningRequest struct {
	UserID  string   `json:"user_id"`
	Answers []string `json:"answers"`
}

type GetScreeningRequest struct {
	UserID string `json:"user_id"`
}

type ScreeningResponse struct {
	Screening *model.InitialScreening `json:"screening"`
}

type HealthCheckRequest struct{}

type HealthCheckResponse struct {
	Status string `json:"status"`
}
