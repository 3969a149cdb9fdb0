package handler

import (
	"context"

	"counseling-booking-api/internal/model"
	"counseling-booking-api/internal/service"
)

func (h *Handler) CreateAppointment(ctx context.Context, req *CreateAppointmentRequest) (*AppointmentResponse, error) {
	if req.ClientID == "" || req.CounselorID == "" {
		return nil, invalid("client_id and counselor_id required")
	}
	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return nil, invalid("times required")
	}

	apt, err := h.book.CreateAppointment(ctx, service.AppointmentRequest{
		ClientID:       req.ClientID,
		CounselorID:    req.CounselorID,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		IsProfessional: req.IsProfessional,
	})
	if err != nil {
		return nil, h.toStatus("create appointment", err)
	}
	return &AppointmentResponse{Appointment: apt}, nil
}

func (h *Handler) GetAppointment(ctx context.Context, req *GetAppointmentRequest) (*AppointmentResponse, error) {
	if req.ID == "" {
		return nil, invalid("id required")
	}
	apt, err := h.book.GetAppointment(ctx, req.ID)
	if err != nil {
		return nil, h.toStatus("get appointment", err)
	}
	return &AppointmentResponse{Appointment: apt}, nil
}

func (h *Handler) GetUserAppointments(ctx context.Context, req *GetUserAppointmentsRequest) (*AppointmentsResponse, error) {
	if req.UserID == "" {
		return nil, invalid("user_id required")
	}
	apts, err := h.book.UserAppointments(ctx, req.UserID)
	if err != nil {
		return nil, h.toStatus("user appointments", err)
	}
	return &AppointmentsResponse{Appointments: nonNil(apts)}, nil
}

func (h *Handler) UpdateAppointmentStatus(ctx context.Context, req *UpdateAppointmentStatusRequest) (*AppointmentResponse, error) {
	if req.ID == "" {
		return nil, invalid("id required")
	}
	st, err := model.ParseAppointmentStatus(req.Status)
	if err != nil {
		return nil, invalid(err.Error())
	}
	apt, err := h.book.UpdateStatus(ctx, req.ID, st)
	if err != nil {
		return nil, h.toStatus("update appointment status", err)
	}
	return &AppointmentResponse{Appointment: apt}, nil
}
