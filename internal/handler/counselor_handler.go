package handler

import (
	"context"

	"counseling-booking-api/internal/model"
	"counseling-booking-api/internal/service"
)

func (h *Handler) ListCounselors(ctx context.Context, _ *ListCounselorsRequest) (*ListCounselorsResponse, error) {
	cs, err := h.dir.ListCounselors(ctx)
	if err != nil {
		return nil, h.toStatus("list counselors", err)
	}
	return &ListCounselorsResponse{Counselors: cs}, nil
}

func (h *Handler) GetCounselor(ctx context.Context, req *GetCounselorRequest) (*CounselorResponse, error) {
	if req.ID == "" {
		return nil, invalid("id required")
	}
	c, err := h.dir.GetCounselor(ctx, req.ID)
	if err != nil {
		return nil, h.toStatus("get counselor", err)
	}
	return &CounselorResponse{Counselor: c}, nil
}

func (h *Handler) CreateCounselor(ctx context.Context, req *CreateCounselorRequest) (*CounselorResponse, error) {
	if req.UserID == "" {
		return nil, invalid("user_id required")
	}
	specs := make([]model.Specialty, 0, len(req.Specialties))
	for _, s := range req.Specialties {
		sp, err := model.ParseSpecialty(s)
		if err != nil {
			return nil, invalid(err.Error())
		}
		specs = append(specs, sp)
	}
	c, err := h.dir.CreateCounselor(ctx, service.CounselorInput{
		UserID:         req.UserID,
		Bio:            req.Bio,
		Specialties:    specs,
		HourlyRate:     req.HourlyRate,
		IsProfessional: req.IsProfessional,
	})
	if err != nil {
		return nil, h.toStatus("create counselor", err)
	}
	return &CounselorResponse{Counselor: c}, nil
}

func (h *Handler) GetCounselorAvailability(ctx context.Context, req *GetCounselorAvailabilityRequest) (*SlotsResponse, error) {
	if req.CounselorID == "" {
		return nil, invalid("counselor_id required")
	}
	slots, err := h.avail.ForCounselor(ctx, req.CounselorID, req.StartDate, req.EndDate)
	if err != nil {
		return nil, h.toStatus("counselor availability", err)
	}
	return &SlotsResponse{Slots: nonNil(slots)}, nil
}

func (h *Handler) ListAvailability(ctx context.Context, req *ListAvailabilityRequest) (*SlotsResponse, error) {
	slots, err := h.avail.List(ctx, req.StartDate, req.EndDate)
	if err != nil {
		return nil, h.toStatus("list availability", err)
	}
	return &SlotsResponse{Slots: nonNil(slots)}, nil
}

func (h *Handler) AddAvailability(ctx context.Context, req *AddAvailabilityRequest) (*SlotsResponse, error) {
	if req.CounselorID == "" {
		return nil, invalid("counselor_id required")
	}
	if len(req.Slots) == 0 {
		return nil, invalid("slots required")
	}
	windows := make([]service.SlotWindow, len(req.Slots))
	for i, s := range req.Slots {
		if s.StartTime.IsZero() || s.EndTime.IsZero() {
			return nil, invalid("slot times required")
		}
		if !s.EndTime.After(s.StartTime) {
			return nil, invalid("slot end must be after start")
		}
		windows[i] = service.SlotWindow{StartTime: s.StartTime, EndTime: s.EndTime}
	}
	slots, err := h.avail.Add(ctx, req.CounselorID, windows)
	if err != nil {
		return nil, h.toStatus("add availability", err)
	}
	return &SlotsResponse{Slots: slots}, nil
}

// nonNil keeps empty results encoded as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
