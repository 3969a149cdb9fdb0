package handler

import "context"

func (h *Handler) SubmitScreening(ctx context.Context, req *SubmitScreeningRequest) (*ScreeningResponse, error) {
	if req.UserID == "" {
		return nil, invalid("user_id required")
	}
	s, err := h.scr.Submit(ctx, req.UserID, req.Answers)
	if err != nil {
		return nil, h.toStatus("submit screening", err)
	}
	return &ScreeningResponse{Screening: s}, nil
}

func (h *Handler) GetScreening(ctx context.Context, req *GetScreeningRequest) (*ScreeningResponse, error) {
	if req.UserID == "" {
		return nil, invalid("user_id required")
	}
	s, err := h.scr.Get(ctx, req.UserID)
	if err != nil {
		return nil, h.toStatus("get screening", err)
	}
	return &ScreeningResponse{Screening: s}, nil
}
