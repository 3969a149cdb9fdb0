package handler

import (
	"context"

	"counseling-booking-api/internal/model"
)

func (h *Handler) ListUsers(ctx context.Context, _ *ListUsersRequest) (*ListUsersResponse, error) {
	users, err := h.dir.ListUsers(ctx)
	if err != nil {
		return nil, h.toStatus("list users", err)
	}
	return &ListUsersResponse{Users: users}, nil
}

func (h *Handler) GetUser(ctx context.Context, req *GetUserRequest) (*UserResponse, error) {
	if req.ID == "" {
		return nil, invalid("id required")
	}
	u, err := h.dir.GetUser(ctx, req.ID)
	if err != nil {
		return nil, h.toStatus("get user", err)
	}
	return &UserResponse{User: u}, nil
}

func (h *Handler) CreateUser(ctx context.Context, req *CreateUserRequest) (*UserResponse, error) {
	if req.Name == "" || req.Email == "" {
		return nil, invalid("name and email required")
	}
	role, err := model.ParseRole(req.Role)
	if err != nil {
		return nil, invalid(err.Error())
	}
	u, err := h.dir.CreateUser(ctx, req.Name, req.Email, role)
	if err != nil {
		return nil, h.toStatus("create user", err)
	}
	return &UserResponse{User: u}, nil
}

func (h *Handler) HealthCheck(context.Context, *HealthCheckRequest) (*HealthCheckResponse, error) {
	return &HealthCheckResponse{Status: "ok"}, nil
}
