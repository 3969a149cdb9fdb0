package handler

import (
	"errors"
	"log/slog"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"counseling-booking-api/internal/service"
)

// toStatus maps service errors onto gRPC codes. Anything unrecognised is
// logged and reported as Internal without its detail.
func (h *Handler) toStatus(op string, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, service.ErrLimitExceeded):
		return status.Error(codes.ResourceExhausted, err.Error())
	case errors.Is(err, service.ErrSlotUnavailable), errors.Is(err, service.ErrInvalidTransition):
		return status.Error(codes.FailedPrecondition, err.Error())
	}
	h.logger.Error("rpc failed", slog.String("op", op), slog.Any("err", err))
	return status.Error(codes.Internal, "internal error")
}

func invalid(msg string) error {
	return status.Error(codes.InvalidArgument, msg)
}
