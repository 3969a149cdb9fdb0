package handler

import (
	"log/slog"

	"counseling-booking-api/internal/service"
)

// Handler implements CounselingServer on top of the services.
type Handler struct {
	dir    *service.Directory
	avail  *service.Availability
	book   *service.Booking
	scr    *service.Screening
	logger *slog.Logger
}

func New(dir *service.Directory, avail *service.Availability, book *service.Booking, scr *service.Screening, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{dir: dir, avail: avail, book: book, scr: scr, logger: logger}
}
