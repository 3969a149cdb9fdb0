package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"counseling-booking-api/internal/handler"
)

// API serves the JSON REST surface. Requests are validated and executed by
// the same handler that backs the gRPC service.
type API struct {
	h *handler.Handler
}

func New(h *handler.Handler) *API {
	return &API{h: h}
}

// Routes registers every endpoint on r. Collection paths answer with and
// without a trailing slash.
func (a *API) Routes(r *mux.Router) {
	handle := func(path string, fn http.HandlerFunc, methods ...string) {
		r.HandleFunc(path, fn).Methods(methods...)
		r.HandleFunc(path+"/", fn).Methods(methods...)
	}

	r.HandleFunc("/healthz", a.health).Methods(http.MethodGet)

	handle("/users", a.listUsers, http.MethodGet)
	handle("/users", a.createUser, http.MethodPost)
	r.HandleFunc("/users/{id}", a.getUser).Methods(http.MethodGet)

	handle("/counselors", a.listCounselors, http.MethodGet)
	handle("/counselors", a.createCounselor, http.MethodPost)
	r.HandleFunc("/counselors/{id}", a.getCounselor).Methods(http.MethodGet)
	r.HandleFunc("/counselors/{id}/availability", a.counselorAvailability).Methods(http.MethodGet)
	r.HandleFunc("/counselors/{id}/availability", a.addAvailability).Methods(http.MethodPost)

	handle("/availability", a.listAvailability, http.MethodGet)

	handle("/appointments", a.createAppointment, http.MethodPost)
	r.HandleFunc("/appointments/user/{user_id}", a.userAppointments).Methods(http.MethodGet)
	r.HandleFunc("/appointments/{id}", a.getAppointment).Methods(http.MethodGet)
	r.HandleFunc("/appointments/{id}/status", a.updateStatus).Methods(http.MethodPatch)

	handle("/screening", a.submitScreening, http.MethodPost)
	r.HandleFunc("/screening/{user_id}", a.getScreening).Methods(http.MethodGet)
}
