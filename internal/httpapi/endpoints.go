package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"

	"counseling-booking-api/internal/handler"
)

func (a *API) health(w http.ResponseWriter, r *http.Request) {
	resp, _ := a.h.HealthCheck(r.Context(), &handler.HealthCheckRequest{})
	writeJSON(w, resp, http.StatusOK)
}

func (a *API) listUsers(w http.ResponseWriter, r *http.Request) {
	resp, err := a.h.ListUsers(r.Context(), &handler.ListUsersRequest{})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, resp.Users, http.StatusOK)
}

func (a *API) getUser(w http.ResponseWriter, r *http.Request) {
	resp, err := a.h.GetUser(r.Context(), &handler.GetUserRequest{ID: mux.Vars(r)["id"]})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, resp.User, http.StatusOK)
}

func (a *API) createUser(w http.ResponseWriter, r *http.Request) {
	var req handler.CreateUserRequest
	if !decode(w, r, &req) {
		return
	}
	resp, err := a.h.CreateUser(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, resp.User, http.StatusOK)
}

func (a *API) listCounselors(w http.ResponseWriter, r *http.Request) {
	resp, err := a.h.ListCounselors(r.Context(), &handler.ListCounselorsRequest{})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, resp.Counselors, http.StatusOK)
}

func (a *API) getCounselor(w http.ResponseWriter, r *http.Request) {
	resp, err := a.h.GetCounselor(r.Context(), &handler.GetCounselorRequest{ID: mux.Vars(r)["id"]})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, resp.Counselor, http.StatusOK)
}

func (a *API) createCounselor(w http.ResponseWriter, r *http.Request) {
	var req handler.CreateCounselorRequest
	if !decode(w, r, &req) {
		return
	}
	resp, err := a.h.CreateCounselor(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, resp.Counselor, http.StatusOK)
}

func (a *API) counselorAvailability(w http.ResponseWriter, r *http.Request) {
	req := handler.GetCounselorAvailabilityRequest{CounselorID: mux.Vars(r)["id"]}
	var err error
	if req.StartDate, err = queryTime(r, "start_date"); err != nil {
		writeError(w, err)
		return
	}
	if req.EndDate, err = queryTime(r, "end_date"); err != nil {
		writeError(w, err)
		return
	}
	resp, err := a.h.GetCounselorAvailability(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, resp.Slots, http.StatusOK)
}

func (a *API) addAvailability(w http.ResponseWriter, r *http.Request) {
	var slots []handler.SlotWindow
	if !decode(w, r, &slots) {
		return
	}
	resp, err := a.h.AddAvailability(r.Context(), &handler.AddAvailabilityRequest{
		CounselorID: mux.Vars(r)["id"],
		Slots:       slots,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, resp.Slots, http.StatusOK)
}

func (a *API) listAvailability(w http.ResponseWriter, r *http.Request) {
	var req handler.ListAvailabilityRequest
	var err error
	if req.StartDate, err = queryTime(r, "start_date"); err != nil {
		writeError(w, err)
		return
	}
	if req.EndDate, err = queryTime(r, "end_date"); err != nil {
		writeError(w, err)
		return
	}
	resp, err := a.h.ListAvailability(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, resp.Slots, http.StatusOK)
}

func (a *API) createAppointment(w http.ResponseWriter, r *http.Request) {
	var req handler.CreateAppointmentRequest
	if !decode(w, r, &req) {
		return
	}
	resp, err := a.h.CreateAppointment(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, resp.Appointment, http.StatusOK)
}

func (a *API) getAppointment(w http.ResponseWriter, r *http.Request) {
	resp, err := a.h.GetAppointment(r.Context(), &handler.GetAppointmentRequest{ID: mux.Vars(r)["id"]})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, resp.Appointment, http.StatusOK)
}

func (a *API) userAppointments(w http.ResponseWriter, r *http.Request) {
	resp, err := a.h.GetUserAppointments(r.Context(), &handler.GetUserAppointmentsRequest{UserID: mux.Vars(r)["user_id"]})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, resp.Appointments, http.StatusOK)
}

func (a *API) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req handler.UpdateAppointmentStatusRequest
	if !decode(w, r, &req) {
		return
	}
	req.ID = mux.Vars(r)["id"]
	resp, err := a.h.UpdateAppointmentStatus(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, resp.Appointment, http.StatusOK)
}

func (a *API) submitScreening(w http.ResponseWriter, r *http.Request) {
	var req handler.SubmitScreeningRequest
	if !decode(w, r, &req) {
		return
	}
	resp, err := a.h.SubmitScreening(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, resp.Screening, http.StatusOK)
}

func (a *API) getScreening(w http.ResponseWriter, r *http.Request) {
	resp, err := a.h.GetScreening(r.Context(), &handler.GetScreeningRequest{UserID: mux.Vars(r)["user_id"]})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, resp.Screening, http.StatusOK)
}
