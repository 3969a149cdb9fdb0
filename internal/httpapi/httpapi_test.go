package httpapi_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"counseling-booking-api/internal/handler"
	"counseling-booking-api/internal/httpapi"
	"counseling-booking-api/internal/meet"
	"counseling-booking-api/internal/model"
	"counseling-booking-api/internal/service"
	"counseling-booking-api/internal/store"
)

var now = time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

func setup(t *testing.T, cfg service.BookingConfig) *mux.Router {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st := store.NewMemory()
	clock := service.ClockFunc(func() time.Time { return now })
	h := handler.New(
		service.NewDirectory(st, clock),
		service.NewAvailability(st, clock),
		service.NewBooking(st, meet.Stub{}, clock, cfg, logger),
		service.NewScreening(st, clock),
		logger,
	)
	r := mux.NewRouter()
	httpapi.New(h).Routes(r)
	return r
}

func do(t *testing.T, r http.Handler, method, path, body string, out any) int {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if out != nil {
		if err := json.Unmarshal(rr.Body.Bytes(), out); err != nil {
			t.Fatalf("%s %s: decode %q: %v", method, path, rr.Body.String(), err)
		}
	}
	return rr.Code
}

type detail struct {
	Detail string `json:"detail"`
}

func mustCreate(t *testing.T, r http.Handler, path, body string, out any) {
	t.Helper()
	if code := do(t, r, http.MethodPost, path, body, out); code != http.StatusOK {
		t.Fatalf("POST %s: status %d", path, code)
	}
}

func TestHealthz(t *testing.T) {
	r := setup(t, service.BookingConfig{})
	var body map[string]string
	if code := do(t, r, http.MethodGet, "/healthz", "", &body); code != http.StatusOK {
		t.Fatalf("status %d", code)
	}
	if body["status"] != "ok" {
		t.Errorf("body = %v", body)
	}
}

func TestUsersEndpoints(t *testing.T) {
	r := setup(t, service.BookingConfig{})

	var u model.User
	mustCreate(t, r, "/users/", `{"name":"Ana","email":"ana@example.com","role":"client"}`, &u)

	var got model.User
	if code := do(t, r, http.MethodGet, "/users/"+u.ID, "", &got); code != http.StatusOK || got.ID != u.ID {
		t.Fatalf("get user: %d %+v", code, got)
	}

	var list []model.User
	if code := do(t, r, http.MethodGet, "/users", "", &list); code != http.StatusOK || len(list) != 1 {
		t.Fatalf("list users: %d %v", code, list)
	}

	var d detail
	if code := do(t, r, http.MethodGet, "/users/nope", "", &d); code != http.StatusNotFound || d.Detail != "User not found" {
		t.Errorf("missing user: %d %q", code, d.Detail)
	}
	if code := do(t, r, http.MethodPost, "/users", `{"name":"x","email":"x@example.com","role":"admin"}`, &d); code != http.StatusBadRequest {
		t.Errorf("bad role: %d", code)
	}
	if code := do(t, r, http.MethodPost, "/users", `{`, &d); code != http.StatusBadRequest || d.Detail != "invalid json" {
		t.Errorf("bad json: %d %q", code, d.Detail)
	}
}

func TestBookingEndpoints(t *testing.T) {
	r := setup(t, service.BookingConfig{MonthlyCap: 1})

	var client, counselorUser model.User
	mustCreate(t, r, "/users", `{"name":"Ana","email":"ana@example.com","role":"client"}`, &client)
	mustCreate(t, r, "/users", `{"name":"Bo","email":"bo@example.com","role":"counselor"}`, &counselorUser)

	var co model.CounselorProfile
	mustCreate(t, r, "/counselors", `{"user_id":"`+counselorUser.ID+`","bio":"hi","specialties":["career"],"is_professional":true}`, &co)

	var slots []model.AvailabilitySlot
	mustCreate(t, r, "/counselors/"+co.ID+"/availability",
		`[{"start_time":"2026-10-17T09:00:00Z","end_time":"2026-10-17T10:00:00Z"},
		  {"start_time":"2026-10-17T11:00:00Z","end_time":"2026-10-17T12:00:00Z"}]`, &slots)
	if len(slots) != 2 {
		t.Fatalf("added %d slots", len(slots))
	}

	if code := do(t, r, http.MethodGet, "/counselors/"+co.ID+"/availability?start_date=2026-10-17T00:00:00Z&end_date=2026-10-18T00:00:00Z", "", &slots); code != http.StatusOK || len(slots) != 2 {
		t.Fatalf("availability: %d %v", code, slots)
	}

	var apt model.Appointment
	mustCreate(t, r, "/appointments/", `{"client_id":"`+client.ID+`","counselor_id":"`+co.ID+`",
		"start_time":"2026-10-17T09:00:00Z","end_time":"2026-10-17T10:00:00Z","is_professional":true}`, &apt)
	if apt.Status != model.StatusConfirmed {
		t.Errorf("status = %q", apt.Status)
	}

	if code := do(t, r, http.MethodGet, "/availability", "", &slots); code != http.StatusOK || len(slots) != 1 {
		t.Errorf("open slots after booking: %d %v", code, slots)
	}

	var d detail
	code := do(t, r, http.MethodPost, "/appointments", `{"client_id":"`+client.ID+`","counselor_id":"`+co.ID+`",
		"start_time":"2026-10-17T11:00:00Z","end_time":"2026-10-17T12:00:00Z","is_professional":true}`, &d)
	if code != http.StatusBadRequest || d.Detail != "Monthly limit for professional counseling sessions reached" {
		t.Errorf("over cap: %d %q", code, d.Detail)
	}

	var mine []model.Appointment
	// the counselor's user account sees the appointment too
	if code := do(t, r, http.MethodGet, "/appointments/user/"+counselorUser.ID, "", &mine); code != http.StatusOK || len(mine) != 1 {
		t.Errorf("counselor appointments: %d %v", code, mine)
	}
	if code := do(t, r, http.MethodGet, "/appointments/user/"+co.ID, "", &d); code != http.StatusNotFound {
		t.Errorf("profile id is not a user: %d", code)
	}

	var got model.Appointment
	if code := do(t, r, http.MethodGet, "/appointments/"+apt.ID, "", &got); code != http.StatusOK || got.ID != apt.ID {
		t.Errorf("get appointment: %d %+v", code, got)
	}

	if code := do(t, r, http.MethodPatch, "/appointments/"+apt.ID+"/status", `{"status":"completed"}`, &got); code != http.StatusOK || got.Status != model.StatusCompleted {
		t.Errorf("complete: %d %+v", code, got)
	}
	if code := do(t, r, http.MethodPatch, "/appointments/"+apt.ID+"/status", `{"status":"cancelled"}`, &d); code != http.StatusConflict {
		t.Errorf("cancel completed: %d", code)
	}
}

func TestStrictSlotsConflict(t *testing.T) {
	r := setup(t, service.BookingConfig{StrictSlots: true})

	var client, counselorUser model.User
	mustCreate(t, r, "/users", `{"name":"Ana","email":"ana@example.com","role":"client"}`, &client)
	mustCreate(t, r, "/users", `{"name":"Bo","email":"bo@example.com","role":"counselor"}`, &counselorUser)
	var co model.CounselorProfile
	mustCreate(t, r, "/counselors", `{"user_id":"`+counselorUser.ID+`"}`, &co)

	var d detail
	code := do(t, r, http.MethodPost, "/appointments", `{"client_id":"`+client.ID+`","counselor_id":"`+co.ID+`",
		"start_time":"2026-10-17T09:00:00Z","end_time":"2026-10-17T10:00:00Z"}`, &d)
	if code != http.StatusConflict {
		t.Errorf("unpublished slot: %d %q", code, d.Detail)
	}
}

func TestScreeningEndpoints(t *testing.T) {
	r := setup(t, service.BookingConfig{})
	var u model.User
	mustCreate(t, r, "/users", `{"name":"Ana","email":"ana@example.com","role":"client"}`, &u)

	var d detail
	if code := do(t, r, http.MethodGet, "/screening/"+u.ID, "", &d); code != http.StatusNotFound || d.Detail != "Screening not found" {
		t.Errorf("before submit: %d %q", code, d.Detail)
	}

	var s model.InitialScreening
	mustCreate(t, r, "/screening/", `{"user_id":"`+u.ID+`","answers":["I sometimes hear voices","Hearing voices at night"]}`, &s)
	if s.Result != model.ScreeningBlock {
		t.Errorf("result = %q, want block", s.Result)
	}

	var got model.InitialScreening
	if code := do(t, r, http.MethodGet, "/screening/"+u.ID, "", &got); code != http.StatusOK || got.ID != s.ID {
		t.Errorf("get screening: %d %+v", code, got)
	}

	if code := do(t, r, http.MethodPost, "/screening", `{"user_id":"nope","answers":[]}`, &d); code != http.StatusNotFound {
		t.Errorf("unknown user: %d", code)
	}
}

func TestBadQueryTime(t *testing.T) {
	r := setup(t, service.BookingConfig{})
	var d detail
	if code := do(t, r, http.MethodGet, "/availability?start_date=tomorrow", "", &d); code != http.StatusBadRequest {
		t.Errorf("status %d", code)
	}
}
