package grpcweb_test

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/test/bufconn"

	"counseling-booking-api/internal/grpcweb"
	"counseling-booking-api/internal/handler"
	"counseling-booking-api/internal/meet"
	"counseling-booking-api/internal/model"
	"counseling-booking-api/internal/service"
	"counseling-booking-api/internal/store"
)

func setup(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st := store.NewMemory()
	clock := service.ClockFunc(func() time.Time { return time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC) })
	h := handler.New(
		service.NewDirectory(st, clock),
		service.NewAvailability(st, clock),
		service.NewBooking(st, meet.Stub{}, clock, service.BookingConfig{}, logger),
		service.NewScreening(st, clock),
		logger,
	)

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer(grpc.ForceServerCodec(handler.Codec{}))
	handler.Register(srv, h)
	go srv.Serve(lis)
	t.Cleanup(srv.Stop)

	b, err := grpcweb.New("passthrough:///bufnet", logger,
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
	)
	if err != nil {
		t.Fatalf("bridge: %v", err)
	}
	t.Cleanup(func() { b.Close() })
	return b.Handler()
}

func frame(msg []byte) []byte {
	f := make([]byte, 5+len(msg))
	binary.BigEndian.PutUint32(f[1:5], uint32(len(msg)))
	copy(f[5:], msg)
	return f
}

// readFrames splits a grpc-web body into its data payload and trailer text.
func readFrames(t *testing.T, body []byte) (data []byte, trailer string) {
	t.Helper()
	for len(body) >= 5 {
		n := int(binary.BigEndian.Uint32(body[1:5]))
		if len(body) < 5+n {
			t.Fatalf("truncated frame")
		}
		if body[0]&0x80 != 0 {
			trailer += string(body[5 : 5+n])
		} else {
			data = body[5 : 5+n]
		}
		body = body[5+n:]
	}
	return data, trailer
}

func post(t *testing.T, h http.Handler, method string, msg any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(msg)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, handler.FullMethod(method), bytes.NewReader(frame(raw)))
	req.Header.Set("Content-Type", "application/grpc-web+json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestBridgeForwardsCalls(t *testing.T) {
	h := setup(t)

	rec := post(t, h, "CreateUser", handler.CreateUserRequest{Name: "Ana", Email: "ana@example.com", Role: "client"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/grpc-web+json" {
		t.Errorf("content type %q", ct)
	}
	data, trailer := readFrames(t, rec.Body.Bytes())
	if !strings.Contains(trailer, "grpc-status:0") {
		t.Fatalf("trailer %q", trailer)
	}
	var resp handler.UserResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.User.Role != model.RoleClient || resp.User.ID == "" {
		t.Errorf("user %+v", resp.User)
	}
}

func TestBridgeReportsStatus(t *testing.T) {
	h := setup(t)

	rec := post(t, h, "GetUser", handler.GetUserRequest{ID: "missing"})
	data, trailer := readFrames(t, rec.Body.Bytes())
	if len(data) != 0 {
		t.Errorf("unexpected data frame %q", data)
	}
	if !strings.Contains(trailer, "grpc-status:5") || !strings.Contains(trailer, "grpc-message:user not found") {
		t.Errorf("trailer %q", trailer)
	}
}

func TestBridgeRejectsNonGrpcWeb(t *testing.T) {
	h := setup(t)

	req := httptest.NewRequest(http.MethodPost, handler.FullMethod("ListUsers"), strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnsupportedMediaType {
		t.Errorf("json body: %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, handler.FullMethod("ListUsers"), nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("get: %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, handler.FullMethod("ListUsers"), bytes.NewReader([]byte{0, 0}))
	req.Header.Set("Content-Type", "application/grpc-web+json")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if _, trailer := readFrames(t, rec.Body.Bytes()); !strings.Contains(trailer, "grpc-status:3") {
		t.Errorf("short body trailer %q", trailer)
	}
}
