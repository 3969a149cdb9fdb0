package grpcweb

import (
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"counseling-booking-api/internal/middleware"
)

// Bridge translates gRPC-Web (browser HTTP/1.1) into native gRPC calls.
// Message bytes are forwarded untouched.
type Bridge struct {
	conn   *grpc.ClientConn
	logger *slog.Logger
}

// New dials the gRPC server at target (e.g. "localhost:50051").
func New(target string, logger *slog.Logger, opts ...grpc.DialOption) (*Bridge, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(target, opts...)
	if err != nil {
		return nil, fmt.Errorf("grpcweb dial: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Bridge{conn: conn, logger: logger}, nil
}

func (b *Bridge) Close() error { return b.conn.Close() }

// Handler returns an http.Handler that translates gRPC-Web to gRPC.
func (b *Bridge) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		ct := r.Header.Get("Content-Type")
		if !strings.HasPrefix(ct, "application/grpc-web") {
			http.Error(w, "not grpc-web", http.StatusUnsupportedMediaType)
			return
		}
		if ct == "application/grpc-web" {
			ct = "application/grpc-web+json"
		}
		b.logger.Debug("grpc-web", slog.String("method", r.URL.Path))
		b.forward(w, r, ct)
	})
}

func (b *Bridge) forward(w http.ResponseWriter, r *http.Request, ct string) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, ct, codes.Internal, "read body failed")
		return
	}
	if len(body) < 5 {
		writeError(w, ct, codes.InvalidArgument, "body too short")
		return
	}

	// grpc-web frame: 1-byte flag + 4-byte big-endian length + message
	msgLen := binary.BigEndian.Uint32(body[1:5])
	if int(msgLen)+5 > len(body) {
		writeError(w, ct, codes.InvalidArgument, "incomplete frame")
		return
	}
	payload := body[5 : 5+msgLen]

	ctx := r.Context()
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		ctx = metadata.AppendToOutgoingContext(ctx, middleware.ForwardedForKey, host)
	}

	resp := &rawMsg{}
	err = b.conn.Invoke(ctx, r.URL.Path, &rawMsg{data: payload}, resp, grpc.ForceCodec(rawCodec{}))
	if err != nil {
		st := status.Convert(err)
		b.logger.Info("grpc-web call failed",
			slog.String("method", r.URL.Path),
			slog.String("code", st.Code().String()),
		)
		writeError(w, ct, st.Code(), st.Message())
		return
	}
	writeSuccess(w, ct, resp.data)
}

// rawMsg wraps already encoded message bytes.
type rawMsg struct{ data []byte }

// rawCodec passes bytes through without marshal/unmarshal.
type rawCodec struct{}

func (rawCodec) Marshal(v any) ([]byte, error) {
	return v.(*rawMsg).data, nil
}

func (rawCodec) Unmarshal(data []byte, v any) error {
	m := v.(*rawMsg)
	m.data = append([]byte(nil), data...)
	return nil
}

func (rawCodec) Name() string { return "json" }

func frame(flag byte, data []byte) []byte {
	f := make([]byte, 5+len(data))
	f[0] = flag
	binary.BigEndian.PutUint32(f[1:5], uint32(len(data)))
	copy(f[5:], data)
	return f
}

func trailer(code codes.Code, msg string) []byte {
	t := fmt.Sprintf("grpc-status:%d\r\n", code)
	if msg != "" {
		t += fmt.Sprintf("grpc-message:%s\r\n", msg)
	}
	return frame(0x80, []byte(t))
}

func writeError(w http.ResponseWriter, ct string, code codes.Code, msg string) {
	w.Header().Set("Content-Type", ct)
	w.WriteHeader(http.StatusOK)
	w.Write(trailer(code, msg))
}

func writeSuccess(w http.ResponseWriter, ct string, data []byte) {
	w.Header().Set("Content-Type", ct)
	w.WriteHeader(http.StatusOK)
	w.Write(frame(0x00, data))
	w.Write(trailer(codes.OK, ""))
}
