package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"counseling-booking-api/internal/config"
	gweb "counseling-booking-api/internal/grpcweb"
	"counseling-booking-api/internal/handler"
	"counseling-booking-api/internal/httpapi"
	"counseling-booking-api/internal/meet"
	"counseling-booking-api/internal/middleware"
	"counseling-booking-api/internal/seed"
	"counseling-booking-api/internal/service"
	"counseling-booking-api/internal/store"
)

func main() {
	cfgPath := flag.String("config", "", "optional YAML config file")
	flag.Parse()

	if err := run(*cfgPath); err != nil {
		slog.Error("server exited", slog.Any("err", err))
		os.Exit(1)
	}
}

func run(cfgPath string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	level, _ := cfg.Level()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx := context.Background()

	// storage
	var st store.Store
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("db: %w", err)
		}
		defer pool.Close()
		if err := pool.Ping(ctx); err != nil {
			return fmt.Errorf("db ping: %w", err)
		}
		pg := store.New(pool)
		if err := pg.Migrate(ctx); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		logger.Info("connected to postgres")
		st = pg
	} else {
		logger.Info("using in-memory store")
		st = store.NewMemory()
	}

	links := meet.Stub{}
	if cfg.Seed {
		if err := loadSeed(ctx, st, cfg, links, logger); err != nil {
			return err
		}
	}

	clock := service.SystemClock{}
	h := handler.New(
		service.NewDirectory(st, clock),
		service.NewAvailability(st, clock),
		service.NewBooking(st, links, clock, service.BookingConfig{
			MonthlyCap:  cfg.MonthlyCap,
			StrictSlots: cfg.StrictSlots,
		}, logger),
		service.NewScreening(st, clock),
		logger,
	)

	// grpc server
	rl := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	defer rl.Close()
	srv := grpc.NewServer(
		grpc.ForceServerCodec(handler.Codec{}),
		grpc.ChainUnaryInterceptor(
			middleware.Logging(logger),
			middleware.RateLimit(rl),
		),
	)
	handler.Register(srv, h)
	healthpb.RegisterHealthServer(srv, health.NewServer())

	lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	go func() {
		logger.Info("grpc listening", slog.String("port", cfg.GRPCPort))
		if err := srv.Serve(lis); err != nil {
			logger.Error("grpc", slog.Any("err", err))
		}
	}()

	// grpc-web bridge forwards browser requests to grpc on localhost
	bridge, err := gweb.New("localhost:"+cfg.GRPCPort, logger)
	if err != nil {
		return fmt.Errorf("bridge: %w", err)
	}
	defer bridge.Close()

	r := mux.NewRouter()
	r.PathPrefix("/" + handler.ServiceName + "/").Handler(bridge.Handler())
	r.PathPrefix("/grpc.health.v1.Health/").Handler(bridge.Handler())

	rest := r.NewRoute().Subrouter()
	rest.Use(middleware.RateLimitHTTP(rl))
	httpapi.New(h).Routes(rest)

	httpSrv := &http.Server{
		Addr:              ":" + cfg.WebPort,
		Handler:           middleware.LoggingHTTP(logger)(middleware.CORS(r)),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("http listening", slog.String("port", cfg.WebPort))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http", slog.Any("err", err))
		}
	}()

	// graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown", slog.Any("err", err))
	}

	done := make(chan struct{})
	go func() {
		srv.GracefulStop()
		close(done)
	}()
	select {
	case <-done:
	case <-shutdownCtx.Done():
		srv.Stop()
	}
	return nil
}

// loadSeed writes demo data into an empty store.
func loadSeed(ctx context.Context, st store.Store, cfg *config.Config, links meet.Allocator, logger *slog.Logger) error {
	users, err := st.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("seed check: %w", err)
	}
	if len(users) > 0 {
		logger.Info("store not empty, skipping seed", slog.Int("users", len(users)))
		return nil
	}

	opts := seed.Options{Now: time.Now(), Links: links}
	if cfg.SeedRandom != 0 {
		opts.Rand = rand.New(rand.NewPCG(uint64(cfg.SeedRandom), 0))
	}
	sum, err := seed.Load(ctx, st, opts)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	logger.Info("seeded demo data",
		slog.Int("clients", len(sum.ClientIDs)),
		slog.Int("counselors", len(sum.CounselorIDs)),
		slog.Int("slots", sum.Slots),
		slog.Int("appointments", sum.Appointments),
	)
	return nil
}
