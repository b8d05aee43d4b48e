package handler

import (
	"context"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

const HealthServiceName = "bakery.Storefront"

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type PingerFunc func(ctx context.Context) error

func (f PingerFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

// HealthHandler publishes the storefront's serving status over the standard
// gRPC health protocol, following a periodic storage ping.
type HealthHandler struct {
	server   *health.Server
	pinger   Pinger
	interval time.Duration
	logger   *zap.Logger
}

func NewHealthHandler(pinger Pinger, interval time.Duration, logger *zap.Logger) *HealthHandler {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	srv := health.NewServer()
	srv.SetServingStatus(HealthServiceName, grpc_health_v1.HealthCheckResponse_NOT_SERVING)
	return &HealthHandler{
		server:   srv,
		pinger:   pinger,
		interval: interval,
		logger:   logger,
	}
}

func (h *HealthHandler) Register(s *grpc.Server) {
	grpc_health_v1.RegisterHealthServer(s, h.server)
}

// Check pings storage once and updates the serving status.
func (h *HealthHandler) Check(ctx context.Context) grpc_health_v1.HealthCheckResponse_ServingStatus {
	pingCtx, cancel := context.WithTimeout(ctx, h.interval)
	defer cancel()

	status := grpc_health_v1.HealthCheckResponse_SERVING
	if err := h.pinger.Ping(pingCtx); err != nil {
		h.logger.Warn("storage ping failed", zap.Error(err))
		status = grpc_health_v1.HealthCheckResponse_NOT_SERVING
	}
	h.server.SetServingStatus(HealthServiceName, status)
	h.server.SetServingStatus("", status)
	return status
}

// Watch runs Check every interval until ctx is done.
func (h *HealthHandler) Watch(ctx context.Context) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	h.Check(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.Check(ctx)
		}
	}
}

// Shutdown reports NOT_SERVING for every service and ignores later updates.
func (h *HealthHandler) Shutdown() {
	h.server.Shutdown()
}

func (h *HealthHandler) Server() grpc_health_v1.HealthServer {
	return h.server
}
