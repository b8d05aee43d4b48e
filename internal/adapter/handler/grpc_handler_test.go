package handler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc/health/grpc_health_v1"
)

func checkStatus(t *testing.T, h *HealthHandler) grpc_health_v1.HealthCheckResponse_ServingStatus {
	t.Helper()
	resp, err := h.Server().Check(context.Background(), &grpc_health_v1.HealthCheckRequest{Service: HealthServiceName})
	if err != nil {
		t.Fatalf("health check failed: %v", err)
	}
	return resp.GetStatus()
}

func TestHealth_FollowsStoragePing(t *testing.T) {
	var down atomic.Bool
	pinger := PingerFunc(func(ctx context.Context) error {
		if down.Load() {
			return errors.New("connection refused")
		}
		return nil
	})
	h := NewHealthHandler(pinger, time.Second, zap.NewNop())

	if got := checkStatus(t, h); got != grpc_health_v1.HealthCheckResponse_NOT_SERVING {
		t.Errorf("expected NOT_SERVING before first ping, got %s", got)
	}

	h.Check(context.Background())
	if got := checkStatus(t, h); got != grpc_health_v1.HealthCheckResponse_SERVING {
		t.Errorf("expected SERVING, got %s", got)
	}

	down.Store(true)
	h.Check(context.Background())
	if got := checkStatus(t, h); got != grpc_health_v1.HealthCheckResponse_NOT_SERVING {
		t.Errorf("expected NOT_SERVING after failed ping, got %s", got)
	}
}

func TestHealth_WatchStopsWithContext(t *testing.T) {
	var pings atomic.Int32
	pinger := PingerFunc(func(ctx context.Context) error {
		pings.Add(1)
		return nil
	})
	h := NewHealthHandler(pinger, 10*time.Millisecond, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		h.Watch(ctx)
		close(done)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for pings.Load() < 3 {
		if time.Now().After(deadline) {
			t.Fatal("watch did not ping")
		}
		time.Sleep(5 * time.Millisecond)
	}
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestHealth_Shutdown(t *testing.T) {
	h := NewHealthHandler(PingerFunc(func(ctx context.Context) error { return nil }), time.Second, zap.NewNop())
	h.Check(context.Background())

	h.Shutdown()
	h.Check(context.Background())

	if got := checkStatus(t, h); got != grpc_health_v1.HealthCheckResponse_NOT_SERVING {
		t.Errorf("expected NOT_SERVING after shutdown, got %s", got)
	}
}
