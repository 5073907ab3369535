package grpc

import (
	"context"
	"errors"
	"log/slog"
	"net"

	"github.com/aq2208/gstore-api/internal/logging"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the health entry reported for the cart store.
const ServiceName = "gstore.Store"

// HealthServer exposes grpc.health.v1.Health for orchestrators.
type HealthServer struct {
	srv    *grpc.Server
	health *health.Server
	log    *slog.Logger
}

func NewHealthServer(opts ...grpc.ServerOption) *HealthServer {
	h := &HealthServer{
		srv:    grpc.NewServer(opts...),
		health: health.NewServer(),
		log:    logging.New("grpc-health"),
	}
	healthpb.RegisterHealthServer(h.srv, h.health)
	h.SetServing(false)
	return h
}

// SetServing flips both the overall and the store status.
func (h *HealthServer) SetServing(ok bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if ok {
		status = healthpb.HealthCheckResponse_SERVING
	}
	h.health.SetServingStatus("", status)
	h.health.SetServingStatus(ServiceName, status)
}

// Serve blocks until ctx is done or the listener fails.
func (h *HealthServer) Serve(ctx context.Context, lis net.Listener) error {
	errCh := make(chan error, 1)
	go func() { errCh <- h.srv.Serve(lis) }()
	h.log.Info("grpc health listening", "addr", lis.Addr().String())

	select {
	case <-ctx.Done():
		h.health.Shutdown()
		h.srv.GracefulStop()
		<-errCh
		return nil
	case err := <-errCh:
		if errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return err
	}
}
