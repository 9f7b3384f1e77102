// Package health reports remote store reachability over the standard gRPC
// health service.
package health

import (
	"context"
	"time"

	"github.com/bharatsutharx/radiology-center-2/internal/pkg/logger"
	"go.uber.org/zap"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// RemoteStoreService is the health service name tracking Postgres. The
// overall ("") status stays SERVING while the local store covers for it.
const RemoteStoreService = "radiology.RemoteStore"

type Pinger interface {
	PingContext(ctx context.Context) error
}

type Prober struct {
	db       Pinger
	server   *health.Server
	interval time.Duration
	logger   logger.ZapLogger
	last     healthpb.HealthCheckResponse_ServingStatus
}

// NewProber tracks db, which may be nil when no remote store is configured.
func NewProber(db Pinger, server *health.Server, interval time.Duration, log logger.ZapLogger) *Prober {
	server.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	return &Prober{
		db:       db,
		server:   server,
		interval: interval,
		logger:   log,
		last:     healthpb.HealthCheckResponse_UNKNOWN,
	}
}

// Check pings the remote store once and publishes the result.
func (p *Prober) Check(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if p.db != nil {
		ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err := p.db.PingContext(ctx)
		cancel()
		if err == nil {
			status = healthpb.HealthCheckResponse_SERVING
		} else if p.last != healthpb.HealthCheckResponse_NOT_SERVING {
			p.logger.Warn("remote store unreachable", zap.Error(err))
		}
	}

	if status != p.last {
		p.logger.Info("remote store health changed", zap.String("status", status.String()))
		p.last = status
	}
	p.server.SetServingStatus(RemoteStoreService, status)
	return status
}

// Run checks on every tick until ctx is done.
func (p *Prober) Run(ctx context.Context) {
	p.Check(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.Check(ctx)
		}
	}
}
