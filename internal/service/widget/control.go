package widget

import (
	"context"
	"errors"
	"fmt"
	"net"

	"google.golang.org/grpc"

	api "github.com/oshokin/alarm-clock/internal/api/grpc/alarmclock"
	"github.com/oshokin/alarm-clock/internal/logger"
)

// serveControl runs the control API on lis and blocks until ctx is canceled or the server stops.
func serveControl(ctx context.Context, lis net.Listener, service api.Service) error {
	grpcServer := grpc.NewServer()
	api.RegisterControlServer(grpcServer, api.NewServer(service))

	logger.InfoKV(ctx, "Control API listening", "listen_address", lis.Addr().String())

	// Done channel is closed after GracefulStop finishes to ensure we block
	// until the server fully stops before returning.
	done := make(chan struct{})

	go func() {
		<-ctx.Done()
		logger.Info(ctx, "Shutting down control API")
		grpcServer.GracefulStop()
		close(done)
	}()

	if err := grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("serve gRPC: %w", err)
	}

	<-done
	logger.Info(ctx, "Control API stopped")

	return nil
}
