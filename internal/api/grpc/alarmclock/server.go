package alarmclock

import (
	"context"
	"errors"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
)

// Service abstracts the alarm operations the transport layer depends on.
type Service interface {
	SetAlarm(ctx context.Context, actor *domain.Actor, input string) (time.Time, error)
	ClearAlarm(ctx context.Context, actor *domain.Actor)
	StopSound(ctx context.Context, actor *domain.Actor)
	State() *domain.State
}

// Server implements ControlServer on top of a Service.
type Server struct {
	// service provides the alarm operations.
	service Service
}

// NewServer wires the provided service implementation into a gRPC handler.
func NewServer(service Service) *Server {
	return &Server{
		service: service,
	}
}

// SetAlarm arms the alarm. Invalid times map to InvalidArgument.
func (s *Server) SetAlarm(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	if _, err := s.service.SetAlarm(ctx, ActorFromContext(ctx), req.GetValue()); err != nil {
		if errors.Is(err, domain.ErrInvalidAlarmTime) {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}

		return nil, status.Error(codes.Internal, "unable to arm alarm")
	}

	return s.state()
}

// ClearAlarm disarms the alarm and stops the tone.
func (s *Server) ClearAlarm(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	s.service.ClearAlarm(ctx, ActorFromContext(ctx))

	return s.state()
}

// StopSound silences the tone without disarming.
func (s *Server) StopSound(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	s.service.StopSound(ctx, ActorFromContext(ctx))

	return s.state()
}

// GetState returns the current alarm state.
func (s *Server) GetState(context.Context, *emptypb.Empty) (*structpb.Struct, error) {
	return s.state()
}

func (s *Server) state() (*structpb.Struct, error) {
	result, err := StateToProto(s.service.State())
	if err != nil {
		return nil, status.Error(codes.Internal, "unable to encode state")
	}

	return result, nil
}
