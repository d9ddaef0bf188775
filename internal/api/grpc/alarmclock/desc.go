package alarmclock

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName is the fully qualified gRPC service name of the control API.
const ServiceName = "alarmclock.v1.AlarmClockService"

// Full method names.
const (
	FullMethodSetAlarm   = "/" + ServiceName + "/SetAlarm"
	FullMethodClearAlarm = "/" + ServiceName + "/ClearAlarm"
	FullMethodStopSound  = "/" + ServiceName + "/StopSound"
	FullMethodGetState   = "/" + ServiceName + "/GetState"
)

// ControlServer is the server API of the alarm clock control service.
// Messages are protobuf well-known types: the alarm time travels as a
// StringValue and the alarm state as a Struct.
type ControlServer interface {
	SetAlarm(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error)
	ClearAlarm(ctx context.Context, req *emptypb.Empty) (*structpb.Struct, error)
	StopSound(ctx context.Context, req *emptypb.Empty) (*structpb.Struct, error)
	GetState(ctx context.Context, req *emptypb.Empty) (*structpb.Struct, error)
}

// serviceDesc describes the control service for grpc.Server registration.
//
//nolint:gochecknoglobals // Service descriptors are static, as in generated code.
var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ControlServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "SetAlarm",
			Handler:    unaryHandler(FullMethodSetAlarm, newStringValue, ControlServer.SetAlarm),
		},
		{
			MethodName: "ClearAlarm",
			Handler:    unaryHandler(FullMethodClearAlarm, newEmpty, ControlServer.ClearAlarm),
		},
		{
			MethodName: "StopSound",
			Handler:    unaryHandler(FullMethodStopSound, newEmpty, ControlServer.StopSound),
		},
		{
			MethodName: "GetState",
			Handler:    unaryHandler(FullMethodGetState, newEmpty, ControlServer.GetState),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "alarmclock/v1/control.proto",
}

// RegisterControlServer registers srv on the gRPC server.
func RegisterControlServer(s grpc.ServiceRegistrar, srv ControlServer) {
	s.RegisterService(&serviceDesc, srv)
}

func newStringValue() *wrapperspb.StringValue { return new(wrapperspb.StringValue) }

func newEmpty() *emptypb.Empty { return new(emptypb.Empty) }

// unaryHandler adapts a typed ControlServer method to a grpc.MethodHandler.
func unaryHandler[Req proto.Message](
	fullMethod string,
	newRequest func() Req,
	call func(ControlServer, context.Context, Req) (*structpb.Struct, error),
) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := newRequest()
		if err := dec(in); err != nil {
			return nil, err
		}

		if interceptor == nil {
			return call(srv.(ControlServer), ctx, in)
		}

		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}

		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(ControlServer), ctx, req.(Req))
		}

		return interceptor(ctx, in, info, handler)
	}
}

// ControlClient calls the control service over a client connection.
type ControlClient struct {
	cc grpc.ClientConnInterface
}

// NewControlClient wraps cc.
func NewControlClient(cc grpc.ClientConnInterface) *ControlClient {
	return &ControlClient{cc: cc}
}

// SetAlarm arms the alarm for the "HH:MM" value.
func (c *ControlClient) SetAlarm(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, FullMethodSetAlarm, in, opts...)
}

// ClearAlarm disarms the alarm.
func (c *ControlClient) ClearAlarm(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, FullMethodClearAlarm, in, opts...)
}

// StopSound silences a ringing alarm.
func (c *ControlClient) StopSound(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, FullMethodStopSound, in, opts...)
}

// GetState reads the alarm state.
func (c *ControlClient) GetState(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, FullMethodGetState, in, opts...)
}

func (c *ControlClient) invoke(ctx context.Context, method string, in proto.Message, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}

	return out, nil
}
