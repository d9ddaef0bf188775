//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"context"
	"errors"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	api "github.com/oshokin/alarm-clock/internal/api/grpc/alarmclock"
	"github.com/oshokin/alarm-clock/internal/config"
	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
)

// Client wraps the control API client with timeouts and actor propagation.
type Client struct {
	// conn is the underlying gRPC connection to the alarm clock.
	conn *grpc.ClientConn
	// api is the control service client.
	api *api.ControlClient
	// actor is attached to every call.
	actor *domain.Actor

	// callTimeout is the default timeout for individual RPC calls.
	callTimeout time.Duration
}

// Option configures client behaviour.
type Option func(*Client)

// WithCallTimeout sets a default timeout for service calls.
func WithCallTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.callTimeout = timeout
		}
	}
}

// WithActor records actor as the author of every change made through the client.
func WithActor(actor *domain.Actor) Option {
	return func(c *Client) {
		c.actor = actor.Clone()
	}
}

// errAddressRequired is returned when a required address value is missing.
var errAddressRequired = errors.New("address must be provided")

// Dial creates a client for the alarm clock control API.
// The connection is plaintext: the control API is meant to listen on loopback.
func Dial(_ context.Context, address string, opts ...Option) (*Client, error) {
	if address == "" {
		return nil, errAddressRequired
	}

	conn, err := grpc.NewClient(address, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("dial alarm clock: %w", err)
	}

	client := &Client{
		conn:        conn,
		api:         api.NewControlClient(conn),
		callTimeout: config.DefaultTimeout,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

// Close releases the underlying gRPC connection.
func (c *Client) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}

	return c.conn.Close()
}

// SetAlarm arms the remote alarm for input ("HH:MM").
// A rejected input is reported as domain.ErrInvalidAlarmTime.
func (c *Client) SetAlarm(ctx context.Context, input string) (*domain.State, error) {
	state, err := c.call(ctx, "set alarm", func(ctx context.Context) (*structpb.Struct, error) {
		return c.api.SetAlarm(ctx, wrapperspb.String(input))
	})
	if status.Code(err) == codes.InvalidArgument {
		return nil, fmt.Errorf("set alarm %q: %w", input, domain.ErrInvalidAlarmTime)
	}

	return state, err
}

// ClearAlarm disarms the remote alarm.
func (c *Client) ClearAlarm(ctx context.Context) (*domain.State, error) {
	return c.call(ctx, "clear alarm", func(ctx context.Context) (*structpb.Struct, error) {
		return c.api.ClearAlarm(ctx, new(emptypb.Empty))
	})
}

// StopSound silences the remote alarm.
func (c *Client) StopSound(ctx context.Context) (*domain.State, error) {
	return c.call(ctx, "stop sound", func(ctx context.Context) (*structpb.Struct, error) {
		return c.api.StopSound(ctx, new(emptypb.Empty))
	})
}

// GetState reads the remote alarm state.
func (c *Client) GetState(ctx context.Context) (*domain.State, error) {
	return c.call(ctx, "get state", func(ctx context.Context) (*structpb.Struct, error) {
		return c.api.GetState(ctx, new(emptypb.Empty))
	})
}

// GetStateMessage reads the remote alarm state as the raw wire message.
func (c *Client) GetStateMessage(ctx context.Context) (*structpb.Struct, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := c.api.GetState(callCtx, new(emptypb.Empty))
	if err != nil {
		return nil, fmt.Errorf("get state: %w", err)
	}

	return resp, nil
}

func (c *Client) call(
	ctx context.Context,
	operation string,
	invoke func(ctx context.Context) (*structpb.Struct, error),
) (*domain.State, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	resp, err := invoke(api.WithActor(callCtx, c.actor))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", operation, err)
	}

	state, err := api.StateFromProto(resp)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", operation, err)
	}

	return state, nil
}

// callContext returns a context with the client's call timeout if configured,
// otherwise a cancellable child context without a deadline.
func (c *Client) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.callTimeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, c.callTimeout)
}
