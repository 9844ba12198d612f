package grpcclient

import (
	"context"
	"fmt"

	"github.com/MikhailRaia/shortener-form/internal/middleware"
	"github.com/MikhailRaia/shortener-form/internal/model"
	"github.com/MikhailRaia/shortener-form/internal/proto"
	"github.com/MikhailRaia/shortener-form/internal/shortener"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Client calls a remote ShorteningService over gRPC.
type Client struct {
	conn   *grpc.ClientConn
	client proto.ShorteningServiceClient
}

// Dial creates a client for the service at address. Extra dial options are
// appended after the defaults (plaintext transport, call logging).
func Dial(address string, opts ...grpc.DialOption) (*Client, error) {
	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(middleware.UnaryClientLogger),
	}, opts...)

	conn, err := grpc.NewClient(address, dialOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create grpc client for %s: %w", address, err)
	}

	return &Client{
		conn:   conn,
		client: proto.NewShorteningServiceClient(conn),
	}, nil
}

// Shorten forwards the request to the remote service.
func (c *Client) Shorten(ctx context.Context, req model.ShortenRequest) (model.ShortenResult, error) {
	resp, err := c.client.Shorten(ctx, proto.NewShortenRequest(req))
	if err != nil {
		return model.ShortenResult{}, fmt.Errorf("error calling shortener: %w", err)
	}

	return shortener.CheckResult(model.ShortenResult{ShortURL: resp.GetValue()})
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	return c.conn.Close()
}
