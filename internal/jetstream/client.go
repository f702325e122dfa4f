// Package jetstream maintains the websocket subscription to the Bluesky
// Jetstream firehose.
package jetstream

import (
	"context"
	"fmt"
	"time"

	"github.com/gorilla/websocket"

	"github.com/jonesrussell/skypulse/internal/logger"
	"github.com/jonesrussell/skypulse/internal/retry"
)

const (
	dialTimeout  = 10 * time.Second
	dialAttempts = 5
)

// Client dials the Jetstream endpoint. There is no persisted cursor: a new
// subscription starts from "now", so events published while disconnected
// are not replayed.
type Client struct {
	url string
	log logger.Logger
}

// NewClient creates a Jetstream client for the given subscription URL.
func NewClient(url string, log logger.Logger) *Client {
	return &Client{url: url, log: log}
}

// Connect establishes the websocket subscription, retrying transient dial
// failures with backoff.
func (c *Client) Connect(ctx context.Context) (*Conn, error) {
	c.log.Info("connecting to jetstream", logger.String("url", c.url))

	dialer := &websocket.Dialer{HandshakeTimeout: dialTimeout}

	var ws *websocket.Conn
	err := retry.Retry(ctx, retry.Config{
		MaxAttempts:  dialAttempts,
		InitialDelay: time.Second,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
		IsRetryable:  func(error) bool { return true },
	}, func() error {
		conn, _, dialErr := dialer.DialContext(ctx, c.url, nil)
		if dialErr != nil {
			c.log.Warn("jetstream dial failed", logger.Error(dialErr))
			return dialErr
		}
		ws = conn
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("connect to jetstream: %w", err)
	}

	c.log.Info("connected to jetstream")
	return &Conn{ws: ws}, nil
}

// Conn is an established subscription.
type Conn struct {
	ws *websocket.Conn
}

// Read blocks until the next frame arrives. A read error means the
// subscription is gone; the caller must reconnect or exit.
func (c *Conn) Read() ([]byte, error) {
	_, frame, err := c.ws.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("read stream frame: %w", err)
	}
	return frame, nil
}

// Close tears down the subscription. Closing unblocks a pending Read.
func (c *Conn) Close() error {
	return c.ws.Close()
}
