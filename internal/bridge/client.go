package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"nhooyr.io/websocket"

	"artbridge/internal/logging"
)

// ErrNotConnected is returned by Send while no session is established.
var ErrNotConnected = errors.New("bridge: not connected")

// State is the connection state of a Client.
type State int

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
	StateBackoff
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateBackoff:
		return "backoff"
	default:
		return "disconnected"
	}
}

// retryDelay is the fixed pause between reconnect attempts.
const retryDelay = 3 * time.Second

// Client maintains a websocket session to a bridge server, reconnecting
// with a fixed delay until its context is canceled.
type Client struct {
	url        string
	clientType string
	onMessage  func(*Inbound)
	logger     *slog.Logger

	mu    sync.Mutex
	state State
	conn  *websocket.Conn
}

// NewClient prepares a client for url. A non-empty clientType is sent as an
// identify message after each successful connect. onMessage may be nil.
func NewClient(url, clientType string, onMessage func(*Inbound), logger *slog.Logger) *Client {
	return &Client{
		url:        url,
		clientType: clientType,
		onMessage:  onMessage,
		logger:     logging.NewComponentLogger(logger, "client"),
	}
}

// State reports the current connection state.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Client) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

// Send marshals msg onto the live session.
func (c *Client) Send(ctx context.Context, msg any) error {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()
	if conn == nil {
		return ErrNotConnected
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return conn.Write(ctx, websocket.MessageText, data)
}

// Run connects and serves inbound messages until ctx is canceled. Every
// disconnect, including a failed dial, is followed by one fixed-length
// backoff before the next attempt.
func (c *Client) Run(ctx context.Context) error {
	timer := time.NewTimer(retryDelay)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		c.setState(StateConnecting)
		conn, _, err := websocket.Dial(ctx, c.url, nil)
		if err != nil {
			if ctx.Err() != nil {
				c.setState(StateDisconnected)
				return ctx.Err()
			}
			c.logger.Debug("connect failed", logging.Error(err))
		} else {
			c.serve(ctx, conn)
			if ctx.Err() != nil {
				c.setState(StateDisconnected)
				return ctx.Err()
			}
		}

		c.setState(StateBackoff)
		timer.Reset(retryDelay)
		select {
		case <-ctx.Done():
			c.setState(StateDisconnected)
			return ctx.Err()
		case <-timer.C:
		}
	}
}

func (c *Client) serve(ctx context.Context, conn *websocket.Conn) {
	c.mu.Lock()
	c.conn = conn
	c.state = StateConnected
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.conn = nil
		c.mu.Unlock()
		_ = conn.Close(websocket.StatusNormalClosure, "")
	}()

	if c.clientType != "" {
		if err := c.Send(ctx, Identify{Type: TypeIdentify, ClientType: c.clientType}); err != nil {
			c.logger.Warn("identify failed", logging.Error(err))
			return
		}
	}

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			c.logger.Debug("session ended", logging.Error(err))
			return
		}
		msg, err := Decode(data)
		if err != nil {
			c.logger.Warn("undecodable frame ignored", logging.Error(err))
			continue
		}
		if c.onMessage != nil {
			c.onMessage(msg)
		}
	}
}
