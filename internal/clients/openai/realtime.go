package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"realtime-bridge/internal/observability"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

var (
	ErrClosed        = errors.New("realtime connection closed")
	ErrMissingAPIKey = errors.New("OpenAI API key is required")
)

const (
	dialTimeout  = 10 * time.Second
	writeTimeout = 5 * time.Second
)

// RealtimeDialer opens model leg connections against the Realtime API.
type RealtimeDialer struct {
	baseURL string
	dialer  *websocket.Dialer
	logger  *observability.Logger
}

func NewRealtimeDialer(baseURL string, logger *observability.Logger) *RealtimeDialer {
	return &RealtimeDialer{
		baseURL: baseURL,
		dialer: &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: dialTimeout,
		},
		logger: logger,
	}
}

// Dial connects with the given key and model.
func (d *RealtimeDialer) Dial(ctx context.Context, apiKey, model string) (*RealtimeConn, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	u, err := url.Parse(d.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse realtime url: %w", err)
	}
	q := u.Query()
	q.Set("model", model)
	u.RawQuery = q.Encode()

	headers := http.Header{}
	headers.Set("Authorization", "Bearer "+apiKey)
	headers.Set("OpenAI-Beta", "realtime=v1")

	dialCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()

	ws, resp, err := d.dialer.DialContext(dialCtx, u.String(), headers)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("failed to connect to realtime api (status %d): %w", resp.StatusCode, err)
		}
		return nil, fmt.Errorf("failed to connect to realtime api: %w", err)
	}

	d.logger.Info(observability.WithFields(ctx,
		observability.Field{Key: "model", Value: model},
	), "connected to realtime api")

	return &RealtimeConn{ws: ws}, nil
}

// RealtimeConn is one model leg websocket. Send may be called from any
// goroutine; Receive from a single reader.
type RealtimeConn struct {
	ws *websocket.Conn

	writeMutex sync.Mutex
	closeOnce  sync.Once
	closed     bool
}

// Send writes a client event as JSON.
func (c *RealtimeConn) Send(ctx context.Context, event interface{}) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal realtime event: %w", err)
	}

	c.writeMutex.Lock()
	defer c.writeMutex.Unlock()

	if c.closed {
		return ErrClosed
	}

	deadline := time.Now().Add(writeTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = c.ws.SetWriteDeadline(deadline)

	if err := c.ws.WriteMessage(websocket.TextMessage, data); err != nil {
		return fmt.Errorf("failed to send realtime event: %w", err)
	}
	return nil
}

// Receive blocks for the next server event. Normal closes, including our own
// Close, are reported as ErrClosed.
func (c *RealtimeConn) Receive() ([]byte, error) {
	for {
		msgType, msg, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) || c.isClosed() {
				return nil, ErrClosed
			}
			return nil, fmt.Errorf("failed to read realtime event: %w", err)
		}
		if msgType == websocket.TextMessage {
			return msg, nil
		}
	}
}

func (c *RealtimeConn) isClosed() bool {
	c.writeMutex.Lock()
	defer c.writeMutex.Unlock()
	return c.closed
}

// Close is safe to call more than once.
func (c *RealtimeConn) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.writeMutex.Lock()
		c.closed = true
		_ = c.ws.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		c.writeMutex.Unlock()
		err = c.ws.Close()
	})
	return err
}
