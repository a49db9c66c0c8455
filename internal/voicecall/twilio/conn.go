package twilio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"realtime-bridge/internal/observability"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

var ErrClosed = errors.New("media stream closed")

const writeTimeout = 5 * time.Second

// Conn is the telephony leg of a call. Writes are serialized; reads must be
// done from a single goroutine.
type Conn struct {
	ws     *websocket.Conn
	logger *observability.Logger

	writeMutex sync.Mutex
	closeOnce  sync.Once
	closed     bool
}

func NewConn(ws *websocket.Conn, logger *observability.Logger) *Conn {
	return &Conn{ws: ws, logger: logger}
}

// ReadFrame blocks for the next text frame. A close from Twilio is reported
// as ErrClosed.
func (c *Conn) ReadFrame() ([]byte, error) {
	for {
		msgType, msg, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil, ErrClosed
			}
			if c.isClosed() {
				return nil, ErrClosed
			}
			return nil, fmt.Errorf("failed to read media stream frame: %w", err)
		}
		if msgType != websocket.TextMessage {
			continue
		}
		return msg, nil
	}
}

// SendMedia plays base64 u-law audio to the caller.
func (c *Conn) SendMedia(ctx context.Context, streamSid, payload string) error {
	return c.write(ctx, newMedia(streamSid, payload))
}

// SendMark asks Twilio to echo name once the preceding audio has played.
func (c *Conn) SendMark(ctx context.Context, streamSid, name string) error {
	return c.write(ctx, newMark(streamSid, name))
}

// SendClear drops audio Twilio has buffered but not yet played.
func (c *Conn) SendClear(ctx context.Context, streamSid string) error {
	return c.write(ctx, newClear(streamSid))
}

func (c *Conn) write(ctx context.Context, msg interface{}) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal media stream message: %w", err)
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
		return fmt.Errorf("failed to write media stream message: %w", err)
	}
	return nil
}

func (c *Conn) isClosed() bool {
	c.writeMutex.Lock()
	defer c.writeMutex.Unlock()
	return c.closed
}

// Close sends a normal close frame and releases the socket. It is safe to
// call more than once.
func (c *Conn) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.writeMutex.Lock()
		c.closed = true
		_ = c.ws.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		c.writeMutex.Unlock()

		err = c.ws.Close()
		c.logger.Debug(context.Background(), "media stream closed")
	})
	return err
}
