package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"realtime-bridge/internal/observability"
	"realtime-bridge/internal/realtime/sessionconfig"
	"realtime-bridge/internal/store"
	"realtime-bridge/internal/tools"
	"sync"
	"testing"

	"github.com/openai/openai-go"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

var errModelGone = errors.New("model leg gone")

type fakeTelephony struct {
	mu     sync.Mutex
	frames []string
	closed int
}

func (f *fakeTelephony) SendMedia(_ context.Context, _, payload string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.frames = append(f.frames, "media:"+payload)
	return nil
}

func (f *fakeTelephony) SendMark(_ context.Context, _, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.frames = append(f.frames, "mark:"+name)
	return nil
}

func (f *fakeTelephony) SendClear(_ context.Context, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.frames = append(f.frames, "clear")
	return nil
}

func (f *fakeTelephony) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed++
	return nil
}

func (f *fakeTelephony) Frames() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.frames...)
}

func (f *fakeTelephony) Closed() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

// fakeModel records every message sent to the model leg. Receive blocks
// until the conn is closed.
type fakeModel struct {
	mu   sync.Mutex
	sent [][]byte

	done      chan struct{}
	closeOnce sync.Once
}

func newFakeModel() *fakeModel {
	return &fakeModel{done: make(chan struct{})}
}

func (f *fakeModel) Send(_ context.Context, event interface{}) error {
	b, err := json.Marshal(event)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, b)
	return nil
}

func (f *fakeModel) Receive() ([]byte, error) {
	<-f.done
	return nil, errModelGone
}

func (f *fakeModel) Close() error {
	f.closeOnce.Do(func() { close(f.done) })
	return nil
}

func (f *fakeModel) IsClosed() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

func (f *fakeModel) Types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	types := make([]string, 0, len(f.sent))
	for _, b := range f.sent {
		types = append(types, gjson.GetBytes(b, "type").String())
	}
	return types
}

// Sent returns the messages of one type in send order.
func (f *fakeModel) Sent(messageType string) []gjson.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []gjson.Result
	for _, b := range f.sent {
		doc := gjson.ParseBytes(b)
		if doc.Get("type").String() == messageType {
			out = append(out, doc)
		}
	}
	return out
}

type fakeDialer struct {
	mu     sync.Mutex
	conn   *fakeModel
	err    error
	calls  int
	apiKey string
	model  string
}

func (d *fakeDialer) Dial(_ context.Context, apiKey, model string) (ModelConn, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls++
	d.apiKey = apiKey
	d.model = model
	if d.err != nil {
		return nil, d.err
	}
	return d.conn, nil
}

func testRegistry() *tools.Registry {
	empty := openai.FunctionParameters{"type": "object", "properties": map[string]interface{}{}}
	return tools.NewRegistry(
		tools.Tool{
			Name:        "echo",
			Description: "Echo the arguments",
			Parameters:  empty,
			Handler: func(_ context.Context, args map[string]interface{}) (tools.Result, error) {
				return tools.Result{"args": args}, nil
			},
		},
		tools.Tool{
			Name:        "explode",
			Description: "Panics",
			Parameters:  empty,
			Handler: func(context.Context, map[string]interface{}) (tools.Result, error) {
				panic("kaboom")
			},
		},
		tools.Tool{
			Name:        "fail",
			Description: "Fails",
			Parameters:  empty,
			Handler: func(context.Context, map[string]interface{}) (tools.Result, error) {
				return nil, errors.New("upstream unavailable")
			},
		},
	)
}

func testDependencies(dialer ModelDialer) Dependencies {
	logger := observability.NewNopLogger()
	registry := testRegistry()
	return Dependencies{
		Dialer:  dialer,
		Configs: sessionconfig.NewBuilder(logger, registry, ""),
		Tools:   registry,
		Logger:  logger,
	}
}

var testSettings = Settings{
	APIKey:       "sk-system",
	DefaultModel: "gpt-realtime-test",
}

func startFrame(params map[string]string) []byte {
	b, _ := json.Marshal(map[string]interface{}{
		"event":     "start",
		"streamSid": "MZ1",
		"start": map[string]interface{}{
			"streamSid":        "MZ1",
			"callSid":          "CA1",
			"customParameters": params,
		},
	})
	return b
}

func mediaFrame(timestamp int64, payload string) []byte {
	return []byte(fmt.Sprintf(`{"event":"media","streamSid":"MZ1","media":{"track":"inbound","timestamp":"%d","payload":"%s"}}`,
		timestamp, payload))
}

var stopFrame = []byte(`{"event":"stop","streamSid":"MZ1","stop":{"callSid":"CA1"}}`)

// startedSession returns a session whose stream has started and whose model
// leg is configured.
func startedSession(t *testing.T, deps Dependencies, settings Settings, agent *store.AgentConfig) (*Session, *fakeTelephony, *fakeModel) {
	t.Helper()

	model := newFakeModel()
	if deps.Dialer == nil {
		deps.Dialer = &fakeDialer{conn: model}
	}
	telephony := &fakeTelephony{}

	s := New("sess-1", agent, deps, settings)
	t.Cleanup(func() { s.Close(context.Background()) })

	require.NoError(t, s.AttachTelephony(telephony))
	require.NoError(t, s.HandleTelephonyMessage(context.Background(), startFrame(map[string]string{
		"caller":    "+15551230000",
		"called":    "+15559870000",
		"direction": "incoming",
	})))
	require.Equal(t, StateModelConfigured, s.State())
	return s, telephony, model
}

// deliver hands a model event to the session as the listen loop would.
func deliver(s *Session, conn ModelConn, raw string) {
	s.handleModelMessage(conn, []byte(raw))
}
