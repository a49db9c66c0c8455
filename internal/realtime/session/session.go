// Package session bridges one phone call's media stream to one model leg.
package session

import (
	"context"
	"errors"
	"fmt"
	"realtime-bridge/internal/observability"
	"realtime-bridge/internal/realtime/protocol"
	"realtime-bridge/internal/realtime/sessionconfig"
	"realtime-bridge/internal/store"
	"realtime-bridge/internal/tools"
	"realtime-bridge/internal/voicecall/twilio"
	"sync"
	"time"
)

var ErrEnded = errors.New("session ended")

type State int

const (
	StateIdle State = iota
	StateStreamOpen
	StateModelConnecting
	StateModelConfigured
	StateActive
	StateToolPending
	StateEnded
)

var stateNames = map[State]string{
	StateIdle:            "idle",
	StateStreamOpen:      "stream-open",
	StateModelConnecting: "model-connecting",
	StateModelConfigured: "model-configured",
	StateActive:          "active",
	StateToolPending:     "tool-pending",
	StateEnded:           "ended",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// Settings are the process wide defaults a session falls back to.
type Settings struct {
	APIKey        string
	DefaultModel  string
	IdleTimeout   time.Duration
	GreetingDelay time.Duration
}

// Dependencies are shared by every session. Calls, NewTracker, Hangup and
// Verifier are optional.
type Dependencies struct {
	Dialer     ModelDialer
	Configs    *sessionconfig.Builder
	Tools      *tools.Registry
	Calls      CallRecorder
	NewTracker func() ConversationTracker
	Hangup     CallHangup
	Verifier   StreamVerifier
	Logger     *observability.Logger
}

// Session is the state of one call. Every field below mu is guarded by it;
// sends on either leg happen under the lock so events keep their order.
type Session struct {
	id       string
	deps     Dependencies
	settings Settings
	logger   *observability.Logger
	onEnd    func(ctx context.Context, s *Session)

	ctx    context.Context
	cancel context.CancelFunc
	toolWG sync.WaitGroup

	mu             sync.Mutex
	state          State
	agent          *store.AgentConfig
	telephony      TelephonyConn
	model          ModelConn
	streamSID      string
	call           CallInfo
	config         *sessionconfig.Document
	tracker        ConversationTracker
	audio          AudioBridge
	calls          *ToolCallCoordinator
	toolsInFlight  int
	idleTimer      *time.Timer
	idleGeneration uint64
	greetingTimer  *time.Timer
	greeted        bool
	ending         bool
	ended          bool
}

// New creates a session. agent may be nil and attached later with SetAgent.
func New(id string, agent *store.AgentConfig, deps Dependencies, settings Settings) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	ctx = observability.WithFields(ctx, observability.Field{Key: "session_id", Value: id})

	return &Session{
		id:       id,
		deps:     deps,
		settings: settings,
		logger:   deps.Logger,
		ctx:      ctx,
		cancel:   cancel,
		state:    StateIdle,
		agent:    agent,
		calls:    NewToolCallCoordinator(deps.Tools, deps.Logger),
	}
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SetAgent attaches an agent to a session created without one. It reports
// whether the agent was attached.
func (s *Session) SetAgent(agent *store.AgentConfig) bool {
	if agent == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.agent != nil || s.ended {
		return false
	}
	s.agent = agent
	return true
}

func (s *Session) HasAgent() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.agent != nil
}

// AttachTelephony binds the caller's media stream to the session.
func (s *Session) AttachTelephony(conn TelephonyConn) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ended || s.ending {
		return ErrEnded
	}
	s.telephony = conn
	if s.state == StateIdle {
		s.state = StateStreamOpen
	}
	return nil
}

// HandleTelephonyMessage processes one frame from Twilio. Malformed frames
// are dropped. ErrEnded is returned once the stream has stopped or the
// session was torn down.
func (s *Session) HandleTelephonyMessage(ctx context.Context, raw []byte) error {
	if s.isEnded() {
		return ErrEnded
	}

	ev, err := twilio.DecodeInbound(raw)
	if err != nil {
		s.logger.Warn(observability.WithFields(s.ctx, observability.Field{Key: "error", Value: err.Error()}),
			"dropping malformed media stream frame")
		return nil
	}

	switch ev.Event {
	case twilio.EventStart:
		s.startStream(ctx, ev)
	case twilio.EventMedia:
		s.relayMedia(ctx, ev.Media)
	case twilio.EventStop:
		s.logger.Info(s.ctx, "media stream stopped")
		s.End(ctx, store.CallStatusEnded)
		return ErrEnded
	case twilio.EventMark:
		s.touch()
	default:
		s.logger.Debug(observability.WithFields(s.ctx, observability.Field{Key: "event", Value: ev.Event}),
			"ignoring media stream event")
	}

	if s.isEnded() {
		return ErrEnded
	}
	return nil
}

func (s *Session) isEnded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ended
}

func (s *Session) startStream(ctx context.Context, ev twilio.InboundEvent) {
	start := ev.Start
	params := start.CustomParameters
	logCtx := observability.WithFields(s.ctx,
		observability.Field{Key: "stream_sid", Value: ev.StreamSid},
		observability.Field{Key: "call_sid", Value: start.CallSid},
	)

	if s.deps.Verifier != nil {
		if err := s.deps.Verifier.Verify(params["token"], s.id); err != nil {
			s.logger.Error(logCtx, "rejecting media stream", err)
			s.End(ctx, store.CallStatusError)
			return
		}
	}

	s.mu.Lock()
	if s.ended || s.ending {
		s.mu.Unlock()
		return
	}
	previous := s.model
	s.model = nil
	s.config = nil
	s.stopGreetingLocked()
	s.greeted = false
	s.streamSID = ev.StreamSid
	s.audio.Reset()
	s.call = CallInfo{
		CallSID:   start.CallSid,
		Caller:    params["caller"],
		Called:    params["called"],
		Direction: params["direction"],
	}
	s.state = StateModelConnecting
	s.touchLocked()
	agent := s.agent
	s.mu.Unlock()

	if previous != nil {
		_ = previous.Close()
	}

	s.logger.Info(logCtx, "media stream started")
	s.recordConnected(logCtx, ev.StreamSid, agent)
	s.connectModel(logCtx, agent)
}

// recordConnected marks the call record connected and attaches a
// conversation to it.
func (s *Session) recordConnected(ctx context.Context, streamSID string, agent *store.AgentConfig) {
	if s.deps.Calls == nil {
		return
	}

	call, err := s.deps.Calls.MarkConnected(ctx, s.id, streamSID)
	if err != nil {
		s.logger.Error(ctx, "failed to mark call connected", err)
		return
	}

	s.mu.Lock()
	if call.CallSID != "" {
		s.call.CallSID = call.CallSID
	}
	if call.CallerNumber != "" {
		s.call.Caller = call.CallerNumber
	}
	if call.CalledNumber != "" {
		s.call.Called = call.CalledNumber
	}
	if call.Direction != "" {
		s.call.Direction = call.Direction
	}
	hasTracker := s.tracker != nil
	s.mu.Unlock()

	if s.deps.NewTracker == nil || hasTracker {
		return
	}

	agentName := ""
	if agent != nil {
		agentName = agent.Name
	}
	tracker := s.deps.NewTracker()
	if _, err := tracker.GetOrCreateConversation(ctx, call, agentName); err != nil {
		s.logger.Error(ctx, "failed to start conversation", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ended || s.tracker != nil {
		return
	}
	s.tracker = tracker
}

// connectModel opens the model leg and sends the session configuration. A
// failure leaves the model leg unset; there is no automatic retry.
func (s *Session) connectModel(ctx context.Context, agent *store.AgentConfig) {
	apiKey := s.settings.APIKey
	model := s.settings.DefaultModel
	if agent != nil {
		if agent.OpenAIAPIKey != nil && *agent.OpenAIAPIKey != "" {
			apiKey = *agent.OpenAIAPIKey
		}
		if agent.Model != nil && *agent.Model != "" {
			model = *agent.Model
		}
	}

	conn, err := s.deps.Dialer.Dial(s.ctx, apiKey, model)
	if err != nil {
		s.logger.Error(ctx, "failed to connect model leg", err)
		s.mu.Lock()
		if !s.ended && s.state == StateModelConnecting {
			s.state = StateStreamOpen
		}
		s.mu.Unlock()
		return
	}

	doc := s.deps.Configs.Build(ctx, agent)

	s.mu.Lock()
	if s.ended || s.ending {
		s.mu.Unlock()
		_ = conn.Close()
		return
	}
	if err := conn.Send(ctx, protocol.NewSessionUpdate(doc)); err != nil {
		if !s.ended {
			s.state = StateStreamOpen
		}
		s.mu.Unlock()
		s.logger.Error(ctx, "failed to send session configuration", err)
		_ = conn.Close()
		return
	}
	s.model = conn
	s.config = &doc
	s.state = StateModelConfigured
	s.mu.Unlock()

	s.logger.Info(observability.WithFields(ctx,
		observability.Field{Key: "model", Value: model},
		observability.Field{Key: "mcp", Value: doc.HasMCP()},
	), "model leg connected")

	go s.listen(conn)
}

func (s *Session) relayMedia(ctx context.Context, media *twilio.MediaPayload) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.audio.ObserveMedia(int64(media.Timestamp))
	s.touchLocked()
	s.sendModelLocked(ctx, protocol.NewInputAudioAppend(media.Payload))
}

// listen reads the model leg until it closes. One listen loop runs per
// connection.
func (s *Session) listen(conn ModelConn) {
	for {
		raw, err := conn.Receive()
		if err != nil {
			s.modelClosed(conn, err)
			return
		}
		s.handleModelMessage(conn, raw)
	}
}

func (s *Session) handleModelMessage(conn ModelConn, raw []byte) {
	ev, err := protocol.Decode(raw)
	if err != nil {
		s.logger.Warn(s.ctx, "dropping malformed model event")
		return
	}

	s.mu.Lock()
	if s.model != conn {
		s.mu.Unlock()
		return
	}
	s.touchLocked()
	tracker := s.tracker
	s.mu.Unlock()

	if tracker != nil {
		tracker.HandleEvent(s.ctx, ev)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.model != conn {
		return
	}
	s.dispatchLocked(ev)
}

func (s *Session) dispatchLocked(ev protocol.ServerEvent) {
	ctx := s.ctx

	switch ev.Kind {
	case protocol.KindSessionCreated:
		s.logger.Debug(ctx, "model session created")
	case protocol.KindSessionUpdated:
		s.scheduleGreetingLocked()
	case protocol.KindAudioDelta:
		s.relayAudioLocked(ctx, ev)
	case protocol.KindSpeechStarted:
		s.bargeInLocked(ctx)
	case protocol.KindFunctionCallArgumentsDelta:
		s.calls.AppendArguments(ctx, ev.CallID, ev.Delta)
	case protocol.KindFunctionCallArgumentsDone:
		s.startToolLocked(ctx, ev.CallID, ev.Name, ev.Arguments)
	case protocol.KindOutputItemDone:
		if ev.Item != nil && ev.Item.Type == "function_call" {
			s.startToolLocked(ctx, ev.Item.CallID, ev.Item.Name, ev.Item.Arguments)
		}
	case protocol.KindMCPCallArgumentsDelta:
		s.calls.AppendMCPArguments(ctx, mcpItemID(ev), ev.Delta)
	case protocol.KindMCPCallArgumentsDone:
		s.calls.CompleteMCPArguments(ctx, mcpItemID(ev), ev.Arguments)
	case protocol.KindMCPCallInProgress:
		s.logger.Info(observability.WithFields(ctx, observability.Field{Key: "item_id", Value: mcpItemID(ev)}),
			"mcp tool call in progress")
	case protocol.KindMCPCallCompleted:
		s.mcpCompletedLocked(ctx, ev)
	case protocol.KindMCPCallFailed:
		s.mcpFailedLocked(ctx, ev)
	case protocol.KindError:
		err := errors.New("unknown model error")
		if ev.Error != nil {
			err = fmt.Errorf("%s %s: %s", ev.Error.Type, ev.Error.Code, ev.Error.Message)
		}
		s.logger.Error(ctx, "model leg reported an error", err)
	}
}

func mcpItemID(ev protocol.ServerEvent) string {
	if ev.ItemID != "" {
		return ev.ItemID
	}
	if ev.Item != nil {
		return ev.Item.ID
	}
	return ""
}

func (s *Session) relayAudioLocked(ctx context.Context, ev protocol.ServerEvent) {
	if s.state == StateModelConfigured {
		s.state = StateActive
	}
	s.audio.OnAudioDelta(ev.ItemID)

	if s.telephony == nil || s.streamSID == "" {
		return
	}
	if err := s.telephony.SendMedia(ctx, s.streamSID, ev.Delta); err != nil {
		s.logger.Error(ctx, "failed to relay audio to caller", err)
		return
	}
	if err := s.telephony.SendMark(ctx, s.streamSID, twilio.ResponseMarkName); err != nil {
		s.logger.Error(ctx, "failed to send playback mark", err)
	}
}

// bargeInLocked cuts the assistant's response short once the caller starts
// talking over it.
func (s *Session) bargeInLocked(ctx context.Context) {
	itemID, elapsed, ok := s.audio.BargeIn()
	if !ok {
		return
	}

	s.logger.Info(observability.WithFields(ctx,
		observability.Field{Key: "item_id", Value: itemID},
		observability.Field{Key: "audio_end_ms", Value: elapsed},
	), "caller interrupted the assistant")

	s.sendModelLocked(ctx, protocol.NewTruncate(itemID, elapsed))

	if s.telephony == nil || s.streamSID == "" {
		return
	}
	if err := s.telephony.SendClear(ctx, s.streamSID); err != nil {
		s.logger.Error(ctx, "failed to clear caller playback", err)
	}
}

func (s *Session) startToolLocked(ctx context.Context, callID, name, arguments string) {
	inv, ok := s.calls.Complete(ctx, callID, name, arguments)
	if !ok {
		return
	}

	s.sendModelLocked(ctx, protocol.NewSpokenResponse(holdInstructions))

	s.toolsInFlight++
	s.state = StateToolPending
	s.toolWG.Add(1)
	go s.runTool(inv)
}

func (s *Session) runTool(inv Invocation) {
	defer s.toolWG.Done()

	ctx := observability.WithFields(s.ctx,
		observability.Field{Key: "call_id", Value: inv.CallID},
		observability.Field{Key: "function_name", Value: inv.Name},
	)

	output, err := s.calls.Execute(ctx, inv)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.toolsInFlight--
	if s.toolsInFlight == 0 && s.state == StateToolPending {
		s.state = StateActive
	}

	if err != nil {
		s.logger.Error(ctx, "tool execution failed", err)
		s.sendModelLocked(ctx, protocol.NewFunctionCallOutput(inv.CallID, toolErrorOutput(inv, err)))
		s.sendModelLocked(ctx, protocol.NewSpokenResponse(toolErrorInstructions))
		return
	}

	s.logger.Info(ctx, "tool executed")
	s.sendModelLocked(ctx, protocol.NewFunctionCallOutput(inv.CallID, output))
	s.sendModelLocked(ctx, protocol.NewSpokenResponse(resultInstructions))
}

func (s *Session) mcpCompletedLocked(ctx context.Context, ev protocol.ServerEvent) {
	itemID := mcpItemID(ev)
	ctx = observability.WithFields(ctx, observability.Field{Key: "item_id", Value: itemID})

	arguments, ok := s.calls.ResolveMCP(ctx, itemID)
	if !ok {
		s.logger.Warn(ctx, "mcp tool call completed without pending arguments")
	}

	if ev.Error != nil {
		s.sendMCPFeedbackLocked(ctx, arguments, ev.Error)
		return
	}

	s.logger.Info(ctx, "mcp tool call completed")
	s.sendModelLocked(ctx, protocol.NewSpokenResponse(mcpCompletedInstructions))
}

func (s *Session) mcpFailedLocked(ctx context.Context, ev protocol.ServerEvent) {
	itemID := mcpItemID(ev)
	ctx = observability.WithFields(ctx, observability.Field{Key: "item_id", Value: itemID})

	arguments, ok := s.calls.ResolveMCP(ctx, itemID)
	if !ok {
		s.logger.Warn(ctx, "mcp tool call failed without pending arguments")
	}
	s.sendMCPFeedbackLocked(ctx, arguments, ev.Error)
}

func (s *Session) sendMCPFeedbackLocked(ctx context.Context, arguments string, e *protocol.Error) {
	diagnostic, instructions := mcpFailureFeedback(arguments, e)
	s.logger.Warn(ctx, "mcp tool call failed, asking the model to retry")
	s.sendModelLocked(ctx, protocol.NewUserText(diagnostic))
	s.sendModelLocked(ctx, protocol.NewSpokenResponse(instructions))
}

// sendModelLocked writes to the model leg. With no open leg it is a no-op.
func (s *Session) sendModelLocked(ctx context.Context, event interface{}) bool {
	if s.model == nil {
		return false
	}
	if err := s.model.Send(ctx, event); err != nil {
		s.logger.Error(ctx, "failed to send to model leg", err)
		return false
	}
	return true
}

// modelClosed ends the model leg only. The telephony leg stays open until it
// stops on its own.
func (s *Session) modelClosed(conn ModelConn, err error) {
	s.mu.Lock()
	current := s.model == conn
	if current {
		s.model = nil
		s.config = nil
		s.stopGreetingLocked()
		if !s.ended {
			s.state = StateStreamOpen
		}
	}
	s.mu.Unlock()

	_ = conn.Close()
	if current {
		s.logger.InfoWithError(s.ctx, "model leg closed", err)
	}
}

// End records the final call status and tears the session down. Only the
// first call has an effect.
func (s *Session) End(ctx context.Context, status string) {
	s.mu.Lock()
	if s.ending || s.ended {
		s.mu.Unlock()
		return
	}
	s.ending = true
	s.mu.Unlock()

	s.finish(ctx, status, false)
}

func (s *Session) finish(ctx context.Context, status string, hangup bool) {
	ctx = context.WithoutCancel(ctx)

	if s.deps.Calls != nil {
		if err := s.deps.Calls.EndCall(ctx, s.id, status); err != nil {
			s.logger.Error(s.ctx, "failed to record call end", err)
		}
	}

	s.mu.Lock()
	callSID := s.call.CallSID
	s.mu.Unlock()

	if hangup && s.deps.Hangup != nil && callSID != "" {
		if err := s.deps.Hangup.Hangup(ctx, callSID); err != nil {
			s.logger.Error(s.ctx, "failed to hang up call", err)
		}
	}

	s.Close(ctx)
	if s.onEnd != nil {
		s.onEnd(ctx, s)
	}
}

// Close cancels the timers, closes both legs and drops every transient
// buffer. It is safe to call more than once.
func (s *Session) Close(ctx context.Context) {
	ctx = context.WithoutCancel(ctx)

	s.mu.Lock()
	s.stopIdleLocked()
	s.stopGreetingLocked()

	telephony, model, tracker := s.telephony, s.model, s.tracker
	s.telephony, s.model, s.tracker = nil, nil, nil
	s.streamSID = ""
	s.config = nil
	s.audio.Reset()
	s.calls.Reset()
	wasEnded := s.ended
	s.ended = true
	s.state = StateEnded
	s.mu.Unlock()

	s.cancel()

	if model != nil {
		if err := model.Close(); err != nil {
			s.logger.Debug(s.ctx, "model leg close: "+err.Error())
		}
	}
	if telephony != nil {
		if err := telephony.Close(); err != nil {
			s.logger.Debug(s.ctx, "media stream close: "+err.Error())
		}
	}
	if tracker != nil {
		if err := tracker.Close(ctx); err != nil {
			s.logger.Error(s.ctx, "failed to close conversation", err)
		}
	}

	s.toolWG.Wait()

	if !wasEnded {
		s.logger.Info(s.ctx, "session closed")
	}
}
