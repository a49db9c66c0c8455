package session

import (
	"fmt"
	"realtime-bridge/internal/realtime/protocol"
	"realtime-bridge/internal/store"
	"strings"
	"time"
)

const defaultGreetingTimezone = "UTC"

// CallInfo describes the call for the greeting context.
type CallInfo struct {
	CallSID   string
	Caller    string
	Called    string
	Direction string
}

// greetingText is the out-of-band context injected once the model leg is
// configured. It is addressed to the model, not read to the caller.
func greetingText(call CallInfo, agent *store.AgentConfig) string {
	direction := call.Direction
	if direction == "" {
		direction = store.CallDirectionIncoming
	}

	timezone := defaultGreetingTimezone
	var instructions string
	if agent != nil {
		if agent.Timezone != "" {
			timezone = agent.Timezone
		}
		instructions = agent.Instructions
	}

	var text string
	if direction == store.CallDirectionIncoming {
		text = fmt.Sprintf("You have an %s call from %s. ", direction, call.Caller)
	} else {
		text = fmt.Sprintf("You have an %s call to %s. ", direction, call.Called)
	}
	text += fmt.Sprintf("Call SID is %q. You are operating in the %s timezone. Start using the welcoming message assigned to you.",
		call.CallSID, timezone)

	if line := welcomeLine(instructions); line != "" {
		text += "\n\nYour welcoming message: " + line
	}
	return text
}

// welcomeLine returns the first instruction line that mentions a welcoming
// message or greeting.
func welcomeLine(instructions string) string {
	for _, line := range strings.Split(instructions, "\n") {
		lower := strings.ToLower(line)
		if strings.Contains(lower, "welcoming") || strings.Contains(lower, "greeting") {
			return strings.TrimSpace(line)
		}
	}
	return ""
}

// scheduleGreetingLocked arms the greeting once per model leg, after the
// configuration has been acknowledged.
func (s *Session) scheduleGreetingLocked() {
	if s.greeted || s.greetingTimer != nil || s.model == nil {
		return
	}
	conn := s.model
	s.greetingTimer = time.AfterFunc(s.settings.GreetingDelay, func() {
		s.sendGreeting(conn)
	})
}

func (s *Session) sendGreeting(conn ModelConn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ended || s.greeted || s.model != conn {
		return
	}
	s.greetingTimer = nil
	s.greeted = true

	ctx := s.ctx
	if !s.sendModelLocked(ctx, protocol.NewUserText(greetingText(s.call, s.agent))) {
		return
	}
	s.sendModelLocked(ctx, protocol.NewResponseCreateWithModalities("text", "audio"))
	if s.state == StateModelConfigured {
		s.state = StateActive
	}
	s.logger.Info(ctx, "greeting sent")
}

func (s *Session) stopGreetingLocked() {
	if s.greetingTimer != nil {
		s.greetingTimer.Stop()
		s.greetingTimer = nil
	}
}
