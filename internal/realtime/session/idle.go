package session

import (
	"realtime-bridge/internal/observability"
	"realtime-bridge/internal/realtime/protocol"
	"realtime-bridge/internal/store"
	"time"
)

const (
	idleNotice       = "The call has been idle for too long and will be disconnected."
	idleInstructions = "Inform the caller that the call is being disconnected due to inactivity. Be polite and brief."
)

// idleTimeoutLocked is the agent's override when set, else the process default.
// Zero disables the watchdog.
func (s *Session) idleTimeoutLocked() time.Duration {
	if s.agent != nil && s.agent.IdleTimeoutSeconds != nil {
		return time.Duration(*s.agent.IdleTimeoutSeconds) * time.Second
	}
	return s.settings.IdleTimeout
}

func (s *Session) touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touchLocked()
}

// touchLocked restarts the idle watchdog. Each restart bumps the generation
// so a timer that already fired for an older generation does nothing.
func (s *Session) touchLocked() {
	if s.ended || s.ending || s.state == StateIdle {
		return
	}
	timeout := s.idleTimeoutLocked()
	if timeout <= 0 {
		return
	}

	s.stopIdleLocked()
	s.idleGeneration++
	generation := s.idleGeneration
	s.idleTimer = time.AfterFunc(timeout, func() {
		s.expireIdle(generation)
	})
}

func (s *Session) stopIdleLocked() {
	if s.idleTimer != nil {
		s.idleTimer.Stop()
		s.idleTimer = nil
	}
}

func (s *Session) expireIdle(generation uint64) {
	s.mu.Lock()
	if s.ended || s.ending || generation != s.idleGeneration {
		s.mu.Unlock()
		return
	}
	s.ending = true
	s.idleTimer = nil

	ctx := observability.WithFields(s.ctx, observability.Field{Key: "idle_timeout", Value: s.idleTimeoutLocked().String()})
	s.logger.Info(ctx, "session idle, disconnecting")
	s.sendModelLocked(ctx, protocol.NewUserText(idleNotice))
	s.sendModelLocked(ctx, protocol.NewSpokenResponse(idleInstructions))
	s.mu.Unlock()

	s.finish(ctx, store.CallStatusEnded, true)
}
