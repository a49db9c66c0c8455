package session

import (
	"context"
	"realtime-bridge/internal/observability"
	"realtime-bridge/internal/store"
	"sync"
)

// Registry holds the live sessions of this process keyed by session id.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	deps     Dependencies
	settings Settings
	presence Presence
	logger   *observability.Logger
}

// NewRegistry creates an empty registry. presence may be nil.
func NewRegistry(deps Dependencies, settings Settings, presence Presence, logger *observability.Logger) *Registry {
	if deps.Logger == nil {
		deps.Logger = logger
	}
	return &Registry{
		sessions: make(map[string]*Session),
		deps:     deps,
		settings: settings,
		presence: presence,
		logger:   logger,
	}
}

// GetOrCreate returns the session for id, creating it when absent. An agent
// supplied for an existing session without one is attached in place.
func (r *Registry) GetOrCreate(ctx context.Context, sessionID string, agent *store.AgentConfig) *Session {
	ctx = observability.WithFields(ctx, observability.Field{Key: "session_id", Value: sessionID})

	r.mu.Lock()
	sess, exists := r.sessions[sessionID]
	if !exists {
		sess = New(sessionID, agent, r.deps, r.settings)
		sess.onEnd = r.release
		r.sessions[sessionID] = sess
	}
	r.mu.Unlock()

	if exists {
		if sess.SetAgent(agent) {
			r.logger.Info(ctx, "attached agent to existing session")
		}
		return sess
	}

	r.logger.Info(ctx, "created session")
	if r.presence != nil {
		if err := r.presence.MarkActive(ctx, sessionID); err != nil {
			r.logger.Error(ctx, "failed to mark session active", err)
		}
	}
	return sess
}

func (r *Registry) Get(sessionID string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sess, ok := r.sessions[sessionID]
	return sess, ok
}

// Remove forgets a session without touching its connections. Removing an
// unknown id is a no-op.
func (r *Registry) Remove(ctx context.Context, sessionID string) {
	r.mu.Lock()
	_, ok := r.sessions[sessionID]
	delete(r.sessions, sessionID)
	r.mu.Unlock()

	if ok {
		r.clearPresence(ctx, sessionID)
	}
}

// Cleanup tears down both legs of a session and removes it.
func (r *Registry) Cleanup(ctx context.Context, sessionID string) {
	if sess, ok := r.Get(sessionID); ok {
		sess.Close(ctx)
	}
	r.Remove(ctx, sessionID)
}

// Count is the number of live sessions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Shutdown closes every live session.
func (r *Registry) Shutdown(ctx context.Context) {
	r.mu.RLock()
	ids := make([]string, 0, len(r.sessions))
	for id := range r.sessions {
		ids = append(ids, id)
	}
	r.mu.RUnlock()

	for _, id := range ids {
		r.Cleanup(ctx, id)
	}
}

// release removes a session that ended on its own, unless the id has since
// been taken by a newer session.
func (r *Registry) release(ctx context.Context, sess *Session) {
	r.mu.Lock()
	current, ok := r.sessions[sess.id]
	removed := ok && current == sess
	if removed {
		delete(r.sessions, sess.id)
	}
	r.mu.Unlock()

	if removed {
		r.clearPresence(ctx, sess.id)
	}
}

func (r *Registry) clearPresence(ctx context.Context, sessionID string) {
	if r.presence == nil {
		return
	}
	if err := r.presence.ClearActive(ctx, sessionID); err != nil {
		r.logger.Error(observability.WithFields(ctx, observability.Field{Key: "session_id", Value: sessionID}),
			"failed to clear session presence", err)
	}
}
