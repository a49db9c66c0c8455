package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// CreateCallSessionParams represents parameters for recording a new call
type CreateCallSessionParams struct {
	SessionID     string
	CallSID       string
	AgentID       *uuid.UUID
	PhoneNumberID *uuid.UUID
	CallerNumber  string
	CalledNumber  string
	Direction     string
}

const callSessionColumns = `
id, session_id, call_sid, stream_sid, agent_id, phone_number_id, caller_number, called_number,
direction, status, started_at, connected_at, ended_at, duration_seconds`

const sqlCreateCallSession = `
INSERT INTO call_sessions (session_id, call_sid, agent_id, phone_number_id, caller_number, called_number, direction, status)
VALUES ($1, $2, $3, $4, $5, $6, $7, 'started')
RETURNING ` + callSessionColumns

// CreateCallSession records a call that has been answered
func (s *Store) CreateCallSession(ctx context.Context, params CreateCallSessionParams) (CallSession, error) {
	var call CallSession
	err := s.db.GetContext(ctx, &call, sqlCreateCallSession,
		params.SessionID,
		params.CallSID,
		params.AgentID,
		params.PhoneNumberID,
		params.CallerNumber,
		params.CalledNumber,
		params.Direction)
	if err != nil {
		return CallSession{}, fmt.Errorf("failed to create call session: %w", err)
	}
	return call, nil
}

const sqlGetCallSessionBySessionID = `
SELECT ` + callSessionColumns + `
FROM call_sessions
WHERE session_id = $1
`

// GetCallSessionBySessionID retrieves a call by the session id used on the media stream
func (s *Store) GetCallSessionBySessionID(ctx context.Context, sessionID string) (CallSession, error) {
	var call CallSession
	err := s.db.GetContext(ctx, &call, sqlGetCallSessionBySessionID, sessionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return CallSession{}, ErrNotFound
		}
		return CallSession{}, fmt.Errorf("failed to get call session: %w", err)
	}
	return call, nil
}

const sqlGetCallSessionByCallSID = `
SELECT ` + callSessionColumns + `
FROM call_sessions
WHERE call_sid = $1
ORDER BY started_at DESC
LIMIT 1
`

// GetCallSessionByCallSID retrieves the latest call record for a Twilio call sid
func (s *Store) GetCallSessionByCallSID(ctx context.Context, callSID string) (CallSession, error) {
	var call CallSession
	err := s.db.GetContext(ctx, &call, sqlGetCallSessionByCallSID, callSID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return CallSession{}, ErrNotFound
		}
		return CallSession{}, fmt.Errorf("failed to get call session by call sid: %w", err)
	}
	return call, nil
}

const sqlMarkCallConnected = `
UPDATE call_sessions
SET status = 'connected', stream_sid = $2, connected_at = NOW()
WHERE session_id = $1 AND ended_at IS NULL
`

// MarkCallConnected records that the media stream for a call is open
func (s *Store) MarkCallConnected(ctx context.Context, sessionID, streamSID string) error {
	res, err := s.db.ExecContext(ctx, sqlMarkCallConnected, sessionID, streamSID)
	if err != nil {
		return fmt.Errorf("failed to mark call connected: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to mark call connected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

const sqlEndCallSession = `
UPDATE call_sessions
SET status = $2,
	ended_at = NOW(),
	duration_seconds = EXTRACT(EPOCH FROM (NOW() - started_at))::INTEGER
WHERE session_id = $1 AND ended_at IS NULL
`

// EndCallSession stamps the end of a call. Calls that already ended are left
// untouched so the first terminal status wins.
func (s *Store) EndCallSession(ctx context.Context, sessionID, status string) error {
	_, err := s.db.ExecContext(ctx, sqlEndCallSession, sessionID, status)
	if err != nil {
		return fmt.Errorf("failed to end call session: %w", err)
	}
	return nil
}

const sqlListCallSessions = `
SELECT ` + callSessionColumns + `
FROM call_sessions
ORDER BY started_at DESC
LIMIT $1 OFFSET $2
`

// ListCallSessions lists calls, newest first
func (s *Store) ListCallSessions(ctx context.Context, limit, offset int) ([]CallSession, error) {
	calls := []CallSession{}
	err := s.db.SelectContext(ctx, &calls, sqlListCallSessions, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list call sessions: %w", err)
	}
	return calls, nil
}
