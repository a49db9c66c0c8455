package twilio

import (
	"context"
	"errors"
	"fmt"
	"realtime-bridge/internal/config"
	"realtime-bridge/internal/observability"

	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

var ErrNotConfigured = errors.New("twilio REST credentials not configured")

const callStatusCompleted = "completed"

type callUpdater interface {
	UpdateCall(sid string, params *openapi.UpdateCallParams) (*openapi.ApiV2010Call, error)
}

// Client performs call control over the Twilio REST API.
type Client struct {
	calls  callUpdater
	logger *observability.Logger
}

// NewClient returns nil when no account credentials are configured; a nil
// Client reports ErrNotConfigured.
func NewClient(cfg config.TwilioConfig, logger *observability.Logger) *Client {
	if !cfg.HasRESTCredentials() {
		logger.Info(context.Background(), "twilio REST credentials missing, idle calls will not be hung up")
		return nil
	}

	rest := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	return &Client{calls: rest.Api, logger: logger}
}

// Hangup ends an in-progress call.
func (c *Client) Hangup(ctx context.Context, callSID string) error {
	if c == nil || c.calls == nil {
		return ErrNotConfigured
	}
	if callSID == "" {
		return errors.New("call sid is required")
	}

	params := &openapi.UpdateCallParams{}
	params.SetStatus(callStatusCompleted)

	if _, err := c.calls.UpdateCall(callSID, params); err != nil {
		c.logger.Error(ctx, "failed to hang up call", err)
		return fmt.Errorf("failed to hang up call %s: %w", callSID, err)
	}

	c.logger.Info(observability.WithFields(ctx,
		observability.Field{Key: "call_sid", Value: callSID},
	), "call hung up")
	return nil
}
