package bootstrap

import (
	"context"
	"fmt"
	"realtime-bridge/internal/config"
	"realtime-bridge/internal/observability"
	"realtime-bridge/internal/store"

	openaiClient "realtime-bridge/internal/clients/openai"
	redisClient "realtime-bridge/internal/clients/redis"
	twilioClient "realtime-bridge/internal/clients/twilio"
	"realtime-bridge/internal/conversation"
	"realtime-bridge/internal/realtime/session"
	"realtime-bridge/internal/realtime/sessionconfig"
	"realtime-bridge/internal/tools"
	voiceCallHandler "realtime-bridge/internal/voicecall/handler"
	voiceCallProcessor "realtime-bridge/internal/voicecall/processor"
	"realtime-bridge/internal/voicecall/streamauth"
)

// Dependencies holds all initialized application dependencies
type Dependencies struct {
	// Core
	Store  store.Store
	Logger *observability.Logger

	// Live calls
	Sessions *session.Registry

	// Handlers
	VoiceCallHandler voiceCallHandler.Handler

	// Clients (for cleanup)
	Redis *redisClient.Client
}

// Initialize sets up all application dependencies
func Initialize(ctx context.Context, cfg *config.Config, logger *observability.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Logger: logger,
	}

	// Initialize database store
	connectionString := cfg.Database.ConnectionString()
	var err error
	deps.Store, err = store.New(connectionString, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := deps.Store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	// Initialize clients
	deps.Redis, err = redisClient.NewClient(cfg.Redis, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	hangupClient := twilioClient.NewClient(cfg.Twilio, logger)
	realtimeDialer := openaiClient.NewRealtimeDialer(cfg.Realtime.URL, logger)
	signer := streamauth.NewSigner(cfg.Twilio.StreamTokenSecret, streamauth.DefaultTTL)

	// Initialize voice call processor
	toolRegistry := tools.Default()
	voiceCallProc := voiceCallProcessor.New(&deps.Store, logger)

	// Initialize session registry
	sessionDeps := session.Dependencies{
		Dialer: session.DialerFunc(func(ctx context.Context, apiKey, model string) (session.ModelConn, error) {
			conn, err := realtimeDialer.Dial(ctx, apiKey, model)
			if err != nil {
				return nil, err
			}
			return conn, nil
		}),
		Configs: sessionconfig.NewBuilder(logger, toolRegistry, cfg.Realtime.MCPServerURL),
		Tools:   toolRegistry,
		Calls:   voiceCallProc,
		NewTracker: func() session.ConversationTracker {
			return conversation.NewTracker(&deps.Store, logger)
		},
		Verifier: signer,
		Logger:   logger,
	}
	if hangupClient != nil {
		sessionDeps.Hangup = hangupClient
	}

	settings := session.Settings{
		APIKey:        cfg.Realtime.OpenAIAPIKey,
		DefaultModel:  cfg.Realtime.DefaultModel,
		IdleTimeout:   cfg.Realtime.IdleTimeout,
		GreetingDelay: cfg.Realtime.GreetingDelay,
	}

	var presence session.Presence
	if deps.Redis != nil {
		presence = deps.Redis
	}
	deps.Sessions = session.NewRegistry(sessionDeps, settings, presence, logger)

	// Initialize voice call handler
	deps.VoiceCallHandler = voiceCallHandler.New(
		voiceCallProc,
		deps.Sessions,
		toolRegistry,
		signer,
		cfg.Twilio.PublicHost,
		logger,
	)

	return deps, nil
}

// Cleanup closes all resources that need cleanup
func (d *Dependencies) Cleanup(ctx context.Context) {
	if d.Sessions != nil {
		d.Sessions.Shutdown(ctx)
	}
	if d.Redis != nil {
		if err := d.Redis.Close(); err != nil {
			d.Logger.Error(ctx, "failed to close redis client", err)
		}
	}
	if err := d.Store.Close(); err != nil {
		d.Logger.Error(ctx, "failed to close database", err)
	}
}
