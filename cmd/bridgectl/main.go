package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"realtime-bridge/internal/config"
	"realtime-bridge/internal/conversation"
	"realtime-bridge/internal/observability"
	"realtime-bridge/internal/store"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// openStore connects to the database described by the environment.
type openStore func(ctx context.Context) (*store.Store, error)

func defaultOpenStore(ctx context.Context) (*store.Store, error) {
	dbConfig, err := config.LoadDatabase()
	if err != nil {
		return nil, err
	}
	s, err := store.New(dbConfig.ConnectionString(), observability.NewLogger())
	if err != nil {
		return nil, err
	}
	if err := s.Ping(ctx); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}
	return &s, nil
}

func newRootCmd(open openStore) *cobra.Command {
	root := &cobra.Command{
		Use:           "bridgectl",
		Short:         "Operate the realtime voice bridge database",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newMigrateCmd(open))
	root.AddCommand(newCreateAgentCmd(open))
	root.AddCommand(newReprocessCmd(open))
	return root
}

func main() {
	if err := newRootCmd(defaultOpenStore).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "bridgectl: %v\n", err)
		os.Exit(1)
	}
}

func newMigrateCmd(open openStore) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := open(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.Migrate(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
}

type createAgentOptions struct {
	tenantID     string
	tenantName   string
	name         string
	instructions string
	voice        string
	model        string
	timezone     string
	phoneNumber  string
}

func (o createAgentOptions) validate() error {
	if o.tenantID == "" && o.tenantName == "" {
		return errors.New("one of --tenant-id or --tenant-name is required")
	}
	if o.tenantID != "" && o.tenantName != "" {
		return errors.New("--tenant-id cannot be used with --tenant-name")
	}
	if o.tenantID != "" {
		if _, err := uuid.Parse(o.tenantID); err != nil {
			return fmt.Errorf("invalid --tenant-id: %w", err)
		}
	}
	if strings.TrimSpace(o.name) == "" {
		return errors.New("--name is required")
	}
	return nil
}

func (o createAgentOptions) params(tenantID uuid.UUID) store.CreateAgentConfigParams {
	params := store.CreateAgentConfigParams{
		TenantID:                  tenantID,
		Name:                      o.name,
		Instructions:              o.instructions,
		Voice:                     o.voice,
		Modalities:                store.StringArray{"text", "audio"},
		Temperature:               0.8,
		MaxResponseOutputTokens:   "inf",
		TurnDetectionType:         store.TurnDetectionServerVAD,
		VADThreshold:              0.5,
		VADPrefixPaddingMs:        300,
		VADSilenceDurationMs:      500,
		VADEagerness:              "auto",
		InputTranscriptionEnabled: true,
		TranscriptionModel:        "whisper-1",
		Timezone:                  o.timezone,
	}
	if o.model != "" {
		model := o.model
		params.Model = &model
	}
	return params
}

func newCreateAgentCmd(open openStore) *cobra.Command {
	var opts createAgentOptions

	cmd := &cobra.Command{
		Use:   "create-agent",
		Short: "Seed a voice agent with default settings for a tenant",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.validate(); err != nil {
				return err
			}

			ctx := cmd.Context()
			s, err := open(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			var tenantID uuid.UUID
			if opts.tenantID != "" {
				tenantID = uuid.MustParse(opts.tenantID)
			} else {
				tenant, err := s.CreateTenant(ctx, store.CreateTenantParams{Name: opts.tenantName})
				if err != nil {
					return err
				}
				tenantID = tenant.ID
			}

			agent, err := s.CreateAgentConfig(ctx, opts.params(tenantID))
			if err != nil {
				return err
			}

			out := map[string]interface{}{"tenant_id": tenantID, "agent_id": agent.ID, "name": agent.Name}
			if opts.phoneNumber != "" {
				number, err := s.CreatePhoneNumber(ctx, store.CreatePhoneNumberParams{
					TenantID: tenantID,
					Number:   opts.phoneNumber,
					AgentID:  &agent.ID,
				})
				if err != nil {
					return err
				}
				out["phone_number_id"] = number.ID
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.tenantID, "tenant-id", "", "existing tenant to add the agent to")
	flags.StringVar(&opts.tenantName, "tenant-name", "", "create a new tenant with this name")
	flags.StringVar(&opts.name, "name", "Assistant", "agent name")
	flags.StringVar(&opts.instructions, "instructions", "You are a helpful phone assistant. Your welcoming message: Hello, how can I help you today?", "agent instructions")
	flags.StringVar(&opts.voice, "voice", "alloy", "model voice")
	flags.StringVar(&opts.model, "model", "", "realtime model override")
	flags.StringVar(&opts.timezone, "timezone", "UTC", "IANA timezone of the agent")
	flags.StringVar(&opts.phoneNumber, "phone-number", "", "E.164 number to route to the agent")
	return cmd
}

func validateReprocessFlags(sessionID string, all bool) error {
	if sessionID == "" && !all {
		return errors.New("one of --session-id or --all is required")
	}
	if sessionID != "" && all {
		return errors.New("--session-id cannot be used with --all")
	}
	return nil
}

func newReprocessCmd(open openStore) *cobra.Command {
	var (
		sessionID string
		all       bool
		dryRun    bool
	)

	cmd := &cobra.Command{
		Use:   "reprocess",
		Short: "Rebuild assistant turns from stored transcript deltas",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateReprocessFlags(sessionID, all); err != nil {
				return err
			}

			ctx := cmd.Context()
			s, err := open(ctx)
			if err != nil {
				return err
			}
			defer s.Close()

			reprocessor := conversation.NewReprocessor(s, observability.NewLogger())

			var results []conversation.ReprocessResult
			if all {
				results, err = reprocessor.ReprocessAll(ctx, dryRun)
				if err != nil {
					return err
				}
			} else {
				result, err := reprocessor.ReprocessSession(ctx, sessionID, dryRun)
				if err != nil {
					return err
				}
				results = append(results, result)
			}

			created := 0
			for _, r := range results {
				created += r.Created
			}
			if err := writeJSON(cmd.OutOrStdout(), results); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "%d conversations, %d turns created (dry run: %t)\n", len(results), created, dryRun)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&sessionID, "session-id", "", "reprocess a single call")
	flags.BoolVar(&all, "all", false, "reprocess every call")
	flags.BoolVar(&dryRun, "dry-run", false, "report what would be created without writing")
	return cmd
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
