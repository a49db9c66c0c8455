package session

import (
	"context"
	"encoding/json"
	"fmt"
	"realtime-bridge/internal/observability"
	"realtime-bridge/internal/realtime/protocol"
	"realtime-bridge/internal/tools"
	"strings"
	"time"
)

const pendingToolTTL = 2 * time.Minute

const (
	holdInstructions         = "One moment while I check that for you..."
	resultInstructions       = "Briefly explain the tool result to the caller and offer a next step. Avoid jargon and confirm if they'd like you to proceed."
	toolErrorInstructions    = "I encountered an error while processing your request. Please try again or ask something else."
	mcpCompletedInstructions = "The MCP tool call has completed. Please explain the results to the caller in a clear and helpful way, and ask if they need anything else."
)

// Invocation is a local tool call whose arguments are complete.
type Invocation struct {
	CallID    string
	Name      string
	Arguments map[string]interface{}
}

type pendingArguments struct {
	text    strings.Builder
	raw     string
	done    bool
	updated time.Time
}

// ToolCallCoordinator buffers streamed tool arguments. Local calls are keyed
// by call id and executed against the registry; remote (MCP) calls are keyed
// by item id and only tracked until the remote side reports back. It is owned
// by a Session and only touched under its lock, except Execute.
type ToolCallCoordinator struct {
	registry *tools.Registry
	logger   *observability.Logger
	ttl      time.Duration
	now      func() time.Time

	local   map[string]*pendingArguments
	remote  map[string]*pendingArguments
	handled map[string]time.Time
}

func NewToolCallCoordinator(registry *tools.Registry, logger *observability.Logger) *ToolCallCoordinator {
	return &ToolCallCoordinator{
		registry: registry,
		logger:   logger,
		ttl:      pendingToolTTL,
		now:      time.Now,
		local:    make(map[string]*pendingArguments),
		remote:   make(map[string]*pendingArguments),
		handled:  make(map[string]time.Time),
	}
}

func (c *ToolCallCoordinator) pending(m map[string]*pendingArguments, id string) *pendingArguments {
	p, ok := m[id]
	if !ok {
		p = &pendingArguments{}
		m[id] = p
	}
	p.updated = c.now()
	return p
}

// AppendArguments buffers an argument fragment of a local call.
func (c *ToolCallCoordinator) AppendArguments(ctx context.Context, callID, delta string) {
	c.Sweep(ctx)
	if callID == "" {
		return
	}
	if _, done := c.handled[callID]; done {
		return
	}
	c.pending(c.local, callID).text.WriteString(delta)
}

// Complete ends argument streaming for a local call and returns the call to
// execute. It reports false when the call id was already handled, so the
// first completion wins.
func (c *ToolCallCoordinator) Complete(ctx context.Context, callID, name, arguments string) (Invocation, bool) {
	c.Sweep(ctx)

	ctx = observability.WithFields(ctx,
		observability.Field{Key: "call_id", Value: callID},
		observability.Field{Key: "function_name", Value: name},
	)
	if callID == "" {
		c.logger.Warn(ctx, "tool call completed without a call id")
		return Invocation{}, false
	}
	if _, done := c.handled[callID]; done {
		c.logger.Debug(ctx, "ignoring duplicate tool call completion")
		return Invocation{}, false
	}
	c.handled[callID] = c.now()

	raw := arguments
	if p, ok := c.local[callID]; ok {
		delete(c.local, callID)
		if buffered := p.text.String(); buffered != "" {
			raw = buffered
		}
	} else {
		c.logger.Warn(ctx, "tool call completed without buffered arguments")
	}

	return Invocation{CallID: callID, Name: name, Arguments: c.parseArguments(ctx, raw)}, true
}

func (c *ToolCallCoordinator) parseArguments(ctx context.Context, raw string) map[string]interface{} {
	args := map[string]interface{}{}
	if strings.TrimSpace(raw) == "" {
		return args
	}
	if err := json.Unmarshal([]byte(raw), &args); err != nil || args == nil {
		c.logger.Warn(ctx, "tool arguments are not a JSON object, using {}")
		return map[string]interface{}{}
	}
	return args
}

// Execute runs the invocation. Panics are converted into errors.
func (c *ToolCallCoordinator) Execute(ctx context.Context, inv Invocation) (output string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("tool %s panicked: %v", inv.Name, r)
		}
	}()

	result, err := c.registry.Execute(ctx, inv.Name, inv.Arguments)
	if err != nil {
		return "", err
	}
	b, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("failed to marshal tool result: %w", err)
	}
	return string(b), nil
}

// AppendMCPArguments buffers an argument fragment of a remote call.
func (c *ToolCallCoordinator) AppendMCPArguments(ctx context.Context, itemID, delta string) {
	c.Sweep(ctx)
	if itemID == "" {
		return
	}
	c.pending(c.remote, itemID).text.WriteString(delta)
}

// CompleteMCPArguments stores the final argument text of a remote call until
// its completion or failure arrives.
func (c *ToolCallCoordinator) CompleteMCPArguments(ctx context.Context, itemID, arguments string) {
	c.Sweep(ctx)
	if itemID == "" {
		return
	}
	p := c.pending(c.remote, itemID)
	if arguments == "" {
		arguments = p.text.String()
	}
	p.raw = arguments
	p.done = true
}

// ResolveMCP removes a remote call and returns its arguments.
func (c *ToolCallCoordinator) ResolveMCP(ctx context.Context, itemID string) (string, bool) {
	c.Sweep(ctx)
	p, ok := c.remote[itemID]
	if !ok {
		return "", false
	}
	delete(c.remote, itemID)
	if !p.done {
		return p.text.String(), true
	}
	return p.raw, true
}

// Sweep drops pending entries that have not been updated within the TTL,
// and forgets handled call ids completed before it.
func (c *ToolCallCoordinator) Sweep(ctx context.Context) {
	cutoff := c.now().Add(-c.ttl)
	for id, completed := range c.handled {
		if completed.Before(cutoff) {
			delete(c.handled, id)
		}
	}

	dropped := 0
	for _, m := range []map[string]*pendingArguments{c.local, c.remote} {
		for id, p := range m {
			if p.updated.Before(cutoff) {
				delete(m, id)
				dropped++
			}
		}
	}
	if dropped > 0 {
		c.logger.Warn(observability.WithFields(ctx, observability.Field{Key: "dropped", Value: dropped}),
			"dropped stale pending tool calls")
	}
}

// Pending is the number of calls still waiting for completion.
func (c *ToolCallCoordinator) Pending() int {
	return len(c.local) + len(c.remote)
}

func (c *ToolCallCoordinator) Reset() {
	c.local = make(map[string]*pendingArguments)
	c.remote = make(map[string]*pendingArguments)
	c.handled = make(map[string]time.Time)
}

func toolErrorOutput(inv Invocation, err error) string {
	b, _ := json.Marshal(map[string]string{
		"error":         "Tool execution failed: " + err.Error(),
		"function_name": inv.Name,
		"call_id":       inv.CallID,
	})
	return string(b)
}

// mcpFailureFeedback returns the diagnostic shown to the model and the
// instructions for the corrective response.
func mcpFailureFeedback(arguments string, e *protocol.Error) (string, string) {
	code, message := "Unknown code", "Unknown error"
	if e != nil {
		if e.Code != "" {
			code = e.Code
		}
		if e.Message != "" {
			message = e.Message
		}
	}

	diagnostic := fmt.Sprintf(`The MCP tool call failed with the following error:

Error Code: %s
Error Message: %s

Tool Parameters Used:
%s

Please review the error and try again with corrected parameters. Common issues include:
- Invalid timezone format (use standard timezone names like "America/New_York")
- Invalid date format (use ISO format like "2025-09-23")
- Missing required parameters
- Invalid parameter values`, code, message, mcpParameters(arguments))

	instructions := fmt.Sprintf("I encountered an error with the tool call. %s Please try again with corrected parameters. "+
		"If this is a timezone issue, use standard timezone names like 'America/New_York' or 'UTC'.", message)

	return diagnostic, instructions
}

// mcpParameters renders the parameters of a remote call. Arguments shaped as
// {name, arguments} are unwrapped.
func mcpParameters(arguments string) string {
	var params interface{} = map[string]interface{}{}

	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(arguments), &parsed); err == nil && parsed != nil {
		params = parsed
		if _, named := parsed["name"]; named {
			params = map[string]interface{}{}
			if inner, ok := parsed["arguments"]; ok && inner != nil {
				params = inner
			}
		}
	}

	b, err := json.MarshalIndent(params, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(b)
}
