package tools

import (
	"context"
	"fmt"
	"sort"

	"github.com/openai/openai-go"
)

// Result is the JSON object handed back to the model as a function call output.
type Result map[string]interface{}

// Handler runs a tool. Returned errors are execution failures; validation
// problems the model can fix are reported inside the Result instead.
type Handler func(ctx context.Context, args map[string]interface{}) (Result, error)

// Tool is a locally executed function the model may call.
type Tool struct {
	Name        string
	Description string
	Parameters  openai.FunctionParameters
	Handler     Handler
}

// Definition is the function descriptor advertised in the session configuration.
type Definition struct {
	Type        string                    `json:"type"`
	Name        string                    `json:"name"`
	Description string                    `json:"description"`
	Parameters  openai.FunctionParameters `json:"parameters"`
}

// Registry holds the side-effect free tools available to every agent.
type Registry struct {
	tools map[string]Tool
	order []string
}

func NewRegistry(tools ...Tool) *Registry {
	r := &Registry{tools: make(map[string]Tool, len(tools))}
	for _, t := range tools {
		r.Register(t)
	}
	return r
}

// Register adds or replaces a tool.
func (r *Registry) Register(t Tool) {
	if _, exists := r.tools[t.Name]; !exists {
		r.order = append(r.order, t.Name)
	}
	r.tools[t.Name] = t
}

// Names returns the registered tool names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Descriptions maps tool names to their descriptions.
func (r *Registry) Descriptions() map[string]string {
	out := make(map[string]string, len(r.tools))
	for name, t := range r.tools {
		out[name] = t.Description
	}
	return out
}

// Definitions returns the function descriptors in registration order.
func (r *Registry) Definitions() []Definition {
	defs := make([]Definition, 0, len(r.order))
	for _, name := range r.order {
		t := r.tools[name]
		defs = append(defs, Definition{
			Type:        "function",
			Name:        t.Name,
			Description: t.Description,
			Parameters:  t.Parameters,
		})
	}
	return defs
}

// Execute runs the named tool. Unknown tools and missing required parameters
// produce an error Result rather than an error.
func (r *Registry) Execute(ctx context.Context, name string, args map[string]interface{}) (Result, error) {
	t, ok := r.tools[name]
	if !ok {
		return Result{
			"error":           fmt.Sprintf("Unknown tool: %s", name),
			"available_tools": r.Names(),
		}, nil
	}

	if args == nil {
		args = map[string]interface{}{}
	}

	required := requiredParameters(t.Parameters)
	var missing []string
	for _, p := range required {
		if _, present := args[p]; !present {
			missing = append(missing, p)
		}
	}
	if len(missing) > 0 {
		provided := make([]string, 0, len(args))
		for k := range args {
			provided = append(provided, k)
		}
		sort.Strings(provided)
		return Result{
			"error":               fmt.Sprintf("Missing required parameters: %v", missing),
			"missing_parameters":  missing,
			"required_parameters": required,
			"provided_arguments":  provided,
			"tool_name":           name,
		}, nil
	}

	return t.Handler(ctx, args)
}

func requiredParameters(params openai.FunctionParameters) []string {
	switch req := params["required"].(type) {
	case []string:
		return req
	case []interface{}:
		out := make([]string, 0, len(req))
		for _, v := range req {
			if s, ok := v.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func stringArg(args map[string]interface{}, key string) (string, bool) {
	v, ok := args[key]
	if !ok || v == nil {
		return "", false
	}
	s, ok := v.(string)
	if !ok {
		return fmt.Sprint(v), true
	}
	return s, true
}

func intArg(args map[string]interface{}, key string, fallback int) (int, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return fallback, nil
	}
	switch n := v.(type) {
	case float64:
		return int(n), nil
	case int:
		return n, nil
	default:
		return 0, fmt.Errorf("parameter %s must be a number", key)
	}
}

// Default returns the registry used by the bridge.
func Default() *Registry {
	clock := systemClock{}
	return NewRegistry(
		weatherTool(),
		forecastTool(),
		Tool{
			Name:        "get_time",
			Description: "Get current time",
			Parameters: openai.FunctionParameters{
				"type":       "object",
				"properties": map[string]interface{}{},
				"required":   []string{},
			},
			Handler: currentTimeHandler(clock),
		},
		Tool{
			Name:        "get_current_time",
			Description: "Get current time and date",
			Parameters: openai.FunctionParameters{
				"type": "object",
				"properties": map[string]interface{}{
					"timezone": map[string]interface{}{
						"type":        "string",
						"description": "Timezone name (optional), e.g. America/New_York",
					},
				},
				"required": []string{},
			},
			Handler: currentTimeHandler(clock),
		},
		timezoneTool(clock),
		mathTool(),
	)
}
