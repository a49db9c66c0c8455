package tools

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
)

var forecastDays = []Result{
	{"day": "Today", "high": "75°F", "low": "58°F", "condition": "Sunny"},
	{"day": "Tomorrow", "high": "73°F", "low": "60°F", "condition": "Partly Cloudy"},
	{"day": "Day 3", "high": "71°F", "low": "55°F", "condition": "Light Rain"},
}

func weatherTool() Tool {
	return Tool{
		Name:        "get_weather",
		Description: "Get current weather for a location",
		Parameters: openai.FunctionParameters{
			"type": "object",
			"properties": map[string]interface{}{
				"location": map[string]interface{}{
					"type":        "string",
					"description": "The city and state, e.g. San Francisco, CA",
				},
			},
			"required": []string{"location"},
		},
		Handler: func(ctx context.Context, args map[string]interface{}) (Result, error) {
			location, _ := stringArg(args, "location")
			return Result{
				"location":    location,
				"temperature": "72°F",
				"condition":   "Sunny",
				"humidity":    "45%",
				"wind_speed":  "8 mph",
				"description": fmt.Sprintf("It's a beautiful sunny day in %s with comfortable temperatures.", location),
			}, nil
		},
	}
}

func forecastTool() Tool {
	return Tool{
		Name:        "get_weather_forecast",
		Description: "Get weather forecast for multiple days",
		Parameters: openai.FunctionParameters{
			"type": "object",
			"properties": map[string]interface{}{
				"location": map[string]interface{}{
					"type":        "string",
					"description": "The city and state",
				},
				"days": map[string]interface{}{
					"type":        "integer",
					"description": "Number of days to forecast (1-7)",
					"minimum":     1,
					"maximum":     7,
				},
			},
			"required": []string{"location"},
		},
		Handler: func(ctx context.Context, args map[string]interface{}) (Result, error) {
			location, _ := stringArg(args, "location")
			days, err := intArg(args, "days", 3)
			if err != nil {
				return Result{"error": err.Error(), "tool_name": "get_weather_forecast"}, nil
			}
			n := days
			if n < 0 {
				n = 0
			}
			if n > len(forecastDays) {
				n = len(forecastDays)
			}
			return Result{
				"location":      location,
				"forecast_days": days,
				"forecast":      forecastDays[:n],
			}, nil
		},
	}
}
