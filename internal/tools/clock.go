package tools

import (
	"context"
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/openai/openai-go"
)

// Clock abstracts the current time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func currentTimeHandler(clock Clock) Handler {
	return func(ctx context.Context, args map[string]interface{}) (Result, error) {
		tz, ok := stringArg(args, "timezone")
		if !ok || tz == "" {
			tz = "UTC"
		}
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return Result{
				"error":    fmt.Sprintf("Unknown timezone %q, use an IANA name such as America/New_York or UTC", tz),
				"timezone": tz,
			}, nil
		}
		now := clock.Now().In(loc)
		return Result{
			"current_time":   now.Format("2006-01-02 15:04:05"),
			"date":           now.Format("Monday, January 02, 2006"),
			"time":           now.Format("03:04 PM"),
			"timezone":       tz,
			"unix_timestamp": now.Unix(),
			"day_of_week":    now.Weekday().String(),
			"month":          now.Month().String(),
		}, nil
	}
}

func timezoneTool(clock Clock) Tool {
	return Tool{
		Name:        "get_timezone_info",
		Description: "Get the current UTC offset and abbreviation of a timezone",
		Parameters: openai.FunctionParameters{
			"type": "object",
			"properties": map[string]interface{}{
				"timezone": map[string]interface{}{
					"type":        "string",
					"description": "IANA timezone name, e.g. Europe/London",
				},
			},
			"required": []string{"timezone"},
		},
		Handler: func(ctx context.Context, args map[string]interface{}) (Result, error) {
			tz, _ := stringArg(args, "timezone")
			loc, err := time.LoadLocation(tz)
			if err != nil {
				return Result{
					"error":    fmt.Sprintf("Unknown timezone %q", tz),
					"timezone": tz,
				}, nil
			}
			now := clock.Now().In(loc)
			abbrev, _ := now.Zone()
			return Result{
				"timezone":     tz,
				"offset":       now.Format("-07:00"),
				"abbreviation": abbrev,
				"description":  fmt.Sprintf("%s is currently UTC%s (%s)", tz, now.Format("-07:00"), abbrev),
			}, nil
		},
	}
}
