package nodeconfig

import (
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/trellishq/trellis/pkg/models"
)

// Frequencies lists the supported schedule frequencies.
var Frequencies = []string{"once", "daily", "weekly", "monthly", "yearly"}

// ErrNoCronForm is returned by CronSpec for one-shot schedules.
var ErrNoCronForm = errors.New("one-shot schedules have no cron form")

var cronParser = cron.ParseStandard

// ScheduleTriggerConfig configures a time-based workflow trigger. Fields
// beyond frequency and time only apply to specific frequencies: date for
// once, day_of_week for weekly, month_day for monthly and yearly, month for
// yearly.
type ScheduleTriggerConfig struct {
	Frequency   string `json:"frequency"`
	Time        string `json:"time"`
	Date        string `json:"date,omitempty"`
	DayOfWeek   int    `json:"day_of_week"`
	MonthDay    int    `json:"month_day"`
	Month       int    `json:"month"`
	Timezone    string `json:"timezone"`
	Description string `json:"description,omitempty"`
}

// DefaultScheduleTriggerConfig returns the editor defaults for a new Schedule Trigger node.
func DefaultScheduleTriggerConfig() *ScheduleTriggerConfig {
	return &ScheduleTriggerConfig{
		Frequency: "daily",
		Time:      "12:00",
		DayOfWeek: 1,
		MonthDay:  1,
		Month:     0,
		Timezone:  "UTC",
	}
}

func (c *ScheduleTriggerConfig) Kind() models.NodeKind {
	return models.NodeKindScheduleTrigger
}

func (c *ScheduleTriggerConfig) Validate() error {
	p := newProblems(c.Kind())

	if !oneOf(c.Frequency, Frequencies) {
		p.addf("frequency: %q is not a supported frequency", c.Frequency)
	}

	if _, err := time.Parse("15:04", c.Time); err != nil {
		p.addf("time: %q is not a valid HH:MM time", c.Time)
	}

	if c.Frequency == "once" {
		if _, err := time.Parse("2006-01-02", c.Date); err != nil {
			p.addf("date: %q is not a valid YYYY-MM-DD date", c.Date)
		}
	}

	if c.DayOfWeek < 0 || c.DayOfWeek > 6 {
		p.addf("day_of_week: %d is outside 0-6", c.DayOfWeek)
	}

	if c.MonthDay < 1 || c.MonthDay > 31 {
		p.addf("month_day: %d is outside 1-31", c.MonthDay)
	}

	if c.Month < 0 || c.Month > 11 {
		p.addf("month: %d is outside 0-11", c.Month)
	}

	if c.Timezone == "" {
		p.addf("timezone: must not be empty")
	}

	if err := p.err(); err != nil {
		return err
	}

	// Recurring schedules must be expressible as a standard cron entry.
	if c.Frequency != "once" {
		spec, err := c.CronSpec()
		if err != nil {
			return asValidationError(c.Kind(), err)
		}

		if _, err := cronParser(spec); err != nil {
			return &ValidationError{Kind: c.Kind(), Problems: []string{
				fmt.Sprintf("schedule: derived cron spec %q is invalid: %v", spec, err),
			}}
		}
	}

	return nil
}

// CronSpec derives the standard five-field cron expression for a recurring
// schedule. One-shot schedules return ErrNoCronForm.
func (c *ScheduleTriggerConfig) CronSpec() (string, error) {
	parsed, err := time.Parse("15:04", c.Time)
	if err != nil {
		return "", fmt.Errorf("invalid time %q: %w", c.Time, err)
	}

	minute, hour := parsed.Minute(), parsed.Hour()

	switch c.Frequency {
	case "daily":
		return fmt.Sprintf("%d %d * * *", minute, hour), nil
	case "weekly":
		return fmt.Sprintf("%d %d * * %d", minute, hour, c.DayOfWeek), nil
	case "monthly":
		return fmt.Sprintf("%d %d %d * *", minute, hour, c.MonthDay), nil
	case "yearly":
		// Month is stored zero-based; cron months are 1-12.
		return fmt.Sprintf("%d %d %d %d *", minute, hour, c.MonthDay, c.Month+1), nil
	case "once":
		return "", ErrNoCronForm
	default:
		return "", fmt.Errorf("unsupported frequency %q", c.Frequency)
	}
}

func scheduleTriggerSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"frequency": map[string]any{
				"type":    "string",
				"default": "daily",
				"enum":    enumAny(Frequencies),
			},
			"time": map[string]any{
				"type":        "string",
				"default":     "12:00",
				"description": "24-hour HH:MM time",
				"pattern":     "^([01][0-9]|2[0-3]):[0-5][0-9]$",
			},
			"date": map[string]any{
				"type":        "string",
				"description": "YYYY-MM-DD date, required when frequency is once",
			},
			"day_of_week": map[string]any{
				"type":    "integer",
				"default": 1,
				"minimum": 0,
				"maximum": 6,
			},
			"month_day": map[string]any{
				"type":    "integer",
				"default": 1,
				"minimum": 1,
				"maximum": 31,
			},
			"month": map[string]any{
				"type":    "integer",
				"default": 0,
				"minimum": 0,
				"maximum": 11,
			},
			"timezone": map[string]any{
				"type":    "string",
				"default": "UTC",
			},
			"description": map[string]any{"type": "string"},
		},
		"required":             []string{"frequency", "time", "timezone"},
		"additionalProperties": false,
	}
}
