package nodeconfig

import "github.com/trellishq/trellis/pkg/models"

// TimeoutActions lists what a human feedback gate does when nobody answers
// in time.
var TimeoutActions = []string{"skip", "retry", "abort"}

// HumanFeedbackConfig configures a human-in-the-loop approval gate. Timeout
// is in minutes.
type HumanFeedbackConfig struct {
	Platform      string `json:"platform"`
	Channel       string `json:"channel"`
	Timeout       int    `json:"timeout"`
	TimeoutAction string `json:"timeout_action"`
}

// DefaultHumanFeedbackConfig returns the editor defaults for a new Human Feedback node.
func DefaultHumanFeedbackConfig() *HumanFeedbackConfig {
	return &HumanFeedbackConfig{
		Platform:      "slack",
		Channel:       "",
		Timeout:       30,
		TimeoutAction: "skip",
	}
}

func (c *HumanFeedbackConfig) Kind() models.NodeKind {
	return models.NodeKindHumanFeedback
}

func (c *HumanFeedbackConfig) Validate() error {
	p := newProblems(c.Kind())

	if !oneOf(c.Platform, ChatPlatforms) {
		p.addf("platform: %q is not a supported platform", c.Platform)
	}

	if c.Timeout < 1 {
		p.addf("timeout: must be at least 1 minute, got %d", c.Timeout)
	}

	if !oneOf(c.TimeoutAction, TimeoutActions) {
		p.addf("timeout_action: %q is not a timeout action", c.TimeoutAction)
	}

	return p.err()
}

func humanFeedbackSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"platform": map[string]any{
				"type":    "string",
				"default": "slack",
				"enum":    enumAny(ChatPlatforms),
			},
			"channel": map[string]any{
				"type":        "string",
				"description": "Where to ask for the decision",
			},
			"timeout": map[string]any{
				"type":        "integer",
				"default":     30,
				"minimum":     1,
				"description": "Minutes to wait before applying the timeout action",
			},
			"timeout_action": map[string]any{
				"type":    "string",
				"default": "skip",
				"enum":    enumAny(TimeoutActions),
			},
		},
		"required":             []string{"platform", "channel", "timeout", "timeout_action"},
		"additionalProperties": false,
	}
}
