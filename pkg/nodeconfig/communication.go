package nodeconfig

import "github.com/trellishq/trellis/pkg/models"

// Communication option sets. Platforms are shared with the human feedback
// node.
var (
	ChatPlatforms = []string{"discord", "slack", "whatsapp", "telegram"}
	Directions    = []string{"input", "output"}
)

// CommunicationConfig configures a chat platform messaging step. Direction
// selects whether the node listens for messages (input) or sends them
// (output).
type CommunicationConfig struct {
	Platform         string `json:"platform"`
	Direction        string `json:"direction"`
	Channel          string `json:"channel"`
	BotInvokeCommand string `json:"bot_invoke_command,omitempty"`
	CommandPrefix    string `json:"command_prefix,omitempty"`
	TriggerType      string `json:"trigger_type,omitempty"`
	MessageTemplate  string `json:"message_template,omitempty"`
	MessageType      string `json:"message_type"`
}

// DefaultCommunicationConfig returns the editor defaults for a new Communication node.
func DefaultCommunicationConfig() *CommunicationConfig {
	return &CommunicationConfig{
		Platform:    "slack",
		Direction:   "input",
		Channel:     "",
		MessageType: "text",
	}
}

func (c *CommunicationConfig) Kind() models.NodeKind {
	return models.NodeKindCommunication
}

func (c *CommunicationConfig) Validate() error {
	p := newProblems(c.Kind())

	if !oneOf(c.Platform, ChatPlatforms) {
		p.addf("platform: %q is not a supported platform", c.Platform)
	}

	if !oneOf(c.Direction, Directions) {
		p.addf("direction: %q must be input or output", c.Direction)
	}

	return p.err()
}

func communicationSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"platform": map[string]any{
				"type":    "string",
				"default": "slack",
				"enum":    enumAny(ChatPlatforms),
			},
			"direction": map[string]any{
				"type":    "string",
				"default": "input",
				"enum":    enumAny(Directions),
			},
			"channel": map[string]any{
				"type":        "string",
				"description": "Channel, chat, or conversation identifier",
			},
			"bot_invoke_command": map[string]any{"type": "string"},
			"command_prefix":     map[string]any{"type": "string"},
			"trigger_type":       map[string]any{"type": "string"},
			"message_template":   map[string]any{"type": "string"},
			"message_type": map[string]any{
				"type":    "string",
				"default": "text",
			},
		},
		"required":             []string{"platform", "direction", "channel", "message_type"},
		"additionalProperties": false,
	}
}
