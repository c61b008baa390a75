package nodeconfig

import "github.com/trellishq/trellis/pkg/models"

// LLMModels lists the language models a node may select.
var LLMModels = []string{
	"gpt-4o-mini",
	"gpt-4o",
	"gpt-4",
	"gpt-3.5-turbo",
	"claude-3-sonnet",
	"claude-3-opus",
	"gemini-pro",
}

// AskAITools lists the tool integrations an Ask AI node may enable.
var AskAITools = []string{
	"weather",
	"gmail",
	"google-calendar",
	"github",
	"notion",
	"brave-search",
}

// AskAIConfig configures an AI prompting step.
type AskAIConfig struct {
	Prompt        string   `json:"prompt"`
	LLMModel      string   `json:"llm_model"`
	Temperature   float64  `json:"temperature"`
	SelectedTools []string `json:"selected_tools,omitempty"`
}

// DefaultAskAIConfig returns the editor defaults for a new Ask AI node.
func DefaultAskAIConfig() *AskAIConfig {
	return &AskAIConfig{
		Prompt:        "",
		LLMModel:      "gpt-4o-mini",
		Temperature:   0.7,
		SelectedTools: []string{},
	}
}

func (c *AskAIConfig) Kind() models.NodeKind {
	return models.NodeKindAskAI
}

func (c *AskAIConfig) Validate() error {
	p := newProblems(c.Kind())

	if !oneOf(c.LLMModel, LLMModels) {
		p.addf("llm_model: %q is not an available model", c.LLMModel)
	}

	if c.Temperature < 0 || c.Temperature > 1 {
		p.addf("temperature: %v is outside [0, 1]", c.Temperature)
	}

	for _, tool := range c.SelectedTools {
		if !oneOf(tool, AskAITools) {
			p.addf("selected_tools: %q is not an available tool", tool)
		}
	}

	return p.err()
}

func askAISchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"prompt": map[string]any{
				"type":        "string",
				"description": "Instructions for the AI model",
			},
			"llm_model": map[string]any{
				"type":    "string",
				"default": "gpt-4o-mini",
				"enum":    enumAny(LLMModels),
			},
			"temperature": map[string]any{
				"type":    "number",
				"default": 0.7,
				"minimum": 0,
				"maximum": 1,
			},
			"selected_tools": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string", "enum": enumAny(AskAITools)},
			},
		},
		"required":             []string{"prompt", "llm_model", "temperature"},
		"additionalProperties": false,
	}
}
