package nodeconfig

import "github.com/trellishq/trellis/pkg/models"

// SummarizerStyles lists the output styles a summarizer may produce.
var SummarizerStyles = []string{"concise", "detailed", "bullet_points"}

// SummarizerConfig configures an AI summarization step.
type SummarizerConfig struct {
	Prompt      string  `json:"prompt"`
	Style       string  `json:"style"`
	Temperature float64 `json:"temperature"`
	LLMModel    string  `json:"llm_model"`
}

// DefaultSummarizerConfig returns the editor defaults for a new Summarizer node.
func DefaultSummarizerConfig() *SummarizerConfig {
	return &SummarizerConfig{
		Prompt:      "",
		Style:       "concise",
		Temperature: 0.7,
		LLMModel:    "gpt-4o-mini",
	}
}

func (c *SummarizerConfig) Kind() models.NodeKind {
	return models.NodeKindSummarizer
}

func (c *SummarizerConfig) Validate() error {
	p := newProblems(c.Kind())

	if !oneOf(c.Style, SummarizerStyles) {
		p.addf("style: %q is not a summarization style", c.Style)
	}

	if c.Temperature < 0 || c.Temperature > 1 {
		p.addf("temperature: %v is outside [0, 1]", c.Temperature)
	}

	if !oneOf(c.LLMModel, LLMModels) {
		p.addf("llm_model: %q is not an available model", c.LLMModel)
	}

	return p.err()
}

func summarizerSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"prompt": map[string]any{
				"type":        "string",
				"description": "Optional guidance for what the summary should focus on",
			},
			"style": map[string]any{
				"type":    "string",
				"default": "concise",
				"enum":    enumAny(SummarizerStyles),
			},
			"temperature": map[string]any{
				"type":    "number",
				"default": 0.7,
				"minimum": 0,
				"maximum": 1,
			},
			"llm_model": map[string]any{
				"type":    "string",
				"default": "gpt-4o-mini",
				"enum":    enumAny(LLMModels),
			},
		},
		"required":             []string{"style", "temperature", "llm_model"},
		"additionalProperties": false,
	}
}
