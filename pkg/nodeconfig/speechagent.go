package nodeconfig

import "github.com/trellishq/trellis/pkg/models"

// SpeechAgentConfig configures a speech synthesis step. Stability, clarity,
// similarity boost, and style are voice tuning values in [0, 1].
type SpeechAgentConfig struct {
	VoiceID          string  `json:"voice_id"`
	ModelID          string  `json:"model_id"`
	Stability        float64 `json:"stability"`
	Clarity          float64 `json:"clarity"`
	SimilarityBoost  float64 `json:"similarity_boost"`
	Style            float64 `json:"style"`
	SpeakerBoost     bool    `json:"speaker_boost"`
	UseOriginalMedia bool    `json:"use_original_media"`
	TextInput        string  `json:"text_input"`
}

// DefaultSpeechAgentConfig returns the editor defaults for a new Speech Agent node.
func DefaultSpeechAgentConfig() *SpeechAgentConfig {
	return &SpeechAgentConfig{
		VoiceID:          "adam",
		ModelID:          "eleven_multilingual_v2",
		Stability:        0.5,
		Clarity:          0.75,
		SimilarityBoost:  0.75,
		Style:            0,
		SpeakerBoost:     true,
		UseOriginalMedia: false,
		TextInput:        "",
	}
}

func (c *SpeechAgentConfig) Kind() models.NodeKind {
	return models.NodeKindSpeechAgent
}

func (c *SpeechAgentConfig) Validate() error {
	p := newProblems(c.Kind())

	if c.VoiceID == "" {
		p.addf("voice_id: must not be empty")
	}

	if c.ModelID == "" {
		p.addf("model_id: must not be empty")
	}

	for _, tuning := range []struct {
		field string
		value float64
	}{
		{"stability", c.Stability},
		{"clarity", c.Clarity},
		{"similarity_boost", c.SimilarityBoost},
		{"style", c.Style},
	} {
		if tuning.value < 0 || tuning.value > 1 {
			p.addf("%s: %v is outside [0, 1]", tuning.field, tuning.value)
		}
	}

	return p.err()
}

func speechAgentSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"voice_id": map[string]any{
				"type":    "string",
				"default": "adam",
			},
			"model_id": map[string]any{
				"type":    "string",
				"default": "eleven_multilingual_v2",
			},
			"stability":          map[string]any{"type": "number", "default": 0.5, "minimum": 0, "maximum": 1},
			"clarity":            map[string]any{"type": "number", "default": 0.75, "minimum": 0, "maximum": 1},
			"similarity_boost":   map[string]any{"type": "number", "default": 0.75, "minimum": 0, "maximum": 1},
			"style":              map[string]any{"type": "number", "default": 0, "minimum": 0, "maximum": 1},
			"speaker_boost":      map[string]any{"type": "boolean", "default": true},
			"use_original_media": map[string]any{"type": "boolean", "default": false},
			"text_input": map[string]any{
				"type":        "string",
				"description": "Text to synthesize when not using incoming media",
			},
		},
		"required":             []string{"voice_id", "model_id"},
		"additionalProperties": false,
	}
}
