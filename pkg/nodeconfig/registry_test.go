package nodeconfig_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trellishq/trellis/pkg/models"
	"github.com/trellishq/trellis/pkg/nodeconfig"
)

func TestRegistry_DefaultsValidateForEveryKind(t *testing.T) {
	t.Parallel()

	registry := nodeconfig.NewRegistry()
	descriptors := registry.Kinds()
	require.Len(t, descriptors, len(models.AllNodeKinds()))

	for _, descriptor := range descriptors {
		t.Run(string(descriptor.Kind), func(t *testing.T) {
			t.Parallel()

			defaults, err := registry.DefaultsFor(descriptor.Kind)
			require.NoError(t, err)

			err = registry.Validate(descriptor.Kind, nodeconfig.ToMap(defaults))
			assert.NoError(t, err)
		})
	}
}

func TestRegistry_UnknownKind(t *testing.T) {
	t.Parallel()

	registry := nodeconfig.NewRegistry()

	assert.False(t, registry.Known("teleporter"))

	_, err := registry.DefaultsFor("teleporter")
	require.Error(t, err)
	assert.ErrorIs(t, err, nodeconfig.ErrUnknownKind)

	_, err = registry.Decode("teleporter", map[string]any{})
	assert.ErrorIs(t, err, nodeconfig.ErrUnknownKind)
}

func TestRegistry_ValidateRejectsBadPayloads(t *testing.T) {
	t.Parallel()

	registry := nodeconfig.NewRegistry()

	tests := []struct {
		name string
		kind models.NodeKind
		raw  map[string]any
	}{
		{
			name: "unlisted model",
			kind: models.NodeKindAskAI,
			raw:  map[string]any{"prompt": "hi", "llm_model": "gpt-9", "temperature": 0.5},
		},
		{
			name: "temperature out of range",
			kind: models.NodeKindAskAI,
			raw:  map[string]any{"prompt": "hi", "llm_model": "gpt-4o", "temperature": 1.5},
		},
		{
			name: "missing required field",
			kind: models.NodeKindAskAI,
			raw:  map[string]any{"prompt": "hi", "temperature": 0.5},
		},
		{
			name: "undeclared field",
			kind: models.NodeKindAskAI,
			raw:  map[string]any{"prompt": "hi", "llm_model": "gpt-4o", "temperature": 0.5, "retries": 3},
		},
		{
			name: "unlisted http method",
			kind: models.NodeKindAPIIntegration,
			raw:  map[string]any{"description": "x", "endpoint": "https://example.com", "method": "YEET", "auth_type": "None", "response_format": "JSON"},
		},
		{
			name: "malformed schedule time",
			kind: models.NodeKindScheduleTrigger,
			raw:  map[string]any{"frequency": "daily", "time": "25:00", "timezone": "UTC"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := registry.Validate(tt.kind, tt.raw)
			require.Error(t, err)

			var validationErr *nodeconfig.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.kind, validationErr.Kind)
			assert.NotEmpty(t, validationErr.Problems)
		})
	}
}

func TestRegistry_MergeReturnsNewConfig(t *testing.T) {
	t.Parallel()

	registry := nodeconfig.NewRegistry()

	existing, err := registry.DefaultsFor(models.NodeKindAskAI)
	require.NoError(t, err)

	merged, err := registry.Merge(existing, map[string]any{"llm_model": "claude-3-opus"})
	require.NoError(t, err)

	mergedConfig, ok := merged.(*nodeconfig.AskAIConfig)
	require.True(t, ok)
	assert.Equal(t, "claude-3-opus", mergedConfig.LLMModel)
	assert.InDelta(t, 0.7, mergedConfig.Temperature, 0.0001)

	// The original value is untouched.
	existingConfig := existing.(*nodeconfig.AskAIConfig)
	assert.Equal(t, "gpt-4o-mini", existingConfig.LLMModel)
}

func TestRegistry_MergeRejectsInvalidPatch(t *testing.T) {
	t.Parallel()

	registry := nodeconfig.NewRegistry()

	existing, err := registry.DefaultsFor(models.NodeKindAskAI)
	require.NoError(t, err)

	_, err = registry.Merge(existing, map[string]any{"temperature": 9.0})
	require.Error(t, err)
	assert.True(t, nodeconfig.IsValidationError(err))

	// A rejected patch leaves the existing value valid and unchanged.
	assert.InDelta(t, 0.7, existing.(*nodeconfig.AskAIConfig).Temperature, 0.0001)
}

func TestScheduleTriggerConfig_CronSpec(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		config nodeconfig.ScheduleTriggerConfig
		want   string
	}{
		{
			name:   "daily",
			config: nodeconfig.ScheduleTriggerConfig{Frequency: "daily", Time: "12:00"},
			want:   "0 12 * * *",
		},
		{
			name:   "weekly on friday",
			config: nodeconfig.ScheduleTriggerConfig{Frequency: "weekly", Time: "09:30", DayOfWeek: 5},
			want:   "30 9 * * 5",
		},
		{
			name:   "monthly on the 15th",
			config: nodeconfig.ScheduleTriggerConfig{Frequency: "monthly", Time: "23:45", MonthDay: 15},
			want:   "45 23 15 * *",
		},
		{
			name:   "yearly with zero-based month",
			config: nodeconfig.ScheduleTriggerConfig{Frequency: "yearly", Time: "00:00", MonthDay: 1, Month: 0},
			want:   "0 0 1 1 *",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tt.config.CronSpec()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScheduleTriggerConfig_OneShot(t *testing.T) {
	t.Parallel()

	config := nodeconfig.ScheduleTriggerConfig{
		Frequency: "once",
		Time:      "08:00",
		Date:      "2026-12-24",
		DayOfWeek: 1,
		MonthDay:  1,
		Timezone:  "UTC",
	}

	_, err := config.CronSpec()
	assert.ErrorIs(t, err, nodeconfig.ErrNoCronForm)

	assert.NoError(t, config.Validate())

	config.Date = ""
	assert.Error(t, config.Validate())
}

func TestDefaultEmailSendConfig_TemplatePlaceholder(t *testing.T) {
	t.Parallel()

	defaults := nodeconfig.DefaultEmailSendConfig()
	assert.Contains(t, defaults.EmailBody, "{input}")
}
