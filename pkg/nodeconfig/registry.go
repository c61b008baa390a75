// Package nodeconfig is the single source of truth for per-kind node
// configuration: field schemas, defaults, and validation. Adding a new step
// kind means adding one registration here; the graph model never changes.
package nodeconfig

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/trellishq/trellis/pkg/models"
	"github.com/xeipuuv/gojsonschema"
)

// Config is the typed configuration payload of a workflow node. Each node
// kind fixes its own concrete type. Configs are immutable from the graph's
// point of view: updates go through Registry.Merge, which returns a new,
// validated value.
type Config interface {
	Kind() models.NodeKind
	Validate() error
}

type entry struct {
	name        string
	description string
	defaults    func() Config
	decode      func([]byte) (Config, error)
	schema      map[string]any
	compiled    *gojsonschema.Schema
}

// Descriptor describes a registered node kind for API consumers.
type Descriptor struct {
	Kind        models.NodeKind `json:"kind"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Defaults    Config          `json:"defaults"`
	Schema      map[string]any  `json:"schema"`
}

// Registry maps node kinds to their configuration contracts.
type Registry struct {
	entries map[models.NodeKind]*entry
}

// NewRegistry builds a registry with every built-in node kind registered.
func NewRegistry() *Registry {
	r := &Registry{entries: make(map[models.NodeKind]*entry)}

	r.register(models.NodeKindAskAI, "Ask AI", "Prompt an AI language model", func() Config { return DefaultAskAIConfig() }, decodeInto[AskAIConfig], askAISchema())
	r.register(models.NodeKindSummarizer, "Summarizer", "Summarize incoming content with an AI model", func() Config { return DefaultSummarizerConfig() }, decodeInto[SummarizerConfig], summarizerSchema())
	r.register(models.NodeKindFileReader, "File Reader", "Read and extract content from a file source", func() Config { return DefaultFileReaderConfig() }, decodeInto[FileReaderConfig], fileReaderSchema())
	r.register(models.NodeKindAPIIntegration, "API Integration", "Call a custom API endpoint with typed arguments", func() Config { return DefaultAPIIntegrationConfig() }, decodeInto[APIIntegrationConfig], apiIntegrationSchema())
	r.register(models.NodeKindCommunication, "Communication", "Send or receive messages on a chat platform", func() Config { return DefaultCommunicationConfig() }, decodeInto[CommunicationConfig], communicationSchema())
	r.register(models.NodeKindSQLDatabase, "SQL Database", "Query a SQL database directly or via an AI prompt", func() Config { return DefaultSQLDatabaseConfig() }, decodeInto[SQLDatabaseConfig], sqlDatabaseSchema())
	r.register(models.NodeKindScheduleTrigger, "Schedule Trigger", "Start the workflow on a recurring or one-shot schedule", func() Config { return DefaultScheduleTriggerConfig() }, decodeInto[ScheduleTriggerConfig], scheduleTriggerSchema())
	r.register(models.NodeKindHumanFeedback, "Human Feedback", "Pause for a human decision on a chat platform", func() Config { return DefaultHumanFeedbackConfig() }, decodeInto[HumanFeedbackConfig], humanFeedbackSchema())
	r.register(models.NodeKindEmailSend, "Email Send", "Send an email with templated content", func() Config { return DefaultEmailSendConfig() }, decodeInto[EmailSendConfig], emailSendSchema())
	r.register(models.NodeKindSpeechAgent, "Speech Agent", "Synthesize speech from text or incoming media", func() Config { return DefaultSpeechAgentConfig() }, decodeInto[SpeechAgentConfig], speechAgentSchema())

	return r
}

func (r *Registry) register(kind models.NodeKind, name, description string, defaults func() Config, decode func([]byte) (Config, error), schema map[string]any) {
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(schema))
	if err != nil {
		// Schemas are static literals; a compile failure is a programming error.
		panic(fmt.Sprintf("nodeconfig: invalid schema for kind %q: %v", kind, err))
	}

	r.entries[kind] = &entry{
		name:        name,
		description: description,
		defaults:    defaults,
		decode:      decode,
		schema:      schema,
		compiled:    compiled,
	}
}

// Kinds returns a descriptor for every registered kind, in models.AllNodeKinds order.
func (r *Registry) Kinds() []Descriptor {
	descriptors := make([]Descriptor, 0, len(r.entries))

	for _, kind := range models.AllNodeKinds() {
		e, ok := r.entries[kind]
		if !ok {
			continue
		}

		descriptors = append(descriptors, Descriptor{
			Kind:        kind,
			Name:        e.name,
			Description: e.description,
			Defaults:    e.defaults(),
			Schema:      e.schema,
		})
	}

	return descriptors
}

// Known reports whether kind is registered.
func (r *Registry) Known(kind models.NodeKind) bool {
	_, ok := r.entries[kind]

	return ok
}

// DefaultsFor returns a fresh config populated with the kind's defaults.
func (r *Registry) DefaultsFor(kind models.NodeKind) (Config, error) {
	e, ok := r.entries[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}

	return e.defaults(), nil
}

// Validate checks a raw config payload against the kind's schema and
// cross-field rules. Returns a *ValidationError describing every field-level
// problem found.
func (r *Registry) Validate(kind models.NodeKind, raw map[string]any) error {
	_, err := r.Decode(kind, raw)

	return err
}

// Decode validates a raw payload and produces the typed config for its kind.
func (r *Registry) Decode(kind models.NodeKind, raw map[string]any) (Config, error) {
	e, ok := r.entries[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}

	result, err := e.compiled.Validate(gojsonschema.NewGoLoader(raw))
	if err != nil {
		return nil, &ValidationError{Kind: kind, Problems: []string{err.Error()}}
	}

	if !result.Valid() {
		problems := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			problems = append(problems, desc.String())
		}

		return nil, &ValidationError{Kind: kind, Problems: problems}
	}

	data, err := json.Marshal(raw)
	if err != nil {
		return nil, &ValidationError{Kind: kind, Problems: []string{err.Error()}}
	}

	config, err := e.decode(data)
	if err != nil {
		return nil, &ValidationError{Kind: kind, Problems: []string{err.Error()}}
	}

	if err := config.Validate(); err != nil {
		return nil, asValidationError(kind, err)
	}

	return config, nil
}

// Merge overlays a partial payload onto an existing config and returns a new
// validated config. The existing value is never mutated.
func (r *Registry) Merge(existing Config, patch map[string]any) (Config, error) {
	kind := existing.Kind()

	merged := ToMap(existing)
	for field, value := range patch {
		merged[field] = value
	}

	return r.Decode(kind, merged)
}

// ToMap renders a config as the raw payload persisted inside a workflow
// document.
func ToMap(c Config) map[string]any {
	data, err := json.Marshal(c)
	if err != nil {
		return map[string]any{}
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return map[string]any{}
	}

	return raw
}

// decodeInto decodes JSON into a concrete config type, rejecting fields the
// type does not declare.
func decodeInto[T any](data []byte) (Config, error) {
	var value T

	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&value); err != nil {
		return nil, err
	}

	config, ok := any(&value).(Config)
	if !ok {
		return nil, fmt.Errorf("type %T does not implement Config", &value)
	}

	return config, nil
}
