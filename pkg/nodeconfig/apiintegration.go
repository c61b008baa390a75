package nodeconfig

import "github.com/trellishq/trellis/pkg/models"

// API integration option sets.
var (
	HTTPMethods     = []string{"GET", "POST", "PUT", "DELETE", "PATCH"}
	AuthTypes       = []string{"None", "API Key", "Bearer Token", "Basic Auth", "OAuth2"}
	ArgumentTypes   = []string{"string", "number", "boolean", "object", "array"}
	ResponseFormats = []string{"JSON", "XML", "Text"}
)

// APIHeader is one header row on an API integration node.
type APIHeader struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// APIArgument is one typed argument the integration accepts.
type APIArgument struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Required    bool   `json:"required"`
	Description string `json:"description,omitempty"`
}

// APIIntegrationConfig configures a custom API call step.
type APIIntegrationConfig struct {
	Description    string        `json:"description"`
	Endpoint       string        `json:"endpoint"`
	Method         string        `json:"method"`
	AuthType       string        `json:"auth_type"`
	Headers        []APIHeader   `json:"headers,omitempty"`
	Arguments      []APIArgument `json:"arguments,omitempty"`
	ResponseFormat string        `json:"response_format"`
}

// DefaultAPIIntegrationConfig returns the editor defaults for a new API Integration node.
func DefaultAPIIntegrationConfig() *APIIntegrationConfig {
	return &APIIntegrationConfig{
		Description:    "",
		Endpoint:       "",
		Method:         "GET",
		AuthType:       "None",
		Headers:        []APIHeader{},
		Arguments:      []APIArgument{},
		ResponseFormat: "JSON",
	}
}

func (c *APIIntegrationConfig) Kind() models.NodeKind {
	return models.NodeKindAPIIntegration
}

func (c *APIIntegrationConfig) Validate() error {
	p := newProblems(c.Kind())

	if !oneOf(c.Method, HTTPMethods) {
		p.addf("method: %q is not an allowed HTTP method", c.Method)
	}

	if !oneOf(c.AuthType, AuthTypes) {
		p.addf("auth_type: %q is not a supported auth type", c.AuthType)
	}

	if !oneOf(c.ResponseFormat, ResponseFormats) {
		p.addf("response_format: %q is not a supported format", c.ResponseFormat)
	}

	seen := make(map[string]bool, len(c.Arguments))

	for i, arg := range c.Arguments {
		if arg.Name == "" {
			p.addf("arguments[%d]: name is required", i)
		} else if seen[arg.Name] {
			p.addf("arguments[%d]: duplicate argument name %q", i, arg.Name)
		}

		seen[arg.Name] = true

		if !oneOf(arg.Type, ArgumentTypes) {
			p.addf("arguments[%d]: %q is not an argument type", i, arg.Type)
		}
	}

	return p.err()
}

func apiIntegrationSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"description": map[string]any{"type": "string"},
			"endpoint": map[string]any{
				"type":        "string",
				"description": "HTTP endpoint URL to call",
			},
			"method": map[string]any{
				"type":    "string",
				"default": "GET",
				"enum":    enumAny(HTTPMethods),
			},
			"auth_type": map[string]any{
				"type":    "string",
				"default": "None",
				"enum":    enumAny(AuthTypes),
			},
			"headers": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"key":   map[string]any{"type": "string"},
						"value": map[string]any{"type": "string"},
					},
					"required":             []string{"key", "value"},
					"additionalProperties": false,
				},
			},
			"arguments": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"name":        map[string]any{"type": "string"},
						"type":        map[string]any{"type": "string", "enum": enumAny(ArgumentTypes)},
						"required":    map[string]any{"type": "boolean"},
						"description": map[string]any{"type": "string"},
					},
					"required":             []string{"name", "type"},
					"additionalProperties": false,
				},
			},
			"response_format": map[string]any{
				"type":    "string",
				"default": "JSON",
				"enum":    enumAny(ResponseFormats),
			},
		},
		"required":             []string{"endpoint", "method", "auth_type", "response_format"},
		"additionalProperties": false,
	}
}
