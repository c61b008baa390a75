package nodeconfig

import "github.com/trellishq/trellis/pkg/models"

// DatabaseTypes lists the SQL engines a database node may target.
var DatabaseTypes = []string{"mysql", "postgresql", "sqlite", "sqlserver", "oracle"}

// SQLDatabaseConfig configures a database query step. The query can be
// written by hand or generated from a natural language prompt by the
// selected model.
type SQLDatabaseConfig struct {
	DatabaseName string `json:"database_name"`
	DatabaseType string `json:"database_type"`
	Query        string `json:"query,omitempty"`
	Prompt       string `json:"prompt,omitempty"`
	ResultLimit  int    `json:"result_limit"`
	LLMModel     string `json:"llm_model"`
}

// DefaultSQLDatabaseConfig returns the editor defaults for a new SQL Database node.
func DefaultSQLDatabaseConfig() *SQLDatabaseConfig {
	return &SQLDatabaseConfig{
		DatabaseName: "",
		DatabaseType: "mysql",
		ResultLimit:  100,
		LLMModel:     "gpt-4o-mini",
	}
}

func (c *SQLDatabaseConfig) Kind() models.NodeKind {
	return models.NodeKindSQLDatabase
}

func (c *SQLDatabaseConfig) Validate() error {
	p := newProblems(c.Kind())

	if !oneOf(c.DatabaseType, DatabaseTypes) {
		p.addf("database_type: %q is not a supported engine", c.DatabaseType)
	}

	if c.ResultLimit < 1 {
		p.addf("result_limit: must be at least 1, got %d", c.ResultLimit)
	}

	if !oneOf(c.LLMModel, LLMModels) {
		p.addf("llm_model: %q is not an available model", c.LLMModel)
	}

	return p.err()
}

func sqlDatabaseSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"database_name": map[string]any{"type": "string"},
			"database_type": map[string]any{
				"type":    "string",
				"default": "mysql",
				"enum":    enumAny(DatabaseTypes),
			},
			"query": map[string]any{
				"type":        "string",
				"description": "Raw SQL to execute",
			},
			"prompt": map[string]any{
				"type":        "string",
				"description": "Natural language description used to generate the query",
			},
			"result_limit": map[string]any{
				"type":    "integer",
				"default": 100,
				"minimum": 1,
			},
			"llm_model": map[string]any{
				"type":    "string",
				"default": "gpt-4o-mini",
				"enum":    enumAny(LLMModels),
			},
		},
		"required":             []string{"database_name", "database_type", "result_limit", "llm_model"},
		"additionalProperties": false,
	}
}
