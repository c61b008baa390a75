package nodeconfig

import "github.com/trellishq/trellis/pkg/models"

// File reader option sets.
var (
	FileTypes         = []string{"Text", "PDF", "Word", "Excel", "CSV", "JSON", "HTML", "Markdown"}
	ExtractStrategies = []string{"full", "chunks", "summary"}
	FileSourceTypes   = []string{"local", "google_doc"}
)

// FileReaderConfig configures a file reading step.
type FileReaderConfig struct {
	FileType        string `json:"file_type"`
	FilePath        string `json:"file_path"`
	ExtractStrategy string `json:"extract_strategy"`
	ChunkSize       int    `json:"chunk_size"`
	SourceType      string `json:"source_type"`
}

// DefaultFileReaderConfig returns the editor defaults for a new File Reader node.
func DefaultFileReaderConfig() *FileReaderConfig {
	return &FileReaderConfig{
		FileType:        "Text",
		FilePath:        "",
		ExtractStrategy: "full",
		ChunkSize:       1000,
		SourceType:      "local",
	}
}

func (c *FileReaderConfig) Kind() models.NodeKind {
	return models.NodeKindFileReader
}

func (c *FileReaderConfig) Validate() error {
	p := newProblems(c.Kind())

	if !oneOf(c.FileType, FileTypes) {
		p.addf("file_type: %q is not a supported file type", c.FileType)
	}

	if !oneOf(c.ExtractStrategy, ExtractStrategies) {
		p.addf("extract_strategy: %q is not a supported strategy", c.ExtractStrategy)
	}

	if !oneOf(c.SourceType, FileSourceTypes) {
		p.addf("source_type: %q is not a supported source", c.SourceType)
	}

	if c.ChunkSize < 1 {
		p.addf("chunk_size: must be at least 1, got %d", c.ChunkSize)
	}

	return p.err()
}

func fileReaderSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"file_type": map[string]any{
				"type":    "string",
				"default": "Text",
				"enum":    enumAny(FileTypes),
			},
			"file_path": map[string]any{
				"type":        "string",
				"description": "Path or document reference to read from",
			},
			"extract_strategy": map[string]any{
				"type":    "string",
				"default": "full",
				"enum":    enumAny(ExtractStrategies),
			},
			"chunk_size": map[string]any{
				"type":    "integer",
				"default": 1000,
				"minimum": 1,
			},
			"source_type": map[string]any{
				"type":    "string",
				"default": "local",
				"enum":    enumAny(FileSourceTypes),
			},
		},
		"required":             []string{"file_type", "file_path", "extract_strategy", "source_type"},
		"additionalProperties": false,
	}
}
