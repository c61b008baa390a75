package nodeconfig

import "github.com/trellishq/trellis/pkg/models"

// DefaultEmailBody is the starter body for a new email node.
const DefaultEmailBody = "Your email content here. Use {input} to include incoming data."

// EmailSendConfig configures an email sending step. Recipients is a
// comma-separated address list; the body supports an {input} placeholder for
// upstream data.
type EmailSendConfig struct {
	Recipients string `json:"recipients"`
	Subject    string `json:"subject"`
	EmailBody  string `json:"email_body"`
}

// DefaultEmailSendConfig returns the editor defaults for a new Email Send node.
func DefaultEmailSendConfig() *EmailSendConfig {
	return &EmailSendConfig{
		Recipients: "",
		Subject:    "",
		EmailBody:  DefaultEmailBody,
	}
}

func (c *EmailSendConfig) Kind() models.NodeKind {
	return models.NodeKindEmailSend
}

func (c *EmailSendConfig) Validate() error {
	return nil
}

func emailSendSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"recipients": map[string]any{
				"type":        "string",
				"description": "Comma-separated recipient addresses",
			},
			"subject": map[string]any{"type": "string"},
			"email_body": map[string]any{
				"type":    "string",
				"default": DefaultEmailBody,
			},
		},
		"required":             []string{"recipients", "subject", "email_body"},
		"additionalProperties": false,
	}
}
