package nodeconfig

import (
	"fmt"

	"github.com/trellishq/trellis/pkg/models"
)

// problems accumulates field-level validation failures for one config.
type problems struct {
	kind models.NodeKind
	list []string
}

func newProblems(kind models.NodeKind) *problems {
	return &problems{kind: kind}
}

func (p *problems) addf(format string, args ...any) {
	p.list = append(p.list, fmt.Sprintf(format, args...))
}

func (p *problems) err() error {
	if len(p.list) == 0 {
		return nil
	}

	return &ValidationError{Kind: p.kind, Problems: p.list}
}

func oneOf(value string, allowed []string) bool {
	for _, candidate := range allowed {
		if value == candidate {
			return true
		}
	}

	return false
}

// enumAny converts an allowed-values list to the form a JSON schema expects.
func enumAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}

	return out
}
