package nodeconfig

import (
	"errors"
	"strings"

	"github.com/trellishq/trellis/pkg/models"
)

// ErrUnknownKind indicates a node kind outside the registered set.
var ErrUnknownKind = errors.New("unknown node kind")

// ValidationError reports every field-level problem found while validating a
// node configuration against its kind's schema.
type ValidationError struct {
	Kind     models.NodeKind
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid " + string(e.Kind) + " config: " + strings.Join(e.Problems, "; ")
}

// IsValidationError reports whether err is (or wraps) a config validation
// failure.
func IsValidationError(err error) bool {
	var target *ValidationError

	return errors.As(err, &target)
}

// asValidationError wraps an arbitrary error from a Config.Validate
// implementation, passing through errors that already carry field problems.
func asValidationError(kind models.NodeKind, err error) error {
	var target *ValidationError
	if errors.As(err, &target) {
		return target
	}

	return &ValidationError{Kind: kind, Problems: []string{err.Error()}}
}
