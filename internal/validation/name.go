package validation

import (
	"errors"
	"strings"
)

// ValidateFileName validates a user-supplied file name
func ValidateFileName(name string) error {
	trimmed := strings.TrimSpace(name)

	if trimmed == "" {
		return errors.New("file name is required")
	}

	if len(trimmed) > 200 {
		return errors.New("file name is too long (max 200 characters)")
	}

	return nil
}
