package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateRunID creates a short, human-readable evaluation run ID.
// Format: {mode}-{8charHexUUID}, e.g. "quality-a3f8e2b1"
func GenerateRunID(mode string) string {
	prefix := strings.ToLower(strings.TrimSpace(mode))
	if prefix == "" {
		prefix = "run"
	}
	return prefix + "-" + generateShortUUID()
}

// generateShortUUID creates an 8-character hex string from a UUID
func generateShortUUID() string {
	id := uuid.New()
	return strings.ReplaceAll(id.String(), "-", "")[:8]
}
