package units

import (
	"strings"

	"github.com/rentier-erp/rentier-erp/internal/shared"
)

var validTypes = map[string]bool{"apt": true, "store": true, "building": true}

func validateReference(ref string) error {
	if strings.TrimSpace(ref) == "" {
		return shared.NewValidationError("reference", "is required")
	}
	return nil
}

func validateType(unitType string) error {
	if unitType != "" && !validTypes[unitType] {
		return shared.NewValidationError("unit_type", "must be one of: apt, store, building")
	}
	return nil
}
