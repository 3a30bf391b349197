package owners

import (
	"strings"

	"github.com/rentier-erp/rentier-erp/internal/shared"
)

func validate(name string, familyCount int) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewValidationError("name", "is required")
	}
	if familyCount < 0 {
		return shared.NewValidationError("family_count", "cannot be negative")
	}
	return nil
}
