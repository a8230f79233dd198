package cli

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/example/fleetdesk/internal/core/errs"
)

// entityPrefixes maps entity types to their expected ID prefixes
var entityPrefixes = map[string]string{
	"mission":    "MISSION",
	"vehicle":    "VEH",
	"driver":     "DRV",
	"employee":   "EMP",
	"dispatcher": "DSP",
	"leave":      "LEAVE",
}

var digitsOnly = regexp.MustCompile(`^\d+$`)

// validateEntityID checks if an ID has the correct prefix format.
// Returns an error with helpful message if the ID appears to be a short ID.
func validateEntityID(id, entityType string) error {
	if id == "" {
		return nil // Empty is OK, let other validation handle required fields
	}

	prefix, ok := entityPrefixes[entityType]
	if !ok {
		return nil
	}

	expectedPattern := prefix + "-"
	if strings.HasPrefix(id, expectedPattern) {
		return nil
	}

	if digitsOnly.MatchString(id) {
		return errs.InvalidInput(fmt.Sprintf("invalid %s ID '%s'. Use full ID format: %s-%s", entityType, id, prefix, id))
	}

	if strings.HasPrefix(strings.ToUpper(id), expectedPattern) {
		return errs.InvalidInput(fmt.Sprintf("invalid %s ID '%s'. IDs are case-sensitive, use: %s", entityType, id, strings.ToUpper(id)))
	}

	return errs.InvalidInput(fmt.Sprintf("invalid %s ID '%s'. Expected format: %s-xxx", entityType, id, prefix))
}

// timeLayouts are tried in order by parseWhen. Layouts without a zone use local time.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02",
}

// parseWhen parses a date or date-time flag value.
func parseWhen(flag, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errs.InvalidInput("--" + flag + " is required")
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errs.InvalidInput(fmt.Sprintf("invalid --%s %q (use YYYY-MM-DD or YYYY-MM-DD HH:MM)", flag, value))
}
