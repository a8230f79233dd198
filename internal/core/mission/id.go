package mission

import "fmt"

// IDPrefix is the prefix of every mission ID.
const IDPrefix = "MISSION"

// GenerateMissionID generates a mission ID from the current max number.
// The format is MISSION-XXX where XXX is a zero-padded 3-digit number.
func GenerateMissionID(currentMax int) string {
	return fmt.Sprintf("%s-%03d", IDPrefix, currentMax+1)
}

// ParseMissionNumber extracts the numeric portion from a mission ID.
// Returns -1 if the ID format is invalid.
func ParseMissionNumber(id string) int {
	var num int
	if _, err := fmt.Sscanf(id, IDPrefix+"-%d", &num); err != nil || num <= 0 {
		return -1
	}
	return num
}
