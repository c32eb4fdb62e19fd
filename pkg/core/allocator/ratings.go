package allocator

import "strings"

// RatingScore converts a skill rating to its numeric score:
// N (none) 0, B (basic) 1, C (competent) 2, S (specialist) 3.
// Matching is case-insensitive and ignores surrounding whitespace.
// Empty or unrecognised ratings score 0 rather than failing.
func RatingScore(rating string) int {
	switch strings.ToUpper(strings.TrimSpace(rating)) {
	case "N":
		return 0
	case "B":
		return 1
	case "C":
		return 2
	case "S":
		return 3
	}
	return 0
}

// IsUnavailable reports whether a staff plan cell marks the operator as
// unavailable: holiday (H), sick (SICK) or off shift (OFF).
func IsUnavailable(cell string) bool {
	switch strings.ToUpper(strings.TrimSpace(cell)) {
	case "H", "SICK", "OFF":
		return true
	}
	return false
}

// IsWorkingCell reports whether a staff plan cell marks the operator as
// working: any non-empty value that is not H, SICK or OFF.
func IsWorkingCell(cell string) bool {
	t := strings.ToUpper(strings.TrimSpace(cell))
	if t == "" {
		return false
	}
	return t != "H" && t != "SICK" && t != "OFF"
}
