package draft

import "strings"

// Canonical position categories. FLEX is the catch-all for empty or
// unrecognized position strings.
const (
	PosPG   = "PG"
	PosSG   = "SG"
	PosSF   = "SF"
	PosPF   = "PF"
	PosC    = "C"
	PosG    = "G"
	PosF    = "F"
	PosFlex = "FLEX"
)

// PositionCategory maps a free-text position string to its canonical
// category. Exact-category abbreviations win over the coarser G/F
// matches; anything unmatched is FLEX.
func PositionCategory(position string) string {
	if position == "" {
		return PosFlex
	}
	pos := strings.ToUpper(position)
	switch {
	case strings.Contains(pos, "PG"):
		return PosPG
	case strings.Contains(pos, "SG"):
		return PosSG
	case strings.Contains(pos, "SF"):
		return PosSF
	case strings.Contains(pos, "PF"):
		return PosPF
	case strings.Contains(pos, "C") || pos == "CENTER":
		return PosC
	case strings.Contains(pos, "G"):
		return PosG
	case strings.Contains(pos, "F"):
		return PosF
	}
	return PosFlex
}

// IsGuard reports whether the position string reads as a backcourt
// player. Used wherever only the coarse guard/frontcourt split matters.
func IsGuard(position string) bool {
	if position == "" {
		return false
	}
	pos := strings.ToUpper(position)
	return strings.Contains(pos, "PG") || strings.Contains(pos, "SG") ||
		pos == "G" || pos == "GUARD"
}

// IsFrontcourt reports whether the position string reads as a forward
// or center.
func IsFrontcourt(position string) bool {
	if position == "" {
		return false
	}
	pos := strings.ToUpper(position)
	return strings.Contains(pos, "SF") || strings.Contains(pos, "PF") ||
		strings.Contains(pos, "C") || pos == "F" || pos == "FORWARD" || pos == "CENTER"
}
