package allocator

import (
	"strings"

	"github.com/rhysmorgan-dev/magor-rota/pkg/core/model"
)

// Scoring bonuses. An operator's ranking score for an area is the area's
// skill score plus the role priority bonus, the rotation penalty and the
// best-suited area bonus.
const (
	// RoleMatchBonus applies when the operator's role names the area's trade
	RoleMatchBonus = 15

	// VersatileRoleBonus applies to supervisors and multi-ops for any
	// production area
	VersatileRoleBonus = 8

	// BestSuitedRoleBonus is the smaller role-level nudge for a flagged
	// best-suited area, applied inside the role priority bonus
	BestSuitedRoleBonus = 10

	// BestSuitedAreaBonus is the standalone bonus for a flagged best-suited
	// area. Both this and BestSuitedRoleBonus apply when the flag matches;
	// they are deliberately not mutually exclusive.
	BestSuitedAreaBonus = 50
)

// bestSuitedAreaTerms maps each best-suited flag key to the area name
// phrases it matches. A flag matches an area when either string contains
// the other.
var bestSuitedAreaTerms = []struct {
	key   string
	terms []string
}{
	{"kegging_inside", []string{"kegging - inside", "kegging inside"}},
	{"kegging_outside", []string{"kegging - outside", "kegging outside"}},
	{"keg_loading", []string{"keg loading"}},
	{"pilots", []string{"pilots"}},
	{"canning", []string{"canning"}},
	{"mab1", []string{"mab1"}},
	{"mab2", []string{"mab2"}},
	{"corona", []string{"corona"}},
	{"packaging", []string{"packaging"}},
	{"loaders", []string{"magor 1 loading", "magor loading", "loading"}},
	{"tents", []string{"tents"}},
}

// RolePriorityBonus scores how well the operator's free-text role fits the
// area: 15 for a trade match, 8 for supervisors and multi-ops on any
// production area, plus a one-shot 10 when a best-suited flag name-matches
// the area.
func RolePriorityBonus(op model.Operator, area string) int {
	role := strings.ToLower(op.Role)
	areaLower := strings.ToLower(area)

	bonus := 0
	switch {
	case strings.Contains(areaLower, "pilot"):
		if strings.Contains(role, "distop") || strings.Contains(role, "pilot") {
			bonus = RoleMatchBonus
		} else if isVersatileRole(role) {
			bonus = VersatileRoleBonus
		}
	case strings.Contains(areaLower, "kegging"):
		if strings.Contains(role, "kegging") {
			bonus = RoleMatchBonus
		} else if isVersatileRole(role) {
			bonus = VersatileRoleBonus
		}
	case strings.Contains(areaLower, "packaging"):
		if strings.Contains(role, "packaging") {
			bonus = RoleMatchBonus
		} else if isVersatileRole(role) {
			bonus = VersatileRoleBonus
		}
	case strings.Contains(areaLower, "loading") || strings.Contains(areaLower, "loader"):
		if strings.Contains(role, "loader") {
			bonus = RoleMatchBonus
		} else if isVersatileRole(role) {
			bonus = VersatileRoleBonus
		}
	case strings.Contains(areaLower, "canning") || strings.Contains(areaLower, "mab") ||
		strings.Contains(areaLower, "corona") || strings.Contains(areaLower, "tents"):
		if isVersatileRole(role) {
			bonus = VersatileRoleBonus
		}
	}

	// One-shot nudge when any flagged best-suited key name-matches the area
	// (underscores read as spaces, substring match either way)
	for _, entry := range bestSuitedAreaTerms {
		if !op.BestSuited[entry.key] {
			continue
		}
		normalized := strings.ReplaceAll(entry.key, "_", " ")
		if strings.Contains(areaLower, normalized) || strings.Contains(normalized, areaLower) {
			bonus += BestSuitedRoleBonus
			break
		}
	}

	return bonus
}

func isVersatileRole(role string) bool {
	return strings.Contains(role, "supervisor") || strings.Contains(role, "multi-op")
}

// BestSuitedBonus returns the standalone flat bonus when any of the
// operator's flagged best-suited areas textually matches the target area
// via the fixed key-to-phrase table.
func BestSuitedBonus(op model.Operator, area string) int {
	areaLower := strings.ToLower(area)

	for _, entry := range bestSuitedAreaTerms {
		if !op.BestSuited[entry.key] {
			continue
		}
		for _, term := range entry.terms {
			if strings.Contains(areaLower, term) || strings.Contains(term, areaLower) {
				return BestSuitedAreaBonus
			}
		}
	}

	return 0
}

// CheckConstraints applies the operator's free-text constraint rules and
// reports whether the operator may work the area on the shift block. Two
// rules are recognised:
//   - "flt" together with "night" vetoes FLT-named areas on night blocks
//   - "no" together with the area name vetoes that area outright
func CheckConstraints(op model.Operator, area string, block model.ShiftBlock) bool {
	constraints := strings.ToLower(op.Constraints)
	areaLower := strings.ToLower(area)

	if strings.Contains(constraints, "flt") && strings.Contains(constraints, "night") &&
		block.IsNight() && strings.Contains(areaLower, "flt") {
		return false
	}

	if strings.Contains(constraints, "no") && strings.Contains(constraints, areaLower) {
		return false
	}

	return true
}
