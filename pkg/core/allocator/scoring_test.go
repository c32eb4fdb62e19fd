package allocator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rhysmorgan-dev/magor-rota/pkg/core/model"
)

func TestRolePriorityBonus_TradeMatch(t *testing.T) {
	tests := []struct {
		role string
		area string
		want int
	}{
		{"Distop", "Pilots", RoleMatchBonus},
		{"Pilot", "Pilots", RoleMatchBonus},
		{"Kegging Operator", "Kegging - Inside", RoleMatchBonus},
		{"Packaging Operator", "Packaging", RoleMatchBonus},
		{"FLT Loader", "Keg Loading", RoleMatchBonus},
		{"FLT Loader", "Magor 1 Loading", RoleMatchBonus},
		{"General Operator", "Pilots", 0},
		{"Kegging Operator", "Canning", 0},
	}

	for _, tt := range tests {
		op := model.Operator{Role: tt.role}
		assert.Equal(t, tt.want, RolePriorityBonus(op, tt.area), "%s on %s", tt.role, tt.area)
	}
}

func TestRolePriorityBonus_VersatileRoles(t *testing.T) {
	supervisor := model.Operator{Role: "Shift Supervisor"}
	multiOp := model.Operator{Role: "Multi-Op"}

	for _, area := range []string{"Pilots", "Kegging - Outside", "Packaging", "Keg Loading", "Canning", "MAB1", "Corona", "Tents"} {
		assert.Equal(t, VersatileRoleBonus, RolePriorityBonus(supervisor, area), "supervisor on %s", area)
		assert.Equal(t, VersatileRoleBonus, RolePriorityBonus(multiOp, area), "multi-op on %s", area)
	}
}

func TestRolePriorityBonus_BestSuitedNudge(t *testing.T) {
	op := model.Operator{
		Role:       "Pilot",
		BestSuited: map[string]bool{"pilots": true},
	}
	// Trade match plus the one-shot best-suited nudge
	assert.Equal(t, RoleMatchBonus+BestSuitedRoleBonus, RolePriorityBonus(op, "Pilots"))

	// The nudge applies at most once even with several matching flags
	multi := model.Operator{
		Role:       "General Operator",
		BestSuited: map[string]bool{"canning": true, "mab1": true},
	}
	assert.Equal(t, BestSuitedRoleBonus, RolePriorityBonus(multi, "Canning"))
}

func TestBestSuitedBonus(t *testing.T) {
	op := model.Operator{BestSuited: map[string]bool{"kegging_inside": true}}

	assert.Equal(t, BestSuitedAreaBonus, BestSuitedBonus(op, "Kegging - Inside"))
	assert.Equal(t, 0, BestSuitedBonus(op, "Kegging - Outside"))
	assert.Equal(t, 0, BestSuitedBonus(model.Operator{}, "Kegging - Inside"))

	loader := model.Operator{BestSuited: map[string]bool{"loaders": true}}
	assert.Equal(t, BestSuitedAreaBonus, BestSuitedBonus(loader, "Magor 1 Loading"))
}

func TestCheckConstraints_FLTNights(t *testing.T) {
	op := model.Operator{Constraints: "No FLT on nights"}

	// Blocked on FLT-named areas at night only
	assert.False(t, CheckConstraints(op, "FLT Yard", model.ShiftNight1))
	assert.True(t, CheckConstraints(op, "FLT Yard", model.ShiftDay1))
	assert.True(t, CheckConstraints(op, "Canning", model.ShiftNight1))
}

func TestCheckConstraints_AreaVeto(t *testing.T) {
	op := model.Operator{Constraints: "No canning"}

	assert.False(t, CheckConstraints(op, "Canning", model.ShiftDay1))
	assert.False(t, CheckConstraints(op, "Canning", model.ShiftNight2))
	assert.True(t, CheckConstraints(op, "Pilots", model.ShiftDay1))
}

func TestCheckConstraints_Unconstrained(t *testing.T) {
	op := model.Operator{}
	assert.True(t, CheckConstraints(op, "Canning", model.ShiftNight1))
}
