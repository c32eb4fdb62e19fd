package allocator

import (
	"github.com/rhysmorgan-dev/magor-rota/pkg/core/model"
)

// DefaultPilotsRequired is the pilot headcount assumed when a daily plan
// leaves pilots_required unset.
const DefaultPilotsRequired = 2

// Demand headcount divisors for the loading areas: one keg loader covers 6
// load slots, one Magor 1 / Tents loader covers 15.
const (
	kegSlotsPerLoader  = 6
	loadSlotsPerLoader = 15
)

// AreaDemand is one area's staffing need for the week. Eligible is the
// area's minimum-skill gate (nil means no gate) and Score is the
// area-specific weighted skill score. Both are pure functions of the
// operator so the rule table stays declarative and testable in isolation.
type AreaDemand struct {
	Area string

	// Count is the required headcount per shift block
	Count int

	// MinCount slots must be filled first, even under relaxed eligibility
	MinCount int

	Eligible func(op model.Operator) bool
	Score    func(op model.Operator) int
}

// AggregateLinePlans folds the week's daily line plans into one weekly plan:
// running flags are OR-aggregated, load slot counts are MAX-aggregated, and
// pilots_required is MAX-aggregated with each unset day counting as
// defaultPilots (pass DefaultPilotsRequired unless configured otherwise).
func AggregateLinePlans(plans []model.DailyLinePlan, defaultPilots int) model.WeekLinePlan {
	if defaultPilots <= 0 {
		defaultPilots = DefaultPilotsRequired
	}

	var week model.WeekLinePlan

	for _, p := range plans {
		week.Mak1Running = week.Mak1Running || p.Mak1Running
		week.Mac1Running = week.Mac1Running || p.Mac1Running
		week.Mac2Running = week.Mac2Running || p.Mac2Running
		week.Mab1Running = week.Mab1Running || p.Mab1Running
		week.Mab2Running = week.Mab2Running || p.Mab2Running
		week.Mab3Running = week.Mab3Running || p.Mab3Running
		week.CoronaRunning = week.CoronaRunning || p.CoronaRunning
		week.PackagingRunning = week.PackagingRunning || p.PackagingRunning
		week.TentsRunning = week.TentsRunning || p.TentsRunning
		week.CanningReduced = week.CanningReduced || p.CanningReduced

		week.KegLoadSlots = max(week.KegLoadSlots, p.KegLoadSlots)
		week.Mak1LoadSlots = max(week.Mak1LoadSlots, p.Mak1LoadSlots)
		week.TentsLoadSlots = max(week.TentsLoadSlots, p.TentsLoadSlots)

		pilots := p.PilotsRequired
		if pilots <= 0 {
			pilots = defaultPilots
		}
		week.PilotsRequired = max(week.PilotsRequired, pilots)
	}

	return week
}

// BuildDemand converts the aggregated weekly line plan into the ordered area
// demand list. The declaration order is significant: Phase 2 of the
// allocator fills areas in this order, so earlier areas win scarce
// operators.
func BuildDemand(plan model.WeekLinePlan) []AreaDemand {
	demand := make([]AreaDemand, 0, 10)

	// MAK1 is the keg line: running it needs one operator inside the
	// kegging hall and one in the yard
	if plan.Mak1Running {
		demand = append(demand, AreaDemand{
			Area:     "Kegging - Inside",
			Count:    1,
			Eligible: func(op model.Operator) bool { return op.Skills.KeggingInside >= 2 && op.Skills.WMS >= 2 },
			Score:    func(op model.Operator) int { return op.Skills.KeggingInside*3 + op.Skills.WMS*2 + op.Skills.FLT },
		})
		demand = append(demand, AreaDemand{
			Area:     "Kegging - Outside",
			Count:    1,
			Eligible: func(op model.Operator) bool { return op.Skills.KeggingOutside >= 2 },
			Score:    func(op model.Operator) int { return op.Skills.KeggingOutside*3 + op.Skills.FLT },
		})
	}

	// Pilots are always required regardless of what is running
	pilotsCount := plan.PilotsRequired
	if pilotsCount <= 0 {
		pilotsCount = DefaultPilotsRequired
	}
	demand = append(demand, AreaDemand{
		Area:     "Pilots",
		Count:    pilotsCount,
		Eligible: func(op model.Operator) bool { return op.Skills.WMS >= 2 && op.Skills.Pilots >= 1 },
		Score:    func(op model.Operator) int { return op.Skills.Pilots*3 + op.Skills.WMS*2 },
	})

	if plan.PackagingRunning {
		demand = append(demand, AreaDemand{
			Area:     "Packaging",
			Count:    1,
			Eligible: func(op model.Operator) bool { return op.Skills.WMS >= 2 && op.Skills.Packaging >= 1 },
			Score:    func(op model.Operator) int { return op.Skills.Packaging*3 + op.Skills.WMS*2 + op.Skills.SAP },
		})
	}

	if plan.Mab1Running {
		demand = append(demand, AreaDemand{
			Area:     "MAB1",
			Count:    1,
			Eligible: func(op model.Operator) bool { return op.Skills.MAB1 >= 2 },
			Score:    func(op model.Operator) int { return op.Skills.MAB1*3 + op.Skills.FLT },
		})
	}
	if plan.Mab2Running {
		demand = append(demand, AreaDemand{
			Area:     "MAB2",
			Count:    1,
			Eligible: func(op model.Operator) bool { return op.Skills.MAB2 >= 2 },
			Score:    func(op model.Operator) int { return op.Skills.MAB2*3 + op.Skills.FLT },
		})
	}
	if plan.CoronaRunning {
		demand = append(demand, AreaDemand{
			Area:     "Corona",
			Count:    1,
			Eligible: func(op model.Operator) bool { return op.Skills.Corona >= 2 },
			Score:    func(op model.Operator) int { return op.Skills.Corona*3 + op.Skills.FLT },
		})
	}

	// MAC1, MAC2 and MAB3 are the canning lines and share one crew
	if plan.Mac1Running || plan.Mac2Running || plan.Mab3Running {
		canningCount := 4
		if plan.CanningReduced {
			canningCount = 3
		}
		demand = append(demand, AreaDemand{
			Area:     "Canning",
			Count:    canningCount,
			Eligible: func(op model.Operator) bool { return op.Skills.Canning >= 1 && op.Skills.FLT >= 2 },
			Score:    func(op model.Operator) int { return op.Skills.Canning*3 + op.Skills.FLT*2 },
		})
	}

	if plan.KegLoadSlots > 0 {
		demand = append(demand, AreaDemand{
			Area:     "Keg Loading",
			Count:    ceilDiv(plan.KegLoadSlots, kegSlotsPerLoader),
			Eligible: func(op model.Operator) bool { return op.Skills.Loaders >= 1 && op.Skills.FLT >= 2 },
			Score:    func(op model.Operator) int { return op.Skills.Loaders*3 + op.Skills.FLT*2 },
		})
	}

	if plan.Mak1LoadSlots > 0 {
		demand = append(demand, AreaDemand{
			Area:     "Magor 1 Loading",
			Count:    max(1, ceilDiv(plan.Mak1LoadSlots, loadSlotsPerLoader)),
			MinCount: 1,
			Eligible: func(op model.Operator) bool { return op.Skills.Loaders >= 1 && op.Skills.FLT >= 2 },
			Score:    func(op model.Operator) int { return op.Skills.Loaders*3 + op.Skills.FLT*2 },
		})
	}

	// Tents loading and tents running share a single combined area
	if plan.TentsLoadSlots > 0 || plan.TentsRunning {
		tentsOperators := 0
		if plan.TentsLoadSlots > 0 {
			tentsOperators += max(2, ceilDiv(plan.TentsLoadSlots, loadSlotsPerLoader))
		}
		if plan.TentsRunning {
			tentsOperators += 4
		}
		demand = append(demand, AreaDemand{
			Area:     "Tents",
			Count:    tentsOperators,
			MinCount: 2,
			Eligible: func(op model.Operator) bool { return op.Skills.FLT >= 1 },
			Score:    func(op model.Operator) int { return op.Skills.Loaders*3 + op.Skills.FLT*2 },
		})
	}

	return demand
}

// ceilDiv returns ceil(n / d) for positive d
func ceilDiv(n, d int) int {
	return (n + d - 1) / d
}
