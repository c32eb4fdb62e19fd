package allocator

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rhysmorgan-dev/magor-rota/pkg/core/model"
)

func gapFor(gaps []model.Gap, area string, block model.ShiftBlock) *model.Gap {
	for i := range gaps {
		if gaps[i].Area == area && gaps[i].ShiftBlock == block {
			return &gaps[i]
		}
	}
	return nil
}

func TestBuildGaps_ReportsShortfall(t *testing.T) {
	// Pilots needs 2, only one qualified operator exists
	demand := BuildDemand(model.WeekLinePlan{})

	in := Input{
		WeekCommencing: "2025-06-30",
		Demand:         demand,
		Pool: []model.Operator{
			makeOp("op-pilot", "Only Pilot", model.SkillScores{Pilots: 3, WMS: 3}),
		},
		PenaltyTiers: DefaultPenaltyTiers,
	}

	allocations := Allocate(in)
	gaps := BuildGaps(in, allocations)

	for _, block := range model.ShiftBlocks {
		gap := gapFor(gaps, "Pilots", block)
		require.NotNil(t, gap, "block %s", block)
		assert.Equal(t, 1, gap.MissingCount)
		assert.Equal(t, "2025-06-30", gap.WeekCommencing)
	}
}

func TestBuildGaps_FullyStaffedWeekHasNone(t *testing.T) {
	demand := BuildDemand(model.WeekLinePlan{})

	in := Input{
		WeekCommencing: "2025-06-30",
		Demand:         demand,
		Pool:           pilotCrew(),
		PenaltyTiers:   DefaultPenaltyTiers,
	}

	allocations := Allocate(in)
	gaps := BuildGaps(in, allocations)
	assert.Empty(t, gaps)
}

func TestBuildGaps_RecommendationsSkipEligibilityGate(t *testing.T) {
	// The lone pool operator fails the pilot gate but is still worth
	// suggesting as cover
	demand := BuildDemand(model.WeekLinePlan{})

	unqualified := makeOp("op-1", "Near Miss", model.SkillScores{Pilots: 1})
	unqualified.Availability = model.Availability{Day1: "D"}

	in := Input{
		WeekCommencing: "2025-06-30",
		Demand:         demand,
		Pool:           []model.Operator{unqualified},
		PenaltyTiers:   DefaultPenaltyTiers,
	}

	// No allocations at all: the operator is only available on DAY1 and the
	// relaxed pass already took them there, so pass an empty allocation set
	// to look at the raw recommendation path
	gaps := BuildGaps(in, nil)

	gap := gapFor(gaps, "Pilots", model.ShiftDay1)
	require.NotNil(t, gap)
	require.Len(t, gap.Recommendations, 1)
	assert.Equal(t, "op-1", gap.Recommendations[0].OperatorID)
	assert.Equal(t, "Near Miss", gap.Recommendations[0].Name)
}

func TestBuildGaps_RecommendationsExcludeAllocatedOperators(t *testing.T) {
	demand := BuildDemand(model.WeekLinePlan{})

	in := Input{
		WeekCommencing: "2025-06-30",
		Demand:         demand,
		Pool: []model.Operator{
			makeOp("op-pilot", "Working Pilot", model.SkillScores{Pilots: 3, WMS: 3}),
		},
		PenaltyTiers: DefaultPenaltyTiers,
	}

	allocations := Allocate(in)
	gaps := BuildGaps(in, allocations)

	// The pilot already holds a slot in the shift, so the remaining gap has
	// nobody left to recommend
	gap := gapFor(gaps, "Pilots", model.ShiftDay1)
	require.NotNil(t, gap)
	assert.Empty(t, gap.Recommendations)
}

func TestBuildGaps_RecommendationsCappedAndRanked(t *testing.T) {
	demand := BuildDemand(model.WeekLinePlan{})

	pool := make([]model.Operator, 0, 8)
	for i := 0; i < 8; i++ {
		op := makeOp(fmt.Sprintf("op-%d", i), fmt.Sprintf("Operator %d", i), model.SkillScores{Pilots: i % 4, WMS: 2})
		pool = append(pool, op)
	}

	in := Input{
		WeekCommencing: "2025-06-30",
		Demand:         demand,
		Pool:           pool,
		PenaltyTiers:   DefaultPenaltyTiers,
	}

	gaps := BuildGaps(in, nil)

	gap := gapFor(gaps, "Pilots", model.ShiftDay1)
	require.NotNil(t, gap)
	require.Len(t, gap.Recommendations, MaxGapRecommendations)

	// Descending by score
	for i := 1; i < len(gap.Recommendations); i++ {
		assert.GreaterOrEqual(t, gap.Recommendations[i-1].Score, gap.Recommendations[i].Score)
	}
}
