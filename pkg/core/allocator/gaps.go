package allocator

import (
	"sort"

	"github.com/rhysmorgan-dev/magor-rota/pkg/core/model"
)

// MaxGapRecommendations caps the ranked cover candidates attached to a gap
const MaxGapRecommendations = 5

// BuildGaps reports unmet demand after an allocation run. For every shift
// block and demand area with a shortfall it emits one gap carrying up to
// five ranked cover candidates.
//
// Cover candidates are pool operators not already holding a slot in the
// shift, working on the block and passing the constraint check. The area's
// eligibility gate is deliberately not applied: the gap list is for a
// planner deciding who to pull in, and a near-miss candidate is still
// useful. Ranking uses the area skill score plus the role bonus only; the
// rotation penalty and best-suited bonus are allocation-time concerns.
func BuildGaps(in Input, allocations []model.Allocation) []model.Gap {
	gaps := make([]model.Gap, 0)

	for _, block := range model.ShiftBlocks {
		usedInShift := make(map[string]bool)
		for _, a := range allocations {
			if a.ShiftBlock == block && a.OperatorID != "" {
				usedInShift[a.OperatorID] = true
			}
		}

		for _, area := range in.Demand {
			allocated := 0
			for _, a := range allocations {
				if a.Area == area.Area && a.ShiftBlock == block {
					allocated++
				}
			}

			missing := area.Count - allocated
			if missing <= 0 {
				continue
			}

			gaps = append(gaps, model.Gap{
				WeekCommencing:  in.WeekCommencing,
				ShiftBlock:      block,
				Area:            area.Area,
				MissingCount:    missing,
				Recommendations: coverRecommendations(in.Pool, area, block, usedInShift),
			})
		}
	}

	return gaps
}

// coverRecommendations ranks the candidates who could cover a gap
func coverRecommendations(pool []model.Operator, area AreaDemand, block model.ShiftBlock, usedInShift map[string]bool) []model.Recommendation {
	recs := make([]model.Recommendation, 0, len(pool))

	for _, op := range pool {
		if usedInShift[op.ID] {
			continue
		}
		if !IsWorkingCell(op.Availability.Cell(block)) {
			continue
		}
		if !CheckConstraints(op, area.Area, block) {
			continue
		}

		recs = append(recs, model.Recommendation{
			OperatorID: op.ID,
			Name:       op.Name,
			Score:      area.Score(op) + RolePriorityBonus(op, area.Area),
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Score > recs[j].Score
	})

	if len(recs) > MaxGapRecommendations {
		recs = recs[:MaxGapRecommendations]
	}
	return recs
}
