package allocator

import (
	"sort"
	"strings"

	"github.com/rhysmorgan-dev/magor-rota/pkg/core/model"
)

// Input carries everything one allocation run needs. The run is a pure
// in-memory computation: it never touches a store and never mutates the
// pool.
type Input struct {
	WeekCommencing string
	Demand         []AreaDemand
	Pool           []model.Operator
	Rotation       RotationIndex
	PenaltyTiers   PenaltyTiers
}

// Allocate fills the week's demand, one shift block at a time, and returns
// the allocation rows in the order they were won.
//
// Blocks are processed strictly in DAY1, DAY2, NIGHT1, NIGHT2 order. Within
// a block, Phase 1 fills the guaranteed minimums (MinCount slots per area),
// then Phase 2 fills the remaining demand in declaration order. Every slot
// is won by the highest-scoring candidate from a strict pass over the
// area's eligibility gate, falling back to a relaxed pass without the gate.
// An operator holds at most one area per block. A slot nobody can fill is
// skipped; the gap reporter picks it up afterwards.
func Allocate(in Input) []model.Allocation {
	r := &run{
		in:   in,
		byID: make(map[string]model.Operator, len(in.Pool)),
	}
	for _, op := range in.Pool {
		r.byID[op.ID] = op
	}

	for _, block := range model.ShiftBlocks {
		used := make(map[string]bool)

		// Phase 1: guaranteed minimums
		for _, area := range in.Demand {
			for i := 0; i < area.MinCount; i++ {
				r.fillSlot(area, block, used)
			}
		}

		// Phase 2: remaining demand in declaration order
		for _, area := range in.Demand {
			already := r.allocatedCount(area.Area, block)
			for i := already; i < area.Count; i++ {
				r.fillSlot(area, block, used)
			}
		}
	}

	return r.allocations
}

type run struct {
	in          Input
	allocations []model.Allocation
	byID        map[string]model.Operator
}

type candidate struct {
	op    model.Operator
	score int
}

// fillSlot tries to win one slot for the area on the block. A failed slot is
// not an error: it is left unfilled for the gap reporter.
func (r *run) fillSlot(area AreaDemand, block model.ShiftBlock, used map[string]bool) bool {
	best := r.selectCandidate(area, block, used)
	if best == nil {
		return false
	}

	used[best.op.ID] = true
	// AssignedTo stays empty: it is reserved for manual agency placeholder
	// rows, and consumers classify rows on it being unset
	r.allocations = append(r.allocations, model.Allocation{
		WeekCommencing: r.in.WeekCommencing,
		Area:           area.Area,
		ShiftBlock:     block,
		OperatorID:     best.op.ID,
		OperatorName:   best.op.Name,
		Score:          best.score,
	})
	return true
}

// selectCandidate runs the shared candidate pipeline: a strict pass with the
// area's eligibility gate, then a relaxed pass without it. Availability and
// constraint checks apply in both passes, as does the canning
// regulars-first stage. Phase 1 and Phase 2 both go through here so the two
// phases cannot drift apart.
func (r *run) selectCandidate(area AreaDemand, block model.ShiftBlock, used map[string]bool) *candidate {
	candidates := r.rankCandidates(area, block, used, true)
	candidates = r.preferCanningRegulars(area.Area, block, candidates)

	if len(candidates) == 0 && area.Eligible != nil {
		candidates = r.rankCandidates(area, block, used, false)
		candidates = r.preferCanningRegulars(area.Area, block, candidates)
	}

	if len(candidates) == 0 {
		return nil
	}
	return &candidates[0]
}

// rankCandidates filters the pool for the slot and ranks it by descending
// score. The sort is stable so equal scores keep pool enumeration order.
func (r *run) rankCandidates(area AreaDemand, block model.ShiftBlock, used map[string]bool, strict bool) []candidate {
	candidates := make([]candidate, 0, len(r.in.Pool))

	for _, op := range r.in.Pool {
		if used[op.ID] {
			continue
		}
		if !IsWorkingCell(op.Availability.Cell(block)) {
			continue
		}
		if !CheckConstraints(op, area.Area, block) {
			continue
		}
		if strict && area.Eligible != nil && !area.Eligible(op) {
			continue
		}

		score := area.Score(op) +
			RolePriorityBonus(op, area.Area) +
			r.in.Rotation.Penalty(op.ID, area.Area, r.in.PenaltyTiers) +
			BestSuitedBonus(op, area.Area)

		candidates = append(candidates, candidate{op: op, score: score})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	return candidates
}

// preferCanningRegulars restricts a canning-named area's candidates to
// non-agency operators until at least one regular holds a canning slot on
// the block. The restriction only applies while regulars are in the list,
// so it can narrow the list but never empty it.
func (r *run) preferCanningRegulars(area string, block model.ShiftBlock, candidates []candidate) []candidate {
	if !strings.Contains(strings.ToLower(area), "canning") {
		return candidates
	}
	if r.hasRegularInCanning(block) {
		return candidates
	}

	regulars := make([]candidate, 0, len(candidates))
	for _, c := range candidates {
		if !c.op.IsAgency {
			regulars = append(regulars, c)
		}
	}
	if len(regulars) == 0 {
		return candidates
	}
	return regulars
}

// hasRegularInCanning reports whether a non-agency operator already holds a
// canning-named slot on the block
func (r *run) hasRegularInCanning(block model.ShiftBlock) bool {
	for _, a := range r.allocations {
		if a.ShiftBlock != block {
			continue
		}
		if !strings.Contains(strings.ToLower(a.Area), "canning") {
			continue
		}
		if op, ok := r.byID[a.OperatorID]; ok && !op.IsAgency {
			return true
		}
	}
	return false
}

// allocatedCount counts allocation rows already won for the area on the block
func (r *run) allocatedCount(area string, block model.ShiftBlock) int {
	count := 0
	for _, a := range r.allocations {
		if a.Area == area && a.ShiftBlock == block {
			count++
		}
	}
	return count
}
