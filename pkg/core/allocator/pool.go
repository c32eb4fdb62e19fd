package allocator

import (
	"github.com/rhysmorgan-dev/magor-rota/pkg/core/model"
)

// BuildPool filters and shapes the week's staff plan rows into the
// allocation-ready operator pool.
//
// A row survives the filter chain when:
//   - the operator is active
//   - the operator has a capability record
//   - the operator is not fully unavailable (all four cells H, SICK or OFF)
//
// Each surviving operator carries the derived 0-3 skill score per tracked
// area. Row order is preserved: it is the tie-break order for equal scores
// during allocation.
func BuildPool(rows []model.StaffPlanRow) []model.Operator {
	pool := make([]model.Operator, 0, len(rows))

	for _, row := range rows {
		if !row.IsActive {
			continue
		}
		if row.Ratings == nil {
			continue
		}
		if fullyUnavailable(row.Availability) {
			continue
		}

		role := row.Role
		if role == "" {
			role = "General Operator"
		}

		bestSuited := row.BestSuited
		if bestSuited == nil {
			bestSuited = map[string]bool{}
		}

		pool = append(pool, model.Operator{
			ID:           row.OperatorID,
			Name:         row.Name,
			IsAgency:     row.IsAgency,
			Shift:        row.Shift,
			Role:         role,
			Constraints:  row.Constraints,
			BestSuited:   bestSuited,
			Availability: row.Availability,
			Skills:       skillScores(*row.Ratings),
		})
	}

	return pool
}

// fullyUnavailable reports whether every shift block cell marks the operator
// as unavailable for the week
func fullyUnavailable(a model.Availability) bool {
	return IsUnavailable(a.Day1) && IsUnavailable(a.Day2) &&
		IsUnavailable(a.Night1) && IsUnavailable(a.Night2)
}

// skillScores derives the numeric skill score map from a raw capability record
func skillScores(r model.CapabilityRatings) model.SkillScores {
	return model.SkillScores{
		FLT:            RatingScore(r.FLT),
		Canning:        RatingScore(r.Canning),
		MAB1:           RatingScore(r.MAB1),
		MAB2:           RatingScore(r.MAB2),
		Corona:         RatingScore(r.Corona),
		KeggingInside:  RatingScore(r.KeggingInside),
		KeggingOutside: RatingScore(r.KeggingOutside),
		WMS:            RatingScore(r.WMS),
		SAP:            RatingScore(r.SAP),
		SAY:            RatingScore(r.SAY),
		Packaging:      RatingScore(r.Packaging),
		Loaders:        RatingScore(r.Loaders),
		Pilots:         RatingScore(r.Pilots),
	}
}
