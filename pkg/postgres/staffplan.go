package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rhysmorgan-dev/magor-rota/pkg/core/model"
)

// GetStaffPlan retrieves the week's staff plan rows joined to operator
// profiles and capability records. Operators without a capability record
// come back with nil Ratings; the pool builder filters them out.
func (d *DB) GetStaffPlan(ctx context.Context, weekCommencing string) ([]model.StaffPlanRow, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT o.id, o.name, o.is_active, o.is_agency,
		       COALESCE(o.shift, ''), COALESCE(o.role, ''), COALESCE(o.constraints, ''),
		       o.best_suited_areas,
		       COALESCE(sp.day1, ''), COALESCE(sp.day2, ''),
		       COALESCE(sp.night1, ''), COALESCE(sp.night2, ''),
		       c.operator_id,
		       COALESCE(c.flt, ''), COALESCE(c.canning, ''),
		       COALESCE(c.mab1, ''), COALESCE(c.mab2, ''), COALESCE(c.corona, ''),
		       COALESCE(c.kegging_inside, ''), COALESCE(c.kegging_outside, ''),
		       COALESCE(c.wms, ''), COALESCE(c.sap, ''), COALESCE(c.say, ''),
		       COALESCE(c.packaging, ''), COALESCE(c.loaders, ''), COALESCE(c.pilots, '')
		FROM weekly_staff_plan sp
		JOIN operators o ON o.id = sp.operator_id
		LEFT JOIN operator_capabilities c ON c.operator_id = o.id
		WHERE sp.week_commencing = $1
		ORDER BY o.name, o.id
	`, weekCommencing)
	if err != nil {
		return nil, fmt.Errorf("failed to query staff plan: %w", err)
	}
	defer rows.Close()

	var result []model.StaffPlanRow
	for rows.Next() {
		var row model.StaffPlanRow
		var bestSuitedJSON []byte
		var capOperatorID *string
		var ratings model.CapabilityRatings

		if err := rows.Scan(
			&row.OperatorID, &row.Name, &row.IsActive, &row.IsAgency,
			&row.Shift, &row.Role, &row.Constraints,
			&bestSuitedJSON,
			&row.Availability.Day1, &row.Availability.Day2,
			&row.Availability.Night1, &row.Availability.Night2,
			&capOperatorID,
			&ratings.FLT, &ratings.Canning,
			&ratings.MAB1, &ratings.MAB2, &ratings.Corona,
			&ratings.KeggingInside, &ratings.KeggingOutside,
			&ratings.WMS, &ratings.SAP, &ratings.SAY,
			&ratings.Packaging, &ratings.Loaders, &ratings.Pilots,
		); err != nil {
			return nil, fmt.Errorf("failed to scan staff plan row: %w", err)
		}

		if len(bestSuitedJSON) > 0 {
			if err := json.Unmarshal(bestSuitedJSON, &row.BestSuited); err != nil {
				return nil, fmt.Errorf("failed to parse best_suited_areas for operator %s: %w", row.OperatorID, err)
			}
		}

		if capOperatorID != nil {
			row.Ratings = &ratings
		}

		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating staff plan rows: %w", err)
	}

	return result, nil
}
