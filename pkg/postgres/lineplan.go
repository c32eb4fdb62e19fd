package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/rhysmorgan-dev/magor-rota/pkg/core/model"
)

// GetDailyLinePlans retrieves the daily line plans for the given dates
func (d *DB) GetDailyLinePlans(ctx context.Context, dates []string) ([]model.DailyLinePlan, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT date, mak1_running, mac1_running, mac2_running,
		       mab1_running, mab2_running, mab3_running, corona_running,
		       packaging_running, tents_running, canning_reduced,
		       keg_load_slots, mak1_load_slots, tents_load_slots, pilots_required
		FROM daily_line_plan
		WHERE date = ANY($1::date[])
		ORDER BY date
	`, dates)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily line plans: %w", err)
	}
	defer rows.Close()

	var plans []model.DailyLinePlan
	for rows.Next() {
		var p model.DailyLinePlan
		var date time.Time
		if err := rows.Scan(
			&date, &p.Mak1Running, &p.Mac1Running, &p.Mac2Running,
			&p.Mab1Running, &p.Mab2Running, &p.Mab3Running, &p.CoronaRunning,
			&p.PackagingRunning, &p.TentsRunning, &p.CanningReduced,
			&p.KegLoadSlots, &p.Mak1LoadSlots, &p.TentsLoadSlots, &p.PilotsRequired,
		); err != nil {
			return nil, fmt.Errorf("failed to scan daily line plan: %w", err)
		}
		p.Date = date.Format("2006-01-02")
		plans = append(plans, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating daily line plans: %w", err)
	}

	return plans, nil
}
