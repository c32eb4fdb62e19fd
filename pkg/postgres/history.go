package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/rhysmorgan-dev/magor-rota/pkg/core/model"
)

// GetAllocationHistory retrieves history records with week_commencing in
// [from, to), oldest first.
func (d *DB) GetAllocationHistory(ctx context.Context, from, to string) ([]model.HistoryRecord, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT operator_id, week_commencing, day_name, shift, area, position
		FROM allocation_history
		WHERE week_commencing >= $1 AND week_commencing < $2
		ORDER BY week_commencing
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query allocation history: %w", err)
	}
	defer rows.Close()

	var records []model.HistoryRecord
	for rows.Next() {
		var r model.HistoryRecord
		var week time.Time
		if err := rows.Scan(&r.OperatorID, &week, &r.DayName, &r.Shift, &r.Area, &r.Position); err != nil {
			return nil, fmt.Errorf("failed to scan history record: %w", err)
		}
		r.WeekCommencing = week.Format("2006-01-02")
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating history records: %w", err)
	}

	return records, nil
}
