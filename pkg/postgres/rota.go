package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rhysmorgan-dev/magor-rota/pkg/core/model"
)

// ReplaceWeekRota atomically swaps the stored rota for a week: it deletes
// the existing allocations and gaps, inserts the new ones, and appends the
// history records, all inside a single transaction. Either everything
// lands or nothing does.
func (d *DB) ReplaceWeekRota(ctx context.Context, weekCommencing string, allocations []model.Allocation, gaps []model.Gap, history []model.HistoryRecord) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		DELETE FROM weekly_rota_allocation WHERE week_commencing = $1
	`, weekCommencing); err != nil {
		return fmt.Errorf("failed to delete allocations for week %s: %w", weekCommencing, err)
	}

	if _, err := tx.Exec(ctx, `
		DELETE FROM weekly_rota_gaps WHERE week_commencing = $1
	`, weekCommencing); err != nil {
		return fmt.Errorf("failed to delete gaps for week %s: %w", weekCommencing, err)
	}

	for _, a := range allocations {
		var operatorID, assignedTo *string
		if a.OperatorID != "" {
			operatorID = &a.OperatorID
		}
		// assigned_to is null for engine rows; only manual agency
		// placeholder rows carry a value
		if a.AssignedTo != "" {
			assignedTo = &a.AssignedTo
		}

		if _, err := tx.Exec(ctx, `
			INSERT INTO weekly_rota_allocation
				(id, week_commencing, area, shift_block, operator_id, assigned_to, score, is_break_cover, hours_required)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, uuid.New().String(), a.WeekCommencing, a.Area, string(a.ShiftBlock),
			operatorID, assignedTo, a.Score, a.IsBreakCover, a.HoursRequired); err != nil {
			return fmt.Errorf("failed to insert allocation: %w", err)
		}
	}

	for _, g := range gaps {
		recommendations, err := json.Marshal(g.Recommendations)
		if err != nil {
			return fmt.Errorf("failed to encode recommendations: %w", err)
		}

		if _, err := tx.Exec(ctx, `
			INSERT INTO weekly_rota_gaps
				(id, week_commencing, shift_block, area, missing_count, recommendations)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, uuid.New().String(), g.WeekCommencing, string(g.ShiftBlock),
			g.Area, g.MissingCount, recommendations); err != nil {
			return fmt.Errorf("failed to insert gap: %w", err)
		}
	}

	for _, h := range history {
		if _, err := tx.Exec(ctx, `
			INSERT INTO allocation_history
				(id, operator_id, week_commencing, day_name, shift, area, position)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, uuid.New().String(), h.OperatorID, h.WeekCommencing,
			h.DayName, h.Shift, h.Area, h.Position); err != nil {
			return fmt.Errorf("failed to insert history record: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetAllocations retrieves the stored allocations for a week
func (d *DB) GetAllocations(ctx context.Context, weekCommencing string) ([]model.Allocation, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT a.week_commencing, a.area, a.shift_block, a.operator_id,
			COALESCE(o.name, ''), COALESCE(a.assigned_to, ''),
			a.score, a.is_break_cover, a.hours_required
		FROM weekly_rota_allocation a
		LEFT JOIN operators o ON o.id = a.operator_id
		WHERE a.week_commencing = $1
		ORDER BY a.shift_block, a.area
	`, weekCommencing)
	if err != nil {
		return nil, fmt.Errorf("failed to query allocations: %w", err)
	}
	defer rows.Close()

	var allocations []model.Allocation
	for rows.Next() {
		var a model.Allocation
		var week time.Time
		var block string
		var operatorID *string
		if err := rows.Scan(&week, &a.Area, &block, &operatorID,
			&a.OperatorName, &a.AssignedTo, &a.Score, &a.IsBreakCover, &a.HoursRequired); err != nil {
			return nil, fmt.Errorf("failed to scan allocation: %w", err)
		}
		a.WeekCommencing = week.Format("2006-01-02")
		a.ShiftBlock = model.ShiftBlock(block)
		if operatorID != nil {
			a.OperatorID = *operatorID
		}
		allocations = append(allocations, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating allocations: %w", err)
	}

	return allocations, nil
}

// GetGaps retrieves the stored coverage gaps for a week
func (d *DB) GetGaps(ctx context.Context, weekCommencing string) ([]model.Gap, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT week_commencing, shift_block, area, missing_count, recommendations
		FROM weekly_rota_gaps
		WHERE week_commencing = $1
		ORDER BY shift_block, area
	`, weekCommencing)
	if err != nil {
		return nil, fmt.Errorf("failed to query gaps: %w", err)
	}
	defer rows.Close()

	var gaps []model.Gap
	for rows.Next() {
		var g model.Gap
		var week time.Time
		var block string
		var recommendations []byte
		if err := rows.Scan(&week, &block, &g.Area, &g.MissingCount, &recommendations); err != nil {
			return nil, fmt.Errorf("failed to scan gap: %w", err)
		}
		g.WeekCommencing = week.Format("2006-01-02")
		g.ShiftBlock = model.ShiftBlock(block)
		if len(recommendations) > 0 {
			if err := json.Unmarshal(recommendations, &g.Recommendations); err != nil {
				return nil, fmt.Errorf("failed to parse recommendations: %w", err)
			}
		}
		gaps = append(gaps, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating gaps: %w", err)
	}

	return gaps, nil
}
