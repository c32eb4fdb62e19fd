package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/rhysmorgan-dev/magor-rota/pkg/core/model"
	"github.com/rhysmorgan-dev/magor-rota/pkg/db"
)

// ViewGaps returns the persisted gap report for a week, for the planner
// reviewing unfilled demand
func ViewGaps(ctx context.Context, database db.RotaStore, logger *zap.Logger, weekCommencing string) ([]model.Gap, error) {
	weekStart, err := parseWeek(weekCommencing)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidWeek, weekCommencing)
	}
	week := weekStart.Format("2006-01-02")

	logger.Debug("Fetching gaps", zap.String("week_commencing", week))
	gaps, err := database.GetGaps(ctx, week)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch gaps: %w", err)
	}
	logger.Debug("Found gaps", zap.Int("count", len(gaps)))

	return gaps, nil
}
