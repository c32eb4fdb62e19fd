package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/rhysmorgan-dev/magor-rota/pkg/core/model"
	"github.com/rhysmorgan-dev/magor-rota/pkg/db"
)

// ViewAllocations returns the persisted rota for a week
func ViewAllocations(ctx context.Context, database db.RotaStore, logger *zap.Logger, weekCommencing string) ([]model.Allocation, error) {
	weekStart, err := parseWeek(weekCommencing)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidWeek, weekCommencing)
	}
	week := weekStart.Format("2006-01-02")

	logger.Debug("Fetching allocations", zap.String("week_commencing", week))
	allocations, err := database.GetAllocations(ctx, week)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch allocations: %w", err)
	}
	logger.Debug("Found allocations", zap.Int("count", len(allocations)))

	return allocations, nil
}
