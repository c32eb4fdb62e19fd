package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/rhysmorgan-dev/magor-rota/internal/config"
	"github.com/rhysmorgan-dev/magor-rota/pkg/core/allocator"
	"github.com/rhysmorgan-dev/magor-rota/pkg/core/model"
	"github.com/rhysmorgan-dev/magor-rota/pkg/db"
)

// Client-facing input failures: the engine aborts before any write and the
// caller is told what to fix.
var (
	// ErrInvalidWeek means the week-commencing parameter is not an ISO date
	ErrInvalidWeek = errors.New("week_commencing must be an ISO date (YYYY-MM-DD)")

	// ErrNoLinePlan means no daily line plan exists for any day of the week
	ErrNoLinePlan = errors.New("no daily line plans found for the week - create a line plan first")

	// ErrNoStaffPlan means no staff plan rows exist for the week
	ErrNoStaffPlan = errors.New("no staff plan rows found for the week")
)

// GenerateRotaStore defines the database operations needed to generate a rota
type GenerateRotaStore interface {
	db.LinePlanStore
	db.StaffPlanStore
	db.HistoryStore
	db.RotaStore
}

// GenerateRotaResult reports one generation run
type GenerateRotaResult struct {
	WeekCommencing string             `json:"week_commencing"`
	AllocatedCount int                `json:"allocated_count"`
	PoolCount      int                `json:"pool_count"`
	GapCount       int                `json:"gap_count"`
	Allocations    []model.Allocation `json:"allocations"`
	Gaps           []model.Gap        `json:"gaps"`
}

// GenerateRota regenerates the rota for the week commencing on the given
// ISO date. It reads the week's line plan, staff plan and rotation history,
// runs the allocation engine, and replaces the week's allocations and gaps
// (appending history) in a single transaction.
//
// Re-running with unchanged inputs produces the same allocations and the
// same scores. Concurrent runs for the same week are serialised by an
// in-process per-week lock, so the last completed run wins cleanly instead
// of interleaving deletes and inserts.
//
// If dryRun is set the engine computes everything but writes nothing.
func GenerateRota(
	ctx context.Context,
	database GenerateRotaStore,
	scheduling config.SchedulingConfig,
	logger *zap.Logger,
	weekCommencing string,
	dryRun bool,
) (*GenerateRotaResult, error) {
	weekStart, err := parseWeek(weekCommencing)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidWeek, weekCommencing)
	}
	week := weekStart.Format("2006-01-02")

	logger.Info("Generating weekly rota",
		zap.String("week_commencing", week),
		zap.Bool("dry_run", dryRun))

	// One generation run per week at a time
	unlock := lockWeek(week)
	defer unlock()

	// Step 1: read the daily line plans for the 7 week dates
	dates := weekDates(weekStart)
	logger.Debug("Fetching daily line plans", zap.Strings("dates", dates))
	dailyPlans, err := database.GetDailyLinePlans(ctx, dates)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch daily line plans: %w", err)
	}
	if len(dailyPlans) == 0 {
		return nil, fmt.Errorf("%w (week %s)", ErrNoLinePlan, week)
	}
	logger.Debug("Found daily line plans", zap.Int("count", len(dailyPlans)))

	// Step 2: read the staff plan joined to operators and capabilities
	logger.Debug("Fetching staff plan")
	staffRows, err := database.GetStaffPlan(ctx, week)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch staff plan: %w", err)
	}
	if len(staffRows) == 0 {
		return nil, fmt.Errorf("%w (week %s)", ErrNoStaffPlan, week)
	}
	logger.Debug("Found staff plan rows", zap.Int("count", len(staffRows)))

	// Step 3: read allocation history for the rotation lookback window
	lookback := scheduling.LookbackDays
	if lookback <= 0 {
		lookback = allocator.DefaultLookbackDays
	}
	historyFrom := weekStart.AddDate(0, 0, -lookback).Format("2006-01-02")
	logger.Debug("Fetching allocation history",
		zap.String("from", historyFrom),
		zap.String("to", week))
	history, err := database.GetAllocationHistory(ctx, historyFrom, week)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch allocation history: %w", err)
	}
	logger.Debug("Found history records", zap.Int("count", len(history)))

	// Step 4: build the engine inputs
	weekPlan := allocator.AggregateLinePlans(dailyPlans, scheduling.DefaultPilots)
	demand := allocator.BuildDemand(weekPlan)
	pool := allocator.BuildPool(staffRows)
	rotation := allocator.BuildRotationIndex(history, weekStart, lookback)

	logger.Info("Engine inputs ready",
		zap.Int("demand_areas", len(demand)),
		zap.Int("pool_size", len(pool)))

	input := allocator.Input{
		WeekCommencing: week,
		Demand:         demand,
		Pool:           pool,
		Rotation:       rotation,
		PenaltyTiers:   scheduling.PenaltyTiers(),
	}

	// Step 5: run the allocation engine and the gap reporter
	allocations := allocator.Allocate(input)
	gaps := allocator.BuildGaps(input, allocations)

	logger.Info("Allocation completed",
		zap.Int("allocations", len(allocations)),
		zap.Int("gaps", len(gaps)))

	// Step 6: replace the week's rota and append history in one transaction
	if dryRun {
		logger.Info("Dry run mode - nothing written")
	} else {
		historyRecords := allocator.HistoryRecords(allocations)
		if err := database.ReplaceWeekRota(ctx, week, allocations, gaps, historyRecords); err != nil {
			return nil, fmt.Errorf("failed to save rota: %w", err)
		}
		logger.Info("Rota saved",
			zap.Int("allocations", len(allocations)),
			zap.Int("gaps", len(gaps)),
			zap.Int("history_records", len(historyRecords)))
	}

	return &GenerateRotaResult{
		WeekCommencing: week,
		AllocatedCount: len(allocations),
		PoolCount:      len(pool),
		GapCount:       len(gaps),
		Allocations:    allocations,
		Gaps:           gaps,
	}, nil
}

// IsClientError reports whether the error is an input failure the caller
// can fix, as opposed to a store failure
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidWeek) ||
		errors.Is(err, ErrNoLinePlan) ||
		errors.Is(err, ErrNoStaffPlan)
}
