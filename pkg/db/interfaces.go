package db

import (
	"context"

	"github.com/rhysmorgan-dev/magor-rota/pkg/core/model"
)

// LinePlanStore reads the daily production line plans
type LinePlanStore interface {
	GetDailyLinePlans(ctx context.Context, dates []string) ([]model.DailyLinePlan, error)
}

// StaffPlanStore reads the weekly staff plan joined to operator profiles and
// capability records
type StaffPlanStore interface {
	GetStaffPlan(ctx context.Context, weekCommencing string) ([]model.StaffPlanRow, error)
}

// HistoryStore reads the append-only allocation history
type HistoryStore interface {
	// GetAllocationHistory returns history records with week_commencing in
	// [from, to)
	GetAllocationHistory(ctx context.Context, from, to string) ([]model.HistoryRecord, error)
}

// RotaStore reads and replaces the generated weekly rota
type RotaStore interface {
	// ReplaceWeekRota atomically replaces the week's allocations and gaps
	// and appends the run's history records, all in one transaction
	ReplaceWeekRota(ctx context.Context, weekCommencing string, allocations []model.Allocation, gaps []model.Gap, history []model.HistoryRecord) error

	GetAllocations(ctx context.Context, weekCommencing string) ([]model.Allocation, error)
	GetGaps(ctx context.Context, weekCommencing string) ([]model.Gap, error)
}

// Store is the full set of database operations the engine depends on
type Store interface {
	LinePlanStore
	StaffPlanStore
	HistoryStore
	RotaStore
}
