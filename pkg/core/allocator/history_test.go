package allocator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rhysmorgan-dev/magor-rota/pkg/core/model"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)
	return d
}

func TestBuildRotationIndex_Window(t *testing.T) {
	weekStart := mustDate(t, "2025-06-30")

	records := []model.HistoryRecord{
		{OperatorID: "op-1", WeekCommencing: "2025-06-23", Area: "Canning"}, // 1 week ago
		{OperatorID: "op-1", WeekCommencing: "2025-06-02", Area: "Canning"}, // 4 weeks ago
		{OperatorID: "op-1", WeekCommencing: "2025-05-26", Area: "Canning"}, // outside window
		{OperatorID: "op-1", WeekCommencing: "2025-06-30", Area: "Canning"}, // target week itself
		{OperatorID: "op-2", WeekCommencing: "2025-06-16", Area: "Pilots"},  // 2 weeks ago
		{OperatorID: "op-3", WeekCommencing: "not-a-date", Area: "Pilots"},
	}

	idx := BuildRotationIndex(records, weekStart, 28)

	assert.ElementsMatch(t, []int{1, 4}, idx["op-1"]["Canning"])
	assert.Equal(t, []int{2}, idx["op-2"]["Pilots"])
	assert.NotContains(t, idx, "op-3")
}

func TestRotationPenalty_Tiers(t *testing.T) {
	weekStart := mustDate(t, "2025-06-30")
	tiers := DefaultPenaltyTiers

	tests := []struct {
		week string
		want int
	}{
		{"2025-06-23", -20}, // 1 week ago
		{"2025-06-16", -15}, // 2 weeks ago
		{"2025-06-09", -10}, // 3 weeks ago
		{"2025-06-02", -5},  // 4 weeks ago
	}

	for _, tt := range tests {
		idx := BuildRotationIndex([]model.HistoryRecord{
			{OperatorID: "op-1", WeekCommencing: tt.week, Area: "Canning"},
		}, weekStart, 28)

		assert.Equal(t, tt.want, idx.Penalty("op-1", "Canning", tiers), "week %s", tt.week)
	}
}

func TestRotationPenalty_MostRecentWins(t *testing.T) {
	weekStart := mustDate(t, "2025-06-30")

	idx := BuildRotationIndex([]model.HistoryRecord{
		{OperatorID: "op-1", WeekCommencing: "2025-06-02", Area: "Canning"},
		{OperatorID: "op-1", WeekCommencing: "2025-06-23", Area: "Canning"},
	}, weekStart, 28)

	// The 1-week-ago assignment dominates the 4-week-ago one
	assert.Equal(t, -20, idx.Penalty("op-1", "Canning", DefaultPenaltyTiers))
}

func TestRotationPenalty_NoHistoryNoPenalty(t *testing.T) {
	idx := RotationIndex{}
	assert.Equal(t, 0, idx.Penalty("op-1", "Canning", DefaultPenaltyTiers))

	// History in a different area does not bleed over
	weekStart := mustDate(t, "2025-06-30")
	idx = BuildRotationIndex([]model.HistoryRecord{
		{OperatorID: "op-1", WeekCommencing: "2025-06-23", Area: "Pilots"},
	}, weekStart, 28)
	assert.Equal(t, 0, idx.Penalty("op-1", "Canning", DefaultPenaltyTiers))
}

func TestHistoryRecords(t *testing.T) {
	records := HistoryRecords([]model.Allocation{
		{WeekCommencing: "2025-06-30", Area: "Canning", ShiftBlock: model.ShiftNight1, OperatorID: "op-1"},
		{WeekCommencing: "2025-06-30", Area: "Pilots", ShiftBlock: model.ShiftDay2, OperatorID: ""},
	})

	require.Len(t, records, 1)
	assert.Equal(t, "op-1", records[0].OperatorID)
	assert.Equal(t, "NIGHT1", records[0].DayName)
	assert.Equal(t, "Night", records[0].Shift)
	assert.Equal(t, "Canning", records[0].Area)
	assert.Equal(t, "Canning", records[0].Position)
}
