package allocator

import (
	"time"

	"github.com/rhysmorgan-dev/magor-rota/pkg/core/model"
)

// DefaultLookbackDays is the rotation history window behind the target week
const DefaultLookbackDays = 28

// PenaltyTiers holds the rotation penalty per "weeks since last assigned",
// indexed from one week ago. Assignments older than the last tier (or absent
// from history) carry no penalty. The tiers are a tunable fairness policy,
// not an algorithmic necessity.
type PenaltyTiers [4]int

// DefaultPenaltyTiers penalises a repeat assignment by -20 one week on,
// easing off by 5 per week until it expires after four weeks.
var DefaultPenaltyTiers = PenaltyTiers{-20, -15, -10, -5}

// RotationIndex is a per-operator, per-area lookup of "weeks since last
// assigned" values, built from allocation history for the lookback window.
type RotationIndex map[string]map[string][]int

// BuildRotationIndex indexes history records falling in the window
// [weekStart - lookbackDays, weekStart). The weeks-ago value is the whole
// number of weeks between the record's week and the target week.
func BuildRotationIndex(records []model.HistoryRecord, weekStart time.Time, lookbackDays int) RotationIndex {
	if lookbackDays <= 0 {
		lookbackDays = DefaultLookbackDays
	}
	windowStart := weekStart.AddDate(0, 0, -lookbackDays)

	index := make(RotationIndex)
	for _, record := range records {
		recordWeek, err := time.Parse("2006-01-02", record.WeekCommencing)
		if err != nil {
			continue
		}
		if recordWeek.Before(windowStart) || !recordWeek.Before(weekStart) {
			continue
		}

		weeksAgo := int(weekStart.Sub(recordWeek).Hours() / (24 * 7))

		byArea, ok := index[record.OperatorID]
		if !ok {
			byArea = make(map[string][]int)
			index[record.OperatorID] = byArea
		}
		byArea[record.Area] = append(byArea[record.Area], weeksAgo)
	}

	return index
}

// Penalty returns the rotation penalty for assigning the operator to the
// area again, based on the most recent prior assignment within the window.
// No history means no penalty.
func (idx RotationIndex) Penalty(operatorID, area string, tiers PenaltyTiers) int {
	byArea, ok := idx[operatorID]
	if !ok {
		return 0
	}
	weeks, ok := byArea[area]
	if !ok || len(weeks) == 0 {
		return 0
	}

	mostRecent := weeks[0]
	for _, w := range weeks[1:] {
		if w < mostRecent {
			mostRecent = w
		}
	}

	if mostRecent >= 1 && mostRecent <= len(tiers) {
		return tiers[mostRecent-1]
	}
	return 0
}

// HistoryRecords converts a generation run's allocation rows into the
// append-only history facts used for future weeks' rotation penalties.
// Agency placeholder rows carry no operator and are skipped.
func HistoryRecords(allocations []model.Allocation) []model.HistoryRecord {
	records := make([]model.HistoryRecord, 0, len(allocations))
	for _, a := range allocations {
		if a.OperatorID == "" {
			continue
		}
		records = append(records, model.HistoryRecord{
			OperatorID:     a.OperatorID,
			WeekCommencing: a.WeekCommencing,
			DayName:        string(a.ShiftBlock),
			Shift:          a.ShiftBlock.Kind(),
			Area:           a.Area,
			Position:       a.Area,
		})
	}
	return records
}
