package services

import (
	"sync"
	"time"
)

// parseWeek parses a week-commencing parameter as an ISO date in UTC
func parseWeek(weekCommencing string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", weekCommencing, time.UTC)
}

// weekDates returns the 7 ISO dates of the week starting at weekStart
func weekDates(weekStart time.Time) []string {
	dates := make([]string, 7)
	for i := 0; i < 7; i++ {
		dates[i] = weekStart.AddDate(0, 0, i).Format("2006-01-02")
	}
	return dates
}

// weekLocks serialises generation runs per target week. The persisted rota
// is replaced wholesale on every run, so two concurrent runs for the same
// week must not interleave their deletes and inserts.
var weekLocks = struct {
	mu    sync.Mutex
	weeks map[string]*sync.Mutex
}{weeks: make(map[string]*sync.Mutex)}

// lockWeek acquires the advisory single-writer lock for a week and returns
// the matching unlock
func lockWeek(week string) func() {
	weekLocks.mu.Lock()
	lock, ok := weekLocks.weeks[week]
	if !ok {
		lock = &sync.Mutex{}
		weekLocks.weeks[week] = lock
	}
	weekLocks.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
