package domain

import (
	"sort"
	"time"
)

// HistoryRetentionDays bounds streak history to the trailing year.
const HistoryRetentionDays = 365

// StreakHistory is the deduplicated, ascending set of days with at least
// one qualifying work task. Stored per user; pruned to the retention
// window on every update.
type StreakHistory []DayKey

// Contains reports whether the history holds the given day.
func (h StreakHistory) Contains(key DayKey) bool {
	for _, day := range h {
		if day == key {
			return true
		}
	}
	return false
}

// StreakResult is the outcome of one streak recomputation.
type StreakResult struct {
	History       StreakHistory
	Current       int
	Longest       int
	LastActiveDay DayKey // empty when the user was never active
}

// UpdateStreak recomputes streak state from history plus newly observed
// active days. It is a pure function and idempotent: applying the same
// newlyActive set twice yields the same result. Longest never decreases
// below priorLongest, even when pruning removes old runs.
func UpdateStreak(now time.Time, history StreakHistory, newlyActive []DayKey, priorLongest int, priorLastActive DayKey) StreakResult {
	today := DayKeyOf(now)
	cutoff := today.AddDays(-HistoryRetentionDays)

	// Union with set semantics; drop malformed or expired keys rather
	// than failing the whole computation.
	set := make(map[DayKey]struct{}, len(history)+len(newlyActive))
	for _, key := range history {
		if key.IsValid() && !key.Before(cutoff) {
			set[key] = struct{}{}
		}
	}
	for _, key := range newlyActive {
		if key.IsValid() && !key.Before(cutoff) {
			set[key] = struct{}{}
		}
	}

	merged := make(StreakHistory, 0, len(set))
	for key := range set {
		merged = append(merged, key)
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].Before(merged[j]) })

	// Current streak: walk backward from today while each day is present.
	// Bounded by the retention window.
	current := 0
	for day := today; current < HistoryRetentionDays; day = day.AddDays(-1) {
		if _, ok := set[day]; !ok {
			break
		}
		current++
	}

	// Longest run in the merged history: single ascending scan.
	longest := 0
	run := 0
	for i, day := range merged {
		if i > 0 && merged[i-1].NextDay(day) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	// Longest streak is monotonic across the user's lifetime: pruning or
	// data corrections must never shrink it.
	if priorLongest > longest {
		longest = priorLongest
	}
	if current > longest {
		longest = current
	}

	lastActive := priorLastActive
	if len(merged) > 0 {
		lastActive = merged[len(merged)-1]
	}

	return StreakResult{
		History:       merged,
		Current:       current,
		Longest:       longest,
		LastActiveDay: lastActive,
	}
}
