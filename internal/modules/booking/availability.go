package booking

import (
	"sort"
	"time"

	"aura/internal/domain"
	"aura/internal/pkg/timeutil"
)

// Window is one working range as offsets from midnight.
type Window struct {
	Start time.Duration
	End   time.Duration
}

// Calculate slices every window into back-to-back slots of length total and
// returns the sorted, unique slot starts that are not in booked. A trailing
// piece shorter than total is dropped. Occupancy is an exact "HH:MM" match.
func Calculate(windows []Window, total time.Duration, booked []string) []string {
	out := []string{}
	if total <= 0 {
		return out
	}

	taken := make(map[string]struct{}, len(booked))
	for _, b := range booked {
		taken[b] = struct{}{}
	}

	seen := make(map[string]struct{})
	for _, w := range windows {
		for start := w.Start; start+total <= w.End; start += total {
			slot := timeutil.FormatClock(start)
			if _, ok := taken[slot]; ok {
				continue
			}
			if _, ok := seen[slot]; ok {
				continue
			}
			seen[slot] = struct{}{}
			out = append(out, slot)
		}
	}
	// zero-padded HH:MM sorts chronologically
	sort.Strings(out)
	return out
}

// windowsFrom converts stored working ranges. Rows that do not parse or are
// empty are skipped.
func windowsFrom(rows []domain.WorkingTime) []Window {
	out := make([]Window, 0, len(rows))
	for _, r := range rows {
		start, err := timeutil.ParseClock(r.StartTime)
		if err != nil {
			continue
		}
		end, err := timeutil.ParseClock(r.EndTime)
		if err != nil || end <= start {
			continue
		}
		out = append(out, Window{Start: start, End: end})
	}
	return out
}
