// Package timeutil parses and formats the wall-clock strings used across the API:
// dates as "YYYY-MM-DD", times of day and durations as "HH:MM".
package timeutil

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

var (
	ErrBadClock = errors.New("time must be in HH:MM format")
	ErrBadDate  = errors.New("date must be in YYYY-MM-DD format")
)

// ParseDate parses a calendar date in the given location.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, ErrBadDate
	}
	return d, nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseClock parses a time of day into the offset from midnight.
func ParseClock(s string) (time.Duration, error) {
	d, err := parseHHMM(s)
	if err != nil {
		return 0, err
	}
	if d >= 24*time.Hour {
		return 0, ErrBadClock
	}
	return d, nil
}

// ParseDuration parses an "HH:MM" length. Hours may exceed 23.
func ParseDuration(s string) (time.Duration, error) {
	return parseHHMM(s)
}

// FormatClock renders an offset from midnight as zero-padded "HH:MM".
func FormatClock(d time.Duration) string {
	total := int(d / time.Minute)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// WeekdayName returns the English weekday name ("Monday".."Sunday").
func WeekdayName(t time.Time) string {
	return t.Weekday().String()
}

// CanonicalWeekday matches s case-insensitively against the weekday names.
func CanonicalWeekday(s string) (string, bool) {
	s = strings.TrimSpace(s)
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(s, d.String()) {
			return d.String(), true
		}
	}
	return "", false
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func parseHHMM(s string) (time.Duration, error) {
	h, m, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || h == "" || len(m) != 2 {
		return 0, ErrBadClock
	}
	hours, err := strconv.Atoi(h)
	if err != nil || hours < 0 {
		return 0, ErrBadClock
	}
	minutes, err := strconv.Atoi(m)
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, ErrBadClock
	}
	return time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute, nil
}
