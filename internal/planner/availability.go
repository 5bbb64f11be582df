package planner

import (
	"sort"
	"time"

	"github.com/yungbote/tamiti-backend/internal/types"
)

const (
	defaultDayStart = "09:00"
	defaultDayEnd   = "17:00"
)

type interval struct {
	start time.Time
	end   time.Time
}

// ResolveWindows turns weekly availability templates and busy calendar events
// into free windows for every date in [from, to). from/to are midnights in the
// owner's reference location. Weekday convention is 0=Mon .. 6=Sun.
//
// Per date: the matching template row wins (first by start time when several
// exist), falling back to 09:00-17:00 on workdays; non-workdays yield nothing.
// Busy events are merged, then subtracted from the template window.
func ResolveWindows(from, to time.Time, templates []*types.AvailabilityTemplate, events []*types.CalendarEvent) []Window {
	byWeekday := make(map[int][]*types.AvailabilityTemplate)
	for _, t := range templates {
		byWeekday[t.Weekday] = append(byWeekday[t.Weekday], t)
	}
	for _, rows := range byWeekday {
		sort.Slice(rows, func(i, j int) bool { return rows[i].StartTime < rows[j].StartTime })
	}

	var windows []Window
	for day := from; day.Before(to); day = day.AddDate(0, 0, 1) {
		weekday := (int(day.Weekday()) + 6) % 7

		startClock, endClock, workday := defaultDayStart, defaultDayEnd, true
		if rows := byWeekday[weekday]; len(rows) > 0 {
			startClock, endClock, workday = rows[0].StartTime, rows[0].EndTime, rows[0].IsWorkday
		}
		if !workday {
			continue
		}

		dayEnd := day.AddDate(0, 0, 1)
		winStart := clampToDay(atClock(day, startClock), day, dayEnd)
		winEnd := clampToDay(atClock(day, endClock), day, dayEnd)
		if !winEnd.After(winStart) {
			continue
		}

		busy := mergeBusy(events, winStart, winEnd)
		for _, free := range subtract(interval{winStart, winEnd}, busy) {
			if free.end.Sub(free.start) < time.Minute {
				continue
			}
			windows = append(windows, Window{Date: day, Start: free.start, End: free.end})
		}
	}
	return windows
}

func atClock(day time.Time, clock string) time.Time {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		t, err = time.Parse("15:04:05", clock)
		if err != nil {
			return day
		}
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, day.Location())
}

func clampToDay(t, dayStart, dayEnd time.Time) time.Time {
	if t.Before(dayStart) {
		return dayStart
	}
	if t.After(dayEnd) {
		return dayEnd
	}
	return t
}

// mergeBusy collects busy events overlapping [winStart, winEnd), clipped to
// the window, and merges overlapping or adjacent intervals.
func mergeBusy(events []*types.CalendarEvent, winStart, winEnd time.Time) []interval {
	var busy []interval
	for _, ev := range events {
		if !ev.IsBusy || !ev.Start.Before(winEnd) || !ev.End.After(winStart) {
			continue
		}
		s, e := ev.Start, ev.End
		if s.Before(winStart) {
			s = winStart
		}
		if e.After(winEnd) {
			e = winEnd
		}
		busy = append(busy, interval{s, e})
	}
	sort.Slice(busy, func(i, j int) bool {
		if busy[i].start.Equal(busy[j].start) {
			return busy[i].end.Before(busy[j].end)
		}
		return busy[i].start.Before(busy[j].start)
	})

	var merged []interval
	for _, iv := range busy {
		if n := len(merged); n > 0 && !iv.start.After(merged[n-1].end) {
			if iv.end.After(merged[n-1].end) {
				merged[n-1].end = iv.end
			}
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}

// subtract returns the parts of win not covered by busy. busy must be merged
// and sorted.
func subtract(win interval, busy []interval) []interval {
	var free []interval
	cursor := win.start
	for _, b := range busy {
		if b.start.After(cursor) {
			free = append(free, interval{cursor, b.start})
		}
		if b.end.After(cursor) {
			cursor = b.end
		}
	}
	if win.end.After(cursor) {
		free = append(free, interval{cursor, win.end})
	}
	return free
}
