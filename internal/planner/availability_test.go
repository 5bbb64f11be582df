package planner

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/tamiti-backend/internal/types"
)

func owner() uuid.UUID { return uuid.MustParse("00000000-0000-0000-0000-000000000001") }

func template(weekday int, start, end string, workday bool) *types.AvailabilityTemplate {
	return &types.AvailabilityTemplate{
		OwnerID:   owner(),
		Weekday:   weekday,
		StartTime: start,
		EndTime:   end,
		IsWorkday: workday,
	}
}

func busyEvent(start, end time.Time) *types.CalendarEvent {
	return &types.CalendarEvent{OwnerID: owner(), Title: "meeting", Start: start, End: end, IsBusy: true}
}

func TestResolveWindowsDefaultTemplate(t *testing.T) {
	windows := ResolveWindows(testDay, testDay.AddDate(0, 0, 1), nil, nil)

	if len(windows) != 1 {
		t.Fatalf("windows = %d, want 1", len(windows))
	}
	w := windows[0]
	if !w.Start.Equal(at(9, 0)) || !w.End.Equal(at(17, 0)) {
		t.Fatalf("window = [%v, %v), want default 09:00-17:00", w.Start, w.End)
	}
	if w.Minutes() != 480 {
		t.Fatalf("minutes = %d, want 480", w.Minutes())
	}
}

func TestResolveWindowsNonWorkday(t *testing.T) {
	// testDay is a Monday, weekday 0 in the provider convention.
	templates := []*types.AvailabilityTemplate{template(0, "09:00", "17:00", false)}

	windows := ResolveWindows(testDay, testDay.AddDate(0, 0, 1), templates, nil)

	if len(windows) != 0 {
		t.Fatalf("windows = %d, want none on a non-workday", len(windows))
	}
}

func TestResolveWindowsSubtractsMergedBusyEvents(t *testing.T) {
	templates := []*types.AvailabilityTemplate{template(0, "08:00", "18:00", true)}
	events := []*types.CalendarEvent{
		busyEvent(at(12, 0), at(13, 0)),
		busyEvent(at(12, 30), at(13, 30)), // overlaps, merges to 12:00-13:30
		busyEvent(at(7, 0), at(8, 30)),    // clipped to window start
		{OwnerID: owner(), Title: "fyi", Start: at(15, 0), End: at(16, 0), IsBusy: false},
	}

	windows := ResolveWindows(testDay, testDay.AddDate(0, 0, 1), templates, events)

	want := []struct{ start, end time.Time }{
		{at(8, 30), at(12, 0)},
		{at(13, 30), at(18, 0)},
	}
	if len(windows) != len(want) {
		t.Fatalf("windows = %d, want %d: %+v", len(windows), len(want), windows)
	}
	for i, w := range want {
		if !windows[i].Start.Equal(w.start) || !windows[i].End.Equal(w.end) {
			t.Fatalf("window %d = [%v, %v), want [%v, %v)", i, windows[i].Start, windows[i].End, w.start, w.end)
		}
	}
}

func TestResolveWindowsFullyBusyDay(t *testing.T) {
	events := []*types.CalendarEvent{busyEvent(at(8, 0), at(18, 0))}

	windows := ResolveWindows(testDay, testDay.AddDate(0, 0, 1), nil, events)

	if len(windows) != 0 {
		t.Fatalf("windows = %d, want none when the whole day is busy", len(windows))
	}
}

func TestResolveWindowsWeekRange(t *testing.T) {
	// Weekend off, shorter Fridays.
	templates := []*types.AvailabilityTemplate{
		template(4, "09:00", "13:00", true),
		template(5, "09:00", "17:00", false),
		template(6, "09:00", "17:00", false),
	}

	windows := ResolveWindows(testDay, testDay.AddDate(0, 0, 7), templates, nil)

	// Mon-Thu default 480, Fri 240, Sat/Sun nothing.
	if len(windows) != 5 {
		t.Fatalf("windows = %d, want 5: %+v", len(windows), windows)
	}
	total := 0
	for _, w := range windows {
		total += w.Minutes()
	}
	if total != 4*480+240 {
		t.Fatalf("total minutes = %d, want %d", total, 4*480+240)
	}
	for i := 1; i < len(windows); i++ {
		if !windows[i-1].End.Before(windows[i].Start) && !windows[i-1].End.Equal(windows[i].Start) {
			t.Fatalf("windows out of order at %d", i)
		}
	}
}
