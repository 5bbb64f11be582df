package planner

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/tamiti-backend/internal/types"
)

func task(id string, mutate ...func(*types.Task)) *types.Task {
	est := 30
	t := &types.Task{
		ID:               uuid.MustParse(id),
		OwnerID:          owner(),
		Title:            "task",
		Status:           types.TaskStatusTodo,
		Priority:         types.PriorityMedium,
		EstimatedMinutes: &est,
	}
	for _, fn := range mutate {
		fn(t)
	}
	return t
}

func TestSelectUnitsFiltersCandidates(t *testing.T) {
	now := at(8, 0)
	rangeStart := testDay
	rangeEnd := testDay.AddDate(0, 0, 1)

	snoozed := at(12, 0)
	pastSnooze := testDay.Add(-time.Hour)
	tooLate := testDay.AddDate(0, 0, 3)
	tooEarlyFinish := testDay.Add(-2 * time.Hour)

	cases := []struct {
		name string
		task *types.Task
		want bool
	}{
		{"open task", task(idA), true},
		{"done task", task(idA, func(tk *types.Task) { tk.Status = types.TaskStatusDone }), false},
		{"canceled task", task(idA, func(tk *types.Task) { tk.Status = types.TaskStatusCanceled }), false},
		{"snoozed into range", task(idA, func(tk *types.Task) { tk.SnoozedUntil = &snoozed }), false},
		{"snooze already over", task(idA, func(tk *types.Task) { tk.SnoozedUntil = &pastSnooze }), true},
		{"earliest start after range", task(idA, func(tk *types.Task) { tk.EarliestStartAt = &tooLate }), false},
		{"latest finish before range", task(idA, func(tk *types.Task) { tk.LatestFinishAt = &tooEarlyFinish }), false},
		{"open dependency", task(idA, func(tk *types.Task) {
			tk.Dependencies = []*types.Task{task(idB)}
		}), false},
		{"done dependency", task(idA, func(tk *types.Task) {
			tk.Dependencies = []*types.Task{task(idB, func(d *types.Task) { d.Status = types.TaskStatusDone })}
		}), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			units := SelectUnits([]*types.Task{tc.task}, now, rangeStart, rangeEnd, DefaultEstimateMinutes)
			if got := len(units) == 1; got != tc.want {
				t.Fatalf("selected=%v, want %v", got, tc.want)
			}
		})
	}
}

func TestSelectUnitsRanking(t *testing.T) {
	now := at(8, 0)
	rangeStart := testDay
	rangeEnd := testDay.AddDate(0, 0, 1)

	dueInRange := at(15, 0)
	dueLater := testDay.AddDate(0, 0, 5)

	tasks := []*types.Task{
		task(idA, func(tk *types.Task) { tk.Priority = types.PriorityHigh; tk.DueDate = &dueLater }),
		task(idB, func(tk *types.Task) { tk.Priority = types.PriorityCritical }),
		task(idC, func(tk *types.Task) { tk.Priority = types.PriorityLow; tk.IsHardDue = true; tk.DueDate = &dueInRange }),
		task(idD, func(tk *types.Task) { tk.Priority = types.PriorityHigh }),
	}

	units := SelectUnits(tasks, now, rangeStart, rangeEnd, DefaultEstimateMinutes)

	// Hard-due-in-range first, then tier descending, due-date set before
	// missing, id as last resort.
	want := []string{idC, idB, idA, idD}
	if len(units) != len(want) {
		t.Fatalf("units = %d, want %d", len(units), len(want))
	}
	for i, id := range want {
		if units[i].TaskID.String() != id {
			t.Fatalf("rank %d = %s, want %s", i, units[i].TaskID, id)
		}
	}
}

func TestSelectUnitsOverdueBoost(t *testing.T) {
	now := at(8, 0)
	overdue := testDay.Add(-24 * time.Hour)

	tasks := []*types.Task{
		task(idA, func(tk *types.Task) { tk.Priority = types.PriorityHigh }),
		task(idB, func(tk *types.Task) { tk.Priority = types.PriorityMedium; tk.DueDate = &overdue }),
	}

	units := SelectUnits(tasks, now, testDay, testDay.AddDate(0, 0, 1), DefaultEstimateMinutes)

	if units[0].TaskID.String() != idB {
		t.Fatalf("overdue medium task should outrank high via tier boost, got %s first", units[0].TaskID)
	}
	if units[0].Tier != units[1].Tier {
		// Boost lifts medium (1) to high (2); the overdue task then wins the
		// tie on its earlier due date.
		t.Fatalf("tiers = %d vs %d, want equal after boost", units[0].Tier, units[1].Tier)
	}
}

func TestSelectUnitsDeterministicTieBreak(t *testing.T) {
	tasks := []*types.Task{task(idB), task(idA)}

	units := SelectUnits(tasks, at(8, 0), testDay, testDay.AddDate(0, 0, 1), DefaultEstimateMinutes)

	if units[0].TaskID.String() != idA || units[1].TaskID.String() != idB {
		t.Fatalf("equal tasks must order by ascending id, got %s then %s", units[0].TaskID, units[1].TaskID)
	}
}

func TestSelectUnitsDefaultEstimate(t *testing.T) {
	tasks := []*types.Task{task(idA, func(tk *types.Task) { tk.EstimatedMinutes = nil })}

	units := SelectUnits(tasks, at(8, 0), testDay, testDay.AddDate(0, 0, 1), 45)

	if units[0].Remaining != 45 || units[0].RequiredMinutes != 45 {
		t.Fatalf("remaining/required = %d/%d, want default 45", units[0].Remaining, units[0].RequiredMinutes)
	}
}
