package planner

import (
	"sort"
	"strings"
	"time"

	"github.com/yungbote/tamiti-backend/internal/types"
)

// DefaultEstimateMinutes is assumed for tasks without an estimate.
const DefaultEstimateMinutes = 30

var priorityTiers = map[string]int{
	types.PriorityLow:      0,
	types.PriorityMedium:   1,
	types.PriorityHigh:     2,
	types.PriorityUrgent:   3,
	types.PriorityCritical: 4,
}

func priorityTier(p string) int {
	if tier, ok := priorityTiers[p]; ok {
		return tier
	}
	return priorityTiers[types.PriorityMedium]
}

// SelectUnits filters candidate tasks down to schedulable work units and
// ranks them. The ordering is a total order (final tie-break on task id), so
// packing the result is deterministic.
//
// Exclusions are silent: a task held back by a snooze, a start constraint or
// an unmet dependency simply does not appear in the queue.
func SelectUnits(tasks []*types.Task, now, rangeStart, rangeEnd time.Time, defaultEstimate int) []*WorkUnit {
	if defaultEstimate <= 0 {
		defaultEstimate = DefaultEstimateMinutes
	}

	var units []*WorkUnit
	for _, t := range tasks {
		if t.IsTerminal() {
			continue
		}
		if t.SnoozedUntil != nil && t.SnoozedUntil.After(rangeStart) {
			continue
		}
		if t.EarliestStartAt != nil && t.EarliestStartAt.After(rangeEnd) {
			continue
		}
		if t.LatestFinishAt != nil && t.LatestFinishAt.Before(rangeStart) {
			continue
		}
		if !dependenciesDone(t) {
			continue
		}

		tier := priorityTier(t.Priority)
		if t.DueDate != nil && t.DueDate.Before(now) {
			tier++
		}

		estimate := defaultEstimate
		if t.EstimatedMinutes != nil && *t.EstimatedMinutes > 0 {
			estimate = *t.EstimatedMinutes
		}

		units = append(units, &WorkUnit{
			TaskID:          t.ID,
			Title:           t.Title,
			Remaining:       estimate,
			RequiredMinutes: estimate,
			Tier:            tier,
			HardDueInRange:  t.IsHardDue && t.DueDate != nil && !t.DueDate.Before(rangeStart) && t.DueDate.Before(rangeEnd),
			Due:             t.DueDate,
			Energy:          t.ContextEnergy,
		})
	}

	sort.Slice(units, func(i, j int) bool { return rankLess(units[i], units[j]) })
	return units
}

func dependenciesDone(t *types.Task) bool {
	for _, dep := range t.Dependencies {
		if dep.Status != types.TaskStatusDone {
			return false
		}
	}
	return true
}

// rankLess orders units: hard-due tasks due inside the range first, then
// priority tier descending, due date ascending with nulls last, and task id
// ascending as the final tie-break.
func rankLess(a, b *WorkUnit) bool {
	if a.HardDueInRange != b.HardDueInRange {
		return a.HardDueInRange
	}
	if a.Tier != b.Tier {
		return a.Tier > b.Tier
	}
	switch {
	case a.Due == nil && b.Due != nil:
		return false
	case a.Due != nil && b.Due == nil:
		return true
	case a.Due != nil && b.Due != nil && !a.Due.Equal(*b.Due):
		return a.Due.Before(*b.Due)
	}
	return strings.Compare(a.TaskID.String(), b.TaskID.String()) < 0
}
