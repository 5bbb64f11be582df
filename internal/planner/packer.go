package planner

import (
	"time"
)

// MinChunkMinutes is the smallest task chunk worth emitting. Window capacity
// below this threshold is left idle.
const MinChunkMinutes = 10

const breakTitle = "Break"

// Pack greedily places the ranked unit queue into the given windows,
// inserting breaks per policy. Windows must be chronological; the per-day
// focus accumulator and session counter reset at each date boundary.
//
// Partially placed units requeue at the back of their priority band, so
// same-tier units round-robin instead of one task starving the rest. Units
// still holding minutes after the last window become conflicts.
func Pack(windows []Window, units []*WorkUnit, policy Policy, minChunk int) Result {
	if minChunk <= 0 {
		minChunk = MinChunkMinutes
	}

	res := Result{
		Blocks:    []PlannedBlock{},
		Conflicts: []Conflict{},
	}
	for _, w := range windows {
		res.WindowMinutes += w.Minutes()
	}

	queue := make([]*WorkUnit, len(units))
	copy(queue, units)

	var (
		curDay       time.Time
		focusAccum   int
		sessionCount int
	)

	for _, w := range windows {
		if !w.Date.Equal(curDay) {
			curDay = w.Date
			focusAccum = 0
			sessionCount = 0
		}

		cursor := w.Start
		for len(queue) > 0 && cursor.Before(w.End) && focusAccum < policy.MaxDailyFocus {
			slack := int(w.End.Sub(cursor) / time.Minute)

			idx := pickUnit(queue, slack, policy.Focus)
			unit := queue[idx]

			chunk := minInt(policy.Focus, unit.Remaining, slack, policy.MaxDailyFocus-focusAccum)
			if chunk < minChunk {
				break
			}

			end := cursor.Add(time.Duration(chunk) * time.Minute)
			taskID := unit.TaskID
			res.Blocks = append(res.Blocks, PlannedBlock{
				TaskID: &taskID,
				Title:  unit.Title,
				Start:  cursor,
				End:    end,
			})
			res.PlannedMinutes += chunk
			cursor = end
			focusAccum += chunk
			sessionCount++

			unit.Remaining -= chunk
			queue = append(queue[:idx], queue[idx+1:]...)
			if unit.Remaining > 0 {
				queue = requeue(queue, unit)
			}

			// Insert a break only when another session can follow it: more
			// work queued, daily capacity left, and the break still leaves a
			// usable chunk in this window.
			if len(queue) == 0 || policy.MaxDailyFocus-focusAccum < minChunk {
				continue
			}
			breakLen := policy.ShortBreak
			if policy.LongEvery > 0 && sessionCount%policy.LongEvery == 0 {
				breakLen = policy.LongBreak
			}
			breakEnd := cursor.Add(time.Duration(breakLen) * time.Minute)
			if breakEnd.After(w.End) || int(w.End.Sub(breakEnd)/time.Minute) < minChunk {
				continue
			}
			res.Blocks = append(res.Blocks, PlannedBlock{
				Title:   breakTitle,
				Start:   cursor,
				End:     breakEnd,
				IsBreak: true,
			})
			cursor = breakEnd
		}
	}

	for _, unit := range queue {
		if unit.Remaining > 0 {
			res.Conflicts = append(res.Conflicts, Conflict{
				TaskID:          unit.TaskID,
				RequiredMinutes: unit.RequiredMinutes,
				Shortfall:       unit.Remaining,
			})
		}
	}

	if res.WindowMinutes > 0 {
		res.CapacityUsage = float64(res.PlannedMinutes) / float64(res.WindowMinutes)
	}
	return res
}

// pickUnit selects the next unit index. Normally the queue head; when the
// remaining window is smaller than a full focus session, the highest-ranked
// unit that fits the slot entirely is preferred to avoid a wasted partial
// chunk.
func pickUnit(queue []*WorkUnit, slack, focus int) int {
	if slack >= focus {
		return 0
	}
	for i, u := range queue {
		if u.Remaining <= slack {
			return i
		}
	}
	return 0
}

// requeue inserts a partially scheduled unit behind the last queued unit of
// the same priority band, ahead of any lower band.
func requeue(queue []*WorkUnit, unit *WorkUnit) []*WorkUnit {
	pos := 0
	for i, u := range queue {
		if sameBand(u, unit) {
			pos = i + 1
		} else if bandLess(u, unit) {
			break
		} else {
			pos = i + 1
		}
	}
	queue = append(queue, nil)
	copy(queue[pos+1:], queue[pos:])
	queue[pos] = unit
	return queue
}

func sameBand(a, b *WorkUnit) bool {
	return a.HardDueInRange == b.HardDueInRange && a.Tier == b.Tier
}

// bandLess reports whether a ranks strictly below b.
func bandLess(a, b *WorkUnit) bool {
	if a.HardDueInRange != b.HardDueInRange {
		return b.HardDueInRange
	}
	return a.Tier < b.Tier
}

func minInt(vals ...int) int {
	m := vals[0]
	for _, v := range vals[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
