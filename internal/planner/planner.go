// Package planner is the pure scheduling engine: availability resolution,
// candidate selection and block packing. It has no persistence or transport
// dependencies and is deterministic for identical inputs, which is what lets
// preview run lock-free and commit recompute the same plan it previewed.
package planner

import (
	"time"

	"github.com/google/uuid"
)

// Window is a contiguous free interval for an owner on a single date.
// Windows produced by ResolveWindows are disjoint within a day and sorted
// chronologically.
type Window struct {
	Date  time.Time
	Start time.Time
	End   time.Time
}

func (w Window) Minutes() int {
	return int(w.End.Sub(w.Start) / time.Minute)
}

// WorkUnit is the ephemeral scheduling record derived from a task. Remaining
// is mutated only within a single packing run.
type WorkUnit struct {
	TaskID          uuid.UUID
	Title           string
	Remaining       int
	RequiredMinutes int
	Tier            int
	HardDueInRange  bool
	Due             *time.Time
	Energy          string
}

// Policy is the break cadence configuration. Focus sessions run up to Focus
// minutes, separated by ShortBreak minutes, with a LongBreak after every
// LongEvery-th session, capped at MaxDailyFocus task minutes per day.
type Policy struct {
	Focus         int
	ShortBreak    int
	LongBreak     int
	LongEvery     int
	MaxDailyFocus int
}

func DefaultPolicy() Policy {
	return Policy{
		Focus:         25,
		ShortBreak:    5,
		LongBreak:     15,
		LongEvery:     4,
		MaxDailyFocus: 480,
	}
}

// PlannedBlock is a proposed (not yet persisted) time block.
type PlannedBlock struct {
	TaskID  *uuid.UUID `json:"task_id"`
	Title   string     `json:"title"`
	Start   time.Time  `json:"start"`
	End     time.Time  `json:"end"`
	IsBreak bool       `json:"is_break"`
}

func (b PlannedBlock) Minutes() int {
	return int(b.End.Sub(b.Start) / time.Minute)
}

// Conflict reports a work unit that could not be fully placed.
type Conflict struct {
	TaskID          uuid.UUID `json:"task_id"`
	RequiredMinutes int       `json:"required_minutes"`
	Shortfall       int       `json:"shortfall"`
}

// Result is the outcome of one packing run.
type Result struct {
	Blocks         []PlannedBlock `json:"blocks"`
	Conflicts      []Conflict     `json:"conflicts"`
	CapacityUsage  float64        `json:"capacity_usage"`
	WindowMinutes  int            `json:"window_minutes"`
	PlannedMinutes int            `json:"planned_minutes"`
}
