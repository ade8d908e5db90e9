package sched

import (
	"context"
	"log/slog"
	"time"
)

// Scheduler drives wall-clock triggers off a fixed ticker, one minute by
// default. Callbacks own their error handling: a failed run is logged by
// the callback and the loop moves on, so one bad cycle never stops the
// next one.
type Scheduler struct {
	log      *slog.Logger
	loc      *time.Location
	now      func() time.Time
	every    time.Duration
	triggers []*trigger
}

type trigger struct {
	name      string
	gate      func(time.Time) bool
	run       func(context.Context)
	daily     bool
	hour      int
	minute    int
	lastFired string // local date of the last daily fire
}

func New(logger *slog.Logger, loc *time.Location, every time.Duration) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	if loc == nil {
		loc = time.UTC
	}
	if every <= 0 {
		every = time.Minute
	}
	return &Scheduler{
		log:   logger,
		loc:   loc,
		now:   time.Now,
		every: every,
	}
}

// Every fires run on each tick for which gate holds.
func (s *Scheduler) Every(name string, gate func(time.Time) bool, run func(context.Context)) {
	s.triggers = append(s.triggers, &trigger{name: name, gate: gate, run: run})
}

// DailyAt fires run once per local day, on the first tick at or after
// hh:mm for which gate holds. A tick that lands late (or a process started
// after the trigger time) still fires, just once.
func (s *Scheduler) DailyAt(name string, hour, minute int, gate func(time.Time) bool, run func(context.Context)) {
	s.triggers = append(s.triggers, &trigger{
		name:   name,
		gate:   gate,
		run:    run,
		daily:  true,
		hour:   hour,
		minute: minute,
	})
}

// Run blocks until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.every)
	defer ticker.Stop()

	s.log.Info("scheduler started", "triggers", len(s.triggers), "tz", s.loc.String())
	for {
		select {
		case <-ctx.Done():
			s.log.Info("scheduler stopped")
			return
		case <-ticker.C:
			s.tick(ctx, s.now())
		}
	}
}

func (s *Scheduler) tick(ctx context.Context, now time.Time) {
	now = now.In(s.loc)
	for _, t := range s.triggers {
		if t.gate != nil && !t.gate(now) {
			continue
		}
		if t.daily {
			target := time.Date(now.Year(), now.Month(), now.Day(), t.hour, t.minute, 0, 0, s.loc)
			if now.Before(target) {
				continue
			}
			day := now.Format("2006-01-02")
			if t.lastFired == day {
				continue
			}
			t.lastFired = day
		}
		s.log.Debug("trigger fired", "name", t.name)
		t.run(ctx)
	}
}

// Weekday reports whether t falls Monday through Friday.
func Weekday(t time.Time) bool {
	wd := t.Weekday()
	return wd >= time.Monday && wd <= time.Friday
}

// Window builds a gate holding on weekdays between two times of day,
// inclusive on both ends.
func Window(startHour, startMin, endHour, endMin int) func(time.Time) bool {
	return func(now time.Time) bool {
		if !Weekday(now) {
			return false
		}
		minutes := now.Hour()*60 + now.Minute()
		return minutes >= startHour*60+startMin && minutes <= endHour*60+endMin
	}
}
