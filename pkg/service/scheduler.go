// Ultimate Gametime Tracker
// Copyright (c) 2026 The Ultimate Gametime Tracker Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Ultimate Gametime Tracker.
//
// Ultimate Gametime Tracker is free software: you can redistribute it and/or
// modify it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Ultimate Gametime Tracker is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Ultimate Gametime Tracker.  If not, see <http://www.gnu.org/licenses/>.

package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// Task is one unit of periodic work. The context is cancelled on scheduler
// shutdown.
type Task func(ctx context.Context)

type registration struct {
	fn        Task
	name      string
	interval  time.Duration
	immediate bool
	busy      atomic.Bool
}

// Scheduler runs registered tasks on independent fixed intervals. Each
// registration is mutually exclusive only against itself: a tick firing
// while a previous invocation of the same task is still running is dropped,
// not queued. Distinct tasks may run interleaved.
type Scheduler struct {
	clock clockwork.Clock
	tasks []*registration
	wg    sync.WaitGroup
}

func NewScheduler(clock clockwork.Clock) *Scheduler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Scheduler{clock: clock}
}

// Register adds a task to run every interval. When immediate is set the task
// also runs once as soon as the scheduler starts. Must be called before
// Start.
func (s *Scheduler) Register(name string, interval time.Duration, immediate bool, fn Task) {
	s.tasks = append(s.tasks, &registration{
		name:      name,
		interval:  interval,
		immediate: immediate,
		fn:        fn,
	})
}

// Start launches one ticker goroutine per registration. It returns
// immediately; cancel the context to stop.
func (s *Scheduler) Start(ctx context.Context) {
	for _, reg := range s.tasks {
		s.wg.Add(1)
		go s.run(ctx, reg)
	}
}

// Wait blocks until all ticker goroutines have exited after cancellation.
// In-flight task invocations are not interrupted beyond context
// cancellation.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

func (s *Scheduler) run(ctx context.Context, reg *registration) {
	defer s.wg.Done()

	log.Debug().Str("task", reg.name).Dur("interval", reg.interval).Msg("scheduler task started")

	if reg.immediate {
		s.fire(ctx, reg)
	}

	ticker := s.clock.NewTicker(reg.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.Chan():
			s.fire(ctx, reg)
		case <-ctx.Done():
			log.Debug().Str("task", reg.name).Msg("scheduler task stopped")
			return
		}
	}
}

// fire runs one invocation in its own goroutine guarded by the busy flag, so
// a slow invocation causes later ticks to be skipped instead of piling up.
func (s *Scheduler) fire(ctx context.Context, reg *registration) {
	if !reg.busy.CompareAndSwap(false, true) {
		log.Debug().Str("task", reg.name).Msg("previous run still busy, skipping tick")
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer reg.busy.Store(false)
		reg.fn(ctx)
	}()
}
