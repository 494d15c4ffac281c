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

package processwatch

import (
	"math"
	"time"

	"github.com/Petlus/UltimateGametimeTracker/pkg/database"
	"github.com/Petlus/UltimateGametimeTracker/pkg/helpers/syncutil"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// SessionWriter appends finalized records to the session ledger.
type SessionWriter interface {
	AddSession(record *database.SessionRecord) (int64, error)
}

// StopHook runs after a title's session ends, e.g. to trigger a match
// history sync. Hooks run asynchronously and best-effort; a failing hook
// never affects the emitted session record.
type StopHook func() error

// ActiveSession is the ephemeral state of a currently detected title.
type ActiveSession struct {
	StartTime time.Time
	GameName  string
}

// Tracker is the presence state machine. Per title it is either inactive or
// active; the first tick a title appears opens a session, the first tick it
// is absent finalizes one. A title that vanishes for a single tick and
// returns is recorded as two separate sessions with a gap.
type Tracker struct {
	ledger    SessionWriter
	clock     clockwork.Clock
	active    map[string]ActiveSession
	stopHooks map[string]StopHook
	mu        syncutil.Mutex
}

func NewTracker(ledger SessionWriter, clock clockwork.Clock) *Tracker {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Tracker{
		ledger:    ledger,
		clock:     clock,
		active:    make(map[string]ActiveSession),
		stopHooks: make(map[string]StopHook),
	}
}

// SetStopHook registers a hook invoked whenever the given title's session
// ends.
func (t *Tracker) SetStopHook(gameName string, hook StopHook) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopHooks[gameName] = hook
}

// Observe advances the state machine with the set of titles detected this
// tick, opening sessions for newly present titles and finalizing sessions
// for titles no longer present.
func (t *Tracker) Observe(detected []string) {
	now := t.clock.Now()

	present := make(map[string]struct{}, len(detected))
	for _, title := range detected {
		present[title] = struct{}{}
	}

	t.mu.Lock()

	for _, title := range detected {
		if _, open := t.active[title]; !open {
			log.Info().Str("game", title).Msg("game started")
			t.active[title] = ActiveSession{GameName: title, StartTime: now}
		}
	}

	var stopped []ActiveSession
	for title, session := range t.active {
		if _, stillHere := present[title]; !stillHere {
			stopped = append(stopped, session)
			delete(t.active, title)
		}
	}
	hooks := make([]StopHook, 0, len(stopped))
	for _, session := range stopped {
		if hook, ok := t.stopHooks[session.GameName]; ok {
			hooks = append(hooks, hook)
		}
	}

	t.mu.Unlock()

	for _, session := range stopped {
		t.finalize(session, now)
	}
	for _, hook := range hooks {
		go func(hook StopHook) {
			if err := hook(); err != nil {
				log.Error().Err(err).Msg("session stop hook failed")
			}
		}(hook)
	}
}

// Flush finalizes every open session, for graceful shutdown. Stop hooks are
// not invoked.
func (t *Tracker) Flush() {
	now := t.clock.Now()

	t.mu.Lock()
	open := make([]ActiveSession, 0, len(t.active))
	for title, session := range t.active {
		open = append(open, session)
		delete(t.active, title)
	}
	t.mu.Unlock()

	for _, session := range open {
		t.finalize(session, now)
	}
}

// ActiveSessions returns a copy of the currently open sessions.
func (t *Tracker) ActiveSessions() []ActiveSession {
	t.mu.Lock()
	defer t.mu.Unlock()

	list := make([]ActiveSession, 0, len(t.active))
	for _, session := range t.active {
		list = append(list, session)
	}
	return list
}

func (t *Tracker) finalize(session ActiveSession, endTime time.Time) {
	duration := int(math.Round(endTime.Sub(session.StartTime).Seconds()))

	record := database.SessionRecord{
		GameName:        session.GameName,
		StartTime:       session.StartTime,
		EndTime:         endTime,
		DurationSeconds: duration,
		Origin:          database.OriginDetected,
	}

	if _, err := t.ledger.AddSession(&record); err != nil {
		log.Error().Err(err).Str("game", session.GameName).Msg("failed to write session record")
		return
	}

	log.Info().
		Str("game", session.GameName).
		Int("duration_s", duration).
		Msg("game stopped")
}
