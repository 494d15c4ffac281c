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
	"context"

	"github.com/rs/zerolog/log"
)

// Watcher is one sampling pass: enumerate processes, match them to canonical
// titles, advance the session state machine. Registered with the scheduler,
// which guarantees passes never overlap.
type Watcher struct {
	enumerate Enumerator
	matcher   *Matcher
	tracker   *Tracker
}

func NewWatcher(enumerate Enumerator, matcher *Matcher, tracker *Tracker) *Watcher {
	if enumerate == nil {
		enumerate = Enumerate
	}
	return &Watcher{
		enumerate: enumerate,
		matcher:   matcher,
		tracker:   tracker,
	}
}

// Tick runs one sampling pass. An enumeration failure means no new data this
// tick: it is logged and open sessions are left untouched rather than being
// closed on bad information.
func (w *Watcher) Tick(_ context.Context) {
	procs, err := w.enumerate()
	if err != nil {
		log.Error().Err(err).Msg("failed to enumerate processes")
		return
	}

	detected := w.matcher.Detect(procs)
	w.tracker.Observe(detected)
}
