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

package reconcile

import (
	"fmt"
	"time"

	"github.com/Petlus/UltimateGametimeTracker/pkg/database"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// CounterReconciler turns an externally reported monotonic cumulative total
// into incremental synthetic sessions. Only the delta above the stored
// watermark is ever converted to playtime, so re-polling the same total is a
// no-op and a regressing total (source reset, stale response) is ignored.
type CounterReconciler struct {
	store  WatermarkStore
	ledger SessionWriter
	clock  clockwork.Clock
	// Unit is the duration of one source-native unit, e.g. time.Minute for
	// sources reporting playtime in minutes.
	unit time.Duration
}

// NewCounterReconciler creates a reconciler for a source reporting in the
// given native unit.
func NewCounterReconciler(
	store WatermarkStore,
	ledger SessionWriter,
	unit time.Duration,
	clock clockwork.Clock,
) *CounterReconciler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &CounterReconciler{
		store:  store,
		ledger: ledger,
		unit:   unit,
		clock:  clock,
	}
}

// Reconcile processes one cumulative observation for an entity. It returns
// true when a synthetic session was emitted. An observation at or below the
// watermark emits nothing and leaves the watermark unchanged.
func (r *CounterReconciler) Reconcile(source, entityID, title string, cumulative int64) (bool, error) {
	previous, err := r.store.Watermark(source, entityID)
	if err != nil {
		return false, fmt.Errorf("failed to read watermark: %w", err)
	}

	if cumulative <= previous {
		if cumulative < previous {
			log.Warn().
				Str("source", source).
				Str("entity", entityID).
				Int64("reported", cumulative).
				Int64("watermark", previous).
				Msg("cumulative total regressed, ignoring")
		}
		return false, nil
	}

	delta := time.Duration(cumulative-previous) * r.unit
	now := r.clock.Now()

	record := database.SessionRecord{
		GameName:        title,
		StartTime:       now.Add(-delta),
		EndTime:         now,
		DurationSeconds: int(delta / time.Second),
		Origin:          database.OriginSynthetic,
	}
	if _, err := r.ledger.AddSession(&record); err != nil {
		return false, fmt.Errorf("failed to write synthetic session: %w", err)
	}

	if err := r.store.SetWatermark(source, entityID, cumulative); err != nil {
		return false, fmt.Errorf("failed to advance watermark: %w", err)
	}

	log.Debug().
		Str("source", source).
		Str("title", title).
		Int64("delta_units", cumulative-previous).
		Msg("reconciled cumulative counter")

	return true, nil
}
