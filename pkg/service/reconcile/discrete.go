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
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// FetchDetail loads the full payload for one discrete record ID.
type FetchDetail func(ctx context.Context, id string) ([]byte, error)

// Deduplicator ingests externally issued discrete records at most once per
// ID. Detail is only fetched for IDs not already stored; known IDs are
// skipped without a fetch.
type Deduplicator struct {
	store RecordStore
}

func NewDeduplicator(store RecordStore) *Deduplicator {
	return &Deduplicator{store: store}
}

// Ingest filters candidate IDs against the store and fetches and stores
// detail for the unknown ones. A failure on one ID is logged and does not
// abort the rest of the batch. Returns the number of records added.
func (d *Deduplicator) Ingest(ctx context.Context, kind string, ids []string, fetch FetchDetail) (int, error) {
	added := 0

	for _, id := range ids {
		known, err := d.store.HasRecord(kind, id)
		if err != nil {
			return added, fmt.Errorf("failed to check record %s/%s: %w", kind, id, err)
		}
		if known {
			continue
		}

		payload, err := fetch(ctx, id)
		if err != nil {
			log.Warn().Err(err).Str("kind", kind).Str("id", id).Msg("failed to fetch record detail")
			continue
		}
		if payload == nil {
			// The record does not involve this account, nothing to store.
			continue
		}

		if err := d.store.PutRecord(kind, id, payload); err != nil {
			return added, fmt.Errorf("failed to store record %s/%s: %w", kind, id, err)
		}
		added++
	}

	if added > 0 {
		log.Info().Str("kind", kind).Int("added", added).Msg("ingested new records")
	}

	return added, nil
}
