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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRecordStore struct {
	records map[string][]byte
}

func newFakeRecordStore() *fakeRecordStore {
	return &fakeRecordStore{records: make(map[string][]byte)}
}

func (s *fakeRecordStore) HasRecord(kind, id string) (bool, error) {
	_, ok := s.records[kind+"/"+id]
	return ok, nil
}

func (s *fakeRecordStore) PutRecord(kind, id string, payload []byte) error {
	key := kind + "/" + id
	if _, ok := s.records[key]; ok {
		return nil
	}
	s.records[key] = payload
	return nil
}

func TestDeduplicatorIngestNewRecords(t *testing.T) {
	t.Parallel()

	store := newFakeRecordStore()
	dedup := NewDeduplicator(store)

	fetched := 0
	added, err := dedup.Ingest(context.Background(), "matches", []string{"m1", "m2"},
		func(_ context.Context, id string) ([]byte, error) {
			fetched++
			return []byte(`{"id":"` + id + `"}`), nil
		})

	require.NoError(t, err)
	assert.Equal(t, 2, added)
	assert.Equal(t, 2, fetched)
	assert.Len(t, store.records, 2)
}

func TestDeduplicatorSkipsKnownWithoutFetch(t *testing.T) {
	t.Parallel()

	store := newFakeRecordStore()
	store.records["matches/m1"] = []byte(`{}`)
	dedup := NewDeduplicator(store)

	fetched := 0
	added, err := dedup.Ingest(context.Background(), "matches", []string{"m1", "m2"},
		func(_ context.Context, _ string) ([]byte, error) {
			fetched++
			return []byte(`{}`), nil
		})

	require.NoError(t, err)
	assert.Equal(t, 1, added)
	assert.Equal(t, 1, fetched)
}

func TestDeduplicatorRepeatIngestIsNoOp(t *testing.T) {
	t.Parallel()

	store := newFakeRecordStore()
	dedup := NewDeduplicator(store)
	ids := []string{"m1", "m2", "m3"}
	fetch := func(_ context.Context, _ string) ([]byte, error) {
		return []byte(`{}`), nil
	}

	added, err := dedup.Ingest(context.Background(), "matches", ids, fetch)
	require.NoError(t, err)
	assert.Equal(t, 3, added)

	added, err = dedup.Ingest(context.Background(), "matches", ids, fetch)
	require.NoError(t, err)
	assert.Equal(t, 0, added)
	assert.Len(t, store.records, 3)
}

func TestDeduplicatorFetchFailureSkipsOnlyThatID(t *testing.T) {
	t.Parallel()

	store := newFakeRecordStore()
	dedup := NewDeduplicator(store)

	added, err := dedup.Ingest(context.Background(), "matches", []string{"bad", "good"},
		func(_ context.Context, id string) ([]byte, error) {
			if id == "bad" {
				return nil, errors.New("rate limited")
			}
			return []byte(`{}`), nil
		})

	require.NoError(t, err)
	assert.Equal(t, 1, added)

	// The failed ID is still unknown and gets retried next time.
	known, err := store.HasRecord("matches", "bad")
	require.NoError(t, err)
	assert.False(t, known)
}

func TestDeduplicatorNilPayloadNotStored(t *testing.T) {
	t.Parallel()

	store := newFakeRecordStore()
	dedup := NewDeduplicator(store)

	added, err := dedup.Ingest(context.Background(), "matches", []string{"m1"},
		func(_ context.Context, _ string) ([]byte, error) {
			return nil, nil
		})

	require.NoError(t, err)
	assert.Equal(t, 0, added)
	assert.Empty(t, store.records)
}
