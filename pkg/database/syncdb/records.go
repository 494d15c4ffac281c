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

package syncdb

import (
	"encoding/json"
	"fmt"

	"github.com/Petlus/UltimateGametimeTracker/pkg/database"
	bolt "go.etcd.io/bbolt"
)

// Discrete record kinds, each mapping to its own bucket.
const (
	RecordKindRiotMatch = bucketRiotMatches
	RecordKindTFTMatch  = bucketTFTMatches
)

// HasRecord reports whether a discrete record with the given externally
// issued ID is already stored.
func (db *SyncDB) HasRecord(kind, id string) (bool, error) {
	var found bool
	err := db.view(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(kind))
		if bucket == nil {
			return fmt.Errorf("unknown record kind: %s", kind)
		}
		found = bucket.Get([]byte(id)) != nil
		return nil
	})
	return found, err
}

// PutRecord stores a discrete record payload under its ID. A record already
// present is left untouched; discrete records are insert-once.
func (db *SyncDB) PutRecord(kind, id string, payload []byte) error {
	return db.update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(kind))
		if bucket == nil {
			return fmt.Errorf("unknown record kind: %s", kind)
		}
		if bucket.Get([]byte(id)) != nil {
			return nil
		}
		if err := bucket.Put([]byte(id), payload); err != nil {
			return fmt.Errorf("failed to put record %s/%s: %w", kind, id, err)
		}
		return nil
	})
}

// RecordCount returns the number of stored records of a kind.
func (db *SyncDB) RecordCount(kind string) (int, error) {
	var count int
	err := db.view(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(kind))
		if bucket == nil {
			return fmt.Errorf("unknown record kind: %s", kind)
		}
		count = bucket.Stats().KeyN
		return nil
	})
	return count, err
}

// RiotMatches returns all stored League match records.
func (db *SyncDB) RiotMatches() ([]database.RiotMatch, error) {
	list := make([]database.RiotMatch, 0)
	err := db.view(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketRiotMatches)).ForEach(func(_, v []byte) error {
			var match database.RiotMatch
			if err := json.Unmarshal(v, &match); err != nil {
				return fmt.Errorf("corrupt riot match record: %w", err)
			}
			list = append(list, match)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// TFTMatches returns all stored Teamfight Tactics match records.
func (db *SyncDB) TFTMatches() ([]database.TFTMatch, error) {
	list := make([]database.TFTMatch, 0)
	err := db.view(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketTFTMatches)).ForEach(func(_, v []byte) error {
			var match database.TFTMatch
			if err := json.Unmarshal(v, &match); err != nil {
				return fmt.Errorf("corrupt tft match record: %w", err)
			}
			list = append(list, match)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}
