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

// Package syncdb is the durable key-value store backing external source
// reconciliation: monotonic watermarks, collection snapshots, immutable
// discrete records and opaque credentials. Each collection is a bolt bucket
// and every mutation is flushed by the enclosing transaction commit.
package syncdb

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Petlus/UltimateGametimeTracker/pkg/database"
	bolt "go.etcd.io/bbolt"
)

const dbFile = "sync.db"

var buckets = []string{
	bucketWatermarks,
	bucketWoWCharacters,
	bucketSteamGames,
	bucketRiotMatches,
	bucketTFTMatches,
	bucketCredentials,
}

const (
	bucketWatermarks    = "watermarks"
	bucketWoWCharacters = "wow_characters"
	bucketSteamGames    = "steam_games"
	bucketRiotMatches   = "riot_matches"
	bucketTFTMatches    = "tft_matches"
	bucketCredentials   = "credentials"
)

type SyncDB struct {
	bolt *bolt.DB
}

// Open opens (creating if needed) the sync database under dataDir.
func Open(dataDir string) (*SyncDB, error) {
	dbPath := filepath.Join(dataDir, dbFile)
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create directory for database: %w", err)
	}

	boltDB, err := bolt.Open(dbPath, 0o600, &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open sync database: %w", err)
	}

	err = boltDB.Update(func(tx *bolt.Tx) error {
		for _, name := range buckets {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = boltDB.Close()
		return nil, err
	}

	return &SyncDB{bolt: boltDB}, nil
}

func (db *SyncDB) Close() error {
	if db.bolt == nil {
		return nil
	}
	if err := db.bolt.Close(); err != nil {
		return fmt.Errorf("failed to close sync database: %w", err)
	}
	db.bolt = nil
	return nil
}

func (db *SyncDB) view(fn func(tx *bolt.Tx) error) error {
	if db.bolt == nil {
		return database.ErrNotConnected
	}
	if err := db.bolt.View(fn); err != nil {
		return fmt.Errorf("sync database read failed: %w", err)
	}
	return nil
}

func (db *SyncDB) update(fn func(tx *bolt.Tx) error) error {
	if db.bolt == nil {
		return database.ErrNotConnected
	}
	if err := db.bolt.Update(fn); err != nil {
		return fmt.Errorf("sync database write failed: %w", err)
	}
	return nil
}
