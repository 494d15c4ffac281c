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
	"strconv"

	"github.com/Petlus/UltimateGametimeTracker/pkg/database"
	bolt "go.etcd.io/bbolt"
)

// WoWCharacters returns the stored character snapshot collection.
func (db *SyncDB) WoWCharacters() ([]database.WoWCharacter, error) {
	list := make([]database.WoWCharacter, 0)
	err := db.view(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketWoWCharacters)).ForEach(func(_, v []byte) error {
			var char database.WoWCharacter
			if err := json.Unmarshal(v, &char); err != nil {
				return fmt.Errorf("corrupt character snapshot: %w", err)
			}
			list = append(list, char)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// ReplaceWoWCharacters overwrites the stored character collection with the
// merged result of a scan. Callers are responsible for merging; the previous
// collection is fully replaced in one transaction.
func (db *SyncDB) ReplaceWoWCharacters(chars []database.WoWCharacter) error {
	return db.update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket([]byte(bucketWoWCharacters)); err != nil {
			return fmt.Errorf("failed to clear character bucket: %w", err)
		}
		bucket, err := tx.CreateBucket([]byte(bucketWoWCharacters))
		if err != nil {
			return fmt.Errorf("failed to recreate character bucket: %w", err)
		}
		for i := range chars {
			data, err := json.Marshal(&chars[i])
			if err != nil {
				return fmt.Errorf("failed to marshal character: %w", err)
			}
			if err := bucket.Put([]byte(chars[i].Key()), data); err != nil {
				return fmt.Errorf("failed to put character: %w", err)
			}
		}
		return nil
	})
}

// SteamGames returns the stored owned-games collection.
func (db *SyncDB) SteamGames() ([]database.SteamGame, error) {
	list := make([]database.SteamGame, 0)
	err := db.view(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketSteamGames)).ForEach(func(_, v []byte) error {
			var game database.SteamGame
			if err := json.Unmarshal(v, &game); err != nil {
				return fmt.Errorf("corrupt steam game entry: %w", err)
			}
			list = append(list, game)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// ReplaceSteamGames overwrites the owned-games collection with the result of
// a full sync across all linked accounts.
func (db *SyncDB) ReplaceSteamGames(games []database.SteamGame) error {
	return db.update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket([]byte(bucketSteamGames)); err != nil {
			return fmt.Errorf("failed to clear steam bucket: %w", err)
		}
		bucket, err := tx.CreateBucket([]byte(bucketSteamGames))
		if err != nil {
			return fmt.Errorf("failed to recreate steam bucket: %w", err)
		}
		for i := range games {
			data, err := json.Marshal(&games[i])
			if err != nil {
				return fmt.Errorf("failed to marshal steam game: %w", err)
			}
			key := strconv.Itoa(games[i].AppID)
			if err := bucket.Put([]byte(key), data); err != nil {
				return fmt.Errorf("failed to put steam game: %w", err)
			}
		}
		return nil
	})
}
