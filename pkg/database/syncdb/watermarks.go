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
	"fmt"
	"strconv"

	bolt "go.etcd.io/bbolt"
)

func watermarkKey(source, entityID string) []byte {
	return []byte(source + "/" + entityID)
}

// Watermark returns the last recorded cumulative value for a (source, entity)
// pair, or 0 when none has been recorded yet.
func (db *SyncDB) Watermark(source, entityID string) (int64, error) {
	var value int64
	err := db.view(func(tx *bolt.Tx) error {
		raw := tx.Bucket([]byte(bucketWatermarks)).Get(watermarkKey(source, entityID))
		if raw == nil {
			return nil
		}
		parsed, err := strconv.ParseInt(string(raw), 10, 64)
		if err != nil {
			return fmt.Errorf("corrupt watermark for %s/%s: %w", source, entityID, err)
		}
		value = parsed
		return nil
	})
	return value, err
}

// SetWatermark records the cumulative value for a (source, entity) pair.
// Callers enforce monotonicity; the store itself just persists the value.
func (db *SyncDB) SetWatermark(source, entityID string, value int64) error {
	return db.update(func(tx *bolt.Tx) error {
		raw := strconv.FormatInt(value, 10)
		if err := tx.Bucket([]byte(bucketWatermarks)).Put(watermarkKey(source, entityID), []byte(raw)); err != nil {
			return fmt.Errorf("failed to put watermark %s/%s: %w", source, entityID, err)
		}
		return nil
	})
}
