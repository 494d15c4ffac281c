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

	bolt "go.etcd.io/bbolt"
)

// Credential returns the opaque credential blob stored for a source, with
// false if none has been stored. The blob is produced by an external login
// flow and is never interpreted here.
func (db *SyncDB) Credential(source string) ([]byte, bool, error) {
	var blob []byte
	err := db.view(func(tx *bolt.Tx) error {
		raw := tx.Bucket([]byte(bucketCredentials)).Get([]byte(source))
		if raw != nil {
			blob = make([]byte, len(raw))
			copy(blob, raw)
		}
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return blob, blob != nil, nil
}

// SetCredential stores an opaque credential blob for a source, replacing any
// previous one.
func (db *SyncDB) SetCredential(source string, blob []byte) error {
	return db.update(func(tx *bolt.Tx) error {
		if err := tx.Bucket([]byte(bucketCredentials)).Put([]byte(source), blob); err != nil {
			return fmt.Errorf("failed to put credential for %s: %w", source, err)
		}
		return nil
	})
}

// DeleteCredential removes the stored credential for a source.
func (db *SyncDB) DeleteCredential(source string) error {
	return db.update(func(tx *bolt.Tx) error {
		if err := tx.Bucket([]byte(bucketCredentials)).Delete([]byte(source)); err != nil {
			return fmt.Errorf("failed to delete credential for %s: %w", source, err)
		}
		return nil
	})
}
