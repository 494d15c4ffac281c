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

package userdb

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Petlus/UltimateGametimeTracker/pkg/database"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// AddSession appends a finalized session record to the ledger and returns its
// DBID. Records are immutable once written; there is no update path.
func (db *UserDB) AddSession(record *database.SessionRecord) (int64, error) {
	if db.sql == nil {
		return 0, database.ErrNotConnected
	}
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	return sqlAddSession(db.ctx, db.sql, record)
}

// RecentSessions returns the most recent session records, newest first.
func (db *UserDB) RecentSessions(limit int) ([]database.SessionRecord, error) {
	if db.sql == nil {
		return nil, database.ErrNotConnected
	}
	return sqlRecentSessions(db.ctx, db.sql, limit)
}

// SessionTotals returns the summed duration in seconds per game name across
// the whole ledger, every origin included.
func (db *UserDB) SessionTotals() (map[string]int64, error) {
	if db.sql == nil {
		return nil, database.ErrNotConnected
	}
	return sqlSessionTotals(db.ctx, db.sql)
}

// GlobalStats returns the total tracked seconds and session count.
func (db *UserDB) GlobalStats() (totalSeconds int64, totalSessions int, err error) {
	if db.sql == nil {
		return 0, 0, database.ErrNotConnected
	}
	return sqlGlobalStats(db.ctx, db.sql)
}

/*
 * Internal SQL functions
 */

func sqlAddSession(ctx context.Context, db *sql.DB, record *database.SessionRecord) (int64, error) {
	stmt, err := db.PrepareContext(ctx, `
		INSERT INTO Sessions(
			ID, GameName, StartTime, EndTime, DurationSeconds, Origin, CreatedAt
		) VALUES (?, ?, ?, ?, ?, ?, ?);
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare session insert statement: %w", err)
	}
	defer func() {
		if closeErr := stmt.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("failed to close sql statement")
		}
	}()

	result, err := stmt.ExecContext(ctx,
		record.ID,
		record.GameName,
		record.StartTime.Unix(),
		record.EndTime.Unix(),
		record.DurationSeconds,
		record.Origin,
		time.Now().Unix(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to execute session insert: %w", err)
	}

	dbid, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID: %w", err)
	}

	return dbid, nil
}

func sqlRecentSessions(ctx context.Context, db *sql.DB, limit int) ([]database.SessionRecord, error) {
	if limit <= 0 {
		limit = 25
	}
	if limit > 100 {
		limit = 100
	}

	list := make([]database.SessionRecord, 0, limit)

	q, err := db.PrepareContext(ctx, `
		SELECT DBID, ID, GameName, StartTime, EndTime, DurationSeconds, Origin
		FROM Sessions
		ORDER BY DBID DESC
		LIMIT ?;
	`)
	if err != nil {
		return list, fmt.Errorf("failed to prepare recent sessions statement: %w", err)
	}
	defer func() {
		if closeErr := q.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("failed to close sql statement")
		}
	}()

	rows, err := q.QueryContext(ctx, limit)
	if err != nil {
		return list, fmt.Errorf("failed to query recent sessions: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("failed to close rows")
		}
	}()

	for rows.Next() {
		var record database.SessionRecord
		var startUnix, endUnix int64

		err = rows.Scan(
			&record.DBID,
			&record.ID,
			&record.GameName,
			&startUnix,
			&endUnix,
			&record.DurationSeconds,
			&record.Origin,
		)
		if err != nil {
			return list, fmt.Errorf("failed to scan session row: %w", err)
		}

		record.StartTime = time.Unix(startUnix, 0)
		record.EndTime = time.Unix(endUnix, 0)

		list = append(list, record)
	}

	if err = rows.Err(); err != nil {
		return list, fmt.Errorf("error iterating session rows: %w", err)
	}

	return list, nil
}

func sqlSessionTotals(ctx context.Context, db *sql.DB) (map[string]int64, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT GameName, SUM(DurationSeconds)
		FROM Sessions
		GROUP BY GameName;
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query session totals: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("failed to close rows")
		}
	}()

	totals := make(map[string]int64)
	for rows.Next() {
		var name string
		var total int64
		if err := rows.Scan(&name, &total); err != nil {
			return nil, fmt.Errorf("failed to scan session total row: %w", err)
		}
		totals[name] = total
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating session total rows: %w", err)
	}

	return totals, nil
}

func sqlGlobalStats(ctx context.Context, db *sql.DB) (int64, int, error) {
	row := db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(DurationSeconds), 0), COUNT(*)
		FROM Sessions;
	`)

	var totalSeconds int64
	var totalSessions int
	if err := row.Scan(&totalSeconds, &totalSessions); err != nil {
		return 0, 0, fmt.Errorf("failed to scan global stats: %w", err)
	}

	return totalSeconds, totalSessions, nil
}
