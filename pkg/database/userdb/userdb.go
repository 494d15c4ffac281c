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

// Package userdb is the durable sqlite store for the append-only session
// ledger and the user's custom game registry.
package userdb

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Petlus/UltimateGametimeTracker/pkg/database"
	_ "github.com/mattn/go-sqlite3"
)

const (
	dbFile           = "user.db"
	sqliteConnParams = "?_journal_mode=WAL&_synchronous=FULL&_busy_timeout=5000"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

type UserDB struct {
	sql *sql.DB
	ctx context.Context
}

// Open opens (creating if needed) the user database under dataDir and runs
// any pending migrations.
func Open(ctx context.Context, dataDir string) (*UserDB, error) {
	dbPath := filepath.Join(dataDir, dbFile)
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create directory for database: %w", err)
	}

	sqlInstance, err := sql.Open("sqlite3", dbPath+sqliteConnParams)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db := &UserDB{sql: sqlInstance, ctx: ctx}
	if err := db.MigrateUp(); err != nil {
		_ = sqlInstance.Close()
		return nil, err
	}
	return db, nil
}

// OpenForTesting wraps an existing sql connection, running migrations on it.
func OpenForTesting(ctx context.Context, sqlInstance *sql.DB) (*UserDB, error) {
	db := &UserDB{sql: sqlInstance, ctx: ctx}
	if err := db.MigrateUp(); err != nil {
		return nil, err
	}
	return db, nil
}

func (db *UserDB) MigrateUp() error {
	if db.sql == nil {
		return database.ErrNotConnected
	}
	if err := database.MigrateUp(db.sql, migrationFiles, "migrations"); err != nil {
		return fmt.Errorf("failed to run user database migrations: %w", err)
	}
	return nil
}

func (db *UserDB) Vacuum() error {
	if db.sql == nil {
		return database.ErrNotConnected
	}
	if _, err := db.sql.ExecContext(db.ctx, "vacuum;"); err != nil {
		return fmt.Errorf("failed to vacuum database: %w", err)
	}
	return nil
}

func (db *UserDB) Close() error {
	if db.sql == nil {
		return nil
	}
	if err := db.sql.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	db.sql = nil
	return nil
}
