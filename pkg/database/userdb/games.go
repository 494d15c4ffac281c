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
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Petlus/UltimateGametimeTracker/pkg/database"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ErrDuplicateSignature is returned when a custom game's executable signature
// collides with an already registered one.
var ErrDuplicateSignature = errors.New("a game with this executable is already registered")

// AddCustomGame registers a user-defined game identity. The executable name
// and path are normalized to lowercase before storage so detection matching
// stays case-insensitive.
func (db *UserDB) AddCustomGame(game *database.CustomGame) error {
	if db.sql == nil {
		return database.ErrNotConnected
	}
	if game.ID == "" {
		game.ID = uuid.NewString()
	}
	game.Executable = strings.ToLower(game.Executable)
	game.Path = strings.ToLower(game.Path)
	return sqlAddCustomGame(db.ctx, db.sql, game)
}

// RemoveCustomGame deletes a custom game registration by ID.
func (db *UserDB) RemoveCustomGame(id string) error {
	if db.sql == nil {
		return database.ErrNotConnected
	}
	return sqlRemoveCustomGame(db.ctx, db.sql, id)
}

// CustomGames returns all registered custom game identities.
func (db *UserDB) CustomGames() ([]database.CustomGame, error) {
	if db.sql == nil {
		return nil, database.ErrNotConnected
	}
	return sqlCustomGames(db.ctx, db.sql)
}

/*
 * Internal SQL functions
 */

func sqlAddCustomGame(ctx context.Context, db *sql.DB, game *database.CustomGame) error {
	row := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM CustomGames WHERE Executable = ?;`, game.Executable)

	var count int
	if err := row.Scan(&count); err != nil {
		return fmt.Errorf("failed to check for duplicate executable: %w", err)
	}
	if count > 0 {
		return ErrDuplicateSignature
	}

	stmt, err := db.PrepareContext(ctx, `
		INSERT INTO CustomGames(ID, Name, Executable, Path, CreatedAt)
		VALUES (?, ?, ?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare custom game insert statement: %w", err)
	}
	defer func() {
		if closeErr := stmt.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("failed to close sql statement")
		}
	}()

	_, err = stmt.ExecContext(ctx,
		game.ID,
		game.Name,
		game.Executable,
		game.Path,
		time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to execute custom game insert: %w", err)
	}

	return nil
}

func sqlRemoveCustomGame(ctx context.Context, db *sql.DB, id string) error {
	stmt, err := db.PrepareContext(ctx, `DELETE FROM CustomGames WHERE ID = ?;`)
	if err != nil {
		return fmt.Errorf("failed to prepare custom game delete statement: %w", err)
	}
	defer func() {
		if closeErr := stmt.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("failed to close sql statement")
		}
	}()

	if _, err := stmt.ExecContext(ctx, id); err != nil {
		return fmt.Errorf("failed to execute custom game delete: %w", err)
	}
	return nil
}

func sqlCustomGames(ctx context.Context, db *sql.DB) ([]database.CustomGame, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT ID, Name, Executable, Path
		FROM CustomGames
		ORDER BY Name;
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query custom games: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("failed to close rows")
		}
	}()

	list := make([]database.CustomGame, 0)
	for rows.Next() {
		var game database.CustomGame
		if err := rows.Scan(&game.ID, &game.Name, &game.Executable, &game.Path); err != nil {
			return nil, fmt.Errorf("failed to scan custom game row: %w", err)
		}
		list = append(list, game)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating custom game rows: %w", err)
	}

	return list, nil
}
