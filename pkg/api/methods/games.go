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

package methods

import (
	"errors"
	"fmt"

	"github.com/Petlus/UltimateGametimeTracker/pkg/api/models"
	"github.com/Petlus/UltimateGametimeTracker/pkg/api/models/requests"
	"github.com/Petlus/UltimateGametimeTracker/pkg/database"
	"github.com/Petlus/UltimateGametimeTracker/pkg/database/userdb"
)

// HandleGames lists the registered custom games.
func HandleGames(env requests.RequestEnv) (any, error) {
	games, err := env.UserDB.CustomGames()
	if err != nil {
		return nil, fmt.Errorf("failed to list custom games: %w", err)
	}

	infos := make([]models.CustomGameInfo, 0, len(games))
	for _, game := range games {
		infos = append(infos, models.CustomGameInfo{
			ID:         game.ID,
			Name:       game.Name,
			Executable: game.Executable,
			Path:       game.Path,
		})
	}

	return models.GamesResponse{Games: infos}, nil
}

// HandleAddGame registers a custom game for process detection.
func HandleAddGame(env requests.RequestEnv) (any, error) {
	var params models.AddGameParams
	if err := parseParams(env, &params); err != nil {
		return nil, err
	}

	game := database.CustomGame{
		Name:       params.Name,
		Executable: params.Executable,
		Path:       params.Path,
	}
	if err := env.UserDB.AddCustomGame(&game); err != nil {
		if errors.Is(err, userdb.ErrDuplicateSignature) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidParams, err)
		}
		return nil, fmt.Errorf("failed to add custom game: %w", err)
	}

	return models.CustomGameInfo{
		ID:         game.ID,
		Name:       game.Name,
		Executable: game.Executable,
		Path:       game.Path,
	}, nil
}

// HandleDeleteGame removes a custom game. Already recorded sessions for the
// game stay in the ledger.
func HandleDeleteGame(env requests.RequestEnv) (any, error) {
	var params models.DeleteGameParams
	if err := parseParams(env, &params); err != nil {
		return nil, err
	}

	if err := env.UserDB.RemoveCustomGame(params.ID); err != nil {
		return nil, fmt.Errorf("failed to remove custom game: %w", err)
	}

	return nil, nil
}
