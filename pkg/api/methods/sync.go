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
	"github.com/Petlus/UltimateGametimeTracker/pkg/sync/steam"
)

// ErrSyncUnavailable is returned for sync methods the service was started
// without.
var ErrSyncUnavailable = errors.New("sync source not available")

// HandleRiotLink resolves a Riot ID and stores the linked account.
func HandleRiotLink(env requests.RequestEnv) (any, error) {
	var params models.RiotLinkParams
	if err := parseParams(env, &params); err != nil {
		return nil, err
	}
	if env.Syncs.LinkRiot == nil {
		return nil, ErrSyncUnavailable
	}

	if err := env.Syncs.LinkRiot(env.Ctx, params.RiotID, params.APIKey, params.Region); err != nil {
		return nil, fmt.Errorf("failed to link riot account: %w", err)
	}
	return nil, nil
}

// HandleRiotSync triggers an immediate match history sync.
func HandleRiotSync(env requests.RequestEnv) (any, error) {
	if env.Syncs.Riot == nil {
		return nil, ErrSyncUnavailable
	}

	added, err := env.Syncs.Riot(env.Ctx)
	if err != nil {
		return nil, fmt.Errorf("riot sync failed: %w", err)
	}
	return models.SyncResponse{Added: added}, nil
}

// HandleSteamSync triggers an immediate owned-games sync.
func HandleSteamSync(env requests.RequestEnv) (any, error) {
	if env.Syncs.Steam == nil {
		return nil, ErrSyncUnavailable
	}

	added, err := env.Syncs.Steam(env.Ctx)
	if err != nil {
		return nil, fmt.Errorf("steam sync failed: %w", err)
	}
	return models.SyncResponse{Added: added}, nil
}

// HandleLaunchersSync triggers an immediate launcher playtime sync.
func HandleLaunchersSync(env requests.RequestEnv) (any, error) {
	if env.Syncs.Launchers == nil {
		return nil, ErrSyncUnavailable
	}

	added, err := env.Syncs.Launchers(env.Ctx)
	if err != nil {
		return nil, fmt.Errorf("launcher sync failed: %w", err)
	}
	return models.SyncResponse{Added: added}, nil
}

// HandleSteamAccountAdd links a Steam account, either directly by ID or from
// an OpenID login return URL.
func HandleSteamAccountAdd(env requests.RequestEnv) (any, error) {
	var params models.SteamAccountAddParams
	if err := parseParams(env, &params); err != nil {
		return nil, err
	}

	accountID := params.AccountID
	if accountID == "" {
		if params.ReturnURL == "" {
			return nil, fmt.Errorf("%w: accountId or returnUrl required", ErrInvalidParams)
		}
		parsed, err := steam.ParseOpenIDReturn(params.ReturnURL)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidParams, err)
		}
		accountID = parsed
	}

	if params.APIKey != "" {
		if err := env.Config.SetSteamAPIKey(params.APIKey); err != nil {
			return nil, fmt.Errorf("failed to save steam api key: %w", err)
		}
	}
	if err := env.Config.AddSteamAccountID(accountID); err != nil {
		return nil, fmt.Errorf("failed to link steam account: %w", err)
	}

	return nil, nil
}

// HandleSteamAccountDelete unlinks a Steam account. The stored collection is
// rebuilt on the next sync.
func HandleSteamAccountDelete(env requests.RequestEnv) (any, error) {
	var params models.SteamAccountDeleteParams
	if err := parseParams(env, &params); err != nil {
		return nil, err
	}

	if err := env.Config.RemoveSteamAccountID(params.AccountID); err != nil {
		return nil, fmt.Errorf("failed to unlink steam account: %w", err)
	}
	return nil, nil
}
