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
	"fmt"

	"github.com/Petlus/UltimateGametimeTracker/pkg/api/models"
	"github.com/Petlus/UltimateGametimeTracker/pkg/api/models/requests"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// HandleSettings returns the current user-facing settings. Secrets (API
// keys, tokens) are never included.
func HandleSettings(env requests.RequestEnv) (any, error) {
	return models.SettingsResponse{
		SampleInterval:    env.Config.SampleInterval().String(),
		LibraryMinSeconds: env.Config.LibraryMinSeconds(),
		ExcludedTitles:    env.Config.LibraryExcludedTitles(),
		RiotRegion:        env.Config.RiotRegion(),
		RiotLinked:        env.Config.RiotPUUID() != "",
		SteamAccountIDs:   env.Config.SteamAccountIDs(),
		WoWInstallPath:    env.Config.WoWInstallPath(),
		DebugLogging:      env.Config.DebugLogging(),
	}, nil
}

// HandleSettingsUpdate applies a partial settings update. Only fields present
// in the params change.
func HandleSettingsUpdate(env requests.RequestEnv) (any, error) {
	var params models.UpdateSettingsParams
	if err := parseParams(env, &params); err != nil {
		return nil, err
	}

	if params.WoWInstallPath != nil {
		if err := env.Config.SetWoWInstallPath(*params.WoWInstallPath); err != nil {
			return nil, fmt.Errorf("failed to update wow install path: %w", err)
		}
	}

	if params.DebugLogging != nil {
		if err := env.Config.SetDebugLogging(*params.DebugLogging); err != nil {
			return nil, fmt.Errorf("failed to update debug logging: %w", err)
		}
		if *params.DebugLogging {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		} else {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
		}
		log.Info().Bool("enabled", *params.DebugLogging).Msg("debug logging changed")
	}

	return nil, nil
}
