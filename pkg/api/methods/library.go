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
	"github.com/Petlus/UltimateGametimeTracker/pkg/service/library"
)

// HandleLibrary returns the ranked per-title playtime view.
func HandleLibrary(env requests.RequestEnv) (any, error) {
	var params models.LibraryParams
	if err := parseOptionalParams(env, &params); err != nil {
		return nil, err
	}

	opts := library.Options{
		MinSeconds:     env.Config.LibraryMinSeconds(),
		ExcludedTitles: env.Config.LibraryExcludedTitles(),
	}
	if params.MinSeconds != nil {
		opts.MinSeconds = *params.MinSeconds
	}

	games, err := env.Library.Build(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to build library: %w", err)
	}

	return models.LibraryResponse{
		Games: games,
		Total: len(games),
	}, nil
}
