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
	"time"

	"github.com/Petlus/UltimateGametimeTracker/pkg/api/models"
	"github.com/Petlus/UltimateGametimeTracker/pkg/api/models/requests"
	"github.com/Petlus/UltimateGametimeTracker/pkg/database"
)

// HandleSessions returns the most recent ledger entries, newest first.
func HandleSessions(env requests.RequestEnv) (any, error) {
	var params models.SessionsParams
	if err := parseOptionalParams(env, &params); err != nil {
		return nil, err
	}

	limit := 0
	if params.Limit != nil {
		limit = *params.Limit
	}

	records, err := env.UserDB.RecentSessions(limit)
	if err != nil {
		return nil, fmt.Errorf("failed to read recent sessions: %w", err)
	}

	sessions := make([]models.SessionInfo, 0, len(records))
	for _, record := range records {
		sessions = append(sessions, models.SessionInfo{
			ID:              record.ID,
			GameName:        record.GameName,
			StartTime:       record.StartTime.Format(time.RFC3339),
			EndTime:         record.EndTime.Format(time.RFC3339),
			Origin:          record.Origin,
			DurationSeconds: record.DurationSeconds,
		})
	}

	return models.SessionsResponse{Sessions: sessions}, nil
}

// HandleAddSession appends a manual session to the ledger. The end time
// defaults to now; the start time is derived from the duration.
func HandleAddSession(env requests.RequestEnv) (any, error) {
	var params models.AddSessionParams
	if err := parseParams(env, &params); err != nil {
		return nil, err
	}

	end := time.Now()
	if params.EndTime != "" {
		parsed, err := time.Parse(time.RFC3339, params.EndTime)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidParams, err)
		}
		end = parsed
	}

	record := database.SessionRecord{
		GameName:        params.GameName,
		StartTime:       end.Add(-time.Duration(params.DurationSeconds) * time.Second),
		EndTime:         end,
		DurationSeconds: params.DurationSeconds,
		Origin:          database.OriginManual,
	}
	if _, err := env.UserDB.AddSession(&record); err != nil {
		return nil, fmt.Errorf("failed to add session: %w", err)
	}

	return models.AddSessionResponse{ID: record.ID}, nil
}

// HandleStats returns the ledger-wide totals.
func HandleStats(env requests.RequestEnv) (any, error) {
	totalSeconds, totalSessions, err := env.UserDB.GlobalStats()
	if err != nil {
		return nil, fmt.Errorf("failed to read stats: %w", err)
	}

	return models.StatsResponse{
		TotalSeconds:  totalSeconds,
		TotalSessions: totalSessions,
	}, nil
}
