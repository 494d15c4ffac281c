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

package requests

import (
	"context"
	"encoding/json"

	"github.com/Petlus/UltimateGametimeTracker/pkg/config"
	"github.com/Petlus/UltimateGametimeTracker/pkg/database/syncdb"
	"github.com/Petlus/UltimateGametimeTracker/pkg/database/userdb"
	"github.com/Petlus/UltimateGametimeTracker/pkg/service/library"
	"github.com/google/uuid"
)

// Syncs exposes the manual sync triggers to API handlers without pulling the
// sync packages into the API layer.
type Syncs struct {
	Riot      func(ctx context.Context) (int, error)
	Steam     func(ctx context.Context) (int, error)
	Launchers func(ctx context.Context) (int, error)
	LinkRiot  func(ctx context.Context, riotID, apiKey, region string) error
}

// RequestEnv carries everything a method handler may need for one request.
type RequestEnv struct {
	Ctx     context.Context
	Config  *config.Instance
	UserDB  *userdb.UserDB
	SyncDB  *syncdb.SyncDB
	Library *library.Aggregator
	Syncs   Syncs
	Params  json.RawMessage
	ID      uuid.UUID
}
