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

package steam

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/Petlus/UltimateGametimeTracker/pkg/config"
	"github.com/Petlus/UltimateGametimeTracker/pkg/database"
	"github.com/Petlus/UltimateGametimeTracker/pkg/shared/httpclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOpenIDReturn(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		url     string
		want    string
		wantErr bool
	}{
		{
			name: "standard return url",
			url:  "http://localhost:7437/steam/return?openid.claimed_id=https%3A%2F%2Fsteamcommunity.com%2Fopenid%2Fid%2F76561198000000001&openid.mode=id_res",
			want: "76561198000000001",
		},
		{
			name: "claimed id passed directly",
			url:  "https://steamcommunity.com/openid/id/76561198000000002",
			want: "76561198000000002",
		},
		{
			name:    "no steam id present",
			url:     "http://localhost:7437/steam/return?openid.mode=cancel",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseOpenIDReturn(tt.url)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

type fakeGameStore struct {
	games []database.SteamGame
}

func (s *fakeGameStore) ReplaceSteamGames(games []database.SteamGame) error {
	s.games = games
	return nil
}

func testConfig(t *testing.T) *config.Instance {
	t.Helper()
	cfg, err := config.NewConfig(t.TempDir(), config.BaseDefaults)
	require.NoError(t, err)
	return cfg
}

func TestOwnedGames(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/IPlayerService/GetOwnedGames/v1/", r.URL.Path)
		assert.Equal(t, "key123", r.URL.Query().Get("key"))
		assert.Equal(t, "765611980001", r.URL.Query().Get("steamid"))
		assert.Equal(t, "true", r.URL.Query().Get("include_appinfo"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"response": {
				"game_count": 2,
				"games": [
					{"appid": 730, "name": "Counter-Strike 2", "playtime_forever": 5000, "img_icon_url": "abc"},
					{"appid": 570, "name": "Dota 2", "playtime_forever": 100}
				]
			}
		}`))
	}))
	defer srv.Close()

	syncer := NewSyncer(testConfig(t), &fakeGameStore{})
	syncer.host = srv.URL

	games, err := syncer.OwnedGames(context.Background(), "key123", "765611980001")
	require.NoError(t, err)
	require.Len(t, games, 2)
	assert.Equal(t, 730, games[0].AppID)
	assert.Equal(t, 5000, games[0].PlaytimeMinutes)
	assert.Contains(t, games[0].IconURL, "730/abc.jpg")
	assert.Empty(t, games[1].IconURL)
}

func TestSyncSumsAccountsAndReplaces(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("steamid") {
		case "100":
			_, _ = w.Write([]byte(`{"response":{"game_count":1,"games":[
				{"appid": 730, "name": "Counter-Strike 2", "playtime_forever": 100}]}}`))
		default:
			_, _ = w.Write([]byte(`{"response":{"game_count":2,"games":[
				{"appid": 730, "name": "Counter-Strike 2", "playtime_forever": 40},
				{"appid": 440, "name": "Team Fortress 2", "playtime_forever": 900}]}}`))
		}
	}))
	defer srv.Close()

	cfg := testConfig(t)
	require.NoError(t, cfg.SetSteamAPIKey("key123"))
	require.NoError(t, cfg.AddSteamAccountID("100"))
	require.NoError(t, cfg.AddSteamAccountID("200"))

	store := &fakeGameStore{}
	syncer := NewSyncer(cfg, store)
	syncer.host = srv.URL

	count, err := syncer.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.Len(t, store.games, 2)
	byApp := make(map[int]database.SteamGame, 2)
	for _, game := range store.games {
		byApp[game.AppID] = game
	}
	// Playtime for a title owned on both accounts is summed.
	assert.Equal(t, 140, byApp[730].PlaytimeMinutes)
	assert.Equal(t, 900, byApp[440].PlaytimeMinutes)
}

func TestSyncNotConfigured(t *testing.T) {
	t.Parallel()

	syncer := NewSyncer(testConfig(t), &fakeGameStore{})

	_, err := syncer.Sync(context.Background())
	require.ErrorIs(t, err, ErrNotConfigured)
}

func TestSyncUnauthorized(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	cfg := testConfig(t)
	require.NoError(t, cfg.SetSteamAPIKey("revoked"))
	require.NoError(t, cfg.AddSteamAccountID("100"))

	store := &fakeGameStore{}
	syncer := NewSyncer(cfg, store)
	syncer.host = srv.URL

	_, err := syncer.Sync(context.Background())
	require.ErrorIs(t, err, httpclient.ErrUnauthorized)
	// The stored collection is untouched on auth failure.
	assert.Nil(t, store.games)
}

func TestSyncKeepsStoreWhenEveryAccountFails(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	cfg := testConfig(t)
	require.NoError(t, cfg.SetSteamAPIKey("key123"))
	require.NoError(t, cfg.AddSteamAccountID("100"))

	store := &fakeGameStore{}
	syncer := NewSyncer(cfg, store)
	syncer.host = srv.URL

	// A transient outage across all accounts must not replace the stored
	// collection with an empty one.
	_, err := syncer.Sync(context.Background())
	require.ErrorIs(t, err, httpclient.ErrRemote)
	assert.Nil(t, store.games)
}

func TestScheduledSyncSuspendedAfterRejection(t *testing.T) {
	t.Parallel()

	var requests atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	cfg := testConfig(t)
	require.NoError(t, cfg.SetSteamAPIKey("revoked"))
	require.NoError(t, cfg.AddSteamAccountID("100"))

	syncer := NewSyncer(cfg, &fakeGameStore{})
	syncer.host = srv.URL

	_, err := syncer.SyncScheduled(context.Background())
	require.ErrorIs(t, err, httpclient.ErrUnauthorized)
	assert.Equal(t, int64(1), requests.Load())

	// While the rejected key is still configured, scheduled syncs skip.
	_, err = syncer.SyncScheduled(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), requests.Load())

	// A changed key is attempted again.
	require.NoError(t, cfg.SetSteamAPIKey("fresh"))
	_, err = syncer.SyncScheduled(context.Background())
	require.ErrorIs(t, err, httpclient.ErrUnauthorized)
	assert.Equal(t, int64(2), requests.Load())
}
