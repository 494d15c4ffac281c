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

// Package steam syncs owned-games playtime from the Steam Web API into the
// local collection snapshot.
package steam

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"sort"

	"github.com/Petlus/UltimateGametimeTracker/pkg/config"
	"github.com/Petlus/UltimateGametimeTracker/pkg/database"
	"github.com/Petlus/UltimateGametimeTracker/pkg/helpers/syncutil"
	"github.com/Petlus/UltimateGametimeTracker/pkg/shared/httpclient"
	"github.com/rs/zerolog/log"
)

const apiHost = "https://api.steampowered.com"

// ErrNotConfigured is returned when syncing without an API key or any linked
// accounts.
var ErrNotConfigured = errors.New("steam sync is not configured")

// openIDClaimRe extracts the claimed Steam ID from an OpenID return URL.
var openIDClaimRe = regexp.MustCompile(`steamcommunity\.com/openid/id/(\d+)`)

// ParseOpenIDReturn extracts the 64-bit Steam ID from the claimed_id of an
// OpenID login return URL.
func ParseOpenIDReturn(returnURL string) (string, error) {
	parsed, err := url.Parse(returnURL)
	if err != nil {
		return "", fmt.Errorf("invalid openid return url: %w", err)
	}
	claimed := parsed.Query().Get("openid.claimed_id")
	if claimed == "" {
		claimed = returnURL
	}
	m := openIDClaimRe.FindStringSubmatch(claimed)
	if m == nil {
		return "", fmt.Errorf("no steam id in openid return url")
	}
	return m[1], nil
}

// ownedGamesResponse is the GetOwnedGames v1 payload.
type ownedGamesResponse struct {
	Response struct {
		GameCount int `json:"game_count"`
		Games     []struct {
			AppID           int    `json:"appid"`
			Name            string `json:"name"`
			PlaytimeForever int    `json:"playtime_forever"`
			ImgIconURL      string `json:"img_icon_url"`
		} `json:"games"`
	} `json:"response"`
}

// GameStore persists the replaced owned-games collection.
type GameStore interface {
	ReplaceSteamGames(games []database.SteamGame) error
}

// Syncer pulls the owned-games listing for every linked account and replaces
// the stored collection with the merged result.
type Syncer struct {
	cfg   *config.Instance
	store GameStore
	http  *httpclient.Client
	host  string

	mu syncutil.Mutex
	// rejectedKey holds the API key last refused by Steam. Scheduled syncs
	// skip until the configured key differs from it.
	rejectedKey string
}

func NewSyncer(cfg *config.Instance, store GameStore) *Syncer {
	return &Syncer{
		cfg:   cfg,
		store: store,
		http:  httpclient.NewClient(),
		host:  apiHost,
	}
}

// OwnedGames fetches the owned-games listing for one account.
func (s *Syncer) OwnedGames(ctx context.Context, apiKey, accountID string) ([]database.SteamGame, error) {
	reqURL := fmt.Sprintf(
		"%s/IPlayerService/GetOwnedGames/v1/?key=%s&steamid=%s&include_appinfo=true&include_played_free_games=true&format=json",
		s.host, url.QueryEscape(apiKey), url.QueryEscape(accountID))

	var resp ownedGamesResponse
	if err := s.http.GetJSON(ctx, reqURL, nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch owned games for %s: %w", accountID, err)
	}

	games := make([]database.SteamGame, 0, len(resp.Response.Games))
	for _, g := range resp.Response.Games {
		games = append(games, database.SteamGame{
			AppID:           g.AppID,
			Name:            g.Name,
			PlaytimeMinutes: g.PlaytimeForever,
			IconURL:         iconURL(g.AppID, g.ImgIconURL),
		})
	}
	return games, nil
}

// Sync replaces the stored Steam collection with the current owned-games
// listings of all linked accounts. Playtime for a title owned on several
// accounts is summed. Returns the number of distinct titles stored.
func (s *Syncer) Sync(ctx context.Context) (int, error) {
	apiKey := s.cfg.SteamAPIKey()
	accountIDs := s.cfg.SteamAccountIDs()
	if apiKey == "" || len(accountIDs) == 0 {
		return 0, ErrNotConfigured
	}

	merged := make(map[int]database.SteamGame)
	var succeeded int
	var firstErr error
	for _, accountID := range accountIDs {
		games, err := s.OwnedGames(ctx, apiKey, accountID)
		if err != nil {
			if errors.Is(err, httpclient.ErrUnauthorized) {
				s.noteRejectedKey(apiKey)
				return 0, err
			}
			if firstErr == nil {
				firstErr = err
			}
			log.Warn().Err(err).Str("account", accountID).Msg("skipping steam account")
			continue
		}
		succeeded++
		for _, game := range games {
			existing, ok := merged[game.AppID]
			if ok {
				game.PlaytimeMinutes += existing.PlaytimeMinutes
			}
			merged[game.AppID] = game
		}
	}

	// When every account failed the stored collection is kept as is, so a
	// transient outage never wipes recorded playtime.
	if succeeded == 0 {
		return 0, fmt.Errorf("no steam account could be synced: %w", firstErr)
	}

	games := make([]database.SteamGame, 0, len(merged))
	for _, game := range merged {
		games = append(games, game)
	}
	sort.Slice(games, func(i, j int) bool { return games[i].AppID < games[j].AppID })

	if err := s.store.ReplaceSteamGames(games); err != nil {
		return 0, fmt.Errorf("failed to store steam collection: %w", err)
	}

	s.clearRejectedKey()
	log.Info().Int("games", len(games)).Int("accounts", len(accountIDs)).Msg("synced steam collection")
	return len(games), nil
}

// SyncScheduled is the periodic entry point. After a credential rejection it
// skips until the configured API key changes; an explicit Sync always
// attempts.
func (s *Syncer) SyncScheduled(ctx context.Context) (int, error) {
	s.mu.Lock()
	rejected := s.rejectedKey
	s.mu.Unlock()

	if rejected != "" && rejected == s.cfg.SteamAPIKey() {
		log.Debug().Msg("steam sync suspended until credentials change")
		return 0, nil
	}
	return s.Sync(ctx)
}

func (s *Syncer) noteRejectedKey(apiKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rejectedKey = apiKey
}

func (s *Syncer) clearRejectedKey() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rejectedKey = ""
}

func iconURL(appID int, iconHash string) string {
	if iconHash == "" {
		return ""
	}
	return fmt.Sprintf("https://media.steampowered.com/steamcommunity/public/images/apps/%d/%s.jpg",
		appID, iconHash)
}
