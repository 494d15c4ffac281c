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

package gamevault

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Petlus/UltimateGametimeTracker/pkg/shared/httpclient"
)

const (
	// SourceEA is the provider and watermark source name for the EA app.
	SourceEA = "ea"

	eaAPIHost = "https://service-aggregation-layer.juno.ea.com"
)

// eaCredential is the stored credential blob for the EA provider, captured
// during the browser sign-in flow.
type eaCredential struct {
	AccessToken string `json:"access_token"`
	PersonaID   string `json:"persona_id"`
}

// eaGamesResponse is the subset of the EA entitlement payload this service
// consumes.
type eaGamesResponse struct {
	Entitlements []struct {
		MasterTitleID    string `json:"masterTitleId"`
		DisplayName      string `json:"displayName"`
		TotalPlayMinutes int64  `json:"totalPlayTimeMinutes"`
	} `json:"entitlements"`
}

// EAProvider fetches the owned-games playtime listing from the EA app
// services.
type EAProvider struct {
	http *httpclient.Client
	host string
}

func NewEAProvider() *EAProvider {
	return &EAProvider{
		http: httpclient.NewClient(),
		host: eaAPIHost,
	}
}

func (p *EAProvider) Name() string { return SourceEA }

func (p *EAProvider) Games(ctx context.Context, credential []byte) ([]OwnedGame, error) {
	var cred eaCredential
	if err := json.Unmarshal(credential, &cred); err != nil {
		return nil, fmt.Errorf("corrupt ea credential blob: %w", err)
	}
	if cred.AccessToken == "" || cred.PersonaID == "" {
		return nil, ErrNoCredentials
	}

	reqURL := fmt.Sprintf("%s/games/playtime/%s", p.host, cred.PersonaID)
	headers := map[string]string{
		"Authorization": "Bearer " + cred.AccessToken,
	}

	var resp eaGamesResponse
	if err := p.http.GetJSON(ctx, reqURL, headers, &resp); err != nil {
		return nil, err
	}

	games := make([]OwnedGame, 0, len(resp.Entitlements))
	for _, e := range resp.Entitlements {
		games = append(games, OwnedGame{
			ID:           e.MasterTitleID,
			Title:        e.DisplayName,
			TotalMinutes: e.TotalPlayMinutes,
		})
	}
	return games, nil
}
