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

// Package riot syncs League of Legends and Teamfight Tactics match history
// from the Riot Games API into the local match record store.
package riot

import (
	"context"
	"fmt"
	"net/url"

	"github.com/Petlus/UltimateGametimeTracker/pkg/shared/httpclient"
)

// matchPageSize is how many recent match IDs are requested per sync.
const matchPageSize = 20

// routingRegions maps platform regions to the continental routing hosts used
// by the account and match APIs.
var routingRegions = map[string]string{
	"euw1": "europe",
	"eun1": "europe",
	"tr1":  "europe",
	"ru":   "europe",
	"na1":  "americas",
	"br1":  "americas",
	"la1":  "americas",
	"la2":  "americas",
	"kr":   "asia",
	"jp1":  "asia",
	"oc1":  "sea",
	"sg2":  "sea",
	"tw2":  "sea",
	"vn2":  "sea",
}

// Account is the resolved identity of a Riot ID.
type Account struct {
	PUUID    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

// Client is a minimal Riot Games API client covering the account and match
// endpoints this service needs.
type Client struct {
	http   *httpclient.Client
	apiKey string
	region string
	// baseURL overrides the routing host, for tests.
	baseURL string
}

func NewClient(apiKey, region string) *Client {
	return &Client{
		http:   httpclient.NewClient(),
		apiKey: apiKey,
		region: region,
	}
}

func (c *Client) routingHost() string {
	if c.baseURL != "" {
		return c.baseURL
	}
	routing, ok := routingRegions[c.region]
	if !ok {
		routing = "europe"
	}
	return fmt.Sprintf("https://%s.api.riotgames.com", routing)
}

func (c *Client) headers() map[string]string {
	return map[string]string{"X-Riot-Token": c.apiKey}
}

// ResolveAccount looks up the account PUUID for a Riot ID (game name plus tag
// line).
func (c *Client) ResolveAccount(ctx context.Context, gameName, tagLine string) (*Account, error) {
	reqURL := fmt.Sprintf("%s/riot/account/v1/accounts/by-riot-id/%s/%s",
		c.routingHost(), url.PathEscape(gameName), url.PathEscape(tagLine))

	var account Account
	if err := c.http.GetJSON(ctx, reqURL, c.headers(), &account); err != nil {
		return nil, fmt.Errorf("failed to resolve riot account: %w", err)
	}
	return &account, nil
}

// MatchIDs returns the most recent League match IDs for a PUUID.
func (c *Client) MatchIDs(ctx context.Context, puuid string) ([]string, error) {
	reqURL := fmt.Sprintf("%s/lol/match/v5/matches/by-puuid/%s/ids?count=%d",
		c.routingHost(), url.PathEscape(puuid), matchPageSize)

	var ids []string
	if err := c.http.GetJSON(ctx, reqURL, c.headers(), &ids); err != nil {
		return nil, fmt.Errorf("failed to list league matches: %w", err)
	}
	return ids, nil
}

// TFTMatchIDs returns the most recent Teamfight Tactics match IDs for a PUUID.
func (c *Client) TFTMatchIDs(ctx context.Context, puuid string) ([]string, error) {
	reqURL := fmt.Sprintf("%s/tft/match/v1/matches/by-puuid/%s/ids?count=%d",
		c.routingHost(), url.PathEscape(puuid), matchPageSize)

	var ids []string
	if err := c.http.GetJSON(ctx, reqURL, c.headers(), &ids); err != nil {
		return nil, fmt.Errorf("failed to list tft matches: %w", err)
	}
	return ids, nil
}

// MatchDetail is the subset of the League match-v5 payload this service
// consumes.
type MatchDetail struct {
	Info struct {
		GameStartTimestamp int64 `json:"gameStartTimestamp"`
		GameDuration       int   `json:"gameDuration"`
		QueueID            int   `json:"queueId"`
		Participants       []struct {
			PUUID        string `json:"puuid"`
			ChampionName string `json:"championName"`
			ChampionID   int    `json:"championId"`
			Win          bool   `json:"win"`
		} `json:"participants"`
	} `json:"info"`
}

// FetchMatch fetches one League match.
func (c *Client) FetchMatch(ctx context.Context, matchID string) (*MatchDetail, error) {
	reqURL := fmt.Sprintf("%s/lol/match/v5/matches/%s", c.routingHost(), url.PathEscape(matchID))

	var detail MatchDetail
	if err := c.http.GetJSON(ctx, reqURL, c.headers(), &detail); err != nil {
		return nil, fmt.Errorf("failed to fetch league match %s: %w", matchID, err)
	}
	return &detail, nil
}

// TFTMatchDetail is the subset of the TFT match-v1 payload this service
// consumes.
type TFTMatchDetail struct {
	Info struct {
		GameDatetime int64   `json:"game_datetime"`
		GameLength   float64 `json:"game_length"`
		QueueID      int     `json:"queue_id"`
		Participants []struct {
			PUUID     string `json:"puuid"`
			Placement int    `json:"placement"`
			Traits    []struct {
				Name     string `json:"name"`
				TierCurr int    `json:"tier_current"`
			} `json:"traits"`
			Units []struct {
				CharacterID string `json:"character_id"`
			} `json:"units"`
		} `json:"participants"`
	} `json:"info"`
}

// FetchTFTMatch fetches one Teamfight Tactics match.
func (c *Client) FetchTFTMatch(ctx context.Context, matchID string) (*TFTMatchDetail, error) {
	reqURL := fmt.Sprintf("%s/tft/match/v1/matches/%s", c.routingHost(), url.PathEscape(matchID))

	var detail TFTMatchDetail
	if err := c.http.GetJSON(ctx, reqURL, c.headers(), &detail); err != nil {
		return nil, fmt.Errorf("failed to fetch tft match %s: %w", matchID, err)
	}
	return &detail, nil
}
