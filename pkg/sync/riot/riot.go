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

package riot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Petlus/UltimateGametimeTracker/pkg/config"
	"github.com/Petlus/UltimateGametimeTracker/pkg/database"
	"github.com/Petlus/UltimateGametimeTracker/pkg/database/syncdb"
	"github.com/Petlus/UltimateGametimeTracker/pkg/helpers/syncutil"
	"github.com/Petlus/UltimateGametimeTracker/pkg/service/reconcile"
	"github.com/Petlus/UltimateGametimeTracker/pkg/shared/httpclient"
	"github.com/rs/zerolog/log"
)

// ErrNotConfigured is returned when syncing without an API key or a linked
// account.
var ErrNotConfigured = errors.New("riot sync is not configured")

// Syncer pulls recent League and TFT match history for the linked account
// and stores each match at most once.
type Syncer struct {
	cfg   *config.Instance
	dedup *reconcile.Deduplicator
	// newClient is swapped out in tests.
	newClient func(apiKey, region string) *Client

	mu syncutil.Mutex
	// rejectedKey holds the API key last refused by Riot. Scheduled syncs
	// skip until the configured key differs from it.
	rejectedKey string
}

func NewSyncer(cfg *config.Instance, dedup *reconcile.Deduplicator) *Syncer {
	return &Syncer{cfg: cfg, dedup: dedup, newClient: NewClient}
}

// LinkAccount resolves a Riot ID ("Name#Tag") to a PUUID and persists the
// account in the config.
func (s *Syncer) LinkAccount(ctx context.Context, riotID, apiKey, region string) error {
	gameName, tagLine, ok := strings.Cut(riotID, "#")
	if !ok || gameName == "" || tagLine == "" {
		return fmt.Errorf("invalid riot id: %q", riotID)
	}

	if err := s.cfg.SetRiotCredentials(apiKey, region); err != nil {
		return fmt.Errorf("failed to save riot credentials: %w", err)
	}

	client := s.newClient(s.cfg.RiotAPIKey(), s.cfg.RiotRegion())
	account, err := client.ResolveAccount(ctx, gameName, tagLine)
	if err != nil {
		return err
	}

	if err := s.cfg.SetRiotAccount(account.PUUID, account.GameName, account.TagLine); err != nil {
		return fmt.Errorf("failed to save riot account: %w", err)
	}

	log.Info().Str("account", riotID).Msg("linked riot account")
	return nil
}

// Sync ingests any new League and TFT matches. Known match IDs are skipped
// without refetching. Returns the number of new matches stored.
func (s *Syncer) Sync(ctx context.Context) (int, error) {
	apiKey := s.cfg.RiotAPIKey()
	puuid := s.cfg.RiotPUUID()
	if apiKey == "" || puuid == "" {
		return 0, ErrNotConfigured
	}

	client := s.newClient(apiKey, s.cfg.RiotRegion())

	added, err := s.syncLeague(ctx, client, puuid)
	if err != nil {
		s.noteResult(apiKey, err)
		return added, err
	}

	tftAdded, err := s.syncTFT(ctx, client, puuid)
	added += tftAdded
	s.noteResult(apiKey, err)
	if err != nil {
		return added, err
	}

	return added, nil
}

// SyncScheduled is the periodic and hook-driven entry point. After a
// credential rejection it skips until the configured API key changes; an
// explicit Sync always attempts.
func (s *Syncer) SyncScheduled(ctx context.Context) (int, error) {
	s.mu.Lock()
	rejected := s.rejectedKey
	s.mu.Unlock()

	if rejected != "" && rejected == s.cfg.RiotAPIKey() {
		log.Debug().Msg("riot sync suspended until credentials change")
		return 0, nil
	}
	return s.Sync(ctx)
}

func (s *Syncer) noteResult(apiKey string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if errors.Is(err, httpclient.ErrUnauthorized) {
		s.rejectedKey = apiKey
	} else {
		s.rejectedKey = ""
	}
}

func (s *Syncer) syncLeague(ctx context.Context, client *Client, puuid string) (int, error) {
	ids, err := client.MatchIDs(ctx, puuid)
	if err != nil {
		if errors.Is(err, httpclient.ErrUnauthorized) {
			return 0, err
		}
		return 0, fmt.Errorf("league match listing failed: %w", err)
	}

	return s.dedup.Ingest(ctx, syncdb.RecordKindRiotMatch, ids,
		func(ctx context.Context, id string) ([]byte, error) {
			detail, err := client.FetchMatch(ctx, id)
			if err != nil {
				return nil, err
			}
			match := leagueRecord(id, detail, puuid)
			if match == nil {
				return nil, nil
			}
			return json.Marshal(match)
		})
}

func (s *Syncer) syncTFT(ctx context.Context, client *Client, puuid string) (int, error) {
	ids, err := client.TFTMatchIDs(ctx, puuid)
	if err != nil {
		if errors.Is(err, httpclient.ErrUnauthorized) {
			return 0, err
		}
		return 0, fmt.Errorf("tft match listing failed: %w", err)
	}

	return s.dedup.Ingest(ctx, syncdb.RecordKindTFTMatch, ids,
		func(ctx context.Context, id string) ([]byte, error) {
			detail, err := client.FetchTFTMatch(ctx, id)
			if err != nil {
				return nil, err
			}
			match := tftRecord(id, detail, puuid)
			if match == nil {
				return nil, nil
			}
			return json.Marshal(match)
		})
}

// leagueRecord extracts this account's view of a League match, or nil when
// the account did not participate.
func leagueRecord(id string, detail *MatchDetail, puuid string) *database.RiotMatch {
	for _, p := range detail.Info.Participants {
		if p.PUUID != puuid {
			continue
		}
		return &database.RiotMatch{
			ID:              id,
			ChampionName:    p.ChampionName,
			ChampionID:      p.ChampionID,
			QueueID:         detail.Info.QueueID,
			Timestamp:       detail.Info.GameStartTimestamp,
			DurationSeconds: detail.Info.GameDuration,
			Win:             p.Win,
		}
	}
	return nil
}

// tftRecord extracts this account's view of a TFT match, or nil when the
// account did not participate. Only active traits (tier above zero) are kept.
func tftRecord(id string, detail *TFTMatchDetail, puuid string) *database.TFTMatch {
	for _, p := range detail.Info.Participants {
		if p.PUUID != puuid {
			continue
		}
		traits := make([]string, 0, len(p.Traits))
		for _, trait := range p.Traits {
			if trait.TierCurr > 0 {
				traits = append(traits, trait.Name)
			}
		}
		units := make([]string, 0, len(p.Units))
		for _, unit := range p.Units {
			units = append(units, unit.CharacterID)
		}
		return &database.TFTMatch{
			ID:              id,
			Traits:          traits,
			Units:           units,
			Placement:       p.Placement,
			QueueID:         detail.Info.QueueID,
			Timestamp:       detail.Info.GameDatetime,
			DurationSeconds: int(detail.Info.GameLength),
		}
	}
	return nil
}
