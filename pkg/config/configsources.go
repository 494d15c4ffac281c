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

package config

import "time"

// Riot configures the Riot Games match history sync.
type Riot struct {
	APIKey       string `toml:"api_key,omitempty"`
	PUUID        string `toml:"puuid,omitempty"`
	SummonerName string `toml:"summoner_name,omitempty"`
	TagLine      string `toml:"tag_line,omitempty"`
	Region       string `toml:"region,omitempty"`
	SyncInterval string `toml:"sync_interval,omitempty"`
}

// Steam configures the Steam owned-games sync. Multiple account IDs are
// supported; playtime is summed across them.
type Steam struct {
	APIKey       string   `toml:"api_key,omitempty"`
	SyncInterval string   `toml:"sync_interval,omitempty"`
	AccountIDs   []string `toml:"account_ids,omitempty,multiline"`
}

// WoW configures the SavedVariables scraping. When InstallPath is empty a
// set of common install locations is probed.
type WoW struct {
	InstallPath string `toml:"install_path,omitempty"`
}

// GameVault configures the cumulative-minutes providers (EA, Ubisoft).
// Credentials themselves live in the sync store as opaque blobs.
type GameVault struct {
	SyncInterval string `toml:"sync_interval,omitempty"`
}

func (c *Instance) RiotAPIKey() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Riot.APIKey
}

func (c *Instance) RiotPUUID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Riot.PUUID
}

func (c *Instance) RiotRegion() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Riot.Region == "" {
		return "euw1"
	}
	return c.vals.Riot.Region
}

// SetRiotAccount updates the resolved Riot account details and persists the
// config to disk.
func (c *Instance) SetRiotAccount(puuid, summonerName, tagLine string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Riot.PUUID = puuid
	c.vals.Riot.SummonerName = summonerName
	c.vals.Riot.TagLine = tagLine
	return c.saveLocked()
}

// SetRiotCredentials updates the API key and region.
func (c *Instance) SetRiotCredentials(apiKey, region string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if apiKey != "" {
		c.vals.Riot.APIKey = apiKey
	}
	if region != "" {
		c.vals.Riot.Region = region
	}
	return c.saveLocked()
}

func (c *Instance) SteamAPIKey() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Steam.APIKey
}

func (c *Instance) SteamAccountIDs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ids := make([]string, len(c.vals.Steam.AccountIDs))
	copy(ids, c.vals.Steam.AccountIDs)
	return ids
}

// SetSteamAPIKey updates the Steam API key and persists the config.
func (c *Instance) SetSteamAPIKey(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Steam.APIKey = key
	return c.saveLocked()
}

// AddSteamAccountID links a Steam account. Already linked IDs are ignored.
func (c *Instance) AddSteamAccountID(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, existing := range c.vals.Steam.AccountIDs {
		if existing == id {
			return nil
		}
	}
	c.vals.Steam.AccountIDs = append(c.vals.Steam.AccountIDs, id)
	return c.saveLocked()
}

// RemoveSteamAccountID unlinks a Steam account.
func (c *Instance) RemoveSteamAccountID(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	ids := c.vals.Steam.AccountIDs[:0]
	for _, existing := range c.vals.Steam.AccountIDs {
		if existing != id {
			ids = append(ids, existing)
		}
	}
	c.vals.Steam.AccountIDs = ids
	return c.saveLocked()
}

func (c *Instance) WoWInstallPath() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.WoW.InstallPath
}

// SetWoWInstallPath updates the WoW install path and persists the config.
func (c *Instance) SetWoWInstallPath(path string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.WoW.InstallPath = path
	return c.saveLocked()
}

func (c *Instance) RiotSyncInterval() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return parseInterval(c.vals.Riot.SyncInterval, 2*time.Hour)
}

func (c *Instance) SteamSyncInterval() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return parseInterval(c.vals.Steam.SyncInterval, 30*time.Minute)
}

func (c *Instance) GameVaultSyncInterval() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return parseInterval(c.vals.GameVault.SyncInterval, time.Hour)
}

func parseInterval(raw string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
