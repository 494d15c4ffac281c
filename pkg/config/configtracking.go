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

// Tracking configures the process watcher.
type Tracking struct {
	// SampleInterval is how often the OS process list is polled. A process
	// exiting and restarting within one interval is recorded as two sessions.
	SampleInterval string `toml:"sample_interval,omitempty"`
}

// Library configures the aggregated library view.
type Library struct {
	MinSeconds     int      `toml:"min_seconds"`
	ExcludedTitles []string `toml:"excluded_titles,omitempty,multiline"`
}

// API configures the local HTTP API.
type API struct {
	Port int `toml:"port"`
}

// SampleInterval returns the process polling interval, falling back to 10s
// when unset or unparsable.
func (c *Instance) SampleInterval() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	d, err := time.ParseDuration(c.vals.Tracking.SampleInterval)
	if err != nil || d <= 0 {
		return 10 * time.Second
	}
	return d
}

// LibraryMinSeconds returns the minimum aggregated total for a title to
// appear in the library view.
func (c *Instance) LibraryMinSeconds() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return int64(c.vals.Library.MinSeconds)
}

// LibraryExcludedTitles returns titles hidden from the library view, mainly
// launchers that match processes but are not games themselves.
func (c *Instance) LibraryExcludedTitles() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	titles := make([]string, len(c.vals.Library.ExcludedTitles))
	copy(titles, c.vals.Library.ExcludedTitles)
	return titles
}

// APIPort returns the local API listen port.
func (c *Instance) APIPort() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.API.Port
}
