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

// Package processwatch detects running games from the OS process list and
// turns their presence into finalized play sessions.
package processwatch

import (
	"path/filepath"
	"strings"

	"github.com/shirou/gopsutil/v4/process"
)

// Process is one running OS process, with name and executable path already
// lowercased for matching.
type Process struct {
	Name string
	Path string
}

// Enumerator produces the current process list. Injectable so the watcher
// can be driven without an OS in tests.
type Enumerator func() ([]Process, error)

// Enumerate lists running processes via gopsutil. Processes whose name
// cannot be read (exited mid-scan, permission denied) are skipped; a missing
// executable path is fine and leaves Path empty.
func Enumerate() ([]Process, error) {
	procs, err := process.Processes()
	if err != nil {
		return nil, err
	}

	list := make([]Process, 0, len(procs))
	for _, p := range procs {
		name, err := p.Name()
		if err != nil || name == "" {
			continue
		}

		exe, err := p.Exe()
		if err != nil {
			exe = ""
		}

		list = append(list, Process{
			Name: strings.ToLower(filepath.Base(name)),
			Path: strings.ToLower(exe),
		})
	}

	return list, nil
}
