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

package processwatch

import (
	"errors"
	"testing"

	"github.com/Petlus/UltimateGametimeTracker/pkg/database"
	"github.com/stretchr/testify/assert"
)

type fakeGameSource struct {
	games []database.CustomGame
	err   error
}

func (s *fakeGameSource) CustomGames() ([]database.CustomGame, error) {
	return s.games, s.err
}

func TestMatcherDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		custom []database.CustomGame
		procs  []Process
		want   []string
	}{
		{
			name:  "builtin by filename",
			procs: []Process{{Name: "wow.exe", Path: `c:\games\wow\wow.exe`}},
			want:  []string{"World of Warcraft"},
		},
		{
			name:  "unknown process ignored",
			procs: []Process{{Name: "explorer.exe"}},
			want:  []string{},
		},
		{
			name: "custom filename match",
			custom: []database.CustomGame{
				{Name: "Noita", Executable: "noita.exe"},
			},
			procs: []Process{{Name: "noita.exe", Path: `d:\noita\noita.exe`}},
			want:  []string{"Noita"},
		},
		{
			name: "custom with path requires exact path",
			custom: []database.CustomGame{
				{Name: "Modded Noita", Executable: "noita.exe", Path: `d:\mods\noita.exe`},
			},
			procs: []Process{{Name: "noita.exe", Path: `d:\noita\noita.exe`}},
			want:  []string{},
		},
		{
			name: "custom with path matches that path",
			custom: []database.CustomGame{
				{Name: "Modded Noita", Executable: "noita.exe", Path: `d:\mods\noita.exe`},
			},
			procs: []Process{{Name: "noita.exe", Path: `d:\mods\noita.exe`}},
			want:  []string{"Modded Noita"},
		},
		{
			name: "duplicate processes yield one title, sorted output",
			custom: []database.CustomGame{
				{Name: "Aim Trainer", Executable: "aim.exe"},
			},
			procs: []Process{
				{Name: "wow.exe"},
				{Name: "wow.exe"},
				{Name: "aim.exe"},
			},
			want: []string{"Aim Trainer", "World of Warcraft"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			matcher := NewMatcher(&fakeGameSource{games: tt.custom})
			assert.Equal(t, tt.want, matcher.Detect(tt.procs))
		})
	}
}

func TestMatcherCustomSourceErrorFallsBackToBuiltins(t *testing.T) {
	t.Parallel()

	matcher := NewMatcher(&fakeGameSource{err: errors.New("db closed")})
	got := matcher.Detect([]Process{{Name: "cs2.exe"}})
	assert.Equal(t, []string{"Counter-Strike 2"}, got)
}
