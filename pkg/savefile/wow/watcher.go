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

package wow

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/Petlus/UltimateGametimeTracker/pkg/database"
	"github.com/Petlus/UltimateGametimeTracker/pkg/helpers/syncutil"
	"github.com/fsnotify/fsnotify"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// debouncePeriod is how long a SavedVariables file must stay quiet after a
// change before it is parsed, so a file is not read mid-write and bursts of
// change events collapse into one parse.
const debouncePeriod = time.Second

// commonInstallPaths are probed when no install path is configured.
var commonInstallPaths = []string{
	`C:\Program Files (x86)\World of Warcraft`,
	`C:\Program Files\World of Warcraft`,
	`C:\World of Warcraft`,
	`D:\World of Warcraft`,
}

// maxScanDepth bounds the SavedVariables directory walk.
const maxScanDepth = 8

// Merger folds a scan of character observations into the stored collection.
type Merger interface {
	Merge(scan []database.WoWCharacter) error
}

// Watcher watches an install's WTF tree for addon SavedVariables changes and
// feeds parsed character scans to the merger.
type Watcher struct {
	merger   Merger
	clock    clockwork.Clock
	basePath string

	// mu guards timers and serializes parse-and-merge, so debounce timers
	// firing close together cannot interleave their load-merge-store cycles.
	mu     syncutil.Mutex
	timers map[string]clockwork.Timer
}

// NewWatcher creates a watcher for the given install path. An empty path
// triggers auto-discovery of common install locations.
func NewWatcher(basePath string, merger Merger, clock clockwork.Clock) *Watcher {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Watcher{
		merger:   merger,
		clock:    clock,
		basePath: basePath,
		timers:   make(map[string]clockwork.Timer),
	}
}

// Start runs the initial scan and then watches for changes until the context
// is cancelled. Returns without error when no install can be found; save
// scraping is optional.
func (w *Watcher) Start(ctx context.Context) error {
	basePath := w.resolveInstallPath()
	if basePath == "" {
		log.Info().Msg("wow install path not found, save scraping disabled")
		return nil
	}

	log.Info().Str("path", basePath).Msg("starting savedvariables watcher")

	dirs := w.scan(basePath)

	notifier, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	// Watching the SavedVariables directories themselves, not just files
	// that existed at startup, means a file the addon writes for the first
	// time later still raises a Create event.
	for _, dir := range dirs {
		if err := notifier.Add(dir); err != nil {
			log.Warn().Err(err).Str("dir", dir).Msg("failed to watch directory")
		}
	}

	go w.loop(ctx, notifier)
	return nil
}

func (w *Watcher) loop(ctx context.Context, notifier *fsnotify.Watcher) {
	defer func() {
		if err := notifier.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close fsnotify watcher")
		}
	}()

	for {
		select {
		case event, ok := <-notifier.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if !isSavedVariablesFile(event.Name) {
				continue
			}
			w.debounce(event.Name)
		case err, ok := <-notifier.Errors:
			if !ok {
				return
			}
			log.Warn().Err(err).Msg("savedvariables watch error")
		case <-ctx.Done():
			return
		}
	}
}

// debounce (re)arms a per-file timer; the file is parsed only after staying
// quiet for the debounce period. Fired timers are dropped from the map so a
// later change arms a fresh one.
func (w *Watcher) debounce(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.timers[path]; ok {
		timer.Reset(debouncePeriod)
		return
	}
	w.timers[path] = w.clock.AfterFunc(debouncePeriod, func() {
		w.mu.Lock()
		delete(w.timers, path)
		w.mu.Unlock()

		log.Debug().Str("file", path).Msg("savedvariables changed")
		w.parseAndMerge(path)
	})
}

// scan walks the install tree, merges every SavedVariables file found, and
// returns the SavedVariables directories to watch. Directories are reported
// even when empty so files written after startup are still noticed.
func (w *Watcher) scan(basePath string) []string {
	var found []string
	dirSet := make(map[string]struct{})

	err := filepath.WalkDir(basePath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable directories are expected inside game installs.
			return nil //nolint:nilerr // skip, do not abort the walk
		}
		if d.IsDir() {
			if strings.Count(strings.TrimPrefix(path, basePath), string(filepath.Separator)) > maxScanDepth {
				return fs.SkipDir
			}
			if filepath.Base(path) == "SavedVariables" {
				dirSet[path] = struct{}{}
			}
			return nil
		}
		if isSavedVariablesFile(path) {
			found = append(found, path)
			dirSet[filepath.Dir(path)] = struct{}{}
		}
		return nil
	})
	if err != nil {
		log.Warn().Err(err).Str("path", basePath).Msg("savedvariables scan failed")
	}

	for _, file := range found {
		w.parseAndMerge(file)
	}

	dirs := make([]string, 0, len(dirSet))
	for dir := range dirSet {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)

	return dirs
}

func (w *Watcher) parseAndMerge(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	content, err := os.ReadFile(path) //nolint:gosec // path comes from our own scan
	if err != nil {
		log.Warn().Err(err).Str("file", path).Msg("failed to read savedvariables file")
		return
	}

	chars := ParseSavedVariables(string(content), VersionFromPath(path), w.clock.Now())
	if len(chars) == 0 {
		log.Debug().Str("file", path).Msg("no characters parsed from savedvariables file")
		return
	}

	if err := w.merger.Merge(chars); err != nil {
		log.Error().Err(err).Str("file", path).Msg("failed to merge character scan")
		return
	}

	log.Info().Int("characters", len(chars)).Str("file", filepath.Base(path)).Msg("merged savedvariables scan")
}

func (w *Watcher) resolveInstallPath() string {
	if w.basePath != "" {
		if _, err := os.Stat(w.basePath); err == nil {
			return w.basePath
		}
		log.Warn().Str("path", w.basePath).Msg("configured wow install path does not exist")
		return ""
	}

	for _, path := range commonInstallPaths {
		if _, err := os.Stat(path); err == nil {
			log.Info().Str("path", path).Msg("auto-discovered wow install path")
			return path
		}
	}
	return ""
}

func isSavedVariablesFile(path string) bool {
	base := filepath.Base(path)
	for _, name := range savedVariablesFiles {
		if base == name {
			return true
		}
	}
	return false
}
