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

// Package service wires the trackers, reconcilers and sync sources together
// and runs them behind the local API.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Petlus/UltimateGametimeTracker/pkg/api"
	"github.com/Petlus/UltimateGametimeTracker/pkg/api/models/requests"
	"github.com/Petlus/UltimateGametimeTracker/pkg/config"
	"github.com/Petlus/UltimateGametimeTracker/pkg/database/syncdb"
	"github.com/Petlus/UltimateGametimeTracker/pkg/database/userdb"
	"github.com/Petlus/UltimateGametimeTracker/pkg/savefile/wow"
	"github.com/Petlus/UltimateGametimeTracker/pkg/service/library"
	"github.com/Petlus/UltimateGametimeTracker/pkg/service/processwatch"
	"github.com/Petlus/UltimateGametimeTracker/pkg/service/reconcile"
	"github.com/Petlus/UltimateGametimeTracker/pkg/sync/gamevault"
	"github.com/Petlus/UltimateGametimeTracker/pkg/sync/riot"
	"github.com/Petlus/UltimateGametimeTracker/pkg/sync/steam"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// riotHookTitles are the detected titles whose session end triggers an
// immediate match history sync, so a just-finished match shows up without
// waiting for the next periodic sync.
var riotHookTitles = []string{"League of Legends", "Teamfight Tactics"}

// Service owns the long-running pieces of the tracker daemon.
type Service struct {
	cfg       *config.Instance
	userDB    *userdb.UserDB
	syncDB    *syncdb.SyncDB
	tracker   *processwatch.Tracker
	scheduler *Scheduler
}

// New wires the daemon. Nothing starts running until Run.
func New(cfg *config.Instance, userDB *userdb.UserDB, syncDB *syncdb.SyncDB) *Service {
	return &Service{
		cfg:       cfg,
		userDB:    userDB,
		syncDB:    syncDB,
		tracker:   processwatch.NewTracker(userDB, nil),
		scheduler: NewScheduler(nil),
	}
}

// Run starts all trackers, sync loops and the API server, and blocks until
// the context is cancelled. Any still-open detected sessions are finalized
// on the way out.
func (s *Service) Run(ctx context.Context) error {
	matcher := processwatch.NewMatcher(s.userDB)
	procWatcher := processwatch.NewWatcher(processwatch.Enumerate, matcher, s.tracker)

	merger := reconcile.NewSnapshotMerger(s.syncDB)
	dedup := reconcile.NewDeduplicator(s.syncDB)
	// Launcher platforms report playtime in whole minutes.
	launcherCounter := reconcile.NewCounterReconciler(s.syncDB, s.userDB, time.Minute, nil)

	riotSyncer := riot.NewSyncer(s.cfg, dedup)
	steamSyncer := steam.NewSyncer(s.cfg, s.syncDB)
	launcherSyncer := gamevault.NewSyncer(s.syncDB, launcherCounter,
		gamevault.NewEAProvider(), gamevault.NewUbisoftProvider())

	for _, title := range riotHookTitles {
		s.tracker.SetStopHook(title, func() error {
			_, err := riotSyncer.SyncScheduled(context.Background())
			if errors.Is(err, riot.ErrNotConfigured) {
				return nil
			}
			return err
		})
	}

	s.scheduler.Register("process", s.cfg.SampleInterval(), true, procWatcher.Tick)
	s.scheduler.Register("riot", s.cfg.RiotSyncInterval(), false, func(ctx context.Context) {
		if _, err := riotSyncer.SyncScheduled(ctx); err != nil && !errors.Is(err, riot.ErrNotConfigured) {
			log.Error().Err(err).Msg("periodic riot sync failed")
		}
	})
	s.scheduler.Register("steam", s.cfg.SteamSyncInterval(), true, func(ctx context.Context) {
		if _, err := steamSyncer.SyncScheduled(ctx); err != nil && !errors.Is(err, steam.ErrNotConfigured) {
			log.Error().Err(err).Msg("periodic steam sync failed")
		}
	})
	s.scheduler.Register("launchers", s.cfg.GameVaultSyncInterval(), true, func(ctx context.Context) {
		if _, err := launcherSyncer.Sync(ctx); err != nil {
			log.Error().Err(err).Msg("periodic launcher sync failed")
		}
	})

	wowWatcher := wow.NewWatcher(s.cfg.WoWInstallPath(), merger, nil)
	if err := wowWatcher.Start(ctx); err != nil {
		log.Error().Err(err).Msg("failed to start savedvariables watcher")
	}

	s.scheduler.Start(ctx)

	baseEnv := requests.RequestEnv{
		Config:  s.cfg,
		UserDB:  s.userDB,
		SyncDB:  s.syncDB,
		Library: library.NewAggregator(s.userDB, s.syncDB),
		Syncs: requests.Syncs{
			Riot:      riotSyncer.Sync,
			Steam:     steamSyncer.Sync,
			Launchers: launcherSyncer.Sync,
			LinkRiot:  riotSyncer.LinkAccount,
		},
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return api.Start(gctx, s.cfg.APIPort(), baseEnv)
	})
	g.Go(func() error {
		<-gctx.Done()
		s.scheduler.Wait()
		s.tracker.Flush()
		return nil
	})

	log.Info().Msg("service started")

	if err := g.Wait(); err != nil {
		return fmt.Errorf("service stopped with error: %w", err)
	}
	return nil
}
