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

// Package gamevault syncs cumulative per-game playtime counters from
// launcher platforms (EA app, Ubisoft Connect) and reconciles them into
// synthetic sessions.
package gamevault

import (
	"context"
	"errors"
	"fmt"

	"github.com/Petlus/UltimateGametimeTracker/pkg/shared/httpclient"
	"github.com/rs/zerolog/log"
)

// ErrNoCredentials is returned when a provider has no stored credentials.
var ErrNoCredentials = errors.New("no credentials stored for provider")

// OwnedGame is one title with its platform-reported lifetime playtime.
type OwnedGame struct {
	ID           string
	Title        string
	TotalMinutes int64
}

// Provider fetches the cumulative playtime listing of one launcher platform.
// The credential blob is opaque to the syncer; each provider knows its own
// format.
type Provider interface {
	Name() string
	Games(ctx context.Context, credential []byte) ([]OwnedGame, error)
}

// CredentialStore reads and invalidates stored provider credentials.
type CredentialStore interface {
	Credential(source string) ([]byte, bool, error)
	DeleteCredential(source string) error
}

// Reconciler folds one cumulative observation into the session ledger.
type Reconciler interface {
	Reconcile(source, entityID, title string, cumulative int64) (bool, error)
}

// Syncer runs all registered providers against their stored credentials and
// reconciles every reported total.
type Syncer struct {
	creds      CredentialStore
	reconciler Reconciler
	providers  []Provider
}

func NewSyncer(creds CredentialStore, reconciler Reconciler, providers ...Provider) *Syncer {
	return &Syncer{
		creds:      creds,
		reconciler: reconciler,
		providers:  providers,
	}
}

// Sync polls every provider that has stored credentials. A provider without
// credentials is skipped silently; a provider whose credentials are rejected
// has them dropped so the next poll skips it until the user signs in again.
// Returns the number of synthetic sessions emitted.
func (s *Syncer) Sync(ctx context.Context) (int, error) {
	emitted := 0
	var firstErr error

	for _, provider := range s.providers {
		count, err := s.syncProvider(ctx, provider)
		emitted += count
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return emitted, firstErr
}

func (s *Syncer) syncProvider(ctx context.Context, provider Provider) (int, error) {
	name := provider.Name()

	credential, ok, err := s.creds.Credential(name)
	if err != nil {
		return 0, fmt.Errorf("failed to read %s credentials: %w", name, err)
	}
	if !ok {
		return 0, nil
	}

	games, err := provider.Games(ctx, credential)
	if err != nil {
		if errors.Is(err, httpclient.ErrUnauthorized) {
			log.Warn().Str("provider", name).Msg("credentials rejected, dropping stored login")
			if delErr := s.creds.DeleteCredential(name); delErr != nil {
				log.Error().Err(delErr).Str("provider", name).Msg("failed to drop credentials")
			}
		}
		return 0, fmt.Errorf("%s sync failed: %w", name, err)
	}

	emitted := 0
	for _, game := range games {
		if game.TotalMinutes <= 0 {
			continue
		}
		added, err := s.reconciler.Reconcile(name, game.ID, game.Title, game.TotalMinutes)
		if err != nil {
			log.Error().Err(err).Str("provider", name).Str("title", game.Title).
				Msg("failed to reconcile playtime counter")
			continue
		}
		if added {
			emitted++
		}
	}

	if emitted > 0 {
		log.Info().Str("provider", name).Int("sessions", emitted).Msg("reconciled launcher playtime")
	}
	return emitted, nil
}
