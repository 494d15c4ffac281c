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
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCredentialStore struct {
	creds map[string][]byte
}

func newFakeCredentialStore() *fakeCredentialStore {
	return &fakeCredentialStore{creds: make(map[string][]byte)}
}

func (s *fakeCredentialStore) Credential(source string) ([]byte, bool, error) {
	blob, ok := s.creds[source]
	return blob, ok, nil
}

func (s *fakeCredentialStore) DeleteCredential(source string) error {
	delete(s.creds, source)
	return nil
}

type recordedCall struct {
	source   string
	entityID string
	title    string
	value    int64
}

type fakeReconciler struct {
	calls   []recordedCall
	emitted bool
}

func (r *fakeReconciler) Reconcile(source, entityID, title string, cumulative int64) (bool, error) {
	r.calls = append(r.calls, recordedCall{source, entityID, title, cumulative})
	return r.emitted, nil
}

type staticProvider struct {
	name  string
	games []OwnedGame
	err   error
}

func (p *staticProvider) Name() string { return p.name }

func (p *staticProvider) Games(_ context.Context, _ []byte) ([]OwnedGame, error) {
	return p.games, p.err
}

func TestSyncerReconcilesEveryGame(t *testing.T) {
	t.Parallel()

	creds := newFakeCredentialStore()
	creds.creds["ea"] = []byte(`{}`)
	rec := &fakeReconciler{emitted: true}

	syncer := NewSyncer(creds, rec, &staticProvider{
		name: "ea",
		games: []OwnedGame{
			{ID: "bf", Title: "Battlefield 2042", TotalMinutes: 320},
			{ID: "fc", Title: "EA Sports FC", TotalMinutes: 45},
			{ID: "unplayed", Title: "Trial Game", TotalMinutes: 0},
		},
	})

	emitted, err := syncer.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, emitted)

	// Zero-minute titles are never reconciled.
	require.Len(t, rec.calls, 2)
	assert.Equal(t, recordedCall{"ea", "bf", "Battlefield 2042", 320}, rec.calls[0])
	assert.Equal(t, recordedCall{"ea", "fc", "EA Sports FC", 45}, rec.calls[1])
}

func TestSyncerSkipsProviderWithoutCredentials(t *testing.T) {
	t.Parallel()

	rec := &fakeReconciler{}
	syncer := NewSyncer(newFakeCredentialStore(), rec, &staticProvider{
		name:  "ea",
		games: []OwnedGame{{ID: "bf", Title: "Battlefield 2042", TotalMinutes: 100}},
	})

	emitted, err := syncer.Sync(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, emitted)
	assert.Empty(t, rec.calls)
}

func TestSyncerDropsRejectedCredentials(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	provider := NewEAProvider()
	provider.host = srv.URL

	creds := newFakeCredentialStore()
	creds.creds[SourceEA] = []byte(`{"access_token":"expired","persona_id":"p1"}`)

	syncer := NewSyncer(creds, &fakeReconciler{}, provider)

	_, err := syncer.Sync(context.Background())
	require.Error(t, err)

	_, ok := creds.creds[SourceEA]
	assert.False(t, ok, "rejected credentials should be dropped")
}

func TestSyncerContinuesPastFailingProvider(t *testing.T) {
	t.Parallel()

	creds := newFakeCredentialStore()
	creds.creds["ea"] = []byte(`{}`)
	creds.creds["ubisoft"] = []byte(`{}`)
	rec := &fakeReconciler{emitted: true}

	syncer := NewSyncer(creds, rec,
		&staticProvider{name: "ea", err: assert.AnError},
		&staticProvider{name: "ubisoft", games: []OwnedGame{
			{ID: "ac", Title: "Assassin's Creed", TotalMinutes: 60},
		}},
	)

	emitted, err := syncer.Sync(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, emitted)
	require.Len(t, rec.calls, 1)
	assert.Equal(t, "ubisoft", rec.calls[0].source)
}

func TestEAProviderParsesPlaytime(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/games/playtime/p1", r.URL.Path)
		assert.Equal(t, "Bearer token1", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"entitlements":[
			{"masterTitleId":"bf2042","displayName":"Battlefield 2042","totalPlayTimeMinutes":320}
		]}`))
	}))
	defer srv.Close()

	provider := NewEAProvider()
	provider.host = srv.URL

	games, err := provider.Games(context.Background(),
		[]byte(`{"access_token":"token1","persona_id":"p1"}`))
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, OwnedGame{ID: "bf2042", Title: "Battlefield 2042", TotalMinutes: 320}, games[0])
}

func TestUbisoftProviderParsesPlaytime(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/profiles/prof1/games/playtime", r.URL.Path)
		assert.Equal(t, "ubi_v1 t=ticket1", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("Ubi-AppId"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"games":[
			{"spaceId":"space1","title":"Assassin's Creed","totalPlaytimeMinutes":900}
		]}`))
	}))
	defer srv.Close()

	provider := NewUbisoftProvider()
	provider.host = srv.URL

	games, err := provider.Games(context.Background(),
		[]byte(`{"ticket":"ticket1","profile_id":"prof1","session_id":"sess1"}`))
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, OwnedGame{ID: "space1", Title: "Assassin's Creed", TotalMinutes: 900}, games[0])
}

func TestProviderRejectsEmptyCredentialBlob(t *testing.T) {
	t.Parallel()

	provider := NewEAProvider()
	_, err := provider.Games(context.Background(), []byte(`{}`))
	require.ErrorIs(t, err, ErrNoCredentials)
}
