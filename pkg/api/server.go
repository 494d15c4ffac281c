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

// Package api serves the local JSON-RPC API over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Petlus/UltimateGametimeTracker/pkg/api/methods"
	"github.com/Petlus/UltimateGametimeTracker/pkg/api/models"
	"github.com/Petlus/UltimateGametimeTracker/pkg/api/models/requests"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var JSONRPCErrorParseError = models.ErrorObject{
	Code:    -32700,
	Message: "Parse error",
}
var JSONRPCErrorInvalidRequest = models.ErrorObject{
	Code:    -32600,
	Message: "Invalid Request",
}
var JSONRPCErrorMethodNotFound = models.ErrorObject{
	Code:    -32601,
	Message: "Method not found",
}
var JSONRPCErrorInvalidParams = models.ErrorObject{
	Code:    -32602,
	Message: "Invalid params",
}
var JSONRPCErrorInternalError = models.ErrorObject{
	Code:    -32603,
	Message: "Internal error",
}

var methodMap = map[string]func(requests.RequestEnv) (any, error){
	// library
	models.MethodLibrary: methods.HandleLibrary,
	// sessions
	models.MethodSessions:    methods.HandleSessions,
	models.MethodSessionsAdd: methods.HandleAddSession,
	// stats
	models.MethodStats:         methods.HandleStats,
	models.MethodStatsRiot:     methods.HandleRiotStats,
	models.MethodWoWCharacters: methods.HandleWoWCharacters,
	// custom games
	models.MethodGames:       methods.HandleGames,
	models.MethodGamesAdd:    methods.HandleAddGame,
	models.MethodGamesDelete: methods.HandleDeleteGame,
	// settings
	models.MethodSettings:       methods.HandleSettings,
	models.MethodSettingsUpdate: methods.HandleSettingsUpdate,
	// sync
	models.MethodRiotLink:            methods.HandleRiotLink,
	models.MethodRiotSync:            methods.HandleRiotSync,
	models.MethodSteamSync:           methods.HandleSteamSync,
	models.MethodSteamAccountsAdd:    methods.HandleSteamAccountAdd,
	models.MethodSteamAccountsDelete: methods.HandleSteamAccountDelete,
	models.MethodLaunchersSync:       methods.HandleLaunchersSync,
	// utils
	models.MethodVersion: methods.HandleVersion,
}

func handleRequest(env requests.RequestEnv, req models.RequestObject) (any, error) {
	log.Debug().Str("method", req.Method).Msg("received request")

	fn, ok := methodMap[strings.ToLower(req.Method)]
	if !ok {
		return nil, fmt.Errorf("unknown method: %s", req.Method)
	}

	env.ID = *req.ID
	env.Params = req.Params

	return fn(env)
}

func writeResponse(w http.ResponseWriter, id uuid.UUID, result any) {
	resp := models.ResponseObject{
		JSONRPC: "2.0",
		ID:      id,
		Result:  result,
	}
	writeJSON(w, resp)
}

func writeError(w http.ResponseWriter, id uuid.UUID, errObj models.ErrorObject) {
	resp := models.ResponseErrorObject{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &errObj,
	}
	writeJSON(w, resp)
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("failed to write response")
	}
}

func maybeUUID(req models.RequestObject) uuid.UUID {
	if req.ID == nil {
		return uuid.Nil
	}
	return *req.ID
}

// handlePost processes one JSON-RPC request per HTTP POST.
func handlePost(baseEnv requests.RequestEnv) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.RequestObject
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, uuid.Nil, JSONRPCErrorParseError)
			return
		}

		if req.JSONRPC != "2.0" {
			writeError(w, maybeUUID(req), JSONRPCErrorInvalidRequest)
			return
		}
		if req.Method == "" {
			writeError(w, maybeUUID(req), JSONRPCErrorInvalidRequest)
			return
		}
		if req.ID == nil {
			log.Info().Str("method", req.Method).Msg("received notification, ignoring")
			w.WriteHeader(http.StatusNoContent)
			return
		}
		if _, ok := methodMap[strings.ToLower(req.Method)]; !ok {
			writeError(w, *req.ID, JSONRPCErrorMethodNotFound)
			return
		}

		env := baseEnv
		env.Ctx = r.Context()

		result, err := handleRequest(env, req)
		if err != nil {
			log.Error().Err(err).Str("method", req.Method).Msg("request failed")
			switch {
			case errors.Is(err, methods.ErrInvalidParams):
				writeError(w, *req.ID, JSONRPCErrorInvalidParams)
			default:
				errObj := JSONRPCErrorInternalError
				errObj.Message = err.Error()
				writeError(w, *req.ID, errObj)
			}
			return
		}

		writeResponse(w, *req.ID, result)
	}
}

// Start runs the HTTP server until the context is cancelled. It only ever
// binds to localhost; the API is not meant to be exposed.
func Start(ctx context.Context, port int, baseEnv requests.RequestEnv) error {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Post("/api", handlePost(baseEnv))
	r.Get("/api/version", func(w http.ResponseWriter, _ *http.Request) {
		result, _ := methods.HandleVersion(baseEnv)
		writeJSON(w, result)
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf("127.0.0.1:%d", port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("starting api server")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("api server shutdown failed: %w", err)
		}
		return nil
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("api server failed: %w", err)
		}
		return nil
	}
}
