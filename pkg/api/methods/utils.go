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

// Package methods implements the JSON-RPC method handlers of the local API.
package methods

import (
	"encoding/json"
	"errors"
	"fmt"
	"runtime"

	"github.com/Petlus/UltimateGametimeTracker/pkg/api/models"
	"github.com/Petlus/UltimateGametimeTracker/pkg/api/models/requests"
	"github.com/Petlus/UltimateGametimeTracker/pkg/config"
	"github.com/go-playground/validator/v10"
)

// ErrInvalidParams wraps any params decode or validation failure so the
// server can map it to the right JSON-RPC error code.
var ErrInvalidParams = errors.New("invalid params")

var validate = validator.New(validator.WithRequiredStructEnabled())

// parseParams decodes and validates request params into out. Missing params
// are an error; methods with optional params call parseOptionalParams.
func parseParams(env requests.RequestEnv, out any) error {
	if len(env.Params) == 0 {
		return fmt.Errorf("%w: missing params", ErrInvalidParams)
	}
	if err := json.Unmarshal(env.Params, out); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidParams, err)
	}
	if err := validate.Struct(out); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidParams, err)
	}
	return nil
}

// parseOptionalParams decodes params when present, leaving out untouched
// otherwise.
func parseOptionalParams(env requests.RequestEnv, out any) error {
	if len(env.Params) == 0 {
		return nil
	}
	return parseParams(env, out)
}

func HandleVersion(_ requests.RequestEnv) (any, error) {
	return models.VersionResponse{
		Version:  config.AppVersion,
		Platform: runtime.GOOS,
	}, nil
}
