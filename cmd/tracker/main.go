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

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/Petlus/UltimateGametimeTracker/pkg/config"
	"github.com/Petlus/UltimateGametimeTracker/pkg/database/syncdb"
	"github.com/Petlus/UltimateGametimeTracker/pkg/database/userdb"
	"github.com/Petlus/UltimateGametimeTracker/pkg/helpers"
	"github.com/Petlus/UltimateGametimeTracker/pkg/service"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	versionFlag := flag.Bool("version", false, "print version and exit")
	debugFlag := flag.Bool("debug", false, "enable debug logging")
	quietFlag := flag.Bool("quiet", false, "log to file only")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("gametime-tracker v%s\n", config.AppVersion)
		os.Exit(0)
	}

	if err := run(*debugFlag, *quietFlag); err != nil {
		log.Error().Err(err).Msg("service exited with error")
		os.Exit(1)
	}
}

func run(debug, quiet bool) error {
	var writers []io.Writer
	if !quiet {
		writers = append(writers, helpers.ConsoleWriter())
	}
	if err := helpers.InitLogging(helpers.LogDir(), writers); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	cfg, err := config.NewConfig(helpers.ConfigDir(), config.BaseDefaults)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if debug || cfg.DebugLogging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	log.Info().Str("version", config.AppVersion).Msg("starting gametime tracker")

	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	dataDir := helpers.DataDir()
	if err := os.MkdirAll(dataDir, 0o750); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	userDB, err := userdb.Open(ctx, dataDir)
	if err != nil {
		return fmt.Errorf("failed to open session database: %w", err)
	}
	defer func() {
		if closeErr := userDB.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("failed to close session database")
		}
	}()

	syncDB, err := syncdb.Open(dataDir)
	if err != nil {
		return fmt.Errorf("failed to open sync database: %w", err)
	}
	defer func() {
		if closeErr := syncDB.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("failed to close sync database")
		}
	}()

	svc := service.New(cfg, userDB, syncDB)
	if err := svc.Run(ctx); err != nil {
		return err
	}

	log.Info().Msg("shutdown complete")
	return nil
}
