// Copyright (c) little.freaky
// SPDX-License-Identifier: MPL-2.0

// Package cmd implements the unzip command line interface. It performs the
// parameter validation the build tool integration used to do: the source
// file must exist and the destination directory is created if it is absent.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/littlefreaky/unzip"
)

// CLI are the cli parameters for the unzip binary
type CLI struct {
	SourceFile        string           `arg:"" name:"source-file" help:"Path to the archive to extract." type:"existingfile"`
	DestinationDir    string           `arg:"" name:"destination-dir" help:"Directory to extract into. Created (including parents) if it does not exist."`
	MaxEntries        int64            `optional:"" default:"100000" help:"Maximum number of entries in the archive. (disable check: -1)"`
	MaxExtractionSize int64            `optional:"" default:"1073741824" help:"Maximum size of the extracted content (in bytes). (disable check: -1)"`
	MaxInputSize      int64            `optional:"" default:"1073741824" help:"Maximum size of the input archive (in bytes). (disable check: -1)"`
	Telemetry         bool             `short:"T" optional:"" default:"false" help:"Print telemetry data to log after extraction."`
	Type              string           `short:"t" optional:"" default:"" help:"Force archive type instead of detecting it. (\"7z\", \"br\", \"bz2\", \"gz\", \"lz4\", \"rar\", \"sz\", \"tar\", \"xz\", \"zip\", \"zst\", \"zz\")"`
	Verbose           bool             `short:"v" optional:"" help:"Verbose logging."`
	Version           kong.VersionFlag `short:"V" optional:"" help:"Print release version information."`
}

// Run is the entrypoint of the unzip cli tool
func Run(version, commit, date string) {
	ctx := context.Background()
	var cli CLI
	kong.Parse(&cli,
		kong.Description("Extract the contents of a compressed archive into a destination directory tree."),
		kong.UsageOnError(),
		kong.Vars{
			"version": fmt.Sprintf("%s (%s), commit %s, built at %s", filepath.Base(os.Args[0]), version, commit, date),
		},
	)

	// check for verbose output
	logLevel := slog.LevelError
	if cli.Verbose {
		logLevel = slog.LevelInfo
	}

	// setup logger
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))

	// the destination directory must never point to a file
	if stat, err := os.Lstat(cli.DestinationDir); err == nil && !stat.IsDir() {
		logger.Error("destination directory points to a file", "path", cli.DestinationDir)
		os.Exit(1)
	}

	// setup telemetry hook
	telemetryToLog := func(ctx context.Context, td *unzip.TelemetryData) {
		if cli.Telemetry {
			logger.Info("extraction finished", "telemetry", td)
		}
	}

	// process cli params
	cfg := unzip.NewConfig(
		unzip.WithCreateDestination(true),
		unzip.WithExtractionType(cli.Type),
		unzip.WithLogger(logger),
		unzip.WithMaxEntries(cli.MaxEntries),
		unzip.WithMaxExtractionSize(cli.MaxExtractionSize),
		unzip.WithMaxInputSize(cli.MaxInputSize),
		unzip.WithTelemetryHook(telemetryToLog),
	)

	// extract archive
	if err := unzip.Unpack(ctx, cli.SourceFile, cli.DestinationDir, cfg); err != nil {
		logger.Error("error during extraction", "error", err)
		os.Exit(1)
	}
}
