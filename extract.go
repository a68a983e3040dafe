// Copyright (c) little.freaky
// SPDX-License-Identifier: MPL-2.0

package unzip

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"
)

// Unpack extracts the archive at src into the destination directory dst.
// It opens a session, mirrors every root entry onto dst and closes the
// session on every exit path. If cfg is nil, the default configuration is
// used.
//
// Extraction is all-or-nothing: the first failure aborts the run and is
// returned, although files written before the failure point remain on disk.
func Unpack(ctx context.Context, src string, dst string, cfg *Config) error {
	if cfg == nil {
		cfg = NewConfig()
	}

	s, err := Open(src, cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	// prepare telemetry data collection and emit
	td := &TelemetryData{ExtractedType: s.Format(), InputSize: s.inputSize}
	defer cfg.TelemetryHook()(ctx, td)
	defer captureExtractionDuration(td, now())

	if err := ensureDestination(cfg, dst); err != nil {
		return handleError(td, err)
	}

	for _, root := range s.RootEntries() {
		if err := s.extractEntry(ctx, root, dst, 0, td); err != nil {
			return err
		}
	}
	return nil
}

// Extract mirrors the subtree below entry onto the destination directory
// dst: for every child a directory or file of the same name is created
// under dst, depth-first, directories before their descendants.
//
// The first failure aborts the extraction of the subtree and is returned.
func (s *Session) Extract(ctx context.Context, entry *Entry, dst string) error {
	cfg := s.cfg

	// prepare telemetry data collection and emit
	td := &TelemetryData{ExtractedType: s.format, InputSize: s.inputSize}
	defer cfg.TelemetryHook()(ctx, td)
	defer captureExtractionDuration(td, now())

	if err := ensureDestination(cfg, dst); err != nil {
		return handleError(td, err)
	}
	return s.extractEntry(ctx, entry, dst, 0, td)
}

// ensureDestination verifies that dst is an existing directory, creating it
// (including parents) if configured.
func ensureDestination(cfg *Config, dst string) error {
	stat, err := cfg.Target().Lstat(dst)
	switch {
	case err == nil && stat.IsDir():
		return nil
	case err == nil:
		return &DirectoryCreateError{Path: dst, Err: errors.New("destination is not a directory")}
	case os.IsNotExist(err):
		if !cfg.CreateDestination() {
			return &DirectoryCreateError{Path: dst, Err: errors.New("destination does not exist")}
		}
		if err := cfg.Target().CreateDir(dst, cfg.CustomCreateDirMode()); err != nil {
			return &DirectoryCreateError{Path: dst, Err: err}
		}
		cfg.Logger().Info("created destination directory", "path", dst)
		return nil
	default:
		return &DirectoryCreateError{Path: dst, Err: err}
	}
}

// extractEntry processes the children of entry in archive-defined order and
// recurses into subdirectories, pre-order.
func (s *Session) extractEntry(ctx context.Context, entry *Entry, dst string, depth int, td *TelemetryData) error {
	cfg := s.cfg

	// malformed archives may claim self-referential structure; the folded
	// tree is acyclic, but cap the depth anyway
	if depth > cfg.MaxRecursionDepth() {
		return handleError(td, &ReadError{Path: entry.Path(), Err: ErrMaxRecursionDepthExceeded})
	}

	children, err := s.Children(entry)
	if err != nil {
		return handleError(td, err)
	}

	for _, child := range children {
		// check if context is canceled
		if err := ctx.Err(); err != nil {
			return handleError(td, err)
		}

		destPath := filepath.Join(dst, child.Name())
		cfg.Logger().Debug("extract", "name", child.Path())

		if child.IsDir() {
			if err := s.createDirectory(child, destPath, td); err != nil {
				return handleError(td, err)
			}
			if err := s.extractEntry(ctx, child, destPath, depth+1, td); err != nil {
				return err
			}
			continue
		}

		if err := s.copyFile(child, destPath, td); err != nil {
			return handleError(td, err)
		}
	}
	return nil
}

// createDirectory materializes a directory entry at destPath. An existing
// directory is kept (idempotent overwrite); an existing non-directory is a
// kind conflict and left untouched.
func (s *Session) createDirectory(e *Entry, destPath string, td *TelemetryData) error {
	t := s.cfg.Target()

	stat, err := t.Lstat(destPath)
	switch {
	case err == nil && stat.IsDir():
		// already materialized

	case err == nil:
		return &DirectoryCreateError{Path: destPath, Err: errors.New("existing file is not a directory")}

	case os.IsNotExist(err):
		mode := e.Mode().Perm()
		if mode == 0 {
			mode = s.cfg.CustomCreateDirMode()
		}
		if err := t.CreateDir(destPath, mode); err != nil {
			return &DirectoryCreateError{Path: destPath, Err: err}
		}

	default:
		return &DirectoryCreateError{Path: destPath, Err: err}
	}

	td.ExtractedDirs++
	return nil
}

// copyFile copies the content of a file entry to destPath, replacing an
// existing file, and restores preservable attributes best-effort.
func (s *Session) copyFile(e *Entry, destPath string, td *TelemetryData) error {
	cfg := s.cfg

	if err := cfg.CheckExtractionSize(td.ExtractionSize + e.Size()); err != nil {
		return &CopyError{Path: destPath, Err: err}
	}

	src, err := s.OpenContent(e)
	if err != nil {
		return err
	}
	defer src.Close()

	// the zip format does not expose an executable bit through all
	// producers; fall back to a plain file mode instead of inventing one
	mode := e.Mode().Perm()
	if mode == 0 {
		mode = 0644
	}

	maxSize := cfg.MaxExtractionSize()
	if maxSize != -1 {
		maxSize -= td.ExtractionSize
	}
	n, err := cfg.Target().CreateFile(destPath, src, mode, maxSize)
	td.ExtractionSize += n
	if err != nil {
		return &CopyError{Path: destPath, Err: err}
	}
	td.ExtractedFiles++

	// best-effort attribute restoration: log, never fail
	if mt := e.ModTime(); !mt.IsZero() {
		if err := cfg.Target().Chtimes(destPath, time.Now(), mt); err != nil {
			td.AttributeErrors++
			cfg.Logger().Warn("cannot restore modification time", "path", destPath, "error", err)
		}
	}

	cfg.Logger().Debug("extracted file", "path", destPath, "size", n)
	return nil
}

// handleError records err in the telemetry data and returns it. Extraction
// is all-or-nothing, so every recorded error also ends the run.
func handleError(td *TelemetryData, err error) error {
	td.ExtractionErrors++
	td.LastExtractionError = err
	return err
}
