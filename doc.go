// Copyright (c) little.freaky
// SPDX-License-Identifier: MPL-2.0

// Package unzip recreates the directory tree of a compressed archive on disk.
//
// An archive is opened with [Open], which detects the archive type from its
// magic bytes and exposes the archive's internal hierarchy as a navigable
// tree of [Entry] values through a [Session]. The session's tree is mirrored
// under a destination directory with [Session.Extract], or in one step with
// [Unpack], which opens, extracts and closes the session on every exit path.
//
// Extraction is depth-first and idempotent: directories are created before
// their descendants, existing files are replaced, and re-running an
// extraction produces the same destination tree. Any failure aborts the run;
// only best-effort attribute restoration (such as the modification time) is
// logged instead of raised.
//
// Configuration is done using the [Config] option pattern, which sets the
// logger, the telemetry hook, the extraction target and the defensive limits.
// Telemetry data captured during an extraction is delivered as
// [TelemetryData] to the configured hook.
package unzip
