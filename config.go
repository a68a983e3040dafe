// Copyright (c) little.freaky
// SPDX-License-Identifier: MPL-2.0

package unzip

import (
	"context"
	"io"
	"io/fs"
	"log/slog"
)

// ConfigOption is a function pointer to implement the option pattern
type ConfigOption func(*Config)

// Config is a struct type that holds all config options for opening and
// extracting an archive.
//
// The default configuration is designed to be secure by default and prevent
// resource exhaustion from malformed or malicious archives.
type Config struct {
	// createDestination creates the destination directory if it does not exist
	createDestination bool

	// customCreateDirMode is the mode for created directories that carry no
	// mode in the archive (respecting umask)
	customCreateDirMode fs.FileMode

	// extractionType forces the archive type instead of detecting it
	extractionType string

	// logger stream for extraction
	logger logger

	// maxEntries is the maximum number of entries (files and directories) in
	// an archive. Set value to -1 to disable the check.
	maxEntries int64

	// maxExtractionSize is the maximum size of the content after decompression.
	// Set value to -1 to disable the check.
	maxExtractionSize int64

	// maxInputSize is the maximum size of the input archive.
	// Set value to -1 to disable the check.
	maxInputSize int64

	// maxRecursionDepth caps the nesting depth of the archive tree
	maxRecursionDepth int

	// target is the filesystem the archive is extracted to
	target Target

	// telemetryHook is a function to consume telemetry data after a finished
	// extraction. Important: do not adjust this value after extraction started.
	telemetryHook TelemetryHook
}

// NewConfig is a generator option that takes opts as adjustments of the
// default configuration in an option pattern style
func NewConfig(opts ...ConfigOption) *Config {
	const (
		createDestination   = false
		customCreateDirMode = 0755
		extractionType      = ""
		maxEntries          = 100000        // 100k entries
		maxExtractionSize   = 1 << (10 * 3) // 1 Gb
		maxInputSize        = 1 << (10 * 3) // 1 Gb
		maxRecursionDepth   = 256
	)

	// disable logging by default
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))

	// setup default values
	config := &Config{
		createDestination:   createDestination,
		customCreateDirMode: customCreateDirMode,
		extractionType:      extractionType,
		logger:              logger,
		maxEntries:          maxEntries,
		maxExtractionSize:   maxExtractionSize,
		maxInputSize:        maxInputSize,
		maxRecursionDepth:   maxRecursionDepth,
		target:              NewTargetDisk(),
	}

	// apply all provided options
	for _, opt := range opts {
		opt(config)
	}

	return config
}

// CreateDestination returns true if the destination directory should be
// created if it does not exist.
func (c *Config) CreateDestination() bool {
	return c.createDestination
}

// CustomCreateDirMode returns the file mode for created directories that
// carry no mode in the archive.
func (c *Config) CustomCreateDirMode() fs.FileMode {
	return c.customCreateDirMode
}

// ExtractionType returns the forced archive type, or an empty string if the
// type is detected from the magic bytes.
func (c *Config) ExtractionType() string {
	return c.extractionType
}

// Logger returns the logger that is used during extraction.
func (c *Config) Logger() logger {
	return c.logger
}

// MaxEntries returns the maximum number of entries in an archive (-1 means
// disabled).
func (c *Config) MaxEntries() int64 {
	return c.maxEntries
}

// CheckMaxEntries checks if counter exceeds the configured maximum. If the
// maximum is exceeded, a [ErrMaxEntriesExceeded] error is returned.
func (c *Config) CheckMaxEntries(counter int64) error {
	if c.maxEntries == -1 {
		return nil
	}
	if counter > c.maxEntries {
		return ErrMaxEntriesExceeded
	}
	return nil
}

// MaxExtractionSize returns the maximum size of the content after
// decompression (-1 means disabled).
func (c *Config) MaxExtractionSize() int64 {
	return c.maxExtractionSize
}

// CheckExtractionSize checks if size exceeds the configured maximum. If the
// maximum is exceeded, a [ErrMaxExtractionSizeExceeded] error is returned.
func (c *Config) CheckExtractionSize(size int64) error {
	if c.maxExtractionSize == -1 {
		return nil
	}
	if size > c.maxExtractionSize {
		return ErrMaxExtractionSizeExceeded
	}
	return nil
}

// MaxInputSize returns the maximum size of the input archive (-1 means
// disabled).
func (c *Config) MaxInputSize() int64 {
	return c.maxInputSize
}

// MaxRecursionDepth returns the maximum nesting depth of the archive tree.
func (c *Config) MaxRecursionDepth() int {
	return c.maxRecursionDepth
}

// Target returns the filesystem the archive is extracted to.
func (c *Config) Target() Target {
	return c.target
}

// TelemetryHook returns the telemetry hook, or a no-op hook if none is set.
func (c *Config) TelemetryHook() TelemetryHook {
	if c.telemetryHook == nil {
		return func(ctx context.Context, td *TelemetryData) {
			// noop
		}
	}
	return c.telemetryHook
}

// WithCreateDestination options pattern function to create the destination
// directory (including parents) if it does not exist.
func WithCreateDestination(create bool) ConfigOption {
	return func(c *Config) {
		c.createDestination = create
	}
}

// WithCustomCreateDirMode options pattern function to set the mode for
// created directories that carry no mode in the archive.
func WithCustomCreateDirMode(mode fs.FileMode) ConfigOption {
	return func(c *Config) {
		c.customCreateDirMode = mode
	}
}

// WithExtractionType options pattern function to force the archive type
// instead of detecting it from the magic bytes.
func WithExtractionType(extractionType string) ConfigOption {
	return func(c *Config) {
		c.extractionType = extractionType
	}
}

// WithLogger options pattern function to set a custom logger
func WithLogger(logger logger) ConfigOption {
	return func(c *Config) {
		c.logger = logger
	}
}

// WithMaxEntries options pattern function to set maxEntries in the config
// (-1 to disable check)
func WithMaxEntries(maxEntries int64) ConfigOption {
	return func(c *Config) {
		c.maxEntries = maxEntries
	}
}

// WithMaxExtractionSize options pattern function to set maxExtractionSize in
// the config (-1 to disable check)
func WithMaxExtractionSize(maxExtractionSize int64) ConfigOption {
	return func(c *Config) {
		c.maxExtractionSize = maxExtractionSize
	}
}

// WithMaxInputSize options pattern function to set maxInputSize in the
// config (-1 to disable check)
func WithMaxInputSize(maxInputSize int64) ConfigOption {
	return func(c *Config) {
		c.maxInputSize = maxInputSize
	}
}

// WithMaxRecursionDepth options pattern function to cap the nesting depth of
// the archive tree.
func WithMaxRecursionDepth(depth int) ConfigOption {
	return func(c *Config) {
		c.maxRecursionDepth = depth
	}
}

// WithTarget options pattern function to set a custom extraction target
func WithTarget(target Target) ConfigOption {
	return func(c *Config) {
		c.target = target
	}
}

// WithTelemetryHook options pattern function to set a telemetry hook
func WithTelemetryHook(hook TelemetryHook) ConfigOption {
	return func(c *Config) {
		c.telemetryHook = hook
	}
}
