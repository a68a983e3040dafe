// Copyright (c) little.freaky
// SPDX-License-Identifier: MPL-2.0

package unzip

// logger is an interface that defines the logging functions that are used
// during extraction, most notably to report best-effort attribute failures
// without failing the run. It is satisfied by [log/slog.Logger].
type logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}
