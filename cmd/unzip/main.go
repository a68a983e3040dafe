// Copyright (c) little.freaky
// SPDX-License-Identifier: MPL-2.0

package main

import "github.com/littlefreaky/unzip/cmd"

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// main starts the unzip cli
func main() {
	cmd.Run(version, commit, date)
}
