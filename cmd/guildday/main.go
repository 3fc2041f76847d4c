// Package main is the single-binary entrypoint for GuildDay.
package main

import "github.com/guildday/guildday/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}
