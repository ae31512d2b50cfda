package main

import (
	"slices"

	"github.com/urfave/cli/v3"
)

// getCommands lists every subcommand: server and migrations, key and credential
// generation, then secret reads and writes.
func getCommands(version string) []*cli.Command {
	return slices.Concat(
		getSystemCommands(version),
		getKeyCommands(),
		getSecretCommands(),
	)
}
