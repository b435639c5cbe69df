// Package main implements the varinsight CLI: backward data-flow tracing
// for C#, plus the structural inspection commands (tree, structure, extract)
// it shares with its teacher.
package main

import (
	"os"

	"github.com/devlin-oss/varinsight/cmd/varinsight/commands"
)

var version = "dev"

func main() {
	commands.RootCmd.Version = version
	commands.RootCmd.SetVersionTemplate(`varinsight version {{.Version}}
`)

	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
