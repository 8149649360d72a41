package main

import (
	"os"

	"github.com/yogeshsaini7172/iosflingzzapp-sub002/internal/cli"
)

// Version information (set by build flags)
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	cli.SetVersionInfo(Version, Commit)
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
