package main

import (
	"github.com/ectools/eccli/cmd"
)

// Version info set at build time via -ldflags.
var (
	version   = "dev"
	gitCommit = "unknown"
	buildTime = "unknown"
)

func main() {
	cmd.Execute(version, gitCommit, buildTime)
}
