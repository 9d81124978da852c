package main

import (
	"fmt"
	"os"

	app "github.com/valter-silva-au/triagevault/internal"
	"github.com/valter-silva-au/triagevault/internal/cli"
	"github.com/valter-silva-au/triagevault/internal/config"
)

// Set by goreleaser ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.SetVersionInfo(version, commit, date)

	basePath, err := config.ResolveBasePath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving base path: %v\n", err)
		os.Exit(1)
	}

	a, err := app.NewApp(basePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing tvault: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = a.Close() }()

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
