// Command recipes runs the recipe portal API.
//
//	recipes serve [--migrate]   start the HTTP server (default)
//	recipes migrate             apply the embedded schema migrations and exit
//
// Configuration comes from RECIPES_* environment variables, optionally
// loaded from a .env file.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

const name = "recipes"

var (
	// overridden during build with ldflags
	version = "dev"
	commit  = "unknown"
)

func newApp() *cli.Command {
	// The root command behaves like serve so a bare "recipes" starts the API.
	root := serveCmd()

	return &cli.Command{
		Name:    name,
		Usage:   "Recipe portal API server",
		Version: fmt.Sprintf("%s (%s)", version, commit),
		Commands: []*cli.Command{
			serveCmd(),
			migrateCmd(),
		},
		Flags:  root.Flags,
		Action: root.Action,
	}
}

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
