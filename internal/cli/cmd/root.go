// Package cmd provides Cobra CLI commands for fsearch.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/fsearch/internal/cli"
	"github.com/bnema/fsearch/internal/domain/build"
	"github.com/bnema/fsearch/internal/logging"
)

var (
	app       *cli.App
	buildInfo build.Info
	rootCmd   = &cobra.Command{
		Use:   "fsearch",
		Short: "Quick-search overlay and tab switcher",
		Long: `fsearch - a quick-search overlay and tab switcher.

Press the search chord (Control+Enter by default) or double tap to open a
search box over the page. Type a query, pick a suggestion, or prefix an
engine shortcut such as "y:" or "w:" and press Enter. Hold the modifier and
press a tab key to list open tabs and switch between them.

Use 'fsearch run' to start the overlay in the terminal, or 'fsearch host'
to serve tabs and storage to a remote overlay over stdin/stdout.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip initialization for commands that don't need app context
			switch cmd.Name() {
			case "help", "completion", "version", "schema":
				return nil
			}

			var err error
			app, err = cli.NewApp()
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			app.BuildInfo = buildInfo
			logging.FromContext(app.Ctx()).Debug().
				Str("version", buildInfo.String()).
				Str("command", cmd.Name()).
				Msg("fsearch starting")
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app != nil {
				_ = app.Close()
			}
		},
	}
)

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// GetApp returns the initialized app (for use by subcommands).
func GetApp() *cli.App {
	return app
}

// SetBuildInfo sets the build information (called from main.go before Execute).
func SetBuildInfo(info build.Info) {
	buildInfo = info
}

func requireApp() (*cli.App, error) {
	a := GetApp()
	if a == nil {
		return nil, fmt.Errorf("app not initialized")
	}
	return a, nil
}
