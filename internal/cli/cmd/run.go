package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bnema/fsearch/internal/cli/model"
	"github.com/bnema/fsearch/internal/logging"
)

// postBuffer bounds work queued from background goroutines.
const postBuffer = 64

var runHostname string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the search overlay in the terminal",
	Long: `Start the overlay against the in-process tab host.

The terminal stands in for the page: the configured tap key (f2 by default)
or a mouse click on the page acts as a touch tap, mouse clicks reach the
overlay and tab panel controls, and ctrl+c quits.`,
	RunE: runOverlay,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVar(&runHostname, "hostname", "", "page hostname checked against excluded hosts (overrides page.hostname)")
}

func runOverlay(_ *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	if runHostname != "" {
		a.Config.Page.Hostname = runHostname
	}

	log := logging.FromContext(a.Ctx())
	poster := model.NewPoster(postBuffer)
	defer poster.Stop()

	session, err := a.StartSession(poster.Post)
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}

	m := model.NewSearchModel(a.Ctx(), a.Theme, session.Controller, poster, a.Config.Page.Hostname, a.Config.UI.TapKey)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, runErr := p.Run()

	poster.Stop()
	if closeErr := session.Close(); closeErr != nil {
		log.Warn().Err(closeErr).Msg("session shutdown")
	}
	if runErr != nil {
		return fmt.Errorf("run overlay: %w", runErr)
	}
	return nil
}
