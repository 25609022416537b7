package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bnema/fsearch/internal/app/messaging"
	"github.com/bnema/fsearch/internal/logging"
)

var hostCmd = &cobra.Command{
	Use:   "host",
	Short: "Serve tabs and storage over stdin/stdout",
	Long: `Run the background tab host on standard input and output.

Messages are JSON envelopes, each prefixed with its length as a 32-bit
little-endian integer. The host answers tabs, update, remove and
get_storage requests and pushes change_tab when the active tab changes.
It exits when stdin closes.`,
	RunE: runHost,
}

func init() {
	rootCmd.AddCommand(hostCmd)
}

func runHost(_ *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(a.Ctx(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logging.FromContext(ctx)
	log.Info().Int("tabs", len(a.Config.Host.Tabs)).Msg("host serving on stdio")

	conn := messaging.NewStreamConn(os.Stdin, os.Stdout)
	host := messaging.NewHost(conn, a.Tabs, a.Storage)
	if err := host.Serve(ctx); err != nil && ctx.Err() == nil {
		return fmt.Errorf("host: %w", err)
	}
	return nil
}
