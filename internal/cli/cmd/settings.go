package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bnema/fsearch/internal/application/usecase"
	"github.com/bnema/fsearch/internal/cli/styles"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change search preferences",
	Long: `Show or change the preferences stored under the search_props_ key.

Keys: ` + strings.Join(usecase.SettingKeys, ", "),
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the preferences in effect",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set one preference",
	Long: `Set one preference. The value is parsed as JSON and taken as a plain
string when it is not valid JSON.

Examples:
  fsearch settings set lang ru
  fsearch settings set self true
  fsearch settings set keys '["Alt","s"]'
  fsearch settings set shortcuts '["f:facebook.com","gh:github.com"]'`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore the default preferences",
	Args:  cobra.NoArgs,
	RunE:  runSettingsReset,
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsResetCmd)
}

func runSettingsShow(_ *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	s, err := a.SettingsUC.Load(a.Ctx())
	if err != nil {
		return err
	}
	fmt.Println(styles.NewReportRenderer(a.Theme).RenderSettings(s))
	return nil
}

func runSettingsSet(_ *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	s, err := a.SettingsUC.Set(a.Ctx(), args[0], args[1])
	if err != nil {
		return err
	}
	r := styles.NewReportRenderer(a.Theme)
	fmt.Println(r.RenderSuccess("updated " + args[0]))
	fmt.Println(r.RenderSettings(s))
	return nil
}

func runSettingsReset(_ *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	if err := a.SettingsUC.Reset(a.Ctx()); err != nil {
		return err
	}
	fmt.Println(styles.NewReportRenderer(a.Theme).RenderSuccess("settings reset to defaults"))
	return nil
}
