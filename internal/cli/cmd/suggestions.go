package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/bnema/fsearch/internal/cli/styles"
)

var suggestionsCmd = &cobra.Command{
	Use:     "suggestions",
	Aliases: []string{"suggest"},
	Short:   "Manage remembered search queries",
}

var suggestionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored suggestions",
	Args:  cobra.NoArgs,
	RunE:  runSuggestionsList,
}

var suggestionsRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove a suggestion by id",
	Long:  `Remove a suggestion by the id shown in 'fsearch suggestions list'. Remaining ids are renumbered.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runSuggestionsRemove,
}

var suggestionsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget every suggestion",
	Args:  cobra.NoArgs,
	RunE:  runSuggestionsClear,
}

func init() {
	rootCmd.AddCommand(suggestionsCmd)
	suggestionsCmd.AddCommand(suggestionsListCmd)
	suggestionsCmd.AddCommand(suggestionsRemoveCmd)
	suggestionsCmd.AddCommand(suggestionsClearCmd)
}

func runSuggestionsList(_ *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	if err := a.SuggestionsUC.Load(a.Ctx()); err != nil {
		return err
	}
	fmt.Println(styles.NewReportRenderer(a.Theme).RenderSuggestions(a.SuggestionsUC.List()))
	return nil
}

func runSuggestionsRemove(_ *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid id %q: %w", args[0], err)
	}

	ctx := a.Ctx()
	if err := a.SuggestionsUC.Load(ctx); err != nil {
		return err
	}
	removed, err := a.SuggestionsUC.Remove(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("no suggestion with id %d", id)
	}
	if err := a.SuggestionsUC.Reindex(ctx); err != nil {
		return err
	}
	fmt.Println(styles.NewReportRenderer(a.Theme).RenderSuccess(fmt.Sprintf("removed suggestion %d", id)))
	return nil
}

func runSuggestionsClear(_ *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	if err := a.SuggestionsUC.Clear(a.Ctx()); err != nil {
		return err
	}
	fmt.Println(styles.NewReportRenderer(a.Theme).RenderSuccess("suggestions cleared"))
	return nil
}
