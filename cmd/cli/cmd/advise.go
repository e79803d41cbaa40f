// Package cmd - advise command
package cmd

import (
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"cloudguide/core/advisory"
	"cloudguide/core/types"
	"cloudguide/core/ui"
	"cloudguide/internal/logging"
)

var adviseExplain bool

// adviseCmd evaluates a migration profile
var adviseCmd = &cobra.Command{
	Use:   "advise <profile>",
	Short: "Recommend a migration strategy for a profile",
	Long: `Evaluate a migration profile (JSON or YAML, "-" for stdin) and print
the recommended strategy, cost band, timeline, risks and recommendations.

Examples:
  cloudguide advise profile.yaml
  cloudguide advise --explain --format markdown profile.json`,
	Args: cobra.ExactArgs(1),
	RunE: runAdvise,
}

func init() {
	adviseCmd.Flags().BoolVar(&adviseExplain, "explain", false, "list the rules that fired")
	rootCmd.AddCommand(adviseCmd)
}

func runAdvise(cmd *cobra.Command, args []string) error {
	var profile types.MigrationProfile
	if err := readInput(args[0], &profile); err != nil {
		return err
	}

	f, err := formatter()
	if err != nil {
		return err
	}

	result := newEngine().Advise(profile)
	logging.Debug("advisory evaluated",
		zap.String("strategy", result.MigrationStrategy),
		zap.Strings("rules", result.MatchedRules),
	)

	if err := f.RenderAdvisory(stdout(cmd), &result); err != nil {
		return err
	}

	if adviseExplain {
		explain(newWriter(stdout(cmd)), result.MatchedRules)
	}
	return nil
}

// explain prints every rule in evaluation order and highlights the ones that fired
func explain(w *ui.Writer, matched []string) {
	fired := make(map[string]bool, len(matched))
	for _, name := range matched {
		fired[name] = true
	}

	w.SubHeader("Rules")
	table := w.NewTable("Table", "Kind", "#", "Rule")
	for _, r := range advisory.Rules() {
		cells := []string{r.Table, string(r.Kind), strconv.Itoa(r.Position), r.Name}
		if fired[r.Name] {
			table.AddHighlightedRow(cells...)
		} else {
			table.AddRow(cells...)
		}
	}
	table.Render()
}
