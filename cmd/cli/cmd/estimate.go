// Package cmd - estimate command
package cmd

import (
	"github.com/spf13/cobra"

	"cloudguide/core/questionnaire"
	"cloudguide/core/types"
)

var estimateFromProfile bool

// estimateCmd prices a migration project from questionnaire answers
var estimateCmd = &cobra.Command{
	Use:   "estimate <answers>",
	Short: "Estimate migration project cost from questionnaire answers",
	Long: `Price a migration project from questionnaire answers (JSON or YAML,
"-" for stdin). Checkbox questions take a list, every other question a
single value.

With --profile the input is a migration profile, which is mapped onto the
questionnaire before pricing.

Examples:
  cloudguide estimate answers.yaml
  cloudguide estimate --profile profile.json --format markdown`,
	Args: cobra.ExactArgs(1),
	RunE: runEstimate,
}

func init() {
	estimateCmd.Flags().BoolVar(&estimateFromProfile, "profile", false, "treat the input as a migration profile")
	rootCmd.AddCommand(estimateCmd)
}

func runEstimate(cmd *cobra.Command, args []string) error {
	f, err := formatter()
	if err != nil {
		return err
	}
	eng := newEngine()

	var result *questionnaire.Result
	if estimateFromProfile {
		var profile types.MigrationProfile
		if err := readInput(args[0], &profile); err != nil {
			return err
		}
		result, err = eng.EstimateProfile(profile)
	} else {
		var answers questionnaire.Answers
		if err := readInput(args[0], &answers); err != nil {
			return err
		}
		result, err = eng.EstimateProject(answers)
	}
	if err != nil {
		return err
	}

	return f.RenderEstimate(stdout(cmd), result)
}
