// Package cmd - provider catalog commands
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"cloudguide/core/catalog"
	"cloudguide/core/engine"
	"cloudguide/core/types"
	"cloudguide/core/ui"
)

// providersCmd lists the catalog or shows one provider
var providersCmd = &cobra.Command{
	Use:   "providers [name]",
	Short: "Show the provider catalog",
	Long: `List every provider in the catalog, or show one provider's regions,
rates and feature support.

Examples:
  cloudguide providers
  cloudguide providers huawei --format yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runProviders,
}

// diskCmd recommends a disk type
var diskCmd = &cobra.Command{
	Use:   "disk <use-case>",
	Short: "Recommend a disk type for a workload",
	Long: fmt.Sprintf(`Print the disk type recommended for a use case.

Use cases: %s`, strings.Join(useCaseNames(), ", ")),
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		useCase := types.UseCase(args[0])
		fmt.Fprintf(stdout(cmd), "%s\n", newEngine().RecommendDisk(useCase))
	},
}

func init() {
	rootCmd.AddCommand(providersCmd)
	rootCmd.AddCommand(diskCmd)
}

func useCaseNames() []string {
	out := make([]string, len(types.AllUseCases))
	for i, u := range types.AllUseCases {
		out[i] = string(u)
	}
	return out
}

func runProviders(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	eng := newEngine()

	var v interface{}
	if len(args) == 1 {
		detail, err := eng.Provider(ctx, args[0])
		if err != nil {
			return err
		}
		v = detail
	} else {
		entries, err := eng.Providers(ctx)
		if err != nil {
			return err
		}
		v = entries
	}

	switch outputFormat {
	case "json":
		enc := json.NewEncoder(stdout(cmd))
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(stdout(cmd))
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(v)
	}

	w := newWriter(stdout(cmd))
	switch x := v.(type) {
	case []*catalog.ProviderEntry:
		table := w.NewTable("Provider", "Name", "SLA", "Regions", "Active")
		for _, e := range x {
			table.AddRow(string(e.Provider), e.DisplayName, e.SLA,
				fmt.Sprintf("%d/%d", len(e.AvailableRegions()), len(e.Regions)), yesNo(e.IsActive))
		}
		table.Render()
	default:
		renderProvider(w, v.(*engine.ProviderDetail))
	}
	return nil
}

func renderProvider(w *ui.Writer, d *engine.ProviderDetail) {
	w.Header(d.DisplayName)
	if d.Description != "" {
		w.Println("%s", d.Description)
	}

	w.NewBox().
		Add("Short name", d.ShortName).
		Add("SLA", d.SLA).
		Add("Active", yesNo(d.IsActive)).
		Add("Features", fmt.Sprintf("%d yes, %d partial, %d no", d.FeatureStats.Yes, d.FeatureStats.Partial, d.FeatureStats.No)).
		Render()

	w.SubHeader("Regions")
	regions := w.NewTable("Region", "Label", "Available")
	for _, r := range d.Regions {
		regions.AddRow(string(r.Region), r.Label, yesNo(r.Available))
	}
	regions.Render()

	w.SubHeader("Features")
	features := w.NewTable("Feature", "Category", "Support")
	for _, f := range catalog.Features {
		support := d.Features[f.Name]
		if support == "" {
			support = catalog.SupportNo
		}
		if support == catalog.SupportYes {
			features.AddHighlightedRow(f.Name, f.Category, string(support))
		} else {
			features.AddRow(f.Name, f.Category, string(support))
		}
	}
	features.Render()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
