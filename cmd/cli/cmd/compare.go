// Package cmd - compare command
package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"cloudguide/adapters/storage"
	"cloudguide/core/engine"
	"cloudguide/core/types"
	"cloudguide/internal/errors"
	"cloudguide/internal/logging"
)

var (
	compareSpecFile  string
	compareVCPU      int
	compareRAM       float64
	compareStorage   float64
	compareOS        string
	compareDisk      string
	compareUseCase   string
	compareRegion    string
	compareProviders []string
	compareSaveUser  string
	compareSaveTitle string
	compareTimeout   time.Duration
)

// compareCmd prices one spec on every provider
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare monthly costs across providers",
	Long: `Price an infrastructure spec on every active provider and mark the
most economical one.

The spec comes from flags or from --spec (JSON or YAML). When --disk is
omitted the disk type is recommended from --use-case.

Examples:
  cloudguide compare --vcpu 4 --ram 16 --storage 256 --region europe
  cloudguide compare --spec spec.yaml --providers aws,huawei
  cloudguide compare --spec spec.json --save alice --title "web tier"`,
	Args: cobra.NoArgs,
	RunE: runCompare,
}

func init() {
	f := compareCmd.Flags()
	f.StringVar(&compareSpecFile, "spec", "", "spec file (JSON or YAML); overrides sizing flags")
	f.IntVar(&compareVCPU, "vcpu", 2, "virtual CPUs")
	f.Float64Var(&compareRAM, "ram", 4, "memory in GB")
	f.Float64Var(&compareStorage, "storage", 100, "disk size in GB")
	f.StringVar(&compareOS, "os", string(types.OSUbuntuLTS), "operating system")
	f.StringVar(&compareDisk, "disk", "", "disk type (default: recommended for --use-case)")
	f.StringVar(&compareUseCase, "use-case", string(types.UseCaseWebApp), "workload use case")
	f.StringVar(&compareRegion, "region", string(types.RegionEurope), "pricing region")
	f.StringSliceVarP(&compareProviders, "providers", "p", nil, "providers to compare (default: all)")
	f.StringVar(&compareSaveUser, "save", "", "save the comparison as an analysis owned by this user")
	f.StringVar(&compareSaveTitle, "title", "", "title of the saved analysis")
	f.DurationVar(&compareTimeout, "timeout", 30*time.Second, "timeout for loading rates")

	rootCmd.AddCommand(compareCmd)
}

func compareSpec() (types.InfrastructureSpec, error) {
	if compareSpecFile != "" {
		var spec types.InfrastructureSpec
		err := readInput(compareSpecFile, &spec)
		return spec, err
	}

	useCase := types.UseCase(compareUseCase)
	disk := types.DiskType(compareDisk)
	if disk == "" {
		disk = newEngine().RecommendDisk(useCase)
	}
	return types.InfrastructureSpec{
		VCPU:     compareVCPU,
		RAM:      compareRAM,
		Storage:  compareStorage,
		OS:       types.OS(compareOS),
		DiskType: disk,
		UseCase:  useCase,
		Region:   types.Region(compareRegion),
	}, nil
}

func compareProviderList() ([]types.Provider, error) {
	var out []types.Provider
	for _, name := range compareProviders {
		p, ok := types.ParseProvider(name)
		if !ok {
			return nil, errors.NotFound("provider", strings.TrimSpace(name))
		}
		out = append(out, p)
	}
	return out, nil
}

func runCompare(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), compareTimeout)
	defer cancel()
	start := time.Now()

	spec, err := compareSpec()
	if err != nil {
		return err
	}
	providers, err := compareProviderList()
	if err != nil {
		return err
	}

	f, err := formatter()
	if err != nil {
		return err
	}

	req := engine.CompareRequest{Spec: spec, Providers: providers}
	cmp, err := newEngine().Compare(ctx, req)
	if err != nil {
		return err
	}
	logging.Debug("comparison complete", logging.Elapsed(start))
	status := newWriter(cmd.ErrOrStderr())
	status.Detail("input hash %s", cmp.Metadata.InputHash)

	if err := f.RenderComparison(stdout(cmd), cmp); err != nil {
		return err
	}

	if compareSaveUser == "" {
		return nil
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	title := compareSaveTitle
	if title == "" {
		title = fmt.Sprintf("%d vCPU / %s GB in %s", spec.VCPU, trimFloat(spec.RAM), spec.Region)
	}
	a := &storage.SavedAnalysis{
		UserID:    compareSaveUser,
		Title:     title,
		Config:    storage.AnalysisConfig{Spec: spec, Providers: providers},
		Estimates: cmp.Estimates,
	}
	if err := store.Save(ctx, a); err != nil {
		return err
	}
	status.Info("Saved analysis %s", a.ID)
	return nil
}

func trimFloat(v float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}
