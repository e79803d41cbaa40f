// Package cmd - saved analysis commands
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"cloudguide/adapters/storage"
	"cloudguide/core/output"
	"cloudguide/internal/config"
	"cloudguide/internal/errors"
)

var (
	analysesUser   string
	analysesLimit  int
	analysesOffset int
)

var analysesCmd = &cobra.Command{
	Use:   "analyses",
	Short: "Manage saved analyses",
	Long: `List, show and delete analyses saved with "compare --save" or the API.
The storage backend comes from the config file.`,
}

var analysesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List a user's analyses, newest first",
	Args:  cobra.NoArgs,
	RunE:  runAnalysesList,
}

var analysesShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one analysis",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalysesShow,
}

var analysesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an analysis owned by --user",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalysesDelete,
}

func init() {
	rootCmd.AddCommand(analysesCmd)
	analysesCmd.AddCommand(analysesListCmd, analysesShowCmd, analysesDeleteCmd)

	analysesCmd.PersistentFlags().StringVarP(&analysesUser, "user", "u", "", "owning user ID")
	analysesListCmd.Flags().IntVar(&analysesLimit, "limit", 20, "maximum analyses to list (0 for all)")
	analysesListCmd.Flags().IntVar(&analysesOffset, "offset", 0, "analyses to skip")
}

func requireUser() error {
	if analysesUser == "" {
		return errors.Input("--user is required").WithContext("flag", "user")
	}
	return nil
}

func withStore(fn func(ctx context.Context, store storage.Store) error) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return fn(ctx, store)
}

func runAnalysesList(cmd *cobra.Command, args []string) error {
	if err := requireUser(); err != nil {
		return err
	}
	return withStore(func(ctx context.Context, store storage.Store) error {
		list, err := store.List(ctx, storage.ListFilter{
			UserID: analysesUser,
			Limit:  analysesLimit,
			Offset: analysesOffset,
		})
		if err != nil {
			return err
		}

		if outputFormat == "json" {
			return json.NewEncoder(stdout(cmd)).Encode(list)
		}

		w := newWriter(stdout(cmd))
		if len(list) == 0 {
			w.Info("No saved analyses for %s", analysesUser)
			return nil
		}
		table := w.NewTable("ID", "Title", "Providers", "Created")
		for _, a := range list {
			table.AddRow(a.ID, a.Title, fmt.Sprintf("%d", len(a.Estimates)), a.CreatedAt.Format(time.RFC3339))
		}
		table.Render()
		return nil
	})
}

func runAnalysesShow(cmd *cobra.Command, args []string) error {
	f, err := formatter()
	if err != nil {
		return err
	}

	return withStore(func(ctx context.Context, store storage.Store) error {
		a, err := store.Get(ctx, args[0])
		if err != nil {
			return err
		}

		w := newWriter(stdout(cmd))
		if f.Format() == output.FormatCLI {
			w.NewBox().
				Add("ID", a.ID).
				Add("Title", a.Title).
				Add("Owner", a.UserID).
				Add("Input hash", a.InputHash).
				Add("Updated", a.UpdatedAt.Format(time.RFC3339)).
				Render()
		}

		cmp := &output.Comparison{
			Spec:      a.Config.Spec,
			Estimates: a.Estimates,
			Metadata: output.Metadata{
				Timestamp: a.CreatedAt,
				InputHash: a.InputHash,
				Currency:  config.Get().Pricing.DefaultCurrency,
			},
		}
		if err := f.RenderComparison(stdout(cmd), cmp); err != nil {
			return err
		}
		if a.Advisory != nil {
			return f.RenderAdvisory(stdout(cmd), a.Advisory)
		}
		return nil
	})
}

func runAnalysesDelete(cmd *cobra.Command, args []string) error {
	if err := requireUser(); err != nil {
		return err
	}
	return withStore(func(ctx context.Context, store storage.Store) error {
		if err := store.Delete(ctx, args[0], analysesUser); err != nil {
			return err
		}
		newWriter(stdout(cmd)).Success("Deleted analysis %s", args[0])
		return nil
	})
}
