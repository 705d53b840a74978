package main

import (
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	healthuc "github.com/kailas-cloud/catalogo/internal/usecase/health"
)

func newCheckCmd(rt *runtimeEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the config and probe the catalog database",
		Long: `Loads the configuration, waits for the database and counts the catalog
table. Exits non-zero unless every check passes.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), rt.cfg, rt.logger)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			report := a.health.Check(cmd.Context())

			out := cmd.OutOrStdout()
			for _, name := range slices.Sorted(maps.Keys(report.Checks)) {
				fmt.Fprintf(out, "%-10s %s\n", name, report.Checks[name])
			}
			fmt.Fprintf(out, "%-10s %s\n", "status", report.Status)

			if report.Status != healthuc.Healthy {
				return fmt.Errorf("catalog is %s", report.Status)
			}
			return nil
		},
	}
}
