package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/packlist/pkg/app"
	"tableflip.dev/packlist/pkg/runner/migrate"
)

func addMigration(topLevel *cobra.Command) {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Fold legacy per-collection records into the current snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, func(svc *app.Service) runner {
				return &migrate.Migrate{DryRun: dryRun, JSON: output.JSON, Service: svc}
			})
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report what would be migrated without writing")
	topLevel.AddCommand(cmd)
}
