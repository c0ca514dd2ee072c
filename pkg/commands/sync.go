package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/packlist/pkg/app"
	"tableflip.dev/packlist/pkg/commands/options"
	"tableflip.dev/packlist/pkg/runner/remotesync"
)

func addSync(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Move the local snapshot to and from the remote store",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	upload := &cobra.Command{
		Use:   "upload",
		Short: "Push the local catalog and owned trips to the remote store",
		Long: options.Wrap80(`Push the local catalog and every trip this user owns to the remote store.
An upload that would replace remote data with an empty local catalog is refused.`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, func(svc *app.Service) runner {
				return &remotesync.Upload{JSON: output.JSON, Service: svc}
			})
		},
	}

	download := &cobra.Command{
		Use:   "download",
		Short: "Replace the local snapshot with the remote catalog and visible trips",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, func(svc *app.Service) runner {
				return &remotesync.Download{JSON: output.JSON, Service: svc}
			})
		},
	}

	cmd.AddCommand(upload, download)
	topLevel.AddCommand(cmd)
}
