package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/packlist/pkg/app"
	"tableflip.dev/packlist/pkg/runner/share"
)

func addShare(topLevel *cobra.Command) {
	shareCmd := &cobra.Command{
		Use:   "share <trip> <username>",
		Short: "Share a trip with another registered user",
		Example: `
packlist share 1b0c... alice
`,
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: tripCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(svc *app.Service) runner {
				return &share.Share{TripID: args[0], Username: args[1], JSON: output.JSON, Service: svc}
			})
		},
	}

	unshareCmd := &cobra.Command{
		Use:               "unshare <trip> <user-id>",
		Short:             "Stop sharing a trip with a user",
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: tripCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(svc *app.Service) runner {
				return &share.Unshare{TripID: args[0], UserID: args[1], JSON: output.JSON, Service: svc}
			})
		},
	}

	topLevel.AddCommand(shareCmd, unshareCmd)
}

func addUser(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage the remote user directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	register := &cobra.Command{
		Use:   "register <username>",
		Short: "Register the current user under a username so trips can be shared with them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(svc *app.Service) runner {
				return &share.Register{Username: args[0], Service: svc}
			})
		},
	}

	cmd.AddCommand(register)
	topLevel.AddCommand(cmd)
}
