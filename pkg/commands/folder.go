package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/packlist/pkg/app"
	"tableflip.dev/packlist/pkg/commands/options"
	"tableflip.dev/packlist/pkg/runner/folder"
)

func addFolder(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "folder",
		Short: "Manage catalog folders",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	io := &options.IDOptions{}
	ls := &cobra.Command{
		Use:   "ls",
		Short: "List folders",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, func(svc *app.Service) runner {
				return &folder.List{ShowID: io.ShowID, JSON: output.JSON, Service: svc}
			})
		},
	}
	options.AddShowIDArgs(ls, io)

	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a folder and its general group",
		Example: `
packlist folder add Camera
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(svc *app.Service) runner {
				return &folder.Add{Name: joined(args), JSON: output.JSON, Service: svc}
			})
		},
	}

	rename := &cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Rename a folder",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(svc *app.Service) runner {
				return &folder.Rename{ID: args[0], Name: joined(args[1:]), Service: svc}
			})
		},
	}

	rm := &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a folder, moving its items to the default folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(svc *app.Service) runner {
				return &folder.Remove{ID: args[0], Service: svc}
			})
		},
	}

	cmd.AddCommand(ls, add, rename, rm)
	topLevel.AddCommand(cmd)
}
