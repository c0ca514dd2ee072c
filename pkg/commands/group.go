package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/packlist/pkg/app"
	"tableflip.dev/packlist/pkg/commands/options"
	"tableflip.dev/packlist/pkg/runner/group"
)

func addGroup(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "group",
		Short: "Manage catalog groups",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	var folderID string
	io := &options.IDOptions{}
	ls := &cobra.Command{
		Use:   "ls",
		Short: "List groups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, func(svc *app.Service) runner {
				return &group.List{FolderID: folderID, ShowID: io.ShowID, JSON: output.JSON, Service: svc}
			})
		},
	}
	ls.Flags().StringVar(&folderID, "folder", "", "Only list groups of this folder.")
	options.AddShowIDArgs(ls, io)

	var addFolderID string
	add := &cobra.Command{
		Use:   "add --folder <id> <name>",
		Short: "Add a group to a folder",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(svc *app.Service) runner {
				return &group.Add{FolderID: addFolderID, Name: joined(args), JSON: output.JSON, Service: svc}
			})
		},
	}
	add.Flags().StringVar(&addFolderID, "folder", "", "Folder to add the group to.")
	_ = add.MarkFlagRequired("folder")

	rename := &cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Rename a group",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(svc *app.Service) runner {
				return &group.Rename{ID: args[0], Name: joined(args[1:]), Service: svc}
			})
		},
	}

	rm := &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a group, moving its items to the folder's general group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(svc *app.Service) runner {
				return &group.Remove{ID: args[0], Service: svc}
			})
		},
	}

	cmd.AddCommand(ls, add, rename, rm)
	topLevel.AddCommand(cmd)
}
