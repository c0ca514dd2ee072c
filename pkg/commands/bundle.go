package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/packlist/pkg/app"
	"tableflip.dev/packlist/pkg/catalog"
	"tableflip.dev/packlist/pkg/commands/options"
	"tableflip.dev/packlist/pkg/runner/bundle"
)

func addBundle(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "bundle",
		Short: "Manage saved item bundles",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	io := &options.IDOptions{}
	ls := &cobra.Command{
		Use:   "ls",
		Short: "List bundles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, func(svc *app.Service) runner {
				return &bundle.List{ShowID: io.ShowID, JSON: output.JSON, Service: svc}
			})
		},
	}
	options.AddShowIDArgs(ls, io)

	var addItems []string
	add := &cobra.Command{
		Use:   "add <name> --item id[:qty]...",
		Short: "Save a bundle of catalog items",
		Example: `
packlist bundle add "Flash kit" --item item_seed_01:2 --item item_seed_02
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := bundle.ParseLines(addItems)
			if err != nil {
				return output.HandleError(err)
			}
			return run(cmd, func(svc *app.Service) runner {
				return &bundle.Add{Name: joined(args), Lines: lines, JSON: output.JSON, Service: svc}
			})
		},
	}
	add.Flags().StringArrayVar(&addItems, "item", nil, "Catalog item id with optional quantity, id[:qty]. Repeatable.")

	var editName string
	var editItems []string
	edit := &cobra.Command{
		Use:   "edit <id>",
		Short: "Rename a bundle or replace its items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch := catalog.BundlePatch{}
			if cmd.Flags().Changed("name") {
				patch.Name = &editName
			}
			if cmd.Flags().Changed("item") {
				lines, err := bundle.ParseLines(editItems)
				if err != nil {
					return output.HandleError(err)
				}
				patch.Items = lines
			}
			return run(cmd, func(svc *app.Service) runner {
				return &bundle.Edit{ID: args[0], Patch: patch, Service: svc}
			})
		},
	}
	edit.Flags().StringVar(&editName, "name", "", "New name.")
	edit.Flags().StringArrayVar(&editItems, "item", nil, "Replacement items, id[:qty]. Repeatable.")

	rm := &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a bundle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(svc *app.Service) runner {
				return &bundle.Remove{ID: args[0], Service: svc}
			})
		},
	}

	cmd.AddCommand(ls, add, edit, rm)
	topLevel.AddCommand(cmd)
}
