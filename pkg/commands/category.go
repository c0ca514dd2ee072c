package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/packlist/pkg/app"
	"tableflip.dev/packlist/pkg/catalog"
	"tableflip.dev/packlist/pkg/commands/options"
	"tableflip.dev/packlist/pkg/runner/category"
)

func addCategory(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "category",
		Aliases: []string{"cat"},
		Short:   "Manage item categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	io := &options.IDOptions{}
	ls := &cobra.Command{
		Use:   "ls",
		Short: "List categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, func(svc *app.Service) runner {
				return &category.List{ShowID: io.ShowID, JSON: output.JSON, Service: svc}
			})
		},
	}
	options.AddShowIDArgs(ls, io)

	var color string
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a category",
		Example: `
packlist category add Cables --color "#3b82f6"
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(svc *app.Service) runner {
				return &category.Add{Name: joined(args), Color: color, JSON: output.JSON, Service: svc}
			})
		},
	}
	add.Flags().StringVar(&color, "color", "", "Colour token, usually a hex colour.")

	var editName, editColor string
	edit := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a category's name or colour",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch := catalog.CategoryPatch{}
			if cmd.Flags().Changed("name") {
				patch.Name = &editName
			}
			if cmd.Flags().Changed("color") {
				patch.ColorToken = &editColor
			}
			return run(cmd, func(svc *app.Service) runner {
				return &category.Edit{ID: args[0], Patch: patch, Service: svc}
			})
		},
	}
	edit.Flags().StringVar(&editName, "name", "", "New name.")
	edit.Flags().StringVar(&editColor, "color", "", "New colour token.")

	rm := &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a category; items keep an unknown category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(svc *app.Service) runner {
				return &category.Remove{ID: args[0], Service: svc}
			})
		},
	}

	cmd.AddCommand(ls, add, edit, rm)
	topLevel.AddCommand(cmd)
}
