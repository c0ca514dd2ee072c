package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/packlist/pkg/app"
	"tableflip.dev/packlist/pkg/catalog"
	"tableflip.dev/packlist/pkg/commands/options"
	"tableflip.dev/packlist/pkg/runner/item"
)

func joined(args []string) string {
	return strings.Join(args, " ")
}

func addItem(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Manage catalog items",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	filter := catalog.Filter{}
	io := &options.IDOptions{}
	ls := &cobra.Command{
		Use:   "ls",
		Short: "List and search catalog items",
		Example: `
packlist item ls --search cable --category cat_cables
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, func(svc *app.Service) runner {
				return &item.List{Filter: filter, ShowID: io.ShowID, JSON: output.JSON, Service: svc}
			})
		},
	}
	ls.Flags().StringVar(&filter.Query, "search", "", "Case-insensitive name search.")
	ls.Flags().StringVar(&filter.CategoryID, "category", "", "Only items of this category.")
	ls.Flags().StringVar(&filter.FolderID, "folder", "", "Only items of this folder.")
	ls.Flags().StringVar(&filter.GroupID, "group", "", "Only items of this group.")
	options.AddShowIDArgs(ls, io)

	a := &item.Add{}
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a catalog item",
		Example: `
packlist item add ST-Link --category cat_tools --version v2
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(svc *app.Service) runner {
				a.Name, a.JSON, a.Service = joined(args), output.JSON, svc
				return a
			})
		},
	}
	add.Flags().StringVar(&a.FolderID, "folder", "", "Folder id. Defaults to the system folder.")
	add.Flags().StringVar(&a.GroupID, "group", "", "Group id. Defaults to the folder's general group.")
	add.Flags().StringVar(&a.Category, "category", "", "Category id.")
	add.Flags().StringVar(&a.DefaultVersion, "version", "", "Default version note copied into trips.")

	var name, category, version, folderID, groupID string
	edit := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change an item's fields or move it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch := catalog.ItemPatch{}
			set := func(flag string, v *string) *string {
				if cmd.Flags().Changed(flag) {
					return v
				}
				return nil
			}
			patch.Name = set("name", &name)
			patch.Category = set("category", &category)
			patch.DefaultVersion = set("version", &version)
			patch.FolderID = set("folder", &folderID)
			patch.GroupID = set("group", &groupID)
			return run(cmd, func(svc *app.Service) runner {
				return &item.Edit{ID: args[0], Patch: patch, Service: svc}
			})
		},
	}
	edit.Flags().StringVar(&name, "name", "", "New name.")
	edit.Flags().StringVar(&category, "category", "", "New category id.")
	edit.Flags().StringVar(&version, "version", "", "New default version note.")
	edit.Flags().StringVar(&folderID, "folder", "", "Move to this folder.")
	edit.Flags().StringVar(&groupID, "group", "", "Move to this group.")

	rm := &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a catalog item; trips keep their copies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(svc *app.Service) runner {
				return &item.Remove{ID: args[0], Service: svc}
			})
		},
	}

	cmd.AddCommand(ls, add, edit, rm)
	topLevel.AddCommand(cmd)
}
