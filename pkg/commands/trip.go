package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"tableflip.dev/packlist/pkg/app"
	"tableflip.dev/packlist/pkg/catalog"
	"tableflip.dev/packlist/pkg/commands/options"
	"tableflip.dev/packlist/pkg/runner/pack"
	"tableflip.dev/packlist/pkg/runner/trips"
	"tableflip.dev/packlist/pkg/trip"
)

func addTrip(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "trip",
		Short: "Plan and pack trips",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	io := &options.IDOptions{}
	mo := &options.MonthOptions{}
	ls := &cobra.Command{
		Use:   "ls",
		Short: "List trips by status, or as a month calendar",
		Example: `
packlist trip ls
packlist trip ls --calendar --on 2024-6
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			month, err := mo.GetMonth()
			if err != nil {
				return output.HandleError(err)
			}
			return run(cmd, func(svc *app.Service) runner {
				return &trips.List{Month: month, ShowID: io.ShowID, JSON: output.JSON, Service: svc}
			})
		},
	}
	options.AddShowIDArgs(ls, io)
	options.AddMonthArgs(ls, mo)

	do := &options.DateOptions{}
	newCmd := &cobra.Command{
		Use:   "new <name>",
		Short: "Create a trip",
		Example: `
packlist trip new Berlin --date 2024-06-01
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := do.GetDate()
			if err != nil {
				return output.HandleError(err)
			}
			return run(cmd, func(svc *app.Service) runner {
				return &trips.New{Name: joined(args), Date: d, JSON: output.JSON, Service: svc}
			})
		},
	}
	options.AddDateArgs(newCmd, do)

	showIO := &options.IDOptions{}
	show := &cobra.Command{
		Use:               "show <trip>",
		Short:             "Show a trip with its groups and summary",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: tripCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(svc *app.Service) runner {
				return &trips.Show{ID: args[0], ShowID: showIO.ShowID, JSON: output.JSON, Service: svc}
			})
		},
	}
	options.AddShowIDArgs(show, showIO)

	summary := &cobra.Command{
		Use:               "summary <trip>",
		Short:             "Show quantities rolled up by category, name and version",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: tripCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(svc *app.Service) runner {
				return &trips.Show{ID: args[0], Summary: true, JSON: output.JSON, Service: svc}
			})
		},
	}

	var render bool
	export := &cobra.Command{
		Use:               "export <trip>",
		Short:             "Print a trip as plain text",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: tripCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(svc *app.Service) runner {
				return &trips.Export{ID: args[0], Render: render, Width: 80, Service: svc}
			})
		},
	}
	export.Flags().BoolVar(&render, "render", false, "Format the export as markdown for the terminal.")

	rm := &cobra.Command{
		Use:               "rm <trip>",
		Short:             "Remove a trip",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: tripCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(svc *app.Service) runner {
				return &trips.Remove{ID: args[0], Service: svc}
			})
		},
	}

	dup := &cobra.Command{
		Use:               "dup <trip>",
		Short:             "Duplicate a trip with every item unchecked",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: tripCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(svc *app.Service) runner {
				return &trips.Duplicate{ID: args[0], JSON: output.JSON, Service: svc}
			})
		},
	}

	packCmd := &cobra.Command{
		Use:               "pack <trip>",
		Short:             "Check items off interactively while packing",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: tripCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(svc *app.Service) runner {
				return &pack.Pack{ID: args[0], Service: svc}
			})
		},
	}

	cmd.AddCommand(ls, newCmd, show, summary, export, rm, dup, packCmd)
	addTripEdits(cmd)
	addTripGroup(cmd)
	topLevel.AddCommand(cmd)
}

func addTripEdits(parent *cobra.Command) {
	var groupID string
	add := &cobra.Command{
		Use:               "add <trip> <item>",
		Short:             "Add a catalog item to a trip",
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: tripCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, args[0], "Added item", trips.AddItem(args[1], groupID))
		},
	}
	add.Flags().StringVar(&groupID, "group", "", "Trip group id. Defaults to the first group.")

	var bundleGroupID string
	addBundle := &cobra.Command{
		Use:               "add-bundle <trip> <bundle>",
		Short:             "Add every item of a bundle to a trip",
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: tripCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, args[0], "Added bundle", trips.AddBundle(args[1], bundleGroupID))
		},
	}
	addBundle.Flags().StringVar(&bundleGroupID, "group", "", "Trip group id. Defaults to the first group.")

	set := &cobra.Command{
		Use:   "set <trip> <item> <field> <value>",
		Short: "Set an item's name, category, qty or version",
		Example: `
packlist trip set <trip> <item> qty 3
packlist trip set <trip> <item> version "fw 1.2"
`,
		Args:              cobra.MinimumNArgs(4),
		ValidArgsFunction: tripCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, args[0], "Updated item", trips.SetField(args[1], trip.Field(args[2]), joined(args[3:])))
		},
	}

	remove := &cobra.Command{
		Use:               "remove <trip> <item>",
		Short:             "Remove an item from a trip",
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: tripCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, args[0], "Removed item", trips.RemoveItem(args[1]))
		},
	}

	move := &cobra.Command{
		Use:               "move <trip> <group> <from> <to>",
		Short:             "Reorder an item within a trip group (0-based positions)",
		Args:              cobra.ExactArgs(4),
		ValidArgsFunction: tripCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := strconv.Atoi(args[2])
			if err != nil {
				return output.HandleError(fmt.Errorf("invalid from position %q", args[2]))
			}
			to, err := strconv.Atoi(args[3])
			if err != nil {
				return output.HandleError(fmt.Errorf("invalid to position %q", args[3]))
			}
			return runEdit(cmd, args[0], "Reordered items", trips.Reorder(args[1], from, to))
		},
	}

	moveItem := &cobra.Command{
		Use:               "move-item <trip> <item> <group>",
		Short:             "Move an item to the end of another trip group",
		Args:              cobra.ExactArgs(3),
		ValidArgsFunction: tripCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, args[0], "Moved item", trips.MoveItem(args[1], args[2]))
		},
	}

	check := &cobra.Command{
		Use:               "check <trip> <item>",
		Short:             "Toggle whether an item is packed",
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: tripCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, args[0], "", trips.Toggle(args[1]))
		},
	}

	clearCmd := &cobra.Command{
		Use:               "clear <trip>",
		Short:             "Remove every item from a trip",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: tripCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, args[0], "Cleared trip", trips.Clear())
		},
	}

	do := &options.DateOptions{}
	rename := &cobra.Command{
		Use:               "rename <trip> <name>",
		Short:             "Rename a trip and optionally change its date",
		Args:              cobra.MinimumNArgs(2),
		ValidArgsFunction: tripCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := do.GetDate()
			if err != nil {
				return output.HandleError(err)
			}
			return runEdit(cmd, args[0], "Updated trip", trips.Rename(joined(args[1:]), d))
		},
	}
	options.AddDateArgs(rename, do)

	parent.AddCommand(add, addBundle, set, remove, move, moveItem, check, clearCmd, rename)
}

func addTripGroup(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "group",
		Short: "Manage the groups of a trip",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	add := &cobra.Command{
		Use:               "add <trip> <name>",
		Short:             "Add a group to a trip",
		Args:              cobra.MinimumNArgs(2),
		ValidArgsFunction: tripCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, args[0], "Added group", trips.AddGroup(joined(args[1:])))
		},
	}

	rename := &cobra.Command{
		Use:               "rename <trip> <group> <name>",
		Short:             "Rename a trip group",
		Args:              cobra.MinimumNArgs(3),
		ValidArgsFunction: tripCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, args[0], "Renamed group", trips.RenameGroup(args[1], joined(args[2:])))
		},
	}

	rm := &cobra.Command{
		Use:               "rm <trip> <group>",
		Short:             "Remove a trip group and its items",
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: tripCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, args[0], "Removed group", trips.RemoveGroup(args[1]))
		},
	}

	cmd.AddCommand(add, rename, rm)
	parent.AddCommand(cmd)
}

func runEdit(cmd *cobra.Command, tripID, message string, apply func(*trip.Trip, *catalog.State) error) error {
	return run(cmd, func(svc *app.Service) runner {
		return &trips.Edit{ID: tripID, Apply: apply, Message: message, JSON: output.JSON, Service: svc}
	})
}
