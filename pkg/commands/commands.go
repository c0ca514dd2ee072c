package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/packlist/pkg/commands/options"
)

var (
	output = &options.OutputOptions{}
	user   = &options.UserOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "packlist",
		Short: options.Wrap80("Packing lists for trips, built from a reusable catalog of gear."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	options.AddOutputArg(cmd, output)
	options.AddUserArgs(cmd, user)

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addFolder(topLevel)
	addGroup(topLevel)
	addCategory(topLevel)
	addItem(topLevel)
	addBundle(topLevel)
	addTrip(topLevel)
	addSync(topLevel)
	addShare(topLevel)
	addUser(topLevel)
	addWatch(topLevel)
	addTheme(topLevel)
	addMigration(topLevel)
	addCompletions(topLevel)
	addUpgrade(topLevel)
	addVersion(topLevel)
}
