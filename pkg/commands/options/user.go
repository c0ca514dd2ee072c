package options

import (
	"github.com/spf13/cobra"
)

// UserOptions select whose snapshot a command works on.
type UserOptions struct {
	User    string
	Verbose bool
}

func AddUserArgs(cmd *cobra.Command, o *UserOptions) {
	cmd.PersistentFlags().StringVar(&o.User, "user", "",
		"Local user id. Overrides the configured user.")
	cmd.PersistentFlags().BoolVarP(&o.Verbose, "verbose", "v", false,
		"Log sync and sharing diagnostics to stderr.")
}
