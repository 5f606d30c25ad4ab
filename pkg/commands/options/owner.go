package options

import (
	"github.com/spf13/cobra"
)

// OwnerOptions carries the owner flag used by action blocks.
type OwnerOptions struct {
	Owner string
}

func AddOwnerArg(cmd *cobra.Command, o *OwnerOptions) {
	cmd.Flags().StringVar(&o.Owner, "owner", "",
		"Assign an owner, mostly useful for actions.")
}
