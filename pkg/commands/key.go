package commands

import (
	"github.com/spf13/cobra"

	"github.com/huddlenotes/huddle/pkg/printers"
)

func addKey(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Show the block kind legend",
		Example: `
huddle key
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			pp := printers.PrettyPrint{}
			pp.Legend()
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}
