package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/huddlenotes/huddle/pkg/commands/options"
	"github.com/huddlenotes/huddle/pkg/tui/board"
)

func addBoard(topLevel *cobra.Command) {
	mo := &options.MeetingOptions{}

	cmd := &cobra.Command{
		Use:   "board [meeting]",
		Short: "Open the interactive board",
		Example: `
huddle board
huddle board Sprint Review
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				mo.Meeting = strings.Join(args, " ")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, p, err := loadServiceAndStore()
			if err != nil {
				return err
			}
			m, err := resolveMeeting(svc, mo)
			if err != nil {
				return output.HandleError(err)
			}
			return board.Run(svc, m.ID, p)
		},
	}

	topLevel.AddCommand(cmd)
}
