package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/huddlenotes/huddle/pkg/commands/options"
	"github.com/huddlenotes/huddle/pkg/printers"
)

func addShow(topLevel *cobra.Command) {
	mo := &options.MeetingOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "show [meeting]",
		Short: "Show a meeting's board",
		Example: `
huddle show
huddle show Sprint Review --show-id
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				mo.Meeting = strings.Join(args, " ")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadService()
			if err != nil {
				return err
			}
			m, err := resolveMeeting(svc, mo)
			if err != nil {
				return output.HandleError(err)
			}
			pp := printers.PrettyPrint{ShowID: io.ShowID}
			pp.Meeting(m)
			return nil
		},
	}

	options.AddShowIDArgs(cmd, io)
	topLevel.AddCommand(cmd)
}
