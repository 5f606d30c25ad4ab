package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/huddlenotes/huddle/pkg/commands/options"
	"github.com/huddlenotes/huddle/pkg/printers"
	"github.com/huddlenotes/huddle/pkg/timeutil"
)

func addMeeting(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "meeting",
		Aliases: []string{"meetings"},
		Short:   "Manage meetings",
		Example: `
huddle meeting new Sprint Review --attendees ada,lin
huddle meeting list
huddle meeting rm "Sprint Review"
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addMeetingNew(cmd)
	addMeetingList(cmd)
	addMeetingRemove(cmd)

	topLevel.AddCommand(cmd)
}

func addMeetingNew(topLevel *cobra.Command) {
	mo := &options.MeetingOptions{}
	title := ""

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a meeting",
		Example: `
huddle meeting new Sprint Review --attendees ada,lin
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a title")
			}
			title = strings.Join(args, " ")
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadService()
			if err != nil {
				return err
			}
			m, err := svc.CreateMeeting(title, mo.Attendees)
			if err != nil {
				return output.HandleError(err)
			}
			if err := svc.Flush(); err != nil {
				return output.HandleError(err)
			}
			fmt.Printf("created %q (%s)\n", m.Title, m.ID)
			return nil
		},
	}

	options.AddAttendeesArg(cmd, mo)
	topLevel.AddCommand(cmd)
}

func addMeetingList(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	since := ""

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List meetings",
		Example: `
huddle meeting list
huddle meeting list --since 2w
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadService()
			if err != nil {
				return err
			}
			meetings, err := svc.Meetings()
			if err != nil {
				return output.HandleError(err)
			}
			if since != "" {
				window, _, err := timeutil.ParseWindow(since)
				if err != nil {
					return output.HandleError(err)
				}
				kept := meetings[:0]
				for _, m := range meetings {
					if timeutil.Since(m.When.Time, window) {
						kept = append(kept, m)
					}
				}
				meetings = kept
			}
			pp := printers.PrettyPrint{ShowID: io.ShowID}
			pp.MeetingList(meetings...)
			return nil
		},
	}

	options.AddShowIDArgs(cmd, io)
	cmd.Flags().StringVar(&since, "since", "", "Only meetings inside this lookback window, like 2w or 3d.")
	topLevel.AddCommand(cmd)
}

func addMeetingRemove(topLevel *cobra.Command) {
	mo := &options.MeetingOptions{}

	cmd := &cobra.Command{
		Use:     "rm",
		Aliases: []string{"remove", "delete"},
		Short:   "Delete a meeting",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a meeting title or id")
			}
			mo.Meeting = strings.Join(args, " ")
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
			if err := svc.RemoveMeeting(m.ID); err != nil {
				return output.HandleError(err)
			}
			if err := svc.Flush(); err != nil {
				return output.HandleError(err)
			}
			fmt.Printf("removed %q\n", m.Title)
			return nil
		},
	}

	topLevel.AddCommand(cmd)
}
