package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/huddlenotes/huddle/pkg/commands/options"
)

func addTopic(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "topic",
		Aliases: []string{"topics"},
		Short:   "Manage topic columns",
		Example: `
huddle topic add Risks
huddle topic rm Risks
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addTopicAdd(cmd)
	addTopicRename(cmd)
	addTopicRemove(cmd)

	topLevel.AddCommand(cmd)
}

func addTopicAdd(topLevel *cobra.Command) {
	mo := &options.MeetingOptions{}
	name := ""

	cmd := &cobra.Command{
		Use:     "add",
		Aliases: []string{"new"},
		Short:   "Add a topic column",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a topic name")
			}
			name = strings.Join(args, " ")
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
			t, err := svc.AddTopic(m.ID, name)
			if err != nil {
				return output.HandleError(err)
			}
			if err := svc.Flush(); err != nil {
				return output.HandleError(err)
			}
			fmt.Printf("added topic %q to %q\n", t.Name, m.Title)
			return nil
		},
	}

	options.AddMeetingArgs(cmd, mo)
	topLevel.AddCommand(cmd)
}

func addTopicRename(topLevel *cobra.Command) {
	mo := &options.MeetingOptions{}
	from := ""
	to := ""

	cmd := &cobra.Command{
		Use:     "rename [topic] [new name]",
		Aliases: []string{"mv"},
		Short:   "Rename a topic column",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				return errors.New("requires a topic and a new name")
			}
			from = args[0]
			to = strings.Join(args[1:], " ")
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
			topicID, err := resolveTopic(m, from)
			if err != nil {
				return output.HandleError(err)
			}
			if topicID == "" {
				return errors.New("cannot rename the ungrouped bucket")
			}
			if err := svc.RenameTopic(m.ID, topicID, to); err != nil {
				return output.HandleError(err)
			}
			if err := svc.Flush(); err != nil {
				return output.HandleError(err)
			}
			fmt.Printf("renamed topic %q to %q\n", from, to)
			return nil
		},
	}

	options.AddMeetingArgs(cmd, mo)
	topLevel.AddCommand(cmd)
}

func addTopicRemove(topLevel *cobra.Command) {
	mo := &options.MeetingOptions{}
	name := ""

	cmd := &cobra.Command{
		Use:     "rm",
		Aliases: []string{"remove"},
		Short:   "Remove a topic column, keeping its blocks as ungrouped",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a topic name")
			}
			name = strings.Join(args, " ")
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
			topicID, err := resolveTopic(m, name)
			if err != nil {
				return output.HandleError(err)
			}
			if topicID == "" {
				return errors.New("cannot remove the ungrouped bucket")
			}
			if err := svc.RemoveTopic(m.ID, topicID); err != nil {
				return output.HandleError(err)
			}
			if err := svc.Flush(); err != nil {
				return output.HandleError(err)
			}
			fmt.Printf("removed topic %q from %q\n", name, m.Title)
			return nil
		},
	}

	options.AddMeetingArgs(cmd, mo)
	topLevel.AddCommand(cmd)
}
