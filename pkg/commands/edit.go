package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/huddlenotes/huddle/pkg/commands/options"
)

func addEdit(topLevel *cobra.Command) {
	mo := &options.MeetingOptions{}
	ref := ""
	text := ""

	cmd := &cobra.Command{
		Use:   "edit [block] [text]",
		Short: "Replace a block's text, keeping its place on the board",
		Example: `
huddle edit 171dff69 ship to all users Monday instead
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				return errors.New("requires a block id and new text")
			}
			ref = args[0]
			text = strings.Join(args[1:], " ")
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
			blockID, err := resolveBlock(m, ref)
			if err != nil {
				return output.HandleError(err)
			}
			b, err := svc.EditBlock(m.ID, blockID, text)
			if err != nil {
				return output.HandleError(err)
			}
			if err := svc.Flush(); err != nil {
				return output.HandleError(err)
			}
			fmt.Printf("%s %s\n", b.Kind.Symbol(), b.Text)
			return nil
		},
	}

	options.AddMeetingArgs(cmd, mo)
	topLevel.AddCommand(cmd)
}

func addRemove(topLevel *cobra.Command) {
	mo := &options.MeetingOptions{}
	ref := ""

	cmd := &cobra.Command{
		Use:     "rm [block]",
		Aliases: []string{"remove"},
		Short:   "Delete a block",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires a block id")
			}
			ref = args[0]
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
			blockID, err := resolveBlock(m, ref)
			if err != nil {
				return output.HandleError(err)
			}
			if err := svc.RemoveBlock(m.ID, blockID); err != nil {
				return output.HandleError(err)
			}
			if err := svc.Flush(); err != nil {
				return output.HandleError(err)
			}
			fmt.Println("removed")
			return nil
		},
	}

	options.AddMeetingArgs(cmd, mo)
	topLevel.AddCommand(cmd)
}
