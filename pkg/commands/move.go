package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/huddlenotes/huddle/pkg/commands/options"
)

func addMove(topLevel *cobra.Command) {
	mo := &options.MeetingOptions{}
	to := &options.TopicOptions{}
	ref := ""

	cmd := &cobra.Command{
		Use:   "move [block]",
		Short: "Move a block to a topic or position",
		Example: `
huddle move 171dff69 --topic Risks
huddle move 171dff69 --topic Risks --index 0
`,
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
			topicID, err := resolveTopic(m, to.Topic)
			if err != nil {
				return output.HandleError(err)
			}
			index := to.Index
			if index < 0 {
				index = len(m.TopicBlocks(topicID))
			}
			if err := svc.MoveBlock(m.ID, blockID, topicID, index); err != nil {
				return output.HandleError(err)
			}
			if err := svc.Flush(); err != nil {
				return output.HandleError(err)
			}
			fmt.Println("moved")
			return nil
		},
	}

	options.AddMeetingArgs(cmd, mo)
	options.AddTopicArgs(cmd, to)
	options.AddIndexArg(cmd, to)
	topLevel.AddCommand(cmd)
}
