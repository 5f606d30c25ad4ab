package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/huddlenotes/huddle/pkg/block"
	"github.com/huddlenotes/huddle/pkg/commands/options"
	base "github.com/n3wscott/cli-base/pkg/commands/options"
)

func addAdd(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a block to the board",
		Example: `
huddle add note we are switching to weekly releases
huddle add action load test the new index --owner lin --topic Risks
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	for _, k := range block.Kinds() {
		addAddKind(cmd, k)
	}

	topLevel.AddCommand(cmd)
}

func addAddKind(topLevel *cobra.Command, kind block.Kind) {
	mo := &options.MeetingOptions{}
	to := &options.TopicOptions{}
	oo := &options.OwnerOptions{}
	text := ""

	cmd := &cobra.Command{
		Use:     string(kind),
		Aliases: []string{string(kind) + "s"},
		Short:   fmt.Sprintf("Add a %s", kind),
		Long:    fmt.Sprintf("%s  %s\n%s", kind.Symbol(), kind, kind.Meaning()),
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return fmt.Errorf("requires %s text", kind)
			}
			text = strings.Join(args, " ")
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if kind != block.Action && oo.Owner != "" {
				return errors.New("--owner only applies to actions")
			}
			svc, err := loadService()
			if err != nil {
				return err
			}
			m, err := resolveMeeting(svc, mo)
			if err != nil {
				return output.HandleError(err)
			}
			topicID, err := resolveTopic(m, to.Topic)
			if err != nil {
				return output.HandleError(err)
			}
			b, err := svc.AddBlock(m.ID, topicID, kind, text, oo.Owner)
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
	options.AddTopicArgs(cmd, to)
	if kind == block.Action {
		options.AddOwnerArg(cmd, oo)
	}
	base.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}
