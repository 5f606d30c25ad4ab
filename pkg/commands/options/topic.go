package options

import (
	"github.com/spf13/cobra"
)

// TopicOptions captures topic placement flags for block commands.
type TopicOptions struct {
	Topic string
	Index int
}

func AddTopicArgs(cmd *cobra.Command, o *TopicOptions) {
	cmd.Flags().StringVarP(&o.Topic, "topic", "t", "",
		"Place in this topic. Empty means the ungrouped bucket.")
}

func AddIndexArg(cmd *cobra.Command, o *TopicOptions) {
	cmd.Flags().IntVar(&o.Index, "index", -1,
		"Target position within the topic. Negative appends.")
}
