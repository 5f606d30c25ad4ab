// Package options defines shared flag helpers for CLI commands.
package options

import (
	"github.com/spf13/cobra"
)

// MeetingOptions captures meeting selection flags for commands.
type MeetingOptions struct {
	Meeting   string
	Attendees []string
}

// AddMeetingArgs wires the meeting selection flag on the provided command.
func AddMeetingArgs(cmd *cobra.Command, o *MeetingOptions) {
	cmd.Flags().StringVarP(&o.Meeting, "meeting", "m", "",
		"Select the meeting by title or id.")
}

// AddAttendeesArg registers the attendee list flag.
func AddAttendeesArg(cmd *cobra.Command, o *MeetingOptions) {
	cmd.Flags().StringSliceVar(&o.Attendees, "attendees", nil,
		"Comma separated attendee names.")
}
