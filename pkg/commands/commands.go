package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/huddlenotes/huddle/pkg/app"
	"github.com/huddlenotes/huddle/pkg/commands/options"
	"github.com/huddlenotes/huddle/pkg/meeting"
	"github.com/huddlenotes/huddle/pkg/queue"
	"github.com/huddlenotes/huddle/pkg/store"
	base "github.com/n3wscott/cli-base/pkg/commands/options"
)

var (
	output = &base.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "huddle",
		Short: base.Wrap80("Meeting notes on a kanban board, from the command line."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addBoard(topLevel)
	addMeeting(topLevel)
	addAdd(topLevel)
	addShow(topLevel)
	addTopic(topLevel)
	addMove(topLevel)
	addEdit(topLevel)
	addRemove(topLevel)
	addExport(topLevel)
	addImport(topLevel)
	addKey(topLevel)
	addVersion(topLevel)
}

// loadService builds the service over the configured disk store. Commands
// are one-shot processes, so mutating commands flush before returning
// instead of leaning on the debounce window.
func loadService() (*app.Service, error) {
	svc, _, err := loadServiceAndStore()
	return svc, err
}

// loadServiceAndStore additionally exposes the persistence layer for
// callers that watch the store, like the board screen.
func loadServiceAndStore() (*app.Service, store.Persistence, error) {
	p, err := store.Load(nil)
	if err != nil {
		return nil, nil, err
	}
	q, err := queue.Load(p)
	if err != nil {
		return nil, nil, err
	}
	return app.New(q), p, nil
}

// resolveMeeting finds a meeting by the --meeting flag (title or id). With
// no flag and exactly one meeting in the collection, that meeting wins.
func resolveMeeting(svc *app.Service, o *options.MeetingOptions) (*meeting.Meeting, error) {
	if o.Meeting == "" {
		meetings, err := svc.Meetings()
		if err != nil {
			return nil, err
		}
		switch len(meetings) {
		case 0:
			return nil, fmt.Errorf("no meetings yet, create one with: huddle meeting new")
		case 1:
			return meetings[0], nil
		default:
			return nil, fmt.Errorf("several meetings exist, pick one with --meeting")
		}
	}
	if m, err := svc.Meeting(o.Meeting); err == nil {
		return m, nil
	}
	return svc.MeetingByTitle(o.Meeting)
}

// resolveTopic maps a --topic value (name or id, empty for ungrouped) to a
// topic id on the given meeting.
func resolveTopic(m *meeting.Meeting, name string) (string, error) {
	if name == "" {
		return "", nil
	}
	if t, ok := m.Topic(name); ok {
		return t.ID, nil
	}
	if t, ok := m.TopicByName(name); ok {
		return t.ID, nil
	}
	return "", fmt.Errorf("no topic %q in %q", name, m.Title)
}

// resolveBlock maps a block reference (full id or unambiguous prefix) to a
// block id on the given meeting.
func resolveBlock(m *meeting.Meeting, ref string) (string, error) {
	if _, ok := m.Block(ref); ok {
		return ref, nil
	}
	var match string
	for _, b := range m.Blocks {
		if strings.HasPrefix(b.ID, ref) {
			if match != "" {
				return "", fmt.Errorf("block id %q is ambiguous", ref)
			}
			match = b.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("no block %q in %q", ref, m.Title)
	}
	return match, nil
}
