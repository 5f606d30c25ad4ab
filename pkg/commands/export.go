package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/huddlenotes/huddle/pkg/commands/options"
	"github.com/huddlenotes/huddle/pkg/export"
)

func addExport(topLevel *cobra.Command) {
	mo := &options.MeetingOptions{}
	markdown := false
	file := ""

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the collection as JSON, or one meeting as Markdown minutes",
		Example: `
huddle export --file backup.json
huddle export --markdown --meeting "Sprint Review"
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadService()
			if err != nil {
				return err
			}
			meetings, err := svc.Export()
			if err != nil {
				return output.HandleError(err)
			}

			out := os.Stdout
			if file != "" {
				f, err := os.Create(file)
				if err != nil {
					return output.HandleError(err)
				}
				defer f.Close()
				out = f
			}

			if markdown {
				m, err := resolveMeeting(svc, mo)
				if err != nil {
					return output.HandleError(err)
				}
				return output.HandleError(export.WriteMarkdown(out, m))
			}
			return output.HandleError(export.WriteJSON(out, meetings))
		},
	}

	cmd.Flags().BoolVar(&markdown, "markdown", false, "Render one meeting as Markdown minutes.")
	cmd.Flags().StringVarP(&file, "file", "f", "", "Write to this file instead of stdout.")
	options.AddMeetingArgs(cmd, mo)

	topLevel.AddCommand(cmd)
}

func addImport(topLevel *cobra.Command) {
	file := ""

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Replace the collection from a JSON export",
		Example: `
huddle import --file backup.json
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := os.Stdin
			name := "stdin"
			if file != "" {
				f, err := os.Open(file)
				if err != nil {
					return output.HandleError(err)
				}
				defer f.Close()
				in = f
				name = file
			}

			meetings, err := export.ReadJSON(in)
			if err != nil {
				return output.HandleError(err)
			}

			svc, err := loadService()
			if err != nil {
				return err
			}
			if current, err := svc.Meetings(); err == nil && len(current) > 0 {
				fmt.Fprintf(os.Stderr, "replacing %d existing meeting(s) from %s\n", len(current), name)
			}
			if err := svc.Import(meetings); err != nil {
				return output.HandleError(err)
			}

			titles := make([]string, len(meetings))
			for i, m := range meetings {
				titles[i] = m.Title
			}
			fmt.Printf("imported %d meeting(s): %s\n", len(meetings), strings.Join(titles, ", "))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Read from this file instead of stdin.")
	topLevel.AddCommand(cmd)
}
