package cli

import (
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/forayconsulting/meeting-recorder/internal/output"
	"github.com/forayconsulting/meeting-recorder/internal/transcript"
)

func NewListCmd(deps *Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved transcripts",
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(os.Stdout)

			entries, err := os.ReadDir(deps.Config.TranscriptDir)
			if err != nil {
				if os.IsNotExist(err) {
					formatter.Info("No transcripts found")
					return nil
				}
				return err
			}

			var items []os.DirEntry
			for _, e := range entries {
				if !e.IsDir() && transcript.MatchesFilename(e.Name()) {
					items = append(items, e)
				}
			}

			if len(items) == 0 {
				formatter.Info("No transcripts found")
				return nil
			}

			// Names are date-based, so sorting descending is newest first
			sort.Slice(items, func(i, j int) bool {
				return items[i].Name() > items[j].Name()
			})

			formatter.TranscriptListHeader()
			for _, e := range items {
				info, err := e.Info()
				if err != nil {
					continue
				}
				formatter.TranscriptListItem(e.Name(), info.ModTime())
			}

			return nil
		},
	}

	return cmd
}
