package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/forayconsulting/meeting-recorder/internal/audio"
	"github.com/forayconsulting/meeting-recorder/internal/logging"
	"github.com/forayconsulting/meeting-recorder/internal/transcribe"
	"github.com/forayconsulting/meeting-recorder/internal/worker"
)

// NewWorkerCmd is the hidden subcommand the supervisor spawns as a separate
// process. Its stdio is the supervisor protocol: the first line on stdin
// (or stdin closing) stops the capture, and a failure diagnostic goes to
// stderr. Diagnostics for humans go to a log file instead.
func NewWorkerCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:    "worker",
		Hidden: true,
		Short:  "Run one capture-then-transcribe session",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logging.NewFileLogger(filepath.Join(os.TempDir(), "meeting-recorder-worker.log"))
			defer log.Sync()

			path, err := worker.Run(deps.Config, worker.Deps{
				Capturer: audio.NewRecorder(),
				Backend:  transcribe.NewWhisper(deps.Config.APIKey),
				Stdin:    cmd.InOrStdin(),
				Log:      log,
			})
			if err != nil {
				log.Errorw("session failed", "error", err)
				_ = log.Sync()
				// The error text is the diagnostic line the supervisor
				// reads from stderr; exit here so nothing else follows it.
				fmt.Fprintln(cmd.ErrOrStderr(), err)
				os.Exit(1)
			}

			log.Infow("session complete", "transcript", path)
			return nil
		},
	}
}
