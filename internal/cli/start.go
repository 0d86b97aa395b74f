package cli

import (
	"bufio"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/forayconsulting/meeting-recorder/internal/output"
	"github.com/forayconsulting/meeting-recorder/internal/session"
)

func NewStartCmd(deps *Dependencies) *cobra.Command {
	var openAfter bool

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Record a meeting and transcribe it",
		Long:  "Starts a recording session. Press Enter (or Ctrl+C) to stop; the recording is then transcribed and saved to the transcript directory.",
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(os.Stdout)

			sess, err := deps.App.Supervisor.Start()
			if err != nil {
				return err
			}
			formatter.RecordingStarted(deps.Config.Audio.DeviceName)

			// If the worker dies on its own (device unavailable, crash)
			// the operator should hear about it without pressing Enter.
			diedEarly := waitForStopRequest(sess.Exited())

			if !diedEarly {
				formatter.Processing()
			}
			outcomes, err := deps.App.Supervisor.Stop()
			if err != nil {
				return err
			}

			stopAt := time.Now()
			outcome := <-outcomes

			switch outcome.Kind {
			case session.OutcomeSuccess:
				formatter.TranscriptSaved(outcome.ArtifactPath, time.Since(stopAt))
				if openAfter {
					if err := openTranscript(outcome.ArtifactPath); err != nil {
						formatter.Error("opening transcript: " + err.Error())
					}
				}
			case session.OutcomeTimedOut:
				formatter.TimedOut()
			case session.OutcomeFailure:
				if outcome.Reason == session.ReasonNoArtifact {
					formatter.NoTranscript()
				} else {
					formatter.Error(outcome.Reason)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&openAfter, "open", false, "open the transcript when it is ready")
	return cmd
}

// waitForStopRequest blocks until the operator presses Enter or sends an
// interrupt, or until the worker exits on its own. Reports whether the
// worker ended before the operator asked it to.
func waitForStopRequest(workerExited <-chan struct{}) bool {
	enter := make(chan struct{})
	go func() {
		_, _ = bufio.NewReader(os.Stdin).ReadString('\n')
		close(enter)
	}()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	select {
	case <-enter:
	case <-interrupt:
	case <-workerExited:
		return true
	}

	// A stop request and the worker's death can arrive together; the dead
	// worker wins so the operator sees the failure, not a processing spinner.
	select {
	case <-workerExited:
		return true
	default:
		return false
	}
}

func openTranscript(path string) error {
	return exec.Command(openerName(runtime.GOOS), path).Run()
}

// openerName picks the platform's "open this file with its default app"
// command.
func openerName(goos string) string {
	switch goos {
	case "darwin":
		return "open"
	case "windows":
		return "explorer"
	default:
		return "xdg-open"
	}
}
