package cli

import (
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/forayconsulting/meeting-recorder/internal/output"
)

func NewDoctorCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check prerequisites",
		RunE: func(cmd *cobra.Command, args []string) error {
			f := output.NewFormatter(os.Stdout)
			ok := true

			if _, err := exec.LookPath("ffmpeg"); err != nil {
				f.SetupCheck("ffmpeg", false, "not found. Install with: brew install ffmpeg")
				ok = false
			} else {
				f.SetupCheck("ffmpeg", true, "installed")
			}

			if deps.Config.APIKey != "" {
				f.SetupCheck("API key", true, "configured")
			} else {
				f.SetupCheck("API key", false, "not set. Set MEETING_RECORDER_API_KEY or run 'settings set-key'")
				ok = false
			}

			f.SetupCheck("Input device", true, deps.Config.Audio.DeviceName)
			f.SetupCheck("Transcript directory", true, deps.Config.TranscriptDir)

			if ok {
				f.Success("\nAll prerequisites met. Ready to record!")
			} else {
				f.Warning("\nSome prerequisites are missing.")
			}
			return nil
		},
	}
}
