package cli

import (
	"github.com/spf13/cobra"

	"github.com/forayconsulting/meeting-recorder/config"
	"github.com/forayconsulting/meeting-recorder/internal/app"
	"github.com/forayconsulting/meeting-recorder/internal/version"
)

type Dependencies struct {
	App    *app.App
	Config *config.Config
}

func NewRootCmd(deps *Dependencies) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "meeting-recorder",
		Short: "Record meetings and transcribe them with Whisper",
		Long:  "Records microphone audio on command, sends it to the Whisper API, and saves a timestamped transcript.",
	}

	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(version.Full() + "\n")

	rootCmd.AddCommand(NewStartCmd(deps))
	rootCmd.AddCommand(NewDevicesCmd(deps))
	rootCmd.AddCommand(NewListCmd(deps))
	rootCmd.AddCommand(NewSettingsCmd(deps))
	rootCmd.AddCommand(NewDoctorCmd(deps))
	rootCmd.AddCommand(NewWorkerCmd(deps))

	return rootCmd
}
