package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/forayconsulting/meeting-recorder/internal/output"
)

func NewSettingsCmd(deps *Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Configure the recorder",
	}

	cmd.AddCommand(newSetKeyCmd(deps))
	cmd.AddCommand(newSetDeviceCmd(deps))

	return cmd
}

func newSetKeyCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "set-key <api-key>",
		Short: "Set the transcription API key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(os.Stdout)

			deps.Config.APIKey = args[0]
			if err := deps.Config.Save(); err != nil {
				return fmt.Errorf("saving settings: %w", err)
			}

			formatter.Success("API key saved")
			return nil
		},
	}
}

func newSetDeviceCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "set-device <id|default>",
		Short: "Select the audio input device",
		Long:  "Select the input device to record from, by the ID shown by 'devices'. Use 'default' for the system default microphone.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(os.Stdout)

			if args[0] == "default" {
				deps.Config.Audio.DeviceID = nil
				deps.Config.Audio.DeviceName = "System Default"
				deps.Config.Audio.Channels = 1
				deps.Config.Audio.SampleRate = 44100
				if err := deps.Config.Save(); err != nil {
					return fmt.Errorf("saving settings: %w", err)
				}
				formatter.Success("Now using the system default microphone")
				return nil
			}

			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("device id must be an integer or 'default', got %q", args[0])
			}

			devices, err := deps.App.Enumerator.ListInputDevices()
			if err != nil {
				return err
			}

			for _, d := range devices {
				if d.ID != id {
					continue
				}
				deps.Config.Audio.DeviceID = &d.ID
				deps.Config.Audio.DeviceName = d.Name
				deps.Config.Audio.Channels = d.Channels
				deps.Config.Audio.SampleRate = d.SampleRate
				if err := deps.Config.Save(); err != nil {
					return fmt.Errorf("saving settings: %w", err)
				}
				formatter.Success(fmt.Sprintf("Now using %s for recording", d.Name))
				return nil
			}

			return fmt.Errorf("no input device with id %d. Run 'devices' to list them", id)
		},
	}
}
