package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/forayconsulting/meeting-recorder/internal/output"
)

func NewDevicesCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "devices",
		Short: "List audio input devices",
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := output.NewFormatter(os.Stdout)

			devices, err := deps.App.Enumerator.ListInputDevices()
			if err != nil {
				return err
			}

			formatter.DeviceListHeader()
			for _, d := range devices {
				formatter.DeviceListItem(d.ID, d.Name, d.Default)
			}

			return nil
		},
	}
}
