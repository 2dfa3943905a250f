package devices

import (
	"fmt"

	"github.com/spf13/cobra"

	"stockbridge/cmd/stockbridge/cmd/output"
	"stockbridge/internal/app"
)

var InfoCmd = &cobra.Command{
	Use:   "info <device-id>",
	Short: "Информация об устройстве",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.FromContext(cmd.Context())
		if err != nil {
			return err
		}

		dev := a.Transport.GetDeviceInfo(cmd.Context(), args[0])
		if dev == nil {
			return fmt.Errorf("устройство %s не найдено", args[0])
		}

		if output.JSON(cmd) {
			return output.PrintJSON(cmd.OutOrStdout(), dev)
		}

		printDevice(cmd.OutOrStdout(), *dev)
		return nil
	},
}
