package files

import (
	"github.com/spf13/cobra"

	"stockbridge/internal/app"
)

var RmCmd = &cobra.Command{
	Use:   "rm <device-id> <path>",
	Short: "Удалить файл на устройстве",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.FromContext(cmd.Context())
		if err != nil {
			return err
		}

		ok := a.Transport.DeleteFile(cmd.Context(), args[0], args[1])
		return report(cmd, result{DeviceID: args[0], Path: args[1], Success: ok},
			"Файл %s удален", "не удалось удалить файл %s")
	},
}
