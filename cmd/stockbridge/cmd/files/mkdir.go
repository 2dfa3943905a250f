package files

import (
	"fmt"

	"github.com/spf13/cobra"

	"stockbridge/cmd/stockbridge/cmd/output"
	"stockbridge/internal/app"
)

var MkdirCmd = &cobra.Command{
	Use:   "mkdir <device-id> <path>",
	Short: "Создать директорию на устройстве",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.FromContext(cmd.Context())
		if err != nil {
			return err
		}

		ok := a.Transport.CreateDirectory(cmd.Context(), args[0], args[1])
		return report(cmd, result{DeviceID: args[0], Path: args[1], Success: ok},
			"Директория %s создана", "не удалось создать директорию %s")
	},
}

// report выводит итог операции, которая возвращает только признак успеха
func report(cmd *cobra.Command, r result, okFormat, errFormat string) error {
	if output.JSON(cmd) {
		if err := output.PrintJSON(cmd.OutOrStdout(), r); err != nil {
			return err
		}
	} else if r.Success {
		output.OK(cmd.OutOrStdout(), okFormat, r.Path)
	}

	if !r.Success {
		return fmt.Errorf(errFormat, r.Path)
	}
	return nil
}
