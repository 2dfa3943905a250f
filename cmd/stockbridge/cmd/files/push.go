package files

import (
	"path"
	"path/filepath"

	"github.com/spf13/cobra"

	"stockbridge/cmd/stockbridge/cmd/output"
	"stockbridge/internal/app"
)

var PushCmd = &cobra.Command{
	Use:   "push <device-id> <local-path> [remote-path]",
	Short: "Скопировать файл на устройство",
	Long: `Копирует локальный файл на устройство.
Если путь на устройстве не указан, файл кладется в /sdcard/Download.`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.FromContext(cmd.Context())
		if err != nil {
			return err
		}

		remote := path.Join("/sdcard/Download", filepath.Base(args[1]))
		if len(args) == 3 {
			remote = args[2]
		}

		outcome := a.Transport.PushFile(cmd.Context(), args[0], args[1], remote)
		out := cmd.OutOrStdout()

		if output.JSON(cmd) {
			if err := output.PrintJSON(out, outcome); err != nil {
				return err
			}
			return outcome.Err()
		}
		if err := outcome.Err(); err != nil {
			return err
		}

		output.OK(out, "%s -> %s (%s)", args[1], remote, outcome.Message)
		return nil
	},
}
