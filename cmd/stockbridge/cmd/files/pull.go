package files

import (
	"path"

	"github.com/spf13/cobra"

	"stockbridge/cmd/stockbridge/cmd/output"
	"stockbridge/internal/app"
)

var PullCmd = &cobra.Command{
	Use:   "pull <device-id> <remote-path> [local-path]",
	Short: "Скопировать файл с устройства",
	Long: `Копирует файл с устройства на этот компьютер.
Если локальный путь не указан, файл сохраняется в текущую директорию.`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.FromContext(cmd.Context())
		if err != nil {
			return err
		}

		local := path.Base(args[1])
		if len(args) == 3 {
			local = args[2]
		}

		outcome := a.Transport.PullFile(cmd.Context(), args[0], args[1], local)
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

		output.OK(out, "%s -> %s (%s)", args[1], local, outcome.Message)
		return nil
	},
}
