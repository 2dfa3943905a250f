package devices

import (
	"fmt"

	"github.com/spf13/cobra"

	"stockbridge/cmd/stockbridge/cmd/output"
	"stockbridge/internal/app"
)

var AuthorizeCmd = &cobra.Command{
	Use:   "authorize <device-id>",
	Short: "Дождаться подтверждения отладки на устройстве",
	Long: `Ожидает, пока на экране устройства будет подтвержден запрос отладки по USB.

Ожидание ограничено параметром authorize_timeout_seconds (по умолчанию 120 секунд).
Прервать ожидание можно через Ctrl+C.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.FromContext(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if !output.JSON(cmd) {
			fmt.Fprintf(out, "Подтвердите отладку по USB на устройстве %s (ожидание до %s)...\n",
				args[0], a.Config.AuthorizeTimeout)
		}

		ok := a.Transport.AuthorizeDevice(cmd.Context(), args[0])

		if output.JSON(cmd) {
			return output.PrintJSON(out, map[string]any{"device_id": args[0], "authorized": ok})
		}
		if !ok {
			return fmt.Errorf("устройство %s не авторизовано", args[0])
		}

		output.OK(out, "Устройство %s авторизовано", args[0])
		return nil
	},
}
