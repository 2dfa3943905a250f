package devices

import (
	"fmt"

	"github.com/spf13/cobra"

	"stockbridge/cmd/stockbridge/cmd/output"
	"stockbridge/internal/app"
)

var ListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Список подключенных устройств",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.FromContext(cmd.Context())
		if err != nil {
			return err
		}

		devices := a.Transport.ListDevices(cmd.Context())
		out := cmd.OutOrStdout()

		if output.JSON(cmd) {
			return output.PrintJSON(out, devices)
		}

		if len(devices) == 0 {
			fmt.Fprintln(out, "Устройства не найдены.")
			fmt.Fprintln(out, output.Dim("Проверьте кабель и включите отладку по USB. Диагностика: stockbridge doctor"))
			return nil
		}

		w := output.Table(out)
		fmt.Fprintln(w, "ID\tМОДЕЛЬ\tСОСТОЯНИЕ\tАВТОРИЗОВАНО")
		for _, d := range devices {
			authorized := "да"
			if !d.IsAuthorized {
				authorized = "нет"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", d.ID, d.Model, d.Status.DisplayName(), authorized)
		}
		return w.Flush()
	},
}
