package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"stockbridge/cmd/stockbridge/cmd/output"
	"stockbridge/internal/app"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Проверить окружение",
	Long: `Проверяет, что adb установлен и отвечает, и что локальная база доступна.
Завершается с ошибкой, если хотя бы одна проверка не пройдена.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.FromContext(cmd.Context())
		if err != nil {
			return err
		}

		report := a.Doctor(cmd.Context())
		out := cmd.OutOrStdout()

		if output.JSON(cmd) {
			if err := output.PrintJSON(out, report); err != nil {
				return err
			}
			return report.Err()
		}

		if report.BridgeAvailable {
			output.OK(out, "adb доступен (%s), устройств: %d", report.BridgePath, report.Devices)
		} else {
			output.Fail(out, "adb не найден или не отвечает: %s", report.BridgePath)
			fmt.Fprintln(out, output.Dim("  Установите Android Platform Tools или укажите путь флагом --adb"))
		}

		if report.StoreOK {
			output.OK(out, "локальная база (%s) доступна", report.StoreDriver)
			tables := make([]string, 0, len(report.TableCounts))
			for name := range report.TableCounts {
				tables = append(tables, name)
			}
			sort.Strings(tables)
			for _, name := range tables {
				fmt.Fprintf(out, "  %-16s %d\n", name, report.TableCounts[name])
			}
		} else {
			output.Fail(out, "локальная база недоступна: %s", report.StoreError)
		}

		return report.Err()
	},
}
