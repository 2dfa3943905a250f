package sync

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"stockbridge/cmd/stockbridge/cmd/output"
	"stockbridge/internal/app"
	domainsync "stockbridge/internal/domain/sync"
)

var remotePath string

var SyncCmd = &cobra.Command{
	Use:   "sync <device-id>",
	Short: "Синхронизировать данные с устройства",
	Long: `Забирает базу данных с устройства и переносит из нее инвентаризацию,
приход, расход и справочник товаров в локальную базу.

Повторный запуск не создает дубликатов: существующие строки обновляются.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := app.FromContext(cmd.Context())
		if err != nil {
			return err
		}

		path := remotePath
		if path == "" {
			path = a.Config.RemoteDBPath
		}

		out := cmd.OutOrStdout()
		asJSON := output.JSON(cmd)

		var onProgress domainsync.ProgressFunc
		if !asJSON {
			onProgress = progressPrinter(out, output.IsTerminal(out))
		}

		report, err := a.Sync.Sync(cmd.Context(), args[0], path, onProgress)
		if err != nil {
			if errors.Is(err, domainsync.ErrSyncInProgress) {
				return fmt.Errorf("синхронизация уже запущена")
			}
			return fmt.Errorf("синхронизация не выполнена: %w", err)
		}

		if asJSON {
			return output.PrintJSON(out, report)
		}
		return printReport(out, report)
	},
}

// progressPrinter в терминале перерисовывает одну строку, иначе печатает построчно
func progressPrinter(w io.Writer, tty bool) domainsync.ProgressFunc {
	return func(p domainsync.Progress) {
		line := fmt.Sprintf("[%3d%%] %s %d/%d (таблица %d из %d)",
			p.OverallProgress, p.CurrentTable, p.CurrentRecords, p.TotalRecords,
			min(p.TablesCompleted+1, p.TotalTables), p.TotalTables)
		if !tty {
			fmt.Fprintln(w, line)
			return
		}

		const width = 30
		filled := p.OverallProgress * width / 100
		bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
		fmt.Fprintf(w, "\r\033[K%s %s", bar, line)
		if p.OverallProgress >= 100 {
			fmt.Fprintln(w)
		}
	}
}

func printReport(w io.Writer, report *domainsync.Report) error {
	fmt.Fprintln(w, output.Dim("Запуск %s", report.RunID))

	t := output.Table(w)
	fmt.Fprintln(t, "ТАБЛИЦА\tНАЙДЕНО\tДОБАВЛЕНО\tОБНОВЛЕНО\tОШИБОК\tСТАТУС")
	failed := 0
	for _, r := range report.Results {
		status := "ok"
		switch {
		case !r.Success:
			status = "ошибка: " + r.Error
			failed++
		case r.Note != "":
			status = r.Note
		}
		fmt.Fprintf(t, "%s\t%d\t%d\t%d\t%d\t%s\n",
			r.TableName, r.RecordsFound, r.RecordsInserted, r.RecordsUpdated, r.Failed(), status)
	}
	if err := t.Flush(); err != nil {
		return err
	}

	if failed > 0 {
		output.Warn(w, "Не удалось синхронизировать таблиц: %d", failed)
		return nil
	}
	output.OK(w, "Синхронизация завершена")
	return nil
}

func init() {
	SyncCmd.Flags().StringVar(&remotePath, "remote", "", "путь к базе данных на устройстве")
}
