package files

import (
	"github.com/spf13/cobra"
)

var FilesCmd = &cobra.Command{
	Use:   "files",
	Short: "Файлы на устройстве",
	Long: `Просмотр, копирование и удаление файлов на подключенном устройстве.

Все подкоманды принимают серийный номер устройства первым аргументом.`,
}

// result итог файловой операции для вывода в JSON
type result struct {
	DeviceID string `json:"device_id"`
	Path     string `json:"path"`
	Success  bool   `json:"success"`
}
