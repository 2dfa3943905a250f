package devices

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"stockbridge/cmd/stockbridge/cmd/output"
	"stockbridge/internal/domain/device"
)

var DevicesCmd = &cobra.Command{
	Use:     "devices",
	Aliases: []string{"dev"},
	Short:   "Работа с подключенными устройствами",
	Long: `Просмотр подключенных устройств и подтверждение отладки по USB.

Без подкоманды выводит список устройств.`,
	RunE: ListCmd.RunE,
}

func printDevice(w io.Writer, d device.Device) {
	fmt.Fprintf(w, "Серийный номер: %s\n", d.SerialNumber)
	fmt.Fprintf(w, "Модель:         %s\n", d.Model)
	fmt.Fprintf(w, "Продукт:        %s\n", d.Product)
	fmt.Fprintf(w, "Устройство:     %s\n", d.DeviceCode)
	if d.TransportID != "" {
		fmt.Fprintf(w, "Transport ID:   %s\n", d.TransportID)
	}
	fmt.Fprintf(w, "Состояние:      %s\n", d.Status.DisplayName())

	if !d.IsAuthorized {
		output.Warn(w, "Устройство не авторизовано. Выполните: stockbridge devices authorize %s", d.ID)
	}
}
