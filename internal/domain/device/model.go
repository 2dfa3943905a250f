package device

import (
	"fmt"
	"time"
)

// Status состояние устройства в выводе моста
type Status string

const (
	StatusConnected    Status = "device"
	StatusUnauthorized Status = "unauthorized"
	StatusOffline      Status = "offline"
	StatusNoPermission Status = "no permissions"
)

// DisplayName возвращает человекочитаемое название состояния.
func (s Status) DisplayName() string {
	switch s {
	case StatusConnected:
		return "Connected"
	case StatusUnauthorized:
		return "Unauthorized"
	case StatusOffline:
		return "Offline"
	case StatusNoPermission:
		return "No permission"
	default:
		return string(s)
	}
}

// Unknown значение по умолчанию для нераспознанных диагностических полей
const Unknown = "Unknown"

// Device подключенное устройство. Создается заново при каждом перечислении.
type Device struct {
	ID           string `json:"id"`
	SerialNumber string `json:"serial_number"`
	Model        string `json:"model"`
	Product      string `json:"product"`
	DeviceCode   string `json:"device_code"`
	TransportID  string `json:"transport_id"`
	Status       Status `json:"status"`
	IsAuthorized bool   `json:"is_authorized"`
}

// RemoteFile элемент листинга директории на устройстве
type RemoteFile struct {
	Name        string    `json:"name"`
	Path        string    `json:"path"`
	Size        int64     `json:"size"`
	IsDirectory bool      `json:"is_directory"`
	Permissions string    `json:"permissions"`
	ModifiedAt  time.Time `json:"modified_at"`
}

// TransferOutcome результат push/pull
type TransferOutcome struct {
	Success          bool   `json:"success"`
	Message          string `json:"message"`
	TransferredBytes int64  `json:"transferred_bytes,omitempty"`
	Error            string `json:"error,omitempty"`
}

// Err возвращает ошибку неуспешной передачи или nil
func (o TransferOutcome) Err() error {
	if o.Success {
		return nil
	}
	if o.Error != "" {
		return fmt.Errorf("%w: %s: %s", ErrTransferFailed, o.Message, o.Error)
	}
	return fmt.Errorf("%w: %s", ErrTransferFailed, o.Message)
}
