package device

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/exp/slog"
)

// Bridge операции с устройствами, которые используют CLI и HTTP API
type Bridge interface {
	IsAvailable(ctx context.Context) bool
	ListDevices(ctx context.Context) []Device
	GetDeviceInfo(ctx context.Context, id string) *Device
	AuthorizeDevice(ctx context.Context, id string) bool
	ListFiles(ctx context.Context, deviceID, dir string) []RemoteFile
	PullFile(ctx context.Context, deviceID, remotePath, localPath string) TransferOutcome
	PushFile(ctx context.Context, deviceID, localPath, remotePath string) TransferOutcome
	CreateDirectory(ctx context.Context, deviceID, dir string) bool
	DeleteFile(ctx context.Context, deviceID, filePath string) bool
}

var _ Bridge = (*Transport)(nil)

// TransportConfig настройки вызова моста
type TransportConfig struct {
	BridgePath       string
	CommandTimeout   time.Duration // ограничение для обычных команд, 0 - без ограничения
	AuthorizeTimeout time.Duration // ограничение ожидания подтверждения на устройстве
}

// Transport переводит вызовы моста в структурированные результаты.
// Ошибки исполнения никогда не выходят за пределы Transport: они превращаются
// в false, пустой результат или TransferOutcome с заполненным Error.
type Transport struct {
	cfg    TransportConfig
	runner Runner
	log    *slog.Logger
}

// NewTransport создает транспорт поверх указанного Runner
func NewTransport(cfg TransportConfig, runner Runner, log *slog.Logger) *Transport {
	if cfg.BridgePath == "" {
		cfg.BridgePath = "adb"
	}
	return &Transport{
		cfg:    cfg,
		runner: runner,
		log:    log.With(slog.String("component", "device_transport")),
	}
}

// IsAvailable проверяет, что мост установлен и отвечает на запрос версии
func (t *Transport) IsAvailable(ctx context.Context) bool {
	if _, err := t.runner.LookPath(t.cfg.BridgePath); err != nil {
		t.log.Debug("bridge executable not found", "path", t.cfg.BridgePath, "error", err)
		return false
	}

	out, err := t.run(ctx, "version")
	if err != nil {
		t.log.Warn("bridge version query failed", "error", err)
		return false
	}

	t.log.Debug("bridge available", "version", firstLine(string(out)))
	return true
}

// ListDevices перечисляет подключенные устройства
func (t *Transport) ListDevices(ctx context.Context) []Device {
	out, err := t.run(ctx, "devices", "-l")
	if err != nil {
		t.log.Warn("failed to list devices", "error", err)
		return []Device{}
	}

	devices := ParseDevices(string(out))
	t.log.Debug("devices listed", "count", len(devices))
	return devices
}

// GetDeviceInfo ищет устройство по идентификатору. Отсутствие устройства - не ошибка.
func (t *Transport) GetDeviceInfo(ctx context.Context, id string) *Device {
	for _, dev := range t.ListDevices(ctx) {
		if dev.ID == id {
			d := dev
			return &d
		}
	}
	return nil
}

// AuthorizeDevice ждет, пока устройство станет доступно (пользователь подтвердит
// отладку на экране). Ожидание ограничено AuthorizeTimeout и контекстом вызывающего.
func (t *Transport) AuthorizeDevice(ctx context.Context, id string) bool {
	if t.cfg.AuthorizeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.cfg.AuthorizeTimeout)
		defer cancel()
	}

	t.log.Info("waiting for device authorization", "device_id", id)
	if _, err := t.runner.Run(ctx, t.cfg.BridgePath, "-s", id, "wait-for-device"); err != nil {
		t.log.Warn("device authorization failed", "device_id", id, "error", err)
		return false
	}

	return true
}

// ListFiles возвращает содержимое директории на устройстве
func (t *Transport) ListFiles(ctx context.Context, deviceID, dir string) []RemoteFile {
	out, err := t.run(ctx, "-s", deviceID, "shell", "ls", "-la", shellQuote(dir))
	if err != nil {
		t.log.Warn("failed to list files", "device_id", deviceID, "path", dir, "error", err)
		return []RemoteFile{}
	}

	return ParseListing(dir, string(out))
}

// PullFile копирует файл с устройства в локальный путь
func (t *Transport) PullFile(ctx context.Context, deviceID, remotePath, localPath string) TransferOutcome {
	start := time.Now()

	if _, err := t.run(ctx, "-s", deviceID, "pull", remotePath, localPath); err != nil {
		t.log.Warn("pull failed", "device_id", deviceID, "remote", remotePath, "error", err)
		return TransferOutcome{
			Success: false,
			Message: fmt.Sprintf("failed to pull %s", remotePath),
			Error:   err.Error(),
		}
	}

	info, err := os.Stat(localPath)
	if err != nil {
		return TransferOutcome{
			Success: false,
			Message: fmt.Sprintf("pulled file %s is not accessible", localPath),
			Error:   err.Error(),
		}
	}

	elapsed := time.Since(start)
	t.log.Debug("file pulled", "remote", remotePath, "bytes", info.Size(), "elapsed", elapsed)

	return TransferOutcome{
		Success:          true,
		Message:          fmt.Sprintf("pulled %d bytes in %s", info.Size(), elapsed.Round(time.Millisecond)),
		TransferredBytes: info.Size(),
	}
}

// PushFile копирует локальный файл на устройство
func (t *Transport) PushFile(ctx context.Context, deviceID, localPath, remotePath string) TransferOutcome {
	info, err := os.Stat(localPath)
	if err != nil {
		return TransferOutcome{
			Success: false,
			Message: fmt.Sprintf("local file %s is not accessible", localPath),
			Error:   err.Error(),
		}
	}

	start := time.Now()
	if _, err := t.run(ctx, "-s", deviceID, "push", localPath, remotePath); err != nil {
		t.log.Warn("push failed", "device_id", deviceID, "local", localPath, "error", err)
		return TransferOutcome{
			Success: false,
			Message: fmt.Sprintf("failed to push %s", localPath),
			Error:   err.Error(),
		}
	}

	elapsed := time.Since(start)
	return TransferOutcome{
		Success:          true,
		Message:          fmt.Sprintf("pushed %d bytes in %s", info.Size(), elapsed.Round(time.Millisecond)),
		TransferredBytes: info.Size(),
	}
}

// CreateDirectory создает директорию на устройстве (mkdir -p)
func (t *Transport) CreateDirectory(ctx context.Context, deviceID, dir string) bool {
	if _, err := t.run(ctx, "-s", deviceID, "shell", "mkdir", "-p", shellQuote(dir)); err != nil {
		t.log.Warn("failed to create directory", "device_id", deviceID, "path", dir, "error", err)
		return false
	}
	return true
}

// DeleteFile удаляет файл на устройстве
func (t *Transport) DeleteFile(ctx context.Context, deviceID, filePath string) bool {
	if _, err := t.run(ctx, "-s", deviceID, "shell", "rm", "-f", shellQuote(filePath)); err != nil {
		t.log.Warn("failed to delete file", "device_id", deviceID, "path", filePath, "error", err)
		return false
	}
	return true
}

func (t *Transport) run(ctx context.Context, args ...string) ([]byte, error) {
	if t.cfg.CommandTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.cfg.CommandTimeout)
		defer cancel()
	}
	return t.runner.Run(ctx, t.cfg.BridgePath, args...)
}

// shellQuote экранирует путь для удаленной оболочки
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return strings.TrimSpace(s[:idx])
	}
	return strings.TrimSpace(s)
}
