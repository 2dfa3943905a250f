package sync

import (
	"context"

	"stockbridge/internal/domain/device"
	"stockbridge/internal/domain/inventory"
)

// LocalStore локальное хранилище с поиском и записью по естественному ключу.
// Find* возвращают found=false без ошибки, если строки нет.
type LocalStore interface {
	FindInventory(ctx context.Context, key inventory.InventoryKey) (id int64, found bool, err error)
	InsertInventory(ctx context.Context, rec inventory.InventoryRecord) error
	UpdateInventory(ctx context.Context, id int64, rec inventory.InventoryRecord) error

	FindStock(ctx context.Context, kind inventory.Kind, key inventory.StockKey) (id int64, found bool, err error)
	InsertStock(ctx context.Context, kind inventory.Kind, rec inventory.StockRecord) error
	UpdateStock(ctx context.Context, kind inventory.Kind, id int64, rec inventory.StockRecord) error

	FindProduct(ctx context.Context, janCode string) (id int64, found bool, err error)
	InsertProduct(ctx context.Context, rec inventory.ProductRecord) error
	// UpdateProductBoxQuantity меняет только количество в коробке, остальные поля товара не трогает
	UpdateProductBoxQuantity(ctx context.Context, id int64, boxQuantity int) error
}

// RemoteStore извлеченная с устройства база, открытая только на чтение
type RemoteStore interface {
	HasTable(ctx context.Context, name string) (bool, error)
	// ReadRows читает все строки таблицы в порядке хранения
	ReadRows(ctx context.Context, name string) ([]inventory.Row, error)
	Close() error
}

// RemoteOpener открывает извлеченный файл базы на чтение
type RemoteOpener func(path string) (RemoteStore, error)

// Validator проверяет, что файл является корректной базой
type Validator func(path string) error

// Puller копирует файл с устройства
type Puller interface {
	PullFile(ctx context.Context, deviceID, remotePath, localPath string) device.TransferOutcome
}
