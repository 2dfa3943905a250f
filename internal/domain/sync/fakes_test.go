package sync

import (
	"context"
	"errors"
	"os"

	"github.com/stretchr/testify/mock"

	"stockbridge/internal/domain/device"
	"stockbridge/internal/domain/inventory"
)

type storedProduct struct {
	id       int64
	rec      inventory.ProductRecord
	alertMin int
	alertMax int
}

// memoryStore LocalStore в памяти
type memoryStore struct {
	nextID    int64
	inventory map[int64]inventory.InventoryRecord
	stock     map[inventory.Kind]map[int64]inventory.StockRecord
	products  []*storedProduct
	failOn    string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		inventory: map[int64]inventory.InventoryRecord{},
		stock: map[inventory.Kind]map[int64]inventory.StockRecord{
			inventory.KindStockIn:  {},
			inventory.KindStockOut: {},
		},
	}
}

var errWrite = errors.New("constraint violation")

func (s *memoryStore) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *memoryStore) FindInventory(_ context.Context, key inventory.InventoryKey) (int64, bool, error) {
	for id, rec := range s.inventory {
		if rec.Key().Matches(key) {
			return id, true, nil
		}
	}
	return 0, false, nil
}

func (s *memoryStore) InsertInventory(_ context.Context, rec inventory.InventoryRecord) error {
	if s.failOn != "" && rec.Note == s.failOn {
		return errWrite
	}
	s.inventory[s.id()] = rec
	return nil
}

func (s *memoryStore) UpdateInventory(_ context.Context, id int64, rec inventory.InventoryRecord) error {
	s.inventory[id] = rec
	return nil
}

func (s *memoryStore) FindStock(_ context.Context, kind inventory.Kind, key inventory.StockKey) (int64, bool, error) {
	for id, rec := range s.stock[kind] {
		if rec.Key() == key {
			return id, true, nil
		}
	}
	return 0, false, nil
}

func (s *memoryStore) InsertStock(_ context.Context, kind inventory.Kind, rec inventory.StockRecord) error {
	s.stock[kind][s.id()] = rec
	return nil
}

func (s *memoryStore) UpdateStock(_ context.Context, kind inventory.Kind, id int64, rec inventory.StockRecord) error {
	s.stock[kind][id] = rec
	return nil
}

func (s *memoryStore) FindProduct(_ context.Context, janCode string) (int64, bool, error) {
	for _, p := range s.products {
		if p.rec.JanCode == janCode {
			return p.id, true, nil
		}
	}
	return 0, false, nil
}

func (s *memoryStore) InsertProduct(_ context.Context, rec inventory.ProductRecord) error {
	s.products = append(s.products, &storedProduct{id: s.id(), rec: rec})
	return nil
}

func (s *memoryStore) UpdateProductBoxQuantity(_ context.Context, id int64, boxQuantity int) error {
	for _, p := range s.products {
		if p.id == id {
			p.rec.BoxQuantity = boxQuantity
			return nil
		}
	}
	return errors.New("product not found")
}

// memoryRemote RemoteStore в памяти
type memoryRemote struct {
	tables  map[string][]inventory.Row
	readErr map[string]error
	closed  bool
}

func (r *memoryRemote) HasTable(_ context.Context, name string) (bool, error) {
	_, ok := r.tables[name]
	if !ok {
		_, ok = r.readErr[name]
	}
	return ok, nil
}

func (r *memoryRemote) ReadRows(_ context.Context, name string) ([]inventory.Row, error) {
	if err, ok := r.readErr[name]; ok {
		return nil, err
	}
	return r.tables[name], nil
}

func (r *memoryRemote) Close() error {
	r.closed = true
	return nil
}

// MockPuller мок для Puller
type MockPuller struct {
	mock.Mock
}

func (m *MockPuller) PullFile(ctx context.Context, deviceID, remotePath, localPath string) device.TransferOutcome {
	args := m.Called(ctx, deviceID, remotePath, localPath)
	return args.Get(0).(device.TransferOutcome)
}

// writeFile имитирует adb pull, записывая содержимое по локальному пути
func writeFile(content string) func(mock.Arguments) {
	return func(args mock.Arguments) {
		_ = os.WriteFile(args.String(3), []byte(content), 0o600)
	}
}
