package sqlite

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockbridge/internal/domain/inventory"
	"stockbridge/internal/domain/sync"
	"stockbridge/internal/utils/logger"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := New(context.Background(), filepath.Join(t.TempDir(), "data", "stockbridge.db"), logger.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestNew_MigratesSchema(t *testing.T) {
	s := newTestStorage(t)

	counts, err := s.TableCounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		"inventory_data": 0, "stockin_data": 0, "stockout_data": 0, "product_master": 0,
	}, counts)
}

func TestNew_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stockbridge.db")
	s, err := New(context.Background(), path, logger.Discard())
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = New(context.Background(), path, logger.Discard())
	require.NoError(t, err)
	assert.NoError(t, s.Close())
}

func TestNew_PathWithSpaces(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "John Doe", ".stockbridge", "stockbridge.db")

	s, err := New(ctx, path, logger.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.InsertProduct(ctx, inventory.ProductRecord{JanCode: "4901", BoxQuantity: 6}))
	counts, err := s.TableCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, counts["product_master"])

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestStorage_InventoryNullJanCode(t *testing.T) {
	ctx := context.Background()
	s := newTestStorage(t)

	rec := inventory.InventoryRecord{
		InputDate: "2024-03-01", StaffCode: "S1", ShopCode: "001", ShelfNumber: "A", ShelfPosition: "1",
		Quantity: 3,
	}
	require.NoError(t, s.InsertInventory(ctx, rec))

	id, found, err := s.FindInventory(ctx, rec.Key())
	require.NoError(t, err)
	require.True(t, found)

	// Пустая строка не совпадает с NULL
	withEmpty := rec
	withEmpty.JanCode = inventory.Some("")
	_, found, err = s.FindInventory(ctx, withEmpty.Key())
	require.NoError(t, err)
	assert.False(t, found)

	rec.Quantity = 10
	rec.UpdateDate = inventory.Some("2024-03-02")
	require.NoError(t, s.UpdateInventory(ctx, id, rec))

	var qty int
	var updateDate sql.NullString
	require.NoError(t, s.DB().QueryRow(`SELECT quantity, update_date FROM inventory_data WHERE id = ?`, id).Scan(&qty, &updateDate))
	assert.Equal(t, 10, qty)
	assert.Equal(t, "2024-03-02", updateDate.String)
}

func TestStorage_Stock(t *testing.T) {
	ctx := context.Background()
	s := newTestStorage(t)

	rec := inventory.StockRecord{
		InputDate: "2024-03-01", SlipNumber: "SL1", ProductCode: "P1", ShopCode: "001", Quantity: 2,
		SupplierCode: inventory.Some("SUP"), DeptCode: "D1", DeptName: "Отдел", IgnoreTrigger: true,
	}
	require.NoError(t, s.InsertStock(ctx, inventory.KindStockOut, rec))

	_, found, err := s.FindStock(ctx, inventory.KindStockIn, rec.Key())
	require.NoError(t, err)
	assert.False(t, found, "stock-in and stock-out are separate tables")

	id, found, err := s.FindStock(ctx, inventory.KindStockOut, rec.Key())
	require.NoError(t, err)
	require.True(t, found)

	rec.Quantity = 5
	require.NoError(t, s.UpdateStock(ctx, inventory.KindStockOut, id, rec))

	var qty int
	var dept string
	require.NoError(t, s.DB().QueryRow(`SELECT quantity, dept_name FROM stockout_data WHERE id = ?`, id).Scan(&qty, &dept))
	assert.Equal(t, 5, qty)
	assert.Equal(t, "Отдел", dept)

	assert.Error(t, s.InsertStock(ctx, inventory.KindProductMaster, rec))
}

func TestStorage_ProductBoxQuantityOnly(t *testing.T) {
	ctx := context.Background()
	s := newTestStorage(t)

	require.NoError(t, s.InsertProduct(ctx, inventory.ProductRecord{JanCode: "4901", ProductName: "Чай", BoxQuantity: 12, SupplierCode: "SUP1"}))
	_, err := s.DB().Exec(`UPDATE product_master SET alert_min_quantity = 5, alert_max_quantity = 50 WHERE jan_code = '4901'`)
	require.NoError(t, err)

	id, found, err := s.FindProduct(ctx, "4901")
	require.NoError(t, err)
	require.True(t, found)
	require.NoError(t, s.UpdateProductBoxQuantity(ctx, id, 24))

	var name, supplier string
	var box, alertMin, alertMax int
	require.NoError(t, s.DB().QueryRow(
		`SELECT product_name, supplier_code, box_quantity, alert_min_quantity, alert_max_quantity FROM product_master WHERE id = ?`, id,
	).Scan(&name, &supplier, &box, &alertMin, &alertMax))
	assert.Equal(t, "Чай", name)
	assert.Equal(t, "SUP1", supplier)
	assert.Equal(t, 24, box)
	assert.Equal(t, 5, alertMin)
	assert.Equal(t, 50, alertMax)
}

// newRemoteDB создает базу в формате приложения на устройстве
func newRemoteDB(t *testing.T, stmts ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "remote.db")
	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer db.Close()
	for _, stmt := range stmts {
		_, err := db.Exec(stmt)
		require.NoError(t, err, stmt)
	}
	return path
}

const remoteStockIn = `CREATE TABLE stockin_data (
	id INTEGER PRIMARY KEY, input_date DATE, supplier_code TEXT, supplier_name TEXT, slip_number TEXT,
	location TEXT, shelf_no TEXT, shelf_position TEXT, product_code TEXT, quantity INTEGER,
	staff_code TEXT, shop_code TEXT, note TEXT, ignore_trigger INTEGER)`

func TestRemoteStore(t *testing.T) {
	path := newRemoteDB(t, remoteStockIn,
		`INSERT INTO stockin_data (input_date, supplier_code, slip_number, product_code, quantity, shop_code, ignore_trigger)
		 VALUES ('2024-03-01', 'SUP', 'SL1', 'P1', 4, '001', 1)`)

	require.NoError(t, Validate(path))

	remote, err := OpenRemote(path)
	require.NoError(t, err)
	defer remote.Close()

	ctx := context.Background()
	ok, err := remote.HasTable(ctx, "stockin_data")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = remote.HasTable(ctx, "product_master")
	require.NoError(t, err)
	assert.False(t, ok)

	rows, err := remote.ReadRows(ctx, "stockin_data")
	require.NoError(t, err)
	require.Len(t, rows, 1)

	rec, err := inventory.DecodeStock(inventory.KindStockIn, rows[0])
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", rec.InputDate)
	assert.Equal(t, 4, rec.Quantity)
	assert.True(t, rec.IgnoreTrigger)
	assert.False(t, rec.SupplierName.Valid)
}

func TestRemoteStore_ReadOnly(t *testing.T) {
	path := newRemoteDB(t, remoteStockIn)
	remote, err := OpenRemote(path)
	require.NoError(t, err)
	defer remote.Close()

	_, err = remote.(*RemoteStore).db.Exec(`DELETE FROM stockin_data`)
	assert.Error(t, err)
}

func TestValidate_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.db")
	require.NoError(t, os.WriteFile(path, []byte("this is definitely not a sqlite database file, just text padding"), 0o600))
	assert.Error(t, Validate(path))
}

func TestEngineAgainstSQLite(t *testing.T) {
	ctx := context.Background()
	local := newTestStorage(t)
	path := newRemoteDB(t, remoteStockIn,
		`INSERT INTO stockin_data (input_date, slip_number, product_code, quantity, shop_code) VALUES
		 ('2024-03-01', 'SL1', 'P1', 1, '001'),
		 ('2024-03-01', 'SL1', 'P2', 2, '001'),
		 ('2024-03-01', 'SL2', 'P1', 3, '001')`)

	remote, err := OpenRemote(path)
	require.NoError(t, err)
	defer remote.Close()

	engine := sync.NewEngine(local, 0, logger.Discard())
	pos := sync.TablePosition{Index: 0, Total: 1}

	first := engine.SyncTable(ctx, remote, inventory.KindStockIn, pos, nil)
	assert.Equal(t, 3, first.RecordsInserted)

	second := engine.SyncTable(ctx, remote, inventory.KindStockIn, pos, nil)
	assert.True(t, second.Success)
	assert.Equal(t, 0, second.RecordsInserted)
	assert.Equal(t, 3, second.RecordsUpdated)

	missing := engine.SyncTable(ctx, remote, inventory.KindInventory, pos, nil)
	assert.True(t, missing.Success)
	assert.Zero(t, missing.RecordsFound)
}
