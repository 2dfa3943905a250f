package storage

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"stockbridge/internal/domain/inventory"
	"stockbridge/internal/domain/sync"
)

// Store локальное хранилище, которое использует приложение
type Store interface {
	sync.LocalStore

	// TableCounts количество строк в каждой синхронизируемой таблице
	TableCounts(ctx context.Context) (map[string]int, error)
	Close() error
}

// Placeholder формирует параметр запроса по его номеру (с 1)
type Placeholder func(n int) string

// QuestionMark параметры sqlite
func QuestionMark(int) string { return "?" }

// Dollar параметры postgres
func Dollar(n int) string { return "$" + strconv.Itoa(n) }

// InsertQuery INSERT по списку колонок
func InsertQuery(table string, columns []string, ph Placeholder) string {
	params := make([]string, len(columns))
	for i := range columns {
		params[i] = ph(i + 1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(columns, ", "), strings.Join(params, ", "))
}

// UpdateQuery UPDATE всех колонок по id. id передается последним аргументом.
func UpdateQuery(table string, columns []string, ph Placeholder) string {
	sets := make([]string, len(columns))
	for i, col := range columns {
		sets[i] = col + " = " + ph(i+1)
	}
	return fmt.Sprintf("UPDATE %s SET %s, updated_at = CURRENT_TIMESTAMP WHERE id = %s",
		table, strings.Join(sets, ", "), ph(len(columns)+1))
}

// CountQuery подсчет строк таблицы
func CountQuery(table string) string {
	return "SELECT COUNT(*) FROM " + table
}

// InventoryArgs значения в порядке KindInventory.Columns()
func InventoryArgs(r inventory.InventoryRecord) []any {
	return []any{
		r.InputDate, r.StaffCode, r.ShopCode, r.ShelfNumber, r.ShelfPosition, r.JanCode,
		r.Quantity, r.Cost, r.Price, r.SystemQuantity, r.QuantityDiscrepancy, r.Note,
		r.UpdateDate, r.UpdateTime,
	}
}

// StockArgs значения в порядке kind.Columns()
func StockArgs(kind inventory.Kind, r inventory.StockRecord) []any {
	args := []any{
		r.InputDate, r.SupplierCode, r.SupplierName, r.SlipNumber, r.Location, r.ShelfNo,
		r.ShelfPosition, r.ProductCode, r.Quantity, r.StaffCode, r.ShopCode, r.Note, r.IgnoreTrigger,
	}
	if kind == inventory.KindStockOut {
		args = append(args, r.DeptCode, r.DeptName)
	}
	return args
}

// ProductArgs значения в порядке KindProductMaster.Columns()
func ProductArgs(r inventory.ProductRecord) []any {
	return []any{r.JanCode, r.ProductName, r.BoxQuantity, r.SupplierCode}
}

// StockKind проверяет, что таблица относится к накладным
func StockKind(kind inventory.Kind) error {
	if kind != inventory.KindStockIn && kind != inventory.KindStockOut {
		return fmt.Errorf("table %s is not a stock table", kind)
	}
	return nil
}
