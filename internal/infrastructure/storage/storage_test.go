package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"stockbridge/internal/domain/inventory"
)

func TestInsertQuery(t *testing.T) {
	assert.Equal(t,
		"INSERT INTO product_master (jan_code, product_name) VALUES (?, ?)",
		InsertQuery("product_master", []string{"jan_code", "product_name"}, QuestionMark))
	assert.Equal(t,
		"INSERT INTO product_master (jan_code, product_name) VALUES ($1, $2)",
		InsertQuery("product_master", []string{"jan_code", "product_name"}, Dollar))
}

func TestUpdateQuery(t *testing.T) {
	assert.Equal(t,
		"UPDATE stockin_data SET quantity = $1, note = $2, updated_at = CURRENT_TIMESTAMP WHERE id = $3",
		UpdateQuery("stockin_data", []string{"quantity", "note"}, Dollar))
}

func TestArgsMatchColumns(t *testing.T) {
	assert.Len(t, InventoryArgs(inventory.InventoryRecord{}), len(inventory.KindInventory.Columns()))
	assert.Len(t, StockArgs(inventory.KindStockIn, inventory.StockRecord{}), len(inventory.KindStockIn.Columns()))
	assert.Len(t, StockArgs(inventory.KindStockOut, inventory.StockRecord{}), len(inventory.KindStockOut.Columns()))
	assert.Len(t, ProductArgs(inventory.ProductRecord{}), len(inventory.KindProductMaster.Columns()))
}

func TestStockKind(t *testing.T) {
	assert.NoError(t, StockKind(inventory.KindStockIn))
	assert.NoError(t, StockKind(inventory.KindStockOut))
	assert.Error(t, StockKind(inventory.KindProductMaster))
}
