package inventory

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// Row сырая строка удаленной таблицы: имя колонки -> значение драйвера
type Row map[string]any

// Columns колонки, которые читаются из удаленной таблицы
func (k Kind) Columns() []string {
	switch k {
	case KindInventory:
		return []string{
			"input_date", "staff_code", "shop_code", "shelf_number", "shelf_position", "jan_code",
			"quantity", "cost", "price", "system_quantity", "quantity_discrepancy", "note",
			"update_date", "update_time",
		}
	case KindStockIn:
		return []string{
			"input_date", "supplier_code", "supplier_name", "slip_number", "location", "shelf_no",
			"shelf_position", "product_code", "quantity", "staff_code", "shop_code", "note", "ignore_trigger",
		}
	case KindStockOut:
		return append(KindStockIn.Columns(), "dept_code", "dept_name")
	case KindProductMaster:
		return []string{"jan_code", "product_name", "box_quantity", "supplier_code"}
	}
	panic(fmt.Sprintf("inventory: unknown table kind %d", int(k)))
}

// decoder читает значения колонок и запоминает первую ошибку
type decoder struct {
	row Row
	err error
}

func (d *decoder) value(col string) (any, bool) {
	if d.err != nil {
		return nil, false
	}
	v, ok := d.row[col]
	if !ok {
		d.err = fmt.Errorf("%s: %w", col, ErrMissingColumn)
		return nil, false
	}
	return v, true
}

func (d *decoder) fail(col string, v any, err error) {
	d.err = fmt.Errorf("%s=%v: %w: %v", col, v, ErrInvalidValue, err)
}

func (d *decoder) str(col string) string {
	v, ok := d.value(col)
	if !ok || v == nil {
		return ""
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		d.fail(col, v, err)
		return ""
	}
	return strings.TrimSpace(s)
}

func (d *decoder) optional(col string) OptionalString {
	v, ok := d.value(col)
	if !ok || v == nil {
		return None()
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		d.fail(col, v, err)
		return None()
	}
	return Some(strings.TrimSpace(s))
}

func (d *decoder) int(col string) int {
	v, ok := d.value(col)
	if !ok || v == nil {
		return 0
	}
	// Строки разбираем в десятичной системе: "08" - это 8, а не ошибка восьмеричной записи
	if s, isString := asString(v); isString {
		s = strings.TrimSpace(s)
		if s == "" {
			return 0
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			f, ferr := strconv.ParseFloat(s, 64)
			if ferr != nil {
				d.fail(col, v, err)
				return 0
			}
			return d.truncate(col, v, f)
		}
		return n
	}
	switch f := v.(type) {
	case float64:
		return d.truncate(col, v, f)
	case float32:
		return d.truncate(col, v, float64(f))
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		d.fail(col, v, err)
		return 0
	}
	return n
}

// truncate отбрасывает дробную часть, NaN, бесконечности и значения вне диапазона int дают ошибку
func (d *decoder) truncate(col string, v any, f float64) int {
	if math.IsNaN(f) || math.IsInf(f, 0) || f >= math.MaxInt || f < math.MinInt {
		d.fail(col, v, errors.New("out of int range"))
		return 0
	}
	return int(f)
}

func (d *decoder) float(col string) float64 {
	v, ok := d.value(col)
	if !ok || v == nil {
		return 0
	}
	if s, isString := asString(v); isString {
		s = strings.TrimSpace(s)
		if s == "" {
			return 0
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			d.fail(col, v, err)
			return 0
		}
		return f
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		d.fail(col, v, err)
		return 0
	}
	return f
}

func (d *decoder) bool(col string) bool {
	v, ok := d.value(col)
	if !ok || v == nil {
		return false
	}
	if s, isString := asString(v); isString {
		s = strings.TrimSpace(s)
		if s == "" {
			return false
		}
		v = s
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		d.fail(col, v, err)
		return false
	}
	return b
}

func asString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case []byte:
		return string(s), true
	}
	return "", false
}

// DecodeInventory преобразует сырую строку в InventoryRecord
func DecodeInventory(row Row) (InventoryRecord, error) {
	d := &decoder{row: row}
	rec := InventoryRecord{
		InputDate:           d.str("input_date"),
		StaffCode:           d.str("staff_code"),
		ShopCode:            d.str("shop_code"),
		ShelfNumber:         d.str("shelf_number"),
		ShelfPosition:       d.str("shelf_position"),
		JanCode:             d.optional("jan_code"),
		Quantity:            d.int("quantity"),
		Cost:                d.float("cost"),
		Price:               d.float("price"),
		SystemQuantity:      d.int("system_quantity"),
		QuantityDiscrepancy: d.int("quantity_discrepancy"),
		Note:                d.str("note"),
		UpdateDate:          d.optional("update_date"),
		UpdateTime:          d.optional("update_time"),
	}
	if d.err != nil {
		return InventoryRecord{}, d.err
	}
	return rec, nil
}

// DecodeStock преобразует сырую строку в StockRecord для прихода или расхода
func DecodeStock(kind Kind, row Row) (StockRecord, error) {
	d := &decoder{row: row}
	rec := StockRecord{
		InputDate:     d.str("input_date"),
		SupplierCode:  d.optional("supplier_code"),
		SupplierName:  d.optional("supplier_name"),
		SlipNumber:    d.str("slip_number"),
		Location:      d.str("location"),
		ShelfNo:       d.str("shelf_no"),
		ShelfPosition: d.str("shelf_position"),
		ProductCode:   d.str("product_code"),
		Quantity:      d.int("quantity"),
		StaffCode:     d.str("staff_code"),
		ShopCode:      d.str("shop_code"),
		Note:          d.str("note"),
		IgnoreTrigger: d.bool("ignore_trigger"),
	}
	if kind == KindStockOut {
		rec.DeptCode = d.str("dept_code")
		rec.DeptName = d.str("dept_name")
	}
	if d.err != nil {
		return StockRecord{}, d.err
	}
	if err := rec.Validate(kind); err != nil {
		return StockRecord{}, err
	}
	return rec, nil
}

// DecodeProduct преобразует сырую строку в ProductRecord
func DecodeProduct(row Row) (ProductRecord, error) {
	d := &decoder{row: row}
	rec := ProductRecord{
		JanCode:      d.str("jan_code"),
		ProductName:  d.str("product_name"),
		BoxQuantity:  d.int("box_quantity"),
		SupplierCode: d.str("supplier_code"),
	}
	if d.err != nil {
		return ProductRecord{}, d.err
	}
	if err := rec.Validate(); err != nil {
		return ProductRecord{}, err
	}
	return rec, nil
}
