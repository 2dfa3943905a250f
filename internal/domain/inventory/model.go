package inventory

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// OptionalString строковое поле, которое может отсутствовать (NULL).
// Два отсутствующих значения равны между собой, отсутствующее и пустое - нет.
type OptionalString struct {
	Text  string
	Valid bool
}

// Some создает заполненное значение
func Some(v string) OptionalString {
	return OptionalString{Text: v, Valid: true}
}

// None отсутствующее значение
func None() OptionalString {
	return OptionalString{}
}

// Equal сравнивает значения с учетом NULL = NULL
func (o OptionalString) Equal(other OptionalString) bool {
	if !o.Valid || !other.Valid {
		return o.Valid == other.Valid
	}
	return o.Text == other.Text
}

func (o OptionalString) String() string {
	if !o.Valid {
		return "<null>"
	}
	return o.Text
}

// Scan реализует sql.Scanner
func (o *OptionalString) Scan(src any) error {
	var ns sql.NullString
	if err := ns.Scan(src); err != nil {
		return err
	}
	o.Text, o.Valid = ns.String, ns.Valid
	return nil
}

// Value реализует driver.Valuer
func (o OptionalString) Value() (driver.Value, error) {
	if !o.Valid {
		return nil, nil
	}
	return o.Text, nil
}

func (o OptionalString) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Text)
}

func (o *OptionalString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*o = None()
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*o = Some(s)
	return nil
}

// InventoryRecord строка инвентаризации (подсчет на полке)
type InventoryRecord struct {
	InputDate           string         `json:"input_date"`
	StaffCode           string         `json:"staff_code"`
	ShopCode            string         `json:"shop_code"`
	ShelfNumber         string         `json:"shelf_number"`
	ShelfPosition       string         `json:"shelf_position"`
	JanCode             OptionalString `json:"jan_code"`
	Quantity            int            `json:"quantity"`
	Cost                float64        `json:"cost"`
	Price               float64        `json:"price"`
	SystemQuantity      int            `json:"system_quantity"`
	QuantityDiscrepancy int            `json:"quantity_discrepancy"`
	Note                string         `json:"note"`
	UpdateDate          OptionalString `json:"update_date"`
	UpdateTime          OptionalString `json:"update_time"`
}

// InventoryKey естественный ключ строки инвентаризации
type InventoryKey struct {
	StaffCode     string
	ShopCode      string
	ShelfNumber   string
	ShelfPosition string
	InputDate     string
	JanCode       OptionalString
}

func (r InventoryRecord) Key() InventoryKey {
	return InventoryKey{
		StaffCode:     r.StaffCode,
		ShopCode:      r.ShopCode,
		ShelfNumber:   r.ShelfNumber,
		ShelfPosition: r.ShelfPosition,
		InputDate:     r.InputDate,
		JanCode:       r.JanCode,
	}
}

// Matches сравнивает ключи, JAN-код сравнивается с учетом NULL
func (k InventoryKey) Matches(other InventoryKey) bool {
	return k.StaffCode == other.StaffCode &&
		k.ShopCode == other.ShopCode &&
		k.ShelfNumber == other.ShelfNumber &&
		k.ShelfPosition == other.ShelfPosition &&
		k.InputDate == other.InputDate &&
		k.JanCode.Equal(other.JanCode)
}

// StockRecord строка приходной или расходной накладной.
// DeptCode/DeptName заполняются только для расхода.
type StockRecord struct {
	InputDate     string         `json:"input_date"`
	SupplierCode  OptionalString `json:"supplier_code"`
	SupplierName  OptionalString `json:"supplier_name"`
	SlipNumber    string         `json:"slip_number"`
	Location      string         `json:"location"`
	ShelfNo       string         `json:"shelf_no"`
	ShelfPosition string         `json:"shelf_position"`
	ProductCode   string         `json:"product_code"`
	Quantity      int            `json:"quantity"`
	StaffCode     string         `json:"staff_code"`
	ShopCode      string         `json:"shop_code"`
	Note          string         `json:"note"`
	IgnoreTrigger bool           `json:"ignore_trigger"`
	DeptCode      string         `json:"dept_code,omitempty"`
	DeptName      string         `json:"dept_name,omitempty"`
}

// StockKey естественный ключ строки накладной
type StockKey struct {
	SlipNumber  string
	ProductCode string
	InputDate   string
	ShopCode    string
}

func (r StockRecord) Key() StockKey {
	return StockKey{
		SlipNumber:  r.SlipNumber,
		ProductCode: r.ProductCode,
		InputDate:   r.InputDate,
		ShopCode:    r.ShopCode,
	}
}

// Validate проверяет обязательные поля для указанной таблицы
func (r StockRecord) Validate(kind Kind) error {
	switch kind {
	case KindStockIn:
		return nil
	case KindStockOut:
		if !r.SupplierCode.Valid || strings.TrimSpace(r.SupplierCode.Text) == "" {
			return fmt.Errorf("supplier_code: %w", ErrMissingField)
		}
		if strings.TrimSpace(r.DeptCode) == "" {
			return fmt.Errorf("dept_code: %w", ErrMissingField)
		}
		if strings.TrimSpace(r.DeptName) == "" {
			return fmt.Errorf("dept_name: %w", ErrMissingField)
		}
		return nil
	}
	return fmt.Errorf("stock record used with table %s", kind)
}

// ProductRecord строка справочника товаров
type ProductRecord struct {
	JanCode      string `json:"jan_code"`
	ProductName  string `json:"product_name"`
	BoxQuantity  int    `json:"box_quantity"`
	SupplierCode string `json:"supplier_code"`
}

func (r ProductRecord) Validate() error {
	if strings.TrimSpace(r.JanCode) == "" {
		return fmt.Errorf("jan_code: %w", ErrMissingField)
	}
	return nil
}
