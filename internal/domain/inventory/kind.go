package inventory

import "fmt"

// Kind закрытый набор логических таблиц синхронизации
type Kind int

const (
	KindInventory Kind = iota
	KindStockIn
	KindStockOut
	KindProductMaster
)

// Kinds фиксированный порядок синхронизации таблиц
var Kinds = []Kind{KindInventory, KindStockIn, KindStockOut, KindProductMaster}

// TableName имя таблицы в удаленной и локальной базах
func (k Kind) TableName() string {
	switch k {
	case KindInventory:
		return "inventory_data"
	case KindStockIn:
		return "stockin_data"
	case KindStockOut:
		return "stockout_data"
	case KindProductMaster:
		return "product_master"
	}
	panic(fmt.Sprintf("inventory: unknown table kind %d", int(k)))
}

// DisplayName возвращает человекочитаемое название таблицы.
func (k Kind) DisplayName() string {
	switch k {
	case KindInventory:
		return "Инвентаризация"
	case KindStockIn:
		return "Приход"
	case KindStockOut:
		return "Расход"
	case KindProductMaster:
		return "Справочник товаров"
	default:
		return "Неизвестная таблица"
	}
}

func (k Kind) String() string {
	if k.Validate() != nil {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return k.TableName()
}

// Validate проверяет, что Kind входит в закрытый набор
func (k Kind) Validate() error {
	switch k {
	case KindInventory, KindStockIn, KindStockOut, KindProductMaster:
		return nil
	}
	return fmt.Errorf("неверный тип таблицы: %d", int(k))
}

// ParseKind ищет Kind по имени таблицы
func ParseKind(tableName string) (Kind, error) {
	for _, k := range Kinds {
		if k.TableName() == tableName {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown table %q", tableName)
}
