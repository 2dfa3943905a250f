package sync

import "math"

// Result итог синхронизации одной таблицы
type Result struct {
	TableName       string `json:"table_name"`
	RecordsFound    int    `json:"records_found"`
	RecordsInserted int    `json:"records_inserted"`
	RecordsUpdated  int    `json:"records_updated"`
	Success         bool   `json:"success"`
	Error           string `json:"error,omitempty"`
	Note            string `json:"note,omitempty"`
}

// Failed количество строк, которые не удалось ни вставить, ни обновить
func (r Result) Failed() int {
	return r.RecordsFound - r.RecordsInserted - r.RecordsUpdated
}

// Progress событие прогресса синхронизации
type Progress struct {
	CurrentTable    string `json:"current_table"`
	TablesCompleted int    `json:"tables_completed"`
	TotalTables     int    `json:"total_tables"`
	CurrentRecords  int    `json:"current_records"`
	TotalRecords    int    `json:"total_records"`
	OverallProgress int    `json:"overall_progress"`
}

// ProgressFunc получатель событий прогресса. Может быть nil.
type ProgressFunc func(Progress)

// Report результат полного прохода синхронизации
type Report struct {
	RunID   string   `json:"run_id"`
	Results []Result `json:"results"`
}

// overallProgress смешивает долю обработанных строк таблицы с позицией таблицы.
// Для таблицы i из n результат лежит в [i*100/n, (i+1)*100/n), 100 только у итогового события.
func overallProgress(pos TablePosition, current, total int) int {
	if pos.Total <= 0 {
		return 100
	}
	fraction := 0.0
	if total > 0 {
		fraction = float64(current) / float64(total)
	}
	p := int(math.Round((float64(pos.Index) + fraction) / float64(pos.Total) * 100))
	if current < total {
		// Пока таблица не дочитана, значение не доходит до доли следующей таблицы
		lower := pos.Index * 100 / pos.Total
		upper := (pos.Index+1)*100/pos.Total - 1
		p = min(p, max(lower, upper))
	}
	return min(p, 100)
}
