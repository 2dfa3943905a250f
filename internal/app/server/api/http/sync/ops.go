package sync

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) syncOp() huma.Operation {
	return huma.Operation{
		OperationID: "sync-run",
		Method:      http.MethodPost,
		Path:        "/api/v1/sync",
		Summary:     "Синхронизировать данные с устройства",
		Description: "Извлекает базу с устройства и сводит таблицы в локальное хранилище. " +
			"Прогресс передается событиями progress, итог - событием result, фатальная ошибка - событием error.",
		Tags:        []string{"sync"},
		Middlewares: h.middleware,
	}
}
