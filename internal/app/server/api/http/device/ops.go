package device

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (h *Handler) listOp() huma.Operation {
	return huma.Operation{
		OperationID: "devices-list",
		Method:      http.MethodGet,
		Path:        "/api/v1/devices",
		Summary:     "Список подключенных устройств",
		Tags:        []string{"devices"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) infoOp() huma.Operation {
	return huma.Operation{
		OperationID: "devices-info",
		Method:      http.MethodGet,
		Path:        "/api/v1/devices/{id}",
		Summary:     "Информация об устройстве",
		Tags:        []string{"devices"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) authorizeOp() huma.Operation {
	return huma.Operation{
		OperationID: "devices-authorize",
		Method:      http.MethodPost,
		Path:        "/api/v1/devices/{id}/authorize",
		Summary:     "Дождаться подтверждения отладки на устройстве",
		Description: "Блокируется, пока пользователь не подтвердит отладку или не истечет таймаут.",
		Tags:        []string{"devices"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) filesOp() huma.Operation {
	return huma.Operation{
		OperationID: "files-list",
		Method:      http.MethodGet,
		Path:        "/api/v1/devices/{id}/files",
		Summary:     "Содержимое директории на устройстве",
		Tags:        []string{"files"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) pullOp() huma.Operation {
	return huma.Operation{
		OperationID: "files-pull",
		Method:      http.MethodPost,
		Path:        "/api/v1/devices/{id}/pull",
		Summary:     "Скопировать файл с устройства",
		Tags:        []string{"files"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) pushOp() huma.Operation {
	return huma.Operation{
		OperationID: "files-push",
		Method:      http.MethodPost,
		Path:        "/api/v1/devices/{id}/push",
		Summary:     "Скопировать файл на устройство",
		Tags:        []string{"files"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) mkdirOp() huma.Operation {
	return huma.Operation{
		OperationID: "files-mkdir",
		Method:      http.MethodPost,
		Path:        "/api/v1/devices/{id}/mkdir",
		Summary:     "Создать директорию на устройстве",
		Tags:        []string{"files"},
		Middlewares: h.middleware,
	}
}

func (h *Handler) deleteOp() huma.Operation {
	return huma.Operation{
		OperationID: "files-delete",
		Method:      http.MethodDelete,
		Path:        "/api/v1/devices/{id}/files",
		Summary:     "Удалить файл на устройстве",
		Tags:        []string{"files"},
		Middlewares: h.middleware,
	}
}
