package sync

type syncInput struct {
	Body syncRequest
}

type syncRequest struct {
	DeviceID   string `json:"device_id" minLength:"1" doc:"Серийный номер устройства"`
	RemotePath string `json:"remote_path,omitempty" doc:"Путь к базе на устройстве, по умолчанию из настроек"`
}

// errorEvent событие SSE о фатальной ошибке синхронизации
type errorEvent struct {
	Code    string `json:"code" enum:"extraction_failed,empty_extraction,corrupt_extraction,sync_in_progress,store_unavailable,internal"`
	Message string `json:"message"`
}
