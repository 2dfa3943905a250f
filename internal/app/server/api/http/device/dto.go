package device

import "stockbridge/internal/domain/device"

type listInput struct{}

type listOutput struct {
	Body listResponse
}

type listResponse struct {
	Status  string          `json:"status" example:"Ok"`
	Devices []device.Device `json:"devices"`
}

type idInput struct {
	ID string `path:"id" doc:"Серийный номер устройства"`
}

type infoOutput struct {
	Body infoResponse
}

type infoResponse struct {
	Status string         `json:"status" example:"Ok"`
	Device *device.Device `json:"device"`
}

type authorizeOutput struct {
	Body authorizeResponse
}

type authorizeResponse struct {
	Status     string `json:"status" example:"Ok"`
	Authorized bool   `json:"authorized"`
}

type filesInput struct {
	ID   string `path:"id"`
	Path string `query:"path" default:"/sdcard" doc:"Директория на устройстве"`
}

type filesOutput struct {
	Body filesResponse
}

type filesResponse struct {
	Status string              `json:"status" example:"Ok"`
	Path   string              `json:"path"`
	Files  []device.RemoteFile `json:"files"`
}

type transferInput struct {
	ID   string `path:"id"`
	Body transferRequest
}

type transferRequest struct {
	RemotePath string `json:"remote_path" minLength:"1" doc:"Путь на устройстве"`
	LocalPath  string `json:"local_path" minLength:"1" doc:"Путь на этом компьютере"`
}

type transferOutput struct {
	Body transferResponse
}

type transferResponse struct {
	Status  string                 `json:"status" example:"Ok" enum:"Ok,Error"`
	Outcome device.TransferOutcome `json:"outcome"`
}

type mkdirInput struct {
	ID   string `path:"id"`
	Body mkdirRequest
}

type mkdirRequest struct {
	Path string `json:"path" minLength:"1"`
}

type deleteInput struct {
	ID   string `path:"id"`
	Path string `query:"path" required:"true" minLength:"1"`
}

type actionOutput struct {
	Body actionResponse
}

type actionResponse struct {
	Status  string `json:"status" example:"Ok" enum:"Ok,Error"`
	Success bool   `json:"success"`
}

func status(ok bool) string {
	if ok {
		return "Ok"
	}
	return "Error"
}
