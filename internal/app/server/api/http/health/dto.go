package health

import "stockbridge/internal/app"

type Input struct{}

type Output struct {
	Body Response
}

type Response struct {
	Status string `json:"status" example:"OK" doc:"Health status of the service"`
}

type DoctorOutput struct {
	Body DoctorResponse
}

type DoctorResponse struct {
	Status string           `json:"status" example:"Ok" enum:"Ok,Degraded"`
	Report app.DoctorReport `json:"report"`
}
