package dto

import "time"

type MessageResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type UploadTextResponse struct {
	Filename       string `json:"filename"`
	Content        string `json:"content"`
	SuggestedTitle string `json:"suggested_title"`
}
