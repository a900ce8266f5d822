package models

// APIResponse is the envelope every endpoint answers with. Errors carry a nil Data.
type APIResponse struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
}
