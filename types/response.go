package types

type ApiResponse struct {
	Message  string      `json:"message"`
	Status   int         `json:"status"`
	Warnings []string    `json:"warnings,omitempty"`
	Data     interface{} `json:"data,omitempty"`
}
