package models

// Append endpoint 요청 바디
type AppendRequest struct {
	Filename string `json:"filename" example:"2024-01-02_DEVICE_device_abc_MA_42.csv"`
	CSVData  string `json:"csvData"`
}

// Append endpoint 응답 바디
type AppendResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}
