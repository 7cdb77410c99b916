package handler

import "RieperLogistics_ScanLedger/internal/models"

type ErrorResponse struct {
	Error string `json:"error" example:"에러 원인 및 설명"`
}

// 작업자 설정 요청
type WorkerRequest struct {
	Mitarbeiter string `json:"mitarbeiter" example:"42"`
}

// 당일 목록 응답
type EntriesResponse struct {
	Entries []models.Record `json:"entries"`
}

type EntryResponse struct {
	Entry   models.Record   `json:"entry"`
	Entries []models.Record `json:"entries"`
}
