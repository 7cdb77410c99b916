package models

// 스캔 또는 수기 입력된 한 건의 출고 기록
type Record struct {
	ID          int64  `json:"id"`
	Barcode     string `json:"barcode"`
	Spedition   string `json:"spedition"`
	Artikel     string `json:"artikel"`
	Bemerkung   string `json:"bemerkung"`
	Hundert     int    `json:"hundert"`
	Fuenfzig    int    `json:"fuenfzig"`
	Info        string `json:"info"`
	Mitarbeiter string `json:"mitarbeiter"`
	Date        string `json:"date"`
	Timestamp   string `json:"timestamp"`
}

// 입력 폼에서 들어오는 원시 값. 수량 필드는 폼 문자열 그대로 받는다.
type EntryInput struct {
	Barcode   string `json:"barcode" example:"0012345"`
	Spedition string `json:"spedition" example:"DHL"`
	Artikel   string `json:"artikel" example:"Palette"`
	Bemerkung string `json:"bemerkung"`
	Hundert   string `json:"hundert" example:"5"`
	Fuenfzig  string `json:"fuenfzig" example:"0"`
	Info      string `json:"info"`
}
