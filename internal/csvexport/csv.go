/**
* Name: 			csv.go
* Description: 		레코드 목록을 스프레드시트 안전 CSV로 직렬화
* Workflow: 		BOM + 고정 헤더 + 레코드별 행, 구분자는 세미콜론
 */
package csvexport

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"RieperLogistics_ScanLedger/internal/models"
	"RieperLogistics_ScanLedger/internal/util"
)

const (
	BOM       = "\uFEFF"
	Delimiter = ";"
	Header    = "barcode;spedition;artikel;bemerkung;hundert;fuenfzig;info;mitarbeiter;date;timestamp"
)

var digitsOnly = regexp.MustCompile(`^[0-9]+$`)

// 숫자만 있는 바코드는 ="..." 로 감싸서 엑셀이 텍스트로 읽게 한다 (앞자리 0, 지수 표기 방지)
func ProtectBarcode(value string) string {
	if digitsOnly.MatchString(value) {
		return `="` + value + `"`
	}
	return value
}

func quote(value string) string {
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}

func Encode(records []models.Record) string {
	var b strings.Builder
	b.WriteString(BOM)
	b.WriteString(Header)
	b.WriteString("\n")

	for _, r := range records {
		fields := []string{
			ProtectBarcode(r.Barcode),
			quote(r.Spedition),
			quote(r.Artikel),
			quote(r.Bemerkung),
			strconv.Itoa(r.Hundert),
			strconv.Itoa(r.Fuenfzig),
			quote(r.Info),
			quote(r.Mitarbeiter),
			quote(r.Date),
			quote(r.Timestamp),
		}
		b.WriteString(strings.Join(fields, Delimiter))
		b.WriteString("\n")
	}
	return b.String()
}

// 파일명의 날짜는 레코드 날짜가 아니라 전송 시점 날짜
func Filename(workerID, deviceID string, now time.Time) string {
	return util.Today(now) + "_DEVICE_" + deviceID + "_MA_" + workerID + ".csv"
}

// 백엔드 업로드용 요청 바디
func Payload(records []models.Record, workerID, deviceID string, now time.Time) models.AppendRequest {
	return models.AppendRequest{
		Filename: Filename(workerID, deviceID, now),
		CSVData:  Encode(records),
	}
}
