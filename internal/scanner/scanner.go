/**
* Name: 			scanner.go
* Description: 		바코드 스캐너 입력 수신
* Workflow: 		키보드 웨지 스캐너는 한 번 읽을 때마다 코드 + 개행을 보낸다
 */
package scanner

import (
	"bufio"
	"context"
	"io"
	"strings"
)

// r에서 한 줄씩 읽어 비어 있지 않은 코드마다 onScan을 호출한다.
// r이 끝나거나 ctx가 취소되면 반환한다.
func Listen(ctx context.Context, r io.Reader, onScan func(code string)) error {
	lines := make(chan string)
	errc := make(chan error, 1)

	go func() {
		defer close(lines)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		errc <- sc.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-errc:
					return err
				default:
					return nil
				}
			}
			code := strings.TrimSpace(line)
			if code == "" {
				continue
			}
			onScan(code)
		}
	}
}
