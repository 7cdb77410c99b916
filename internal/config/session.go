package config

import (
	"context"
	"fmt"

	"RieperLogistics_ScanLedger/internal/util"
)

// 디바이스 세션 설정. 레코드 테이블과 별도로 저장된다.
type Session struct {
	Mitarbeiter string `json:"mitarbeiter"`
	ClientID    string `json:"clientId"`
	LastSync    string `json:"lastSync,omitempty"`
}

type SessionStore interface {
	LoadSession(ctx context.Context) (Session, error)
	SaveSession(ctx context.Context, s Session) error
}

// 세션을 읽고, clientId가 없으면 한 번 생성해서 저장한다.
func LoadSession(ctx context.Context, store SessionStore) (Session, error) {
	s, err := store.LoadSession(ctx)
	if err != nil {
		return Session{}, fmt.Errorf("LoadSession(): %w", err)
	}
	if s.ClientID == "" {
		s.ClientID = util.NewClientID()
		if err := store.SaveSession(ctx, s); err != nil {
			return Session{}, fmt.Errorf("LoadSession(): failed to persist client id: %w", err)
		}
	}
	return s, nil
}
