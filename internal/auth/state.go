/* OAuth 콜백의 state 파라미터를 JWT로 서명/검증 (CSRF 방지) */

package auth

import (
	"crypto/rand"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	stateIssuer  = "scanledger-api"
	stateSubject = "dropbox_oauth_state"
	stateTTL     = 10 * time.Minute
)

var ErrInvalidState = errors.New("invalid oauth state")

type StateClaims struct {
	jwt.RegisteredClaims
}

type StateSigner struct {
	key []byte
	now func() time.Time
}

// secret이 비어 있으면 프로세스마다 임의 키를 만든다. 재시작하면 진행 중인 인증은 무효가 된다.
func NewStateSigner(secret string, logger logrus.FieldLogger) *StateSigner {
	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			panic("auth: failed to generate state key: " + err.Error())
		}
		logger.Warn("NewStateSigner(): OAUTH_STATE_SECRET is not set, using a random per-process key")
	}
	return &StateSigner{key: key, now: time.Now}
}

func (s *StateSigner) Issue() (string, error) {
	now := s.now()
	claims := &StateClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(stateTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    stateIssuer,
			Subject:   stateSubject,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.key)
}

func (s *StateSigner) Verify(state string) error {
	claims := &StateClaims{}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(state, claims, func(token *jwt.Token) (interface{}, error) {
		return s.key, nil
	})
	if err != nil {
		return errors.Join(ErrInvalidState, err)
	}
	if !token.Valid || claims.Subject != stateSubject || claims.Issuer != stateIssuer {
		return ErrInvalidState
	}
	return nil
}
