/**
* Name: 			tokens.go
* Description: 		Dropbox OAuth 토큰 관리
* Workflow: 		refresh token -> access token 교환, 변경된 토큰은 .env에 저장
 */
package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sync"

	"RieperLogistics_ScanLedger/internal/config"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

var ErrNotAuthorized = errors.New("no dropbox refresh token, run /auth/start first")

var DropboxEndpoint = oauth2.Endpoint{
	AuthURL:   "https://www.dropbox.com/oauth2/authorize",
	TokenURL:  "https://api.dropboxapi.com/oauth2/token",
	AuthStyle: oauth2.AuthStyleInParams,
}

func DropboxOAuthConfig(cfg config.Server) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.DropboxAppKey,
		ClientSecret: cfg.DropboxAppSecret,
		Endpoint:     DropboxEndpoint,
		RedirectURL:  cfg.OAuthRedirectURL,
	}
}

type TokenPersister interface {
	SaveTokens(tok *oauth2.Token) error
}

// .env 파일의 다른 키는 보존하고 토큰 키만 갱신
type EnvTokenPersister struct {
	Path string
	mu   sync.Mutex
}

func (p *EnvTokenPersister) SaveTokens(tok *oauth2.Token) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	env, err := godotenv.Read(p.Path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("SaveTokens(): read %s: %w", p.Path, err)
		}
		env = map[string]string{}
	}

	env["DROPBOX_ACCESS_TOKEN"] = tok.AccessToken
	if tok.RefreshToken != "" {
		env["DROPBOX_REFRESH_TOKEN"] = tok.RefreshToken
	}
	if err := godotenv.Write(env, p.Path); err != nil {
		return fmt.Errorf("SaveTokens(): write %s: %w", p.Path, err)
	}
	return nil
}

// DropboxTokens는 oauth2.TokenSource. 콜백에서 새 토큰을 받으면 교체된다.
type DropboxTokens struct {
	conf      *oauth2.Config
	persister TokenPersister
	logger    logrus.FieldLogger
	ctx       context.Context

	mu         sync.Mutex
	src        oauth2.TokenSource
	lastAccess string
}

// refresh token이 있으면 access token은 무시하고 refresh로 새로 받는다 (만료 시각을 알 수 있도록).
// access token만 있으면 그대로 쓴다.
func NewDropboxTokens(ctx context.Context, conf *oauth2.Config, persister TokenPersister, logger logrus.FieldLogger, refreshToken, accessToken string) *DropboxTokens {
	d := &DropboxTokens{conf: conf, persister: persister, logger: logger, ctx: ctx}
	switch {
	case refreshToken != "":
		d.src = conf.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	case accessToken != "":
		d.src = oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
		d.lastAccess = accessToken
	}
	return d
}

func (d *DropboxTokens) Token() (*oauth2.Token, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.src == nil {
		return nil, ErrNotAuthorized
	}
	tok, err := d.src.Token()
	if err != nil {
		return nil, fmt.Errorf("dropbox token refresh: %w", err)
	}

	if tok.AccessToken != d.lastAccess {
		d.lastAccess = tok.AccessToken
		d.logger.WithField("expiry", tok.Expiry).Info("Token(): dropbox access token refreshed")
		if d.persister != nil {
			if err := d.persister.SaveTokens(tok); err != nil {
				config.LogError(d.logger, "remote", "Token", nil, err)
			}
		}
	}
	return tok, nil
}

// offline 접근으로 refresh token을 받도록 요청
func (d *DropboxTokens) AuthCodeURL(state string) string {
	return d.conf.AuthCodeURL(state, oauth2.SetAuthURLParam("token_access_type", "offline"))
}

func (d *DropboxTokens) Exchange(ctx context.Context, code string) error {
	tok, err := d.conf.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("Exchange(): %w", err)
	}
	if tok.RefreshToken == "" {
		return errors.New("Exchange(): no refresh token in response")
	}

	if d.persister != nil {
		if err := d.persister.SaveTokens(tok); err != nil {
			return err
		}
	}

	d.mu.Lock()
	d.src = d.conf.TokenSource(d.ctx, tok)
	d.lastAccess = tok.AccessToken
	d.mu.Unlock()

	d.logger.Info("Exchange(): dropbox tokens stored")
	return nil
}

// 토큰이 자동으로 붙는 HTTP 클라이언트
func (d *DropboxTokens) Client(ctx context.Context) *http.Client {
	return oauth2.NewClient(ctx, d)
}
