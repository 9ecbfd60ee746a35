package hh

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"
)

// Endpoint is the HH OAuth 2.0 endpoint.
var Endpoint = oauth2.Endpoint{
	AuthURL:  "https://hh.ru/oauth/authorize",
	TokenURL: "https://hh.ru/oauth/token",
}

// OAuthConfig builds the oauth2 config for an HH application.
func OAuthConfig(clientID, clientSecret, redirectURI string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURI,
		Endpoint:     Endpoint,
	}
}

// Authorize runs the interactive authorization-code flow: logs the
// authorization URL for the user to open, captures the code on the
// redirect URI's loopback port and exchanges it for a token.
func Authorize(ctx context.Context, cfg *oauth2.Config) (*oauth2.Token, error) {
	authURL := cfg.AuthCodeURL("")
	slog.Info("authorization required, open this URL in a browser", slog.String("url", authURL))

	code, err := CaptureAuthCode(ctx, cfg.RedirectURL)
	if err != nil {
		return nil, fmt.Errorf("hh: capture auth code: %w", err)
	}

	tok, err := cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("hh: token exchange: %w", err)
	}
	return tok, nil
}

const (
	authOKPage  = `<html><body><h1>Успешно!</h1><p>Можно закрыть эту вкладку.</p></body></html>`
	authErrPage = `<html><body><h1>Ошибка!</h1><p>Не удалось получить код авторизации.</p></body></html>`
)

// CaptureAuthCode serves a one-shot HTTP handler on the redirect URI's
// port and returns the "code" query parameter from the first redirect hit.
func CaptureAuthCode(ctx context.Context, redirectURI string) (string, error) {
	u, err := url.Parse(redirectURI)
	if err != nil {
		return "", fmt.Errorf("parse redirect URI: %w", err)
	}
	if u.Port() == "" {
		return "", fmt.Errorf("redirect URI %q has no port", redirectURI)
	}

	ln, err := net.Listen("tcp", "localhost:"+u.Port())
	if err != nil {
		return "", fmt.Errorf("listen on port %s: %w", u.Port(), err)
	}

	codeCh := make(chan string, 1)
	srv := &http.Server{Handler: authCodeHandler(codeCh)}
	go func() {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			slog.Warn("auth callback server stopped", slog.Any("error", err))
		}
	}()
	defer func() {
		shutCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(shutCtx) //nolint:errcheck
	}()

	select {
	case code := <-codeCh:
		if code == "" {
			return "", fmt.Errorf("redirect carried no code parameter")
		}
		return code, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// authCodeHandler renders a minimal status page and forwards the captured
// code. Only the first hit is reported.
func authCodeHandler(codeCh chan<- string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if code != "" {
			fmt.Fprint(w, authOKPage)
		} else {
			fmt.Fprint(w, authErrPage)
		}
		select {
		case codeCh <- code:
		default:
		}
	})
}
