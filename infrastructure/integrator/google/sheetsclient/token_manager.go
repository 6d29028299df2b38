package sheetsclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/arneor/sales-tracker-api/internal/config"
	"github.com/arneor/sales-tracker-api/pkg/log"
)

// margem de segurança antes da expiração real do access token
const tokenExpiryMargin = 60 * time.Second

// TokenManager mantém o access token do Google válido entre chamadas:
// restaura o token persistido em disco na subida, renova via refresh
// token quando expira e revoga no provedor quando a sessão termina.
type TokenManager struct {
	cfg        *config.Config
	httpClient *http.Client
	logger     log.Logger

	mu          sync.Mutex
	accessToken string
	expiresAt   time.Time
}

// persistedToken é o registro gravado em disco para sobreviver a restarts
type persistedToken struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
	Timestamp   int64  `json:"timestamp"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

type userinfoResponse struct {
	Email string `json:"email"`
}

func NewTokenManager(cfg *config.Config, logger log.Logger) *TokenManager {
	m := &TokenManager{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}

	if m.restoreFromFile() {
		logger.Info("Access token do Google restaurado do disco")
	}

	return m
}

// AccessToken devolve um token válido, renovando se necessário
func (m *TokenManager) AccessToken(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.accessToken != "" && time.Now().Add(tokenExpiryMargin).Before(m.expiresAt) {
		return m.accessToken, nil
	}

	if err := m.refresh(ctx); err != nil {
		return "", err
	}

	return m.accessToken, nil
}

// EnsureValidToken força a renovação antecipada quando o token em memória
// já passou da margem. Usado no login para falhar cedo com credencial ruim.
func (m *TokenManager) EnsureValidToken(ctx context.Context) error {
	_, err := m.AccessToken(ctx)
	return err
}

// refresh troca o refresh token por um access token novo. Chamador deve
// segurar o mutex.
func (m *TokenManager) refresh(ctx context.Context) error {
	form := url.Values{}
	form.Set("client_id", m.cfg.Google.ClientID)
	form.Set("client_secret", m.cfg.Google.ClientSecret)
	form.Set("refresh_token", m.cfg.Google.RefreshToken)
	form.Set("grant_type", "refresh_token")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.cfg.Google.TokenURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("erro ao renovar access token: %w", err)
	}
	defer resp.Body.Close()

	body, err := handleResponse(resp)
	if err != nil {
		return fmt.Errorf("provedor recusou a renovação do token: %w", err)
	}

	var token tokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		return fmt.Errorf("erro ao decodificar resposta do token: %w", err)
	}

	m.accessToken = token.AccessToken
	m.expiresAt = time.Now().Add(time.Duration(token.ExpiresIn) * time.Second)

	m.persistToFile(token)

	m.logger.Info("Access token do Google renovado")

	return nil
}

// Revoke invalida o token no provedor e descarta o registro local
func (m *TokenManager) Revoke(ctx context.Context) error {
	m.mu.Lock()
	token := m.accessToken
	m.accessToken = ""
	m.expiresAt = time.Time{}
	m.mu.Unlock()

	if err := os.Remove(m.cfg.Google.TokenFile); err != nil && !os.IsNotExist(err) {
		m.logger.WithError(err).Warn("Não foi possível remover o arquivo de token")
	}

	if token == "" {
		return nil
	}

	form := url.Values{}
	form.Set("token", token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.cfg.Google.RevokeURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("erro ao revogar token no provedor: %w", err)
	}
	defer resp.Body.Close()

	if _, err := handleResponse(resp); err != nil {
		return fmt.Errorf("provedor recusou a revogação: %w", err)
	}

	return nil
}

// UserEmail consulta o endpoint de userinfo e devolve o email da conta
// dona do token atual
func (m *TokenManager) UserEmail(ctx context.Context) (string, error) {
	token, err := m.AccessToken(ctx)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.cfg.Google.UserinfoURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("erro ao consultar userinfo: %w", err)
	}
	defer resp.Body.Close()

	body, err := handleResponse(resp)
	if err != nil {
		return "", err
	}

	var info userinfoResponse
	if err := json.Unmarshal(body, &info); err != nil {
		return "", fmt.Errorf("erro ao decodificar userinfo: %w", err)
	}

	return info.Email, nil
}

// restoreFromFile tenta reaproveitar o token gravado por uma execução
// anterior. Só aceita se ainda faltar mais que a margem para expirar.
func (m *TokenManager) restoreFromFile() bool {
	data, err := os.ReadFile(m.cfg.Google.TokenFile)
	if err != nil {
		return false
	}

	var stored persistedToken
	if err := json.Unmarshal(data, &stored); err != nil {
		return false
	}

	storedAt := time.UnixMilli(stored.Timestamp)
	expiresAt := storedAt.Add(time.Duration(stored.ExpiresIn) * time.Second)

	if !time.Now().Add(tokenExpiryMargin).Before(expiresAt) {
		return false
	}

	m.accessToken = stored.AccessToken
	m.expiresAt = expiresAt

	return true
}

// persistToFile grava o token em disco; falha aqui não derruba a renovação
func (m *TokenManager) persistToFile(token tokenResponse) {
	stored := persistedToken{
		AccessToken: token.AccessToken,
		ExpiresIn:   token.ExpiresIn,
		Timestamp:   time.Now().UnixMilli(),
	}

	data, err := json.Marshal(stored)
	if err != nil {
		m.logger.WithError(err).Warn("Não foi possível serializar o token para persistência")
		return
	}

	if err := os.WriteFile(m.cfg.Google.TokenFile, data, 0o600); err != nil {
		m.logger.WithError(err).Warn("Não foi possível gravar o arquivo de token")
	}
}
