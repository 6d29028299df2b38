// Package sheetsclient fala com a API de valores do Google Sheets: a
// loja tabular remota que é dona dos dados de usuários, vendas e metas.
package sheetsclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/arneor/sales-tracker-api/internal/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Client interface {
	GetValues(ctx context.Context, rng string) ([][]string, error)
	AppendValues(ctx context.Context, rng string, values [][]string) error
	UpdateValues(ctx context.Context, rng string, values [][]string) error
	SheetTitles(ctx context.Context) ([]string, error)
	AddSheet(ctx context.Context, title string) error
}

type SheetsClient struct {
	httpClient   *http.Client
	cfg          *config.Config
	tokenManager *TokenManager
}

func NewClient(cfg *config.Config, tokenManager *TokenManager) Client {
	return &SheetsClient{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		cfg:          cfg,
		tokenManager: tokenManager,
	}
}

type valuesResponse struct {
	Range  string     `json:"range"`
	Values [][]string `json:"values"`
}

type valuesPayload struct {
	Values [][]string `json:"values"`
}

// GetValues lê um intervalo no estilo "Sales_Data!A:O". Intervalos
// vazios voltam como lista vazia, não como erro.
func (c *SheetsClient) GetValues(ctx context.Context, rng string) ([][]string, error) {
	endpoint := fmt.Sprintf("%s/%s/values/%s",
		c.cfg.Google.SheetsURL, c.cfg.Google.SpreadsheetID, url.PathEscape(rng))

	body, err := c.doRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var resp valuesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("erro ao decodificar valores do intervalo %s: %w", rng, err)
	}

	return resp.Values, nil
}

// AppendValues anexa linhas ao final do intervalo
func (c *SheetsClient) AppendValues(ctx context.Context, rng string, values [][]string) error {
	endpoint := fmt.Sprintf("%s/%s/values/%s:append?valueInputOption=USER_ENTERED&insertDataOption=INSERT_ROWS",
		c.cfg.Google.SheetsURL, c.cfg.Google.SpreadsheetID, url.PathEscape(rng))

	payload, err := json.Marshal(valuesPayload{Values: values})
	if err != nil {
		return err
	}

	_, err = c.doRequest(ctx, http.MethodPost, endpoint, payload)
	return err
}

// UpdateValues sobrescreve exatamente o intervalo informado
func (c *SheetsClient) UpdateValues(ctx context.Context, rng string, values [][]string) error {
	endpoint := fmt.Sprintf("%s/%s/values/%s?valueInputOption=USER_ENTERED",
		c.cfg.Google.SheetsURL, c.cfg.Google.SpreadsheetID, url.PathEscape(rng))

	payload, err := json.Marshal(valuesPayload{Values: values})
	if err != nil {
		return err
	}

	_, err = c.doRequest(ctx, http.MethodPut, endpoint, payload)
	return err
}

type spreadsheetMetadata struct {
	Sheets []struct {
		Properties struct {
			Title string `json:"title"`
		} `json:"properties"`
	} `json:"sheets"`
}

// SheetTitles lista os títulos das abas existentes na planilha
func (c *SheetsClient) SheetTitles(ctx context.Context) ([]string, error) {
	endpoint := fmt.Sprintf("%s/%s?fields=sheets.properties.title",
		c.cfg.Google.SheetsURL, c.cfg.Google.SpreadsheetID)

	body, err := c.doRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var meta spreadsheetMetadata
	if err := json.Unmarshal(body, &meta); err != nil {
		return nil, fmt.Errorf("erro ao decodificar metadados da planilha: %w", err)
	}

	titles := make([]string, 0, len(meta.Sheets))
	for _, s := range meta.Sheets {
		titles = append(titles, s.Properties.Title)
	}

	return titles, nil
}

type batchUpdateRequest struct {
	Requests []map[string]any `json:"requests"`
}

// AddSheet cria uma aba nova via batchUpdate
func (c *SheetsClient) AddSheet(ctx context.Context, title string) error {
	endpoint := fmt.Sprintf("%s/%s:batchUpdate",
		c.cfg.Google.SheetsURL, c.cfg.Google.SpreadsheetID)

	payload, err := json.Marshal(batchUpdateRequest{
		Requests: []map[string]any{
			{
				"addSheet": map[string]any{
					"properties": map[string]any{"title": title},
				},
			},
		},
	})
	if err != nil {
		return err
	}

	_, err = c.doRequest(ctx, http.MethodPost, endpoint, payload)
	return err
}

// doRequest monta a requisição autenticada e trata a resposta
func (c *SheetsClient) doRequest(ctx context.Context, method, endpoint string, payload []byte) ([]byte, error) {
	token, err := c.tokenManager.AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+token)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	return handleResponse(resp)
}

// handleResponse lê o corpo e converte status fora de 2xx em APIError
func handleResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler resposta: %w", err)
	}

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return body, nil
	}

	return nil, &APIError{
		StatusCode: resp.StatusCode,
		Body:       string(body),
	}
}
