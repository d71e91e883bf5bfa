package alunoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/noah-isme/diario-eletronico/internal/models"
)

// DefaultBaseURL is the public deployment of the student API.
const DefaultBaseURL = "https://api-aluno.vercel.app"

const (
	resourcePath   = "/aluno"
	maxErrorBody   = 512
	maxResponseLen = 10 << 20
)

// Config contains the settings required to reach the student API.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client talks to the remote /aluno REST resource.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	schema  *listSchema
	logger  zerolog.Logger
}

// New constructs a client. A zero timeout leaves requests bounded only by their context.
func New(cfg Config, logger zerolog.Logger) (*Client, error) {
	raw := strings.TrimSpace(cfg.BaseURL)
	if raw == "" {
		raw = DefaultBaseURL
	}

	base, err := url.Parse(strings.TrimRight(raw, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid aluno api base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("aluno api base url must be http or https, got %q", raw)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}

	schema, err := compileListSchema()
	if err != nil {
		return nil, err
	}

	return &Client{
		baseURL: base,
		http:    httpClient,
		schema:  schema,
		logger:  logger.With().Str("component", "aluno_api_client").Logger(),
	}, nil
}

// List fetches every record.
func (c *Client) List(ctx context.Context) ([]models.Aluno, error) {
	body, err := c.do(ctx, http.MethodGet, resourcePath, nil)
	if err != nil {
		return nil, fmt.Errorf("list alunos: %w", err)
	}

	if err := c.schema.validate(body); err != nil {
		return nil, fmt.Errorf("list alunos: %w", err)
	}

	var alunos []models.Aluno
	if err := json.Unmarshal(body, &alunos); err != nil {
		return nil, fmt.Errorf("list alunos: decode response: %w", err)
	}
	if alunos == nil {
		alunos = []models.Aluno{}
	}

	return alunos, nil
}

// Create posts a new record.
func (c *Client) Create(ctx context.Context, payload models.AlunoPayload) error {
	if _, err := c.do(ctx, http.MethodPost, resourcePath, payload); err != nil {
		return fmt.Errorf("create aluno: %w", err)
	}
	return nil
}

// Update replaces the record identified by id.
func (c *Client) Update(ctx context.Context, id string, payload models.AlunoPayload) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("update aluno: %w", ErrMissingID)
	}
	if _, err := c.do(ctx, http.MethodPut, itemPath(id), payload); err != nil {
		return fmt.Errorf("update aluno: %w", err)
	}
	return nil
}

// Delete removes the record identified by id.
func (c *Client) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("delete aluno: %w", ErrMissingID)
	}
	if _, err := c.do(ctx, http.MethodDelete, itemPath(id), nil); err != nil {
		return fmt.Errorf("delete aluno: %w", err)
	}
	return nil
}

func itemPath(id string) string {
	return resourcePath + "/" + url.PathEscape(id)
}

func (c *Client) do(ctx context.Context, method, path string, payload interface{}) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode payload: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	endpoint := c.baseURL.String() + path
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug().Err(err).Str("method", method).Str("path", path).Msg("aluno api request failed")
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseLen))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("aluno api request completed")

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, newStatusError(method, path, resp.StatusCode, body)
	}

	return body, nil
}
