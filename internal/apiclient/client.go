// Package apiclient talks to the catalog API over HTTP.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"padaria/internal/domain"
)

// APIError is a non-2xx answer. Message is the server's message, or the
// operation fallback when the server did not send one.
type APIError struct {
	Status  int
	Message string
	Detail  string
}

func (e *APIError) Error() string { return e.Message }

// ErrUnhealthy is returned by Health when the API answers without success.
var ErrUnhealthy = errors.New("API retornou erro")

// ProductInput is the creation payload.
type ProductInput struct {
	Nome      string  `json:"nome"`
	Preco     float64 `json:"preco"`
	Descricao *string `json:"descricao"`
}

// DeleteResult is the confirmation returned after a delete.
type DeleteResult struct {
	Message string `json:"message"`
	Nome    string `json:"nome"`
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
	Total   int             `json:"total"`
	Nome    string          `json:"nome"`
}

type Client struct {
	baseURL string
	http    *http.Client
}

// New builds a client for the API rooted at baseURL (e.g. http://localhost:3000/api).
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

// Health calls the connectivity probe route.
func (c *Client) Health(ctx context.Context) error {
	env, err := c.do(ctx, http.MethodGet, "/test", nil, "Erro de conexão")
	if err != nil {
		return err
	}
	if !env.Success {
		return ErrUnhealthy
	}
	return nil
}

// ListProducts returns the catalog, newest first.
func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	env, err := c.do(ctx, http.MethodGet, "/produtos", nil, "Erro ao buscar produtos")
	if err != nil {
		return nil, err
	}
	products := []domain.Product{}
	if len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, &products); err != nil {
			return nil, fmt.Errorf("decode products: %w", err)
		}
	}
	return products, nil
}

// CreateProduct posts a new product and returns the stored record.
func (c *Client) CreateProduct(ctx context.Context, in ProductInput) (*domain.Product, error) {
	env, err := c.do(ctx, http.MethodPost, "/produtos", in, "Erro ao cadastrar produto")
	if err != nil {
		return nil, err
	}
	var p domain.Product
	if err := json.Unmarshal(env.Data, &p); err != nil {
		return nil, fmt.Errorf("decode product: %w", err)
	}
	return &p, nil
}

// DeleteProduct deletes by id. The returned Nome may be empty when the
// server omits it.
func (c *Client) DeleteProduct(ctx context.Context, id int64) (DeleteResult, error) {
	env, err := c.do(ctx, http.MethodDelete, "/produtos/"+strconv.FormatInt(id, 10), nil, "Erro ao excluir produto")
	if err != nil {
		return DeleteResult{}, err
	}
	return DeleteResult{Message: env.Message, Nome: env.Nome}, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, fallback string) (*envelope, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode response (%d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := env.Message
		if msg == "" {
			msg = fallback
		}
		return nil, &APIError{Status: resp.StatusCode, Message: msg, Detail: env.Error}
	}
	return &env, nil
}
