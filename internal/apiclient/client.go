// Package apiclient talks to the grocery list service over HTTP.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dukerupert/pantrylist/internal/model"
)

// DefaultBaseURL is the local development address of the service.
const DefaultBaseURL = "http://127.0.0.1:8001"

// ErrNotFound is returned when the service reports a missing list.
var ErrNotFound = errors.New("grocery list not found")

// Config holds client configuration.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// StatusError is a non-2xx response from the service.
type StatusError struct {
	StatusCode int
	Detail     string
}

func (e *StatusError) Error() string {
	return e.Detail
}

// Unauthorized reports whether the service rejected the credential.
func (e *StatusError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// Client calls the grocery list endpoints with a bearer token.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// CreateGroceryList creates a list and returns its id.
func (c *Client) CreateGroceryList(ctx context.Context, token string, in model.CreateGroceryListInput) (string, error) {
	var resp model.CreateGroceryListResponse
	if err := c.do(ctx, http.MethodPost, "/grocery-lists", token, in, &resp); err != nil {
		return "", err
	}
	if resp.ID == "" {
		return "", fmt.Errorf("create grocery list: response has no id")
	}
	return resp.ID, nil
}

func (c *Client) ListGroceryLists(ctx context.Context, token string) ([]model.GroceryListSummary, error) {
	var lists []model.GroceryListSummary
	if err := c.do(ctx, http.MethodGet, "/grocery-lists", token, nil, &lists); err != nil {
		return nil, err
	}
	return lists, nil
}

func (c *Client) GetGroceryList(ctx context.Context, token, id string) (*model.GroceryList, error) {
	var l model.GroceryList
	if err := c.do(ctx, http.MethodGet, listPath(id), token, nil, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

func (c *Client) SetPinned(ctx context.Context, token, id string, pinned bool) error {
	body := map[string]bool{"isPinned": pinned}
	return c.do(ctx, http.MethodPatch, listPath(id), token, body, nil)
}

func (c *Client) DeleteGroceryList(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, listPath(id), token, nil, nil)
}

func listPath(id string) string {
	return "/grocery-lists/" + url.PathEscape(id)
}

type errorBody struct {
	Detail string `json:"detail"`
	Error  string `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail := fmt.Sprintf("Request failed (%d)", resp.StatusCode)
		var eb errorBody
		if err := json.NewDecoder(resp.Body).Decode(&eb); err == nil {
			switch {
			case eb.Detail != "":
				detail = eb.Detail
			case eb.Error != "":
				detail = eb.Error
			}
		}
		if resp.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%w: %s", ErrNotFound, detail)
		}
		return &StatusError{StatusCode: resp.StatusCode, Detail: detail}
	}

	if resp.StatusCode == http.StatusNoContent || out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
