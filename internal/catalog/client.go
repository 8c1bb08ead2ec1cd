package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/nkvxness/shelftui/internal/domain"
)

const (
	defaultTimeout = 10 * time.Second
	userAgent      = "shelftui/1.0"
)

// Client is the HTTP adapter for the GoBookshelf store API.
//
// The store routes everything on /books and addresses single books with an
// id query parameter: GET /books?page=&page_size=, POST /books,
// PUT /books?id=, DELETE /books?id=. Delete is always the HTTP DELETE verb.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new store API client. A zero timeout falls back to
// the default.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// List fetches one page of books.
func (c *Client) List(ctx context.Context, page, pageSize int) (domain.Page, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("page_size", strconv.Itoa(pageSize))

	body, err := c.doRequest(ctx, http.MethodGet, "/books", query, nil)
	if err != nil {
		return domain.Page{}, err
	}

	var p domain.Page
	if err := json.Unmarshal(body, &p); err != nil {
		c.logger.Error("list parse error", "error", err, "bodyLen", len(body))
		return domain.Page{}, fmt.Errorf("%w: malformed list response", domain.ErrServer)
	}
	if p.PageSize == 0 {
		p.PageSize = pageSize
	}
	return p, nil
}

// Get fetches a single book by id.
func (c *Client) Get(ctx context.Context, id int64) (domain.Book, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/books", idQuery(id), nil)
	if err != nil {
		return domain.Book{}, err
	}
	return parseBook(body)
}

// Create submits a new book and returns the stored entry with its
// server-assigned id.
func (c *Client) Create(ctx context.Context, draft domain.Draft) (domain.Book, error) {
	body, err := c.doRequest(ctx, http.MethodPost, "/books", nil, draft)
	if err != nil {
		return domain.Book{}, err
	}
	return parseBook(body)
}

// Update submits a partial update and returns the updated entry. Only
// fields present in the patch are transmitted.
func (c *Client) Update(ctx context.Context, id int64, patch domain.Patch) (domain.Book, error) {
	body, err := c.doRequest(ctx, http.MethodPut, "/books", idQuery(id), patch)
	if err != nil {
		return domain.Book{}, err
	}
	return parseBook(body)
}

// Delete removes a book by id.
func (c *Client) Delete(ctx context.Context, id int64) error {
	_, err := c.doRequest(ctx, http.MethodDelete, "/books", idQuery(id), nil)
	return err
}

func idQuery(id int64) url.Values {
	query := url.Values{}
	query.Set("id", strconv.FormatInt(id, 10))
	return query
}

func parseBook(body []byte) (domain.Book, error) {
	var b domain.Book
	if err := json.Unmarshal(body, &b); err != nil {
		return domain.Book{}, fmt.Errorf("%w: malformed book response", domain.ErrServer)
	}
	return b, nil
}

// doRequest performs a store API request and classifies failures into the
// domain error taxonomy.
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, payload any) ([]byte, error) {
	reqURL := fmt.Sprintf("%s%s", c.baseURL, path)
	if query != nil {
		reqURL = fmt.Sprintf("%s?%s", reqURL, query.Encode())
	}

	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("store request", "method", method, "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("store request failed", "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrNetwork, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response", domain.ErrNetwork)
	}

	if resp.StatusCode >= 400 {
		msg := errorMessage(body)
		c.logger.Error("store request error", "status", resp.StatusCode, "message", msg)
		return nil, classifyStatus(resp.StatusCode, msg)
	}

	return body, nil
}

// errorMessage extracts the store's {message} field, falling back to a
// generic message when the body carries none.
func errorMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return "the book store reported an error"
}

func classifyStatus(status int, msg string) error {
	switch {
	case status == http.StatusNotFound:
		return fmt.Errorf("%w: %s", domain.ErrNotFound, msg)
	case status == http.StatusConflict:
		return fmt.Errorf("%w: %s", domain.ErrConflict, msg)
	case status >= 400 && status < 500:
		return fmt.Errorf("%w: %s", domain.ErrValidation, msg)
	default:
		return fmt.Errorf("%w: %s", domain.ErrServer, msg)
	}
}
