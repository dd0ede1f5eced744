package storeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/dafibh/fortuna/fortuna-tracker/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Fallback messages used when the store does not explain a failure
const (
	MsgFetchFailed       = "Failed to fetch data from the server."
	MsgAddTransactionErr = "Failed to add transaction."
	MsgAddGoalErr        = "Failed to add goal."
)

// maxErrorBody caps how much of an error response is read
const maxErrorBody = 64 << 10

// Config holds configuration for the store client
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// DefaultConfig returns the default store client configuration
func DefaultConfig() Config {
	return Config{
		BaseURL: "http://localhost:4000/api",
		Timeout: 15 * time.Second,
	}
}

// Client talks to the external finance store over HTTP and implements domain.FinanceStore
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

var _ domain.FinanceStore = (*Client)(nil)

// NewClient creates a new store client
func NewClient(config Config, logger zerolog.Logger) *Client {
	defaults := DefaultConfig()
	if strings.TrimSpace(config.BaseURL) == "" {
		config.BaseURL = defaults.BaseURL
	}
	if config.Timeout <= 0 {
		config.Timeout = defaults.Timeout
	}

	return &Client{
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		httpClient: newHTTPClient(config.Timeout),
		logger:     logger.With().Str("component", "store_client").Logger(),
	}
}

func newHTTPClient(timeout time.Duration) *http.Client {
	dialer := &net.Dialer{
		Timeout:   10 * time.Second,
		KeepAlive: 30 * time.Second,
	}

	transport := &http.Transport{
		DialContext:           dialer.DialContext,
		MaxIdleConns:          20,
		MaxIdleConnsPerHost:   5,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: timeout,
		ExpectContinueTimeout: 1 * time.Second,
		ForceAttemptHTTP2:     true,
	}

	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}
}

// BaseURL returns the normalized base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// dataResponse is the body of GET /data. Missing or null arrays mean empty.
type dataResponse struct {
	Transactions []domain.Transaction `json:"transactions"`
	Goals        []domain.Goal        `json:"goals"`
}

// errorResponse is the error body the store sends with non-2xx responses
type errorResponse struct {
	Error string `json:"error"`
}

type splitRequest struct {
	CategoryID string      `json:"categoryId"`
	Amount     json.Number `json:"amount"`
}

type transactionRequest struct {
	Date        string                 `json:"date"`
	Description string                 `json:"description"`
	TotalAmount json.Number            `json:"totalAmount"`
	Type        domain.TransactionType `json:"type"`
	Splits      []splitRequest         `json:"splits"`
}

type goalRequest struct {
	Name         string      `json:"name"`
	TargetAmount json.Number `json:"targetAmount"`
	TargetDate   string      `json:"targetDate"`
}

// FetchData loads every transaction and goal
func (c *Client) FetchData(ctx context.Context) (*domain.Dataset, error) {
	const op = "fetch data"

	body, status, err := c.do(ctx, op, http.MethodGet, "/data", nil, MsgFetchFailed)
	if err != nil {
		return nil, err
	}

	var resp dataResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, domain.NewTransportError(op, status, "", MsgFetchFailed, fmt.Errorf("decode response: %w", err))
	}

	dataset := &domain.Dataset{
		Transactions: resp.Transactions,
		Goals:        resp.Goals,
	}
	if dataset.Transactions == nil {
		dataset.Transactions = []domain.Transaction{}
	}
	if dataset.Goals == nil {
		dataset.Goals = []domain.Goal{}
	}
	return dataset, nil
}

// CreateTransaction submits a validated transaction. The store assigns the id.
func (c *Client) CreateTransaction(ctx context.Context, draft domain.TransactionDraft) (*domain.Transaction, error) {
	const op = "create transaction"

	req := transactionRequest{
		Date:        draft.Date.String(),
		Description: draft.Description,
		TotalAmount: number(draft.TotalAmount),
		Type:        draft.Type,
		Splits:      make([]splitRequest, len(draft.Splits)),
	}
	for i, s := range draft.Splits {
		req.Splits[i] = splitRequest{CategoryID: s.CategoryID, Amount: number(s.Amount)}
	}

	body, _, err := c.do(ctx, op, http.MethodPost, "/transactions", req, MsgAddTransactionErr)
	if err != nil {
		return nil, err
	}

	created := domain.Transaction{
		Date:        draft.Date,
		Description: draft.Description,
		TotalAmount: draft.TotalAmount,
		Type:        draft.Type,
		Splits:      append([]domain.Split(nil), draft.Splits...),
	}
	c.decodeCreated(op, body, &created)
	return &created, nil
}

// CreateGoal submits a validated goal. The store assigns the id and current amount.
func (c *Client) CreateGoal(ctx context.Context, draft domain.GoalDraft) (*domain.Goal, error) {
	const op = "create goal"

	req := goalRequest{
		Name:         draft.Name,
		TargetAmount: number(draft.TargetAmount),
		TargetDate:   draft.TargetDate.String(),
	}

	body, _, err := c.do(ctx, op, http.MethodPost, "/goals", req, MsgAddGoalErr)
	if err != nil {
		return nil, err
	}

	created := domain.Goal{
		Name:          draft.Name,
		TargetAmount:  draft.TargetAmount,
		TargetDate:    draft.TargetDate,
		CurrentAmount: decimal.Zero,
	}
	c.decodeCreated(op, body, &created)
	return &created, nil
}

// decodeCreated overlays the store's echo of a created entity onto the draft-derived value.
// The write already succeeded, so an empty or unreadable body only costs the id until the reload.
func (c *Client) decodeCreated(op string, body []byte, out interface{}) {
	if len(bytes.TrimSpace(body)) == 0 {
		return
	}
	if err := json.Unmarshal(body, out); err != nil {
		c.logger.Warn().Err(err).Str("op", op).Msg("Could not decode created entity")
	}
}

// do performs one request and returns the body of a 2xx response.
// Any other outcome becomes a *domain.TransportError.
func (c *Client) do(ctx context.Context, op, method, path string, payload interface{}, fallback string) ([]byte, int, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, 0, domain.NewTransportError(op, 0, "", fallback, fmt.Errorf("encode request: %w", err))
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, 0, domain.NewTransportError(op, 0, "", fallback, fmt.Errorf("build request: %w", err))
	}

	requestID := uuid.New().String()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().
			Err(err).
			Str("op", op).
			Str("request_id", requestID).
			Dur("latency", time.Since(start)).
			Msg("Store request failed")
		return nil, 0, domain.NewTransportError(op, 0, "", fallback, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := readErrorMessage(resp.Body)
		c.logger.Warn().
			Str("op", op).
			Str("request_id", requestID).
			Int("status", resp.StatusCode).
			Str("store_error", message).
			Dur("latency", time.Since(start)).
			Msg("Store returned an error")
		return nil, resp.StatusCode, domain.NewTransportError(op, resp.StatusCode, message, fallback, nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, domain.NewTransportError(op, resp.StatusCode, "", fallback, fmt.Errorf("read response: %w", err))
	}

	c.logger.Debug().
		Str("op", op).
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("Store request completed")
	return body, resp.StatusCode, nil
}

// readErrorMessage returns the body's "error" field, or "" when the body is not such an object
func readErrorMessage(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil {
		return ""
	}
	var errBody errorResponse
	if err := json.Unmarshal(data, &errBody); err != nil {
		return ""
	}
	return strings.TrimSpace(errBody.Error)
}

func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}
