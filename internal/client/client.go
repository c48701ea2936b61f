package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"stock-ledger/pkg/config"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	// ServerErrorMessage is shown when the API could not be reached or
	// answered with something that is not JSON.
	ServerErrorMessage = "Server error. Try again."
	// AddFailedMessage is shown when the API rejects a transaction without
	// saying why.
	AddFailedMessage = "Failed to add transaction"
)

// APIError is a non-2xx answer from the ledger API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// ServerError wraps transport and decoding failures.
type ServerError struct {
	Err error
}

func (e *ServerError) Error() string {
	return "ledger api unreachable: " + e.Err.Error()
}

func (e *ServerError) Unwrap() error {
	return e.Err
}

// DisplayMessage is the text a user sees for err.
func DisplayMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ServerErrorMessage
}

// TransactionInput is the form payload. Every field is sent exactly as
// typed.
type TransactionInput struct {
	StockSymbol     string `json:"stock_symbol"`
	TransactionType string `json:"transaction_type"`
	Quantity        string `json:"quantity"`
	Price           string `json:"price"`
}

type Transaction struct {
	StockSymbol     Value `json:"stock_symbol"`
	TransactionType Value `json:"transaction_type"`
	Quantity        Value `json:"quantity"`
	Price           Value `json:"price"`
}

type Summary struct {
	TotalBuy  Value `json:"total_buy"`
	TotalSell Value `json:"total_sell"`
}

type Holding struct {
	StockSymbol Value `json:"stock_symbol"`
	NetQuantity Value `json:"net_quantity"`
}

type errorBody struct {
	Error Value `json:"error"`
}

// Client talks to the ledger REST API. It does not retry.
type Client struct {
	http   *resty.Client
	logger *zap.Logger
}

func New(cfg *config.ClientConfig, logger *zap.Logger) *Client {
	rc := resty.New()
	rc.SetBaseURL(cfg.APIURL)
	rc.SetTimeout(cfg.Timeout)
	rc.SetHeader("Accept", "application/json")

	return &Client{
		http:   rc,
		logger: logger,
	}
}

// AddTransaction posts one transaction. The response body is decoded
// before the status is looked at, so a non-JSON answer is a ServerError
// whatever its status.
func (c *Client) AddTransaction(ctx context.Context, in TransactionInput) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(in).
		Post("/api/transactions")
	if err != nil {
		return &ServerError{Err: err}
	}

	if !json.Valid(resp.Body()) {
		return &ServerError{Err: fmt.Errorf("response is not JSON (status %d)", resp.StatusCode())}
	}
	var body errorBody
	_ = json.Unmarshal(resp.Body(), &body)

	if !resp.IsSuccess() {
		// A null body has no error field to read.
		if bytes.Equal(bytes.TrimSpace(resp.Body()), []byte("null")) {
			return &ServerError{Err: fmt.Errorf("null response body (status %d)", resp.StatusCode())}
		}
		msg := AddFailedMessage
		if body.Error.Truthy() {
			msg = body.Error.String()
		}
		c.logger.Debug("Transaction rejected", zap.Int("status", resp.StatusCode()), zap.String("error", msg))
		return &APIError{StatusCode: resp.StatusCode(), Message: msg}
	}

	return nil
}

func (c *Client) ListTransactions(ctx context.Context) ([]Transaction, error) {
	var txs []Transaction
	if err := c.get(ctx, "/api/transactions", "Failed to load transactions", &txs); err != nil {
		return nil, err
	}
	return txs, nil
}

func (c *Client) Summary(ctx context.Context) (*Summary, error) {
	var summary Summary
	if err := c.get(ctx, "/api/summary", "Failed to load summary", &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (c *Client) Holdings(ctx context.Context) ([]Holding, error) {
	var holdings []Holding
	if err := c.get(ctx, "/api/holdings", "Failed to load holdings", &holdings); err != nil {
		return nil, err
	}
	return holdings, nil
}

func (c *Client) get(ctx context.Context, path, fallback string, out any) error {
	resp, err := c.http.R().SetContext(ctx).Get(path)
	if err != nil {
		return &ServerError{Err: err}
	}

	if !resp.IsSuccess() {
		msg := fallback
		var body errorBody
		if json.Unmarshal(resp.Body(), &body) == nil && body.Error.Truthy() {
			msg = body.Error.String()
		}
		return &APIError{StatusCode: resp.StatusCode(), Message: msg}
	}

	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return &ServerError{Err: fmt.Errorf("decode %s: %w", path, err)}
	}
	return nil
}
