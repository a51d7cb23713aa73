package journal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"trade-journal-go/internal/config"
	"trade-journal-go/internal/models"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	tradesPath = "/api/trade"
	tradePath  = "/api/trade/{id}"
)

// ErrMissingID is returned when an operation that addresses one trade gets a blank id.
var ErrMissingID = errors.New("trade id is required")

// ClientInterface defines the calls made against the remote trade API.
type ClientInterface interface {
	ListTrades(ctx context.Context) ([]models.Trade, error)
	GetTrade(ctx context.Context, id string) (*models.Trade, error)
	CreateTrade(ctx context.Context, trade models.Trade) (*models.Trade, error)
	UpdateTrade(ctx context.Context, id string, trade models.Trade) (*models.Trade, error)
	DeleteTrade(ctx context.Context, id string) error
}

// RestClient is a client for the remote trade API.
// It implements the ClientInterface.
type RestClient struct {
	client  *resty.Client
	logger  *zap.Logger
	limiter *rate.Limiter
}

// ensure RestClient implements the interface
var _ ClientInterface = (*RestClient)(nil)

// NewRestClient creates a new trade API client.
func NewRestClient(cfg *config.Journal, logger *zap.Logger) *RestClient {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	logger = logger.Named("journal-client")
	logger.Info("Using trade API", zap.String("base_url", baseURL))

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")

	limit := rate.Limit(cfg.RateLimit)
	if cfg.RateLimit <= 0 {
		limit = rate.Inf
	}
	burst := cfg.RateLimitBurst
	if burst < 1 {
		burst = 1
	}

	return &RestClient{
		client:  client,
		logger:  logger,
		limiter: rate.NewLimiter(limit, burst),
	}
}

// APIError is a non-2xx answer from the trade API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("trade api returned %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("trade api returned %d: %s", e.StatusCode, e.Message)
}

// newAPIError pulls a human readable message out of an error body.
// Express style APIs answer with {"message": ...} or {"error": ...}.
func newAPIError(resp *resty.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode()}
	body := strings.TrimSpace(resp.String())
	if body == "" {
		return apiErr
	}
	if !gjson.Valid(body) {
		apiErr.Message = body
		return apiErr
	}
	for _, field := range gjson.GetMany(body, "message", "error", "error.message") {
		if field.Type == gjson.String && field.String() != "" {
			apiErr.Message = field.String()
			break
		}
	}
	return apiErr
}

// doRequest executes a request under the rate limiter. Failures are returned as is, never retried.
func (c *RestClient) doRequest(ctx context.Context, method, url string, req *resty.Request) (*resty.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait failed: %w", err)
	}

	c.logger.Debug("Executing request", zap.String("method", method), zap.String("url", c.client.BaseURL+url))
	resp, err := req.SetContext(ctx).Execute(method, url)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, newAPIError(resp)
	}
	return resp, nil
}

// ListTrades fetches every trade in the journal.
func (c *RestClient) ListTrades(ctx context.Context) ([]models.Trade, error) {
	var trades []models.Trade

	req := c.client.R().
		SetResult(&trades).
		ForceContentType("application/json")

	if _, err := c.doRequest(ctx, http.MethodGet, tradesPath, req); err != nil {
		c.logger.Debug("Failed to list trades", zap.Error(err))
		return nil, fmt.Errorf("failed to list trades: %w", err)
	}

	if trades == nil {
		trades = []models.Trade{}
	}
	return trades, nil
}

// GetTrade fetches one trade by its store id.
func (c *RestClient) GetTrade(ctx context.Context, id string) (*models.Trade, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrMissingID
	}

	req := c.client.R().
		SetPathParam("id", id).
		SetResult(&models.Trade{}).
		ForceContentType("application/json")

	resp, err := c.doRequest(ctx, http.MethodGet, tradePath, req)
	if err != nil {
		c.logger.Debug("Failed to get trade", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get trade %s: %w", id, err)
	}

	return resp.Result().(*models.Trade), nil
}

// CreateTrade stores a new trade. Any id on the input is dropped; the store assigns one.
func (c *RestClient) CreateTrade(ctx context.Context, trade models.Trade) (*models.Trade, error) {
	trade.ID = ""

	req := c.client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(trade).
		SetResult(&models.Trade{}).
		ForceContentType("application/json")

	resp, err := c.doRequest(ctx, http.MethodPost, tradesPath, req)
	if err != nil {
		c.logger.Debug("Failed to create trade", zap.Error(err))
		return nil, fmt.Errorf("failed to create trade: %w", err)
	}

	created := resp.Result().(*models.Trade)
	c.logger.Debug("Created trade", zap.String("id", created.ID))
	return created, nil
}

// UpdateTrade replaces the stored trade with the given id.
func (c *RestClient) UpdateTrade(ctx context.Context, id string, trade models.Trade) (*models.Trade, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrMissingID
	}
	trade.ID = ""

	req := c.client.R().
		SetPathParam("id", id).
		SetHeader("Content-Type", "application/json").
		SetBody(trade).
		SetResult(&models.Trade{}).
		ForceContentType("application/json")

	resp, err := c.doRequest(ctx, http.MethodPut, tradePath, req)
	if err != nil {
		c.logger.Debug("Failed to update trade", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to update trade %s: %w", id, err)
	}

	c.logger.Debug("Updated trade", zap.String("id", id))
	return resp.Result().(*models.Trade), nil
}

// DeleteTrade removes the trade with the given id. The response body is ignored.
func (c *RestClient) DeleteTrade(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrMissingID
	}

	req := c.client.R().SetPathParam("id", id)

	if _, err := c.doRequest(ctx, http.MethodDelete, tradePath, req); err != nil {
		c.logger.Debug("Failed to delete trade", zap.String("id", id), zap.Error(err))
		return fmt.Errorf("failed to delete trade %s: %w", id, err)
	}

	c.logger.Debug("Deleted trade", zap.String("id", id))
	return nil
}
