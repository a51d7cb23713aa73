package journal

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"trade-journal-go/internal/config"
	"trade-journal-go/internal/models"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/time/rate"
)

// setupTestServer creates a new test server and a RestClient configured to use it.
func setupTestServer(handler http.Handler) (*RestClient, *httptest.Server) {
	server := httptest.NewServer(handler)

	rc := &RestClient{
		client:  resty.New().SetBaseURL(server.URL),
		logger:  zap.NewNop(), // Use a no-op logger for tests
		limiter: rate.NewLimiter(rate.Inf, 1), // Allow all requests in tests
	}

	return rc, server
}

func TestListTrades(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		// Arrange
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/api/trade", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[
				{"_id": "a1", "strategy": "breakout", "entryPrice": 100, "stopLoss": 90, "target": 130, "profitOrLoss": "profit", "rating": 7},
				{"_id": "b2", "strategy": "fade", "entryPrice": 50.25, "stopLoss": 49, "target": 52.75, "profitOrLoss": "loss", "rating": 3}
			]`))
		})

		rc, server := setupTestServer(handler)
		defer server.Close()

		// Act
		trades, err := rc.ListTrades(context.Background())

		// Assert
		require.NoError(t, err)
		require.Len(t, trades, 2)
		assert.Equal(t, "a1", trades[0].ID)
		assert.Equal(t, "52.75", models.FormatPrice(trades[1].Target))
		assert.Equal(t, models.Loss, trades[1].ProfitOrLoss)
	})

	t.Run("NullBodyIsEmptyList", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`null`))
		})

		rc, server := setupTestServer(handler)
		defer server.Close()

		trades, err := rc.ListTrades(context.Background())

		require.NoError(t, err)
		assert.NotNil(t, trades)
		assert.Empty(t, trades)
	})

	t.Run("APIError", func(t *testing.T) {
		// Arrange
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"message": "database unavailable"}`))
		})

		rc, server := setupTestServer(handler)
		defer server.Close()

		// Act
		trades, err := rc.ListTrades(context.Background())

		// Assert
		require.Error(t, err)
		assert.Nil(t, trades)
		assert.Contains(t, err.Error(), "failed to list trades")
		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
		assert.Equal(t, "database unavailable", apiErr.Message)
	})

	t.Run("MalformedBody", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"_id": `))
		})

		rc, server := setupTestServer(handler)
		defer server.Close()

		_, err := rc.ListTrades(context.Background())

		assert.Error(t, err)
	})

	t.Run("NoRetryOnServerError", func(t *testing.T) {
		calls := 0
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.WriteHeader(http.StatusServiceUnavailable)
		})

		rc, server := setupTestServer(handler)
		defer server.Close()

		_, err := rc.ListTrades(context.Background())

		assert.Error(t, err)
		assert.Equal(t, 1, calls)
	})
}

func TestGetTrade(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/trade/a1", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"_id": "a1", "buyDate": "2024-02-01T00:00:00.000Z", "targetRatio": "1:2", "quantity": 5}`))
		})

		rc, server := setupTestServer(handler)
		defer server.Close()

		trade, err := rc.GetTrade(context.Background(), "a1")

		require.NoError(t, err)
		assert.Equal(t, "a1", trade.ID)
		assert.Equal(t, "2024-02-01", trade.BuyDate.String())
		assert.Equal(t, models.RatioOneToTwo, trade.TargetRatio)
	})

	t.Run("NotFound", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`Trade not found`))
		})

		rc, server := setupTestServer(handler)
		defer server.Close()

		trade, err := rc.GetTrade(context.Background(), "missing")

		assert.Nil(t, trade)
		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
		assert.Equal(t, "Trade not found", apiErr.Message)
	})

	t.Run("BlankID", func(t *testing.T) {
		rc := &RestClient{client: resty.New(), logger: zap.NewNop(), limiter: rate.NewLimiter(rate.Inf, 1)}

		_, err := rc.GetTrade(context.Background(), " ")

		assert.ErrorIs(t, err, ErrMissingID)
	})
}

func TestCreateTrade(t *testing.T) {
	// Arrange
	var received map[string]any
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/trade", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		assert.NoError(t, json.Unmarshal(body, &received))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"_id": "new1", "strategy": "breakout"}`))
	})

	rc, server := setupTestServer(handler)
	defer server.Close()

	buyDate, _ := models.ParseDate("2024-05-06")
	trade := models.Trade{
		ID:          "ignored",
		BuyDate:     buyDate,
		Strategy:    "breakout",
		EntryPrice:  decimal.NewNullDecimal(decimal.RequireFromString("100")),
		TargetRatio: models.RatioOneToThree,
		Pyramiding:  models.DefaultPyramiding,
	}

	// Act
	created, err := rc.CreateTrade(context.Background(), trade)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "new1", created.ID)
	assert.NotContains(t, received, "_id")
	assert.Equal(t, "2024-05-06", received["buyDate"])
	assert.Equal(t, "1:3", received["targetRatio"])
	assert.Equal(t, "ignored", trade.ID, "caller's value is not mutated")
}

func TestUpdateTrade(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		var received map[string]any
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPut, r.Method)
			assert.Equal(t, "/api/trade/a1", r.URL.Path)
			body, _ := io.ReadAll(r.Body)
			assert.NoError(t, json.Unmarshal(body, &received))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"_id": "a1", "strategy": "revised"}`))
		})

		rc, server := setupTestServer(handler)
		defer server.Close()

		updated, err := rc.UpdateTrade(context.Background(), "a1", models.Trade{ID: "a1", Strategy: "revised"})

		require.NoError(t, err)
		assert.Equal(t, "revised", updated.Strategy)
		assert.NotContains(t, received, "_id")
	})

	t.Run("BadRequest", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error": {"message": "rating out of range"}}`))
		})

		rc, server := setupTestServer(handler)
		defer server.Close()

		_, err := rc.UpdateTrade(context.Background(), "a1", models.Trade{})

		var apiErr *APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, "rating out of range", apiErr.Message)
		assert.Contains(t, err.Error(), "failed to update trade a1")
	})

	t.Run("BlankID", func(t *testing.T) {
		rc := &RestClient{client: resty.New(), logger: zap.NewNop(), limiter: rate.NewLimiter(rate.Inf, 1)}

		_, err := rc.UpdateTrade(context.Background(), "", models.Trade{})

		assert.ErrorIs(t, err, ErrMissingID)
	})
}

func TestDeleteTrade(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodDelete, r.Method)
			assert.Equal(t, "/api/trade/a1", r.URL.Path)
			_, _ = w.Write([]byte(`Trade deleted`))
		})

		rc, server := setupTestServer(handler)
		defer server.Close()

		assert.NoError(t, rc.DeleteTrade(context.Background(), "a1"))
	})

	t.Run("ServerError", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		rc, server := setupTestServer(handler)
		defer server.Close()

		err := rc.DeleteTrade(context.Background(), "a1")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "500 Internal Server Error")
	})

	t.Run("NetworkError", func(t *testing.T) {
		rc, server := setupTestServer(http.NotFoundHandler())
		server.Close()

		err := rc.DeleteTrade(context.Background(), "a1")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "request failed")
	})
}

func TestRequestsHonourContext(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	})
	rc, server := setupTestServer(handler)
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := rc.ListTrades(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewRestClient(t *testing.T) {
	t.Run("ConfiguredLimit", func(t *testing.T) {
		cfg := &config.Journal{BaseURL: "http://localhost:5000/", Timeout: time.Second, RateLimit: 2, RateLimitBurst: 3}

		rc := NewRestClient(cfg, zap.NewNop())

		assert.NotNil(t, rc)
		assert.Equal(t, "http://localhost:5000", rc.client.BaseURL)
		assert.Equal(t, rate.Limit(2), rc.limiter.Limit())
		assert.Equal(t, 3, rc.limiter.Burst())
	})

	t.Run("UnlimitedWhenRateUnset", func(t *testing.T) {
		rc := NewRestClient(&config.Journal{BaseURL: "http://localhost:5000"}, zap.NewNop())

		assert.Equal(t, rate.Inf, rc.limiter.Limit())
		assert.Equal(t, 1, rc.limiter.Burst())
	})
}

func TestFailuresAreLeftToCallersToReport(t *testing.T) {
	// Arrange
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	rc, server := setupTestServer(handler)
	defer server.Close()
	core, logs := observer.New(zapcore.DebugLevel)
	rc.logger = zap.New(core)

	// Act
	_, listErr := rc.ListTrades(context.Background())
	_, getErr := rc.GetTrade(context.Background(), "a1")
	_, createErr := rc.CreateTrade(context.Background(), models.Trade{})
	_, updateErr := rc.UpdateTrade(context.Background(), "a1", models.Trade{})
	deleteErr := rc.DeleteTrade(context.Background(), "a1")

	// Assert
	for _, err := range []error{listErr, getErr, createErr, updateErr, deleteErr} {
		assert.Error(t, err)
	}
	assert.Zero(t, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
	assert.Zero(t, logs.FilterLevelExact(zapcore.WarnLevel).Len())
	assert.Equal(t, 5, logs.FilterMessageSnippet("Failed to").Len())
}
