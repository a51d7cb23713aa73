// Package journaltest provides a testify mock of the trade API client.
package journaltest

import (
	"context"

	"trade-journal-go/internal/journal"
	"trade-journal-go/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockClient is a mock implementation of journal.ClientInterface.
type MockClient struct {
	mock.Mock
}

var _ journal.ClientInterface = (*MockClient)(nil)

func (m *MockClient) ListTrades(ctx context.Context) ([]models.Trade, error) {
	args := m.Called(ctx)
	trades, _ := args.Get(0).([]models.Trade)
	return trades, args.Error(1)
}

func (m *MockClient) GetTrade(ctx context.Context, id string) (*models.Trade, error) {
	args := m.Called(ctx, id)
	trade, _ := args.Get(0).(*models.Trade)
	return trade, args.Error(1)
}

func (m *MockClient) CreateTrade(ctx context.Context, trade models.Trade) (*models.Trade, error) {
	args := m.Called(ctx, trade)
	created, _ := args.Get(0).(*models.Trade)
	return created, args.Error(1)
}

func (m *MockClient) UpdateTrade(ctx context.Context, id string, trade models.Trade) (*models.Trade, error) {
	args := m.Called(ctx, id, trade)
	updated, _ := args.Get(0).(*models.Trade)
	return updated, args.Error(1)
}

func (m *MockClient) DeleteTrade(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
