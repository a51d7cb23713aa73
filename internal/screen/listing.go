package screen

import (
	"context"
	"sync"
	"time"

	"trade-journal-go/internal/journal"
	"trade-journal-go/internal/models"

	"go.uber.org/zap"
)

// ListingPath is the route of the listing screen.
const ListingPath = "/"

// EditPath is the route of the form screen editing the trade with the given id.
func EditPath(id string) string {
	return "/add-trade/" + id
}

// Listing is the state of the trade listing screen: a local copy of every
// trade plus the notice currently on screen.
type Listing struct {
	client         journal.ClientInterface
	logger         *zap.Logger
	noticeDuration time.Duration

	mu     sync.Mutex
	trades []models.Trade
	notice *Notice
}

// NewListing creates an empty listing. Call Load to fill it.
func NewListing(client journal.ClientInterface, logger *zap.Logger, noticeDuration time.Duration) *Listing {
	return &Listing{
		client:         client,
		logger:         logger.Named("listing"),
		noticeDuration: noticeDuration,
	}
}

// Load replaces the local copy with the remote list. On failure the list is
// left empty and a single error notice is shown.
func (l *Listing) Load(ctx context.Context) {
	trades, err := l.client.ListTrades(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()

	if err != nil {
		l.logger.Error("Error fetching trades", zap.Error(err))
		l.trades = nil
		l.notice = newNotice(NoticeError, msgFetchFailed, l.noticeDuration)
		return
	}

	l.trades = trades
	l.notice = nil
	l.logger.Debug("Loaded trades", zap.Int("count", len(trades)))
}

// Delete removes the trade remotely and, only once that succeeded, from the local copy.
func (l *Listing) Delete(ctx context.Context, id string) error {
	err := l.client.DeleteTrade(ctx, id)

	l.mu.Lock()
	defer l.mu.Unlock()

	if err != nil {
		l.logger.Error("Failed to delete trade", zap.String("id", id), zap.Error(err))
		l.notice = newNotice(NoticeError, msgDeleteFailed, l.noticeDuration)
		return err
	}

	l.trades = models.RemoveTrade(l.trades, id)
	l.notice = newNotice(NoticeSuccess, msgDeleted, l.noticeDuration)
	l.logger.Info("Trade deleted", zap.String("id", id))
	return nil
}

// Trades returns a copy of the local list.
func (l *Listing) Trades() []models.Trade {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]models.Trade(nil), l.trades...)
}

// Notice returns the notice on screen, or nil.
func (l *Listing) Notice() *Notice {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.notice
}

// SetNotice puts a notice on screen, e.g. one carried over from another screen.
func (l *Listing) SetNotice(n *Notice) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.notice = n
}

// DismissNotice clears the notice on screen.
func (l *Listing) DismissNotice() {
	l.SetNotice(nil)
}
