package screen

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"trade-journal-go/internal/journal"

	"go.uber.org/zap"
)

// CreatePath is the route of the form screen in create mode.
const CreatePath = "/add-trade"

// ErrSubmitInFlight is returned by Submit while an earlier submit has not finished.
var ErrSubmitInFlight = errors.New("a submit is already in flight")

// Form is the state of the trade form screen. A Form with an id edits that
// trade; without one it creates a new trade.
type Form struct {
	client         journal.ClientInterface
	logger         *zap.Logger
	noticeDuration time.Duration
	id             string

	mu         sync.Mutex
	fields     Fields
	submitting bool
	notice     *Notice
	navigateTo string
}

// NewForm creates a form with blank fields. Pass an empty id to create a trade.
func NewForm(client journal.ClientInterface, logger *zap.Logger, noticeDuration time.Duration, id string) *Form {
	l := logger.Named("form")
	if id != "" {
		l = l.With(zap.String("id", id))
	}
	return &Form{
		client:         client,
		logger:         l,
		noticeDuration: noticeDuration,
		id:             id,
		fields:         NewFields(),
	}
}

// ID is the trade being edited, or "" in create mode.
func (f *Form) ID() string { return f.id }

// IsEdit reports whether the form edits an existing trade.
func (f *Form) IsEdit() bool { return f.id != "" }

// Action is the route the form submits to.
func (f *Form) Action() string {
	if f.IsEdit() {
		return EditPath(f.id)
	}
	return CreatePath
}

// Load prefills the fields from the stored trade. It does nothing in create
// mode. On failure the fields keep their defaults and an error notice is shown.
func (f *Form) Load(ctx context.Context) error {
	if !f.IsEdit() {
		return nil
	}

	trade, err := f.client.GetTrade(ctx, f.id)

	f.mu.Lock()
	defer f.mu.Unlock()

	if err != nil {
		f.logger.Error("Failed to fetch trade data", zap.Error(err))
		f.notice = newNotice(NoticeError, msgSubmitFailed, f.noticeDuration)
		return err
	}

	f.fields = FieldsFromTrade(*trade)
	return nil
}

// Fields returns a copy of the current field text.
func (f *Form) Fields() Fields {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fields
}

// Set changes one field, re-deriving the target where needed.
func (f *Form) Set(name, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fields.Set(name, value)
}

// Replace overwrites every field as given, without re-deriving anything.
// It is used when a whole form comes back from the browser, whose target
// field already holds what the user last saw or typed.
func (f *Form) Replace(fields Fields) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fields = fields
}

// Submit creates or updates the trade depending on the form mode.
// On success it shows a success notice, navigates to the listing and, in
// create mode only, clears the fields. On failure it shows an error notice
// and keeps everything as it was.
func (f *Form) Submit(ctx context.Context) error {
	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return ErrSubmitInFlight
	}
	f.submitting = true
	fields := f.fields
	f.mu.Unlock()

	err := f.persist(ctx, fields)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitting = false

	if err != nil {
		f.logger.Error("Failed to submit trade", zap.Error(err))
		f.notice = newNotice(NoticeError, msgSubmitFailed, f.noticeDuration)
		return err
	}

	f.notice = newNotice(NoticeSuccess, msgSaved, f.noticeDuration)
	f.navigateTo = ListingPath
	if !f.IsEdit() {
		f.fields = clearedFields()
	}
	return nil
}

func (f *Form) persist(ctx context.Context, fields Fields) error {
	trade, err := fields.Trade()
	if err != nil {
		return fmt.Errorf("invalid trade: %w", err)
	}

	if f.IsEdit() {
		_, err = f.client.UpdateTrade(ctx, f.id, trade)
		return err
	}

	created, err := f.client.CreateTrade(ctx, trade)
	if err != nil {
		return err
	}
	f.logger.Info("Trade created", zap.String("new_id", created.ID))
	return nil
}

// Submitting reports whether a submit is in flight.
func (f *Form) Submitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitting
}

// SubmitLabel is the caption of the submit button.
func (f *Form) SubmitLabel() string {
	switch {
	case f.Submitting():
		return "Saving..."
	case f.IsEdit():
		return "Update Trade"
	default:
		return "Add Trade"
	}
}

// Notice returns the notice on screen, or nil.
func (f *Form) Notice() *Notice {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.notice
}

// DismissNotice clears the notice on screen.
func (f *Form) DismissNotice() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notice = nil
}

// NavigateTo is the route to move to after a successful submit, or "".
func (f *Form) NavigateTo() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.navigateTo
}
