package main

import (
	"net/http"
	"strconv"
	"time"

	"trade-journal-go/internal/config"
	"trade-journal-go/internal/journal"
	"trade-journal-go/internal/models"
	"trade-journal-go/internal/screen"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Query parameters carrying a notice over a redirect to the listing.
const (
	savedParam        = "saved"
	deletedParam      = "deleted"
	deleteFailedParam = "delete_failed"
)

// UIHandler holds dependencies for the screens. Screen state is built per request.
type UIHandler struct {
	log    *zap.Logger
	client journal.ClientInterface
	cfg    config.UI
}

// NewUIHandler creates a new UIHandler.
func NewUIHandler(log *zap.Logger, client journal.ClientInterface, cfg config.UI) *UIHandler {
	return &UIHandler{
		log:    log,
		client: client,
		cfg:    cfg,
	}
}

// NewRouter wires every route of the web UI.
func NewRouter(h *UIHandler) (*gin.Engine, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(requestLogger(h.log), gin.Recovery())
	r.SetHTMLTemplate(tmpl)

	r.GET(screen.ListingPath, h.ListingHandler)
	r.POST(screen.ListingPath, h.DeleteHandler)
	r.GET(screen.CreatePath, h.FormHandler)
	r.POST(screen.CreatePath, h.SubmitHandler)
	r.GET(screen.CreatePath+"/:id", h.FormHandler)
	r.POST(screen.CreatePath+"/:id", h.SubmitHandler)
	r.GET("/api/target", h.TargetHandler)
	r.GET("/health", healthHandler)

	return r, nil
}

// requestLogger logs every request with a request id, echoed back in X-Request-ID.
func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header("X-Request-ID", requestID)

		c.Next()

		log.Info("http_request",
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

// listingRow is one trade as the listing table shows it.
type listingRow struct {
	ID           string
	BuyDate      string
	Strategy     string
	EntryPrice   string
	StopLoss     string
	Target       string
	Outcome      string
	OutcomeClass string
	Rating       string
	EditPath     string
}

func newListingRow(t models.Trade) listingRow {
	row := listingRow{
		ID:         t.ID,
		Strategy:   t.Strategy,
		EntryPrice: dollars(t.EntryPrice),
		StopLoss:   dollars(t.StopLoss),
		Target:     dollars(t.Target),
		Outcome:    t.ProfitOrLoss.Label(),
		EditPath:   screen.EditPath(t.ID),
	}
	if !t.BuyDate.IsZero() {
		row.BuyDate = t.BuyDate.Format("01/02/2006")
	}
	switch t.ProfitOrLoss {
	case models.Profit:
		row.OutcomeClass = "profit"
	case models.Loss:
		row.OutcomeClass = "loss"
	}
	if t.Rating != nil {
		row.Rating = strconv.Itoa(*t.Rating) + "/10"
	}
	return row
}

func dollars(p decimal.NullDecimal) string {
	if !p.Valid {
		return ""
	}
	return "$" + models.FormatPrice(p)
}

type listingPage struct {
	Title  string
	Rows   []listingRow
	Notice *screen.Notice
}

func (h *UIHandler) renderListing(c *gin.Context, listing *screen.Listing) {
	trades := listing.Trades()
	rows := make([]listingRow, 0, len(trades))
	for _, t := range trades {
		rows = append(rows, newListingRow(t))
	}
	c.HTML(http.StatusOK, "listing.html", listingPage{
		Title:  "Trade Listings",
		Rows:   rows,
		Notice: listing.Notice(),
	})
}

// ListingHandler loads the trades afresh and renders the listing. A fetch
// failure notice wins over one carried over a redirect.
func (h *UIHandler) ListingHandler(c *gin.Context) {
	listing := screen.NewListing(h.client, h.log, h.cfg.ListingNotice)
	listing.Load(c.Request.Context())
	if listing.Notice() == nil {
		listing.SetNotice(h.carriedNotice(c))
	}
	h.renderListing(c, listing)
}

func (h *UIHandler) carriedNotice(c *gin.Context) *screen.Notice {
	switch {
	case c.Query(savedParam) != "":
		return screen.SavedNotice(h.cfg.FormNotice)
	case c.Query(deletedParam) != "":
		return screen.DeletedNotice(h.cfg.ListingNotice)
	case c.Query(deleteFailedParam) != "":
		return screen.DeleteFailedNotice(h.cfg.ListingNotice)
	default:
		return nil
	}
}

// DeleteHandler deletes the trade named by the "id" form field and redirects
// to the listing, which loads the list again. Confirmation happens in the browser.
func (h *UIHandler) DeleteHandler(c *gin.Context) {
	listing := screen.NewListing(h.client, h.log, h.cfg.ListingNotice)
	param := deletedParam
	if err := listing.Delete(c.Request.Context(), c.PostForm("id")); err != nil {
		param = deleteFailedParam
	}
	c.Redirect(http.StatusSeeOther, screen.ListingPath+"?"+param+"=1")
}

type formPage struct {
	Title        string
	Action       string
	IsEdit       bool
	SubmitLabel  string
	Fields       screen.Fields
	Notice       *screen.Notice
	StockTypes   []models.StockType
	TargetRatios []models.TargetRatio
	Outcomes     []models.ProfitOrLoss
}

func (h *UIHandler) renderForm(c *gin.Context, form *screen.Form) {
	title := "Add New Trade"
	if form.IsEdit() {
		title = "Edit Trade"
	}
	c.HTML(http.StatusOK, "form.html", formPage{
		Title:        title,
		Action:       form.Action(),
		IsEdit:       form.IsEdit(),
		SubmitLabel:  form.SubmitLabel(),
		Fields:       form.Fields(),
		Notice:       form.Notice(),
		StockTypes:   models.StockTypes,
		TargetRatios: models.TargetRatios,
		Outcomes:     models.Outcomes,
	})
}

// FormHandler renders a blank form, or in edit mode one prefilled from the store.
func (h *UIHandler) FormHandler(c *gin.Context) {
	form := screen.NewForm(h.client, h.log, h.cfg.FormNotice, c.Param("id"))
	if err := form.Load(c.Request.Context()); err != nil {
		h.log.Debug("Rendering form without the stored trade", zap.String("id", form.ID()), zap.Error(err))
	}
	h.renderForm(c, form)
}

// SubmitHandler creates or updates a trade from the posted form. Success
// redirects to the listing; failure renders the form again with what was posted.
func (h *UIHandler) SubmitHandler(c *gin.Context) {
	form := screen.NewForm(h.client, h.log, h.cfg.FormNotice, c.Param("id"))

	var fields screen.Fields
	for _, name := range screen.FieldNames {
		_ = fields.Set(name, c.PostForm(name))
	}
	// the target is taken as posted, not re-derived
	fields.Target = c.PostForm(screen.FieldTarget)
	form.Replace(fields)

	if err := form.Submit(c.Request.Context()); err != nil {
		h.renderForm(c, form)
		return
	}
	c.Redirect(http.StatusSeeOther, form.NavigateTo()+"?"+savedParam+"=1")
}

// TargetHandler derives the target price for the form's live update.
func (h *UIHandler) TargetHandler(c *gin.Context) {
	target := models.DeriveTarget(
		c.Query(screen.FieldEntryPrice),
		c.Query(screen.FieldStopLoss),
		c.Query(screen.FieldTargetRatio),
	)
	c.JSON(http.StatusOK, gin.H{"target": target})
}
