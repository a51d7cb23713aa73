package screen

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"trade-journal-go/internal/models"

	"github.com/shopspring/decimal"
)

// Form field names. They match the JSON names of the trade record.
const (
	FieldBuyDate            = "buyDate"
	FieldStrategy           = "strategy"
	FieldStockType          = "stockType"
	FieldEntryPrice         = "entryPrice"
	FieldStopLoss           = "stopLoss"
	FieldTarget             = "target"
	FieldTargetRatio        = "targetRatio"
	FieldQuantity           = "quantity"
	FieldExitPrice          = "exitPrice"
	FieldPyramiding         = "pyramiding"
	FieldProfitOrLoss       = "profitOrLoss"
	FieldProfitLossPrice    = "profitLossPrice"
	FieldEmotionWhenBuying  = "emotionWhenBuying"
	FieldEmotionDuringTrade = "emotionDuringTrade"
	FieldEmotionWhenExiting = "emotionWhenExiting"
	FieldLearningFromThis   = "learningFromThis"
	FieldMistake            = "mistake"
	FieldRating             = "rating"
)

// FieldNames lists every form field in display order.
var FieldNames = []string{
	FieldBuyDate, FieldStrategy, FieldStockType, FieldTargetRatio, FieldQuantity,
	FieldEntryPrice, FieldStopLoss, FieldTarget, FieldExitPrice, FieldPyramiding,
	FieldProfitOrLoss, FieldProfitLossPrice, FieldEmotionWhenBuying, FieldEmotionDuringTrade,
	FieldEmotionWhenExiting, FieldLearningFromThis, FieldMistake, FieldRating,
}

// Fields is the editable text of one trade as the form shows it.
type Fields struct {
	BuyDate            string
	Strategy           string
	StockType          string
	EntryPrice         string
	StopLoss           string
	Target             string
	TargetRatio        string
	Quantity           string
	ExitPrice          string
	Pyramiding         string
	ProfitOrLoss       string
	ProfitLossPrice    string
	EmotionWhenBuying  string
	EmotionDuringTrade string
	EmotionWhenExiting string
	LearningFromThis   string
	Mistake            string
	Rating             string
}

// NewFields is the starting point of a new trade: dated today, no pyramiding.
func NewFields() Fields {
	return Fields{
		BuyDate:    models.Today().String(),
		Pyramiding: models.DefaultPyramiding,
	}
}

// clearedFields is what the form shows after a trade was created.
func clearedFields() Fields {
	return Fields{Pyramiding: models.DefaultPyramiding}
}

// FieldsFromTrade renders a stored trade for editing.
func FieldsFromTrade(t models.Trade) Fields {
	f := Fields{
		BuyDate:            t.BuyDate.String(),
		Strategy:           t.Strategy,
		StockType:          string(t.StockType),
		EntryPrice:         decimalText(t.EntryPrice),
		StopLoss:           decimalText(t.StopLoss),
		Target:             decimalText(t.Target),
		TargetRatio:        string(t.TargetRatio),
		ExitPrice:          decimalText(t.ExitPrice),
		Pyramiding:         t.Pyramiding,
		ProfitOrLoss:       string(t.ProfitOrLoss),
		ProfitLossPrice:    decimalText(t.ProfitLossPrice),
		EmotionWhenBuying:  t.EmotionWhenBuying,
		EmotionDuringTrade: t.EmotionDuringTrade,
		EmotionWhenExiting: t.EmotionWhenExiting,
		LearningFromThis:   t.LearningFromThis,
		Mistake:            t.Mistake,
	}
	if f.Pyramiding == "" {
		f.Pyramiding = models.DefaultPyramiding
	}
	if t.Quantity != nil {
		f.Quantity = strconv.FormatInt(*t.Quantity, 10)
	}
	if t.Rating != nil {
		f.Rating = strconv.Itoa(*t.Rating)
	}
	return f
}

func decimalText(p decimal.NullDecimal) string {
	if !p.Valid {
		return ""
	}
	return p.Decimal.String()
}

// Get returns the text of the named field.
func (f *Fields) Get(name string) (string, error) {
	ref := f.ref(name)
	if ref == nil {
		return "", fmt.Errorf("unknown field %q", name)
	}
	return *ref, nil
}

// Set changes one field. Changing the entry price, the stop loss or the
// target ratio re-derives the target; it is cleared when any of the three is missing.
func (f *Fields) Set(name, value string) error {
	ref := f.ref(name)
	if ref == nil {
		return fmt.Errorf("unknown field %q", name)
	}
	*ref = value

	switch name {
	case FieldEntryPrice, FieldStopLoss, FieldTargetRatio:
		f.Target = models.DeriveTarget(f.EntryPrice, f.StopLoss, f.TargetRatio)
	}
	return nil
}

func (f *Fields) ref(name string) *string {
	switch name {
	case FieldBuyDate:
		return &f.BuyDate
	case FieldStrategy:
		return &f.Strategy
	case FieldStockType:
		return &f.StockType
	case FieldEntryPrice:
		return &f.EntryPrice
	case FieldStopLoss:
		return &f.StopLoss
	case FieldTarget:
		return &f.Target
	case FieldTargetRatio:
		return &f.TargetRatio
	case FieldQuantity:
		return &f.Quantity
	case FieldExitPrice:
		return &f.ExitPrice
	case FieldPyramiding:
		return &f.Pyramiding
	case FieldProfitOrLoss:
		return &f.ProfitOrLoss
	case FieldProfitLossPrice:
		return &f.ProfitLossPrice
	case FieldEmotionWhenBuying:
		return &f.EmotionWhenBuying
	case FieldEmotionDuringTrade:
		return &f.EmotionDuringTrade
	case FieldEmotionWhenExiting:
		return &f.EmotionWhenExiting
	case FieldLearningFromThis:
		return &f.LearningFromThis
	case FieldMistake:
		return &f.Mistake
	case FieldRating:
		return &f.Rating
	}
	return nil
}

// Trade converts the form text into a trade record. Blank numbers become
// null; text that is not a number, an unknown choice or a rating outside
// 0-10 is an error.
func (f Fields) Trade() (models.Trade, error) {
	var (
		t   models.Trade
		err error
	)

	if t.BuyDate, err = models.ParseDate(f.BuyDate); err != nil {
		return t, fmt.Errorf("%s: %w", FieldBuyDate, err)
	}

	prices := []struct {
		name string
		text string
		dst  *decimal.NullDecimal
	}{
		{FieldEntryPrice, f.EntryPrice, &t.EntryPrice},
		{FieldStopLoss, f.StopLoss, &t.StopLoss},
		{FieldTarget, f.Target, &t.Target},
		{FieldExitPrice, f.ExitPrice, &t.ExitPrice},
		{FieldProfitLossPrice, f.ProfitLossPrice, &t.ProfitLossPrice},
	}
	for _, p := range prices {
		if *p.dst, err = parsePrice(p.text); err != nil {
			return t, fmt.Errorf("%s: %w", p.name, err)
		}
	}

	if t.Quantity, err = parseOptionalInt(f.Quantity); err != nil {
		return t, fmt.Errorf("%s: %w", FieldQuantity, err)
	}
	if t.Rating, err = parseRating(f.Rating); err != nil {
		return t, fmt.Errorf("%s: %w", FieldRating, err)
	}

	t.StockType = models.StockType(strings.TrimSpace(f.StockType))
	if t.StockType != "" && !slices.Contains(models.StockTypes, t.StockType) {
		return t, fmt.Errorf("%s: unknown value %q", FieldStockType, f.StockType)
	}
	t.TargetRatio = models.TargetRatio(strings.TrimSpace(f.TargetRatio))
	if t.TargetRatio != "" && !slices.Contains(models.TargetRatios, t.TargetRatio) {
		return t, fmt.Errorf("%s: unknown value %q", FieldTargetRatio, f.TargetRatio)
	}
	t.ProfitOrLoss = models.ProfitOrLoss(strings.TrimSpace(f.ProfitOrLoss))
	if t.ProfitOrLoss != "" && !slices.Contains(models.Outcomes, t.ProfitOrLoss) {
		return t, fmt.Errorf("%s: unknown value %q", FieldProfitOrLoss, f.ProfitOrLoss)
	}

	t.Strategy = f.Strategy
	t.Pyramiding = f.Pyramiding
	t.EmotionWhenBuying = f.EmotionWhenBuying
	t.EmotionDuringTrade = f.EmotionDuringTrade
	t.EmotionWhenExiting = f.EmotionWhenExiting
	t.LearningFromThis = f.LearningFromThis
	t.Mistake = f.Mistake
	return t, nil
}

func parsePrice(text string) (decimal.NullDecimal, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("not a number: %q", text)
	}
	return decimal.NewNullDecimal(d), nil
}

func parseOptionalInt(text string) (*int64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("not a whole number: %q", text)
	}
	return &n, nil
}

func parseRating(text string) (*int, error) {
	n, err := parseOptionalInt(text)
	if err != nil || n == nil {
		return nil, err
	}
	if *n < 0 || *n > 10 {
		return nil, fmt.Errorf("must be between 0 and 10, got %d", *n)
	}
	rating := int(*n)
	return &rating, nil
}
