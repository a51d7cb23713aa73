package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// StockType is the kind of instrument that was traded.
type StockType string

const (
	StockTypeStock   StockType = "Stock"
	StockTypeOptions StockType = "Options"
)

// StockTypes lists the selectable instrument kinds in display order.
var StockTypes = []StockType{StockTypeStock, StockTypeOptions}

// ProfitOrLoss is the outcome of a closed trade.
type ProfitOrLoss string

const (
	Profit ProfitOrLoss = "profit"
	Loss   ProfitOrLoss = "loss"
)

// Outcomes lists the selectable outcomes in display order.
var Outcomes = []ProfitOrLoss{Profit, Loss}

// Label is the upper-cased form shown in listings.
func (p ProfitOrLoss) Label() string {
	return strings.ToUpper(string(p))
}

// TargetRatio is a risk/reward multiple written as "risk:reward", e.g. "1:3".
type TargetRatio string

const (
	RatioOneToTwo   TargetRatio = "1:2"
	RatioOneToThree TargetRatio = "1:3"
	RatioOneToFour  TargetRatio = "1:4"
)

// TargetRatios lists the selectable ratios in display order.
var TargetRatios = []TargetRatio{RatioOneToTwo, RatioOneToThree, RatioOneToFour}

// DefaultPyramiding is what a fresh trade records for pyramiding.
const DefaultPyramiding = "0 times"

// Trade is one journaled transaction as the remote store keeps it.
// Blank prices and counts are null rather than zero.
type Trade struct {
	ID                 string              `json:"_id,omitempty"`
	BuyDate            Date                `json:"buyDate"`
	Strategy           string              `json:"strategy"`
	StockType          StockType           `json:"stockType"`
	EntryPrice         decimal.NullDecimal `json:"entryPrice"`
	StopLoss           decimal.NullDecimal `json:"stopLoss"`
	Target             decimal.NullDecimal `json:"target"`
	TargetRatio        TargetRatio         `json:"targetRatio"`
	Quantity           *int64              `json:"quantity"`
	ExitPrice          decimal.NullDecimal `json:"exitPrice"`
	Pyramiding         string              `json:"pyramiding"`
	ProfitOrLoss       ProfitOrLoss        `json:"profitOrLoss"`
	ProfitLossPrice    decimal.NullDecimal `json:"profitLossPrice"`
	EmotionWhenBuying  string              `json:"emotionWhenBuying"`
	EmotionDuringTrade string              `json:"emotionDuringTrade"`
	EmotionWhenExiting string              `json:"emotionWhenExiting"`
	LearningFromThis   string              `json:"learningFromThis"`
	Mistake            string              `json:"mistake"`
	Rating             *int                `json:"rating"`
}

// FormatPrice renders a nullable price with two decimals, or "" when blank.
func FormatPrice(p decimal.NullDecimal) string {
	if !p.Valid {
		return ""
	}
	return p.Decimal.StringFixed(2)
}

// RemoveTrade returns trades without the entry whose ID is id.
// The input slice is not modified.
func RemoveTrade(trades []Trade, id string) []Trade {
	kept := make([]Trade, 0, len(trades))
	for _, t := range trades {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	return kept
}
