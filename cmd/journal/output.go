package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"trade-journal-go/internal/models"
	"trade-journal-go/internal/screen"

	"gopkg.in/yaml.v3"
)

const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

// tradeView is a trade as the CLI prints it: every field as the form shows it.
type tradeView struct {
	ID                 string `json:"_id" yaml:"_id"`
	BuyDate            string `json:"buyDate" yaml:"buyDate"`
	Strategy           string `json:"strategy" yaml:"strategy"`
	StockType          string `json:"stockType" yaml:"stockType"`
	EntryPrice         string `json:"entryPrice" yaml:"entryPrice"`
	StopLoss           string `json:"stopLoss" yaml:"stopLoss"`
	Target             string `json:"target" yaml:"target"`
	TargetRatio        string `json:"targetRatio" yaml:"targetRatio"`
	Quantity           string `json:"quantity" yaml:"quantity"`
	ExitPrice          string `json:"exitPrice" yaml:"exitPrice"`
	Pyramiding         string `json:"pyramiding" yaml:"pyramiding"`
	ProfitOrLoss       string `json:"profitOrLoss" yaml:"profitOrLoss"`
	ProfitLossPrice    string `json:"profitLossPrice" yaml:"profitLossPrice"`
	EmotionWhenBuying  string `json:"emotionWhenBuying" yaml:"emotionWhenBuying"`
	EmotionDuringTrade string `json:"emotionDuringTrade" yaml:"emotionDuringTrade"`
	EmotionWhenExiting string `json:"emotionWhenExiting" yaml:"emotionWhenExiting"`
	LearningFromThis   string `json:"learningFromThis" yaml:"learningFromThis"`
	Mistake            string `json:"mistake" yaml:"mistake"`
	Rating             string `json:"rating" yaml:"rating"`
}

func newTradeView(id string, f screen.Fields) tradeView {
	return tradeView{
		ID:                 id,
		BuyDate:            f.BuyDate,
		Strategy:           f.Strategy,
		StockType:          f.StockType,
		EntryPrice:         f.EntryPrice,
		StopLoss:           f.StopLoss,
		Target:             f.Target,
		TargetRatio:        f.TargetRatio,
		Quantity:           f.Quantity,
		ExitPrice:          f.ExitPrice,
		Pyramiding:         f.Pyramiding,
		ProfitOrLoss:       f.ProfitOrLoss,
		ProfitLossPrice:    f.ProfitLossPrice,
		EmotionWhenBuying:  f.EmotionWhenBuying,
		EmotionDuringTrade: f.EmotionDuringTrade,
		EmotionWhenExiting: f.EmotionWhenExiting,
		LearningFromThis:   f.LearningFromThis,
		Mistake:            f.Mistake,
		Rating:             f.Rating,
	}
}

func checkOutput(format string) error {
	switch format {
	case outputTable, outputJSON, outputYAML:
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want table, json or yaml)", format)
	}
}

func writeStructured(w io.Writer, format string, v any) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown output format %q", format)
}

// writeTradeTable prints the listing columns, one trade per line.
func writeTradeTable(w io.Writer, trades []models.Trade) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tBUY DATE\tSTRATEGY\tENTRY\tSTOP\tTARGET\tRESULT\tRATING")
	for _, t := range trades {
		rating := ""
		if t.Rating != nil {
			rating = fmt.Sprintf("%d/10", *t.Rating)
		}
		buyDate := ""
		if !t.BuyDate.IsZero() {
			buyDate = t.BuyDate.Format("01/02/2006")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			t.ID,
			buyDate,
			t.Strategy,
			models.FormatPrice(t.EntryPrice),
			models.FormatPrice(t.StopLoss),
			models.FormatPrice(t.Target),
			t.ProfitOrLoss.Label(),
			rating,
		)
	}
	return tw.Flush()
}

// writeFieldTable prints one trade as name/value lines in form order.
func writeFieldTable(w io.Writer, id string, f screen.Fields) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "_id\t%s\n", id)
	for _, name := range screen.FieldNames {
		value, err := f.Get(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(tw, "%s\t%s\n", name, value)
	}
	return tw.Flush()
}
