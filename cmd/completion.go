package cmd

import (
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion handles shell completion requests. It returns immediately
// when the process is not running as a completion hook.
func Completion() {
	ledger := map[string]complete.Predictor{"ledger": predict.Files("*.jsonl")}

	tx := &complete.Command{Flags: map[string]complete.Predictor{
		"d": predict.Nothing,
		"s": predict.Nothing,
		"a": predict.Nothing,
		"m": predict.Nothing,
	}}

	report := &complete.Command{Flags: map[string]complete.Predictor{
		"d":      predict.Nothing,
		"a":      predict.Nothing,
		"period": predict.Set{"day", "week", "month", "quarter", "year"},
		"method": predict.Set{"fifo", "average"},
	}}

	cmd := &complete.Command{
		Flags: ledger,
		Sub: map[string]*complete.Command{
			"init":          {},
			"declare":       {},
			"fmt":           {},
			"buy":           tx,
			"sell":          tx,
			"dividend":      tx,
			"deposit":       tx,
			"withdraw":      tx,
			"convert":       tx,
			"split":         tx,
			"price":         tx,
			"log":           report,
			"holding":       report,
			"gains":         report,
			"summary":       report,
			"search":        {},
			"alert":         {Sub: map[string]*complete.Command{"add": {}, "rm": {}, "rearm": {}, "list": {}}},
			"update":        {},
			"import-trades": {},
			"export":        {Flags: map[string]complete.Predictor{"o": predict.Files("*.csv")}},
			"import":        {Flags: map[string]complete.Predictor{"i": predict.Files("*.csv")}},
			"serve":         {},
			"assist":        {},
		},
	}
	cmd.Complete("pfd")
}
