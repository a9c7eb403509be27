package cmd

import (
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
	"github.com/tstivers/portfolio/date"
	"github.com/tstivers/portfolio/docs"
)

// Completion returns the shell completion of pf.
//
// Install it with COMP_INSTALL=1 pf, remove it with COMP_UNINSTALL=1 pf.
func Completion() *complete.Command {
	periods := predict.Set{}
	for p := date.Daily; p <= date.Yearly; p++ {
		periods = append(periods, p.String())
	}
	topics, _ := docs.GetAllTopics()

	ledger := &complete.Command{
		Flags: map[string]complete.Predictor{
			"s":    predict.Something,
			"q":    predict.Something,
			"d":    predict.Something,
			"cash": predict.Nothing,
		},
	}
	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"config": predict.Files("*.toml"),
			"data":   predict.Dirs("*"),
			"v":      predict.Nothing,
		},
		Sub: map[string]*complete.Command{
			"report": {
				Flags: map[string]complete.Predictor{
					"d": predict.Something,
					"p": periods,
					"e": predict.Nothing,
					"t": predict.Nothing,
					"o": predict.Or(predict.Files("*.html"), predict.Files("*.md"), predict.Files("*.txt")),
					"x": predict.Files("*.csv"),
					"q": predict.Nothing,
				},
			},
			"list": {
				Flags: map[string]complete.Predictor{
					"l": predict.Set{"0", "1", "2"},
					"d": predict.Something,
				},
			},
			"declare": ledger,
			"add":     ledger,
			"remove":  ledger,
			"set":     ledger,
			"fetch": {
				Flags: map[string]complete.Predictor{
					"from":   predict.Something,
					"to":     predict.Something,
					"i":      predict.Files("*.jsonl"),
					"latest": predict.Nothing,
				},
			},
			"export":    {Flags: map[string]complete.Predictor{"o": predict.Files("*.csv")}},
			"fmt":       {},
			"configure": {},
			"topic":     {Flags: map[string]complete.Predictor{"raw": predict.Nothing}, Args: predict.Set(topics)},
			"assist":    {},
			"help":      {},
		},
	}
}
