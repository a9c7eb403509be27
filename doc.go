// Package portfolio tracks the shares held in a personal stock portfolio and values
// them with daily close prices.
//
// The core functionalities include:
//   - Holdings ledger: declaring symbols and recording purchases, sales and
//     position resets in a chronological, line-oriented JSONL file.
//   - Market data: daily close prices per symbol, persisted one day per line.
//   - Valuation: daily value, change since the previous trading day, and the
//     ranking of a day among the trading days of its year.
//
// Reports are rendered by the renderer package, and delivered by the mail package.
package portfolio
