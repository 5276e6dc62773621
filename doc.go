// Package finreport computes tax-relevant performance figures from
// normalized brokerage operations.
//
// Broker CSV exports are parsed (package brokers) into a flat stream of
// operations, normalized to EUR with historical daily rates (package fx), and
// aggregated per reporting year: realized trading profit and loss through
// strict FIFO lot matching (NewTradingPerformance), and passive income from
// dividends and interest (NewSavingPerformance).
package finreport
