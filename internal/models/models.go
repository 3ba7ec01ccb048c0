// Package models defines the core data types shared across the report
// pipeline: reference chain entries, raw transaction records, report
// requests, and the computed metrics record.
package models

import (
	"github.com/shopspring/decimal"
)

// ChainEntry is one row of the chain reference dataset. The Chain column is
// optional; when absent the canonical chain is derived from the first token
// of the merchant name.
type ChainEntry struct {
	Name  string `csv:"Name" json:"name"`
	Chain string `csv:"Chain" json:"chain,omitempty"`
}

// TransactionRecord is one financial event as recorded by the upstream
// source. Merchant is free text and not guaranteed to match any canonical
// chain name; CreatedAt may be malformed and is parsed lazily during
// aggregation.
type TransactionRecord struct {
	Merchant        string `csv:"Merchant" json:"merchant"`
	Organization    string `csv:"Organization" json:"organization"`
	CreatedAt       string `csv:"Created at" json:"created_at"`
	GrossTotalCents int64  `csv:"Gross total cents" json:"gross_total_cents"`
	UserID          string `csv:"User" json:"user_id"`
}

// Metrics is the summary computed for one resolved chain, organization and
// date-range combination.
type Metrics struct {
	MatchedChain     string          `json:"matched_chain"`
	TransactionCount int             `json:"total_transactions"`
	UniqueUsers      int             `json:"total_users"`
	TotalGross       decimal.Decimal `json:"total_gmv"`
}

// ZeroMetrics returns an all-zero metrics record for the given chain.
// An empty filtered result set is a valid outcome, not an error.
func ZeroMetrics(chain string) Metrics {
	return Metrics{
		MatchedChain: chain,
		TotalGross:   decimal.Zero.Round(2),
	}
}

// ReportRequest carries the parameters of one report-generation call.
type ReportRequest struct {
	ChainName        string   `json:"chain_name"`
	StartDate        string   `json:"start_date"`
	EndDate          string   `json:"end_date"`
	Organization     string   `json:"organization"`
	FeeOverride      *float64 `json:"fee_override,omitempty"`
	IncludeGustazos  bool     `json:"include_gustazos"`
	IncludeGiftcards bool     `json:"include_giftcards"`
	IncludeReferrals bool     `json:"include_referrals"`
}

// DefaultReportRequest returns a request with the default include flags set.
// Decode JSON request bodies into this value so absent flags keep their
// defaults instead of collapsing to false.
func DefaultReportRequest() ReportRequest {
	return ReportRequest{
		IncludeGustazos:  true,
		IncludeGiftcards: true,
		IncludeReferrals: false,
	}
}

// ReportResult is the structured outcome of a report-generation call. The
// pipeline always produces either a success record with a report reference
// or an error description; internal faults never propagate unhandled.
type ReportResult struct {
	Success   bool     `json:"success"`
	ReportURL string   `json:"report_url,omitempty"`
	Error     string   `json:"error,omitempty"`
	Metrics   *Metrics `json:"metrics,omitempty"`
}
