// Package aggregator filters a transaction snapshot by resolved chain,
// organization and date window, and computes the summary metrics for the
// report. Malformed rows are excluded, never fatal.
package aggregator

import (
	"strings"

	"github.com/Gustitos/gustitosgo-backend/internal/config"
	"github.com/Gustitos/gustitosgo-backend/internal/dateutils"
	"github.com/Gustitos/gustitosgo-backend/internal/logging"
	"github.com/Gustitos/gustitosgo-backend/internal/models"
	"github.com/Gustitos/gustitosgo-backend/internal/resolver"
	"github.com/Gustitos/gustitosgo-backend/internal/transactions"
)

// Options controls the aggregation filtering behavior.
type Options struct {
	// ChainMatchMode is config.ChainMatchEquals (exact resolved-chain
	// equality) or config.ChainMatchContains (substring match).
	ChainMatchMode string
}

// Engine computes metrics over immutable transaction snapshots. It holds no
// per-request state and is safe for concurrent use.
type Engine struct {
	resolver *resolver.Resolver
	opts     Options
	logger   logging.Logger
}

// New creates an aggregation engine. The resolver is used to map each row's
// free-text merchant to its canonical chain before filtering.
func New(res *resolver.Resolver, opts Options, logger logging.Logger) *Engine {
	if opts.ChainMatchMode == "" {
		opts.ChainMatchMode = config.ChainMatchEquals
	}
	if logger == nil {
		logger = &logging.MockLogger{}
	}
	return &Engine{
		resolver: res,
		opts:     opts,
		logger:   logger,
	}
}

// Summarize filters the snapshot by resolved chain, optional organization
// and inclusive date range, then computes the metrics record. An empty
// filtered set yields zero metrics. Rows whose timestamps cannot be parsed
// are excluded from the result; an unparseable range boundary excludes all
// rows rather than failing the request.
func (e *Engine) Summarize(snap *transactions.Snapshot, resolvedChain, organization, startDate, endDate string) models.Metrics {
	metrics := models.ZeroMetrics(resolvedChain)

	start, err := dateutils.ParseDateString(startDate)
	if err != nil {
		e.logger.WithError(err).WithField(logging.FieldStartDate, startDate).
			Warn("Unparseable start date, no rows can match")
		return metrics
	}
	end, err := dateutils.ParseDateString(endDate)
	if err != nil {
		e.logger.WithError(err).WithField(logging.FieldEndDate, endDate).
			Warn("Unparseable end date, no rows can match")
		return metrics
	}

	wantChain := strings.ToLower(strings.TrimSpace(resolvedChain))
	wantOrg := strings.ToLower(strings.TrimSpace(organization))

	var (
		totalCents int64
		users      = make(map[string]struct{})
	)

	for _, rec := range snap.Records() {
		rowChain := e.resolver.Resolve(rec.Merchant)
		if !e.chainMatches(rowChain, wantChain) {
			continue
		}

		if wantOrg != "" && strings.ToLower(strings.TrimSpace(rec.Organization)) != wantOrg {
			continue
		}

		occurred, err := dateutils.ParseDateString(rec.CreatedAt)
		if err != nil || occurred.IsZero() {
			// Malformed timestamps are excluded from any date-filtered set.
			continue
		}
		if !dateutils.WithinRange(occurred, start, end) {
			continue
		}

		metrics.TransactionCount++
		totalCents += rec.GrossTotalCents
		if rec.UserID != "" {
			users[rec.UserID] = struct{}{}
		}
	}

	metrics.UniqueUsers = len(users)
	metrics.TotalGross = models.RoundMajor(models.CentsToMajor(totalCents))

	e.logger.WithFields(
		logging.Field{Key: logging.FieldChain, Value: resolvedChain},
		logging.Field{Key: logging.FieldOrganization, Value: organization},
		logging.Field{Key: logging.FieldCount, Value: metrics.TransactionCount},
	).Debug("Computed summary metrics")

	return metrics
}

func (e *Engine) chainMatches(rowChain, wantChain string) bool {
	rowChain = strings.ToLower(rowChain)
	if e.opts.ChainMatchMode == config.ChainMatchContains {
		return strings.Contains(rowChain, wantChain)
	}
	return rowChain == wantChain
}
