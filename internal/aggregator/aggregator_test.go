package aggregator

import (
	"testing"

	"github.com/Gustitos/gustitosgo-backend/internal/config"
	"github.com/Gustitos/gustitosgo-backend/internal/directory"
	"github.com/Gustitos/gustitosgo-backend/internal/logging"
	"github.com/Gustitos/gustitosgo-backend/internal/models"
	"github.com/Gustitos/gustitosgo-backend/internal/resolver"
	"github.com/Gustitos/gustitosgo-backend/internal/transactions"

	"github.com/stretchr/testify/assert"
)

func testEngine(opts Options) *Engine {
	res := resolver.New(directory.Placeholder(), resolver.DefaultFuzzyThreshold, &logging.MockLogger{})
	return New(res, opts, &logging.MockLogger{})
}

func TestSummarizePlaceholderScenario(t *testing.T) {
	engine := testEngine(Options{})
	snap := transactions.Placeholder()

	metrics := engine.Summarize(snap, "burger", "OrgA", "2025-01-01", "2025-01-31")

	assert.Equal(t, "burger", metrics.MatchedChain)
	assert.Equal(t, 2, metrics.TransactionCount)
	assert.Equal(t, 2, metrics.UniqueUsers)
	assert.Equal(t, "12.50", models.FormatMajor(metrics.TotalGross))
}

func TestSummarizeInclusiveDateBounds(t *testing.T) {
	engine := testEngine(Options{})
	snap := transactions.Placeholder()

	// The placeholder burger rows fall exactly on Jan 15 and Jan 20.
	metrics := engine.Summarize(snap, "burger", "", "2025-01-15", "2025-01-20")
	assert.Equal(t, 2, metrics.TransactionCount)

	metrics = engine.Summarize(snap, "burger", "", "2025-01-16", "2025-01-19")
	assert.Equal(t, 0, metrics.TransactionCount)

	metrics = engine.Summarize(snap, "burger", "", "2025-01-20", "2025-01-20")
	assert.Equal(t, 1, metrics.TransactionCount)
}

func TestSummarizeEmptySetYieldsZeroMetrics(t *testing.T) {
	engine := testEngine(Options{})

	metrics := engine.Summarize(transactions.Placeholder(), "burger", "", "2024-01-01", "2024-12-31")

	assert.Equal(t, 0, metrics.TransactionCount)
	assert.Equal(t, 0, metrics.UniqueUsers)
	assert.Equal(t, "0.00", models.FormatMajor(metrics.TotalGross))
}

func TestSummarizeOrganizationFilter(t *testing.T) {
	engine := testEngine(Options{})
	snap := transactions.Placeholder()

	tests := []struct {
		name          string
		organization  string
		expectedCount int
	}{
		{"Matching organization", "OrgA", 2},
		{"Case insensitive", "orga", 2},
		{"Other organization", "OrgB", 0},
		{"No filter when empty", "", 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			metrics := engine.Summarize(snap, "burger", tc.organization, "2025-01-01", "2025-01-31")
			assert.Equal(t, tc.expectedCount, metrics.TransactionCount)
		})
	}
}

func TestSummarizeExcludesMalformedTimestamps(t *testing.T) {
	engine := testEngine(Options{})
	snap := transactions.NewSnapshot([]models.TransactionRecord{
		{Merchant: "Burger King", Organization: "OrgA", CreatedAt: "2025-01-10", GrossTotalCents: 500, UserID: "u-1"},
		{Merchant: "Burger King", Organization: "OrgA", CreatedAt: "garbage", GrossTotalCents: 900, UserID: "u-2"},
		{Merchant: "Burger King", Organization: "OrgA", CreatedAt: "", GrossTotalCents: 700, UserID: "u-3"},
	})

	metrics := engine.Summarize(snap, "burger", "", "2025-01-01", "2025-01-31")

	assert.Equal(t, 1, metrics.TransactionCount)
	assert.Equal(t, "5.00", models.FormatMajor(metrics.TotalGross))
}

func TestSummarizeUnparseableBoundary(t *testing.T) {
	logger := &logging.MockLogger{}
	res := resolver.New(directory.Placeholder(), resolver.DefaultFuzzyThreshold, &logging.MockLogger{})
	engine := New(res, Options{}, logger)

	metrics := engine.Summarize(transactions.Placeholder(), "burger", "", "not-a-date", "2025-01-31")
	assert.Equal(t, 0, metrics.TransactionCount)
	assert.True(t, logger.HasEntry("WARN", "Unparseable start date, no rows can match"))

	metrics = engine.Summarize(transactions.Placeholder(), "burger", "", "2025-01-01", "also-bad")
	assert.Equal(t, 0, metrics.TransactionCount)
}

func TestSummarizeDistinctUsers(t *testing.T) {
	engine := testEngine(Options{})
	snap := transactions.NewSnapshot([]models.TransactionRecord{
		{Merchant: "Burger King", CreatedAt: "2025-01-10", GrossTotalCents: 100, UserID: "u-1"},
		{Merchant: "Burger King", CreatedAt: "2025-01-11", GrossTotalCents: 100, UserID: "u-1"},
		{Merchant: "Burger King", CreatedAt: "2025-01-12", GrossTotalCents: 100, UserID: ""},
	})

	metrics := engine.Summarize(snap, "burger", "", "2025-01-01", "2025-01-31")

	assert.Equal(t, 3, metrics.TransactionCount)
	assert.Equal(t, 1, metrics.UniqueUsers, "repeat and anonymous rows count once and never")
}

func TestSummarizeContainsMatchMode(t *testing.T) {
	snap := transactions.Placeholder()

	equals := testEngine(Options{ChainMatchMode: config.ChainMatchEquals})
	metrics := equals.Summarize(snap, "burg", "", "2025-01-01", "2025-01-31")
	assert.Equal(t, 0, metrics.TransactionCount)

	contains := testEngine(Options{ChainMatchMode: config.ChainMatchContains})
	metrics = contains.Summarize(snap, "burg", "", "2025-01-01", "2025-01-31")
	assert.Equal(t, 2, metrics.TransactionCount)
}
