// Package resolver maps free-text merchant or chain queries to canonical
// chain identifiers. Resolution is total: every query yields a non-empty
// identifier via exact match, fuzzy match, or a first-token fallback, in
// that order.
package resolver

import (
	"github.com/Gustitos/gustitosgo-backend/internal/directory"
	"github.com/Gustitos/gustitosgo-backend/internal/logging"

	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// DefaultFuzzyThreshold is the minimum similarity ratio a fuzzy candidate
// must reach to be accepted. Raising it trades false-positive matches for
// more first-token fallbacks.
const DefaultFuzzyThreshold = 0.6

// Resolver resolves queries against one immutable directory snapshot.
type Resolver struct {
	dir       *directory.Directory
	threshold float64
	logger    logging.Logger
}

// New creates a Resolver over the given directory snapshot. A threshold
// outside (0, 1] falls back to DefaultFuzzyThreshold.
func New(dir *directory.Directory, threshold float64, logger logging.Logger) *Resolver {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultFuzzyThreshold
	}
	if logger == nil {
		logger = &logging.MockLogger{}
	}
	return &Resolver{
		dir:       dir,
		threshold: threshold,
		logger:    logger,
	}
}

// Resolve returns the canonical chain for a query string. Exact matches on
// the normalized query always win, regardless of what a fuzzy candidate
// would score. When the best fuzzy candidate falls below the threshold the
// first token of the query itself is returned, so resolution never fails.
func (r *Resolver) Resolve(query string) string {
	normalized := directory.NormalizeKey(query)

	if chain, ok := r.dir.Lookup(normalized); ok {
		r.logger.WithFields(
			logging.Field{Key: logging.FieldQuery, Value: query},
			logging.Field{Key: logging.FieldChain, Value: chain},
			logging.Field{Key: logging.FieldStrategy, Value: "exact"},
		).Debug("Resolved chain by exact match")
		return chain
	}

	if key, score, ok := r.closestKey(normalized); ok && score >= r.threshold {
		chain, _ := r.dir.Lookup(key)
		r.logger.WithFields(
			logging.Field{Key: logging.FieldQuery, Value: query},
			logging.Field{Key: logging.FieldChain, Value: chain},
			logging.Field{Key: logging.FieldScore, Value: score},
			logging.Field{Key: logging.FieldThreshold, Value: r.threshold},
			logging.Field{Key: logging.FieldStrategy, Value: "fuzzy"},
		).Debug("Resolved chain by fuzzy match")
		return chain
	}

	fallback := directory.FirstToken(query)
	r.logger.WithFields(
		logging.Field{Key: logging.FieldQuery, Value: query},
		logging.Field{Key: logging.FieldChain, Value: fallback},
		logging.Field{Key: logging.FieldStrategy, Value: "fallback"},
	).Debug("No directory match, using first-token fallback")
	return fallback
}

// closestKey finds the lookup key with the highest similarity ratio to the
// query. Keys are visited in sorted order and ties keep the first candidate,
// so the result is deterministic for a fixed directory snapshot.
func (r *Resolver) closestKey(query string) (string, float64, bool) {
	var (
		bestKey   string
		bestScore float64
		found     bool
	)

	queryRunes := []rune(query)
	for _, key := range r.dir.Keys() {
		score := levenshtein.RatioForStrings(queryRunes, []rune(key), levenshtein.DefaultOptions)
		if !found || score > bestScore {
			bestKey = key
			bestScore = score
			found = true
		}
	}

	return bestKey, bestScore, found
}
