// Package directory loads the canonical merchant-to-chain reference data and
// exposes it as an immutable lookup snapshot. Loading never fails: when the
// backing data is absent or malformed a deterministic placeholder directory
// is returned instead, flagged as a fallback so callers can tell degraded
// data from the real thing.
package directory

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/Gustitos/gustitosgo-backend/internal/common"
	"github.com/Gustitos/gustitosgo-backend/internal/config"
	"github.com/Gustitos/gustitosgo-backend/internal/logging"
	"github.com/Gustitos/gustitosgo-backend/internal/models"

	"gopkg.in/yaml.v3"
)

// Directory is an immutable snapshot of merchant-to-chain mappings keyed by
// normalized merchant name. It is safe for concurrent reads.
type Directory struct {
	entries map[string]string
	keys    []string
}

// New builds a Directory from a lookup-key-to-chain map. Keys are normalized
// and kept in sorted order so iteration is deterministic.
func New(entries map[string]string) *Directory {
	normalized := make(map[string]string, len(entries))
	for key, chain := range entries {
		normalized[NormalizeKey(key)] = chain
	}

	keys := make([]string, 0, len(normalized))
	for key := range normalized {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	return &Directory{
		entries: normalized,
		keys:    keys,
	}
}

// Lookup returns the canonical chain for a normalized lookup key.
func (d *Directory) Lookup(key string) (string, bool) {
	chain, ok := d.entries[key]
	return chain, ok
}

// Keys returns the lookup keys in sorted order.
func (d *Directory) Keys() []string {
	return d.keys
}

// Len returns the number of entries in the directory.
func (d *Directory) Len() int {
	return len(d.entries)
}

// NormalizeKey lowercases and trims a merchant name so it can serve as an
// exact-match lookup key.
func NormalizeKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// FirstToken returns the first whitespace-delimited token of a name,
// lowercased. An all-whitespace name yields "unknown" so derived identifiers
// are never empty.
func FirstToken(name string) string {
	fields := strings.Fields(strings.ToLower(name))
	if len(fields) == 0 {
		return "unknown"
	}
	return fields[0]
}

// LoadResult reports how a directory snapshot was obtained. Fallback is set
// when the reference data could not be loaded and the deterministic
// placeholder directory was substituted; Reason then explains why.
type LoadResult struct {
	Directory *Directory
	Fallback  bool
	Reason    string
}

// Loader reads the chain reference CSV and optional YAML overrides.
type Loader struct {
	ChainsFile    string
	OverridesFile string
	Derivation    string
	logger        logging.Logger
}

// NewLoader creates a Loader for the given files and derivation strategy
// (config.ChainDerivationFirstToken or config.ChainDerivationExplicitColumn).
func NewLoader(chainsFile, overridesFile, derivation string, logger logging.Logger) *Loader {
	if logger == nil {
		logger = logging.NewLogrusAdapterFromLogger(config.Logger)
	}
	return &Loader{
		ChainsFile:    chainsFile,
		OverridesFile: overridesFile,
		Derivation:    derivation,
		logger:        logger,
	}
}

// Load builds a directory snapshot from the reference CSV, merged with any
// YAML overrides. It never returns an error: load failures produce the
// placeholder directory with the failure reason recorded in the result.
func (l *Loader) Load() LoadResult {
	rows, err := common.ReadCSVFile[models.ChainEntry](l.ChainsFile)
	if err != nil {
		l.logger.WithError(err).WithField(logging.FieldFile, l.ChainsFile).
			Warn("Chain reference data unavailable, using placeholder directory")
		return LoadResult{
			Directory: Placeholder(),
			Fallback:  true,
			Reason:    fmt.Sprintf("chain reference load failed: %v", err),
		}
	}

	entries := make(map[string]string, len(rows))
	for _, row := range rows {
		name := strings.TrimSpace(row.Name)
		if name == "" {
			continue
		}
		// Duplicate keys resolve last-write-wins, matching the order of the
		// reference export.
		entries[NormalizeKey(name)] = l.deriveChain(row)
	}

	if len(entries) == 0 {
		l.logger.WithField(logging.FieldFile, l.ChainsFile).
			Warn("Chain reference data empty, using placeholder directory")
		return LoadResult{
			Directory: Placeholder(),
			Fallback:  true,
			Reason:    "chain reference contains no usable rows",
		}
	}

	l.mergeOverrides(entries)

	l.logger.WithFields(
		logging.Field{Key: logging.FieldFile, Value: l.ChainsFile},
		logging.Field{Key: logging.FieldCount, Value: len(entries)},
	).Info("Loaded chain directory")

	return LoadResult{Directory: New(entries)}
}

// deriveChain produces the canonical chain for one reference row according
// to the configured strategy.
func (l *Loader) deriveChain(row models.ChainEntry) string {
	if l.Derivation == config.ChainDerivationExplicitColumn {
		if chain := strings.TrimSpace(row.Chain); chain != "" {
			return strings.ToLower(chain)
		}
		// Rows without an explicit chain column fall back to the name token.
	}
	return FirstToken(row.Name)
}

// mergeOverrides applies merchant-to-chain overrides from the YAML file, if
// present. A missing file is not an error; a malformed one is logged and
// skipped.
func (l *Loader) mergeOverrides(entries map[string]string) {
	if l.OverridesFile == "" {
		return
	}

	data, err := os.ReadFile(l.OverridesFile)
	if err != nil {
		if !os.IsNotExist(err) {
			l.logger.WithError(err).WithField(logging.FieldFile, l.OverridesFile).
				Warn("Failed to read chain overrides file")
		}
		return
	}

	var overrides map[string]string
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		l.logger.WithError(err).WithField(logging.FieldFile, l.OverridesFile).
			Warn("Failed to parse chain overrides file")
		return
	}

	for merchant, chain := range overrides {
		chain = strings.ToLower(strings.TrimSpace(chain))
		if chain == "" {
			continue
		}
		entries[NormalizeKey(merchant)] = chain
	}

	l.logger.WithFields(
		logging.Field{Key: logging.FieldFile, Value: l.OverridesFile},
		logging.Field{Key: logging.FieldCount, Value: len(overrides)},
	).Debug("Merged chain overrides")
}

// Placeholder returns the deterministic minimal directory used when the
// reference data cannot be loaded. The entries are documented fallbacks that
// keep the resolver functional in degraded mode.
func Placeholder() *Directory {
	return New(map[string]string{
		"burger king":   "burger",
		"pizza hut":     "pizza",
		"starbucks":     "starbucks",
		"subway":        "subway",
		"wendys":        "wendys",
		"churchs":       "churchs",
		"kfc":           "kfc",
		"taco bell":     "taco",
		"dominos pizza": "dominos",
		"popeyes":       "popeyes",
	})
}
