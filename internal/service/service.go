// Package service wires the pipeline together: it owns the directory and
// transaction snapshots, resolves the requested chain, aggregates metrics
// and writes the report artifact. Every call produces either a well-formed
// success record or a structured error value, never an unhandled fault.
package service

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"github.com/Gustitos/gustitosgo-backend/internal/aggregator"
	"github.com/Gustitos/gustitosgo-backend/internal/config"
	"github.com/Gustitos/gustitosgo-backend/internal/directory"
	"github.com/Gustitos/gustitosgo-backend/internal/logging"
	"github.com/Gustitos/gustitosgo-backend/internal/models"
	"github.com/Gustitos/gustitosgo-backend/internal/report"
	"github.com/Gustitos/gustitosgo-backend/internal/resolver"
	"github.com/Gustitos/gustitosgo-backend/internal/transactions"
)

// Service owns the loaded data snapshots and executes report generation.
// Snapshots are read-only after load; Reload swaps in fully-built
// replacements so in-flight requests never observe partial state.
type Service struct {
	cfg    *config.Config
	logger logging.Logger

	dirLoader *directory.Loader
	dir       atomic.Pointer[directory.LoadResult]
	store     *transactions.Store
	writer    *report.Writer
}

// New creates a Service from the application configuration and loads the
// initial snapshots. Load failures degrade to placeholder data and are
// logged, never fatal.
func New(cfg *config.Config, logger logging.Logger) *Service {
	if logger == nil {
		logger = logging.NewLogrusAdapterFromLogger(config.Logger)
	}

	s := &Service{
		cfg:    cfg,
		logger: logger,
		dirLoader: directory.NewLoader(
			cfg.Data.ChainsFile,
			cfg.Data.OverridesFile,
			cfg.Directory.ChainDerivation,
			logger,
		),
		store:  transactions.NewStore(cfg.Data.TransactionsFile, logger),
		writer: report.NewWriter(cfg.Report.Directory, logger),
	}

	s.Reload()
	return s
}

// Reload rebuilds the directory and transaction snapshots and swaps them in
// atomically. Requests already running keep the snapshots they hold.
func (s *Service) Reload() {
	result := s.dirLoader.Load()
	s.dir.Store(&result)
	s.store.Load()

	if result.Fallback {
		s.logger.WithField(logging.FieldReason, result.Reason).
			Warn("Serving reports from fallback chain directory")
	}
}

// Directory returns the current directory load result.
func (s *Service) Directory() directory.LoadResult {
	return *s.dir.Load()
}

// ReportDir returns the directory report artifacts are written to.
func (s *Service) ReportDir() string {
	return s.cfg.Report.Directory
}

// ResolveChain resolves a free-text chain query against the current
// directory snapshot.
func (s *Service) ResolveChain(query string) string {
	res := resolver.New(s.dir.Load().Directory, s.cfg.Resolver.FuzzyThreshold, s.logger)
	return res.Resolve(query)
}

// GenerateReport runs the full pipeline for one request. The returned result
// always carries either a report reference with its metrics or an error
// description; validation and artifact-write failures are the only error
// paths, everything else degrades internally.
func (s *Service) GenerateReport(ctx context.Context, req models.ReportRequest) models.ReportResult {
	start := time.Now()

	if errMsg := s.validate(req); errMsg != "" {
		return models.ReportResult{Success: false, Error: errMsg}
	}

	snap := s.dir.Load()
	res := resolver.New(snap.Directory, s.cfg.Resolver.FuzzyThreshold, s.logger)
	engine := aggregator.New(res, aggregator.Options{
		ChainMatchMode: s.cfg.Aggregation.ChainMatchMode,
	}, s.logger)

	resolvedChain := res.Resolve(req.ChainName)
	metrics := engine.Summarize(s.store.Snapshot(), resolvedChain,
		req.Organization, req.StartDate, req.EndDate)

	artifact, err := s.writer.Write(req, metrics)
	if err != nil {
		s.logger.WithError(err).WithField(logging.FieldChain, resolvedChain).
			Error("Failed to persist report artifact")
		return models.ReportResult{Success: false, Error: err.Error()}
	}

	s.logger.WithFields(
		logging.Field{Key: logging.FieldChain, Value: resolvedChain},
		logging.Field{Key: logging.FieldOrganization, Value: req.Organization},
		logging.Field{Key: logging.FieldReport, Value: artifact.Filename},
		logging.Field{Key: logging.FieldDuration, Value: time.Since(start).Milliseconds()},
	).Info("Report generated")

	return models.ReportResult{
		Success:   true,
		ReportURL: artifact.URL,
		Metrics:   &metrics,
	}
}

// validate checks the request parameters the pipeline cannot default.
func (s *Service) validate(req models.ReportRequest) string {
	if strings.TrimSpace(req.ChainName) == "" {
		return "chain_name is required"
	}
	if strings.TrimSpace(req.StartDate) == "" || strings.TrimSpace(req.EndDate) == "" {
		return "start_date and end_date are required"
	}
	if s.cfg.Aggregation.RequireOrganization && strings.TrimSpace(req.Organization) == "" {
		return "organization is required"
	}
	return ""
}
