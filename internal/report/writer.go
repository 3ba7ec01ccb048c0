// Package report renders a metrics record into a self-contained HTML
// artifact on disk. Artifacts are immutable after creation; each write uses
// a fresh uniqueness token so concurrent requests with identical parameters
// never overwrite one another.
package report

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/Gustitos/gustitosgo-backend/internal/logging"
	"github.com/Gustitos/gustitosgo-backend/internal/models"

	"github.com/google/uuid"
)

// Artifact references one generated report file.
type Artifact struct {
	// Filename is the base name of the generated file.
	Filename string
	// Path is the on-disk location of the artifact.
	Path string
	// URL is the serving path the HTTP layer exposes the artifact under.
	URL string
}

// Writer persists report artifacts into a single output directory.
type Writer struct {
	dir    string
	logger logging.Logger
}

// NewWriter creates a Writer targeting the given directory. The directory is
// created on first write if it does not exist.
func NewWriter(dir string, logger logging.Logger) *Writer {
	if logger == nil {
		logger = &logging.MockLogger{}
	}
	return &Writer{
		dir:    dir,
		logger: logger,
	}
}

var reportTemplate = template.Must(template.New("report").Parse(`<html>
<head><title>{{.Request.ChainName}} Report</title></head>
<body style="font-family:sans-serif;padding:40px;">
  <h1>GustitosGo Merchant Report</h1>
  <p><strong>Chain:</strong> {{.Request.ChainName}}</p>
  <p><strong>Resolved Chain:</strong> {{.Metrics.MatchedChain}}</p>
  {{if .Request.Organization}}<p><strong>Organization:</strong> {{.Request.Organization}}</p>{{end}}
  <p><strong>Date Range:</strong> {{.Request.StartDate}} to {{.Request.EndDate}}</p>
  <p><strong>Transactions:</strong> {{.Metrics.TransactionCount}}</p>
  <p><strong>Unique Users:</strong> {{.Metrics.UniqueUsers}}</p>
  <p><strong>Total GMV:</strong> ${{.TotalGMV}}</p>
  {{if .FeeOverride}}<p><strong>Fee Override:</strong> {{.FeeOverride}}%</p>{{end}}
  <hr>
  <p>Gustazos: {{if .Request.IncludeGustazos}}included{{else}}excluded{{end}}</p>
  <p>Gift Cards: {{if .Request.IncludeGiftcards}}included{{else}}excluded{{end}}</p>
  <p>Referrals: {{if .Request.IncludeReferrals}}included{{else}}excluded{{end}}</p>
</body>
</html>
`))

type templateData struct {
	Request     models.ReportRequest
	Metrics     models.Metrics
	TotalGMV    string
	FeeOverride string
}

// Write renders the metrics record into a new HTML artifact and returns its
// reference. This is the only pipeline stage whose failures surface to the
// caller: a failed disk write is reported, not absorbed.
func (w *Writer) Write(req models.ReportRequest, metrics models.Metrics) (Artifact, error) {
	if err := os.MkdirAll(w.dir, 0750); err != nil {
		return Artifact{}, fmt.Errorf("error creating report directory: %w", err)
	}

	filename := artifactName(metrics.MatchedChain, req.StartDate, req.EndDate)
	path := filepath.Join(w.dir, filename)

	data := templateData{
		Request:  req,
		Metrics:  metrics,
		TotalGMV: models.FormatMajor(metrics.TotalGross),
	}
	if req.FeeOverride != nil {
		data.FeeOverride = fmt.Sprintf("%.2f", *req.FeeOverride)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return Artifact{}, fmt.Errorf("error creating report file: %w", err)
	}

	if err := reportTemplate.Execute(file, data); err != nil {
		_ = file.Close()
		return Artifact{}, fmt.Errorf("error rendering report: %w", err)
	}
	if err := file.Close(); err != nil {
		return Artifact{}, fmt.Errorf("error writing report file: %w", err)
	}

	w.logger.WithFields(
		logging.Field{Key: logging.FieldReport, Value: filename},
		logging.Field{Key: logging.FieldChain, Value: metrics.MatchedChain},
	).Info("Report artifact written")

	return Artifact{
		Filename: filename,
		Path:     path,
		URL:      "/reports/" + filename,
	}, nil
}

// artifactName builds the deterministic prefix from the resolved chain and
// date range, plus a short uuid token for collision resistance.
func artifactName(chain, startDate, endDate string) string {
	token := uuid.New().String()[:8]
	return fmt.Sprintf("report_%s_%s_to_%s_%s.html",
		slug(chain), slug(startDate), slug(endDate), token)
}

// slug makes a string safe for use in a filename.
func slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "unknown"
	}
	return b.String()
}
