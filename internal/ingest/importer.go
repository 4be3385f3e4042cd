package ingest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/wolfman30/doctor-finder/internal/doctors"
	"github.com/wolfman30/doctor-finder/internal/observability/metrics"
	"github.com/wolfman30/doctor-finder/pkg/logging"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var importTracer = otel.Tracer("doctorfinder.internal.ingest")

// FileReport describes the outcome for one source file.
type FileReport struct {
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
	City      string `json:"city"`
	Rows      int    `json:"rows"`
	Err       error  `json:"-"`
	Error     string `json:"error,omitempty"`
}

// Report summarizes an ingestion run.
type Report struct {
	Source   string        `json:"source"`
	Inserted int           `json:"inserted"`
	Files    []FileReport  `json:"files"`
	Duration time.Duration `json:"duration_ns"`
}

// Failed returns the number of files that could not be read.
func (r Report) Failed() int {
	n := 0
	for _, f := range r.Files {
		if f.Err != nil {
			n++
		}
	}
	return n
}

// Importer loads listings from a Source and replaces the doctor store.
type Importer struct {
	store   doctors.Store
	metrics *metrics.AssistantMetrics
	logger  *logging.Logger

	mu sync.Mutex
}

// NewImporter wires an Importer. metrics may be nil.
func NewImporter(store doctors.Store, m *metrics.AssistantMetrics, logger *logging.Logger) *Importer {
	if store == nil {
		panic("ingest: store cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Importer{store: store, metrics: m, logger: logger}
}

// Import reads every candidate file and swaps the store contents in one
// step. Files that fail to read are logged and skipped. Runs are serialized.
func (i *Importer) Import(ctx context.Context, src Source) (Report, error) {
	if src == nil {
		return Report{}, ErrNoSource
	}
	i.mu.Lock()
	defer i.mu.Unlock()

	ctx, span := importTracer.Start(ctx, "ingest.import")
	defer span.End()

	started := time.Now()
	report := Report{Source: src.Describe()}
	span.SetAttributes(attribute.String("ingest.source", report.Source))

	names, err := src.List(ctx)
	if err != nil {
		span.RecordError(err)
		return report, err
	}
	if len(names) == 0 {
		i.logger.Warn("no doctor listings found", "source", report.Source)
	}

	var rows []doctors.Doctor
	for _, name := range names {
		fr := FileReport{
			Name:      name,
			Specialty: SpecialtyFromFilename(name),
			City:      CityFromFilename(name),
		}
		parsed, err := i.readFile(ctx, src, name, fr.Specialty, fr.City)
		if err != nil {
			fr.Err = err
			fr.Error = err.Error()
			i.metrics.ObserveIngestFile("error")
			i.logger.Error("failed to import listing", "file", name, "error", err)
		} else {
			fr.Rows = len(parsed)
			rows = append(rows, parsed...)
			i.metrics.ObserveIngestFile("ok")
			i.logger.Info("read listing", "file", name, "specialty", fr.Specialty, "city", fr.City, "rows", fr.Rows)
		}
		report.Files = append(report.Files, fr)
	}

	inserted, err := i.store.Replace(ctx, rows)
	if err != nil {
		span.RecordError(err)
		return report, fmt.Errorf("ingest: replace store: %w", err)
	}
	report.Inserted = inserted
	report.Duration = time.Since(started)

	i.metrics.SetIngestedRows(inserted)
	span.SetAttributes(
		attribute.Int("ingest.files", len(report.Files)),
		attribute.Int("ingest.inserted", inserted),
	)
	i.logger.Info("doctor import complete", "source", report.Source, "files", len(report.Files), "failed", report.Failed(), "inserted", inserted)
	return report, nil
}

// readFile parses one listing and checks every row against the store's
// rules, so a bad file is rejected on its own instead of failing Replace.
func (i *Importer) readFile(ctx context.Context, src Source, name, specialty, city string) ([]doctors.Doctor, error) {
	if specialty == "" {
		return nil, fmt.Errorf("%s: %w", name, ErrMissingSpecialty)
	}
	rc, err := src.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	rows, err := ReadDoctors(rc, delimiterFor(name), specialty, city)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	for n, d := range rows {
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("%s: row %d: %w", name, n+1, err)
		}
	}
	return rows, nil
}
