package doctors

import (
	"context"

	"github.com/wolfman30/doctor-finder/internal/observability/metrics"
	"github.com/wolfman30/doctor-finder/pkg/logging"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var searchTracer = otel.Tracer("doctorfinder.internal.doctors.search")

// Searcher runs filtered, ranked lookups against a Store.
type Searcher struct {
	store   Store
	metrics *metrics.AssistantMetrics
	logger  *logging.Logger
}

// NewSearcher wires a Searcher. metrics may be nil.
func NewSearcher(store Store, m *metrics.AssistantMetrics, logger *logging.Logger) *Searcher {
	if store == nil {
		panic("doctors: store cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Searcher{store: store, metrics: m, logger: logger}
}

// Store exposes the underlying store for read-only listings.
func (s *Searcher) Store() Store {
	return s.store
}

// Search filters by specialty, city and fee in the store, applies the gender
// soft filter, ranks by Score and truncates to the limit. An empty result is
// not an error; only store failures are returned.
func (s *Searcher) Search(ctx context.Context, params SearchParams) ([]Doctor, error) {
	ctx, span := searchTracer.Start(ctx, "doctors.search")
	defer span.End()
	span.SetAttributes(
		attribute.String("doctors.specialty", params.Specialty),
		attribute.String("doctors.city", params.City),
		attribute.String("doctors.gender", params.Gender),
	)

	rows, err := s.store.Find(ctx, params.Filter())
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	rows = applyGender(rows, params.Gender)
	Rank(rows)

	limit := params.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if len(rows) > limit {
		rows = rows[:limit]
	}

	span.SetAttributes(attribute.Int("doctors.results", len(rows)))
	s.metrics.ObserveSearch(params.Specialty, len(rows))
	s.logger.Debug("doctor search", "specialty", params.Specialty, "city", params.City, "results", len(rows))
	return rows, nil
}
