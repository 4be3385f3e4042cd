package assistant

import (
	"context"
	"strings"
	"time"

	"github.com/wolfman30/doctor-finder/internal/doctors"
	"github.com/wolfman30/doctor-finder/internal/llm"
	"github.com/wolfman30/doctor-finder/internal/observability/metrics"
	"github.com/wolfman30/doctor-finder/pkg/logging"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var dispatchTracer = otel.Tracer("doctorfinder.internal.assistant.dispatch")

// Config tunes the dispatcher. Zero values fall back to defaults.
type Config struct {
	MaxDoctors      int
	MaxHistoryTurns int
	BudgetMaxFee    int
	LLMTimeout      time.Duration
	MaxTokens       int32
	Temperature     float32
}

func (c Config) withDefaults() Config {
	if c.MaxDoctors <= 0 {
		c.MaxDoctors = doctors.DefaultLimit
	}
	if c.MaxHistoryTurns < 0 {
		c.MaxHistoryTurns = 0
	}
	if c.BudgetMaxFee <= 0 {
		c.BudgetMaxFee = 3000
	}
	if c.LLMTimeout <= 0 {
		c.LLMTimeout = 30 * time.Second
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = 1024
	}
	if c.Temperature == 0 {
		c.Temperature = 0.7
	}
	return c
}

// Reply is the outcome of one user message.
type Reply struct {
	Text      string           `json:"reply"`
	Intent    Intent           `json:"intent"`
	Specialty string           `json:"specialty,omitempty"`
	City      string           `json:"city,omitempty"`
	Emergency bool             `json:"emergency"`
	Doctors   []doctors.Doctor `json:"doctors"`
	// Generated is false when the text was produced locally.
	Generated bool `json:"generated"`
}

// Dispatcher runs the emergency check, classification, search and phrasing
// for each user message. It is safe for concurrent use across sessions.
type Dispatcher struct {
	emergency  *EmergencyDetector
	classifier *Classifier
	searcher   *doctors.Searcher
	llm        llm.Client
	cfg        Config
	metrics    *metrics.AssistantMetrics
	logger     *logging.Logger
}

// NewDispatcher wires a Dispatcher. client may be nil, in which case every
// reply is phrased locally.
func NewDispatcher(searcher *doctors.Searcher, client llm.Client, cfg Config, m *metrics.AssistantMetrics, logger *logging.Logger) *Dispatcher {
	if searcher == nil {
		panic("assistant: searcher cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Dispatcher{
		emergency:  NewEmergencyDetector(),
		classifier: NewClassifier(),
		searcher:   searcher,
		llm:        client,
		cfg:        cfg.withDefaults(),
		metrics:    m,
		logger:     logger,
	}
}

// HandleUserMessage answers one utterance and records the exchange in the
// session. It always returns a usable reply.
func (d *Dispatcher) HandleUserMessage(ctx context.Context, session *Session, text string) Reply {
	ctx, span := dispatchTracer.Start(ctx, "assistant.handle_message")
	defer span.End()

	if session == nil {
		session = NewSession("")
	}
	span.SetAttributes(attribute.String("assistant.session_id", session.ID))

	reply := d.dispatch(ctx, session, text)
	if reply.Doctors == nil {
		reply.Doctors = []doctors.Doctor{}
	}

	session.Append(llm.RoleUser, text)
	session.Append(llm.RoleAssistant, reply.Text)

	span.SetAttributes(
		attribute.String("assistant.intent", string(reply.Intent)),
		attribute.Int("assistant.doctors", len(reply.Doctors)),
		attribute.Bool("assistant.generated", reply.Generated),
	)
	return reply
}

func (d *Dispatcher) dispatch(ctx context.Context, session *Session, text string) Reply {
	if phrase, ok := d.emergency.Match(text); ok {
		d.metrics.ObserveEmergency()
		d.metrics.ObserveMessage(string(IntentEmergency))
		d.logger.Warn("emergency phrase detected", "session_id", session.ID, "phrase", phrase)
		return Reply{Text: emergencyMessage, Intent: IntentEmergency, Emergency: true}
	}

	intent := d.classifier.Classify(text)
	d.metrics.ObserveMessage(string(intent.Intent))
	d.logger.Debug("classified message", "session_id", session.ID, "intent", intent.Intent, "specialty", intent.Specialty, "city", intent.City)

	reply := Reply{Intent: intent.Intent, Specialty: intent.Specialty, City: intent.City}

	switch intent.Intent {
	case IntentUnsupportedCity:
		reply.Text, reply.Generated = d.phrase(ctx, session, unsupportedCityPrompt(text), unsupportedCityReply)
		return reply
	case IntentGeneralQuery:
		reply.Text, reply.Generated = d.phrase(ctx, session, generalPrompt(text), clarificationReply)
		return reply
	}

	rows, err := d.searcher.Search(ctx, d.searchParams(intent))
	if err != nil {
		d.logger.Error("doctor search failed", "session_id", session.ID, "error", err)
		rows = nil
	}
	reply.Doctors = rows

	if len(rows) == 0 {
		answer, generated := d.phrase(ctx, session, noDataPrompt(text, intent), noDataReply(intent))
		reply.Text, reply.Generated = ensureNoDataMessage(answer), generated
		return reply
	}

	reply.Text, reply.Generated = d.phrase(ctx, session, doctorsPrompt(text, rows), listingReply(intent, rows))
	return reply
}

func (d *Dispatcher) searchParams(intent IntentResult) doctors.SearchParams {
	params := doctors.SearchParams{
		Specialty: intent.Specialty,
		City:      intent.City,
		Gender:    intent.Filters.Gender,
		Limit:     d.cfg.MaxDoctors,
	}
	if intent.Filters.BudgetConscious {
		fee := d.cfg.BudgetMaxFee
		params.MaxFee = &fee
	}
	return params
}

// phrase asks the LLM to answer prompt in the context of the session and
// returns fallback when the call fails or yields nothing.
func (d *Dispatcher) phrase(ctx context.Context, session *Session, prompt, fallback string) (string, bool) {
	if d.llm == nil {
		return fallback, false
	}

	ctx, span := dispatchTracer.Start(ctx, "assistant.llm_complete")
	defer span.End()

	callCtx, cancel := context.WithTimeout(ctx, d.cfg.LLMTimeout)
	defer cancel()

	messages := append(session.Recent(d.cfg.MaxHistoryTurns), llm.Message{Role: llm.RoleUser, Content: prompt})
	start := time.Now()
	resp, err := d.llm.Complete(callCtx, llm.Request{
		System:      []string{systemInstruction},
		Messages:    messages,
		MaxTokens:   d.cfg.MaxTokens,
		Temperature: d.cfg.Temperature,
	})
	latency := time.Since(start)

	provider := resp.Provider
	if provider == "" {
		provider = "unknown"
	}
	span.SetAttributes(
		attribute.String("llm.provider", provider),
		attribute.Int("llm.history_messages", len(messages)-1),
		attribute.Float64("llm.latency_ms", float64(latency)/float64(time.Millisecond)),
	)

	if err != nil {
		span.RecordError(err)
		d.metrics.ObserveLLMCall(provider, "error", latency.Seconds())
		d.logger.Warn("LLM completion failed, using local reply", "session_id", session.ID, "error", err, "latency_ms", latency.Milliseconds())
		return fallback, false
	}
	text := strings.TrimSpace(resp.Text)
	if text == "" {
		d.metrics.ObserveLLMCall(provider, "empty", latency.Seconds())
		d.logger.Warn("LLM returned empty reply, using local reply", "session_id", session.ID)
		return fallback, false
	}
	d.metrics.ObserveLLMCall(provider, "success", latency.Seconds())
	return text, true
}
