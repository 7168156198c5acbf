package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/fareyxcel-dev/arrivalive-sub001/internal/domain/entity"
	"github.com/fareyxcel-dev/arrivalive-sub001/internal/domain/repository"
	"github.com/fareyxcel-dev/arrivalive-sub001/pkg/logger"
	"github.com/fareyxcel-dev/arrivalive-sub001/pkg/metrics"
	"github.com/fareyxcel-dev/arrivalive-sub001/pkg/utils"

	"github.com/google/uuid"
)

// PipelineState tracks refresh progress. DISPATCHING never moves back
// to an earlier state; FALLBACK is terminal.
type PipelineState string

const (
	StateFetching    PipelineState = "FETCHING"
	StateParsing     PipelineState = "PARSING"
	StateDiffing     PipelineState = "DIFFING"
	StatePersisting  PipelineState = "PERSISTING"
	StateDispatching PipelineState = "DISPATCHING"
	StateDone        PipelineState = "DONE"
	StateFallback    PipelineState = "FALLBACK"
)

// Response source labels.
const (
	SourceLive = "live"
	SourceMock = "mock"
)

// ErrEmptyBoard reports a document that yielded zero accepted rows,
// treated the same as a fetch failure: evidence the source format
// changed or is temporarily broken.
var ErrEmptyBoard = errors.New("no flights parsed from board")

// BoardFetcher retrieves the raw arrivals document.
type BoardFetcher interface {
	Fetch(ctx context.Context) (string, error)
}

// RefreshResult is what the trigger endpoint returns. Consumers always
// receive a well-formed flights payload, even in total failure.
type RefreshResult struct {
	Flights       []*entity.FlightRecord `json:"flights"`
	Source        string                 `json:"source"`
	StatusChanges int                    `json:"statusChanges"`
	Error         string                 `json:"error,omitempty"`

	State  PipelineState   `json:"-"`
	Report *DispatchReport `json:"-"`
}

// Pipeline runs one ingestion cycle: fetch, parse, dedup, diff,
// persist, dispatch. One logical unit of work per invocation; all
// cross-invocation state lives in the store.
type Pipeline struct {
	fetcher    BoardFetcher
	parser     *utils.BoardParser
	detector   *ChangeDetector
	flightRepo repository.FlightRecordRepository
	dispatcher *Dispatcher
	metrics    *metrics.Metrics
	logger     logger.Logger
}

// NewPipeline creates a new ingestion pipeline. metrics may be nil.
func NewPipeline(
	fetcher BoardFetcher,
	parser *utils.BoardParser,
	detector *ChangeDetector,
	flightRepo repository.FlightRecordRepository,
	dispatcher *Dispatcher,
	m *metrics.Metrics,
	logger logger.Logger,
) *Pipeline {
	return &Pipeline{
		fetcher:    fetcher,
		parser:     parser,
		detector:   detector,
		flightRepo: flightRepo,
		dispatcher: dispatcher,
		metrics:    m,
		logger:     logger,
	}
}

// Refresh runs the full pipeline. Fetch and parse failures recover via
// the synthetic dataset; persistence and dispatch failures are logged
// and never abort the run.
func (p *Pipeline) Refresh(ctx context.Context) *RefreshResult {
	start := time.Now()
	log := p.logger.With("runId", uuid.NewString())

	state := StateFetching
	log.Info("Refreshing arrivals board", "state", state)
	doc, err := p.fetcher.Fetch(ctx)
	if err != nil {
		if p.metrics != nil {
			p.metrics.BoardFetchFailures.Inc()
		}
		log.Warn("Board fetch failed, serving fallback", "state", StateFallback, "error", err)
		return p.fallback(err)
	}

	state = StateParsing
	records := p.parser.Parse(doc)
	if len(records) == 0 {
		log.Warn("Board yielded no flights, serving fallback", "state", StateFallback)
		return p.fallback(ErrEmptyBoard)
	}
	records = utils.Deduplicate(records)
	if p.metrics != nil {
		p.metrics.FlightsParsed.Add(float64(len(records)))
	}

	// The diff must read state captured before this batch's upsert,
	// otherwise every flight would appear unchanged.
	state = StateDiffing
	log.Info("Diffing against stored board", "state", state, "flights", len(records))
	changes, err := p.detector.Detect(ctx, records)
	if err != nil {
		// Without prior state a change cannot be told apart from a
		// first sighting, so nothing is dispatched this run.
		log.Error("Change detection failed", "error", err)
		changes = nil
	}
	if p.metrics != nil {
		p.metrics.StatusChanges.Add(float64(len(changes)))
	}

	state = StatePersisting
	for _, record := range records {
		if err := p.flightRepo.Upsert(ctx, record); err != nil {
			// The decision to notify was made from data already read;
			// the next invocation retries the same idempotent upsert.
			log.Error("Failed to upsert flight",
				"flight", record.FlightID,
				"date", record.FlightDate,
				"error", err)
		}
	}

	state = StateDispatching
	var report *DispatchReport
	if len(changes) > 0 {
		log.Info("Dispatching status changes", "state", state, "changes", len(changes))
		report = p.dispatcher.Dispatch(ctx, changes)
		log.Info("Dispatch completed",
			"sent", report.Sent,
			"failed", report.Failed,
			"skippedChannels", len(report.SkippedChannels))
	}

	state = StateDone
	if p.metrics != nil {
		p.metrics.RefreshDuration.Observe(time.Since(start).Seconds())
	}
	log.Info("Refresh completed",
		"state", state,
		"flights", len(records),
		"statusChanges", len(changes),
		"elapsed", time.Since(start).String())

	return &RefreshResult{
		Flights:       records,
		Source:        SourceLive,
		StatusChanges: len(changes),
		State:         StateDone,
		Report:        report,
	}
}

func (p *Pipeline) fallback(cause error) *RefreshResult {
	return &RefreshResult{
		Flights:       FallbackFlights(time.Now()),
		Source:        SourceMock,
		StatusChanges: 0,
		Error:         cause.Error(),
		State:         StateFallback,
	}
}
