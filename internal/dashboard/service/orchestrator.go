package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"airline-sentiment-dashboard/internal/dashboard/dto"
	"airline-sentiment-dashboard/internal/dashboard/repository"
	"airline-sentiment-dashboard/internal/entity"
	"airline-sentiment-dashboard/internal/metrics"
	"airline-sentiment-dashboard/pkg/common"
	"airline-sentiment-dashboard/pkg/logger"
	"airline-sentiment-dashboard/pkg/utils"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Orchestrator keeps the published ViewModel in step with the FilterSelection.
type Orchestrator interface {
	// Start runs the initial refresh. Later cycles inherit ctx.
	Start(ctx context.Context)
	// Reload re-issues the query set of the current refresh path.
	Reload()
	// Current returns the last published ViewModel. Callers must not modify it.
	Current() dto.ViewModel
	// Subscribe registers fn to be called synchronously on every publish.
	// fn must not block or call back into the orchestrator or its FilterState.
	Subscribe(fn func(dto.ViewModel)) (unsubscribe func())
	// Filters returns the FilterState driving this orchestrator.
	Filters() *FilterState
	// Wait blocks until every started cycle has completed.
	Wait()
}

// Options tunes an orchestrator.
type Options struct {
	RecordLimit  int
	CycleTimeout time.Duration
}

// state is the raw data behind the published ViewModel. It is replaced wholesale on
// every publish; fields are never mutated in place.
type state struct {
	cycle     uint64
	loading   bool
	filter    entity.FilterSelection
	overview  *entity.Overview
	airlines  []entity.AirlineStats
	reasons   []entity.NegativeReason
	tweets    []entity.Tweet
	catalog   []string
	lastError *dto.ErrorNotice
}

type fullResult struct {
	overview *entity.Overview
	airlines []entity.AirlineStats
	reasons  []entity.NegativeReason
	tweets   []entity.Tweet
	catalog  []string
}

type orchestrator struct {
	repo         repository.SentimentRepository
	filters      *FilterState
	logger       *logger.Logger
	recordLimit  int
	cycleTimeout time.Duration

	mu            sync.Mutex
	baseCtx       context.Context
	lastCycle     uint64
	lastFullCycle uint64
	state         state
	current       dto.ViewModel
	subscribers   map[int]func(dto.ViewModel)
	nextSubID     int

	inflight sync.WaitGroup
}

// NewOrchestrator wires an orchestrator to filters. Every filter change from now on
// triggers the matching refresh path.
func NewOrchestrator(repo repository.SentimentRepository, filters *FilterState, log *logger.Logger, opts Options) Orchestrator {
	if opts.RecordLimit <= 0 {
		opts.RecordLimit = common.DefaultRecordLimit
	}
	o := &orchestrator{
		repo:         repo,
		filters:      filters,
		logger:       log,
		recordLimit:  opts.RecordLimit,
		cycleTimeout: opts.CycleTimeout,
		baseCtx:      context.Background(),
		subscribers:  make(map[int]func(dto.ViewModel)),
	}
	o.current = BuildViewModel(ViewModelInput{})
	filters.OnChange(o.onSelectionChanged)
	return o
}

func (o *orchestrator) Start(ctx context.Context) {
	o.mu.Lock()
	o.baseCtx = ctx
	o.mu.Unlock()

	o.logger.Info("Starting dashboard orchestrator", logger.IntField("record_limit", o.recordLimit))
	o.Reload()
}

func (o *orchestrator) Reload() {
	o.filters.view(func(selection entity.FilterSelection) {
		o.dispatch(selection)
	})
}

func (o *orchestrator) Current() dto.ViewModel {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.current
}

func (o *orchestrator) Subscribe(fn func(dto.ViewModel)) func() {
	o.mu.Lock()
	defer o.mu.Unlock()

	id := o.nextSubID
	o.nextSubID++
	o.subscribers[id] = fn
	return func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		delete(o.subscribers, id)
	}
}

func (o *orchestrator) Filters() *FilterState {
	return o.filters
}

func (o *orchestrator) Wait() {
	o.inflight.Wait()
}

// onSelectionChanged applies the transition table: unchanged selections are a no-op,
// an unfiltered selection gets a full refresh, anything else a records-only refresh.
func (o *orchestrator) onSelectionChanged(prev, next entity.FilterSelection) {
	if prev == next {
		o.logger.Debug("Filter selection unchanged, skipping refresh",
			logger.StringField("airline", next.Airline),
			logger.StringField("sentiment", string(next.Sentiment)))
		return
	}
	o.dispatch(next)
}

func (o *orchestrator) dispatch(selection entity.FilterSelection) {
	full := selection.Unfiltered()

	o.mu.Lock()
	o.lastCycle++
	id := o.lastCycle
	if full {
		o.lastFullCycle = id
		next := o.state
		next.loading = true
		o.state = next
		o.publishLocked()
	}
	ctx := o.baseCtx
	o.inflight.Add(1)
	o.mu.Unlock()

	ctx = logger.WithCorrelationID(ctx, uuid.NewString())
	utils.GoSafe(func() {
		defer o.inflight.Done()
		if full {
			o.runFull(ctx, id)
			return
		}
		o.runFiltered(ctx, id, selection)
	})
}

func (o *orchestrator) cycleContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if o.cycleTimeout > 0 {
		return context.WithTimeout(ctx, o.cycleTimeout)
	}
	return context.WithCancel(ctx)
}

func (o *orchestrator) runFull(ctx context.Context, id uint64) {
	ctx, cancel := o.cycleContext(ctx)
	defer cancel()

	o.logger.InfoContext(ctx, "Starting full refresh", logger.Uint64Field("cycle", id))

	var res fullResult
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		res.overview, err = o.repo.Overview(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		res.airlines, err = o.repo.AirlineStats(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		res.reasons, err = o.repo.NegativeReasons(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		res.tweets, err = o.repo.Tweets(gctx, entity.TweetQuery{Limit: o.recordLimit})
		return err
	})
	g.Go(func() error {
		var err error
		res.catalog, err = o.repo.AirlineCatalog(gctx)
		return err
	})
	err := g.Wait()

	o.completeFull(ctx, id, res, err)
}

func (o *orchestrator) runFiltered(ctx context.Context, id uint64, selection entity.FilterSelection) {
	ctx, cancel := o.cycleContext(ctx)
	defer cancel()

	o.logger.InfoContext(ctx, "Starting filtered refresh",
		logger.Uint64Field("cycle", id),
		logger.StringField("airline", selection.Airline),
		logger.StringField("sentiment", string(selection.Sentiment)))

	tweets, err := o.repo.Tweets(ctx, selection.TweetQuery(o.recordLimit))
	o.completeFiltered(ctx, id, selection, tweets, err)
}

func (o *orchestrator) completeFull(ctx context.Context, id uint64, res fullResult, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if id != o.lastFullCycle {
		metrics.FetchCycles.WithLabelValues(common.PathFull, metrics.OutcomeDiscarded).Inc()
		o.logger.InfoContext(ctx, "Discarding superseded full refresh",
			logger.Uint64Field("cycle", id), logger.Uint64Field("latest_full_cycle", o.lastFullCycle))
		return
	}

	next := o.state
	next.loading = false

	if err != nil {
		metrics.FetchCycles.WithLabelValues(common.PathFull, metrics.OutcomeFailed).Inc()
		o.logger.ErrorContext(ctx, "Full refresh failed", logger.Uint64Field("cycle", id), logger.ErrorField(err))
		next.lastError = newErrorNotice(id, err)
		o.state = next
		o.publishLocked()
		return
	}

	o.checkAggregates(ctx, id, res)

	next.overview = res.overview
	next.airlines = res.airlines
	next.reasons = res.reasons
	next.catalog = res.catalog
	// A newer filtered cycle owns the feed; keep only the aggregates.
	if id == o.lastCycle {
		next.tweets = res.tweets
		next.filter = entity.FilterSelection{}
	}
	if id > next.cycle {
		next.cycle = id
	}
	next.lastError = nil
	o.state = next
	o.publishLocked()

	metrics.FetchCycles.WithLabelValues(common.PathFull, metrics.OutcomePublished).Inc()
	o.logger.InfoContext(ctx, "Full refresh published", logger.Uint64Field("cycle", id), logger.IntField("tweets", len(res.tweets)))
}

func (o *orchestrator) completeFiltered(ctx context.Context, id uint64, selection entity.FilterSelection, tweets []entity.Tweet, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if id != o.lastCycle {
		metrics.FetchCycles.WithLabelValues(common.PathFiltered, metrics.OutcomeDiscarded).Inc()
		o.logger.InfoContext(ctx, "Discarding superseded filtered refresh",
			logger.Uint64Field("cycle", id), logger.Uint64Field("latest_cycle", o.lastCycle))
		return
	}

	next := o.state
	if err != nil {
		metrics.FetchCycles.WithLabelValues(common.PathFiltered, metrics.OutcomeFailed).Inc()
		o.logger.ErrorContext(ctx, "Filtered refresh failed", logger.Uint64Field("cycle", id), logger.ErrorField(err))
		next.lastError = newErrorNotice(id, err)
		o.state = next
		o.publishLocked()
		return
	}

	next.tweets = tweets
	next.filter = selection
	if id > next.cycle {
		next.cycle = id
	}
	next.lastError = nil
	o.state = next
	o.publishLocked()

	metrics.FetchCycles.WithLabelValues(common.PathFiltered, metrics.OutcomePublished).Inc()
	o.logger.InfoContext(ctx, "Filtered refresh published", logger.Uint64Field("cycle", id), logger.IntField("tweets", len(tweets)))
}

// checkAggregates logs backend invariant violations. They are not fatal.
func (o *orchestrator) checkAggregates(ctx context.Context, id uint64, res fullResult) {
	if res.overview != nil {
		if err := res.overview.Validate(); err != nil {
			o.logger.WarnContext(ctx, "Inconsistent overview from backend", logger.Uint64Field("cycle", id), logger.ErrorField(err))
		}
	}
	for _, a := range res.airlines {
		if err := a.Validate(); err != nil {
			o.logger.WarnContext(ctx, "Inconsistent airline stats from backend", logger.Uint64Field("cycle", id), logger.ErrorField(err))
		}
	}
}

func (o *orchestrator) publishLocked() {
	s := o.state
	o.current = BuildViewModel(ViewModelInput{
		Cycle:           s.cycle,
		Loading:         s.loading,
		Filter:          s.filter,
		Overview:        s.overview,
		Airlines:        s.airlines,
		NegativeReasons: s.reasons,
		Tweets:          s.tweets,
		Catalog:         s.catalog,
		LastError:       s.lastError,
	})

	if s.loading {
		metrics.Loading.Set(1)
	} else {
		metrics.Loading.Set(0)
	}

	for _, fn := range o.subscribers {
		fn(o.current)
	}
}

func newErrorNotice(id uint64, err error) *dto.ErrorNotice {
	notice := &dto.ErrorNotice{
		Cycle:   id,
		Message: err.Error(),
		At:      time.Now(),
	}
	var failure *repository.FetchFailure
	if errors.As(err, &failure) {
		notice.Endpoint = failure.Endpoint
	}
	return notice
}
