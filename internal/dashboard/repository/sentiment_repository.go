package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"airline-sentiment-dashboard/internal/dashboard/config"
	"airline-sentiment-dashboard/internal/dashboard/dto"
	"airline-sentiment-dashboard/internal/entity"
	"airline-sentiment-dashboard/internal/metrics"
	"airline-sentiment-dashboard/pkg/common"
	"airline-sentiment-dashboard/pkg/logger"
	"airline-sentiment-dashboard/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ErrUnexpectedStatus is wrapped by a FetchFailure when the backend answers with a non-2xx status.
var ErrUnexpectedStatus = errors.New("unexpected status code")

// FetchFailure is the only error kind returned by the repository.
type FetchFailure struct {
	Endpoint string
	Cause    error
}

func (f *FetchFailure) Error() string {
	return fmt.Sprintf("fetch %s: %v", f.Endpoint, f.Cause)
}

func (f *FetchFailure) Unwrap() error {
	return f.Cause
}

// SentimentRepository queries the read-only sentiment aggregation API.
// Each call is a single attempt; nothing is cached.
type SentimentRepository interface {
	Overview(ctx context.Context) (*entity.Overview, error)
	AirlineStats(ctx context.Context) ([]entity.AirlineStats, error)
	NegativeReasons(ctx context.Context) ([]entity.NegativeReason, error)
	Tweets(ctx context.Context, q entity.TweetQuery) ([]entity.Tweet, error)
	AirlineCatalog(ctx context.Context) ([]string, error)
}

type sentimentRepository struct {
	baseURL        string
	log            *logger.Logger
	httpClient     *http.Client
	requestLimiter *rate.Limiter
}

// requestBurst lets a full refresh go out at once.
const requestBurst = 5

func NewSentimentRepository(cfg *config.Config, log *logger.Logger) SentimentRepository {
	limiter := rate.NewLimiter(rate.Inf, requestBurst)
	if cfg.Backend.MaxRequestPerMinute > 0 {
		perRequest := time.Minute / time.Duration(cfg.Backend.MaxRequestPerMinute)
		limiter = rate.NewLimiter(rate.Every(perRequest), requestBurst)
	}
	timeout := cfg.Backend.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &sentimentRepository{
		baseURL: strings.TrimRight(cfg.Backend.BaseURL, "/"),
		log:     log,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		requestLimiter: limiter,
	}
}

func (r *sentimentRepository) Overview(ctx context.Context) (*entity.Overview, error) {
	var resp dto.OverviewResponse
	if err := r.query(ctx, common.EndpointOverview, nil, &resp); err != nil {
		return nil, err
	}
	return &entity.Overview{
		Total:              resp.TotalTweets,
		Positive:           resp.Positive,
		Negative:           resp.Negative,
		Neutral:            resp.Neutral,
		PositivePercentage: resp.PositivePercentage,
		NegativePercentage: resp.NegativePercentage,
		NeutralPercentage:  resp.NeutralPercentage,
	}, nil
}

func (r *sentimentRepository) AirlineStats(ctx context.Context) ([]entity.AirlineStats, error) {
	var resp []dto.AirlineSentimentResponse
	if err := r.query(ctx, common.EndpointAirlineStats, nil, &resp); err != nil {
		return nil, err
	}
	stats := make([]entity.AirlineStats, 0, len(resp))
	for _, a := range resp {
		stats = append(stats, entity.AirlineStats{
			Airline:        a.Airline,
			TotalTweets:    a.TotalTweets,
			Positive:       a.Positive,
			Negative:       a.Negative,
			Neutral:        a.Neutral,
			SentimentScore: a.SentimentScore,
		})
	}
	return stats, nil
}

func (r *sentimentRepository) NegativeReasons(ctx context.Context) ([]entity.NegativeReason, error) {
	var resp []dto.NegativeReasonResponse
	if err := r.query(ctx, common.EndpointNegativeReasons, nil, &resp); err != nil {
		return nil, err
	}
	reasons := make([]entity.NegativeReason, 0, len(resp))
	for _, nr := range resp {
		reasons = append(reasons, entity.NegativeReason{
			Reason:     nr.Reason,
			Count:      nr.Count,
			Percentage: nr.Percentage,
		})
	}
	return reasons, nil
}

func (r *sentimentRepository) Tweets(ctx context.Context, q entity.TweetQuery) ([]entity.Tweet, error) {
	params := url.Values{}
	if q.Airline != "" {
		params.Set("airline", q.Airline)
	}
	if q.Sentiment != "" {
		params.Set("sentiment", string(q.Sentiment))
	}
	limit := q.Limit
	if limit <= 0 {
		limit = common.DefaultRecordLimit
	}
	params.Set("limit", strconv.Itoa(limit))

	var resp []dto.TweetResponse
	if err := r.query(ctx, common.EndpointTweets, params, &resp); err != nil {
		return nil, err
	}
	tweets := make([]entity.Tweet, 0, len(resp))
	for _, t := range resp {
		tweets = append(tweets, mapTweet(t))
	}
	return tweets, nil
}

func (r *sentimentRepository) AirlineCatalog(ctx context.Context) ([]string, error) {
	var resp dto.AirlineCatalogResponse
	if err := r.query(ctx, common.EndpointAirlineCatalog, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Airlines == nil {
		return []string{}, nil
	}
	return resp.Airlines, nil
}

func mapTweet(t dto.TweetResponse) entity.Tweet {
	tweet := entity.Tweet{
		ID:         strconv.FormatInt(t.TweetID, 10),
		Airline:    t.Airline,
		Sentiment:  entity.Sentiment(strings.ToLower(t.Sentiment)),
		Text:       t.Text,
		CreatedRaw: t.Created,
		Confidence: t.Confidence,
	}
	if created, ok := utils.ParseTimestamp(t.Created); ok {
		tweet.Created = created
	}
	if t.Location != nil {
		tweet.Location = *t.Location
	}
	if t.NegativeReason != nil {
		tweet.NegativeReason = *t.NegativeReason
	}
	return tweet
}

// query performs one GET against the sentiment API and decodes the JSON body into out.
func (r *sentimentRepository) query(ctx context.Context, endpoint string, params url.Values, out interface{}) (err error) {
	start := time.Now()
	target := r.baseURL + common.SentimentAPIPrefix + endpoint
	if len(params) > 0 {
		target += "?" + params.Encode()
	}
	fields := []zap.Field{
		zap.String("endpoint", endpoint),
		zap.String("url", target),
	}

	defer func() {
		metrics.QueryDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
		if err != nil {
			metrics.QueryFailures.WithLabelValues(endpoint).Inc()
			r.log.ErrorContext(ctx, "Sentiment API query failed", append(fields, zap.Error(err))...)
			err = &FetchFailure{Endpoint: endpoint, Cause: err}
			return
		}
		r.log.DebugContext(ctx, "Sentiment API query completed", append(fields, zap.Duration("elapsed", time.Since(start)))...)
	}()

	if err := r.requestLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("wait for request limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: %d %s", ErrUnexpectedStatus, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
