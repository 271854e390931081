package service

import (
	"context"
	"sync"

	"airline-sentiment-dashboard/internal/entity"
	"airline-sentiment-dashboard/pkg/common"
)

type repoCall struct {
	endpoint string
	query    entity.TweetQuery
}

// fakeRepository serves canned data. Overview calls can be held back with gates so tests
// control the order in which cycles complete.
type fakeRepository struct {
	mu sync.Mutex

	overviews []*entity.Overview
	airlines  []entity.AirlineStats
	reasons   []entity.NegativeReason
	catalog   []string
	tweets    func(q entity.TweetQuery) []entity.Tweet
	errs      map[string]error

	overviewGates  map[int]chan struct{}
	overviewCalled chan int
	overviewCount  int

	calls []repoCall
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		overviews: []*entity.Overview{{
			Total: 100, Positive: 60, Negative: 30, Neutral: 10,
			PositivePercentage: 60, NegativePercentage: 30, NeutralPercentage: 10,
		}},
		airlines: []entity.AirlineStats{
			{Airline: "United", TotalTweets: 50, Positive: 10, Negative: 30, Neutral: 10, SentimentScore: -0.4},
			{Airline: "Delta", TotalTweets: 50, Positive: 50, SentimentScore: 1},
		},
		reasons: []entity.NegativeReason{
			{Reason: "Late Flight", Count: 20, Percentage: 66.67},
			{Reason: "Lost Luggage", Count: 10, Percentage: 33.33},
		},
		catalog: []string{"Delta", "United"},
		tweets: func(q entity.TweetQuery) []entity.Tweet {
			return []entity.Tweet{{
				ID:        "1",
				Airline:   firstNonEmpty(q.Airline, "United"),
				Sentiment: entity.Sentiment(firstNonEmpty(string(q.Sentiment), "positive")),
				Text:      "query " + q.Airline + "/" + string(q.Sentiment),
			}}
		},
		errs:           map[string]error{},
		overviewGates:  map[int]chan struct{}{},
		overviewCalled: make(chan int, 16),
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func (f *fakeRepository) record(endpoint string, q entity.TweetQuery) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, repoCall{endpoint: endpoint, query: q})
	return f.errs[endpoint]
}

func (f *fakeRepository) setErr(endpoint string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[endpoint] = err
}

func (f *fakeRepository) takeCalls() []repoCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	calls := f.calls
	f.calls = nil
	return calls
}

func (f *fakeRepository) Overview(ctx context.Context) (*entity.Overview, error) {
	f.mu.Lock()
	n := f.overviewCount
	f.overviewCount++
	gate := f.overviewGates[n]
	overview := f.overviews[len(f.overviews)-1]
	if n < len(f.overviews) {
		overview = f.overviews[n]
	}
	f.mu.Unlock()

	f.overviewCalled <- n
	if gate != nil {
		<-gate
	}
	if err := f.record(common.EndpointOverview, entity.TweetQuery{}); err != nil {
		return nil, err
	}
	copied := *overview
	return &copied, nil
}

func (f *fakeRepository) AirlineStats(ctx context.Context) ([]entity.AirlineStats, error) {
	if err := f.record(common.EndpointAirlineStats, entity.TweetQuery{}); err != nil {
		return nil, err
	}
	return append([]entity.AirlineStats(nil), f.airlines...), nil
}

func (f *fakeRepository) NegativeReasons(ctx context.Context) ([]entity.NegativeReason, error) {
	if err := f.record(common.EndpointNegativeReasons, entity.TweetQuery{}); err != nil {
		return nil, err
	}
	return append([]entity.NegativeReason(nil), f.reasons...), nil
}

func (f *fakeRepository) Tweets(ctx context.Context, q entity.TweetQuery) ([]entity.Tweet, error) {
	if err := f.record(common.EndpointTweets, q); err != nil {
		return nil, err
	}
	return f.tweets(q), nil
}

func (f *fakeRepository) AirlineCatalog(ctx context.Context) ([]string, error) {
	if err := f.record(common.EndpointAirlineCatalog, entity.TweetQuery{}); err != nil {
		return nil, err
	}
	return append([]string(nil), f.catalog...), nil
}
