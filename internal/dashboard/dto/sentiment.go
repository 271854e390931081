package dto

// OverviewResponse is the body of GET /api/sentiment/overview.
type OverviewResponse struct {
	TotalTweets        int     `json:"total_tweets"`
	Positive           int     `json:"positive"`
	Negative           int     `json:"negative"`
	Neutral            int     `json:"neutral"`
	PositivePercentage float64 `json:"positive_percentage"`
	NegativePercentage float64 `json:"negative_percentage"`
	NeutralPercentage  float64 `json:"neutral_percentage"`
}

// AirlineSentimentResponse is one element of GET /api/sentiment/airlines.
type AirlineSentimentResponse struct {
	Airline        string  `json:"airline"`
	TotalTweets    int     `json:"total_tweets"`
	Positive       int     `json:"positive"`
	Negative       int     `json:"negative"`
	Neutral        int     `json:"neutral"`
	SentimentScore float64 `json:"sentiment_score"`
}

// NegativeReasonResponse is one element of GET /api/sentiment/negative-reasons.
type NegativeReasonResponse struct {
	Reason     string  `json:"reason"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// TweetResponse is one element of GET /api/sentiment/tweets.
type TweetResponse struct {
	TweetID        int64   `json:"tweet_id"`
	Airline        string  `json:"airline"`
	Sentiment      string  `json:"sentiment"`
	Confidence     float64 `json:"confidence"`
	Text           string  `json:"text"`
	Created        string  `json:"created"`
	Location       *string `json:"location"`
	NegativeReason *string `json:"negative_reason"`
}

// AirlineCatalogResponse is the body of GET /api/sentiment/airlines/list.
type AirlineCatalogResponse struct {
	Airlines []string `json:"airlines"`
}
