package entity

import "fmt"

// AirlineStats is the per-airline sentiment breakdown.
type AirlineStats struct {
	Airline        string  `json:"airline"`
	TotalTweets    int     `json:"total_tweets"`
	Positive       int     `json:"positive"`
	Negative       int     `json:"negative"`
	Neutral        int     `json:"neutral"`
	SentimentScore float64 `json:"sentiment_score"`
}

// Validate checks that the totals add up and the score is within [-1, 1].
func (a AirlineStats) Validate() error {
	if sum := a.Positive + a.Negative + a.Neutral; sum != a.TotalTweets {
		return fmt.Errorf("airline %q counts sum to %d, total is %d", a.Airline, sum, a.TotalTweets)
	}
	if a.SentimentScore < -1 || a.SentimentScore > 1 {
		return fmt.Errorf("airline %q sentiment score %.3f out of range", a.Airline, a.SentimentScore)
	}
	return nil
}

// NegativeReason is a complaint category and how often it occurs.
type NegativeReason struct {
	Reason     string  `json:"reason"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}
