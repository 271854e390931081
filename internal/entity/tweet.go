package entity

import "time"

// Tweet is a single classified record shown in the feed.
type Tweet struct {
	ID             string    `json:"id"`
	Airline        string    `json:"airline"`
	Sentiment      Sentiment `json:"sentiment"`
	NegativeReason string    `json:"negative_reason,omitempty"`
	Text           string    `json:"text"`
	Created        time.Time `json:"created"`
	CreatedRaw     string    `json:"created_raw"`
	Location       string    `json:"location,omitempty"`
	Confidence     float64   `json:"confidence"`
}

// TweetQuery narrows the record feed. Empty fields are not sent.
type TweetQuery struct {
	Airline   string
	Sentiment Sentiment
	Limit     int
}
