package dto

import (
	"time"

	"airline-sentiment-dashboard/internal/entity"
)

// ViewModel is the display-ready dashboard state handed to renderers.
type ViewModel struct {
	Cycle           uint64                 `json:"cycle"`
	Loading         bool                   `json:"loading"`
	Filter          entity.FilterSelection `json:"filter"`
	Overview        OverviewCards          `json:"overview"`
	PieSlices       []PieSlice             `json:"pie_slices"`
	Airlines        []AirlineRow           `json:"airlines"`
	NegativeReasons []NegativeReasonBar    `json:"negative_reasons"`
	Tweets          []TweetCard            `json:"tweets"`
	AirlineOptions  []string               `json:"airline_options"`
	LastError       *ErrorNotice           `json:"last_error"`
}

// OverviewCards holds the summary card numbers. All fields are zero when no overview is loaded.
type OverviewCards struct {
	Total              int     `json:"total"`
	Positive           int     `json:"positive"`
	Negative           int     `json:"negative"`
	Neutral            int     `json:"neutral"`
	PositivePercentage float64 `json:"positive_percentage"`
	NegativePercentage float64 `json:"negative_percentage"`
	NeutralPercentage  float64 `json:"neutral_percentage"`
}

// PieSlice is one segment of the sentiment distribution chart.
type PieSlice struct {
	Label    string           `json:"label"`
	Value    int              `json:"value"`
	ColorKey entity.Sentiment `json:"color_key"`
}

// AirlineRow is one row of the per-airline breakdown table and volume chart.
type AirlineRow struct {
	Airline        string           `json:"airline"`
	TotalTweets    int              `json:"total_tweets"`
	Positive       int              `json:"positive"`
	Negative       int              `json:"negative"`
	Neutral        int              `json:"neutral"`
	SentimentScore float64          `json:"sentiment_score"`
	ScoreTone      entity.Sentiment `json:"score_tone"`
}

type NegativeReasonBar struct {
	Reason     string  `json:"reason"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// TweetCard is one entry of the record feed.
type TweetCard struct {
	ID                string           `json:"id"`
	Airline           string           `json:"airline"`
	Sentiment         entity.Sentiment `json:"sentiment"`
	NegativeReason    string           `json:"negative_reason"`
	HasNegativeReason bool             `json:"has_negative_reason"`
	Text              string           `json:"text"`
	Created           *time.Time       `json:"created"`
	CreatedRaw        string           `json:"created_raw"`
	Location          string           `json:"location"`
	Confidence        float64          `json:"confidence"`
}

// ErrorNotice describes the most recent failed fetch.
type ErrorNotice struct {
	Cycle    uint64    `json:"cycle"`
	Endpoint string    `json:"endpoint"`
	Message  string    `json:"message"`
	At       time.Time `json:"at"`
}
