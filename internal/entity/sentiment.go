package entity

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidSentiment is returned when a sentiment outside positive/negative/neutral is supplied.
var ErrInvalidSentiment = errors.New("invalid sentiment")

// Sentiment is the classification of a tweet. The empty value means "no sentiment selected".
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// Sentiments lists the known kinds in display order.
var Sentiments = []Sentiment{SentimentPositive, SentimentNegative, SentimentNeutral}

// Valid reports whether s is one of the known kinds.
func (s Sentiment) Valid() bool {
	switch s {
	case SentimentPositive, SentimentNegative, SentimentNeutral:
		return true
	}
	return false
}

// ParseSentiment normalizes raw input. An empty string yields the empty Sentiment.
func ParseSentiment(raw string) (Sentiment, error) {
	s := Sentiment(strings.ToLower(strings.TrimSpace(raw)))
	if s == "" || s.Valid() {
		return s, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSentiment, raw)
}
