package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSentiment(t *testing.T) {
	s, err := ParseSentiment(" Negative ")
	require.NoError(t, err)
	assert.Equal(t, SentimentNegative, s)

	s, err = ParseSentiment("")
	require.NoError(t, err)
	assert.Equal(t, Sentiment(""), s)

	_, err = ParseSentiment("angry")
	assert.ErrorIs(t, err, ErrInvalidSentiment)
}

func TestFilterSelectionUnfiltered(t *testing.T) {
	assert.True(t, FilterSelection{}.Unfiltered())
	assert.False(t, FilterSelection{Airline: "United"}.Unfiltered())
	assert.False(t, FilterSelection{Sentiment: SentimentNeutral}.Unfiltered())

	q := FilterSelection{Sentiment: SentimentNegative}.TweetQuery(20)
	assert.Equal(t, TweetQuery{Sentiment: SentimentNegative, Limit: 20}, q)
}

func TestOverviewValidate(t *testing.T) {
	ok := Overview{
		Total: 100, Positive: 60, Negative: 30, Neutral: 10,
		PositivePercentage: 60, NegativePercentage: 30, NeutralPercentage: 10,
	}
	assert.NoError(t, ok.Validate())

	// rounding tolerance
	thirds := Overview{
		Total: 3, Positive: 1, Negative: 1, Neutral: 1,
		PositivePercentage: 33.33, NegativePercentage: 33.33, NeutralPercentage: 33.33,
	}
	assert.NoError(t, thirds.Validate())

	assert.NoError(t, Overview{}.Validate())

	bad := ok
	bad.Neutral = 11
	assert.Error(t, bad.Validate())

	badPct := ok
	badPct.NeutralPercentage = 20
	assert.Error(t, badPct.Validate())
}

func TestAirlineStatsValidate(t *testing.T) {
	a := AirlineStats{Airline: "Delta", TotalTweets: 10, Positive: 5, Negative: 3, Neutral: 2, SentimentScore: 0.2}
	assert.NoError(t, a.Validate())

	a.TotalTweets = 11
	assert.Error(t, a.Validate())

	a.TotalTweets = 10
	a.SentimentScore = 1.5
	assert.Error(t, a.Validate())
}
