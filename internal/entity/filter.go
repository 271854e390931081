package entity

// FilterSelection is the requested view. Empty fields are absent filters.
type FilterSelection struct {
	Airline   string    `json:"airline"`
	Sentiment Sentiment `json:"sentiment"`
}

// Unfiltered reports whether both filters are absent.
func (f FilterSelection) Unfiltered() bool {
	return f.Airline == "" && f.Sentiment == ""
}

// TweetQuery builds the record query for this selection.
func (f FilterSelection) TweetQuery(limit int) TweetQuery {
	return TweetQuery{Airline: f.Airline, Sentiment: f.Sentiment, Limit: limit}
}
