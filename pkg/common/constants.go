package common

const (
	// Backend aggregation API paths, relative to {base_url}/api/sentiment.
	EndpointOverview        = "overview"
	EndpointAirlineStats    = "airlines"
	EndpointNegativeReasons = "negative-reasons"
	EndpointTweets          = "tweets"
	EndpointAirlineCatalog  = "airlines/list"

	SentimentAPIPrefix = "/api/sentiment/"

	DefaultRecordLimit = 20

	// Refresh paths, used as metric and log labels.
	PathFull     = "full"
	PathFiltered = "filtered"
)
