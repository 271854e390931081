package dto

// SetAirlineRequest selects an airline. An empty airline clears the filter.
type SetAirlineRequest struct {
	Airline string `json:"airline"`
}

// SetSentimentRequest selects a sentiment. An empty sentiment clears the filter.
type SetSentimentRequest struct {
	Sentiment string `json:"sentiment"`
}

// HealthResponse is returned by the health endpoint.
type HealthResponse struct {
	Status           string `json:"status"`
	Cycle            uint64 `json:"cycle"`
	Loading          bool   `json:"loading"`
	ConnectedClients int    `json:"connected_clients"`
	LastBroadcastSeq uint64 `json:"last_broadcast_seq"`
}
