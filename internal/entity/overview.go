package entity

import "fmt"

// Overview holds the dataset-wide sentiment counts.
type Overview struct {
	Total              int     `json:"total"`
	Positive           int     `json:"positive"`
	Negative           int     `json:"negative"`
	Neutral            int     `json:"neutral"`
	PositivePercentage float64 `json:"positive_percentage"`
	NegativePercentage float64 `json:"negative_percentage"`
	NeutralPercentage  float64 `json:"neutral_percentage"`
}

// Validate checks the counts and percentages the backend is expected to guarantee.
func (o Overview) Validate() error {
	if o.Total < 0 || o.Positive < 0 || o.Negative < 0 || o.Neutral < 0 {
		return fmt.Errorf("overview has negative counts: %+v", o)
	}
	if o.Total == 0 {
		return nil
	}
	if sum := o.Positive + o.Negative + o.Neutral; sum != o.Total {
		return fmt.Errorf("overview counts sum to %d, total is %d", sum, o.Total)
	}
	pct := o.PositivePercentage + o.NegativePercentage + o.NeutralPercentage
	if pct < 99 || pct > 101 {
		return fmt.Errorf("overview percentages sum to %.2f", pct)
	}
	return nil
}
