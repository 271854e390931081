package service

import (
	"airline-sentiment-dashboard/internal/dashboard/dto"
	"airline-sentiment-dashboard/internal/entity"
)

// Scores beyond these bounds are shown as clearly positive or negative.
const (
	positiveScoreThreshold = 0.1
	negativeScoreThreshold = -0.1
)

// ViewModelInput is everything the builder derives a ViewModel from.
type ViewModelInput struct {
	Cycle           uint64
	Loading         bool
	Filter          entity.FilterSelection
	Overview        *entity.Overview
	Airlines        []entity.AirlineStats
	NegativeReasons []entity.NegativeReason
	Tweets          []entity.Tweet
	Catalog         []string
	LastError       *dto.ErrorNotice
}

// BuildViewModel derives the display-ready dashboard state. It has no side effects and
// never aliases its inputs, so equal inputs yield equal view models.
func BuildViewModel(in ViewModelInput) dto.ViewModel {
	vm := dto.ViewModel{
		Cycle:           in.Cycle,
		Loading:         in.Loading,
		Filter:          in.Filter,
		PieSlices:       []dto.PieSlice{},
		Airlines:        make([]dto.AirlineRow, 0, len(in.Airlines)),
		NegativeReasons: make([]dto.NegativeReasonBar, 0, len(in.NegativeReasons)),
		Tweets:          make([]dto.TweetCard, 0, len(in.Tweets)),
		AirlineOptions:  make([]string, 0, len(in.Catalog)),
	}

	if o := in.Overview; o != nil {
		vm.Overview = dto.OverviewCards{
			Total:              o.Total,
			Positive:           o.Positive,
			Negative:           o.Negative,
			Neutral:            o.Neutral,
			PositivePercentage: o.PositivePercentage,
			NegativePercentage: o.NegativePercentage,
			NeutralPercentage:  o.NeutralPercentage,
		}
		vm.PieSlices = []dto.PieSlice{
			{Label: "Positive", Value: o.Positive, ColorKey: entity.SentimentPositive},
			{Label: "Negative", Value: o.Negative, ColorKey: entity.SentimentNegative},
			{Label: "Neutral", Value: o.Neutral, ColorKey: entity.SentimentNeutral},
		}
	}

	for _, a := range in.Airlines {
		vm.Airlines = append(vm.Airlines, dto.AirlineRow{
			Airline:        a.Airline,
			TotalTweets:    a.TotalTweets,
			Positive:       a.Positive,
			Negative:       a.Negative,
			Neutral:        a.Neutral,
			SentimentScore: a.SentimentScore,
			ScoreTone:      scoreTone(a.SentimentScore),
		})
	}

	for _, r := range in.NegativeReasons {
		vm.NegativeReasons = append(vm.NegativeReasons, dto.NegativeReasonBar{
			Reason:     r.Reason,
			Count:      r.Count,
			Percentage: r.Percentage,
		})
	}

	for _, t := range in.Tweets {
		card := dto.TweetCard{
			ID:                t.ID,
			Airline:           t.Airline,
			Sentiment:         t.Sentiment,
			NegativeReason:    t.NegativeReason,
			HasNegativeReason: t.NegativeReason != "",
			Text:              t.Text,
			CreatedRaw:        t.CreatedRaw,
			Location:          t.Location,
			Confidence:        t.Confidence,
		}
		if !t.Created.IsZero() {
			created := t.Created
			card.Created = &created
		}
		vm.Tweets = append(vm.Tweets, card)
	}

	vm.AirlineOptions = append(vm.AirlineOptions, in.Catalog...)

	if in.LastError != nil {
		notice := *in.LastError
		vm.LastError = &notice
	}

	return vm
}

func scoreTone(score float64) entity.Sentiment {
	switch {
	case score > positiveScoreThreshold:
		return entity.SentimentPositive
	case score < negativeScoreThreshold:
		return entity.SentimentNegative
	default:
		return entity.SentimentNeutral
	}
}
