package common

import (
	"strings"

	"cafe-analytics/records"
)

type Polarity int

const (
	Neutral Polarity = iota
	Positive
	Negative
)

const (
	MethodRating   = "rating"
	MethodKeywords = "keywords"
	MethodNone     = "none"
)

// a rating at or above this counts as positive
const positiveRating = 4

var positiveWords = []string{"good", "great", "love", "excellent", "amazing", "delicious", "nice", "happy"}

var negativeWords = []string{"bad", "slow", "terrible", "awful", "disappoint", "cold", "stale", "angry"}

type Breakdown struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
	Neutral  int `json:"neutral"`
}

// Sentiment summarises a feedback collection. PositivePct is nil when nothing in
// the collection could be scored.
type Sentiment struct {
	PositivePct *float64  `json:"positive_pct"`
	Count       int       `json:"count"`
	Method      string    `json:"method"`
	Breakdown   Breakdown `json:"breakdown"`
}

// ClassifyReview matches the review against the positive words first and the
// negative words second. Matching is a case-insensitive substring search, so
// "not good" is positive.
func ClassifyReview(text string) Polarity {
	lower := strings.ToLower(text)
	for _, w := range positiveWords {
		if strings.Contains(lower, w) {
			return Positive
		}
	}
	for _, w := range negativeWords {
		if strings.Contains(lower, w) {
			return Negative
		}
	}
	return Neutral
}

// SummarizeFeedback scores the collection by numeric ratings when any entry has
// one, falling back to keyword matching over the review texts.
func SummarizeFeedback(entries []records.FeedbackEntry) Sentiment {
	hasRatings, hasReviews := false, false
	for _, e := range entries {
		hasRatings = hasRatings || e.Rating != nil
		hasReviews = hasReviews || e.Review != nil
	}

	switch {
	case hasRatings:
		return byRating(entries)
	case hasReviews:
		return byKeywords(entries)
	default:
		return Sentiment{Count: len(entries), Method: MethodNone}
	}
}

func byRating(entries []records.FeedbackEntry) Sentiment {
	s := Sentiment{Method: MethodRating}
	for _, e := range entries {
		if e.Rating == nil {
			continue
		}
		s.Count++
		switch {
		case *e.Rating >= positiveRating:
			s.Breakdown.Positive++
		case *e.Rating <= 2:
			s.Breakdown.Negative++
		default:
			s.Breakdown.Neutral++
		}
	}
	pct := round1(float64(s.Breakdown.Positive) / float64(s.Count) * 100)
	s.PositivePct = &pct
	return s
}

// byKeywords counts every entry, including the ones without a review, in the
// denominator.
func byKeywords(entries []records.FeedbackEntry) Sentiment {
	s := Sentiment{Method: MethodKeywords, Count: len(entries)}
	for _, e := range entries {
		polarity := Neutral
		if e.Review != nil {
			polarity = ClassifyReview(*e.Review)
		}
		switch polarity {
		case Positive:
			s.Breakdown.Positive++
		case Negative:
			s.Breakdown.Negative++
		default:
			s.Breakdown.Neutral++
		}
	}
	pct := round1(float64(s.Breakdown.Positive) / float64(s.Count) * 100)
	s.PositivePct = &pct
	return s
}
