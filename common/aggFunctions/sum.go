package aggfunctions

import "github.com/shopspring/decimal"

// SumAggregation adds values as decimals so money columns don't drift.
type SumAggregation struct {
	sum decimal.Decimal
}

func NewSumAggregation() *SumAggregation {
	return &SumAggregation{sum: decimal.Zero}
}

func (s *SumAggregation) Add(value float64) Aggregation {
	s.sum = s.sum.Add(decimal.NewFromFloat(value))
	return s
}

func (s *SumAggregation) Result() float64 {
	return s.sum.InexactFloat64()
}
