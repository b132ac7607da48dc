package aggfunctions

const (
	Sum   = "sum"
	Count = "count"
)

func NewAggregation(funcName string) Aggregation {
	switch funcName {
	case Sum:
		return NewSumAggregation()
	case Count:
		return NewCountAggregation()
	}
	return nil
}
