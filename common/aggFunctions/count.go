package aggfunctions

func NewCountAggregation() *CountAggregation {
	return &CountAggregation{count: 0}
}

type CountAggregation struct {
	count int
}

// Add counts one row regardless of its value.
func (c *CountAggregation) Add(value float64) Aggregation {
	c.count++
	return c
}

func (c *CountAggregation) Result() float64 {
	return float64(c.count)
}
