package aggfunctions

// Aggregation accumulates the values of one column for a single group.
type Aggregation interface {
	Add(value float64) Aggregation
	Result() float64
}
