// Package labels turns raw numeric annotation inputs into display strings.
// The primary implementation calls an external text-generation service; a
// deterministic local formatter produces equivalent labels when the service
// is unavailable.
package labels

import "context"

// Direction describes the narrative slant of a difference label.
type Direction string

const (
	DirectionReduction Direction = "reduction"
	DirectionIncrease  Direction = "increase"
	DirectionChange    Direction = "change"
)

// DifferenceRequest asks for a difference-line label from two raw values.
type DifferenceRequest struct {
	StartValue float64   `json:"start_value"`
	EndValue   float64   `json:"end_value"`
	Currency   string    `json:"currency"`
	Direction  Direction `json:"direction"`
}

// DifferenceLabel is the two-line result: an impact line and a percentage
// line.
type DifferenceLabel struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
}

// CAGRRequest asks for a growth-arrow label from a data series and its
// compound annual growth rate (as a decimal, 0.31 for 31%).
type CAGRRequest struct {
	Series []float64 `json:"data_series"`
	Rate   float64   `json:"cagr_value"`
}

// Engine generates annotation labels. Implementations must be safe for
// concurrent use.
type Engine interface {
	DifferenceLabel(ctx context.Context, req DifferenceRequest) (DifferenceLabel, error)
	CAGRLabel(ctx context.Context, req CAGRRequest) (string, error)
}
