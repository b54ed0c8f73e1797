// Package typography resolves text against its container: font sizing,
// wrapping, and truncation per typography level, with a deterministic
// character-width measurement model.
package typography

import "github.com/deckgrid/deckgrid/pkg/palette"

// Level identifies a slot in the type ramp.
type Level string

const (
	// T1 is the slide title.
	T1 Level = "T1"
	// T2 is the subtitle or chart title.
	T2 Level = "T2"
	// T3 is body text and bullets.
	T3 Level = "T3"
	// T4 is chart data labels.
	T4 Level = "T4"
	// T45 is axis and legend text, sized by chart density rather than by
	// overflow policy.
	T45 Level = "T4.5"
	// T5 is footnotes and source lines.
	T5 Level = "T5"
)

// Weight is the font weight of a level.
type Weight string

const (
	WeightRegular Weight = "regular"
	WeightBold    Weight = "bold"
)

// Policy names the overflow strategy a level applies when text exceeds its
// container.
type Policy string

const (
	// PolicyReduceStep shrinks in fixed steps down to a floor.
	PolicyReduceStep Policy = "reduce_step"
	// PolicyWrapReduce wraps into the container width first, then shrinks.
	PolicyWrapReduce Policy = "wrap_reduce"
	// PolicyWrapOnly wraps and never resizes.
	PolicyWrapOnly Policy = "wrap_only"
	// PolicyReposition offsets outward before shrinking to a floor.
	PolicyReposition Policy = "reposition"
	// PolicyTruncate cuts text with an ellipsis at fixed size.
	PolicyTruncate Policy = "truncate"
	// PolicyDensity sizes by chart density and does not resolve overflow.
	PolicyDensity Policy = "density"
)

// Spec is the immutable definition of one level.
type Spec struct {
	BaseSize   float64 // pt
	Weight     Weight
	Color      palette.Token
	Policy     Policy
	ReduceStep float64 // pt per reduction step, where applicable
	FloorSize  float64 // pt, minimum under the reduction policies
}

// specs is the type ramp. Read-only after init.
//
// T2's reduction floor is not part of the original design language; it stops
// at the T3 base size rather than shrinking without bound.
var specs = map[Level]Spec{
	T1:  {BaseSize: 32, Weight: WeightBold, Color: palette.PrimaryGreen, Policy: PolicyReduceStep, ReduceStep: 2, FloorSize: 24},
	T2:  {BaseSize: 20, Weight: WeightBold, Color: palette.BodyText, Policy: PolicyWrapReduce, ReduceStep: 1, FloorSize: 18},
	T3:  {BaseSize: 18, Weight: WeightRegular, Color: palette.BodyText, Policy: PolicyWrapOnly},
	T4:  {BaseSize: 12, Weight: WeightRegular, Color: palette.BodyText, Policy: PolicyReposition, ReduceStep: 1, FloorSize: 10},
	T45: {BaseSize: 9, Weight: WeightRegular, Color: palette.AxisGrey, Policy: PolicyDensity},
	T5:  {BaseSize: 9, Weight: WeightRegular, Color: palette.AxisGrey, Policy: PolicyTruncate},
}

// LevelSpec returns the definition of a level.
func LevelSpec(l Level) (Spec, bool) {
	s, ok := specs[l]
	return s, ok
}

// DensitySize returns the axis/legend point size for a chart with the given
// category count and average category label length. Denser charts get
// smaller type.
func DensitySize(categories int, avgLabelLen float64) float64 {
	score := float64(categories) + avgLabelLen/3
	switch {
	case score <= 6:
		return 9
	case score <= 10:
		return 8
	default:
		return 7
	}
}
