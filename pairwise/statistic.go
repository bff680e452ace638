package pairwise

import "fmt"

// Statistic identifies one of the pairwise statistic kinds. It is a
// closed set; adding a kind requires extending every switch below, all
// of which panic on an unknown value.
type Statistic int

const (
	// DotProduct is the scalar product Σ x[i]*y[i].
	DotProduct Statistic = iota
	// WeightedDotProduct is Σ x[i]*y[i]*w[i].
	WeightedDotProduct
	// SqDistance is the squared euclidean distance Σ (x[i]-y[i])².
	SqDistance
	// WeightedSqDistance is Σ ((x[i]-y[i])*w[i])².
	WeightedSqDistance
)

const badStatistic = "pairwise: unknown statistic"

// Weighted reports whether the statistic uses a weight vector.
func (s Statistic) Weighted() bool {
	switch s {
	case DotProduct, SqDistance:
		return false
	case WeightedDotProduct, WeightedSqDistance:
		return true
	}
	panic(badStatistic)
}

func (s Statistic) String() string {
	switch s {
	case DotProduct:
		return "DotProduct"
	case WeightedDotProduct:
		return "WeightedDotProduct"
	case SqDistance:
		return "SqDistance"
	case WeightedSqDistance:
		return "WeightedSqDistance"
	}
	panic(badStatistic)
}

// MarshalText implements encoding.TextMarshaler, so a Statistic survives
// a JSON round trip as its name rather than a bare integer.
func (s Statistic) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Statistic) UnmarshalText(text []byte) error {
	switch string(text) {
	case "DotProduct":
		*s = DotProduct
	case "WeightedDotProduct":
		*s = WeightedDotProduct
	case "SqDistance":
		*s = SqDistance
	case "WeightedSqDistance":
		*s = WeightedSqDistance
	default:
		return fmt.Errorf("pairwise: unknown statistic %q", text)
	}
	return nil
}

// Value evaluates the statistic on x and y. w is ignored by the
// unweighted kinds.
func (s Statistic) Value(x, y, w []float64) float64 {
	switch s {
	case DotProduct:
		return ScalarProduct(x, y)
	case WeightedDotProduct:
		return WeightedScalarProduct(x, y, w)
	case SqDistance:
		return SquaredDistance(x, y)
	case WeightedSqDistance:
		return WeightedSquaredDistance(x, y, w)
	}
	panic(badStatistic)
}

// DValueDXInto writes the derivative of the statistic with respect to x
// into dst. The aliasing contract of the underlying D…Into function
// applies. w is ignored by the unweighted kinds.
func (s Statistic) DValueDXInto(dst, x, y, w []float64) []float64 {
	switch s {
	case DotProduct:
		return DScalarProductDXInto(dst, x, y)
	case WeightedDotProduct:
		return DWeightedScalarProductDXInto(dst, x, y, w)
	case SqDistance:
		return DSquaredDistanceDXInto(dst, x, y)
	case WeightedSqDistance:
		return DWeightedSquaredDistanceDXInto(dst, x, y, w)
	}
	panic(badStatistic)
}

// DValueDYInto writes the derivative of the statistic with respect to y
// into dst.
func (s Statistic) DValueDYInto(dst, x, y, w []float64) []float64 {
	switch s {
	case DotProduct:
		return DScalarProductDYInto(dst, x, y)
	case WeightedDotProduct:
		return DWeightedScalarProductDYInto(dst, x, y, w)
	case SqDistance:
		return DSquaredDistanceDYInto(dst, x, y)
	case WeightedSqDistance:
		return DWeightedSquaredDistanceDYInto(dst, x, y, w)
	}
	panic(badStatistic)
}

// DValueDWInto writes the derivative of the statistic with respect to
// the weight vector into dst. It panics for the unweighted kinds.
func (s Statistic) DValueDWInto(dst, x, y, w []float64) []float64 {
	switch s {
	case WeightedDotProduct:
		return DWeightedScalarProductDWInto(dst, x, y, w)
	case WeightedSqDistance:
		return DWeightedSquaredDistanceDWInto(dst, x, y, w)
	case DotProduct, SqDistance:
		panic("pairwise: statistic " + s.String() + " has no weight derivative")
	}
	panic(badStatistic)
}
