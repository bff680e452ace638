package common

import (
	"errors"
	"fmt"
)

// NoData is returned when a design matrix is nil or has zero size.
var NoData error = errors.New("kerngo: nil or empty data")

// DimensionMismatch is the error for operands with incompatible lengths.
// Weights is zero when the unweighted form of an operation was called.
// Scalar hot-path helpers panic with this value rather than returning it;
// batch operations return it.
type DimensionMismatch struct {
	X       int
	Y       int
	Weights int
}

func (d DimensionMismatch) Error() string {
	if d.Weights == 0 {
		return fmt.Sprintf("kerngo: dimension mismatch. x: %v, y: %v", d.X, d.Y)
	}
	return fmt.Sprintf("kerngo: dimension mismatch. x: %v, y: %v, weights: %v", d.X, d.Y, d.Weights)
}

// ParameterDomain is returned when a composition class or kernel is
// constructed with a parameter outside its valid domain. Construction fails
// immediately so an out-of-domain parameter can never surface later as a
// silent NaN.
type ParameterDomain struct {
	Class string
	Param string
	Value float64
	// Domain describes the valid range, e.g. "> 0".
	Domain string
}

func (p ParameterDomain) Error() string {
	return fmt.Sprintf("kerngo: %s: parameter %s = %v outside domain %s", p.Class, p.Param, p.Value, p.Domain)
}

// VerifyLengths returns a DimensionMismatch if x and y have different
// lengths, or if weights is non-empty and its length differs from them.
// As a special case, weights may be empty, meaning the unweighted form.
func VerifyLengths(x, y, weights []float64) error {
	if len(x) != len(y) || (len(weights) != 0 && len(weights) != len(x)) {
		return DimensionMismatch{X: len(x), Y: len(y), Weights: len(weights)}
	}
	return nil
}
