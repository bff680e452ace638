// Package pairwise computes scalar pairwise statistics between vectors,
// their gradients, and batched Gram-matrix forms over design matrices.
//
// Two statistics are supported, each with an optional per-dimension
// weighted form:
//
//	scalar product:   Σ x[i]*y[i]        weighted: Σ x[i]*y[i]*w[i]
//	squared distance: Σ (x[i]-y[i])²     weighted: Σ ((x[i]-y[i])*w[i])²
//
// The scalar helpers are hot-path code and panic with
// common.DimensionMismatch on length mismatch rather than returning an
// error; the batch (Gram) operations return errors.
package pairwise

import (
	"gonum.org/v1/gonum/floats"

	"github.com/kerngo/kerngo/common"
)

func checkLengths(x, y []float64) {
	if len(x) != len(y) {
		panic(common.DimensionMismatch{X: len(x), Y: len(y)})
	}
}

func checkLengthsWeighted(x, y, w []float64) {
	if len(x) != len(y) || len(x) != len(w) {
		panic(common.DimensionMismatch{X: len(x), Y: len(y), Weights: len(w)})
	}
}

// ScalarProduct returns the scalar product of x and y.
func ScalarProduct(x, y []float64) float64 {
	checkLengths(x, y)
	return floats.Dot(x, y)
}

// WeightedScalarProduct returns the weighted scalar product Σ x[i]*y[i]*w[i].
func WeightedScalarProduct(x, y, w []float64) float64 {
	checkLengthsWeighted(x, y, w)
	var sum float64
	for i, xi := range x {
		sum += xi * y[i] * w[i]
	}
	return sum
}

// SquaredDistance returns the squared euclidean distance between x and y.
// Accumulation is plain sequential summation in float64.
func SquaredDistance(x, y []float64) float64 {
	checkLengths(x, y)
	var sum float64
	for i, xi := range x {
		diff := xi - y[i]
		sum += diff * diff
	}
	return sum
}

// WeightedSquaredDistance returns Σ ((x[i]-y[i])*w[i])².
func WeightedSquaredDistance(x, y, w []float64) float64 {
	checkLengthsWeighted(x, y, w)
	var sum float64
	for i, xi := range x {
		diff := (xi - y[i]) * w[i]
		sum += diff * diff
	}
	return sum
}

// Derivatives. Each comes in an allocating form and an Into form that
// writes into a caller-supplied buffer to avoid allocation in hot loops.
// Unless a function documents otherwise, dst must not alias any input.

// DScalarProductDX returns the derivative of ScalarProduct(x, y) with
// respect to x, which is y.
func DScalarProductDX(x, y []float64) []float64 {
	return DScalarProductDXInto(make([]float64, len(y)), x, y)
}

// DScalarProductDXInto is the into-buffer form of DScalarProductDX.
// dst may alias x or y.
func DScalarProductDXInto(dst, x, y []float64) []float64 {
	checkLengths(x, y)
	checkLengths(dst, y)
	copy(dst, y)
	return dst
}

// DScalarProductDY returns the derivative of ScalarProduct(x, y) with
// respect to y, which is x.
func DScalarProductDY(x, y []float64) []float64 {
	return DScalarProductDYInto(make([]float64, len(x)), x, y)
}

// DScalarProductDYInto is the into-buffer form of DScalarProductDY.
// dst may alias x or y.
func DScalarProductDYInto(dst, x, y []float64) []float64 {
	checkLengths(x, y)
	checkLengths(dst, x)
	copy(dst, x)
	return dst
}

// DWeightedScalarProductDX returns the derivative of
// WeightedScalarProduct(x, y, w) with respect to x, which is y⊙w.
func DWeightedScalarProductDX(x, y, w []float64) []float64 {
	return DWeightedScalarProductDXInto(make([]float64, len(y)), x, y, w)
}

// DWeightedScalarProductDXInto is the into-buffer form. dst must not
// alias y or w.
func DWeightedScalarProductDXInto(dst, x, y, w []float64) []float64 {
	checkLengthsWeighted(x, y, w)
	checkLengths(dst, x)
	floats.MulTo(dst, y, w)
	return dst
}

// DWeightedScalarProductDY returns the derivative with respect to y,
// which is x⊙w.
func DWeightedScalarProductDY(x, y, w []float64) []float64 {
	return DWeightedScalarProductDYInto(make([]float64, len(x)), x, y, w)
}

// DWeightedScalarProductDYInto is the into-buffer form. dst must not
// alias x or w.
func DWeightedScalarProductDYInto(dst, x, y, w []float64) []float64 {
	checkLengthsWeighted(x, y, w)
	checkLengths(dst, x)
	floats.MulTo(dst, x, w)
	return dst
}

// DWeightedScalarProductDW returns the derivative with respect to the
// weights, which is x⊙y.
func DWeightedScalarProductDW(x, y, w []float64) []float64 {
	return DWeightedScalarProductDWInto(make([]float64, len(x)), x, y, w)
}

// DWeightedScalarProductDWInto is the into-buffer form. dst must not
// alias x or y.
func DWeightedScalarProductDWInto(dst, x, y, w []float64) []float64 {
	checkLengthsWeighted(x, y, w)
	checkLengths(dst, x)
	floats.MulTo(dst, x, y)
	return dst
}

// DSquaredDistanceDX returns the derivative of SquaredDistance(x, y)
// with respect to x, which is 2(x-y).
func DSquaredDistanceDX(x, y []float64) []float64 {
	return DSquaredDistanceDXInto(make([]float64, len(x)), x, y)
}

// DSquaredDistanceDXInto is the into-buffer form of DSquaredDistanceDX.
// dst may alias x (each element of x is read before it is written); it
// must not alias y.
func DSquaredDistanceDXInto(dst, x, y []float64) []float64 {
	checkLengths(x, y)
	checkLengths(dst, x)
	for i, xi := range x {
		dst[i] = 2 * (xi - y[i])
	}
	return dst
}

// DSquaredDistanceDY returns the derivative of SquaredDistance(x, y)
// with respect to y, which is 2(y-x).
func DSquaredDistanceDY(x, y []float64) []float64 {
	return DSquaredDistanceDYInto(make([]float64, len(x)), x, y)
}

// DSquaredDistanceDYInto is the into-buffer form of DSquaredDistanceDY.
// dst may alias y; it must not alias x.
func DSquaredDistanceDYInto(dst, x, y []float64) []float64 {
	checkLengths(x, y)
	checkLengths(dst, x)
	for i, yi := range y {
		dst[i] = 2 * (yi - x[i])
	}
	return dst
}

// DWeightedSquaredDistanceDX returns the derivative of
// WeightedSquaredDistance(x, y, w) with respect to x, which is 2(x-y)⊙w².
func DWeightedSquaredDistanceDX(x, y, w []float64) []float64 {
	return DWeightedSquaredDistanceDXInto(make([]float64, len(x)), x, y, w)
}

// DWeightedSquaredDistanceDXInto is the into-buffer form. dst may alias
// x; it must not alias y or w.
func DWeightedSquaredDistanceDXInto(dst, x, y, w []float64) []float64 {
	checkLengthsWeighted(x, y, w)
	checkLengths(dst, x)
	for i, xi := range x {
		dst[i] = 2 * (xi - y[i]) * w[i] * w[i]
	}
	return dst
}

// DWeightedSquaredDistanceDY returns the derivative with respect to y,
// which is the negative of the derivative with respect to x.
func DWeightedSquaredDistanceDY(x, y, w []float64) []float64 {
	return DWeightedSquaredDistanceDYInto(make([]float64, len(x)), x, y, w)
}

// DWeightedSquaredDistanceDYInto is the into-buffer form. dst may alias
// y; it must not alias x or w.
func DWeightedSquaredDistanceDYInto(dst, x, y, w []float64) []float64 {
	checkLengthsWeighted(x, y, w)
	checkLengths(dst, x)
	for i, xi := range x {
		dst[i] = 2 * (y[i] - xi) * w[i] * w[i]
	}
	return dst
}

// DWeightedSquaredDistanceDW returns the derivative with respect to the
// weights, which is 2(x-y)²⊙w.
func DWeightedSquaredDistanceDW(x, y, w []float64) []float64 {
	return DWeightedSquaredDistanceDWInto(make([]float64, len(x)), x, y, w)
}

// DWeightedSquaredDistanceDWInto is the into-buffer form. dst may alias
// w; it must not alias x or y.
func DWeightedSquaredDistanceDWInto(dst, x, y, w []float64) []float64 {
	checkLengthsWeighted(x, y, w)
	checkLengths(dst, x)
	for i, xi := range x {
		diff := xi - y[i]
		dst[i] = 2 * diff * diff * w[i]
	}
	return dst
}
