// Package kernel composes a link class with a pairwise statistic into a
// positive-definite kernel function. A Kernel evaluates on vector pairs
// and on whole design matrices, and exposes the chain-rule derivatives
// needed for gradient-based kernel-parameter fitting.
//
// Batch evaluation is two-stage: the pairwise statistic over the whole
// matrix is one dense multiply, then the link function is applied
// element-wise in parallel. The O(n²d) cost is paid once in the
// statistic stage; the link stage is O(n²) scalar work regardless of
// dimension.
package kernel

import (
	"encoding/json"
	"errors"
	"math"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/kerngo/kerngo/common"
	"github.com/kerngo/kerngo/link"
	"github.com/kerngo/kerngo/pairwise"
)

func init() {
	common.Register(Kernel{})
}

// A Kerneler is a type that can compute a kernel function between two
// locations
type Kerneler interface {
	Kernel(x, y []float64) float64
}

// Kernel binds one composition class to one pairwise statistic kind.
// It is immutable once constructed and stateless per call; all methods
// are safe for concurrent use.
type Kernel struct {
	linker  link.Linker
	stat    pairwise.Statistic
	weights []float64
}

// New constructs a kernel from a link class and an unweighted statistic
// kind.
func New(l link.Linker, stat pairwise.Statistic) (Kernel, error) {
	if l == nil {
		return Kernel{}, errors.New("kernel: nil link class")
	}
	if stat.Weighted() {
		return Kernel{}, errors.New("kernel: weighted statistic requires NewWeighted")
	}
	return Kernel{linker: l, stat: stat}, nil
}

// NewWeighted constructs a kernel over a weighted statistic kind with
// the given per-dimension weights. The weights must be non-negative and
// their length fixes the dimension of every vector the kernel accepts.
func NewWeighted(l link.Linker, stat pairwise.Statistic, weights []float64) (Kernel, error) {
	if l == nil {
		return Kernel{}, errors.New("kernel: nil link class")
	}
	if !stat.Weighted() {
		return Kernel{}, errors.New("kernel: unweighted statistic requires New")
	}
	if len(weights) == 0 {
		return Kernel{}, common.NoData
	}
	for _, w := range weights {
		if w < 0 {
			return Kernel{}, common.ParameterDomain{Class: "Kernel", Param: "weights", Value: w, Domain: ">= 0"}
		}
	}
	wcopy := make([]float64, len(weights))
	copy(wcopy, weights)
	return Kernel{linker: l, stat: stat, weights: wcopy}, nil
}

// Linker returns the composition class of the kernel.
func (k Kernel) Linker() link.Linker { return k.linker }

// Statistic returns the pairwise statistic kind of the kernel.
func (k Kernel) Statistic() pairwise.Statistic { return k.stat }

// Weights returns a copy of the per-dimension weights, or nil for an
// unweighted kernel.
func (k Kernel) Weights() []float64 {
	if k.weights == nil {
		return nil
	}
	w := make([]float64, len(k.weights))
	copy(w, k.weights)
	return w
}

// Kernel evaluates the kernel on a pair of vectors. It panics with
// common.DimensionMismatch if the lengths are incompatible.
func (k Kernel) Kernel(x, y []float64) float64 {
	return k.linker.Link(k.stat.Value(x, y, k.weights))
}

// baseStatistic maps a weighted statistic kind to the unweighted kind
// the fast batch path computes after the weights are folded into the
// design matrix.
func (k Kernel) baseStatistic() pairwise.Statistic {
	switch k.stat {
	case pairwise.WeightedDotProduct:
		return pairwise.DotProduct
	case pairwise.WeightedSqDistance:
		return pairwise.SqDistance
	}
	return k.stat
}

// scaledMatrix folds the weights into a copy of the design matrix so
// the unweighted Gram fast path applies: coordinates are scaled by √w
// for the scalar product (x·y·w = (x√w)·(y√w)) and by w for the squared
// distance ((x-y)w = xw - yw). For an unweighted kernel X is returned
// unchanged.
func (k Kernel) scaledMatrix(X *mat.Dense, trans blas.Transpose) (*mat.Dense, error) {
	if !k.stat.Weighted() {
		return X, nil
	}
	if X == nil {
		return nil, common.NoData
	}
	r, c := X.Dims()
	d := c
	if trans == blas.Trans {
		d = r
	}
	if d != len(k.weights) {
		return nil, common.DimensionMismatch{X: d, Y: d, Weights: len(k.weights)}
	}
	s := make([]float64, d)
	if k.stat == pairwise.WeightedDotProduct {
		for i, w := range k.weights {
			s[i] = math.Sqrt(w)
		}
	} else {
		copy(s, k.weights)
	}
	out := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if trans == blas.NoTrans {
				out.Set(i, j, X.At(i, j)*s[j])
			} else {
				out.Set(i, j, X.At(i, j)*s[i])
			}
		}
	}
	return out, nil
}

// applyLink applies the link function element-wise, in parallel across
// row blocks. When upperOnly is set only the upper triangle (including
// the diagonal) is touched, leaving an unmirrored Gram's zero lower
// triangle alone.
func (k Kernel) applyLink(g *mat.Dense, upperOnly bool) {
	n, _ := g.Dims()
	grain := common.GetGrainSize(n, 1, 64)
	common.ParallelFor(n, grain, func(start, end int) {
		for i := start; i < end; i++ {
			row := g.RawRowView(i)
			lo := 0
			if upperOnly {
				lo = i
			}
			for j := lo; j < len(row); j++ {
				row[j] = k.linker.Link(row[j])
			}
		}
	})
}

// Gram computes the n×n kernel matrix over the observations of X
// (rows when trans is blas.NoTrans, columns when blas.Trans). When
// mirror is false only the upper triangle is computed; the lower
// triangle is left zero.
func (k Kernel) Gram(X *mat.Dense, trans blas.Transpose, mirror bool) (*mat.Dense, error) {
	X, err := k.scaledMatrix(X, trans)
	if err != nil {
		return nil, err
	}
	var g *mat.Dense
	switch k.baseStatistic() {
	case pairwise.DotProduct:
		g, err = pairwise.GramScalarProduct(X, trans, mirror)
	case pairwise.SqDistance:
		g, err = pairwise.GramSquaredDistance(X, trans, mirror)
	}
	if err != nil {
		return nil, err
	}
	k.applyLink(g, !mirror)
	return g, nil
}

// CrossGram computes the n×m kernel matrix between the observations of
// X and those of Y.
func (k Kernel) CrossGram(X, Y *mat.Dense, trans blas.Transpose) (*mat.Dense, error) {
	X, err := k.scaledMatrix(X, trans)
	if err != nil {
		return nil, err
	}
	Y, err = k.scaledMatrix(Y, trans)
	if err != nil {
		return nil, err
	}
	var g *mat.Dense
	switch k.baseStatistic() {
	case pairwise.DotProduct:
		g, err = pairwise.CrossGramScalarProduct(X, Y, trans)
	case pairwise.SqDistance:
		g, err = pairwise.CrossGramSquaredDistance(X, Y, trans)
	}
	if err != nil {
		return nil, err
	}
	k.applyLink(g, false)
	return g, nil
}

// DKernelDX returns the derivative of the kernel with respect to x via
// the chain rule.
func (k Kernel) DKernelDX(x, y []float64) []float64 {
	return k.DKernelDXInto(make([]float64, len(x)), x, y)
}

// DKernelDXInto is the into-buffer form of DKernelDX. The aliasing
// contract of the bound statistic's DValueDXInto applies to dst.
func (k Kernel) DKernelDXInto(dst, x, y []float64) []float64 {
	z := k.stat.Value(x, y, k.weights)
	k.stat.DValueDXInto(dst, x, y, k.weights)
	floats.Scale(k.linker.DLinkDZ(z), dst)
	return dst
}

// DKernelDY returns the derivative of the kernel with respect to y.
func (k Kernel) DKernelDY(x, y []float64) []float64 {
	return k.DKernelDYInto(make([]float64, len(x)), x, y)
}

// DKernelDYInto is the into-buffer form of DKernelDY.
func (k Kernel) DKernelDYInto(dst, x, y []float64) []float64 {
	z := k.stat.Value(x, y, k.weights)
	k.stat.DValueDYInto(dst, x, y, k.weights)
	floats.Scale(k.linker.DLinkDZ(z), dst)
	return dst
}

// DKernelDW returns the derivative of the kernel with respect to the
// weight vector. It panics for an unweighted kernel.
func (k Kernel) DKernelDW(x, y []float64) []float64 {
	return k.DKernelDWInto(make([]float64, len(x)), x, y)
}

// DKernelDWInto is the into-buffer form of DKernelDW.
func (k Kernel) DKernelDWInto(dst, x, y []float64) []float64 {
	z := k.stat.Value(x, y, k.weights)
	k.stat.DValueDWInto(dst, x, y, k.weights)
	floats.Scale(k.linker.DLinkDZ(z), dst)
	return dst
}

// DKernelDParam returns the derivative of the kernel with respect to
// each parameter of its composition class, evaluated at the statistic
// value of the pair.
func (k Kernel) DKernelDParam(x, y []float64) []float64 {
	deriv := make([]float64, k.linker.NumParameters())
	k.DKernelDParamInto(deriv, x, y)
	return deriv
}

// DKernelDParamInto is the into-buffer form of DKernelDParam. deriv
// must have length Linker().NumParameters().
func (k Kernel) DKernelDParamInto(deriv []float64, x, y []float64) {
	k.linker.DLinkDParam(k.stat.Value(x, y, k.weights), deriv)
}

type kernelJSON struct {
	Link      common.InterfaceMarshaler
	Statistic pairwise.Statistic
	Weights   []float64 `json:",omitempty"`
}

func (k Kernel) MarshalJSON() ([]byte, error) {
	return json.Marshal(kernelJSON{
		Link:      common.InterfaceMarshaler{I: k.linker},
		Statistic: k.stat,
		Weights:   k.weights,
	})
}

// UnmarshalJSON reconstructs the kernel through the validating
// constructors, so a decoded kernel is as checked as a freshly built
// one.
func (k *Kernel) UnmarshalJSON(data []byte) error {
	var p kernelJSON
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	l, ok := p.Link.I.(link.Linker)
	if !ok {
		return errors.New("kernel: decoded link class does not implement link.Linker")
	}
	var (
		v   Kernel
		err error
	)
	if p.Statistic.Weighted() {
		v, err = NewWeighted(l, p.Statistic, p.Weights)
	} else {
		v, err = New(l, p.Statistic)
	}
	if err != nil {
		return err
	}
	*k = v
	return nil
}
