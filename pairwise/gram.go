package pairwise

import (
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/kerngo/kerngo/common"
)

// The batch forms below treat a design matrix together with an explicit
// orientation flag: blas.NoTrans means observations are the rows of the
// matrix, blas.Trans means observations are its columns. The orientation
// is carried by the caller rather than inferred, since callers on both
// sides of the library exchange both layouts.

// obsDims returns the number of observations and their dimension for the
// given orientation.
func obsDims(X *mat.Dense, trans blas.Transpose) (n, d int) {
	r, c := X.Dims()
	if trans == blas.NoTrans {
		return r, c
	}
	return c, r
}

func checkMatrix(X *mat.Dense) error {
	if X == nil {
		return common.NoData
	}
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return common.NoData
	}
	return nil
}

// mirrorUpper copies the strict upper triangle of the n×n row-major
// matrix in data onto the lower triangle.
func mirrorUpper(data []float64, n int) {
	for i := 1; i < n; i++ {
		for j := 0; j < i; j++ {
			data[i*n+j] = data[j*n+i]
		}
	}
}

// GramScalarProduct returns the n×n matrix of scalar products between
// every pair of observations of X, computed as a single symmetric
// rank-k update (X Xᵀ, or Xᵀ X when trans is blas.Trans). Only the upper
// triangle (including the diagonal) is computed; when mirror is true the
// lower triangle is filled in from it, otherwise the lower triangle is
// left zero.
func GramScalarProduct(X *mat.Dense, trans blas.Transpose, mirror bool) (*mat.Dense, error) {
	if err := checkMatrix(X); err != nil {
		return nil, err
	}
	n, _ := obsDims(X, trans)
	c := blas64.Symmetric{
		N:      n,
		Stride: n,
		Data:   make([]float64, n*n),
		Uplo:   blas.Upper,
	}
	blas64.Syrk(trans, 1, X.RawMatrix(), 0, c)
	if mirror {
		mirrorUpper(c.Data, n)
	}
	return mat.NewDense(n, n, c.Data), nil
}

// CrossGramScalarProduct returns the n×m matrix of scalar products
// between the observations of X and those of Y (X Yᵀ, or Xᵀ Y when trans
// is blas.Trans), computed as a single dense multiply. The observation
// dimensions of X and Y must agree.
func CrossGramScalarProduct(X, Y *mat.Dense, trans blas.Transpose) (*mat.Dense, error) {
	if err := checkMatrix(X); err != nil {
		return nil, err
	}
	if err := checkMatrix(Y); err != nil {
		return nil, err
	}
	n, dx := obsDims(X, trans)
	m, dy := obsDims(Y, trans)
	if dx != dy {
		return nil, common.DimensionMismatch{X: dx, Y: dy}
	}
	c := blas64.General{
		Rows:   n,
		Cols:   m,
		Stride: m,
		Data:   make([]float64, n*m),
	}
	if trans == blas.NoTrans {
		blas64.Gemm(blas.NoTrans, blas.Trans, 1, X.RawMatrix(), Y.RawMatrix(), 0, c)
	} else {
		blas64.Gemm(blas.Trans, blas.NoTrans, 1, X.RawMatrix(), Y.RawMatrix(), 0, c)
	}
	return mat.NewDense(n, m, c.Data), nil
}

// GramSquaredDistance returns the n×n matrix of squared distances
// between every pair of observations of X. It is derived from the
// scalar-product Gram matrix via
//
//	d²(i,j) = ‖xᵢ‖² − 2⟨xᵢ,xⱼ⟩ + ‖xⱼ‖²
//
// so the O(n²d) work is a single dense multiply plus an O(n²) correction
// pass. For nearly identical observations the formula can cancel
// catastrophically and produce small negative values; these are clamped
// to zero rather than propagated, and the diagonal is exactly zero. As
// with GramScalarProduct, only the upper triangle is computed unless
// mirror is true.
func GramSquaredDistance(X *mat.Dense, trans blas.Transpose, mirror bool) (*mat.Dense, error) {
	g, err := GramScalarProduct(X, trans, false)
	if err != nil {
		return nil, err
	}
	n, _ := g.Dims()
	data := make([]float64, n*n)
	for i := 0; i < n; i++ {
		gii := g.At(i, i)
		for j := i + 1; j < n; j++ {
			v := gii - 2*g.At(i, j) + g.At(j, j)
			if v < 0 {
				v = 0
			}
			data[i*n+j] = v
		}
	}
	if mirror {
		mirrorUpper(data, n)
	}
	return mat.NewDense(n, n, data), nil
}

// sqNorms returns the squared norm of every observation of X.
func sqNorms(X *mat.Dense, trans blas.Transpose) []float64 {
	n, d := obsDims(X, trans)
	norms := make([]float64, n)
	if trans == blas.NoTrans {
		for i := 0; i < n; i++ {
			row := X.RawRowView(i)
			norms[i] = floats.Dot(row, row)
		}
		return norms
	}
	for i := 0; i < n; i++ {
		var sum float64
		for k := 0; k < d; k++ {
			v := X.At(k, i)
			sum += v * v
		}
		norms[i] = sum
	}
	return norms
}

// CrossGramSquaredDistance returns the n×m matrix of squared distances
// between the observations of X and those of Y, using the observation
// norms of both matrices and one cross scalar-product multiply. The same
// cancellation caveat and zero clamp as GramSquaredDistance apply.
func CrossGramSquaredDistance(X, Y *mat.Dense, trans blas.Transpose) (*mat.Dense, error) {
	g, err := CrossGramScalarProduct(X, Y, trans)
	if err != nil {
		return nil, err
	}
	xn := sqNorms(X, trans)
	yn := sqNorms(Y, trans)
	n, _ := g.Dims()
	for i := 0; i < n; i++ {
		row := g.RawRowView(i)
		for j := range row {
			v := xn[i] - 2*row[j] + yn[j]
			if v < 0 {
				v = 0
			}
			row[j] = v
		}
	}
	return g, nil
}

// BlockOrientation selects the block layout of the squared-distance
// gradient tensor.
type BlockOrientation int

const (
	// BlockRows stacks one n×m block per coordinate vertically: the
	// result is (d·n)×m and block k holds 2a(X[i,k] − Y[j,k]).
	BlockRows BlockOrientation = iota
	// BlockCols places one n×m block per coordinate side by side: the
	// result is n×(d·m).
	BlockCols
)

// GramSquaredDistanceDX returns the per-coordinate scaled differences
// 2a(Xᵢ − Yⱼ) for every observation pair (i,j), laid out as d blocks of
// an n×m matrix according to orient. This is the tensor consumed by
// gradient-based fitting of squared-distance kernels.
func GramSquaredDistanceDX(a float64, X, Y *mat.Dense, trans blas.Transpose, orient BlockOrientation) (*mat.Dense, error) {
	if err := checkMatrix(X); err != nil {
		return nil, err
	}
	if err := checkMatrix(Y); err != nil {
		return nil, err
	}
	n, dx := obsDims(X, trans)
	m, dy := obsDims(Y, trans)
	if dx != dy {
		return nil, common.DimensionMismatch{X: dx, Y: dy}
	}
	at := func(M *mat.Dense, i, k int) float64 {
		if trans == blas.NoTrans {
			return M.At(i, k)
		}
		return M.At(k, i)
	}
	d := dx
	var t *mat.Dense
	if orient == BlockRows {
		t = mat.NewDense(d*n, m, nil)
		for k := 0; k < d; k++ {
			for i := 0; i < n; i++ {
				for j := 0; j < m; j++ {
					t.Set(k*n+i, j, 2*a*(at(X, i, k)-at(Y, j, k)))
				}
			}
		}
		return t, nil
	}
	t = mat.NewDense(n, d*m, nil)
	for k := 0; k < d; k++ {
		for i := 0; i < n; i++ {
			for j := 0; j < m; j++ {
				t.Set(i, k*m+j, 2*a*(at(X, i, k)-at(Y, j, k)))
			}
		}
	}
	return t, nil
}
