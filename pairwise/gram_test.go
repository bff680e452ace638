package pairwise

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/mat"

	"github.com/kerngo/kerngo/common"
)

var approx = cmpopts.EquateApprox(1e-12, 1e-12)

// obs returns observation i of X under the given orientation.
func obs(X *mat.Dense, trans blas.Transpose, i int) []float64 {
	_, d := obsDims(X, trans)
	v := make([]float64, d)
	for k := 0; k < d; k++ {
		if trans == blas.NoTrans {
			v[k] = X.At(i, k)
		} else {
			v[k] = X.At(k, i)
		}
	}
	return v
}

func naiveGram(X, Y *mat.Dense, trans blas.Transpose, f func(x, y []float64) float64) [][]float64 {
	n, _ := obsDims(X, trans)
	m, _ := obsDims(Y, trans)
	g := make([][]float64, n)
	for i := 0; i < n; i++ {
		g[i] = make([]float64, m)
		for j := 0; j < m; j++ {
			g[i][j] = f(obs(X, trans, i), obs(Y, trans, j))
		}
	}
	return g
}

func denseRows(g *mat.Dense) [][]float64 {
	n, m := g.Dims()
	rows := make([][]float64, n)
	for i := 0; i < n; i++ {
		rows[i] = make([]float64, m)
		for j := 0; j < m; j++ {
			rows[i][j] = g.At(i, j)
		}
	}
	return rows
}

var (
	testX = mat.NewDense(4, 3, []float64{
		1, 2, 3,
		4, 5, 6,
		-1, 0.5, 2,
		0, 0, 1,
	})
	testY = mat.NewDense(2, 3, []float64{
		2, 1, 0,
		-3, 4, 1,
	})
)

func TestGramScalarProduct(t *testing.T) {
	for _, trans := range []blas.Transpose{blas.NoTrans, blas.Trans} {
		X := testX
		if trans == blas.Trans {
			var xt mat.Dense
			xt.CloneFrom(testX.T())
			X = &xt
		}
		g, err := GramScalarProduct(X, trans, true)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		want := naiveGram(X, X, trans, ScalarProduct)
		if diff := cmp.Diff(want, denseRows(g), approx); diff != "" {
			t.Errorf("Gram doesn't match naive computation (-want +got):\n%s", diff)
		}
		// Symmetric, and the diagonal holds the per-observation squared norms
		n, _ := g.Dims()
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if g.At(i, j) != g.At(j, i) {
					t.Errorf("Mirrored Gram not symmetric at (%v,%v)", i, j)
				}
			}
			xi := obs(X, trans, i)
			if norm := ScalarProduct(xi, xi); math.Abs(g.At(i, i)-norm) > 1e-10*norm {
				t.Errorf("Diagonal is not the squared norm at %v", i)
			}
		}
	}
}

func TestGramScalarProductUpperOnly(t *testing.T) {
	g, err := GramScalarProduct(testX, blas.NoTrans, false)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	n, _ := g.Dims()
	for i := 0; i < n; i++ {
		for j := 0; j < i; j++ {
			if g.At(i, j) != 0 {
				t.Errorf("Lower triangle not zero at (%v,%v) without mirroring", i, j)
			}
		}
	}
}

func TestCrossGramScalarProduct(t *testing.T) {
	g, err := CrossGramScalarProduct(testX, testY, blas.NoTrans)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	want := naiveGram(testX, testY, blas.NoTrans, ScalarProduct)
	if diff := cmp.Diff(want, denseRows(g), approx); diff != "" {
		t.Errorf("Cross Gram doesn't match naive computation (-want +got):\n%s", diff)
	}

	bad := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	if _, err := CrossGramScalarProduct(testX, bad, blas.NoTrans); err == nil {
		t.Errorf("No error for mismatched observation dimensions")
	} else if _, ok := err.(common.DimensionMismatch); !ok {
		t.Errorf("Wrong error type for mismatched dimensions: %v", err)
	}
}

func TestGramSquaredDistance(t *testing.T) {
	for _, trans := range []blas.Transpose{blas.NoTrans, blas.Trans} {
		X := testX
		if trans == blas.Trans {
			var xt mat.Dense
			xt.CloneFrom(testX.T())
			X = &xt
		}
		g, err := GramSquaredDistance(X, trans, true)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		want := naiveGram(X, X, trans, SquaredDistance)
		if diff := cmp.Diff(want, denseRows(g), approx); diff != "" {
			t.Errorf("Squared-distance Gram doesn't match naive computation (-want +got):\n%s", diff)
		}
		n, _ := g.Dims()
		for i := 0; i < n; i++ {
			if g.At(i, i) != 0 {
				t.Errorf("Diagonal not exactly zero at %v", i)
			}
		}
	}
}

// Near-duplicate observations can cancel catastrophically in the
// ‖x‖²-2⟨x,y⟩+‖y‖² formula; the result must be clamped, never negative.
func TestGramSquaredDistanceClamp(t *testing.T) {
	X := mat.NewDense(3, 2, []float64{
		1e8, 1e8,
		1e8, 1e8 + 1e-8,
		1e8 + 1e-8, 1e8,
	})
	g, err := GramSquaredDistance(X, blas.NoTrans, true)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	n, _ := g.Dims()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if g.At(i, j) < 0 {
				t.Errorf("Negative squared distance at (%v,%v): %v", i, j, g.At(i, j))
			}
		}
	}
}

func TestCrossGramSquaredDistance(t *testing.T) {
	g, err := CrossGramSquaredDistance(testX, testY, blas.NoTrans)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	want := naiveGram(testX, testY, blas.NoTrans, SquaredDistance)
	if diff := cmp.Diff(want, denseRows(g), approx); diff != "" {
		t.Errorf("Cross squared-distance Gram doesn't match naive computation (-want +got):\n%s", diff)
	}
}

func TestGramSquaredDistanceDX(t *testing.T) {
	const a = 1.5
	n, d := testX.Dims()
	m, _ := testY.Dims()

	rows, err := GramSquaredDistanceDX(a, testX, testY, blas.NoTrans, BlockRows)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	cols, err := GramSquaredDistanceDX(a, testX, testY, blas.NoTrans, BlockCols)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if r, c := rows.Dims(); r != d*n || c != m {
		t.Fatalf("BlockRows dims wrong: %v×%v", r, c)
	}
	if r, c := cols.Dims(); r != n || c != d*m {
		t.Fatalf("BlockCols dims wrong: %v×%v", r, c)
	}
	for k := 0; k < d; k++ {
		for i := 0; i < n; i++ {
			for j := 0; j < m; j++ {
				want := 2 * a * (testX.At(i, k) - testY.At(j, k))
				if got := rows.At(k*n+i, j); got != want {
					t.Errorf("BlockRows (%v,%v,%v): %v expected, %v found", k, i, j, want, got)
				}
				if got := cols.At(i, k*m+j); got != want {
					t.Errorf("BlockCols (%v,%v,%v): %v expected, %v found", k, i, j, want, got)
				}
			}
		}
	}

	bad := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	if _, err := GramSquaredDistanceDX(a, testX, bad, blas.NoTrans, BlockRows); err == nil {
		t.Errorf("No error for mismatched observation dimensions")
	}
}

func TestGramNoData(t *testing.T) {
	if _, err := GramScalarProduct(nil, blas.NoTrans, true); err != common.NoData {
		t.Errorf("Expected NoData for nil matrix, got %v", err)
	}
	if _, err := GramSquaredDistance(nil, blas.NoTrans, true); err != common.NoData {
		t.Errorf("Expected NoData for nil matrix, got %v", err)
	}
}
