package kernel

import (
	"github.com/kerngo/kerngo/link"
	"github.com/kerngo/kerngo/pairwise"
)

// Named kernel constructors. Each is a pure parameterization of a
// composition class over a pairwise statistic; the class constructor
// does the parameter-domain validation.

// NewGaussian returns the Gaussian (squared exponential) kernel
//
//	k(x, y) = exp(-bandwidth * ‖x-y‖²)
func NewGaussian(bandwidth float64) (Kernel, error) {
	class, err := link.NewExponential(bandwidth, 1)
	if err != nil {
		return Kernel{}, err
	}
	return New(class, pairwise.SqDistance)
}

// NewRBF is a synonym for NewGaussian; the radial-basis-function kernel
// is the same kernel under another name.
func NewRBF(bandwidth float64) (Kernel, error) {
	return NewGaussian(bandwidth)
}

// NewLaplacian returns the Laplacian kernel
//
//	k(x, y) = exp(-bandwidth * ‖x-y‖)
func NewLaplacian(bandwidth float64) (Kernel, error) {
	class, err := link.NewExponential(bandwidth, 0.5)
	if err != nil {
		return Kernel{}, err
	}
	return New(class, pairwise.SqDistance)
}

// NewRationalQuadratic returns the rational-quadratic kernel
//
//	k(x, y) = (1 + alpha * ‖x-y‖²)^(-beta)
func NewRationalQuadratic(alpha, beta float64) (Kernel, error) {
	class, err := link.NewRationalQuadratic(alpha, beta)
	if err != nil {
		return Kernel{}, err
	}
	return New(class, pairwise.SqDistance)
}

// NewPeriodic returns the periodic kernel
//
//	k(x, y) = exp(-2 sin²(π ‖x-y‖ / period) / lengthScale²)
func NewPeriodic(period, lengthScale float64) (Kernel, error) {
	class, err := link.NewPeriodic(period, lengthScale)
	if err != nil {
		return Kernel{}, err
	}
	return New(class, pairwise.SqDistance)
}

// NewMatern returns the Matérn kernel of order nu ∈ {1/2, 3/2, 5/2}
// with the given length scale. See link.Matern for the closed forms.
func NewMatern(nu, lengthScale float64) (Kernel, error) {
	class, err := link.NewMatern(nu, lengthScale)
	if err != nil {
		return Kernel{}, err
	}
	return New(class, pairwise.SqDistance)
}

// NewPolynomial returns the polynomial kernel
//
//	k(x, y) = (a * ⟨x,y⟩ + c)^degree
func NewPolynomial(a, c float64, degree int) (Kernel, error) {
	class, err := link.NewPolynomial(a, c, degree)
	if err != nil {
		return Kernel{}, err
	}
	return New(class, pairwise.DotProduct)
}

// NewLinear returns the linear kernel
//
//	k(x, y) = a * ⟨x,y⟩ + c
func NewLinear(a, c float64) (Kernel, error) {
	class, err := link.NewTranslationScale(a, c)
	if err != nil {
		return Kernel{}, err
	}
	return New(class, pairwise.DotProduct)
}

// NewSigmoid returns the sigmoid kernel
//
//	k(x, y) = tanh(alpha * ⟨x,y⟩ + c)
func NewSigmoid(alpha, c float64) (Kernel, error) {
	class, err := link.NewSigmoid(alpha, c)
	if err != nil {
		return Kernel{}, err
	}
	return New(class, pairwise.DotProduct)
}
