package link

import (
	"encoding/json"
	"math"

	"github.com/kerngo/kerngo/common"
)

// Exponential is the exponential class, link(z) = exp(-alpha * z^gamma).
// Composed over the squared distance it yields the Gaussian kernel when
// gamma = 1 and the Laplacian kernel when gamma = 1/2.
type Exponential struct {
	alpha float64
	gamma float64
}

// NewExponential constructs an Exponential class. alpha must be
// positive, gamma must be in (0, 1].
func NewExponential(alpha, gamma float64) (Exponential, error) {
	if alpha <= 0 {
		return Exponential{}, common.ParameterDomain{Class: "Exponential", Param: "alpha", Value: alpha, Domain: "> 0"}
	}
	if gamma <= 0 || gamma > 1 {
		return Exponential{}, common.ParameterDomain{Class: "Exponential", Param: "gamma", Value: gamma, Domain: "(0, 1]"}
	}
	return Exponential{alpha: alpha, gamma: gamma}, nil
}

func (e Exponential) Link(z float64) float64 {
	return math.Exp(-e.alpha * math.Pow(z, e.gamma))
}

// DLinkDZ computes the derivative of the link function with respect to
// the statistic value, -alpha*gamma*z^(gamma-1)*link(z). For gamma < 1
// the derivative is unbounded as z -> 0, which is the true behavior of
// the function, not an artifact.
func (e Exponential) DLinkDZ(z float64) float64 {
	if e.gamma == 1 {
		return -e.alpha * e.Link(z)
	}
	return -e.alpha * e.gamma * math.Pow(z, e.gamma-1) * e.Link(z)
}

func (e Exponential) DLinkDParam(z float64, deriv []float64) {
	checkDeriv(deriv, 2)
	if z == 0 {
		deriv[0] = 0
		deriv[1] = 0
		return
	}
	zg := math.Pow(z, e.gamma)
	f := math.Exp(-e.alpha * zg)
	deriv[0] = -zg * f
	deriv[1] = -e.alpha * zg * math.Log(z) * f
}

func (e Exponential) NumParameters() int { return 2 }

func (Exponential) String() string { return "Exponential" }

type exponentialJSON struct {
	Alpha float64
	Gamma float64
}

func (e Exponential) MarshalJSON() ([]byte, error) {
	return json.Marshal(exponentialJSON{Alpha: e.alpha, Gamma: e.gamma})
}

func (e *Exponential) UnmarshalJSON(data []byte) error {
	var p exponentialJSON
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	v, err := NewExponential(p.Alpha, p.Gamma)
	if err != nil {
		return err
	}
	*e = v
	return nil
}

// RationalQuadratic is the rational-quadratic class,
// link(z) = (1 + alpha*z)^(-beta).
type RationalQuadratic struct {
	alpha float64
	beta  float64
}

// NewRationalQuadratic constructs a RationalQuadratic class. Both alpha
// and beta must be positive.
func NewRationalQuadratic(alpha, beta float64) (RationalQuadratic, error) {
	if alpha <= 0 {
		return RationalQuadratic{}, common.ParameterDomain{Class: "RationalQuadratic", Param: "alpha", Value: alpha, Domain: "> 0"}
	}
	if beta <= 0 {
		return RationalQuadratic{}, common.ParameterDomain{Class: "RationalQuadratic", Param: "beta", Value: beta, Domain: "> 0"}
	}
	return RationalQuadratic{alpha: alpha, beta: beta}, nil
}

func (r RationalQuadratic) Link(z float64) float64 {
	return math.Pow(1+r.alpha*z, -r.beta)
}

func (r RationalQuadratic) DLinkDZ(z float64) float64 {
	return -r.alpha * r.beta * math.Pow(1+r.alpha*z, -r.beta-1)
}

func (r RationalQuadratic) DLinkDParam(z float64, deriv []float64) {
	checkDeriv(deriv, 2)
	base := 1 + r.alpha*z
	deriv[0] = -r.beta * z * math.Pow(base, -r.beta-1)
	deriv[1] = -math.Log(base) * math.Pow(base, -r.beta)
}

func (r RationalQuadratic) NumParameters() int { return 2 }

func (RationalQuadratic) String() string { return "RationalQuadratic" }

type rationalQuadraticJSON struct {
	Alpha float64
	Beta  float64
}

func (r RationalQuadratic) MarshalJSON() ([]byte, error) {
	return json.Marshal(rationalQuadraticJSON{Alpha: r.alpha, Beta: r.beta})
}

func (r *RationalQuadratic) UnmarshalJSON(data []byte) error {
	var p rationalQuadraticJSON
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	v, err := NewRationalQuadratic(p.Alpha, p.Beta)
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// Polynomial is the polynomial class, link(z) = (a*z + c)^degree.
type Polynomial struct {
	a      float64
	c      float64
	degree int
}

// NewPolynomial constructs a Polynomial class. a must be positive, c
// non-negative, and degree a positive integer.
func NewPolynomial(a, c float64, degree int) (Polynomial, error) {
	if a <= 0 {
		return Polynomial{}, common.ParameterDomain{Class: "Polynomial", Param: "a", Value: a, Domain: "> 0"}
	}
	if c < 0 {
		return Polynomial{}, common.ParameterDomain{Class: "Polynomial", Param: "c", Value: c, Domain: ">= 0"}
	}
	if degree < 1 {
		return Polynomial{}, common.ParameterDomain{Class: "Polynomial", Param: "degree", Value: float64(degree), Domain: ">= 1"}
	}
	return Polynomial{a: a, c: c, degree: degree}, nil
}

func (p Polynomial) Link(z float64) float64 {
	return math.Pow(p.a*z+p.c, float64(p.degree))
}

func (p Polynomial) DLinkDZ(z float64) float64 {
	return p.a * float64(p.degree) * math.Pow(p.a*z+p.c, float64(p.degree-1))
}

func (p Polynomial) DLinkDParam(z float64, deriv []float64) {
	checkDeriv(deriv, 3)
	base := p.a*z + p.c
	d := float64(p.degree)
	deriv[0] = d * z * math.Pow(base, d-1)
	deriv[1] = d * math.Pow(base, d-1)
	// The degree term is only defined where the base is positive.
	if base > 0 {
		deriv[2] = math.Log(base) * math.Pow(base, d)
	} else {
		deriv[2] = 0
	}
}

func (p Polynomial) NumParameters() int { return 3 }

func (Polynomial) String() string { return "Polynomial" }

type polynomialJSON struct {
	A      float64
	C      float64
	Degree int
}

func (p Polynomial) MarshalJSON() ([]byte, error) {
	return json.Marshal(polynomialJSON{A: p.a, C: p.c, Degree: p.degree})
}

func (p *Polynomial) UnmarshalJSON(data []byte) error {
	var q polynomialJSON
	if err := json.Unmarshal(data, &q); err != nil {
		return err
	}
	v, err := NewPolynomial(q.A, q.C, q.Degree)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// TranslationScale is the affine class, link(z) = alpha*z + c. Composed
// over the scalar product it yields the linear kernel.
type TranslationScale struct {
	alpha float64
	c     float64
}

// NewTranslationScale constructs a TranslationScale class. alpha must
// be positive.
func NewTranslationScale(alpha, c float64) (TranslationScale, error) {
	if alpha <= 0 {
		return TranslationScale{}, common.ParameterDomain{Class: "TranslationScale", Param: "alpha", Value: alpha, Domain: "> 0"}
	}
	return TranslationScale{alpha: alpha, c: c}, nil
}

func (t TranslationScale) Link(z float64) float64 {
	return t.alpha*z + t.c
}

func (t TranslationScale) DLinkDZ(z float64) float64 {
	return t.alpha
}

func (t TranslationScale) DLinkDParam(z float64, deriv []float64) {
	checkDeriv(deriv, 2)
	deriv[0] = z
	deriv[1] = 1
}

func (t TranslationScale) NumParameters() int { return 2 }

func (TranslationScale) String() string { return "TranslationScale" }

type translationScaleJSON struct {
	Alpha float64
	C     float64
}

func (t TranslationScale) MarshalJSON() ([]byte, error) {
	return json.Marshal(translationScaleJSON{Alpha: t.alpha, C: t.c})
}

func (t *TranslationScale) UnmarshalJSON(data []byte) error {
	var p translationScaleJSON
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	v, err := NewTranslationScale(p.Alpha, p.C)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Sigmoid is the sigmoid class, link(z) = tanh(alpha*z + c).
type Sigmoid struct {
	alpha float64
	c     float64
}

// NewSigmoid constructs a Sigmoid class. alpha must be positive.
func NewSigmoid(alpha, c float64) (Sigmoid, error) {
	if alpha <= 0 {
		return Sigmoid{}, common.ParameterDomain{Class: "Sigmoid", Param: "alpha", Value: alpha, Domain: "> 0"}
	}
	return Sigmoid{alpha: alpha, c: c}, nil
}

func (s Sigmoid) Link(z float64) float64 {
	return math.Tanh(s.alpha*z + s.c)
}

func (s Sigmoid) DLinkDZ(z float64) float64 {
	tanh := math.Tanh(s.alpha*z + s.c)
	return s.alpha * (1 - tanh*tanh)
}

func (s Sigmoid) DLinkDParam(z float64, deriv []float64) {
	checkDeriv(deriv, 2)
	tanh := math.Tanh(s.alpha*z + s.c)
	sech2 := 1 - tanh*tanh
	deriv[0] = z * sech2
	deriv[1] = sech2
}

func (s Sigmoid) NumParameters() int { return 2 }

func (Sigmoid) String() string { return "Sigmoid" }

type sigmoidJSON struct {
	Alpha float64
	C     float64
}

func (s Sigmoid) MarshalJSON() ([]byte, error) {
	return json.Marshal(sigmoidJSON{Alpha: s.alpha, C: s.c})
}

func (s *Sigmoid) UnmarshalJSON(data []byte) error {
	var p sigmoidJSON
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	v, err := NewSigmoid(p.Alpha, p.C)
	if err != nil {
		return err
	}
	*s = v
	return nil
}
