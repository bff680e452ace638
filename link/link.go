// Package link implements the composition classes of the kernel algebra:
// scalar link functions applied to a pairwise statistic value, together
// with their derivatives with respect to the statistic and with respect
// to their own parameters.
//
// Each class is an immutable value type. Parameters are validated by the
// New… constructor and cannot be changed afterwards; reparameterization
// constructs a new value. Every Link is a pure function of z and the
// class's own parameters.
package link

import (
	"github.com/kerngo/kerngo/common"
)

// init registers the classes so they can be encoded and decoded as
// interface values
func init() {
	common.Register(Exponential{})
	common.Register(RationalQuadratic{})
	common.Register(Polynomial{})
	common.Register(TranslationScale{})
	common.Register(Sigmoid{})
	common.Register(Periodic{})
	common.Register(Matern{})
}

// Linker is the interface of a composition class. It has three methods:
// 1) Link, the link function itself, taking the pairwise statistic value
// z and returning the composed value.
// 2) DLinkDZ, the derivative of the link function with respect to z,
// used by the kernel chain rule.
// 3) DLinkDParam, the derivative of the link function with respect to
// each of the class's own parameters, written into deriv for use in
// gradient-based kernel-parameter fitting. DLinkDParam panics if
// len(deriv) != NumParameters().
type Linker interface {
	Link(z float64) float64
	DLinkDZ(z float64) float64
	DLinkDParam(z float64, deriv []float64)
	NumParameters() int
	String() string
}

const derivLenMismatch = "link: parameter derivative length mismatch"

func checkDeriv(deriv []float64, n int) {
	if len(deriv) != n {
		panic(derivLenMismatch)
	}
}
