package link

import (
	"encoding/json"
	"math"

	"github.com/kerngo/kerngo/common"
)

// Periodic and Matern are links over the squared distance that are not
// expressible with the base classes; they are extra variants of the
// closed class set.

// Periodic is the exp-sine class over the squared distance,
//
//	link(z) = exp(-2 sin²(π √z / period) / lengthScale²)
//
// which is the standard periodic kernel with r = √z.
type Periodic struct {
	period float64
	length float64
}

// NewPeriodic constructs a Periodic class. Both the period and the
// length scale must be positive.
func NewPeriodic(period, lengthScale float64) (Periodic, error) {
	if period <= 0 {
		return Periodic{}, common.ParameterDomain{Class: "Periodic", Param: "period", Value: period, Domain: "> 0"}
	}
	if lengthScale <= 0 {
		return Periodic{}, common.ParameterDomain{Class: "Periodic", Param: "lengthScale", Value: lengthScale, Domain: "> 0"}
	}
	return Periodic{period: period, length: lengthScale}, nil
}

func (p Periodic) Link(z float64) float64 {
	sin := math.Sin(math.Pi * math.Sqrt(z) / p.period)
	return math.Exp(-2 * sin * sin / (p.length * p.length))
}

func (p Periodic) DLinkDZ(z float64) float64 {
	l2 := p.length * p.length
	if z == 0 {
		// Limit of the expression below as z -> 0.
		return -2 * math.Pi * math.Pi / (p.period * p.period * l2)
	}
	r := math.Sqrt(z)
	u := math.Pi * r / p.period
	return -math.Pi * math.Sin(2*u) / (l2 * p.period * r) * p.Link(z)
}

func (p Periodic) DLinkDParam(z float64, deriv []float64) {
	checkDeriv(deriv, 2)
	l2 := p.length * p.length
	r := math.Sqrt(z)
	u := math.Pi * r / p.period
	sin := math.Sin(u)
	f := math.Exp(-2 * sin * sin / l2)
	if z == 0 {
		deriv[0] = 0
	} else {
		deriv[0] = 2 * math.Pi * r * math.Sin(2*u) / (l2 * p.period * p.period) * f
	}
	deriv[1] = 4 * sin * sin / (l2 * p.length) * f
}

func (p Periodic) NumParameters() int { return 2 }

func (Periodic) String() string { return "Periodic" }

type periodicJSON struct {
	Period      float64
	LengthScale float64
}

func (p Periodic) MarshalJSON() ([]byte, error) {
	return json.Marshal(periodicJSON{Period: p.period, LengthScale: p.length})
}

func (p *Periodic) UnmarshalJSON(data []byte) error {
	var q periodicJSON
	if err := json.Unmarshal(data, &q); err != nil {
		return err
	}
	v, err := NewPeriodic(q.Period, q.LengthScale)
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Matern is the Matérn class over the squared distance, with r = √z and
// a = √(2ν)/lengthScale:
//
//	ν = 1/2:  exp(-a r)
//	ν = 3/2:  (1 + a r) exp(-a r)
//	ν = 5/2:  (1 + a r + a²r²/3) exp(-a r)
//
// These are the exact closed forms of the modified-Bessel-function
// Matérn formula at half-integer order; other orders are rejected at
// construction since no closed form exists and the general K_ν is not
// available. The order ν is structural, like the SDE order of a
// state-space kernel, so the only learnable parameter is the length
// scale.
type Matern struct {
	nu     float64
	length float64
	a      float64
}

// NewMatern constructs a Matern class. nu must be one of 1/2, 3/2, 5/2
// and the length scale must be positive.
func NewMatern(nu, lengthScale float64) (Matern, error) {
	if nu != 0.5 && nu != 1.5 && nu != 2.5 {
		return Matern{}, common.ParameterDomain{Class: "Matern", Param: "nu", Value: nu, Domain: "one of 1/2, 3/2, 5/2"}
	}
	if lengthScale <= 0 {
		return Matern{}, common.ParameterDomain{Class: "Matern", Param: "lengthScale", Value: lengthScale, Domain: "> 0"}
	}
	return Matern{nu: nu, length: lengthScale, a: math.Sqrt(2*nu) / lengthScale}, nil
}

func (m Matern) Link(z float64) float64 {
	ar := m.a * math.Sqrt(z)
	switch m.nu {
	case 0.5:
		return math.Exp(-ar)
	case 1.5:
		return (1 + ar) * math.Exp(-ar)
	}
	return (1 + ar + ar*ar/3) * math.Exp(-ar)
}

// DLinkDZ computes the derivative of the link function with respect to
// the squared distance. For ν = 1/2 the derivative is unbounded as
// z -> 0, exactly as for the Laplacian kernel.
func (m Matern) DLinkDZ(z float64) float64 {
	r := math.Sqrt(z)
	ar := m.a * r
	switch m.nu {
	case 0.5:
		return -m.a / (2 * r) * math.Exp(-ar)
	case 1.5:
		return -m.a * m.a / 2 * math.Exp(-ar)
	}
	return -m.a * m.a / 6 * (1 + ar) * math.Exp(-ar)
}

func (m Matern) DLinkDParam(z float64, deriv []float64) {
	checkDeriv(deriv, 1)
	r := math.Sqrt(z)
	ar := m.a * r
	switch m.nu {
	case 0.5:
		deriv[0] = ar / m.length * math.Exp(-ar)
	case 1.5:
		deriv[0] = ar * ar / m.length * math.Exp(-ar)
	default:
		deriv[0] = ar * ar / (3 * m.length) * (1 + ar) * math.Exp(-ar)
	}
}

func (m Matern) NumParameters() int { return 1 }

func (Matern) String() string { return "Matern" }

type maternJSON struct {
	Nu          float64
	LengthScale float64
}

func (m Matern) MarshalJSON() ([]byte, error) {
	return json.Marshal(maternJSON{Nu: m.nu, LengthScale: m.length})
}

func (m *Matern) UnmarshalJSON(data []byte) error {
	var p maternJSON
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	v, err := NewMatern(p.Nu, p.LengthScale)
	if err != nil {
		return err
	}
	*m = v
	return nil
}
