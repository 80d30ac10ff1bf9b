package bigcomplex

import (
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// guardBits is the extra working precision carried through series evaluation
// to absorb rounding and cancellation before the final rounding.
const guardBits = 32

// pi returns π at the given precision.
func pi(prec uint) *big.Float {
	return bigfloat.Pi(new(big.Float).SetPrec(prec))
}

// realExp returns e^x at the given precision.
func realExp(x *big.Float, prec uint) *big.Float {
	z := new(big.Float).SetPrec(prec + guardBits).Set(x)
	bigfloat.Exp(z, z)
	return z.SetPrec(prec)
}

// realLog returns ln x for x > 0 at the given precision.
func realLog(x *big.Float, prec uint) *big.Float {
	z := new(big.Float).SetPrec(prec + guardBits).Set(x)
	bigfloat.Log(z, z)
	return z.SetPrec(prec)
}

// realSinCos returns sin x and cos x by Maclaurin series after reducing x
// modulo 2π.
func realSinCos(x *big.Float, prec uint) (sin, cos *big.Float) {
	wp := prec + guardBits
	// Reduction needs π to enough bits to cover x's magnitude, or the
	// subtraction cancels the entire result.
	exp := x.MantExp(nil)
	if exp < 0 {
		exp = 0
	}
	tau := pi(wp + uint(exp) + guardBits)
	tau.Add(tau, tau)
	r := new(big.Float).SetPrec(wp + uint(exp) + guardBits).Set(x)
	q := new(big.Float).Quo(r, tau)
	n, _ := q.Int(nil)
	if n.Sign() != 0 {
		t := new(big.Float).SetPrec(tau.Prec()).SetInt(n)
		r.Sub(r, t.Mul(t, tau))
	}
	r.SetPrec(wp)

	// sin r = Σ (-1)^k r^(2k+1)/(2k+1)!, cos r = Σ (-1)^k r^(2k)/(2k)!.
	// |r| < 2π, so terms shrink monotonically once 2k exceeds 7.
	sin = new(big.Float).SetPrec(wp)
	cos = new(big.Float).SetPrec(wp).SetInt64(1)
	sin.Set(r)
	r2 := new(big.Float).SetPrec(wp).Mul(r, r)
	sterm := new(big.Float).SetPrec(wp).Set(r)
	cterm := new(big.Float).SetPrec(wp).SetInt64(1)
	eps := epsilon(wp)
	for k := int64(1); ; k++ {
		// cterm: r^(2k)/(2k)!, sterm: r^(2k+1)/(2k+1)!
		cterm.Mul(cterm, r2)
		cterm.Quo(cterm, new(big.Float).SetInt64(2*k*(2*k-1)))
		sterm.Mul(sterm, r2)
		sterm.Quo(sterm, new(big.Float).SetInt64(2*k*(2*k+1)))
		if k%2 == 1 {
			cos.Sub(cos, cterm)
			sin.Sub(sin, sterm)
		} else {
			cos.Add(cos, cterm)
			sin.Add(sin, sterm)
		}
		if (cterm.Sign() == 0 || cmpAbs(cterm, eps) < 0) && (sterm.Sign() == 0 || cmpAbs(sterm, eps) < 0) {
			break
		}
	}
	return sin.SetPrec(prec), cos.SetPrec(prec)
}

// realAtan returns arctan x at the given precision.
func realAtan(x *big.Float, prec uint) *big.Float {
	wp := prec + guardBits
	t := new(big.Float).SetPrec(wp).Set(x)
	neg := t.Signbit()
	t.Abs(t)

	// For t > 1 use arctan t = π/2 - arctan 1/t.
	flip := false
	one := new(big.Float).SetPrec(wp).SetInt64(1)
	if t.Cmp(one) > 0 {
		t.Quo(one, t)
		flip = true
	}

	// Halve the argument until it is small enough for the series:
	// arctan t = 2 arctan(t / (1 + sqrt(1 + t²))).
	small := new(big.Float).SetPrec(wp).SetFloat64(0.125)
	doublings := 0
	for t.Cmp(small) > 0 {
		s := new(big.Float).SetPrec(wp).Mul(t, t)
		s.Add(s, one)
		s.Sqrt(s)
		s.Add(s, one)
		t.Quo(t, s)
		doublings++
	}

	// arctan t = Σ (-1)^k t^(2k+1)/(2k+1) for |t| ≤ 1.
	sum := new(big.Float).SetPrec(wp).Set(t)
	t2 := new(big.Float).SetPrec(wp).Mul(t, t)
	pow := new(big.Float).SetPrec(wp).Set(t)
	term := new(big.Float).SetPrec(wp)
	eps := epsilon(wp)
	for k := int64(1); ; k++ {
		pow.Mul(pow, t2)
		term.Quo(pow, new(big.Float).SetInt64(2*k+1))
		if k%2 == 1 {
			sum.Sub(sum, term)
		} else {
			sum.Add(sum, term)
		}
		if term.Sign() == 0 || cmpAbs(term, eps) < 0 {
			break
		}
	}
	for i := 0; i < doublings; i++ {
		sum.Add(sum, sum)
	}
	if flip {
		half := pi(wp)
		half.Quo(half, new(big.Float).SetInt64(2))
		sum.Sub(half, sum)
	}
	if neg {
		sum.Neg(sum)
	}
	return sum.SetPrec(prec)
}

// realAtan2 returns the argument of the point (x, y) in (-π, π].
func realAtan2(y, x *big.Float, prec uint) *big.Float {
	wp := prec + guardBits
	switch {
	case x.Sign() > 0:
		return realAtan(new(big.Float).Quo(y, x), prec)
	case x.Sign() < 0:
		a := realAtan(new(big.Float).Quo(y, x), wp)
		p := pi(wp)
		if y.Sign() < 0 {
			a.Sub(a, p)
		} else {
			a.Add(a, p)
		}
		return a.SetPrec(prec)
	default:
		half := pi(wp)
		half.Quo(half, new(big.Float).SetInt64(2))
		if y.Sign() < 0 {
			half.Neg(half)
		} else if y.Sign() == 0 {
			half.SetInt64(0)
		}
		return half.SetPrec(prec)
	}
}

// realSinhCosh returns sinh x and cosh x via e^x.
func realSinhCosh(x *big.Float, prec uint) (sinh, cosh *big.Float) {
	wp := prec + guardBits
	ex := realExp(x, wp)
	emx := new(big.Float).SetPrec(wp).Quo(new(big.Float).SetInt64(1), ex)
	two := new(big.Float).SetInt64(2)
	sinh = new(big.Float).SetPrec(wp).Sub(ex, emx)
	sinh.Quo(sinh, two)
	cosh = new(big.Float).SetPrec(wp).Add(ex, emx)
	cosh.Quo(cosh, two)
	return sinh.SetPrec(prec), cosh.SetPrec(prec)
}

// epsilon returns 2^-prec, the series-termination threshold.
func epsilon(prec uint) *big.Float {
	e := new(big.Float).SetPrec(32).SetInt64(1)
	return e.SetMantExp(e, -int(prec))
}

// cmpAbs compares |a| with |b|.
func cmpAbs(a, b *big.Float) int {
	x := new(big.Float).Abs(a)
	y := new(big.Float).Abs(b)
	return x.Cmp(y)
}
