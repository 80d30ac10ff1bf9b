package bigcomplex

import (
	"math/big"
	"math/rand"

	"github.com/zephyrtronium/bigfloat"
)

// Pi returns π at the given precision.
func Pi(prec uint) *Complex {
	return FromFloat(pi(prec))
}

// E returns Euler's number at the given precision.
func E(prec uint) *Complex {
	one := new(big.Float).SetPrec(prec + guardBits).SetInt64(1)
	return FromFloat(realExp(one, prec))
}

// Exp returns e^z.
func Exp(z *Complex, prec uint) *Complex {
	if z.IsReal() {
		return FromFloat(realExp(z.re, prec))
	}
	// e^(a+bi) = e^a (cos b + i sin b)
	wp := prec + guardBits
	ea := realExp(z.re, wp)
	sin, cos := realSinCos(z.im, wp)
	re := new(big.Float).Mul(ea, cos)
	im := new(big.Float).Mul(ea, sin)
	return &Complex{re: re.SetPrec(prec), im: im.SetPrec(prec)}
}

// Log returns the principal natural logarithm of z. The logarithm of zero is
// an error.
func Log(z *Complex, prec uint) (*Complex, error) {
	if z.IsZero() {
		return nil, ErrLogOfZero
	}
	if z.IsReal() && z.re.Sign() > 0 {
		return FromFloat(realLog(z.re, prec)), nil
	}
	// ln z = ln|z| + i arg z
	wp := prec + guardBits
	mag := new(big.Float).SetPrec(wp).Mul(z.re, z.re)
	mag.Add(mag, new(big.Float).Mul(z.im, z.im))
	re := realLog(mag, wp)
	re.Quo(re, new(big.Float).SetInt64(2))
	im := realAtan2(z.im, z.re, wp)
	return &Complex{re: re.SetPrec(prec), im: im.SetPrec(prec)}, nil
}

// Sqrt returns the principal square root of z.
func Sqrt(z *Complex, prec uint) *Complex {
	if z.IsZero() {
		return Zero(prec)
	}
	if z.IsReal() && z.re.Sign() > 0 {
		r := new(big.Float).SetPrec(prec + guardBits).Sqrt(z.re)
		return FromFloat(r.SetPrec(prec))
	}
	l, _ := Log(z, prec+guardBits) // z is not zero
	l.re.Quo(l.re, new(big.Float).SetInt64(2))
	l.im.Quo(l.im, new(big.Float).SetInt64(2))
	return Exp(l, prec)
}

// PowInt returns z^n by binary exponentiation. Negative n inverts the
// positive power; raising zero to a negative power is an error.
func PowInt(z *Complex, n *big.Int, prec uint) (*Complex, error) {
	if n.Sign() == 0 {
		return One(prec), nil
	}
	if z.IsZero() && n.Sign() < 0 {
		return nil, ErrZeroToNegative
	}
	e := new(big.Int).Abs(n)
	wp := prec + guardBits
	result := One(wp)
	sq := New(z.re, z.im)
	for i := 0; i < e.BitLen(); i++ {
		if e.Bit(i) == 1 {
			result = Mul(result, sq)
		}
		if i < e.BitLen()-1 {
			sq = Mul(sq, sq)
		}
	}
	if n.Sign() < 0 {
		inv, err := Div(One(wp), result)
		if err != nil {
			return nil, err
		}
		result = inv
	}
	return &Complex{re: result.re.SetPrec(prec), im: result.im.SetPrec(prec)}, nil
}

// Pow returns z^w. Integer exponents use exact binary exponentiation; other
// exponents go through exp(w ln z).
func Pow(z, w *Complex, prec uint) (*Complex, error) {
	if w.IsInt() {
		return PowInt(z, w.Int(), prec)
	}
	if z.IsZero() {
		// 0^w for non-integer w: defined only when w is real and positive.
		if w.IsReal() && w.re.Sign() > 0 {
			return Zero(prec), nil
		}
		return nil, ErrZeroToNegative
	}
	l, err := Log(z, prec+guardBits)
	if err != nil {
		return nil, err
	}
	return Exp(Mul(w, l), prec), nil
}

// Sin returns sin z.
func Sin(z *Complex, prec uint) *Complex {
	if z.IsReal() {
		s, _ := realSinCos(z.re, prec)
		return FromFloat(s)
	}
	// sin(a+bi) = sin a cosh b + i cos a sinh b
	wp := prec + guardBits
	sin, cos := realSinCos(z.re, wp)
	sinh, cosh := realSinhCosh(z.im, wp)
	re := new(big.Float).Mul(sin, cosh)
	im := new(big.Float).Mul(cos, sinh)
	return &Complex{re: re.SetPrec(prec), im: im.SetPrec(prec)}
}

// Cos returns cos z.
func Cos(z *Complex, prec uint) *Complex {
	if z.IsReal() {
		_, c := realSinCos(z.re, prec)
		return FromFloat(c)
	}
	// cos(a+bi) = cos a cosh b - i sin a sinh b
	wp := prec + guardBits
	sin, cos := realSinCos(z.re, wp)
	sinh, cosh := realSinhCosh(z.im, wp)
	re := new(big.Float).Mul(cos, cosh)
	im := new(big.Float).Mul(sin, sinh)
	im.Neg(im)
	return &Complex{re: re.SetPrec(prec), im: im.SetPrec(prec)}
}

// Tan returns tan z. Poles of the tangent are reported as division by zero.
func Tan(z *Complex, prec uint) (*Complex, error) {
	wp := prec + guardBits
	r, err := Div(Sin(z, wp), Cos(z, wp))
	if err != nil {
		return nil, err
	}
	return &Complex{re: r.re.SetPrec(prec), im: r.im.SetPrec(prec)}, nil
}

// Sinc returns sin z / z, with sinc 0 = 1.
func Sinc(z *Complex, prec uint) *Complex {
	if z.IsZero() {
		return One(prec)
	}
	r, _ := Div(Sin(z, prec+guardBits), z) // z is not zero
	return &Complex{re: r.re.SetPrec(prec), im: r.im.SetPrec(prec)}
}

// Sinh returns sinh z.
func Sinh(z *Complex, prec uint) *Complex {
	if z.IsReal() {
		s, _ := realSinhCosh(z.re, prec)
		return FromFloat(s)
	}
	// sinh z = -i sin(iz)
	return mulMinusI(Sin(mulI(z), prec))
}

// Cosh returns cosh z.
func Cosh(z *Complex, prec uint) *Complex {
	if z.IsReal() {
		_, c := realSinhCosh(z.re, prec)
		return FromFloat(c)
	}
	// cosh z = cos(iz)
	return Cos(mulI(z), prec)
}

// Tanh returns tanh z.
func Tanh(z *Complex, prec uint) (*Complex, error) {
	wp := prec + guardBits
	r, err := Div(Sinh(z, wp), Cosh(z, wp))
	if err != nil {
		return nil, err
	}
	return &Complex{re: r.re.SetPrec(prec), im: r.im.SetPrec(prec)}, nil
}

// Asin returns the principal arcsine: asin z = -i ln(iz + sqrt(1 - z²)).
func Asin(z *Complex, prec uint) (*Complex, error) {
	wp := prec + guardBits
	one := One(wp)
	s := Sqrt(Sub(one, Mul(z, z)), wp)
	l, err := Log(Add(mulI(z), s), wp)
	if err != nil {
		return nil, err
	}
	r := mulMinusI(l)
	return &Complex{re: r.re.SetPrec(prec), im: r.im.SetPrec(prec)}, nil
}

// Acos returns the principal arccosine: acos z = π/2 - asin z.
func Acos(z *Complex, prec uint) (*Complex, error) {
	wp := prec + guardBits
	a, err := Asin(z, wp)
	if err != nil {
		return nil, err
	}
	half := pi(wp)
	half.Quo(half, new(big.Float).SetInt64(2))
	r := Sub(FromFloat(half), a)
	return &Complex{re: r.re.SetPrec(prec), im: r.im.SetPrec(prec)}, nil
}

// Atan returns the principal arctangent: atan z = (i/2)(ln(1-iz) - ln(1+iz)).
func Atan(z *Complex, prec uint) (*Complex, error) {
	if z.IsReal() {
		return FromFloat(realAtan(z.re, prec)), nil
	}
	wp := prec + guardBits
	one := One(wp)
	iz := mulI(z)
	a, err := Log(Sub(one, iz), wp)
	if err != nil {
		return nil, err
	}
	b, err := Log(Add(one, iz), wp)
	if err != nil {
		return nil, err
	}
	d := mulI(Sub(a, b))
	d.re.Quo(d.re, new(big.Float).SetInt64(2))
	d.im.Quo(d.im, new(big.Float).SetInt64(2))
	return &Complex{re: d.re.SetPrec(prec), im: d.im.SetPrec(prec)}, nil
}

// Asinh returns the principal inverse hyperbolic sine:
// asinh z = ln(z + sqrt(z² + 1)).
func Asinh(z *Complex, prec uint) (*Complex, error) {
	wp := prec + guardBits
	s := Sqrt(Add(Mul(z, z), One(wp)), wp)
	l, err := Log(Add(z, s), wp)
	if err != nil {
		return nil, err
	}
	return &Complex{re: l.re.SetPrec(prec), im: l.im.SetPrec(prec)}, nil
}

// Acosh returns the principal inverse hyperbolic cosine:
// acosh z = ln(z + sqrt(z² - 1)).
func Acosh(z *Complex, prec uint) (*Complex, error) {
	wp := prec + guardBits
	s := Sqrt(Sub(Mul(z, z), One(wp)), wp)
	l, err := Log(Add(z, s), wp)
	if err != nil {
		return nil, err
	}
	return &Complex{re: l.re.SetPrec(prec), im: l.im.SetPrec(prec)}, nil
}

// Atanh returns the principal inverse hyperbolic tangent:
// atanh z = ln((1+z)/(1-z)) / 2.
func Atanh(z *Complex, prec uint) (*Complex, error) {
	wp := prec + guardBits
	one := One(wp)
	q, err := Div(Add(one, z), Sub(one, z))
	if err != nil {
		return nil, err
	}
	l, err := Log(q, wp)
	if err != nil {
		return nil, err
	}
	l.re.Quo(l.re, new(big.Float).SetInt64(2))
	l.im.Quo(l.im, new(big.Float).SetInt64(2))
	return &Complex{re: l.re.SetPrec(prec), im: l.im.SetPrec(prec)}, nil
}

// Gamma returns Γ(x) for real x by Spouge's approximation, using the
// reflection formula for x < 0.5. Non-positive integers are poles.
func Gamma(x *Complex, prec uint) (*Complex, error) {
	if x.IsInt() && x.re.Sign() <= 0 {
		return nil, ErrGammaPole
	}
	wp := prec + 2*guardBits
	half := big.NewFloat(0.5)
	if x.re.Cmp(half) < 0 {
		// Γ(x) = π / (sin(πx) Γ(1-x))
		p := pi(wp)
		px := new(big.Float).SetPrec(wp).Mul(p, x.re)
		sin, _ := realSinCos(px, wp)
		refl, err := Gamma(FromFloat(new(big.Float).SetPrec(wp).Sub(new(big.Float).SetInt64(1), x.re)), wp)
		if err != nil {
			return nil, err
		}
		den := new(big.Float).Mul(sin, refl.re)
		if den.Sign() == 0 {
			return nil, ErrGammaPole
		}
		r := new(big.Float).Quo(p, den)
		return FromFloat(r.SetPrec(prec)), nil
	}
	r := spougeGamma(x.re, wp)
	return FromFloat(r.SetPrec(prec)), nil
}

// spougeGamma evaluates Γ(x) for x >= 0.5 at the given working precision.
func spougeGamma(x *big.Float, wp uint) *big.Float {
	// Γ(z+1) = (z+a)^(z+1/2) e^-(z+a) (c₀ + Σ_{k=1}^{a-1} c_k/(z+k))
	// with c₀ = sqrt(2π). a terms give roughly a·log₁₀(2π) digits.
	z := new(big.Float).SetPrec(wp).Sub(x, new(big.Float).SetInt64(1))
	digits := float64(wp) * 0.30103
	a := int64(digits/0.798) + 3 // log10(2π) ≈ 0.798

	twoPi := pi(wp)
	twoPi.Add(twoPi, twoPi)
	sum := new(big.Float).SetPrec(wp).Sqrt(twoPi) // c₀

	// c_k = (-1)^(k-1) (a-k)^(k-1/2) e^(a-k) / (k-1)!
	fact := new(big.Float).SetPrec(wp).SetInt64(1)
	for k := int64(1); k < a; k++ {
		if k > 1 {
			fact.Mul(fact, new(big.Float).SetInt64(k-1))
		}
		ak := new(big.Float).SetPrec(wp).SetInt64(a - k)
		e := new(big.Float).SetPrec(wp).SetInt64(2*k - 1)
		e.Quo(e, new(big.Float).SetInt64(2))
		ck := bigfloat.Pow(new(big.Float).SetPrec(wp), ak, e)
		ck.Mul(ck, realExp(ak, wp))
		ck.Quo(ck, fact)
		if k%2 == 0 {
			ck.Neg(ck)
		}
		den := new(big.Float).SetPrec(wp).Add(z, new(big.Float).SetInt64(k))
		ck.Quo(ck, den)
		sum.Add(sum, ck)
	}

	za := new(big.Float).SetPrec(wp).Add(z, new(big.Float).SetInt64(a))
	e := new(big.Float).SetPrec(wp).Add(z, big.NewFloat(0.5))
	r := bigfloat.Pow(new(big.Float).SetPrec(wp), za, e)
	r.Mul(r, sum)
	negza := new(big.Float).Neg(za)
	r.Mul(r, realExp(negza, wp))
	// The above is Γ(z+1) = Γ(x); no division by z since z+1 = x.
	return r
}

// Floor returns the floor of the real part.
func Floor(z *Complex, prec uint) *Complex {
	n, acc := z.re.Int(nil)
	if acc == big.Above { // truncation rounded up, i.e. z.re was negative
		n.Sub(n, big.NewInt(1))
	}
	return FromBigInt(n, prec)
}

// Ceil returns the ceiling of the real part.
func Ceil(z *Complex, prec uint) *Complex {
	n, acc := z.re.Int(nil)
	if acc == big.Below {
		n.Add(n, big.NewInt(1))
	}
	return FromBigInt(n, prec)
}

// Trunc returns the real part truncated toward zero.
func Trunc(z *Complex, prec uint) *Complex {
	n, _ := z.re.Int(nil)
	return FromBigInt(n, prec)
}

// Rand returns a uniformly random real in [0, 1) with the given number of
// decimal digits. It is intentionally not deterministic.
func Rand(digits int64) *Complex {
	if digits < 1 {
		digits = 1
	}
	prec := DigitsToBits(digits)
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(digits), nil)
	n := new(big.Int).Rand(rng, scale)
	r := new(big.Float).SetPrec(prec).SetInt(n)
	r.Quo(r, new(big.Float).SetPrec(prec).SetInt(scale))
	return FromFloat(r)
}

var rng = rand.New(rand.NewSource(rand.Int63()))

// RandInt returns a uniformly random integer between the real parts of a and
// b inclusive, in either order.
func RandInt(a, b *Complex, prec uint) *Complex {
	lo, _ := a.re.Int(nil)
	hi, _ := b.re.Int(nil)
	if lo.Cmp(hi) > 0 {
		lo, hi = hi, lo
	}
	span := new(big.Int).Sub(hi, lo)
	span.Add(span, big.NewInt(1))
	n := new(big.Int).Rand(rng, span)
	n.Add(n, lo)
	return FromBigInt(n, prec)
}

// mulI returns iz without rounding.
func mulI(z *Complex) *Complex {
	re := new(big.Float).Neg(z.im)
	im := new(big.Float).Copy(z.re)
	return &Complex{re: re, im: im}
}

// mulMinusI returns -iz without rounding.
func mulMinusI(z *Complex) *Complex {
	re := new(big.Float).Copy(z.im)
	im := new(big.Float).Neg(z.re)
	return &Complex{re: re, im: im}
}
