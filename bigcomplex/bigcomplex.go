// Package bigcomplex implements arbitrary-precision complex arithmetic over
// pairs of big.Float values, plus the transcendental and special functions the
// calculator's builtin table needs.
//
// Values are immutable by convention: no function or method in this package
// modifies its operands, and every result is freshly allocated. Precision is
// tracked in bits; DigitsToBits converts the calculator's decimal-digit
// precision setting.
package bigcomplex

import (
	"errors"
	"math"
	"math/big"
)

// Errors reported by operations with restricted domains. Callers that need
// richer messages should wrap these.
var (
	ErrDivisionByZero = errors.New("division by zero")
	ErrLogOfZero      = errors.New("logarithm of zero")
	ErrGammaPole      = errors.New("gamma of a non-positive integer")
	ErrZeroToNegative = errors.New("zero raised to a non-positive power")
)

// Complex is an arbitrary-precision complex number.
type Complex struct {
	re, im *big.Float
}

// New creates a complex number from copies of re and im. A nil part is
// treated as zero at the other part's precision.
func New(re, im *big.Float) *Complex {
	var prec uint = defaultPrec
	if re != nil {
		prec = re.Prec()
	} else if im != nil {
		prec = im.Prec()
	}
	z := &Complex{
		re: new(big.Float).SetPrec(prec),
		im: new(big.Float).SetPrec(prec),
	}
	if re != nil {
		z.re.Set(re)
	}
	if im != nil {
		z.im.Set(im)
	}
	return z
}

const defaultPrec = 64

// FromFloat creates a real-valued complex number from a copy of re.
func FromFloat(re *big.Float) *Complex {
	return New(re, nil)
}

// FromInt64 creates a real-valued complex number with the given precision.
func FromInt64(n int64, prec uint) *Complex {
	return FromFloat(new(big.Float).SetPrec(prec).SetInt64(n))
}

// FromBigInt creates a real-valued complex number with the given precision.
func FromBigInt(n *big.Int, prec uint) *Complex {
	return FromFloat(new(big.Float).SetPrec(prec).SetInt(n))
}

// Zero returns the complex zero at the given precision.
func Zero(prec uint) *Complex {
	return FromInt64(0, prec)
}

// One returns the complex one at the given precision.
func One(prec uint) *Complex {
	return FromInt64(1, prec)
}

// I returns the imaginary unit at the given precision.
func I(prec uint) *Complex {
	return New(new(big.Float).SetPrec(prec), new(big.Float).SetPrec(prec).SetInt64(1))
}

// Real returns a copy of the real part.
func (z *Complex) Real() *big.Float {
	return new(big.Float).Copy(z.re)
}

// Imag returns a copy of the imaginary part.
func (z *Complex) Imag() *big.Float {
	return new(big.Float).Copy(z.im)
}

// Prec returns the larger precision of the two parts.
func (z *Complex) Prec() uint {
	return maxPrec(z.re.Prec(), z.im.Prec())
}

// IsReal reports whether the imaginary part is exactly zero.
func (z *Complex) IsReal() bool {
	return z.im.Sign() == 0
}

// IsZero reports whether both parts are exactly zero.
func (z *Complex) IsZero() bool {
	return z.re.Sign() == 0 && z.im.Sign() == 0
}

// IsInt reports whether z is a real integer.
func (z *Complex) IsInt() bool {
	return z.IsReal() && z.re.IsInt()
}

// Int returns the value of z truncated toward zero. The result is valid only
// when z is real.
func (z *Complex) Int() *big.Int {
	n, _ := z.re.Int(nil)
	return n
}

// Equal reports whether z and w have exactly equal real and imaginary parts.
// Values of different precisions compare by numeric value.
func (z *Complex) Equal(w *Complex) bool {
	return z.re.Cmp(w.re) == 0 && z.im.Cmp(w.im) == 0
}

// Key returns a canonical string for z, suitable as a map key. Numerically
// equal values at different precisions share a key: each part is rendered in
// its exact normalized hexadecimal form.
func (z *Complex) Key() string {
	return keyFloat(z.re) + "|" + keyFloat(z.im)
}

func keyFloat(f *big.Float) string {
	if f.Sign() == 0 {
		// Avoid distinguishing -0 from 0.
		return "0"
	}
	return f.Text('x', -1)
}

// Neg returns -z.
func (z *Complex) Neg() *Complex {
	w := New(z.re, z.im)
	w.re.Neg(w.re)
	w.im.Neg(w.im)
	return w
}

// Conj returns the complex conjugate of z.
func (z *Complex) Conj() *Complex {
	w := New(z.re, z.im)
	w.im.Neg(w.im)
	return w
}

// Add returns x + y.
func Add(x, y *Complex) *Complex {
	return &Complex{
		re: new(big.Float).Add(x.re, y.re),
		im: new(big.Float).Add(x.im, y.im),
	}
}

// Sub returns x - y.
func Sub(x, y *Complex) *Complex {
	return &Complex{
		re: new(big.Float).Sub(x.re, y.re),
		im: new(big.Float).Sub(x.im, y.im),
	}
}

// Mul returns x * y.
func Mul(x, y *Complex) *Complex {
	// (a+bi)(c+di) = (ac - bd) + (ad + bc)i
	ac := new(big.Float).Mul(x.re, y.re)
	bd := new(big.Float).Mul(x.im, y.im)
	ad := new(big.Float).Mul(x.re, y.im)
	bc := new(big.Float).Mul(x.im, y.re)
	return &Complex{
		re: ac.Sub(ac, bd),
		im: ad.Add(ad, bc),
	}
}

// Div returns x / y. Division by zero is an error.
func Div(x, y *Complex) (*Complex, error) {
	if y.IsZero() {
		return nil, ErrDivisionByZero
	}
	// (a+bi)/(c+di) = ((ac + bd) + (bc - ad)i) / (c² + d²)
	den := new(big.Float).Mul(y.re, y.re)
	den.Add(den, new(big.Float).Mul(y.im, y.im))
	ac := new(big.Float).Mul(x.re, y.re)
	bd := new(big.Float).Mul(x.im, y.im)
	bc := new(big.Float).Mul(x.im, y.re)
	ad := new(big.Float).Mul(x.re, y.im)
	return &Complex{
		re: ac.Add(ac, bd).Quo(ac, den),
		im: bc.Sub(bc, ad).Quo(bc, den),
	}, nil
}

// Mod returns the real remainder of x by y, with the sign of x. Both operands
// must be real; the caller is responsible for checking that.
func Mod(x, y *Complex) (*Complex, error) {
	if y.re.Sign() == 0 {
		return nil, ErrDivisionByZero
	}
	q := new(big.Float).Quo(x.re, y.re)
	n, _ := q.Int(nil) // truncates toward zero
	r := new(big.Float).SetPrec(maxPrec(x.re.Prec(), y.re.Prec())).SetInt(n)
	r.Mul(r, y.re)
	r.Sub(x.re, r)
	return FromFloat(r), nil
}

// Abs returns |z| as a real value at the given precision.
func Abs(z *Complex, prec uint) *Complex {
	if z.IsReal() {
		r := new(big.Float).SetPrec(prec).Abs(z.re)
		return FromFloat(r)
	}
	s := new(big.Float).SetPrec(prec + guardBits).Mul(z.re, z.re)
	s.Add(s, new(big.Float).Mul(z.im, z.im))
	s.Sqrt(s)
	return FromFloat(s.SetPrec(prec))
}

// DigitsToBits converts a count of decimal digits of precision to binary
// precision, with a guard margin.
func DigitsToBits(digits int64) uint {
	if digits < 1 {
		digits = 1
	}
	return uint(math.Ceil(float64(digits)*math.Log2(10))) + 16
}

func maxPrec(a, b uint) uint {
	if a > b {
		return a
	}
	return b
}
