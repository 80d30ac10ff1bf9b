package bigcomplex_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/advskel/clculator/bigcomplex"
)

const testPrec = 128

// closeTo reports whether z and w agree to within 2^-100 in both parts,
// loose enough to absorb rounding at testPrec.
func closeTo(z, w *bigcomplex.Complex) bool {
	eps := new(big.Float).SetMantExp(big.NewFloat(1), -100)
	dr := new(big.Float).Sub(z.Real(), w.Real())
	di := new(big.Float).Sub(z.Imag(), w.Imag())
	return dr.Abs(dr).Cmp(eps) < 0 && di.Abs(di).Cmp(eps) < 0
}

func real64(x float64) *bigcomplex.Complex {
	return bigcomplex.FromFloat(big.NewFloat(x).SetPrec(testPrec))
}

func TestPowInt(t *testing.T) {
	cases := []struct {
		base *bigcomplex.Complex
		exp  int64
		want *bigcomplex.Complex
	}{
		{real64(2), 0, real64(1)},
		{real64(2), 1, real64(2)},
		{real64(2), 10, real64(1024)},
		{real64(2), -2, real64(0.25)},
		{real64(-3), 3, real64(-27)},
		{bigcomplex.I(testPrec), 2, real64(-1)},
		{bigcomplex.I(testPrec), 4, real64(1)},
		{real64(0), 5, real64(0)},
	}
	// (-3)^-3 = -1/27, the negative-exponent path on a negative base.
	inv, err := bigcomplex.Div(real64(1), real64(-27))
	require.NoError(t, err)
	cases = append(cases, struct {
		base *bigcomplex.Complex
		exp  int64
		want *bigcomplex.Complex
	}{real64(-3), -3, inv})

	for _, c := range cases {
		r, err := bigcomplex.PowInt(c.base, big.NewInt(c.exp), testPrec)
		require.NoError(t, err)
		assert.True(t, closeTo(r, c.want), "base %v exp %d: got %v, want %v", c.base, c.exp, r, c.want)
	}

	_, err = bigcomplex.PowInt(real64(0), big.NewInt(-1), testPrec)
	assert.ErrorIs(t, err, bigcomplex.ErrZeroToNegative)
}

func TestPow(t *testing.T) {
	// Integer exponents are exact binary exponentiation.
	r, err := bigcomplex.Pow(real64(3), real64(4), testPrec)
	require.NoError(t, err)
	assert.True(t, closeTo(r, real64(81)), "3^4 = %v", r)

	// Fractional exponents go through exp(w ln z).
	r, err = bigcomplex.Pow(real64(16), real64(0.5), testPrec)
	require.NoError(t, err)
	assert.True(t, closeTo(r, real64(4)), "16^0.5 = %v", r)

	r, err = bigcomplex.Pow(real64(0), real64(2.5), testPrec)
	require.NoError(t, err)
	assert.True(t, r.IsZero(), "0^2.5 = %v", r)

	_, err = bigcomplex.Pow(real64(0), real64(-0.5), testPrec)
	assert.ErrorIs(t, err, bigcomplex.ErrZeroToNegative)
}

func TestExpLog(t *testing.T) {
	// log(exp z) = z for z in the principal strip.
	for _, z := range []*bigcomplex.Complex{
		real64(1),
		real64(-2.5),
		bigcomplex.New(big.NewFloat(0.5).SetPrec(testPrec), big.NewFloat(1.25).SetPrec(testPrec)),
	} {
		l, err := bigcomplex.Log(bigcomplex.Exp(z, testPrec), testPrec)
		require.NoError(t, err)
		assert.True(t, closeTo(l, z), "log(exp %v) = %v", z, l)
	}

	// ln of a negative real lands on the branch cut: ln(-1) = iπ.
	l, err := bigcomplex.Log(real64(-1), testPrec)
	require.NoError(t, err)
	assert.True(t, closeTo(l, bigcomplex.Mul(bigcomplex.I(testPrec), bigcomplex.Pi(testPrec))), "ln(-1) = %v", l)

	_, err = bigcomplex.Log(bigcomplex.Zero(testPrec), testPrec)
	assert.ErrorIs(t, err, bigcomplex.ErrLogOfZero)
}

func TestSqrt(t *testing.T) {
	assert.True(t, closeTo(bigcomplex.Sqrt(real64(16), testPrec), real64(4)))
	assert.True(t, bigcomplex.Sqrt(bigcomplex.Zero(testPrec), testPrec).IsZero())
	// sqrt(-1) = i
	assert.True(t, closeTo(bigcomplex.Sqrt(real64(-1), testPrec), bigcomplex.I(testPrec)))
	// sqrt(2i) = 1+i
	twoI := bigcomplex.New(new(big.Float).SetPrec(testPrec), big.NewFloat(2).SetPrec(testPrec))
	want := bigcomplex.New(big.NewFloat(1).SetPrec(testPrec), big.NewFloat(1).SetPrec(testPrec))
	assert.True(t, closeTo(bigcomplex.Sqrt(twoI, testPrec), want))
}

func TestTrigIdentities(t *testing.T) {
	z := bigcomplex.New(big.NewFloat(0.7).SetPrec(testPrec), big.NewFloat(-0.3).SetPrec(testPrec))
	s := bigcomplex.Sin(z, testPrec)
	c := bigcomplex.Cos(z, testPrec)
	one := bigcomplex.Add(bigcomplex.Mul(s, s), bigcomplex.Mul(c, c))
	assert.True(t, closeTo(one, real64(1)), "sin²+cos² = %v", one)

	// sin(asin z) = z.
	a, err := bigcomplex.Asin(z, testPrec)
	require.NoError(t, err)
	assert.True(t, closeTo(bigcomplex.Sin(a, testPrec), z))

	// tan = sin/cos.
	tan, err := bigcomplex.Tan(z, testPrec)
	require.NoError(t, err)
	q, err := bigcomplex.Div(s, c)
	require.NoError(t, err)
	assert.True(t, closeTo(tan, q))

	// atan(tan x) = x on the real line.
	x := real64(0.5)
	tx, err := bigcomplex.Tan(x, testPrec)
	require.NoError(t, err)
	ax, err := bigcomplex.Atan(tx, testPrec)
	require.NoError(t, err)
	assert.True(t, closeTo(ax, x))
}

func TestHyperbolic(t *testing.T) {
	x := real64(1.5)
	s := bigcomplex.Sinh(x, testPrec)
	c := bigcomplex.Cosh(x, testPrec)
	// cosh² - sinh² = 1
	one := bigcomplex.Sub(bigcomplex.Mul(c, c), bigcomplex.Mul(s, s))
	assert.True(t, closeTo(one, real64(1)), "cosh²-sinh² = %v", one)

	a, err := bigcomplex.Asinh(s, testPrec)
	require.NoError(t, err)
	assert.True(t, closeTo(a, x))

	a, err = bigcomplex.Acosh(c, testPrec)
	require.NoError(t, err)
	assert.True(t, closeTo(a, x))

	th, err := bigcomplex.Tanh(x, testPrec)
	require.NoError(t, err)
	a, err = bigcomplex.Atanh(th, testPrec)
	require.NoError(t, err)
	assert.True(t, closeTo(a, x))
}

func TestGamma(t *testing.T) {
	// Γ(n) = (n-1)! on positive integers.
	for n, want := range map[int64]int64{1: 1, 2: 1, 5: 24, 8: 5040} {
		r, err := bigcomplex.Gamma(bigcomplex.FromInt64(n, testPrec), testPrec)
		require.NoError(t, err)
		assert.True(t, closeTo(r, bigcomplex.FromInt64(want, testPrec)), "Γ(%d) = %v, want %d", n, r, want)
	}

	// Γ(1/2) = sqrt(π), through reflection.
	r, err := bigcomplex.Gamma(real64(0.5), testPrec)
	require.NoError(t, err)
	assert.True(t, closeTo(bigcomplex.Mul(r, r), bigcomplex.Pi(testPrec)), "Γ(1/2)² = %v", bigcomplex.Mul(r, r))

	// Γ(-1/2) = -2 sqrt(π).
	r, err = bigcomplex.Gamma(real64(-0.5), testPrec)
	require.NoError(t, err)
	want := bigcomplex.Mul(real64(4), bigcomplex.Pi(testPrec))
	assert.True(t, closeTo(bigcomplex.Mul(r, r), want), "Γ(-1/2)² = %v", bigcomplex.Mul(r, r))
	assert.Negative(t, r.Real().Sign())

	for _, pole := range []int64{0, -1, -5} {
		_, err := bigcomplex.Gamma(bigcomplex.FromInt64(pole, testPrec), testPrec)
		assert.ErrorIs(t, err, bigcomplex.ErrGammaPole, "Γ(%d)", pole)
	}
}

func TestRounding(t *testing.T) {
	cases := []struct {
		x                  float64
		floor, ceil, trunc int64
	}{
		{3.7, 3, 4, 3},
		{-3.7, -4, -3, -3},
		{2, 2, 2, 2},
		{-2, -2, -2, -2},
		{0.5, 0, 1, 0},
		{-0.5, -1, 0, 0},
	}
	for _, c := range cases {
		assert.True(t, bigcomplex.Floor(real64(c.x), testPrec).Equal(bigcomplex.FromInt64(c.floor, testPrec)), "floor %v", c.x)
		assert.True(t, bigcomplex.Ceil(real64(c.x), testPrec).Equal(bigcomplex.FromInt64(c.ceil, testPrec)), "ceil %v", c.x)
		assert.True(t, bigcomplex.Trunc(real64(c.x), testPrec).Equal(bigcomplex.FromInt64(c.trunc, testPrec)), "trunc %v", c.x)
	}
}

func TestRand(t *testing.T) {
	one := real64(1)
	for i := 0; i < 50; i++ {
		r := bigcomplex.Rand(20)
		require.True(t, r.IsReal())
		assert.True(t, r.Real().Sign() >= 0, "rand = %v", r)
		assert.True(t, r.Real().Cmp(one.Real()) < 0, "rand = %v", r)
	}
	lo, hi := bigcomplex.FromInt64(-2, testPrec), bigcomplex.FromInt64(3, testPrec)
	for i := 0; i < 50; i++ {
		r := bigcomplex.RandInt(lo, hi, testPrec)
		require.True(t, r.IsInt())
		n := r.Int().Int64()
		assert.GreaterOrEqual(t, n, int64(-2))
		assert.LessOrEqual(t, n, int64(3))
	}
}

func TestConstants(t *testing.T) {
	pi, _ := bigcomplex.Pi(testPrec).Real().Float64()
	assert.InDelta(t, 3.14159265358979, pi, 1e-12)
	e, _ := bigcomplex.E(testPrec).Real().Float64()
	assert.InDelta(t, 2.71828182845904, e, 1e-12)
}
