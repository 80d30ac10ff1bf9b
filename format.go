package clculator

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/advskel/clculator/bigcomplex"
)

// Format renders a result at the context's output precision. Real and
// imaginary parts are rendered independently; a pure-imaginary unit prints
// as a bare i. With a fixed precision, magnitudes in [0.0001, 1000000) print
// in plain decimal and everything else in scientific notation; in automatic
// mode every value prints in its shortest exact form.
func (ctx *Context) Format(v *bigcomplex.Complex) string {
	if ctx.precision == AutoPrecision {
		return autoFormat(v)
	}
	digits := int(ctx.precision)
	return formatComplex(v, func(f *big.Float) string {
		return formatFixed(f, digits)
	})
}

// autoFormat renders at shortest-exact precision. Compile-time constant
// folding also uses it for computed numerals that have no source text.
func autoFormat(v *bigcomplex.Complex) string {
	return formatComplex(v, func(f *big.Float) string {
		if f.Sign() == 0 {
			return "0"
		}
		return cleanExponent(f.Text('g', -1))
	})
}

func formatComplex(v *bigcomplex.Complex, render func(*big.Float) string) string {
	re, im := v.Real(), v.Imag()
	if im.Sign() == 0 {
		return render(re)
	}

	imPart := render(new(big.Float).Abs(im))
	if imPart == "1" {
		imPart = "i"
	} else {
		imPart += "i"
	}
	if re.Sign() == 0 {
		if im.Sign() < 0 {
			return "-" + imPart
		}
		return imPart
	}
	sign := "+"
	if im.Sign() < 0 {
		sign = "-"
	}
	return render(re) + sign + imPart
}

// formatFixed rounds f to the given number of significant digits, then picks
// plain or scientific notation from the rounded exponent, so a value that
// rounds up across the notation boundary is classified by what prints.
func formatFixed(f *big.Float, digits int) string {
	if f.Sign() == 0 {
		return "0"
	}
	s := f.Text('e', digits-1)
	mant, expStr, _ := strings.Cut(s, "e")
	exp, err := strconv.Atoi(expStr)
	if err != nil {
		return s
	}
	if exp >= -4 && exp < 6 {
		frac := digits - 1 - exp
		if frac < 0 {
			// The integer part is wider than the precision. Text('f', 0)
			// would print it unrounded, so rebuild it from the rounded
			// mantissa instead, padding out to the decimal point.
			return strings.Replace(mant, ".", "", 1) + strings.Repeat("0", -frac)
		}
		return trimZeros(f.Text('f', frac))
	}
	return trimZeros(mant) + "e" + strconv.Itoa(exp)
}

// trimZeros drops the trailing zeros of a fractional part, and the point
// itself when nothing follows it.
func trimZeros(s string) string {
	if !strings.ContainsRune(s, '.') {
		return s
	}
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// cleanExponent rewrites big.Float's zero-padded exponent ("1e+06") in the
// calculator's form ("1e6").
func cleanExponent(s string) string {
	mant, expStr, ok := strings.Cut(s, "e")
	if !ok {
		return s
	}
	exp, err := strconv.Atoi(expStr)
	if err != nil {
		return s
	}
	return mant + "e" + strconv.Itoa(exp)
}
