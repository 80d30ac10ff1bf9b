package clculator_test

import (
	"testing"

	"github.com/advskel/clculator"
)

func TestFormatBands(t *testing.T) {
	// At a fixed output precision, magnitudes in [0.0001, 1000000) print in
	// plain decimal and everything else in scientific notation. The band is
	// judged after rounding, so values that round across the boundary print
	// as scientific.
	cases := []struct {
		src  string
		want string
	}{
		{"0", "0"},
		{"123456", "123460"},
		{"123456.7", "123460"},
		{"-123456", "-123460"},
		{"100000", "100000"},
		{"999994", "999990"},
		{"999999", "1e6"},
		{"1000000", "1e6"},
		{"1234560", "1.2346e6"},
		{"0.0001", "0.0001"},
		{"0.00012345", "0.00012345"},
		{"0.00001", "1e-5"},
		{"0.000123456", "0.00012346"},
		{"-0.5", "-0.5"},
		{"-1234560", "-1.2346e6"},
		{"2.5000", "2.5"},
		{"42", "42"},
	}
	ctx := clculator.NewContext()
	if _, err := ctx.Execute("precision 5"); err != nil {
		t.Fatal(err)
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			got, err := ctx.Execute(c.src)
			if err != nil {
				t.Fatalf("execute %q: %v", c.src, err)
			}
			if got != c.want {
				t.Errorf("%s formats as %q, want %q", c.src, got, c.want)
			}
		})
	}
}

func TestFormatComplexParts(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"2i", "2i"},
		{"0+i", "i"},
		{"0-i", "-i"},
		{"0-3i", "-3i"},
		{"1+2i", "1+2i"},
		{"3-2i", "3-2i"},
		{"-1+i", "-1+i"},
		{"-1-i", "-1-i"},
		{"0.5i", "0.5i"},
		{"2i-2i", "0"},
	}
	ctx := clculator.NewContext()
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			got, err := ctx.Execute(c.src)
			if err != nil {
				t.Fatalf("execute %q: %v", c.src, err)
			}
			if got != c.want {
				t.Errorf("%s formats as %q, want %q", c.src, got, c.want)
			}
		})
	}
}

func TestFormatAuto(t *testing.T) {
	// Automatic precision prints the shortest form that reads back exactly.
	cases := []struct {
		src  string
		want string
	}{
		{"7", "7"},
		{"3.5", "3.5"},
		{"1/4", "0.25"},
		{"0.25+0.25", "0.5"},
		{"3/2", "1.5"},
		{"2i", "2i"},
		{"1.5+0.5i", "1.5+0.5i"},
	}
	ctx := clculator.NewContext()
	ctx.SetPrecision(clculator.AutoPrecision)
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			got, err := ctx.Execute(c.src)
			if err != nil {
				t.Fatalf("execute %q: %v", c.src, err)
			}
			if got != c.want {
				t.Errorf("%s formats as %q, want %q", c.src, got, c.want)
			}
		})
	}
}
