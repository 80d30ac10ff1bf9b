package clculator_test

import (
	"testing"

	"github.com/advskel/clculator"
)

func FuzzExecute(f *testing.F) {
	f.Add("1+2*3")
	f.Add("(1+2i)*(3-4i)")
	f.Add("x = 3.5")
	f.Add("f[n] = n*f[n-1]")
	f.Add("f[0] = 1")
	f.Add("sum[k, 1, 10, k^2]")
	f.Add("sin[pi/6]")
	f.Add(")(")
	f.Add("1+")
	f.Add("del x")
	f.Add("precision 5")
	f.Fuzz(func(t *testing.T, s string) {
		ctx := clculator.NewContext()
		ctx.SetMaxDepth(64)
		out, err := ctx.Execute(s)
		if err != nil {
			if _, ok := err.(clculator.InputError); !ok {
				t.Errorf("execute %q: error %v is not an InputError", s, err)
			}
			if out != "" {
				t.Errorf("execute %q: error with non-empty output %q", s, out)
			}
		}
	})
}
