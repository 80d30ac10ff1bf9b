// Package clculator implements an interactive calculator over
// arbitrary-precision complex numbers.
//
// Input is compiled into a flat token sequence and reduced with a two-stack
// precedence scan. Square brackets call functions, as in "sin[pi/2]" or
// "f[n-1]". Users may define variables ("x=5+4"), functions
// ("f[n]=n*f[n-1]"), and literal base cases for recursive functions
// ("f[0]=1"); function results are memoized per argument tuple and the memo
// is invalidated when a name the function references is redefined.
//
// Whitespace is insignificant and stripped before compilation, so "1 2 3"
// means "123".
package clculator
