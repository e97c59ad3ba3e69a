package sitedata

import (
	"math"
	"strconv"
	"strings"
)

// Float is a non-integral number from a data file. It prints in its shortest
// round-trip form, so 4.5 renders as "4.5" and 3.0 as "3.0" rather than with
// six fixed decimals. Integers too large for int64 are kept as *big.Int.
type Float float64

// String formats f the way Python's repr does: fixed notation with at least
// one decimal, switching to exponent notation below 1e-4 and from 1e16 up.
func (f Float) String() string {
	v := float64(f)
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}

	sci := strconv.FormatFloat(v, 'e', -1, 64)
	exp, _ := strconv.Atoi(sci[strings.LastIndexByte(sci, 'e')+1:])
	if v != 0 && (exp < -4 || exp >= 16) {
		return sci
	}

	out := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsRune(out, '.') {
		out += ".0"
	}
	return out
}
