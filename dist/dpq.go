// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dist

import "math"

// Tail and log-scale probability helpers shared by the distribution
// functions. These mirror the R_D*/R_DT* conventions of R's nmath:
// every CDF-style function takes a lowerTail flag selecting between
// P(X <= x) and P(X > x) and a logP flag selecting the log scale,
// and the helpers below convert exact boundary values and computed
// lower-tail probabilities into that representation.

var dblEps = math.Nextafter(1, 2) - 1

// d0 and d1 are exact 0 and 1 on the requested scale.
func d0(logP bool) float64 {
	if logP {
		return math.Inf(-1)
	}
	return 0
}

func d1(logP bool) float64 {
	if logP {
		return 0
	}
	return 1
}

// dt0 and dt1 are the CDF boundary values P = 0 and P = 1 on the
// requested tail and scale.
func dt0(lowerTail, logP bool) float64 {
	if lowerTail {
		return d0(logP)
	}
	return d1(logP)
}

func dt1(lowerTail, logP bool) float64 {
	if lowerTail {
		return d1(logP)
	}
	return d0(logP)
}

// dExp converts a log-scale density lx to the requested scale.
func dExp(lx float64, logP bool) float64 {
	if logP {
		return lx
	}
	return math.Exp(lx)
}

// dtVal converts a computed lower-tail linear probability p to the
// requested tail and scale.
func dtVal(p float64, lowerTail, logP bool) float64 {
	if lowerTail {
		if logP {
			return math.Log(p)
		}
		return p
	}
	if logP {
		return math.Log1p(-p)
	}
	return 0.5 - p + 0.5
}

// dtQIv converts a caller-supplied probability p, given on the
// requested tail and scale, to a plain lower-tail linear probability.
func dtQIv(p float64, lowerTail, logP bool) float64 {
	if logP {
		if lowerTail {
			return math.Exp(p)
		}
		return -math.Expm1(p)
	}
	if lowerTail {
		return p
	}
	return 0.5 - p + 0.5
}

// qP01OK reports whether p is a legal probability on the requested
// scale.
func qP01OK(p float64, logP bool) bool {
	if logP {
		return p <= 0
	}
	return 0 <= p && p <= 1
}
