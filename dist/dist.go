// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dist provides distribution functions for statistics that
// lack convenient closed forms: the Wilcoxon signed-rank distribution
// and the noncentral t-distribution, plus the binomial CDF.
//
// The signed-rank distribution is computed exactly from the
// subset-sum counts of {1, ..., n}. The noncentral t CDF is computed
// with Lenth's twin power series (algorithm AS 243), falling back to
// a normal approximation for extreme parameters.
//
// Following the conventions of R's nmath library, the top-level
// functions (DSignrank, PSignrank, QSignrank, RSignrank, PNT, PBinom)
// take float64 parameters, propagate NaN inputs, and return NaN for
// invalid parameters. The distribution types (SignRankDist,
// NoncentralTDist, BinomialDist) offer the same computations with
// validated integer parameters and no sentinel plumbing.
package dist

import "math"

var nan = math.NaN()

// A DiscreteDist is a discrete statistical distribution over a
// subset of the integers.
type DiscreteDist interface {
	// PMF returns the probability mass at x.
	PMF(x float64) float64

	// CDF returns the probability of a value <= x.
	CDF(x float64) float64

	// InvCDF returns the smallest value whose CDF is >= y. The
	// value of y must be in [0, 1].
	InvCDF(y float64) float64

	// Bounds returns the support of this distribution.
	Bounds() (float64, float64)

	// Step returns the spacing between values with non-zero mass.
	Step() float64
}

// A ContDist is a continuous statistical distribution.
type ContDist interface {
	// CDF returns the value of the cumulative distribution
	// function for this distribution at x.
	CDF(x float64) float64

	// CDFEach returns CDF(xs[i]) for each i.
	CDFEach(xs []float64) []float64

	// Bounds returns reasonable bounds for this distribution's
	// CDF. The total weight outside of these bounds should be
	// approximately 0.
	Bounds() (float64, float64)
}

func lgamma(x float64) float64 {
	v, _ := math.Lgamma(x)
	return v
}
