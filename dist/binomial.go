// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dist

import (
	"math"

	"github.com/aclements/go-moremath/mathx"
)

// A BinomialDist is a binomial distribution: the number of successes
// in N independent Bernoulli trials of probability P each.
type BinomialDist struct {
	// N is the number of trials. N >= 0.
	N int

	// P is the probability of success in each trial. 0 <= P <= 1.
	P float64
}

// PMF is the probability of exactly int(k) successes.
func (d BinomialDist) PMF(k float64) float64 {
	ki := int(math.Floor(k))
	if ki < 0 || ki > d.N {
		return 0
	}
	return mathx.Choose(d.N, ki) * math.Pow(d.P, float64(ki)) * math.Pow(1-d.P, float64(d.N-ki))
}

// CDF is the probability of int(k) or fewer successes.
func (d BinomialDist) CDF(k float64) float64 {
	return PBinom(k, float64(d.N), d.P, true, false)
}

func (d BinomialDist) Bounds() (float64, float64) {
	return 0, float64(d.N)
}

func (d BinomialDist) Step() float64 {
	return 1
}

// PBinom returns the binomial CDF at x for n trials of probability p
// each, on the tail and scale selected by lowerTail and logP. It is a
// thin wrapper over the regularized incomplete beta function:
// P(X <= x) = 1 - I_p(x+1, n-x). NaN inputs propagate; n must be a
// non-negative integer within a tolerance of 1e-7 and p must lie in
// [0, 1], otherwise the result is NaN.
func PBinom(x, n, p float64, lowerTail, logP bool) float64 {
	if math.IsNaN(x) || math.IsNaN(n) || math.IsNaN(p) {
		return x + n + p
	}
	if math.IsInf(n, 0) || math.IsInf(p, 0) {
		return nan
	}
	if math.Abs(n-math.Floor(n+0.5)) > 1e-7 {
		return nan
	}
	n = math.Floor(n + 0.5)
	if n < 0 || p < 0 || p > 1 {
		return nan
	}
	x = math.Floor(x + 1e-7)
	if x < 0 {
		return dt0(lowerTail, logP)
	}
	if x >= n {
		return dt1(lowerTail, logP)
	}
	// pbeta(p, x+1, n-x) on the opposite tail.
	return dtVal(mathx.BetaInc(p, x+1, n-x), !lowerTail, logP)
}
