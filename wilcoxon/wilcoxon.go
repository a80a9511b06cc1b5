// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package wilcoxon implements the Wilcoxon signed-rank test on top of
// the exact signed-rank distribution in package dist.
package wilcoxon

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/aclements/go-moremath/stats"
	"github.com/rnbwd/rmath/dist"
)

var (
	// ErrSampleSize is returned when a sample is empty or all of
	// its differences are zero.
	ErrSampleSize = errors.New("sample is too small")

	// ErrMismatchedSamples is returned when the two paired
	// samples have different lengths.
	ErrMismatchedSamples = errors.New("paired samples have different lengths")
)

// A SignedRankTestResult is the result of a Wilcoxon signed-rank
// test.
type SignedRankTestResult struct {
	// N is the number of nonzero differences used by the test.
	N int

	// W is the signed-rank statistic: the sum of the ranks of the
	// positive differences, ranking by absolute value.
	W float64

	// P is the two-tailed p-value of the test.
	P float64

	// Warnings is a list of warnings about this result that
	// should be reported to the user.
	Warnings []error
}

// SignedRankExactLimit gives the largest number of nonzero
// differences for which the exact signed-rank distribution is used.
//
// The exact distribution is necessary for small samples, where the
// normal approximation is poor, but its table grows quadratically
// with the sample size and the approximation is already close at
// this limit. This matches the cutoff used by R's wilcox.test.
var SignedRankExactLimit = 50

// SignedRankTest performs a two-sided Wilcoxon signed-rank test of
// the null hypothesis that the paired samples x and y come from the
// same distribution.
//
// Zero differences are dropped, following Wilcoxon's original
// treatment, and NaN differences are dropped as missing values; each
// kind attaches its own warning to the result. If there are no ties among the absolute differences and
// at most SignedRankExactLimit of them, the p-value is computed from
// the exact distribution of the statistic; otherwise a normal
// approximation with tie and continuity corrections is used and a
// warning is attached to the result.
func SignedRankTest(x, y []float64) (*SignedRankTestResult, error) {
	if len(x) != len(y) {
		return nil, ErrMismatchedSamples
	}
	d := make([]float64, len(x))
	for i := range x {
		d[i] = x[i] - y[i]
	}
	return OneSampleSignedRankTest(d)
}

// OneSampleSignedRankTest performs a two-sided Wilcoxon signed-rank
// test of the null hypothesis that the sample d is symmetric about
// zero. See SignedRankTest.
func OneSampleSignedRankTest(d []float64) (*SignedRankTestResult, error) {
	var warnings []error

	// Drop zero and NaN differences, accounting for each
	// separately.
	nonzero := make([]float64, 0, len(d))
	zeros, nans := 0, 0
	for _, v := range d {
		switch {
		case math.IsNaN(v):
			nans++
		case v == 0:
			zeros++
		default:
			nonzero = append(nonzero, v)
		}
	}
	if len(nonzero) == 0 {
		return nil, ErrSampleSize
	}
	if nans > 0 {
		warnings = append(warnings, fmt.Errorf("dropped %d NaN differences", nans))
	}
	if zeros > 0 {
		warnings = append(warnings, fmt.Errorf("dropped %d zero differences", zeros))
	}
	n := len(nonzero)

	// Rank the absolute differences, assigning tied values the
	// average of their ranks.
	type absDiff struct {
		abs float64
		pos bool
	}
	ad := make([]absDiff, n)
	for i, v := range nonzero {
		ad[i] = absDiff{math.Abs(v), v > 0}
	}
	sort.Slice(ad, func(i, j int) bool { return ad[i].abs < ad[j].abs })

	w := 0.0
	tie := 0.0 // Σ (t³ - t) over tie runs
	hasTies := false
	for i := 0; i < n; {
		i1 := i
		for ; i < n && ad[i].abs == ad[i1].abs; i++ {
		}
		run := i - i1
		if run > 1 {
			hasTies = true
			r := float64(run)
			tie += r*r*r - r
		}
		// Average rank of this run; ad[0] has rank 1.
		rank := float64(i1+1+i) / 2
		for j := i1; j < i; j++ {
			if ad[j].pos {
				w += rank
			}
		}
	}

	var p float64
	if !hasTies && n <= SignedRankExactLimit {
		// W is an integer; use the exact distribution.
		sr := dist.SignRankDist{N: n}
		u := float64(n*(n+1)) / 2
		switch {
		case 2*w == u:
			// The distribution is symmetric about w;
			// doubling the CDF would double-count the mass
			// at w itself.
			p = 1
		case w > u/2:
			p = 2 * (1 - sr.CDF(w-1))
		default:
			p = 2 * sr.CDF(w)
		}
	} else {
		if hasTies {
			warnings = append(warnings, errors.New("cannot compute exact p-value with ties"))
		}
		// Normal approximation with tie and continuity
		// corrections.
		μ := float64(n*(n+1)) / 4
		σ := math.Sqrt(float64(n*(n+1)*(2*n+1))/24 - tie/48)
		if σ == 0 {
			return nil, ErrSampleSize
		}
		numer := w - μ
		if numer > 0 {
			numer -= 0.5
		} else if numer < 0 {
			numer += 0.5
		}
		z := numer / σ
		p = 2 * math.Min(stats.StdNormal.CDF(z), 1-stats.StdNormal.CDF(z))
	}
	if p > 1 {
		p = 1
	}

	return &SignedRankTestResult{N: n, W: w, P: p, Warnings: warnings}, nil
}
