// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dist

import (
	"math"
	"sync"

	"golang.org/x/exp/rand"
)

// A SignRankDist is the discrete probability distribution of the
// Wilcoxon signed-rank statistic W+ for a sample of size N: the sum
// of a random subset of {1, ..., N} in which each element is included
// independently with probability 1/2.
//
// The distribution is computed exactly. Its support is the integers
// [0, N(N+1)/2] and it is symmetric about N(N+1)/4.
type SignRankDist struct {
	N int

	// Src is the source of randomness used by Rand. If Src is
	// nil, Rand uses the global random source.
	Src rand.Source
}

var _ DiscreteDist = SignRankDist{}

// signRankTable caches the subset-sum counts for the most recently
// requested sample size. A rebuild installs a freshly allocated
// slice, so a caller that already obtained the table for a different
// size keeps a consistent view; the returned slice must be treated as
// immutable.
type signRankTable struct {
	mu sync.Mutex
	n  int
	w  []float64
}

var srTable signRankTable

// get returns the count table for sample size n >= 1. Slot k of the
// table holds the number of subsets of {1, ..., n} that sum to k, for
// k up to floor(n(n+1)/4); counts above the midpoint follow from
// symmetry. The table is rebuilt only when n differs from the cached
// size.
func (t *signRankTable) get(n int) []float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.w != nil && t.n == n {
		return t.w
	}
	u := n * (n + 1) / 2
	c := u / 2
	w := make([]float64, c+1)
	w[0] = 1
	if c >= 1 {
		w[1] = 1
	}
	// In-place convolution with (1 + z^j) for each rank j. The
	// inner loop must run in descending order of i so that each
	// w[i-j] read predates its own update on this pass.
	for j := 2; j <= n; j++ {
		end := j * (j + 1) / 2
		if end > c {
			end = c
		}
		for i := end; i >= j; i-- {
			w[i] += w[i-j]
		}
	}
	t.n = n
	t.w = w
	return w
}

// csignrank returns the number of subsets of {1, ..., n} summing to
// k, given the count table w for n.
func csignrank(k, n int, w []float64) float64 {
	u := n * (n + 1) / 2
	c := u / 2
	if k < 0 || k > u {
		return 0
	}
	if k > c {
		k = u - k
	}
	return w[k]
}

// PMF returns the probability of the signed-rank statistic being
// exactly int(x). It is DSignrank restricted to valid N.
func (d SignRankDist) PMF(x float64) float64 {
	if d.N < 1 {
		return 0
	}
	return DSignrank(math.Floor(x), float64(d.N), false)
}

// CDF returns the probability of the signed-rank statistic being
// <= int(x). It is the lower-tail PSignrank.
func (d SignRankDist) CDF(x float64) float64 {
	return PSignrank(math.Floor(x), float64(d.N), true, false)
}

// InvCDF returns the smallest k such that CDF(k) >= y. The value of y
// must be in [0, 1].
func (d SignRankDist) InvCDF(y float64) float64 {
	return QSignrank(y, float64(d.N), true, false)
}

// Rand returns a random sample drawn from the distribution.
func (d SignRankDist) Rand() float64 {
	return RSignrank(float64(d.N), d.Src)
}

func (d SignRankDist) Bounds() (float64, float64) {
	return 0, float64(d.N * (d.N + 1) / 2)
}

func (d SignRankDist) Step() float64 {
	return 1
}

// DSignrank returns the density of the signed-rank distribution for
// sample size n at x, or its log if giveLog is set. Non-integer x has
// zero density. NaN inputs propagate; n is rounded to the nearest
// integer and must be positive, otherwise the result is NaN.
func DSignrank(x, n float64, giveLog bool) float64 {
	if math.IsNaN(x) || math.IsNaN(n) {
		return x + n
	}
	n = math.Floor(n + 0.5)
	if n <= 0 {
		return nan
	}
	if math.Abs(x-math.Floor(x+0.5)) > 1e-7 {
		return d0(giveLog)
	}
	x = math.Floor(x + 0.5)
	if x < 0 || x > n*(n+1)/2 {
		return d0(giveLog)
	}
	nn := int(n)
	w := srTable.get(nn)
	return dExp(math.Log(csignrank(int(x), nn, w))-n*math.Ln2, giveLog)
}

// PSignrank returns the CDF of the signed-rank distribution for
// sample size n at x, on the tail and scale selected by lowerTail and
// logP. NaN inputs propagate; n must round to a positive integer.
func PSignrank(x, n float64, lowerTail, logP bool) float64 {
	if math.IsNaN(x) || math.IsNaN(n) {
		return x + n
	}
	if math.IsInf(n, 0) {
		return nan
	}
	n = math.Floor(n + 0.5)
	if n <= 0 {
		return nan
	}
	x = math.Floor(x + 1e-7)
	u := n * (n + 1) / 2
	if x < 0 {
		return dt0(lowerTail, logP)
	}
	if x >= u {
		return dt1(lowerTail, logP)
	}
	nn := int(n)
	w := srTable.get(nn)
	f := math.Exp(-n * math.Ln2)
	p := 0.0
	if x <= u/2 {
		for i := 0; i <= int(x); i++ {
			p += csignrank(i, nn, w) * f
		}
	} else {
		// Sum the shorter upper tail instead and flip which
		// tail the caller asked for.
		x = u - x
		for i := 0; i < int(x); i++ {
			p += csignrank(i, nn, w) * f
		}
		lowerTail = !lowerTail
	}
	return dtVal(p, lowerTail, logP)
}

// QSignrank returns the quantile of the signed-rank distribution for
// sample size n at probability p, where p is given on the tail and
// scale selected by lowerTail and logP. NaN inputs propagate; p must
// be a legal probability and n must round to a positive integer.
func QSignrank(p, n float64, lowerTail, logP bool) float64 {
	if math.IsNaN(p) || math.IsNaN(n) {
		return p + n
	}
	if math.IsInf(p, 0) && !logP || math.IsInf(n, 0) {
		return nan
	}
	if !qP01OK(p, logP) {
		return nan
	}
	n = math.Floor(n + 0.5)
	if n <= 0 {
		return nan
	}
	u := n * (n + 1) / 2
	if p == dt0(lowerTail, logP) {
		return 0
	}
	if p == dt1(lowerTail, logP) {
		return u
	}
	if logP || !lowerTail {
		p = dtQIv(p, lowerTail, logP)
	}

	nn := int(n)
	w := srTable.get(nn)
	f := math.Exp(-n * math.Ln2)
	cum := 0.0
	q := 0
	if p <= 0.5 {
		// The 10*eps slack keeps floating rounding in the
		// partial sums from stopping the scan one step off.
		p -= 10 * dblEps
		for {
			cum += csignrank(q, nn, w) * f
			if cum >= p {
				break
			}
			q++
		}
	} else {
		// Scan from the top of the distribution instead.
		p = 1 - p + 10*dblEps
		for {
			cum += csignrank(q, nn, w) * f
			if cum > p {
				q = int(u) - q
				break
			}
			q++
		}
	}
	return float64(q)
}

// RSignrank returns a random sample from the signed-rank distribution
// for sample size n, drawing one uniform variate per rank from src.
// If src is nil, the global random source is used. A NaN n
// propagates; n must round to a non-negative integer.
func RSignrank(n float64, src rand.Source) float64 {
	if math.IsNaN(n) {
		return n
	}
	n = math.Floor(n + 0.5)
	if n < 0 {
		return nan
	}
	if n == 0 {
		return 0
	}
	unif := rand.Float64
	if src != nil {
		unif = rand.New(src).Float64
	}
	r := 0.0
	for i := 1; i <= int(n); i++ {
		// Include rank i with probability 1/2.
		if unif() < 0.5 {
			r += float64(i)
		}
	}
	return r
}
