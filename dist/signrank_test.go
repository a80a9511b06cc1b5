// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dist

import (
	"math"
	"testing"

	"golang.org/x/exp/rand"
)

func aeq(x, y float64) bool {
	if x < 0 && y < 0 {
		x, y = -x, -y
	}
	// Correct to 8 significant figures.
	return math.Abs(x-y) <= math.Abs(x+y)*0.5*1e-8
}

func TestCSignRankCounts(t *testing.T) {
	// Subset counts of {1,...,4}: 4*5/2 = 10 possible sums.
	want4 := []float64{1, 1, 1, 2, 2, 2, 2, 2, 1, 1, 1}
	w := srTable.get(4)
	for k := 0; k <= 10; k++ {
		if got := csignrank(k, 4, w); got != want4[k] {
			t.Errorf("csignrank(%d, 4) = %v, want %v", k, got, want4[k])
		}
	}
	if got := csignrank(-1, 4, w); got != 0 {
		t.Errorf("csignrank(-1, 4) = %v, want 0", got)
	}
	if got := csignrank(11, 4, w); got != 0 {
		t.Errorf("csignrank(11, 4) = %v, want 0", got)
	}
}

func TestCSignRankMassAndSymmetry(t *testing.T) {
	for n := 1; n <= 15; n++ {
		u := n * (n + 1) / 2
		w := srTable.get(n)
		sum := 0.0
		for k := 0; k <= u; k++ {
			sum += csignrank(k, n, w)
			if c1, c2 := csignrank(k, n, w), csignrank(u-k, n, w); c1 != c2 {
				t.Errorf("n=%d: csignrank(%d)=%v != csignrank(%d)=%v", n, k, c1, u-k, c2)
			}
		}
		if want := math.Exp2(float64(n)); sum != want {
			t.Errorf("n=%d: total count = %v, want 2^%d = %v", n, sum, n, want)
		}
	}
}

func TestTableRebuild(t *testing.T) {
	// Interleave sample sizes to force cache rebuilds; an earlier
	// table must not leak into a later answer.
	for _, n := range []int{5, 9, 5, 12, 9} {
		u := n * (n + 1) / 2
		w := srTable.get(n)
		if len(w) != u/2+1 {
			t.Fatalf("n=%d: table length %d, want %d", n, len(w), u/2+1)
		}
		if w[0] != 1 || w[1] != 1 {
			t.Fatalf("n=%d: w[0],w[1] = %v,%v, want 1,1", n, w[0], w[1])
		}
		sum := 0.0
		for k := 0; k <= u; k++ {
			sum += csignrank(k, n, w)
		}
		if want := math.Exp2(float64(n)); sum != want {
			t.Errorf("n=%d: total count = %v, want %v", n, sum, want)
		}
	}
}

func TestDSignrank(t *testing.T) {
	check := func(x, n float64, giveLog bool, want float64) {
		t.Helper()
		got := DSignrank(x, n, giveLog)
		if got != want && !aeq(got, want) {
			t.Errorf("DSignrank(%v, %v, %v) = %v, want %v", x, n, giveLog, got, want)
		}
	}
	check(5, 4, false, 0.125) // 2/16
	check(0, 4, false, 0.0625)
	check(10, 4, false, 0.0625)
	check(5, 4, true, math.Log(0.125))

	// Non-integer and out-of-range x have zero density.
	check(5.5, 4, false, 0)
	check(5.5, 4, true, math.Inf(-1))
	check(-1, 4, false, 0)
	check(11, 4, false, 0)
	// x within rounding tolerance of an integer is accepted.
	check(5+1e-9, 4, false, 0.125)

	if got := DSignrank(5, 0, false); !math.IsNaN(got) {
		t.Errorf("DSignrank(5, 0) = %v, want NaN", got)
	}
	if got := DSignrank(math.NaN(), 4, false); !math.IsNaN(got) {
		t.Errorf("DSignrank(NaN, 4) = %v, want NaN", got)
	}

	// Densities sum to 1 over the support.
	for _, n := range []float64{1, 2, 7, 20} {
		sum := 0.0
		for x := 0.0; x <= n*(n+1)/2; x++ {
			sum += DSignrank(x, n, false)
		}
		if !aeq(sum, 1) {
			t.Errorf("n=%v: densities sum to %v, want 1", n, sum)
		}
	}
}

func TestPSignrank(t *testing.T) {
	check := func(x, n float64, lowerTail, logP bool, want float64) {
		t.Helper()
		got := PSignrank(x, n, lowerTail, logP)
		if got != want && !aeq(got, want) {
			t.Errorf("PSignrank(%v, %v, %v, %v) = %v, want %v", x, n, lowerTail, logP, got, want)
		}
	}
	// n=4 subset counts: 1,1,1,2,2,2,2,2,1,1,1 over 2^4 = 16.
	check(-1, 4, true, false, 0)
	check(0, 4, true, false, 1.0/16)
	check(3, 4, true, false, 5.0/16)
	check(5, 4, true, false, 9.0/16)
	check(9, 4, true, false, 15.0/16)
	check(10, 4, true, false, 1)
	check(3, 4, false, false, 11.0/16)
	check(3, 4, true, true, math.Log(5.0/16))
	check(3, 4, false, true, math.Log(11.0/16))

	// Upper half is summed from the short side; results must agree
	// with the direct lower sum.
	for x := 0.0; x <= 45; x++ {
		lo := PSignrank(x, 9, true, false)
		hi := PSignrank(x, 9, false, false)
		if !aeq(lo+hi, 1) {
			t.Errorf("PSignrank(%v, 9): tails sum to %v, want 1", x, lo+hi)
		}
	}

	// Monotone non-decreasing in x.
	prev := 0.0
	for x := 0.0; x <= 55; x++ {
		p := PSignrank(x, 10, true, false)
		if p < prev {
			t.Errorf("PSignrank(%v, 10) = %v < PSignrank(%v, 10) = %v", x, p, x-1, prev)
		}
		prev = p
	}

	if got := PSignrank(3, math.Inf(1), true, false); !math.IsNaN(got) {
		t.Errorf("PSignrank(3, Inf) = %v, want NaN", got)
	}
	if got := PSignrank(math.NaN(), 4, true, false); !math.IsNaN(got) {
		t.Errorf("PSignrank(NaN, 4) = %v, want NaN", got)
	}
}

func TestQSignrank(t *testing.T) {
	check := func(p, n float64, lowerTail, logP bool, want float64) {
		t.Helper()
		got := QSignrank(p, n, lowerTail, logP)
		if got != want {
			t.Errorf("QSignrank(%v, %v, %v, %v) = %v, want %v", p, n, lowerTail, logP, got, want)
		}
	}
	check(0, 4, true, false, 0)
	check(1, 4, true, false, 10)
	check(0, 4, false, false, 10)
	check(1, 4, false, false, 0)
	check(math.Inf(-1), 4, true, true, 0)
	check(0, 4, true, true, 10)
	check(0.5, 4, true, false, 5)
	check(5.0/16, 4, true, false, 3)
	check(5.0/16, 4, false, false, 6)

	if got := QSignrank(1.5, 4, true, false); !math.IsNaN(got) {
		t.Errorf("QSignrank(1.5, 4) = %v, want NaN", got)
	}
	if got := QSignrank(-0.5, 4, true, false); !math.IsNaN(got) {
		t.Errorf("QSignrank(-0.5, 4) = %v, want NaN", got)
	}
	if got := QSignrank(0.5, 0, true, false); !math.IsNaN(got) {
		t.Errorf("QSignrank(0.5, 0) = %v, want NaN", got)
	}
}

func TestQSignrankRoundTrip(t *testing.T) {
	for _, n := range []float64{1, 4, 9, 13} {
		u := n * (n + 1) / 2
		for k := 0.0; k < u; k++ {
			p := PSignrank(k, n, true, false)
			if q := QSignrank(p, n, true, false); q != k {
				t.Errorf("n=%v: QSignrank(PSignrank(%v) = %v) = %v, want %v", n, k, p, q, k)
			}
			// Same through the upper tail.
			pu := PSignrank(k, n, false, false)
			if q := QSignrank(pu, n, false, false); q != k {
				t.Errorf("n=%v: upper-tail round trip of %v gave %v", n, k, q)
			}
		}
	}
}

func TestSignRankDist(t *testing.T) {
	d := SignRankDist{N: 4}
	if lo, hi := d.Bounds(); lo != 0 || hi != 10 {
		t.Errorf("Bounds() = %v, %v, want 0, 10", lo, hi)
	}
	if d.Step() != 1 {
		t.Errorf("Step() = %v, want 1", d.Step())
	}
	for k := 0.0; k <= 10; k++ {
		// The type methods delegate to the R-style functions, so
		// agreement must be bit-exact, not merely close.
		if got, want := d.PMF(k), DSignrank(k, 4, false); got != want {
			t.Errorf("PMF(%v) = %v, want %v", k, got, want)
		}
		if got, want := d.CDF(k), PSignrank(k, 4, true, false); got != want {
			t.Errorf("CDF(%v) = %v, want %v", k, got, want)
		}
		if got := d.InvCDF(d.CDF(k)); got != k {
			t.Errorf("InvCDF(CDF(%v)) = %v", k, got)
		}
	}
	// P(W = 3) = 2/16 for n = 4, and x is floored before lookup.
	if got := d.PMF(3); !aeq(got, 0.125) {
		t.Errorf("PMF(3) = %v, want 0.125", got)
	}
	if got, want := d.PMF(3.5), d.PMF(3); got != want {
		t.Errorf("PMF(3.5) = %v, want PMF(3) = %v", got, want)
	}
	if got := d.PMF(-1); got != 0 {
		t.Errorf("PMF(-1) = %v, want 0", got)
	}
	if got := d.CDF(11); got != 1 {
		t.Errorf("CDF(11) = %v, want 1", got)
	}
}

func TestRSignrank(t *testing.T) {
	src := rand.NewSource(1)

	if got := RSignrank(0, src); got != 0 {
		t.Errorf("RSignrank(0) = %v, want 0", got)
	}
	if got := RSignrank(-1, src); !math.IsNaN(got) {
		t.Errorf("RSignrank(-1) = %v, want NaN", got)
	}
	if got := RSignrank(math.NaN(), src); !math.IsNaN(got) {
		t.Errorf("RSignrank(NaN) = %v, want NaN", got)
	}

	const n, trials = 10, 20000
	u := float64(n * (n + 1) / 2)
	sum := 0.0
	for i := 0; i < trials; i++ {
		r := RSignrank(n, src)
		if r < 0 || r > u || r != math.Floor(r) {
			t.Fatalf("RSignrank(%v) = %v, outside {0,...,%v}", float64(n), r, u)
		}
		sum += r
	}
	mean := sum / trials
	// E[W+] = n(n+1)/4 = 27.5; the standard error of the mean over
	// 20000 trials is about 0.07, so 0.5 is a generous bound.
	if math.Abs(mean-27.5) > 0.5 {
		t.Errorf("empirical mean = %v, want ~27.5", mean)
	}
}

func BenchmarkSignRankCDF(b *testing.B) {
	// R uses the exact distribution up to n=50; the midpoint is the
	// most expensive query.
	for i := 0; i < b.N; i++ {
		srTable.n = 0 // force rebuild
		srTable.w = nil
		PSignrank(637, 50, true, false)
	}
}
