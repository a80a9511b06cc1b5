// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dist

import (
	"math"
	"testing"
)

func TestPBinom(t *testing.T) {
	check := func(x, n, p float64, lowerTail, logP bool, want float64) {
		t.Helper()
		got := PBinom(x, n, p, lowerTail, logP)
		if got != want && !aeq(got, want) {
			t.Errorf("PBinom(%v, %v, %v, %v, %v) = %v, want %v", x, n, p, lowerTail, logP, got, want)
		}
	}
	// Sum of C(10,k)/2^10 for k <= 3 is 176/1024.
	check(3, 10, 0.5, true, false, 0.171875)
	check(3, 10, 0.5, false, false, 1-0.171875)
	check(3, 10, 0.5, true, true, math.Log(0.171875))
	check(-1, 10, 0.5, true, false, 0)
	check(10, 10, 0.5, true, false, 1)
	check(12, 10, 0.5, true, false, 1)
	check(-1, 10, 0.5, false, false, 1)
	// x is floored with tolerance.
	check(3.9, 10, 0.5, true, false, 0.171875)
	check(4-1e-9, 10, 0.5, true, false, 0.376953125)

	// Degenerate success probabilities.
	check(3, 10, 0, true, false, 1)
	check(3, 10, 1, true, false, 0)

	bad := []struct{ x, n, p float64 }{
		{3, 10.5, 0.5},
		{3, -1, 0.5},
		{3, 10, -0.1},
		{3, 10, 1.1},
		{3, math.Inf(1), 0.5},
		{math.NaN(), 10, 0.5},
		{3, math.NaN(), 0.5},
		{3, 10, math.NaN()},
	}
	for _, c := range bad {
		if got := PBinom(c.x, c.n, c.p, true, false); !math.IsNaN(got) {
			t.Errorf("PBinom(%v, %v, %v) = %v, want NaN", c.x, c.n, c.p, got)
		}
	}
}

func TestBinomialDist(t *testing.T) {
	d := BinomialDist{N: 10, P: 0.3}
	if lo, hi := d.Bounds(); lo != 0 || hi != 10 {
		t.Errorf("Bounds() = %v, %v, want 0, 10", lo, hi)
	}

	// CDF is the running sum of the PMF.
	sum := 0.0
	for k := 0.0; k <= 10; k++ {
		sum += d.PMF(k)
		if got := d.CDF(k); !aeq(got, sum) {
			t.Errorf("CDF(%v) = %v, want running PMF sum %v", k, got, sum)
		}
	}
	if !aeq(sum, 1) {
		t.Errorf("PMF sums to %v, want 1", sum)
	}
	if got := d.PMF(-1); got != 0 {
		t.Errorf("PMF(-1) = %v, want 0", got)
	}
	if got := d.PMF(11); got != 0 {
		t.Errorf("PMF(11) = %v, want 0", got)
	}
}
