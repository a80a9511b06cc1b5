// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dist

import (
	"errors"
	"math"

	"github.com/aclements/go-moremath/mathx"
	"github.com/aclements/go-moremath/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

// Diagnostic warnings reported by the noncentral t CDF. These are
// non-fatal: the computation still returns its best estimate.
var (
	// ErrUnderflow indicates the Poisson weights of the series
	// underflowed because the noncentrality parameter is too
	// large. The result is an exact tail boundary.
	ErrUnderflow = errors.New("dist: noncentrality parameter too large, series weights underflow")

	// ErrPrecision indicates full precision may not have been
	// achieved.
	ErrPrecision = errors.New("dist: full precision may not have been achieved in noncentral t CDF")

	// ErrNonConvergence indicates the series did not converge
	// within its iteration limit.
	ErrNonConvergence = errors.New("dist: noncentral t series did not converge")
)

// A Diag describes how a noncentral t CDF evaluation went. It is the
// explicit form of the warning side channel of the reference
// implementations of AS 243.
type Diag struct {
	// Iters is the number of series iterations performed. It is
	// 0 when the evaluation did not enter the series (delegation,
	// boundary, or asymptotic cases).
	Iters int

	// Converged reports whether the series terminated on a
	// convergence criterion rather than the iteration limit.
	Converged bool

	// Warnings is a list of non-fatal diagnostics that should be
	// reported to the user along with the result.
	Warnings []error
}

// A NoncentralTDist is a Student's t-distribution with Nu degrees of
// freedom whose underlying normal component is shifted by the
// noncentrality parameter Ncp.
//
// The CDF is evaluated with the twin power series of Lenth (1989),
// algorithm AS 243, with the Abramowitz & Stegun 26.7.10 normal
// approximation for extreme Nu or Ncp. With Ncp == 0 it reduces
// exactly to the central t-distribution.
type NoncentralTDist struct {
	Nu  float64
	Ncp float64
}

var _ ContDist = NoncentralTDist{}

// CDF returns the probability of a value <= x.
func (d NoncentralTDist) CDF(x float64) float64 {
	p, _ := pnt(x, d.Nu, d.Ncp, true, false)
	return p
}

// CDFDiag is like CDF but also returns evaluation diagnostics.
func (d NoncentralTDist) CDFDiag(x float64) (float64, Diag) {
	return pnt(x, d.Nu, d.Ncp, true, false)
}

// CDFEach returns CDF(xs[i]) for each i.
func (d NoncentralTDist) CDFEach(xs []float64) []float64 {
	res := make([]float64, len(xs))
	for i, x := range xs {
		res[i], _ = pnt(x, d.Nu, d.Ncp, true, false)
	}
	return res
}

// Bounds returns bounds that cover all but a small fraction of the
// distribution's weight. The window is centered near the mode at Ncp
// and sized by the central t quantile, so it widens as the tails get
// heavier for small Nu; for Nu near 1 with a large Ncp the skewed
// outer tail can still hold a few percent of the weight.
func (d NoncentralTDist) Bounds() (float64, float64) {
	st := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: d.Nu}
	w := st.Quantile(0.995)
	if w < 6 {
		w = 6
	}
	return d.Ncp - w, d.Ncp + w
}

// PNT returns the CDF of the noncentral t-distribution with df
// degrees of freedom and noncentrality ncp at t, on the tail and
// scale selected by lowerTail and logP. NaN inputs propagate; df must
// be positive, otherwise the result is NaN.
func PNT(t, df, ncp float64, lowerTail, logP bool) float64 {
	p, _ := pnt(t, df, ncp, lowerTail, logP)
	return p
}

// PNTEach returns PNT(ts[i], df, ncp, lowerTail, logP) for each i.
func PNTEach(ts []float64, df, ncp float64, lowerTail, logP bool) []float64 {
	res := make([]float64, len(ts))
	for i, t := range ts {
		res[i], _ = pnt(t, df, ncp, lowerTail, logP)
	}
	return res
}

const (
	sqrt2dPi = 0.797884560802865355879892119869 // sqrt(2/pi)
	lnSqrtPi = 0.572364942924700087071713675677 // log(sqrt(pi))

	pntItrMax   = 1000
	pntErrBound = 1e-12
)

// pnt evaluates the noncentral t CDF following Lenth (1989),
// algorithm AS 243, as refined by R's pnt.c: the CDF is expanded as a
// pair of interleaved incomplete-beta series with Poisson-like
// weights, summed until the remaining weight bounds the error below
// pntErrBound.
func pnt(t, df, ncp float64, lowerTail, logP bool) (float64, Diag) {
	dg := Diag{Converged: true}

	if math.IsNaN(t) || math.IsNaN(df) || math.IsNaN(ncp) {
		return t + df + ncp, dg
	}
	if df <= 0 {
		return nan, dg
	}
	if ncp == 0 {
		// Exact delegation to the central t-distribution.
		st := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
		return dtVal(st.CDF(t), lowerTail, logP), dg
	}
	if math.IsInf(t, 0) {
		if t < 0 {
			return dt0(lowerTail, logP), dg
		}
		return dt1(lowerTail, logP), dg
	}

	negdel := false
	tt, del := t, ncp
	if t < 0 {
		// Deal quickly with the extreme left tail, since
		// P(T <= t) <= P(T <= 0) = Phi(-ncp).
		if ncp > 40 && (!logP || !lowerTail) {
			return dt0(lowerTail, logP), dg
		}
		negdel = true
		tt = -t
		del = -ncp
	}

	// For huge df, or ncp so large that exp(-ncp²/2) underflows,
	// the series is useless; use the normal approximation from
	// Abramowitz & Stegun 26.7.10.
	if df > 4e5 || del*del > 2*math.Ln2*1021 {
		s := 1 / (4 * df)
		nd := stats.NormalDist{Mu: del, Sigma: math.Sqrt(1 + tt*tt*2*s)}
		return dtVal(nd.CDF(tt*(1-s)), lowerTail != negdel, logP), dg
	}

	x := tt * tt
	rxb := df / (x + df) // == 1 - x below, computed without cancellation
	x = x / (x + df)     // in [0,1)
	var tnc float64
	if x > 0 { // t != 0
		lambda := del * del
		p := 0.5 * math.Exp(-0.5*lambda)
		if p == 0 { // underflow: |ncp| too large
			dg.Warnings = append(dg.Warnings, ErrUnderflow)
			return dt0(lowerTail, logP), dg
		}
		q := sqrt2dPi * p * del
		s := 0.5 - p
		// s = 0.5 - p = 0.5*(1 - exp(-lambda/2)), which cancels
		// badly for small lambda.
		if s < 1e-7 {
			s = -0.5 * math.Expm1(-0.5*lambda)
		}
		a := 0.5
		b := 0.5 * df
		rxb = math.Pow(rxb, b)
		albeta := lnSqrtPi + lgamma(b) - lgamma(0.5+b)
		xodd := mathx.BetaInc(x, a, b)
		godd := 2 * rxb * math.Exp(a*math.Log(x)-albeta)
		tnc = b * x
		xeven := 1 - rxb
		if tnc < dblEps {
			xeven = tnc
		}
		geven := tnc * rxb
		tnc = p*xodd + q*xeven

		for it := 1; it <= pntItrMax; it++ {
			dg.Iters = it
			a++
			xodd -= godd
			xeven -= geven
			godd *= x * (a + b - 1) / a
			geven *= x * (a + b - 0.5) / (a + 0.5)
			p *= lambda / float64(2*it)
			q *= lambda / float64(2*it+1)
			tnc += p*xodd + q*xeven
			s -= p
			if s < -1e-10 { // happens e.g. for (t,df,ncp)=(40,4,39)
				dg.Converged = false
				dg.Warnings = append(dg.Warnings, ErrPrecision)
				break
			}
			if s <= 0 {
				// Poisson weight exhausted.
				break
			}
			errbd := 2 * s * (xodd - godd)
			if math.Abs(errbd) < pntErrBound {
				break
			}
			if it == pntItrMax {
				dg.Converged = false
				dg.Warnings = append(dg.Warnings, ErrNonConvergence)
			}
		}
	}
	// x == 0 (t == 0) contributes only the term below.
	tnc += stats.StdNormal.CDF(-del)

	lowerTail = lowerTail != negdel
	if tnc > 1-1e-10 && lowerTail {
		dg.Warnings = append(dg.Warnings, ErrPrecision)
	}
	return dtVal(math.Min(tnc, 1), lowerTail, logP), dg
}
