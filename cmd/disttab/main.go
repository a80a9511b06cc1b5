// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Disttab prints tables of distribution functions.
//
// Usage:
//
//	disttab [-dist name] [options] [x ...]
//
// Disttab evaluates the density (or mass), cumulative distribution,
// and, for discrete distributions, quantile functions of one of the
// distributions implemented by package dist, and prints them as a
// table. With no x arguments it covers the distribution's support.
//
// The -dist option selects the distribution: signrank (the Wilcoxon
// signed-rank distribution, parameterized by -n), nct (the noncentral
// t-distribution, parameterized by -df and -ncp), or binom (the
// binomial distribution, parameterized by -n and -p).
//
// The -upper option switches the CDF column to the upper tail and
// -log prints probabilities on the log scale.
//
// The -plot option renders the tabulated functions as a chart; the
// output format is chosen by the file extension (.png, .svg, .pdf).
//
// For example,
//
//	$ disttab -dist signrank -n 4 0 3 5
//	x  P(X = x)  P(X <= x)  quantile
//	0  0.0625    0.0625     0
//	3  0.125     0.3125     3
//	5  0.125     0.5625     5
package main

import (
	"flag"
	"fmt"
	"image/color"
	"io"
	"log"
	"os"
	"strconv"
	"text/tabwriter"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/rnbwd/rmath/dist"
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: disttab [options] [x ...]\n")
	fmt.Fprintf(os.Stderr, "options:\n")
	flag.PrintDefaults()
	os.Exit(2)
}

var (
	flagDist  = flag.String("dist", "signrank", "distribution `name`: signrank, nct, or binom")
	flagN     = flag.Int("n", 10, "sample size (signrank) or trial count (binom)")
	flagDF    = flag.Float64("df", 10, "degrees of freedom (nct)")
	flagNCP   = flag.Float64("ncp", 0, "noncentrality parameter (nct)")
	flagP     = flag.Float64("p", 0.5, "success probability (binom)")
	flagUpper = flag.Bool("upper", false, "print upper-tail probabilities")
	flagLog   = flag.Bool("log", false, "print probabilities on the log scale")
	flagPlot  = flag.String("plot", "", "write a chart to `file` (.png, .svg, or .pdf)")
)

func main() {
	log.SetPrefix("disttab: ")
	log.SetFlags(0)
	flag.Usage = usage
	flag.Parse()

	xs, err := parsePoints(flag.Args())
	if err != nil {
		log.Fatal(err)
	}

	var table *distTable
	switch *flagDist {
	case "signrank":
		if *flagN < 1 {
			log.Fatalf("-n must be positive, have %d", *flagN)
		}
		table = signrankTable(*flagN, xs)
	case "nct":
		table = nctTable(*flagDF, *flagNCP, xs)
	case "binom":
		if *flagN < 0 {
			log.Fatalf("-n must be non-negative, have %d", *flagN)
		}
		if *flagP < 0 || *flagP > 1 {
			log.Fatalf("-p must be in [0,1], have %v", *flagP)
		}
		table = binomTable(*flagN, *flagP, xs)
	default:
		log.Fatalf("unknown distribution %q", *flagDist)
	}

	table.write(os.Stdout)
	if *flagPlot != "" {
		if err := table.plot(*flagPlot); err != nil {
			log.Fatal(err)
		}
	}
}

func parsePoints(args []string) ([]float64, error) {
	if len(args) == 0 {
		return nil, nil
	}
	xs := make([]float64, len(args))
	for i, a := range args {
		x, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("bad point %q: %v", a, err)
		}
		xs[i] = x
	}
	return xs, nil
}

// A distTable is one column of query points and one or more columns
// of distribution function values at those points.
type distTable struct {
	name string
	cols []string
	xs   []float64
	vals [][]float64 // vals[i][j] is column j at xs[i]
}

// supportPoints returns the integer support of a discrete
// distribution as query points.
func supportPoints(d interface{ Bounds() (float64, float64) }) []float64 {
	lo, hi := d.Bounds()
	xs := make([]float64, 0, int(hi-lo)+1)
	for x := lo; x <= hi; x++ {
		xs = append(xs, x)
	}
	return xs
}

func signrankTable(n int, xs []float64) *distTable {
	d := dist.SignRankDist{N: n}
	if xs == nil {
		xs = supportPoints(d)
	}
	nf := float64(n)
	t := &distTable{
		name: fmt.Sprintf("signrank(n=%d)", n),
		cols: []string{"P(X = x)", cdfLabel(), "quantile"},
		xs:   xs,
	}
	for _, x := range xs {
		p := dist.PSignrank(x, nf, !*flagUpper, *flagLog)
		t.vals = append(t.vals, []float64{
			dist.DSignrank(x, nf, *flagLog),
			p,
			dist.QSignrank(p, nf, !*flagUpper, *flagLog),
		})
	}
	return t
}

func nctTable(df, ncp float64, xs []float64) *distTable {
	d := dist.NoncentralTDist{Nu: df, Ncp: ncp}
	if xs == nil {
		lo, hi := d.Bounds()
		for x := lo; x <= hi; x += 0.5 {
			xs = append(xs, x)
		}
	}
	t := &distTable{
		name: fmt.Sprintf("nct(df=%v, ncp=%v)", df, ncp),
		cols: []string{cdfLabel()},
		xs:   xs,
	}
	for _, x := range xs {
		t.vals = append(t.vals, []float64{dist.PNT(x, df, ncp, !*flagUpper, *flagLog)})
	}
	return t
}

func binomTable(n int, p float64, xs []float64) *distTable {
	d := dist.BinomialDist{N: n, P: p}
	if xs == nil {
		xs = supportPoints(d)
	}
	t := &distTable{
		name: fmt.Sprintf("binom(n=%d, p=%v)", n, p),
		cols: []string{"P(X = x)", cdfLabel()},
		xs:   xs,
	}
	for _, x := range xs {
		t.vals = append(t.vals, []float64{
			d.PMF(x),
			dist.PBinom(x, float64(n), p, !*flagUpper, *flagLog),
		})
	}
	return t
}

func cdfLabel() string {
	l := "P(X <= x)"
	if *flagUpper {
		l = "P(X > x)"
	}
	if *flagLog {
		l = "log " + l
	}
	return l
}

func (t *distTable) write(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "x")
	for _, c := range t.cols {
		fmt.Fprintf(tw, "\t%s", c)
	}
	fmt.Fprintf(tw, "\n")
	for i, x := range t.xs {
		fmt.Fprintf(tw, "%v", x)
		for _, v := range t.vals[i] {
			fmt.Fprintf(tw, "\t%v", v)
		}
		fmt.Fprintf(tw, "\n")
	}
	tw.Flush()
}

func (t *distTable) plot(file string) error {
	p := plot.New()
	p.Title.Text = t.name
	p.X.Label.Text = "x"
	p.Y.Label.Text = "probability"

	for j, col := range t.cols {
		if col == "quantile" {
			continue
		}
		pts := make(plotter.XYs, len(t.xs))
		for i, x := range t.xs {
			pts[i].X = x
			pts[i].Y = t.vals[i][j]
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		line.Color = lineColors[j%len(lineColors)]
		p.Add(line)
		p.Legend.Add(col, line)
	}
	return p.Save(6*vg.Inch, 4*vg.Inch, file)
}

var lineColors = []color.RGBA{
	{R: 0x20, G: 0x66, B: 0xb3, A: 0xff},
	{R: 0xcc, G: 0x54, B: 0x1e, A: 0xff},
	{R: 0x2a, G: 0x8a, B: 0x3e, A: 0xff},
}
