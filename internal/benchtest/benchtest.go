// Package benchtest measures the throughput of the utf8count counters.
//
// Run reproduces the reference measurement: a buffer of pseudo-random bytes
// is counted by the scalar and SWAR counters in turn, many times, and the
// average time per call of each is reported. The Go benchmarks in this
// package compare the counters against the standard library's
// utf8.RuneCount (use the -stdlib flag).
package benchtest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"

	"github.com/charlievieth/utf8count"
	"github.com/charlievieth/utf8count/internal/bytealg"
)

// Defaults used by the reference measurement.
const (
	DefaultSize       = 50000
	DefaultIterations = 1000
	DefaultSeed       = 1
)

// ErrMismatch is returned by Run if the counters disagree.
var ErrMismatch = errors.New("benchtest: scalar and SWAR counts differ")

// Config configures Run.
type Config struct {
	Size       int   // buffer size in bytes
	Iterations int   // number of calls to each counter
	Seed       int64 // seed used to fill the buffer

	// Progress, if not nil, is advanced once per iteration.
	Progress *progressbar.ProgressBar
}

func DefaultConfig() Config {
	return Config{
		Size:       DefaultSize,
		Iterations: DefaultIterations,
		Seed:       DefaultSeed,
	}
}

func (c *Config) validate() error {
	if c.Size < 0 {
		return fmt.Errorf("benchtest: invalid buffer size: %d", c.Size)
	}
	if c.Iterations <= 0 {
		return fmt.Errorf("benchtest: invalid number of iterations: %d", c.Iterations)
	}
	return nil
}

// A Timing summarizes the calls made to one counter.
type Timing struct {
	Name   string
	Count  int     // code points counted
	Bytes  int     // bytes counted per call
	Mean   float64 // nanoseconds per call
	Median time.Duration
	Min    time.Duration
	Max    time.Duration
}

// BytesPerSecond returns the mean throughput.
func (t *Timing) BytesPerSecond() float64 {
	if t.Mean <= 0 {
		return 0
	}
	return float64(t.Bytes) * float64(time.Second) / t.Mean
}

type Result struct {
	Size       int
	Iterations int
	Popcount   string // popcount implementation used by the SWAR counter
	Scalar     Timing
	SWAR       Timing
}

// Speedup returns how many times faster the SWAR counter was than the
// scalar counter.
func (r *Result) Speedup() float64 {
	if r.SWAR.Mean <= 0 {
		return 0
	}
	return r.Scalar.Mean / r.SWAR.Mean
}

// WriteTo writes a report of r to w. The first two lines have the same format
// as the reference benchmark.
func (r *Result) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%-16s %.2f\n", r.Scalar.Name+":", r.Scalar.Mean)
	fmt.Fprintf(&buf, "%-16s %.2f\n", r.SWAR.Name+":", r.SWAR.Mean)
	fmt.Fprintln(&buf)
	fmt.Fprintf(&buf, "buffer:     %s (%s bytes) x %s iterations\n",
		humanize.Bytes(uint64(r.Size)), humanize.Comma(int64(r.Size)),
		humanize.Comma(int64(r.Iterations)))
	fmt.Fprintf(&buf, "popcount:   %s\n", r.Popcount)
	fmt.Fprintf(&buf, "codepoints: %s\n", humanize.Comma(int64(r.SWAR.Count)))
	for _, t := range [...]*Timing{&r.Scalar, &r.SWAR} {
		fmt.Fprintf(&buf, "%-16s %s/s (median: %s min: %s max: %s)\n", t.Name+":",
			humanize.Bytes(uint64(t.BytesPerSecond())), t.Median, t.Min, t.Max)
	}
	fmt.Fprintf(&buf, "speedup:    %.2fx\n", r.Speedup())
	n, err := w.Write(buf.Bytes())
	return int64(n), err
}

// FillRandom fills b with pseudo-random bytes from src.
func FillRandom(b []byte, src rand.Source) {
	rr := rand.New(src)
	for i := range b {
		b[i] = byte(rr.Int63())
	}
}

func mean[T constraints.Integer](a []T) float64 {
	if len(a) == 0 {
		return 0
	}
	var sum float64
	for _, x := range a {
		sum += float64(x)
	}
	return sum / float64(len(a))
}

func summarize(name string, count, size int, samples []time.Duration) Timing {
	t := Timing{
		Name:  name,
		Count: count,
		Bytes: size,
		Mean:  mean(samples),
	}
	if len(samples) == 0 {
		return t
	}
	sorted := slices.Clone(samples)
	slices.Sort(sorted)
	t.Min = sorted[0]
	t.Max = sorted[len(sorted)-1]
	t.Median = sorted[len(sorted)/2]
	return t
}

// Prevents the calls from being optimized away.
var sink int

// Run measures both counters against a buffer of conf.Size pseudo-random
// bytes. The counters are called alternately, once each per iteration.
func Run(ctx context.Context, conf Config) (*Result, error) {
	if err := conf.validate(); err != nil {
		return nil, err
	}
	buf := make([]byte, conf.Size)
	FillRandom(buf, rand.NewSource(conf.Seed))

	scalar := make([]time.Duration, conf.Iterations)
	swar := make([]time.Duration, conf.Iterations)
	var count1, count2 int
	for i := 0; i < conf.Iterations; i++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("benchtest: stopped after %d iterations: %w", i, err)
		}
		start := time.Now()
		count1 = utf8count.CountScalar(buf, len(buf))
		scalar[i] = time.Since(start)

		start = time.Now()
		count2 = utf8count.CountSWAR(buf, len(buf))
		swar[i] = time.Since(start)

		if count1 != count2 {
			return nil, fmt.Errorf("%w: scalar: %d swar: %d (seed: %d size: %d)",
				ErrMismatch, count1, count2, conf.Seed, conf.Size)
		}
		if conf.Progress != nil {
			if err := conf.Progress.Add(1); err != nil {
				return nil, fmt.Errorf("benchtest: updating progress bar: %w", err)
			}
		}
	}
	sink = count1 + count2

	return &Result{
		Size:       conf.Size,
		Iterations: conf.Iterations,
		Popcount:   bytealg.PopcountImpl(),
		Scalar:     summarize("count_utf8", count1, conf.Size, scalar),
		SWAR:       summarize("swar_count_utf8", count2, conf.Size, swar),
	}, nil
}
