package benchtest

import (
	"bytes"
	"context"
	"errors"
	"io"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charlievieth/utf8count"
	"github.com/charlievieth/utf8count/internal/bytealg"
)

func TestFillRandom(t *testing.T) {
	b1 := make([]byte, 1024)
	b2 := make([]byte, 1024)
	FillRandom(b1, rand.NewSource(42))
	FillRandom(b2, rand.NewSource(42))
	require.Equal(t, b1, b2)

	FillRandom(b2, rand.NewSource(43))
	require.NotEqual(t, b1, b2)

	// All byte values should show up in a buffer this large.
	var seen [256]bool
	big := make([]byte, 1<<16)
	FillRandom(big, rand.NewSource(1))
	for _, c := range big {
		seen[c] = true
	}
	for c, ok := range seen {
		assert.True(t, ok, "byte %#02x never generated", c)
	}
}

func TestRun(t *testing.T) {
	conf := Config{Size: 4099, Iterations: 10, Seed: 7}
	res, err := Run(context.Background(), conf)
	require.NoError(t, err)

	buf := make([]byte, conf.Size)
	FillRandom(buf, rand.NewSource(conf.Seed))
	want := utf8count.CountScalar(buf, len(buf))

	assert.Equal(t, conf.Size, res.Size)
	assert.Equal(t, conf.Iterations, res.Iterations)
	assert.Equal(t, bytealg.PopcountImpl(), res.Popcount)
	assert.Equal(t, want, res.Scalar.Count)
	assert.Equal(t, want, res.SWAR.Count)
	assert.Equal(t, "count_utf8", res.Scalar.Name)
	assert.Equal(t, "swar_count_utf8", res.SWAR.Name)

	for _, tm := range []Timing{res.Scalar, res.SWAR} {
		assert.Equal(t, conf.Size, tm.Bytes)
		assert.LessOrEqual(t, tm.Min, tm.Median)
		assert.LessOrEqual(t, tm.Median, tm.Max)
		assert.GreaterOrEqual(t, tm.Mean, float64(tm.Min))
		assert.LessOrEqual(t, tm.Mean, float64(tm.Max))
	}

	// Same seed, same counts.
	res2, err := Run(context.Background(), conf)
	require.NoError(t, err)
	assert.Equal(t, res.SWAR.Count, res2.SWAR.Count)
}

func TestRunEmpty(t *testing.T) {
	res, err := Run(context.Background(), Config{Size: 0, Iterations: 1})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Scalar.Count)
	assert.Equal(t, 0, res.SWAR.Count)
}

func TestRunInvalidConfig(t *testing.T) {
	for _, conf := range []Config{
		{Size: -1, Iterations: 1},
		{Size: 8, Iterations: 0},
		{Size: 8, Iterations: -1},
	} {
		_, err := Run(context.Background(), conf)
		assert.Error(t, err, "%+v", conf)
	}
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, DefaultConfig())
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled), "got: %v", err)
}

func TestRunProgress(t *testing.T) {
	const n = 5
	bar := progressbar.NewOptions(n, progressbar.OptionSetWriter(io.Discard))
	_, err := Run(context.Background(), Config{Size: 64, Iterations: n, Progress: bar})
	require.NoError(t, err)
	assert.Equal(t, float64(1), bar.State().CurrentPercent)
}

func TestDefaultConfig(t *testing.T) {
	conf := DefaultConfig()
	assert.Equal(t, 50000, conf.Size)
	assert.Equal(t, 1000, conf.Iterations)
	assert.NoError(t, conf.validate())
}

func TestSummarize(t *testing.T) {
	samples := []time.Duration{5, 1, 4, 2, 3}
	tm := summarize("x", 10, 100, samples)
	assert.Equal(t, 3.0, tm.Mean)
	assert.Equal(t, time.Duration(1), tm.Min)
	assert.Equal(t, time.Duration(5), tm.Max)
	assert.Equal(t, time.Duration(3), tm.Median)
	// The input must not be reordered.
	assert.Equal(t, []time.Duration{5, 1, 4, 2, 3}, samples)

	assert.Equal(t, Timing{Name: "y"}, summarize("y", 0, 0, nil))
}

func TestWriteTo(t *testing.T) {
	res := &Result{
		Size:       50000,
		Iterations: 1000,
		Popcount:   "popcnt",
		Scalar: Timing{
			Name: "count_utf8", Count: 37500, Bytes: 50000, Mean: 25000,
			Median: 24 * time.Microsecond, Min: 20 * time.Microsecond, Max: 40 * time.Microsecond,
		},
		SWAR: Timing{
			Name: "swar_count_utf8", Count: 37500, Bytes: 50000, Mean: 5000,
			Median: 5 * time.Microsecond, Min: 4 * time.Microsecond, Max: 9 * time.Microsecond,
		},
	}
	var buf bytes.Buffer
	n, err := res.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)

	lines := strings.Split(buf.String(), "\n")
	require.GreaterOrEqual(t, len(lines), 2)
	assert.Equal(t, "count_utf8:      25000.00", lines[0])
	assert.Equal(t, "swar_count_utf8: 5000.00", lines[1])

	out := buf.String()
	assert.Contains(t, out, "50 kB (50,000 bytes) x 1,000 iterations")
	assert.Contains(t, out, "popcount:   popcnt")
	assert.Contains(t, out, "codepoints: 37,500")
	assert.Contains(t, out, "2.0 GB/s") // 50000 bytes / 25µs
	assert.Contains(t, out, "10 GB/s")  // 50000 bytes / 5µs
	assert.Contains(t, out, "speedup:    5.00x")
}
