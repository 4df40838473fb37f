package test

import (
	crand "crypto/rand"
	"encoding/binary"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"runtime"
	"sync/atomic"
	"testing"
	"time"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/rangetable"
)

var exhaustiveFuzz = flag.Bool("exhaustive", false, "Run exhaustive fuzz tests (slow).")

// MaxFuzzLen is the maximum length of the buffers generated by CountFuzz.
const MaxFuzzLen = 1000

// Printable runes bucketed by encoded length: runesByWidth[n] holds runes
// that encode to n+1 bytes.
var runesByWidth = generateRuneTables(rangetable.Merge(
	unicode.L,
	unicode.M,
	unicode.N,
	unicode.P,
	unicode.S,
	unicode.Zs,
))

func generateRuneTables(rt *unicode.RangeTable) (tables [utf8.UTFMax][]rune) {
	rangetable.Visit(rt, func(r rune) {
		n := utf8.RuneLen(r)
		tables[n-1] = append(tables[n-1], r)
	})
	for i, rs := range tables {
		if len(rs) == 0 {
			panic(fmt.Sprintf("no %d byte runes for Unicode version: %s",
				i+1, unicode.Version))
		}
	}
	return tables
}

func cryptoRandInt(t testing.TB) int64 {
	var b [8]byte
	if _, err := io.ReadFull(crand.Reader, b[:]); err != nil {
		if t != nil {
			t.Fatal(err)
		}
		panic(err)
	}
	return int64(binary.LittleEndian.Uint64(b[:]))
}

func intn(rr *rand.Rand, n int) int {
	if n <= 0 {
		return 0
	}
	return rr.Intn(n)
}

// RandRune returns a random printable rune. Each encoded width is equally
// likely.
func RandRune(rr *rand.Rand) rune {
	rs := runesByWidth[rr.Intn(len(runesByWidth))]
	return rs[rr.Intn(len(rs))]
}

// AppendRandUTF8 appends n random runes to b as valid UTF-8.
func AppendRandUTF8(b []byte, rr *rand.Rand, n int) []byte {
	for i := 0; i < n; i++ {
		b = utf8.AppendRune(b, RandRune(rr))
	}
	return b
}

// AppendRandBytes appends n uniformly random bytes to b.
func AppendRandBytes(b []byte, rr *rand.Rand, n int) []byte {
	for i := 0; i < n; i++ {
		b = append(b, byte(rr.Intn(256)))
	}
	return b
}

// randBuffer returns a buffer of at most max bytes that is either random
// bytes, valid UTF-8, or valid UTF-8 with runs of random bytes mixed in.
func randBuffer(rr *rand.Rand, b []byte, max int) []byte {
	b = b[:0]
	size := intn(rr, max+1)
	switch rr.Intn(3) {
	case 0:
		b = AppendRandBytes(b, rr, size)
	case 1:
		for len(b) < size {
			b = AppendRandUTF8(b, rr, 1)
		}
	default:
		for len(b) < size {
			if rr.Intn(4) == 0 {
				b = AppendRandBytes(b, rr, 1+rr.Intn(8))
			} else {
				b = AppendRandUTF8(b, rr, 1+rr.Intn(8))
			}
		}
	}
	if len(b) > max {
		b = b[:max]
	}
	return b
}

func fuzzNumCPU() int {
	numCPU := runtime.NumCPU()
	if runtime.GOOS == "darwin" && runtime.GOARCH == "arm64" {
		// Avoid using all the cores.
		if numCPU >= 8 {
			numCPU -= 2
		}
	}
	if numCPU < 1 {
		numCPU = 1
	}
	return numCPU
}

func randomTestSeeds(t *testing.T) []int64 {
	seeds := []int64{
		1,
		time.Now().UnixNano(),
		cryptoRandInt(t),
		cryptoRandInt(t),
	}
	if !testing.Short() {
		numCPU := fuzzNumCPU()
		for i := len(seeds); i < numCPU; i++ {
			seeds = append(seeds, cryptoRandInt(t))
		}
	}
	return seeds
}

type fuzzTest struct {
	testing.TB
	rr  *rand.Rand
	buf []byte // scratch space
}

func newFuzzTest(t *testing.T, seed int64) *fuzzTest {
	if seed < 0 {
		seed = cryptoRandInt(t)
	}
	return &fuzzTest{
		TB:  &testWrapper{T: t},
		rr:  rand.New(rand.NewSource(seed)),
		buf: make([]byte, 0, MaxFuzzLen+utf8.UTFMax*8),
	}
}

func runRandomTest(t *testing.T, fn func(t *fuzzTest)) {
	if *exhaustiveFuzz && testing.Short() {
		t.Fatal(`Cannot combine "-short" and "-exhaustive" flags`)
	}
	// Number of iterations per seed. There are always at least 4 seeds so
	// this is at least 10,000 buffers unless -short is set.
	count := 2_500
	if testing.Short() {
		count /= 2
	}
	seeds := randomTestSeeds(t)
	if *exhaustiveFuzz {
		count = 4_000_000 / len(seeds)
		t.Logf("N: %d", count)
	}
	for _, seed := range seeds {
		seed := seed
		t.Run(fmt.Sprintf("%d", seed), func(t *testing.T) {
			t.Parallel()
			start := time.Now()
			if testing.Verbose() {
				t.Cleanup(func() { t.Logf("duration: %s", time.Since(start)) })
			}
			tt := newFuzzTest(t, seed)
			for i := 0; i < count; i++ {
				fn(tt)
			}
		})
		if t.Failed() && testing.Short() {
			return
		}
	}
}

// CountFuzz compares fn against ReferenceCount using random buffers of
// 0..MaxFuzzLen bytes and random lengths within each buffer.
func CountFuzz(t *testing.T, fn CountFunc) {
	runRandomTest(t, func(t *fuzzTest) {
		t.buf = randBuffer(t.rr, t.buf, MaxFuzzLen)
		b := t.buf
		ns := [...]int{len(b), intn(t.rr, len(b)+1)}
		for _, n := range ns {
			want := ReferenceCount(b[:n])
			if got := fn(b, n); got != want {
				t.Errorf("Count(%q, %d) = %d; want: %d", b, n, got, want)
			}
		}
	})
}

// CountEqualFuzz checks that all of fns agree on random buffers.
func CountEqualFuzz(t *testing.T, fns ...CountFunc) {
	if len(fns) < 2 {
		t.Fatal("CountEqualFuzz: at least two functions are required")
	}
	runRandomTest(t, func(t *fuzzTest) {
		t.buf = randBuffer(t.rr, t.buf, MaxFuzzLen)
		b := t.buf
		n := intn(t.rr, len(b)+1)
		want := fns[0](b, n)
		for i, fn := range fns[1:] {
			if got := fn(b, n); got != want {
				t.Errorf("fns[%d](%q, %d) = %d; fns[0] = %d", i+1, b, n, got, want)
			}
		}
	})
}

var _ testing.TB = (*testWrapper)(nil)

// A testWrapper wraps a testing.T and will immediately fail the test
// if more that N errors occur.
type testWrapper struct {
	*testing.T
	fails int32
}

func (c *testWrapper) check() {
	c.T.Helper()
	if n := atomic.AddInt32(&c.fails, 1); n >= 10 {
		// We run tests in parallel so only call Fatal on the
		// test that crossed the threshold.
		if n == 10 {
			c.T.Fatal("Too many errors:", n)
		} else {
			c.T.FailNow() // Abort subsequent tests
		}
		panic(fmt.Sprintf("aborting test: too many errors: %d", n)) // unreachable
	}
}

func (c *testWrapper) Error(args ...any) {
	c.T.Helper()
	c.T.Error(args...)
	c.check()
}

func (c *testWrapper) Errorf(format string, args ...any) {
	c.T.Helper()
	c.T.Errorf(format, args...)
	c.check()
}

func (c *testWrapper) Fatal(args ...any) {
	c.T.Helper()
	c.T.Fatal(args...)
	c.check()
}

func (c *testWrapper) Fatalf(format string, args ...any) {
	c.T.Helper()
	c.T.Fatalf(format, args...)
	c.check()
}
