// Package test contains the test cases shared by the utf8count package and
// its internal kernels.
package test

import (
	"strings"
	"testing"
)

// A CountFunc counts the code points in b[:n].
type CountFunc func(b []byte, n int) int

// StringCountFunc adapts a string counter to a CountFunc.
func StringCountFunc(fn func(s string, n int) int) CountFunc {
	return func(b []byte, n int) int {
		return fn(string(b), n)
	}
}

// WholeCountFunc adapts a counter that always consumes its entire input.
func WholeCountFunc(fn func(b []byte) int) CountFunc {
	return func(b []byte, n int) int {
		return fn(b[:n])
	}
}

// ReferenceCount counts the bytes of b whose top two bits are not 10. It is
// deliberately written differently from the counters under test.
func ReferenceCount(b []byte) int {
	n := 0
	for _, c := range b {
		if c&0xC0 != 0x80 {
			n++
		}
	}
	return n
}

type countTest struct {
	s   string
	num int
}

// All 256 byte values in order: 64 of them are continuation bytes.
var allBytes = func() string {
	var b [256]byte
	for i := range b {
		b[i] = byte(i)
	}
	return string(b[:])
}()

var countTests = []countTest{
	{"", 0},
	{"a", 1},
	{"abc", 3},
	{"aé世", 3}, // 1, 2 and 3 byte code points
	{"héllo, 世界", 9},
	{"\U0001D11E", 1},
	{"☺☻☹", 3},
	{"12345678", 8},
	{"1234567é", 8},
	{"éééé", 4},
	{"ééééx", 5},
	{"\x80", 0},
	{"\xbf", 0},
	{"\xc0", 1},
	{"\xff", 1},
	{"\x7f", 1},
	{"\xff\xfe\xfd", 3},
	{"\x80\x81\x82\x83\x84\x85\x86\x87\x88", 0},
	{"a\x80b\x80c\x80d\x80e", 5},
	{allBytes, 192},
	{strings.Repeat("a", 256), 256},
	{strings.Repeat("\x80", 256), 0},
	{strings.Repeat("\xbf", 257), 0},
	{strings.Repeat("☺", 100), 100},
	{strings.Repeat("\U0001F600", 33), 33},
	{strings.Repeat("aé世", 64) + "z", 193},
}

// Count runs the table tests against fn using the full length of each input.
func Count(t *testing.T, fn CountFunc) {
	for _, tt := range countTests {
		if got := fn([]byte(tt.s), len(tt.s)); got != tt.num {
			t.Errorf("Count(%q, %d) = %d; want: %d", tt.s, len(tt.s), got, tt.num)
		}
	}
}

// CountPrefixes checks every prefix length of each table test against
// ReferenceCount.
func CountPrefixes(t *testing.T, fn CountFunc) {
	for _, tt := range countTests {
		b := []byte(tt.s)
		for n := 0; n <= len(b); n++ {
			want := ReferenceCount(b[:n])
			if got := fn(b, n); got != want {
				t.Errorf("Count(%q, %d) = %d; want: %d", tt.s, n, got, want)
			}
		}
	}
}

var remainderTails = []countTest{
	{"x", 1},
	{"\x80", 0},
	{"é", 1},
	{"世", 1},
	{"ab\xbf", 2},
	{"\x80\x80\x80\x80", 0},
	{"a世b", 3},
	{"\xc3\x80\xc3\x80x", 3},
	{"abcdef", 6},
	{"\xbf\xbf\xbf\xbf\xbf\xbf", 0},
	{"abcdefg", 7},
	{"\x80\x80\x80\x80\x80\x80\x80", 0},
	{"\xf0\x9f\x98\x80abc", 4},
}

var remainderWords = []countTest{
	{"12345678", 8},
	{"éééé", 4},
	{"\x80\x80\x80\x80\x80\x80\x80\x80", 0},
	{"a世世b", 4},
	{"\U0001F600\U0001F600", 2},
}

// CountRemainder builds inputs of length 8k+r (k >= 1, 1 <= r <= 7) where the
// count of the first 8k bytes and the count of the r byte tail are known
// independently and checks that fn adds them up.
func CountRemainder(t *testing.T, fn CountFunc) {
	for k := 1; k <= 4; k++ {
		for _, w := range remainderWords {
			words := strings.Repeat(w.s, k)
			wordCount := w.num * k
			if len(words) != 8*k {
				t.Fatalf("invalid test: len(%q) = %d; want: %d", words, len(words), 8*k)
			}
			for _, tail := range remainderTails {
				if len(tail.s) < 1 || len(tail.s) > 7 {
					t.Fatalf("invalid test: tail %q must be 1..7 bytes", tail.s)
				}
				b := []byte(words + tail.s)
				if got := fn(b, 8*k); got != wordCount {
					t.Errorf("Count(%q, %d) = %d; want: %d", b, 8*k, got, wordCount)
				}
				want := wordCount + tail.num
				if got := fn(b, len(b)); got != want {
					t.Errorf("Count(%q, %d) = %d; want: %d", b, len(b), got, want)
				}
			}
		}
	}
}

// CountUnaligned checks fn against ReferenceCount for every start offset so
// that full words never begin on an 8 byte boundary of the backing array.
func CountUnaligned(t *testing.T, fn CountFunc) {
	src := []byte(strings.Repeat(allBytes, 2))
	for off := 0; off < 16; off++ {
		b := src[off:]
		for _, n := range []int{0, 7, 8, 9, 63, 64, 65, len(b)} {
			want := ReferenceCount(b[:n])
			if got := fn(b, n); got != want {
				t.Errorf("offset %d: Count(b, %d) = %d; want: %d", off, n, got, want)
			}
		}
	}
}
