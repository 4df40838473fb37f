// Copyright 2023 Charlie Vieth. All rights reserved.
// Use of this source code is governed by the MIT license.

package utf8count

import (
	"strconv"

	"github.com/charlievieth/utf8count/internal/bytealg"
)

// Inputs shorter than this are counted one byte at a time by RuneCount.
//
// calibration: go test -run TestCalibrate -calibrate
const swarCutoff = 16

// A LengthError is the panic value used when a counter is called with a
// length that is negative or exceeds the size of the buffer.
type LengthError struct {
	Op  string // function that was called
	N   int    // requested length
	Len int    // actual buffer size
}

func (e *LengthError) Error() string {
	return "utf8count: " + e.Op + ": length " + strconv.Itoa(e.N) +
		" out of range [0:" + strconv.Itoa(e.Len) + "]"
}

func checkLength(op string, n, size int) {
	if n < 0 || n > size {
		panic(&LengthError{Op: op, N: n, Len: size})
	}
}

// IsContinuation reports whether c is a UTF-8 continuation byte, that is,
// whether its top two bits are 10.
func IsContinuation(c byte) bool {
	return bytealg.IsContinuation(c)
}

// CountScalar returns the number of code points in b[:n] by examining one
// byte at a time. It panics with a *LengthError if n < 0 or n > len(b).
func CountScalar(b []byte, n int) int {
	checkLength("CountScalar", n, len(b))
	return bytealg.CountLeading(b[:n])
}

// CountScalarString is like CountScalar but for strings.
func CountScalarString(s string, n int) int {
	checkLength("CountScalarString", n, len(s))
	return bytealg.CountLeadingString(s[:n])
}

// CountSWAR returns the number of code points in b[:n]. Full 8-byte words are
// classified in parallel and the remaining n%8 bytes are counted with the
// scalar algorithm. The result always equals CountScalar(b, n).
// It panics with a *LengthError if n < 0 or n > len(b).
func CountSWAR(b []byte, n int) int {
	checkLength("CountSWAR", n, len(b))
	return countSWAR(b[:n])
}

// CountSWARString is like CountSWAR but for strings.
func CountSWARString(s string, n int) int {
	checkLength("CountSWARString", n, len(s))
	return countSWARString(s[:n])
}

func countSWAR(b []byte) int {
	words := len(b) &^ (bytealg.WordSize - 1)
	count := words - bytealg.CountContinuationWords(b[:words])
	if words != len(b) {
		count += bytealg.CountLeading(b[words:])
	}
	return count
}

func countSWARString(s string) int {
	words := len(s) &^ (bytealg.WordSize - 1)
	count := words - bytealg.CountContinuationWordsString(s[:words])
	if words != len(s) {
		count += bytealg.CountLeadingString(s[words:])
	}
	return count
}

// RuneCount returns the number of code points in b. For valid UTF-8 this is
// the same as utf8.RuneCount. Invalid bytes are not replaced: any byte that is
// not a continuation byte counts as one code point.
func RuneCount(b []byte) int {
	if len(b) < swarCutoff {
		return bytealg.CountLeading(b)
	}
	return countSWAR(b)
}

// RuneCountInString is like RuneCount but for strings.
func RuneCountInString(s string) int {
	if len(s) < swarCutoff {
		return bytealg.CountLeadingString(s)
	}
	return countSWARString(s)
}
