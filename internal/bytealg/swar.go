// Copyright 2023 Charlie Vieth. All rights reserved.
// Use of this source code is governed by the MIT license.

package bytealg

import "encoding/binary"

// WordSize is the number of bytes consumed per iteration of the word loop.
const WordSize = 8

// ContinuationMask isolates bit 6 of each byte lane.
const ContinuationMask = 0x4040404040404040

// continuationBits returns a word with exactly one bit set in each byte lane
// of t0 that holds a continuation byte (0b10xxxxxx) and no bits set elsewhere.
//
// A lane has bit 7 set in t3 only if bit 6 of the input byte is clear.
// ANDing that with the input byte leaves bit 7 only if it was also set,
// that is, only if the top two bits are 10. Doubling t2 cannot carry into the
// next lane since each lane of t2 holds at most 0x40.
func continuationBits(t0 uint64) uint64 {
	t1 := ^t0
	t2 := t1 & ContinuationMask
	t3 := t2 + t2
	return t0 & t3
}

// IsContinuation reports whether c is a UTF-8 continuation byte.
func IsContinuation(c byte) bool {
	return int8(c) <= -65
}

// CountLeading returns the number of bytes in b that are not UTF-8
// continuation bytes.
func CountLeading(b []byte) int {
	n := 0
	for _, c := range b {
		// -65 is 0b10111111: anything larger starts a new code point.
		if int8(c) > -65 {
			n++
		}
	}
	return n
}

func CountLeadingString(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if int8(s[i]) > -65 {
			n++
		}
	}
	return n
}

// CountContinuationWords returns the number of continuation bytes in the
// first len(b)&^7 bytes of b. Trailing bytes that do not fill a word are
// ignored.
func CountContinuationWords(b []byte) int {
	b = b[:len(b)&^(WordSize-1)]
	if len(b) == 0 {
		return 0
	}
	if usePOPCNT {
		return countWordsPOPCNT(b)
	}
	return countWordsGeneric(b)
}

// CountContinuationWordsString is like CountContinuationWords but for strings.
func CountContinuationWordsString(s string) int {
	s = s[:len(s)&^(WordSize-1)]
	if len(s) == 0 {
		return 0
	}
	if usePOPCNT {
		return countWordsStringPOPCNT(s)
	}
	return countWordsStringGeneric(s)
}

func countWordsPOPCNT(b []byte) int {
	n := 0
	for ; len(b) >= WordSize; b = b[WordSize:] {
		n += onesCount64(continuationBits(binary.LittleEndian.Uint64(b)))
	}
	return n
}

func countWordsGeneric(b []byte) int {
	n := 0
	for ; len(b) >= WordSize; b = b[WordSize:] {
		n += onesCount64Generic(continuationBits(binary.LittleEndian.Uint64(b)))
	}
	return n
}

// loadString assembles the 8 bytes at s[i:] into a word. The compiler
// combines the loads on architectures that support unaligned access.
func loadString(s string, i int) uint64 {
	s = s[i : i+WordSize]
	return uint64(s[0]) | uint64(s[1])<<8 | uint64(s[2])<<16 | uint64(s[3])<<24 |
		uint64(s[4])<<32 | uint64(s[5])<<40 | uint64(s[6])<<48 | uint64(s[7])<<56
}

func countWordsStringPOPCNT(s string) int {
	n := 0
	for i := 0; i+WordSize <= len(s); i += WordSize {
		n += onesCount64(continuationBits(loadString(s, i)))
	}
	return n
}

func countWordsStringGeneric(s string) int {
	n := 0
	for i := 0; i+WordSize <= len(s); i += WordSize {
		n += onesCount64Generic(continuationBits(loadString(s, i)))
	}
	return n
}
