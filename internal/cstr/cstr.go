//go:build cgo
// +build cgo

// Package cstr exposes C implementations of the code point counters for use
// as test oracles.
package cstr

/*
#include <stddef.h>
#include <stdint.h>
#include <string.h>

static size_t cstr_count_utf8(const char *buf, size_t len) {
	const int8_t *p = (const int8_t *)buf;
	size_t counter = 0;
	for (size_t i = 0; i < len; i++) {
		if (p[i] > -65) {
			counter++;
		}
	}
	return counter;
}

static size_t cstr_swar_count_utf8(const char *buf, size_t len) {
	const size_t words = len >> 3;
	size_t count = 0;
	for (size_t i = 0; i < words; i++) {
		uint64_t t0;
		memcpy(&t0, buf + i * 8, sizeof(t0));
		const uint64_t t1 = ~t0;
		const uint64_t t2 = t1 & 0x4040404040404040ULL;
		const uint64_t t3 = t2 + t2;
		const uint64_t t4 = t0 & t3;
		count += __builtin_popcountll(t4);
	}
	count = 8 * words - count;
	if (len & 7) {
		count += cstr_count_utf8(buf + words * 8, len & 7);
	}
	return count;
}
*/
import "C"
import "unsafe"

func ptr(b []byte) *C.char {
	if len(b) == 0 {
		return nil
	}
	return (*C.char)(unsafe.Pointer(&b[0]))
}

// CountUTF8 counts the bytes of b that are not continuation bytes.
func CountUTF8(b []byte) int {
	return int(C.cstr_count_utf8(ptr(b), C.size_t(len(b))))
}

// SWARCountUTF8 is the word-at-a-time version of CountUTF8.
func SWARCountUTF8(b []byte) int {
	return int(C.cstr_swar_count_utf8(ptr(b), C.size_t(len(b))))
}
