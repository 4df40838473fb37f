// Copyright 2023 Charlie Vieth. All rights reserved.
// Use of this source code is governed by the MIT license.

package bytealg

import "math/bits"

const (
	m1  = 0x5555555555555555
	m2  = 0x3333333333333333
	m4  = 0x0f0f0f0f0f0f0f0f
	h01 = 0x0101010101010101
)

// usePOPCNT is set at init by the per-architecture files.
var usePOPCNT = hasPOPCNT()

// PopcountImpl returns the name of the popcount implementation selected for
// this machine: "popcnt" or "generic".
func PopcountImpl() string {
	if usePOPCNT {
		return "popcnt"
	}
	return "generic"
}

func onesCount64(x uint64) int {
	return bits.OnesCount64(x)
}

// onesCount64Generic is a software population count that uses only shifts,
// masks and one multiply (Hacker's Delight, figure 5-2).
func onesCount64Generic(x uint64) int {
	x -= (x >> 1) & m1
	x = (x & m2) + ((x >> 2) & m2)
	x = (x + (x >> 4)) & m4
	return int((x * h01) >> 56)
}
