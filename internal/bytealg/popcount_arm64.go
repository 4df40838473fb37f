// Copyright 2023 Charlie Vieth. All rights reserved.
// Use of this source code is governed by the MIT license.

package bytealg

import "golang.org/x/sys/cpu"

// The arm64 popcount lowers to VCNT which requires ASIMD.
func hasPOPCNT() bool {
	return cpu.ARM64.HasASIMD
}
