// Copyright 2023 Charlie Vieth. All rights reserved.
// Use of this source code is governed by the MIT license.

package bytealg

import "golang.org/x/sys/cpu"

func hasPOPCNT() bool {
	return cpu.X86.HasPOPCNT
}
