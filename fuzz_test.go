// Copyright 2023 Charlie Vieth. All rights reserved.
// Use of this source code is governed by the MIT license.

package utf8count

import (
	"testing"
	"unicode/utf8"

	"github.com/charlievieth/utf8count/internal/test"
)

func FuzzCount(f *testing.F) {
	for _, s := range []string{
		"",
		"a",
		"aé€",
		"12345678",
		"1234567é",
		"\x80\x80\x80\x80\x80\x80\x80\x80\x80",
		"héllo, 世界",
		"\xff\xfe\xfd\xfc\xfb\xfa\xf9\xf8\xf7",
	} {
		f.Add([]byte(s))
	}
	f.Fuzz(func(t *testing.T, b []byte) {
		want := test.ReferenceCount(b)
		for n := len(b); n >= 0 && n+8 >= len(b); n-- {
			w := test.ReferenceCount(b[:n])
			if got := CountScalar(b, n); got != w {
				t.Fatalf("CountScalar(%q, %d) = %d; want: %d", b, n, got, w)
			}
			if got := CountSWAR(b, n); got != w {
				t.Fatalf("CountSWAR(%q, %d) = %d; want: %d", b, n, got, w)
			}
		}
		if got := CountSWARString(string(b), len(b)); got != want {
			t.Fatalf("CountSWARString(%q) = %d; want: %d", b, got, want)
		}
		if utf8.Valid(b) {
			if got, want := RuneCount(b), utf8.RuneCount(b); got != want {
				t.Fatalf("RuneCount(%q) = %d; want: %d", b, got, want)
			}
		}
	})
}
