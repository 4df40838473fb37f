//go:build cgo
// +build cgo

package cstr

import (
	"testing"

	"github.com/charlievieth/utf8count/internal/test"
)

func TestCountUTF8(t *testing.T) {
	test.Count(t, test.WholeCountFunc(CountUTF8))
	test.CountRemainder(t, test.WholeCountFunc(CountUTF8))
}

func TestSWARCountUTF8(t *testing.T) {
	test.Count(t, test.WholeCountFunc(SWARCountUTF8))
	test.CountRemainder(t, test.WholeCountFunc(SWARCountUTF8))
	test.CountUnaligned(t, test.WholeCountFunc(SWARCountUTF8))
}
