// Package selfcheck verifies that a persistence backend moves data
// correctly: memset a source range, memcpy it to a destination and compare.
// Backends must never change the logical outcome of a copy, only its
// durability, so every backend has to pass.
package selfcheck

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/bft-labs/pmemops/pkg/pmem"
)

// DefaultSize and DefaultChar match the reference content check.
const (
	DefaultSize = 1024
	DefaultChar = 'c'
)

// ErrMismatch is returned when the copied content differs from the source.
var ErrMismatch = errors.New("selfcheck: content mismatch")

// Result describes one check run.
type Result struct {
	Backend pmem.Kind
	Size    int
	Char    byte
	Diffs   int
}

// Run checks ops over size bytes of c. The returned error wraps ErrMismatch
// when any byte differs.
func Run(ops pmem.Ops, size int, c byte) (Result, error) {
	res := Result{Backend: ops.Kind(), Size: size, Char: c}
	if size <= 0 {
		return res, fmt.Errorf("selfcheck: size must be positive, got %d", size)
	}

	src := make([]byte, size)
	dst := make([]byte, size)

	ops.Memset(src, c)
	if n := ops.Memcpy(dst, src); n != size {
		return res, fmt.Errorf("%w: %s copied %d of %d bytes", ErrMismatch, res.Backend, n, size)
	}

	res.Diffs = countDiffs(src, dst)
	for _, edge := range []int{0, size - 1} {
		if src[edge] != c {
			res.Diffs++
		}
	}
	if res.Diffs > 0 {
		return res, fmt.Errorf("%w: %s has %d differing bytes", ErrMismatch, res.Backend, res.Diffs)
	}
	return res, nil
}

func countDiffs(a, b []byte) int {
	if bytes.Equal(a, b) {
		return 0
	}
	n := 0
	for i := range a {
		if a[i] != b[i] {
			n++
		}
	}
	return n
}
