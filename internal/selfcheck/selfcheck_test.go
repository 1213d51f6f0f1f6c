package selfcheck

import (
	"errors"
	"testing"

	"github.com/bft-labs/pmemops/pkg/pmem"
)

// corruptingOps drops the last byte of every copy.
type corruptingOps struct {
	pmem.Ops
}

func (c corruptingOps) Memcpy(dst, src []byte) int {
	n := c.Ops.Memcpy(dst, src)
	if n > 0 {
		dst[n-1] ^= 0xFF
	}
	return n
}

func TestRunNoPersist(t *testing.T) {
	ops, err := pmem.NewNoPersist()
	if err != nil {
		t.Fatalf("NewNoPersist() error = %v", err)
	}

	res, err := Run(ops, DefaultSize, DefaultChar)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.Backend != pmem.KindNoPersist {
		t.Errorf("Backend = %v, want nopersist", res.Backend)
	}
	if res.Diffs != 0 {
		t.Errorf("Diffs = %d, want 0", res.Diffs)
	}
}

func TestRunAvailableBackends(t *testing.T) {
	for _, kind := range pmem.Available(pmem.DetectCapabilities()) {
		t.Run(kind.String(), func(t *testing.T) {
			ops, err := pmem.New(kind)
			if err != nil {
				t.Fatalf("New(%s) error = %v", kind, err)
			}
			if _, err := Run(ops, DefaultSize, DefaultChar); err != nil {
				t.Errorf("Run() error = %v", err)
			}
		})
	}
}

func TestRunDetectsMismatch(t *testing.T) {
	ops, err := pmem.NewNoPersist()
	if err != nil {
		t.Fatalf("NewNoPersist() error = %v", err)
	}

	res, err := Run(corruptingOps{ops}, 64, 'x')
	if !errors.Is(err, ErrMismatch) {
		t.Fatalf("Run() error = %v, want ErrMismatch", err)
	}
	if res.Diffs != 1 {
		t.Errorf("Diffs = %d, want 1", res.Diffs)
	}
}

func TestRunRejectsEmpty(t *testing.T) {
	ops, _ := pmem.NewNoPersist()
	if _, err := Run(ops, 0, 'c'); err == nil {
		t.Error("Run() with size 0 succeeded")
	}
}
