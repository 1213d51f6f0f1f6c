package pmem

import "github.com/bft-labs/pmemops/pkg/log"

// NoPersistBackend moves data and nothing else. It is the volatile baseline
// for measuring persistence overhead and for running logic tests on ordinary
// memory.
type NoPersistBackend struct {
	base
}

// NewNoPersist returns a NoPersistBackend. It never fails.
func NewNoPersist(opts ...Option) (*NoPersistBackend, error) {
	b, err := newBase(KindNoPersist, opts, nil)
	if err != nil {
		return nil, err
	}
	return &NoPersistBackend{base: b}, nil
}

func (*NoPersistBackend) Flush(b []byte)   {}
func (*NoPersistBackend) Drain()           {}
func (*NoPersistBackend) Persist(b []byte) {}

// StreamingWrite panics: there is nothing to stream past.
func (n *NoPersistBackend) StreamingWrite(dst, src []byte) {
	panic(unsupportedOperation(n.kind, "streaming writes"))
}

func (n *NoPersistBackend) Memcpy(dst, src []byte) int {
	if n.trace != nil {
		n.trace.Trace("memcpy", log.Addr("dst", addrOf(dst)), log.Addr("src", addrOf(src)), log.Int("len", min(len(dst), len(src))))
	}
	return n.Memmove(dst, src)
}

func (n *NoPersistBackend) Memmove(dst, src []byte) int {
	return copy(dst, src)
}

func (n *NoPersistBackend) Memset(b []byte, ch byte) {
	if n.trace != nil {
		n.trace.Trace("memset", log.Addr("addr", addrOf(b)), log.Int("len", len(b)), log.Int("char", int(ch)))
	}
	fill(b, ch)
}

var _ Ops = (*NoPersistBackend)(nil)
