package pmem

import (
	"os"

	"github.com/bft-labs/pmemops/pkg/log"
)

// MsyncBackend makes ranges durable with msync(MS_SYNC). It is only
// meaningful for memory mapped from a file or DAX device; msync on anonymous
// memory succeeds without persisting anything.
type MsyncBackend struct {
	base
	pageSize uintptr
}

// NewMsync returns an MsyncBackend. It fails with ErrUnsupportedHardware on
// platforms without msync.
func NewMsync(opts ...Option) (*MsyncBackend, error) {
	b, err := newBase(KindMsync, opts, func(Capabilities) []requirement {
		return []requirement{{instruction: "msync", available: msyncSupported}}
	})
	if err != nil {
		return nil, err
	}
	return &MsyncBackend{base: b, pageSize: uintptr(os.Getpagesize())}, nil
}

// Flush syncs the pages covering b. msync wants a page-aligned address, so
// the start is rounded down and the length grown by the same amount.
func (m *MsyncBackend) Flush(b []byte) {
	if len(b) == 0 {
		return
	}
	if !msyncSupported {
		m.unsupported("msync")
		return
	}

	addr := addrOf(b)
	size := uintptr(len(b)) + addr&(m.pageSize-1)
	addr &^= m.pageSize - 1

	if m.trace != nil {
		m.trace.Trace("msync", log.Addr("addr", addr), log.Uint64("len", uint64(size)))
	}
	if err := msync(addr, size); err != nil {
		m.fatal.Fatal(err)
	}
	keepAlive(b)
}

// Drain does nothing: msync has completed by the time Flush returns.
func (m *MsyncBackend) Drain() {}

func (m *MsyncBackend) Persist(b []byte) {
	if len(b) == 0 {
		return
	}
	m.Flush(b)
}

// StreamingWrite panics: non-temporal stores do not reach a file through
// msync.
func (m *MsyncBackend) StreamingWrite(dst, src []byte) {
	panic(unsupportedOperation(m.kind, "streaming writes"))
}

func (m *MsyncBackend) Memcpy(dst, src []byte) int {
	if m.trace != nil {
		m.trace.Trace("memcpy", log.Addr("dst", addrOf(dst)), log.Addr("src", addrOf(src)), log.Int("len", min(len(dst), len(src))))
	}
	return m.Memmove(dst, src)
}

func (m *MsyncBackend) Memmove(dst, src []byte) int {
	n := copy(dst, src)
	if n == 0 {
		return 0
	}
	m.Flush(dst[:n])
	m.Drain()
	return n
}

func (m *MsyncBackend) Memset(b []byte, ch byte) {
	if len(b) == 0 {
		return
	}
	if m.trace != nil {
		m.trace.Trace("memset", log.Addr("addr", addrOf(b)), log.Int("len", len(b)), log.Int("char", int(ch)))
	}
	fill(b, ch)
	m.Flush(b)
	m.Drain()
}

var _ Ops = (*MsyncBackend)(nil)
