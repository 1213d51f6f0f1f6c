package pmem

import "github.com/bft-labs/pmemops/pkg/log"

// ClflushOptBackend flushes with CLFLUSHOPT and drains with SFENCE. The
// flushed lines are invalidated. It has no streaming writes.
type ClflushOptBackend struct {
	base
}

// NewClflushOpt returns a ClflushOptBackend. It fails with
// ErrUnsupportedHardware when CLFLUSHOPT or SFENCE is missing, unless
// WithSkipValidation is given.
func NewClflushOpt(opts ...Option) (*ClflushOptBackend, error) {
	b, err := newBase(KindClflushOpt, opts, func(c Capabilities) []requirement {
		return []requirement{
			{instruction: "CLFLUSHOPT", available: c.CLFLUSHOPT},
			{instruction: "SFENCE", available: c.SFENCE},
		}
	})
	if err != nil {
		return nil, err
	}
	return &ClflushOptBackend{base: b}, nil
}

func (c *ClflushOptBackend) Flush(b []byte) {
	if len(b) == 0 {
		return
	}
	if !c.caps.CLFLUSHOPT {
		c.unsupported("CLFLUSHOPT")
		return
	}
	forEachLine(b, clflushopt)
}

func (c *ClflushOptBackend) Drain() {
	if !c.caps.SFENCE {
		c.unsupported("SFENCE")
		return
	}
	sfence()
}

func (c *ClflushOptBackend) Persist(b []byte) {
	if len(b) == 0 {
		return
	}
	if c.trace != nil {
		c.trace.Trace("persist", log.Addr("addr", addrOf(b)), log.Int("len", len(b)))
	}
	c.Flush(b)
	c.Drain()
}

// StreamingWrite panics: CLFLUSHOPT has no non-temporal store family.
func (c *ClflushOptBackend) StreamingWrite(dst, src []byte) {
	panic(unsupportedOperation(c.kind, "streaming writes"))
}

func (c *ClflushOptBackend) Memcpy(dst, src []byte) int {
	if c.trace != nil {
		c.trace.Trace("memcpy", log.Addr("dst", addrOf(dst)), log.Addr("src", addrOf(src)), log.Int("len", min(len(dst), len(src))))
	}
	return c.Memmove(dst, src)
}

func (c *ClflushOptBackend) Memmove(dst, src []byte) int {
	n := copy(dst, src)
	if n == 0 {
		return 0
	}
	c.Flush(dst[:n])
	c.Drain()
	return n
}

func (c *ClflushOptBackend) Memset(b []byte, ch byte) {
	if len(b) == 0 {
		return
	}
	if c.trace != nil {
		c.trace.Trace("memset", log.Addr("addr", addrOf(b)), log.Int("len", len(b)), log.Int("char", int(ch)))
	}
	fill(b, ch)
	c.Flush(b)
	c.Drain()
}

var _ Ops = (*ClflushOptBackend)(nil)
