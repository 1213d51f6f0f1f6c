package pmem

import "github.com/bft-labs/pmemops/pkg/log"

// ClwbBackend flushes with CLWB, drains with SFENCE and streams with the
// widest non-temporal store the CPU offers. CLWB leaves the line valid in
// the cache, so a flushed range can be read back without a miss.
type ClwbBackend struct {
	base
	widths []int
}

// NewClwb returns a ClwbBackend. It fails with ErrUnsupportedHardware when
// CLWB or SFENCE is missing, unless WithSkipValidation is given.
func NewClwb(opts ...Option) (*ClwbBackend, error) {
	b, err := newBase(KindClwb, opts, func(c Capabilities) []requirement {
		return []requirement{
			{instruction: "CLWB", available: c.CLWB},
			{instruction: "SFENCE", available: c.SFENCE},
		}
	})
	if err != nil {
		return nil, err
	}
	return &ClwbBackend{base: b, widths: b.caps.StreamWidths()}, nil
}

func (c *ClwbBackend) Flush(b []byte) {
	if len(b) == 0 {
		return
	}
	if !c.caps.CLWB {
		c.unsupported("CLWB")
		return
	}
	forEachLine(b, clwb)
}

// Evict writes back and invalidates the lines covering b with CLFLUSH.
// CLFLUSH is ordered with respect to other stores, so no drain is needed.
func (c *ClwbBackend) Evict(b []byte) {
	if len(b) == 0 {
		return
	}
	if !c.caps.CLFLUSH {
		c.unsupported("CLFLUSH")
		return
	}
	if c.trace != nil {
		c.trace.Trace("evict", log.Addr("addr", addrOf(b)), log.Int("len", len(b)))
	}
	forEachLine(b, clflush)
}

func (c *ClwbBackend) Drain() {
	if !c.caps.SFENCE {
		c.unsupported("SFENCE")
		return
	}
	sfence()
}

func (c *ClwbBackend) Persist(b []byte) {
	if len(b) == 0 {
		return
	}
	if c.trace != nil {
		c.trace.Trace("persist", log.Addr("addr", addrOf(b)), log.Int("len", len(b)))
	}
	c.Flush(b)
	c.Drain()
}

func (c *ClwbBackend) Memcpy(dst, src []byte) int {
	if c.trace != nil {
		c.trace.Trace("memcpy", log.Addr("dst", addrOf(dst)), log.Addr("src", addrOf(src)), log.Int("len", min(len(dst), len(src))))
	}
	return c.Memmove(dst, src)
}

func (c *ClwbBackend) Memmove(dst, src []byte) int {
	n := copy(dst, src)
	if n == 0 {
		return 0
	}
	c.Flush(dst[:n])
	c.Drain()
	return n
}

func (c *ClwbBackend) Memset(b []byte, ch byte) {
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

var (
	_ Ops     = (*ClwbBackend)(nil)
	_ Evicter = (*ClwbBackend)(nil)
)
