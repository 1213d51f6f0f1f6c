package pmem

import (
	"fmt"
	"unsafe"

	"github.com/bft-labs/pmemops/pkg/log"
)

// nextChunk returns the widest width that fits in remaining, or 0.
// widths must be in descending order.
func nextChunk(remaining int, widths []int) int {
	for _, w := range widths {
		if remaining >= w {
			return w
		}
	}
	return 0
}

// PlanChunks splits n bytes into the greedy sequence of store widths a
// streaming write would use. rest is what no width covers; a non-zero rest
// makes StreamingWrite panic unless the backend accepts a tail.
func PlanChunks(n int, widths []int) (chunks []int, rest int) {
	for n > 0 {
		w := nextChunk(n, widths)
		if w == 0 {
			break
		}
		chunks = append(chunks, w)
		n -= w
	}
	return chunks, n
}

// StreamingWrite copies src into dst[:len(src)] with non-temporal stores.
// Call Drain (or Persist) afterwards when the data must be durable.
func (c *ClwbBackend) StreamingWrite(dst, src []byte) {
	n := len(src)
	if n == 0 {
		return
	}
	if len(dst) < n {
		panic(fmt.Sprintf("pmem: streaming write of %d bytes into %d-byte destination", n, len(dst)))
	}
	if len(c.widths) == 0 {
		c.unsupported("MOVNTI")
		return
	}

	off := 0
	for off < n {
		w := nextChunk(n-off, c.widths)
		if w == 0 {
			break
		}
		if c.trace != nil {
			c.trace.Trace("streaming write", log.Addr("dst", addrOf(dst[off:])), log.Int("width", w))
		}
		writeChunk(dst[off:off+w], src[off:off+w])
		off += w
	}

	if rest := n - off; rest > 0 {
		if !c.tail {
			panic(fmt.Errorf("%w: %d bytes left of %d, smallest store is %d bytes",
				ErrMalformedChunk, rest, n, c.widths[len(c.widths)-1]))
		}
		copy(dst[off:n], src[off:])
		c.Flush(dst[off:n])
	}
}

// writeChunk issues the non-temporal store for one chunk. len(dst) is one of
// the stream widths. SIMD stores fault on a misaligned destination, so such
// chunks are written as 8-byte MOVNTI stores instead; the chunk boundaries
// stay the same.
func writeChunk(dst, src []byte) {
	w := len(dst)
	d := unsafe.Pointer(&dst[0])
	s := unsafe.Pointer(&src[0])

	if w >= 16 && uintptr(d)&uintptr(min(w, 64)-1) != 0 {
		for off := 0; off < w; off += 8 {
			movnt8(unsafe.Pointer(&dst[off]), unsafe.Pointer(&src[off]))
		}
		return
	}

	switch w {
	case 256:
		movnt256(d, s)
	case 128:
		movnt128(d, s)
	case 64:
		movnt64(d, s)
	case 32:
		movnt32(d, s)
	case 16:
		movnt16(d, s)
	case 8:
		movnt8(d, s)
	case 4:
		movnt4(d, s)
	default:
		panic(fmt.Errorf("%w: no %d-byte store", ErrMalformedChunk, w))
	}
}
