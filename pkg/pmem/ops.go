package pmem

import (
	"fmt"
	"strings"
)

// CacheLineSize is the granularity of the flush instructions.
const CacheLineSize = 64

// Ops is the capability set every persistence backend provides.
//
// Ranges are caller-owned; a backend never retains, grows or frees them.
type Ops interface {
	// Kind identifies the backend.
	Kind() Kind

	// Flush pushes the cachelines covering b toward the persistent media.
	// Flushes are not ordered with respect to each other.
	Flush(b []byte)

	// Drain waits until every flush issued by this thread has completed.
	Drain()

	// Persist is Flush followed by Drain.
	Persist(b []byte)

	// StreamingWrite copies src into dst with non-temporal stores. The
	// destination is not drained. Backends without a non-temporal store
	// family panic with ErrUnsupportedOperation.
	StreamingWrite(dst, src []byte)

	// Memcpy copies src into dst and persists the written part of dst.
	// It returns the number of bytes copied, as the builtin copy does.
	Memcpy(dst, src []byte) int

	// Memmove is Memcpy; overlapping ranges are handled.
	Memmove(dst, src []byte) int

	// Memset fills b with c and persists it.
	Memset(b []byte, c byte)
}

// Evicter is implemented by backends that can write back and invalidate a
// range in one step.
type Evicter interface {
	Evict(b []byte)
}

// Kind selects a persistence backend.
type Kind int

const (
	KindUnknown Kind = iota
	KindClwb
	KindClflushOpt
	KindMsync
	KindNoPersist
)

// Kinds lists every backend kind in preference order.
var Kinds = []Kind{KindClwb, KindClflushOpt, KindMsync, KindNoPersist}

// String returns the configuration name of the kind.
func (k Kind) String() string {
	switch k {
	case KindClwb:
		return "clwb"
	case KindClflushOpt:
		return "clflushopt"
	case KindMsync:
		return "msync"
	case KindNoPersist:
		return "nopersist"
	default:
		return "unknown"
	}
}

// ParseKind parses a backend name as produced by Kind.String.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "clwb":
		return KindClwb, nil
	case "clflushopt":
		return KindClflushOpt, nil
	case "msync":
		return KindMsync, nil
	case "nopersist", "none":
		return KindNoPersist, nil
	}
	return KindUnknown, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// ResolveKind is ParseKind that also accepts "auto", which picks
// PreferredKind for caps.
func ResolveKind(name string, caps Capabilities) (Kind, error) {
	if strings.EqualFold(strings.TrimSpace(name), "auto") {
		return PreferredKind(caps), nil
	}
	return ParseKind(name)
}

// PreferredKind returns the cheapest durable backend caps can run.
// Msync is the fallback and only gives durability for file-backed mappings.
func PreferredKind(caps Capabilities) Kind {
	switch {
	case caps.CLWB && caps.SFENCE:
		return KindClwb
	case caps.CLFLUSHOPT && caps.SFENCE:
		return KindClflushOpt
	default:
		return KindMsync
	}
}
