package pmem

import (
	"runtime"
	"unsafe"
)

// lineSpan returns the cacheline-aligned start of b and the address one past
// its last byte. Flush loops step from start to end in CacheLineSize units.
func lineSpan(b []byte) (start, end uintptr) {
	p := uintptr(unsafe.Pointer(unsafe.SliceData(b)))
	return p &^ (CacheLineSize - 1), p + uintptr(len(b))
}

// forEachLine calls fn with the address of every cacheline covering b.
// Empty ranges touch no line.
func forEachLine(b []byte, fn func(addr uintptr)) {
	if len(b) == 0 {
		return
	}
	start, end := lineSpan(b)
	for p := start; p < end; p += CacheLineSize {
		fn(p)
	}
	runtime.KeepAlive(b)
}

// LineCount returns how many cachelines a flush of b touches.
func LineCount(b []byte) int {
	if len(b) == 0 {
		return 0
	}
	start, end := lineSpan(b)
	return int((end - start + CacheLineSize - 1) / CacheLineSize)
}

func addrOf(b []byte) uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(b)))
}
