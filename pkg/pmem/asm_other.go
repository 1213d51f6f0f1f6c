//go:build !amd64

package pmem

import "unsafe"

// Capabilities are all false off amd64, so backends report the missing
// instruction before reaching these.

func clwb(addr uintptr)       {}
func clflushopt(addr uintptr) {}
func clflush(addr uintptr)    {}
func sfence()                 {}

func movnt4(dst, src unsafe.Pointer)   { copyN(dst, src, 4) }
func movnt8(dst, src unsafe.Pointer)   { copyN(dst, src, 8) }
func movnt16(dst, src unsafe.Pointer)  { copyN(dst, src, 16) }
func movnt32(dst, src unsafe.Pointer)  { copyN(dst, src, 32) }
func movnt64(dst, src unsafe.Pointer)  { copyN(dst, src, 64) }
func movnt128(dst, src unsafe.Pointer) { copyN(dst, src, 128) }
func movnt256(dst, src unsafe.Pointer) { copyN(dst, src, 256) }

func copyN(dst, src unsafe.Pointer, n int) {
	copy(unsafe.Slice((*byte)(dst), n), unsafe.Slice((*byte)(src), n))
}
