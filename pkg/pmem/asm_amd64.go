package pmem

import "unsafe"

//go:noescape
func cpuid(eaxArg, ecxArg uint32) (eax, ebx, ecx, edx uint32)

// Flush instructions take the address as a uintptr: they never dereference
// through Go's view of the object and the line may start before it.

func clwb(addr uintptr)
func clflushopt(addr uintptr)
func clflush(addr uintptr)
func sfence()

// Non-temporal copies. Widths of 16 and up need dst aligned to
// min(width, 64) bytes.

//go:noescape
func movnt4(dst, src unsafe.Pointer)

//go:noescape
func movnt8(dst, src unsafe.Pointer)

//go:noescape
func movnt16(dst, src unsafe.Pointer)

//go:noescape
func movnt32(dst, src unsafe.Pointer)

//go:noescape
func movnt64(dst, src unsafe.Pointer)

//go:noescape
func movnt128(dst, src unsafe.Pointer)

//go:noescape
func movnt256(dst, src unsafe.Pointer)
