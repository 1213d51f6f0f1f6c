package pmem

import "golang.org/x/sys/cpu"

// CPUID feature bits not exposed by x/sys/cpu.
const (
	cpuid1EDXCLFLUSH    = 1 << 19
	cpuid1EDXSSE        = 1 << 25
	cpuid7EBXCLFLUSHOPT = 1 << 23
	cpuid7EBXCLWB       = 1 << 24
)

func detect() Capabilities {
	maxID, _, _, _ := cpuid(0, 0)
	_, _, _, edx1 := cpuid(1, 0)

	c := Capabilities{
		CLFLUSH: edx1&cpuid1EDXCLFLUSH != 0,
		SFENCE:  edx1&cpuid1EDXSSE != 0,
		SSE2:    cpu.X86.HasSSE2,
		AVX:     cpu.X86.HasAVX,
		AVX512F: cpu.X86.HasAVX512F,
	}
	if maxID >= 7 {
		_, ebx7, _, _ := cpuid(7, 0)
		c.CLFLUSHOPT = ebx7&cpuid7EBXCLFLUSHOPT != 0
		c.CLWB = ebx7&cpuid7EBXCLWB != 0
	}
	return c
}
