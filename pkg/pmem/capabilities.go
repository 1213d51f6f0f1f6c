package pmem

// Capabilities records which persistence instructions the machine offers.
type Capabilities struct {
	CLWB       bool // cache line write back, line stays valid
	CLFLUSHOPT bool // weakly ordered flush and invalidate
	CLFLUSH    bool // strongly ordered flush and invalidate
	SFENCE     bool
	SSE2       bool // 4, 8 and 16 byte non-temporal stores
	AVX        bool // 32 byte non-temporal stores
	AVX512F    bool // 64, 128 and 256 byte non-temporal stores
}

// DetectCapabilities probes the running CPU.
func DetectCapabilities() Capabilities {
	return detect()
}

// StreamWidths returns the non-temporal store widths caps supports, widest
// first.
func (c Capabilities) StreamWidths() []int {
	var w []int
	if c.AVX512F {
		w = append(w, 256, 128, 64)
	}
	if c.AVX {
		w = append(w, 32)
	}
	if c.SSE2 {
		w = append(w, 16, 8, 4)
	}
	return w
}

// Instructions lists the supported instructions by name, for diagnostics.
func (c Capabilities) Instructions() []string {
	var names []string
	for _, f := range []struct {
		name string
		ok   bool
	}{
		{"clwb", c.CLWB},
		{"clflushopt", c.CLFLUSHOPT},
		{"clflush", c.CLFLUSH},
		{"sfence", c.SFENCE},
		{"sse2", c.SSE2},
		{"avx", c.AVX},
		{"avx512f", c.AVX512F},
	} {
		if f.ok {
			names = append(names, f.name)
		}
	}
	return names
}
