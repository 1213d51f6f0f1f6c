//go:build !amd64

package pmem

// Only amd64 has flush and non-temporal store support.
func detect() Capabilities {
	return Capabilities{}
}
