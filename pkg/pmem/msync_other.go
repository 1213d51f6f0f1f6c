//go:build !linux

package pmem

import "runtime"

const msyncSupported = false

func msync(addr, size uintptr) error {
	return &HardwareError{Backend: KindMsync, Instruction: "msync"}
}

func keepAlive(b []byte) {
	runtime.KeepAlive(b)
}
