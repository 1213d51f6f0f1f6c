package pmem

import (
	"fmt"
	"runtime"

	"golang.org/x/sys/unix"
)

const msyncSupported = true

// msync takes raw addresses because the page-rounded range usually extends
// past the caller's slice.
func msync(addr, size uintptr) error {
	_, _, errno := unix.Syscall(unix.SYS_MSYNC, addr, size, unix.MS_SYNC)
	if errno != 0 {
		return fmt.Errorf("%w: %#x+%d: %v", ErrSyncFailed, addr, size, errno)
	}
	return nil
}

func keepAlive(b []byte) {
	runtime.KeepAlive(b)
}
