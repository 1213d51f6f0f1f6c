package pmem

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"unsafe"

	"github.com/bft-labs/pmemops/pkg/log"
)

// alignedBytes returns size bytes starting on an align boundary.
func alignedBytes(size, align int) []byte {
	buf := make([]byte, size+align)
	off := 0
	if mod := int(uintptr(unsafe.Pointer(&buf[0])) % uintptr(align)); mod != 0 {
		off = align - mod
	}
	return buf[off : off+size : off+size]
}

// recoverErr runs fn and returns the error it panicked with, if any.
func recoverErr(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	fn()
	return nil
}

// fatalRecorder collects reported errors instead of exiting.
type fatalRecorder struct {
	mu   sync.Mutex
	errs []error
}

func (f *fatalRecorder) Fatal(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs = append(f.errs, err)
}

func (f *fatalRecorder) reported() []error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]error(nil), f.errs...)
}

// failOnFatal fails the test if any fatal is reported.
func failOnFatal(t *testing.T) FatalReporter {
	return FatalReporterFunc(func(err error) {
		t.Errorf("unexpected fatal: %v", err)
	})
}

// traceRecorder keeps the messages logged at trace level.
type traceRecorder struct {
	log.NoopLogger
	mu   sync.Mutex
	msgs []string
}

func (r *traceRecorder) Trace(msg string, fields ...log.Field) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
}

func (r *traceRecorder) messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.msgs...)
}

func isHardwareError(err error, instruction string) bool {
	var hw *HardwareError
	return errors.As(err, &hw) && hw.Instruction == instruction
}
