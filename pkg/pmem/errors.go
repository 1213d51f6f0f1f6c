package pmem

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedHardware is returned (or reported as fatal) when a backend
	// needs an instruction the running CPU lacks.
	ErrUnsupportedHardware = errors.New("pmem: unsupported hardware path")

	// ErrUnsupportedOperation is the panic value for StreamingWrite on a
	// backend without non-temporal stores.
	ErrUnsupportedOperation = errors.New("pmem: unsupported operation")

	// ErrMalformedChunk is the panic value for a streaming write whose length
	// does not decompose into the supported store widths.
	ErrMalformedChunk = errors.New("pmem: malformed streaming chunk")

	// ErrSyncFailed is reported when msync rejects a range.
	ErrSyncFailed = errors.New("pmem: msync failed")

	// ErrUnknownKind is returned for an unrecognised backend name.
	ErrUnknownKind = errors.New("pmem: unknown backend")
)

// HardwareError names the instruction a backend could not use.
type HardwareError struct {
	Backend     Kind
	Instruction string
}

func (e *HardwareError) Error() string {
	return fmt.Sprintf("pmem: %s backend needs %s, which is not available on this machine", e.Backend, e.Instruction)
}

// Unwrap lets errors.Is match ErrUnsupportedHardware.
func (e *HardwareError) Unwrap() error {
	return ErrUnsupportedHardware
}

func unsupportedOperation(k Kind, op string) error {
	return fmt.Errorf("%w: %s backend has no %s", ErrUnsupportedOperation, k, op)
}
