// Package pmemops makes stores to persistent memory durable.
//
// Example usage:
//
//	ops, err := pmemops.Default()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	region, err := pmemops.Map("/mnt/pmem0/log", 64<<20)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer region.Close()
//	ops.Memcpy(region.Bytes(), record)
//
// The backend implementations live in pkg/pmem; this package is a shortcut
// for embedders that just want the host's best backend.
package pmemops

import (
	"github.com/bft-labs/pmemops/internal/mapping"
	"github.com/bft-labs/pmemops/pkg/pmem"
)

// Ops is the persistence interface every backend implements.
type Ops = pmem.Ops

// Kind names a backend.
type Kind = pmem.Kind

// Capabilities records which flush, fence and streaming-store instructions
// the CPU supports.
type Capabilities = pmem.Capabilities

// Option configures backend construction.
type Option = pmem.Option

// Region is a shared, writable mapping of a file or DAX device.
type Region = mapping.Region

// New constructs the backend of the given kind.
func New(kind Kind, opts ...Option) (Ops, error) {
	return pmem.New(kind, opts...)
}

// Default constructs the preferred backend for the running CPU.
func Default(opts ...Option) (Ops, error) {
	return pmem.New(pmem.PreferredKind(pmem.DetectCapabilities()), opts...)
}

// DetectCapabilities queries the running CPU.
func DetectCapabilities() Capabilities {
	return pmem.DetectCapabilities()
}

// Map maps path read-write with MAP_SHARED, creating or growing a regular
// file to size bytes. Size 0 maps the whole existing file.
func Map(path string, size int) (*Region, error) {
	return mapping.Open(path, size)
}
