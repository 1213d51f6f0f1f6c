// Package pmem makes writes to byte-addressable persistent memory durable.
//
// Stores to persistent memory land in the CPU caches first. A range is only
// safe against power loss once its cachelines have been written back and the
// write-backs have been fenced. This package hides the instruction sequence
// behind the [Ops] interface so allocators, logs and other persistent data
// structures can stay agnostic of how a given machine achieves durability.
//
// # Backends
//
//   - [ClwbBackend]: CLWB per cacheline, SFENCE drain, non-temporal streaming writes
//   - [ClflushOptBackend]: CLFLUSHOPT per cacheline, SFENCE drain
//   - [MsyncBackend]: msync(MS_SYNC) for memory-mapped files; drain is a no-op
//   - [NoPersistBackend]: no durability at all, the volatile baseline
//
// # Usage
//
//	caps := pmem.DetectCapabilities()
//	ops, err := pmem.New(pmem.PreferredKind(caps))
//	if err != nil {
//	    return err
//	}
//
//	copy(region[off:], record)
//	ops.Persist(region[off : off+len(record)])
//
// Backends are immutable once constructed and may be shared by any number
// of goroutines. [Ops.Drain] only orders flushes issued by the calling
// thread; publishing durability to another goroutine is the caller's
// protocol.
//
// # Capability checks
//
// Constructors check the running CPU and return an error wrapping
// [ErrUnsupportedHardware] when an instruction the backend needs is missing.
// [WithSkipValidation] defers the check to the first call that reaches the
// instruction, which then goes to the [FatalReporter] and ends the process.
// Persistence is never silently degraded.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
package pmem
