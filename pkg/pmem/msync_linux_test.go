package pmem_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/pmemops/internal/mapping"
	"github.com/bft-labs/pmemops/pkg/pmem"
)

func TestMsyncPersistsMappedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pool")
	region, err := mapping.Open(path, 3*os.Getpagesize())
	require.NoError(t, err)

	ops, err := pmem.NewMsync(pmem.WithFatalReporter(pmem.FatalReporterFunc(func(err error) {
		t.Errorf("unexpected fatal: %v", err)
	})))
	require.NoError(t, err)

	mem := region.Bytes()
	// Unaligned range crossing a page boundary.
	start := os.Getpagesize() - 10
	ops.Memset(mem[start:start+100], 'c')
	ops.Memcpy(mem[5:], []byte("persisted"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, bytes.Repeat([]byte{'c'}, 100), data[start:start+100])
	assert.Equal(t, "persisted", string(data[5:14]))

	require.NoError(t, region.Close())
}

func TestMsyncDrainIsNoop(t *testing.T) {
	ops, err := pmem.NewMsync()
	require.NoError(t, err)
	ops.Drain()
	ops.Drain()
}
