package pmemops

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bft-labs/pmemops/pkg/pmem"
)

func TestDefaultMatchesPreferredKind(t *testing.T) {
	ops, err := Default(pmem.WithFatalReporter(pmem.FatalReporterFunc(func(err error) {
		t.Fatalf("unexpected fatal: %v", err)
	})))
	if errors.Is(err, pmem.ErrUnsupportedHardware) {
		t.Skipf("preferred backend not constructible here: %v", err)
	}
	require.NoError(t, err)
	require.Equal(t, pmem.PreferredKind(DetectCapabilities()), ops.Kind())
}

func TestMapAndPersist(t *testing.T) {
	ops, err := New(pmem.KindNoPersist)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "region")
	region, err := Map(path, 4096)
	require.NoError(t, err)

	require.Equal(t, 5, ops.Memcpy(region.Bytes()[100:], []byte("hello")))
	require.NoError(t, region.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Len(t, data, 4096)
	require.Equal(t, "hello", string(data[100:105]))
}
