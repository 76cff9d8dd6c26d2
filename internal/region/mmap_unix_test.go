//go:build unix

package region

import (
	"testing"

	"github.com/stretchr/testify/require"

	"blockalloc/internal/engine"
	"blockalloc/policy"
)

func TestAcquireReleaseMmap_RoundTrip(t *testing.T) {
	data, err := AcquireMmap(8192)
	require.NoError(t, err)
	require.Len(t, data, 8192)

	eng := engine.New(data, policy.FirstFit, nil)
	p, err := eng.Allocate(64)
	require.NoError(t, err)
	require.NoError(t, eng.Deallocate(p))

	require.NoError(t, ReleaseMmap(data))
}

func TestReleaseMmap_NilIsNoOp(t *testing.T) {
	require.NoError(t, ReleaseMmap(nil))
}
