package region

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewHeap_ReturnsZeroedSliceOfRequestedSize(t *testing.T) {
	r := NewHeap(1024)
	require.Len(t, r, 1024)
	for i, b := range r {
		require.Equalf(t, byte(0), b, "byte %d not zero", i)
	}
}
